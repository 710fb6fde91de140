package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Amrsono/Store-2090/internal/domain/entity"
	"github.com/Amrsono/Store-2090/pkg/mailer"
)

// EmailQueue is the narrow port services use to hand emails off for
// asynchronous delivery. Delivery is best-effort; callers never fail on it.
type EmailQueue interface {
	PublishJSON(ctx context.Context, body any) error
}

// enqueueEmail publishes an email job and swallows failures with a warning.
func enqueueEmail(ctx context.Context, q EmailQueue, logger *logrus.Logger, job mailer.EmailJob) {
	if q == nil {
		return
	}
	if err := q.PublishJSON(ctx, job); err != nil && logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"to":       job.To,
			"template": job.Template,
		}).Warn("email enqueue failed")
	}
}

func verificationEmailJob(u *entity.User, storeName, verifyEmailURL string) mailer.EmailJob {
	return mailer.EmailJob{
		To:       u.Email,
		Template: "verify_email",
		Data: map[string]any{
			"Username":  u.Username,
			"StoreName": storeName,
			"VerifyURL": verifyEmailURL + "?token=" + u.VerificationToken,
		},
	}
}

func welcomeEmailJob(u *entity.User, storeName string) mailer.EmailJob {
	return mailer.EmailJob{
		To:       u.Email,
		Template: "welcome",
		Data: map[string]any{
			"Username":  u.Username,
			"StoreName": storeName,
		},
	}
}

func orderConfirmationEmailJob(u *entity.User, o *entity.Order, storeName string) mailer.EmailJob {
	return mailer.EmailJob{
		To:       u.Email,
		Template: "order_confirmation",
		Data: map[string]any{
			"Username":  u.Username,
			"StoreName": storeName,
			"OrderID":   o.ID,
			"Total":     fmt.Sprintf("%.2f", o.TotalAmount),
			"Status":    string(o.Status),
		},
	}
}
