package repository

import (
	"context"

	"github.com/Amrsono/Store-2090/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByVerificationToken looks a user up by an unconsumed verification token.
	GetByVerificationToken(ctx context.Context, token string) (*entity.User, error)
	// ExistsByEmailOrUsername is the combined pre-registration existence check.
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	// EmailTaken reports whether email is used by any user other than excludeID.
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
	// Update persists profile edits. Only email and full_name are written;
	// credentials, flags, and verification state are never touched, so a
	// stale read cannot clobber a concurrent verification.
	Update(ctx context.Context, u *entity.User) error
	// ToggleActive flips is_active in one write and returns the updated user.
	ToggleActive(ctx context.Context, id int64) (*entity.User, error)
	// MarkVerified sets email_verified and clears the token in one write.
	// It fails with apperr.ErrNotFound if the token has already been consumed.
	MarkVerified(ctx context.Context, token string) (*entity.User, error)
}
