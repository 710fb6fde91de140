package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Amrsono/Store-2090/internal/domain/apperr"
	"github.com/Amrsono/Store-2090/internal/domain/entity"
	repo "github.com/Amrsono/Store-2090/internal/domain/repository"
	"github.com/Amrsono/Store-2090/pkg/helpers"
)

// AccountService implements registration, login, and email verification.
type AccountService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Mail   EmailQueue // optional; nil disables email side effects
	Logger *logrus.Logger

	StoreName      string
	VerifyEmailURL string
}

func NewAccountService(users repo.UserRepository, jwt *helpers.JWTManager, mail EmailQueue, logger *logrus.Logger, storeName, verifyEmailURL string) *AccountService {
	return &AccountService{
		Users:          users,
		JWT:            jwt,
		Mail:           mail,
		Logger:         logger,
		StoreName:      storeName,
		VerifyEmailURL: verifyEmailURL,
	}
}

type RegisterInput struct {
	Email    string
	Username string
	Password string
	FullName string
}

// Register creates an unverified account and returns it with an access token.
// The verification email is fire-and-forget; a delivery failure never fails
// the registration.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*entity.User, string, error) {
	taken, err := s.Users.ExistsByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", fmt.Errorf("%w: user with this email or username already exists", apperr.ErrConflict)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}
	verifyToken, err := helpers.GenerateVerificationToken()
	if err != nil {
		return nil, "", err
	}

	u := &entity.User{
		Email:             in.Email,
		Username:          in.Username,
		HashedPassword:    hash,
		FullName:          in.FullName,
		IsActive:          true,
		VerificationToken: verifyToken,
	}
	// The unique constraints back up the pre-check under concurrent registration.
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, "", err
	}

	s.sendVerificationEmail(ctx, u)

	token, _, err := s.JWT.Generate(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login authenticates by email and password. A missing user, a wrong
// password, and an inactive account are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, "", fmt.Errorf("%w: incorrect email or password", apperr.ErrUnauthorized)
	}
	if !helpers.CheckPassword(u.HashedPassword, password) {
		return nil, "", fmt.Errorf("%w: incorrect email or password", apperr.ErrUnauthorized)
	}
	if !u.IsActive {
		return nil, "", fmt.Errorf("%w: incorrect email or password", apperr.ErrUnauthorized)
	}
	token, _, err := s.JWT.Generate(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// VerifyEmail consumes a verification token. The token is single-use: the
// repository clears it in the same write that marks the email verified, so a
// second call with the same token fails with not found.
func (s *AccountService) VerifyEmail(ctx context.Context, token string) (*entity.User, error) {
	u, err := s.Users.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid or expired verification token", apperr.ErrNotFound)
		}
		return nil, err
	}
	if u.EmailVerified {
		return nil, fmt.Errorf("%w: email already verified", apperr.ErrConflict)
	}
	verified, err := s.Users.MarkVerified(ctx, token)
	if err != nil {
		return nil, err
	}

	s.sendWelcomeEmail(ctx, verified)
	return verified, nil
}

func (s *AccountService) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	return s.Users.GetByID(ctx, id)
}

type UpdateUserInput struct {
	Email    *string
	FullName *string
}

// UpdateUser applies administrative field edits. An email change re-checks
// uniqueness excluding the user's own row.
func (s *AccountService) UpdateUser(ctx context.Context, id int64, in UpdateUserInput) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Email != nil && *in.Email != u.Email {
		taken, err := s.Users.EmailTaken(ctx, *in.Email, u.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: email already in use", apperr.ErrConflict)
		}
		u.Email = *in.Email
	}
	if in.FullName != nil {
		u.FullName = *in.FullName
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ToggleUserStatus flips the is_active flag. The repository does this in a
// single write so no other field can be clobbered from a stale read.
func (s *AccountService) ToggleUserStatus(ctx context.Context, id int64) (*entity.User, error) {
	return s.Users.ToggleActive(ctx, id)
}

func (s *AccountService) sendVerificationEmail(ctx context.Context, u *entity.User) {
	enqueueEmail(ctx, s.Mail, s.Logger, verificationEmailJob(u, s.StoreName, s.VerifyEmailURL))
}

func (s *AccountService) sendWelcomeEmail(ctx context.Context, u *entity.User) {
	enqueueEmail(ctx, s.Mail, s.Logger, welcomeEmailJob(u, s.StoreName))
}
