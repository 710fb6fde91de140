package application

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amrsono/Store-2090/internal/domain/apperr"
	"github.com/Amrsono/Store-2090/internal/domain/entity"
	"github.com/Amrsono/Store-2090/pkg/helpers"
)

func newAccountFixture(t *testing.T) (*AccountService, *memStore, *fakeEmailQueue) {
	t.Helper()
	s := newMemStore()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	mail := &fakeEmailQueue{}
	jwt := helpers.NewJWTManager("test-secret", 30*time.Minute)
	svc := NewAccountService(&fakeUserRepo{s}, jwt, mail, logger, "Cyberpunk Store", "http://localhost:3000/verify-email")
	return svc, s, mail
}

func TestRegisterCreatesUnverifiedUserWithToken(t *testing.T) {
	svc, _, mail := newAccountFixture(t)
	ctx := context.Background()

	u, token, err := svc.Register(ctx, RegisterInput{
		Email:    "neo@cyber.com",
		Username: "neo",
		Password: "whiterabbit1",
		FullName: "Thomas Anderson",
	})
	require.NoError(t, err)
	require.NotNil(t, u)

	assert.NotZero(t, u.ID)
	assert.True(t, u.IsActive)
	assert.False(t, u.IsAdmin)
	assert.False(t, u.EmailVerified)
	assert.NotEmpty(t, u.VerificationToken)
	assert.NotEqual(t, "whiterabbit1", u.HashedPassword)
	assert.True(t, helpers.CheckPassword(u.HashedPassword, "whiterabbit1"))

	claims, err := svc.JWT.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, u.Email, claims.Subject)
	assert.False(t, claims.IsAdmin)

	assert.Equal(t, 1, mail.count())
}

func TestRegisterDuplicateEmailOrUsername(t *testing.T) {
	svc, _, _ := newAccountFixture(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{Email: "a@cyber.com", Username: "alpha", Password: "password1"})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, RegisterInput{Email: "a@cyber.com", Username: "other", Password: "password1"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, _, err = svc.Register(ctx, RegisterInput{Email: "b@cyber.com", Username: "alpha", Password: "password1"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

// Wrong password, unknown email, and a deactivated account must all produce
// the same error so a caller cannot probe which accounts exist.
func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newAccountFixture(t)
	ctx := context.Background()

	u, _, err := svc.Register(ctx, RegisterInput{Email: "neo@cyber.com", Username: "neo", Password: "whiterabbit1"})
	require.NoError(t, err)

	got, token, err := svc.Login(ctx, "neo@cyber.com", "whiterabbit1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.NotEmpty(t, token)

	_, _, errWrongPw := svc.Login(ctx, "neo@cyber.com", "bluepill")
	_, _, errNoUser := svc.Login(ctx, "ghost@cyber.com", "whiterabbit1")

	_, err = svc.ToggleUserStatus(ctx, u.ID)
	require.NoError(t, err)
	_, _, errInactive := svc.Login(ctx, "neo@cyber.com", "whiterabbit1")

	for _, err := range []error{errWrongPw, errNoUser, errInactive} {
		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
		assert.EqualError(t, err, "unauthorized: incorrect email or password")
	}
}

func TestVerifyEmailIsSingleUse(t *testing.T) {
	svc, _, mail := newAccountFixture(t)
	ctx := context.Background()

	u, _, err := svc.Register(ctx, RegisterInput{Email: "trin@cyber.com", Username: "trin", Password: "password1"})
	require.NoError(t, err)
	token := u.VerificationToken

	verified, err := svc.VerifyEmail(ctx, token)
	require.NoError(t, err)
	assert.True(t, verified.EmailVerified)
	assert.Empty(t, verified.VerificationToken)

	// registration + welcome
	assert.Equal(t, 2, mail.count())

	_, err = svc.VerifyEmail(ctx, token)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.VerifyEmail(ctx, "no-such-token")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

type downUserRepo struct{ *fakeUserRepo }

func (downUserRepo) GetByVerificationToken(context.Context, string) (*entity.User, error) {
	return nil, errors.New("connection reset by peer")
}

// A storage outage during token lookup must not masquerade as a bad token.
func TestVerifyEmailStorageFailurePassesThrough(t *testing.T) {
	svc, s, _ := newAccountFixture(t)
	svc.Users = downUserRepo{&fakeUserRepo{s}}

	_, err := svc.VerifyEmail(context.Background(), "some-token")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperr.ErrNotFound)
}

// A profile write carrying a stale pre-verification snapshot must not
// resurrect the consumed token or unset email_verified.
func TestProfileUpdateCannotUndoVerification(t *testing.T) {
	svc, _, _ := newAccountFixture(t)
	ctx := context.Background()

	u, _, err := svc.Register(ctx, RegisterInput{Email: "s@cyber.com", Username: "switch", Password: "password1"})
	require.NoError(t, err)
	stale := *u

	_, err = svc.VerifyEmail(ctx, u.VerificationToken)
	require.NoError(t, err)

	require.NoError(t, svc.Users.Update(ctx, &stale))
	_, err = svc.ToggleUserStatus(ctx, u.ID)
	require.NoError(t, err)

	got, err := svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.EmailVerified)
	assert.Empty(t, got.VerificationToken)
}

func TestUpdateUserEmailUniqueness(t *testing.T) {
	svc, _, _ := newAccountFixture(t)
	ctx := context.Background()

	a, _, err := svc.Register(ctx, RegisterInput{Email: "a@cyber.com", Username: "alpha", Password: "password1"})
	require.NoError(t, err)
	_, _, err = svc.Register(ctx, RegisterInput{Email: "b@cyber.com", Username: "beta", Password: "password1"})
	require.NoError(t, err)

	taken := "b@cyber.com"
	_, err = svc.UpdateUser(ctx, a.ID, UpdateUserInput{Email: &taken})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	fresh := "a2@cyber.com"
	name := "Alpha Prime"
	updated, err := svc.UpdateUser(ctx, a.ID, UpdateUserInput{Email: &fresh, FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "a2@cyber.com", updated.Email)
	assert.Equal(t, "Alpha Prime", updated.FullName)

	// setting the same email again is a no-op, not a conflict
	same := "a2@cyber.com"
	_, err = svc.UpdateUser(ctx, a.ID, UpdateUserInput{Email: &same})
	require.NoError(t, err)

	_, err = svc.UpdateUser(ctx, 9999, UpdateUserInput{FullName: &name})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestToggleUserStatus(t *testing.T) {
	svc, _, _ := newAccountFixture(t)
	ctx := context.Background()

	u, _, err := svc.Register(ctx, RegisterInput{Email: "m@cyber.com", Username: "morpheus", Password: "password1"})
	require.NoError(t, err)
	require.True(t, u.IsActive)

	got, err := svc.ToggleUserStatus(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	got, err = svc.ToggleUserStatus(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)

	_, err = svc.ToggleUserStatus(ctx, 9999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetUser(t *testing.T) {
	svc, s, _ := newAccountFixture(t)
	ctx := context.Background()

	u := s.addUser(entity.User{Email: "o@cyber.com", Username: "oracle", IsActive: true})
	got, err := svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "oracle", got.Username)

	_, err = svc.GetUser(ctx, 9999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
