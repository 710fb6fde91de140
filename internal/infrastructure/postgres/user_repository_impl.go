package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Amrsono/Store-2090/internal/domain/apperr"
	"github.com/Amrsono/Store-2090/internal/domain/entity"
	"github.com/Amrsono/Store-2090/internal/domain/repository"
)

// uniqueViolation is the Postgres error code for unique constraint breaches.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, username, hashed_password, full_name, is_active, is_admin, email_verified, verification_token, created_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var fullName, verifyToken sql.NullString
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.HashedPassword, &fullName,
		&u.IsActive, &u.IsAdmin, &u.EmailVerified, &verifyToken, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	u.FullName = fullName.String
	u.VerificationToken = verifyToken.String
	return u, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, username, hashed_password, full_name, is_active, is_admin, email_verified, verification_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, u.Email, u.Username, u.HashedPassword, nullable(u.FullName),
		u.IsActive, u.IsAdmin, u.EmailVerified, nullable(u.VerificationToken))

	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user with this email or username already exists", apperr.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1
	`, email))
}

func (r *UserRepository) GetByVerificationToken(ctx context.Context, token string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE verification_token = $1
	`, token))
}

func (r *UserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR username = $2)
	`, email, username).Scan(&exists)
	return exists, err
}

func (r *UserRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)
	`, email, excludeID).Scan(&exists)
	return exists, err
}

// Update writes profile fields only. Credential and verification columns are
// deliberately absent so a stale entity cannot undo a concurrent MarkVerified.
func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET email = $1, full_name = $2 WHERE id = $3
	`, u.Email, nullable(u.FullName), u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email already in use", apperr.ErrConflict)
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ToggleActive(ctx context.Context, id int64) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		UPDATE users SET is_active = NOT is_active WHERE id = $1
		RETURNING `+userColumns+`
	`, id))
}

// MarkVerified flips email_verified and clears the token in a single
// conditional update, making the token single-use even under concurrent calls.
func (r *UserRepository) MarkVerified(ctx context.Context, token string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		UPDATE users
		SET email_verified = TRUE, verification_token = NULL
		WHERE verification_token = $1
		RETURNING `+userColumns+`
	`, token))
}

var _ repository.UserRepository = (*UserRepository)(nil)
