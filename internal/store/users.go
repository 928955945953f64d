// internal/store/users.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrUserNotFound is returned for lookups that match no user.
var ErrUserNotFound = errors.New("USER_NOT_FOUND")

// User is an account row as stored.
type User struct {
	ID                int64
	Email             string
	PasswordHash      string
	IsVerified        bool
	VerificationToken string
	CreatedAt         time.Time
	VerifiedAt        sql.NullTime
}

// UserStore persists user accounts in Postgres.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user and returns its id.
func (s *UserStore) Create(ctx context.Context, email, passwordHash, verificationToken string, createdAt time.Time) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, is_verified, verification_token, created_at)
		VALUES ($1, $2, FALSE, $3, $4)
		RETURNING id`,
		email, passwordHash, verificationToken, createdAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

// GetByEmail returns the user with the given email.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.getBy(ctx, "email = $1", email)
}

// GetByVerificationToken returns the user holding the given token.
func (s *UserStore) GetByVerificationToken(ctx context.Context, token string) (*User, error) {
	return s.getBy(ctx, "verification_token = $1", token)
}

func (s *UserStore) getBy(ctx context.Context, where string, arg interface{}) (*User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, is_verified, verification_token, created_at, verified_at
		FROM users WHERE `+where,
		arg,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsVerified, &u.VerificationToken, &u.CreatedAt, &u.VerifiedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

// SetVerified marks a user as verified.
func (s *UserStore) SetVerified(ctx context.Context, userID int64, verifiedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET is_verified = TRUE, verified_at = $1 WHERE id = $2`,
		verifiedAt, userID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
