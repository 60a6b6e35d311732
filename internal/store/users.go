package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/najdeno/internal/model"
)

// CreateUser registers a new account. The email is normalized to lowercase
// and must be unique; only a bcrypt hash of the password is stored.
func CreateUser(ctx context.Context, db *sql.DB, name, email, password string) (*model.User, error) {
	email = model.NormalizeEmail(email)

	existing, err := GetUserByEmail(ctx, db, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	id := uuid.NewString()
	_, err = db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, name, email, string(hash), time.Now().UTC().UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return GetUser(ctx, db, id)
}

// GetUser returns a user by ID, or nil if it doesn't exist.
func GetUser(ctx context.Context, db *sql.DB, id string) (*model.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}

	u := &model.User{}
	var createdAt int64
	err := db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	u.CreatedAt = time.Unix(0, createdAt).UTC()
	return u, nil
}

// GetUserByEmail returns a user by normalized email, or nil if it doesn't exist.
func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (*model.User, error) {
	u := &model.User{}
	var createdAt int64
	err := db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`,
		model.NormalizeEmail(email),
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	u.CreatedAt = time.Unix(0, createdAt).UTC()
	return u, nil
}

// VerifyCredentials checks an email/password pair. Unknown email and wrong
// password both fail with ErrInvalidCredentials.
func VerifyCredentials(ctx context.Context, db *sql.DB, email, password string) (*model.User, error) {
	user, err := GetUserByEmail(ctx, db, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
