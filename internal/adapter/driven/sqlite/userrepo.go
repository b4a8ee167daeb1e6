package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ewallace/notekeep/internal/domain/model"
	"github.com/ewallace/notekeep/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.UserStore = (*UserRepo)(nil)

// UserRepo is the SQLite implementation of the UserStore port interface.
type UserRepo struct {
	db *DB
}

// NewUserRepo creates a new UserRepo backed by the given DB.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new user and re-reads the stored record. A UNIQUE
// constraint violation on email is surfaced as driven.ErrDuplicateEmail.
func (r *UserRepo) Create(ctx context.Context, email, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?)`

	now := time.Now().UTC()
	result, err := r.db.Writer.ExecContext(ctx, query, email, passwordHash, now, now)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, fmt.Errorf("create user %s: %w", email, driven.ErrDuplicateEmail)
		}
		return nil, fmt.Errorf("create user %s: %w", email, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create user %s: %w", email, err)
	}

	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("create user %s: inserted row %d not found", email, id)
	}
	return user, nil
}

// GetByEmail retrieves a user by email. Returns nil, nil when no user exists
// with that email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, email, password_hash, created_at, updated_at FROM users WHERE email = ?`
	return r.scanUser(r.db.Reader.QueryRowContext(ctx, query, email))
}

// GetByID retrieves a user by id. Returns nil, nil when the user does not exist.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, email, password_hash, created_at, updated_at FROM users WHERE id = ?`
	return r.scanUser(r.db.Reader.QueryRowContext(ctx, query, id))
}

// scanUser maps a single-row result into a model.User, translating
// sql.ErrNoRows into a nil user.
func (r *UserRepo) scanUser(row *sql.Row) (*model.User, error) {
	var user model.User
	var createdAt, updatedAt string

	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}

	user.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at for user %d: %w", user.ID, err)
	}
	user.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at for user %d: %w", user.ID, err)
	}

	return &user, nil
}
