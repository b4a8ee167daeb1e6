package driven

import (
	"context"
	"errors"

	"github.com/ewallace/notekeep/internal/domain/model"
)

// ErrDuplicateEmail is returned by UserStore.Create when a user with the same
// email already exists.
var ErrDuplicateEmail = errors.New("email already registered")

// UserStore defines the driven port for user persistence.
type UserStore interface {
	// Create inserts a new user with the given email and password hash and
	// returns the stored record. Returns ErrDuplicateEmail (wrapped) when the
	// email is already taken.
	Create(ctx context.Context, email, passwordHash string) (*model.User, error)

	// GetByEmail retrieves a user by email. Returns nil, nil if no user exists
	// with that email; email comparison is case-sensitive as stored.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID retrieves a user by id. Returns nil, nil if the user does not exist.
	GetByID(ctx context.Context, id int64) (*model.User, error)
}
