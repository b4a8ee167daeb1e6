package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ewallace/notekeep/internal/domain/model"
	"github.com/ewallace/notekeep/internal/domain/port/driven"
)

// ErrUnauthorized is the single outward-facing authentication failure.
// ResolveIdentity returns it for a missing credential, an invalid or expired
// token, and a token whose user no longer exists alike.
var ErrUnauthorized = errors.New("not authenticated")

// dummyHash is a valid bcrypt digest compared against when the email lookup
// misses, so the unknown-email path does the same bcrypt work as the
// wrong-password path.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AuthService is the authentication engine: password hashing and
// verification, token issuance and validation, and login orchestration.
// Credential checks fail closed and silently — a nil user, never an error —
// so callers cannot leak why a login was rejected.
type AuthService struct {
	users  driven.UserStore
	codec  *tokenCodec
	logger *slog.Logger
}

// NewAuthService creates an AuthService. secret and algorithm configure token
// signing process-wide; ttl is the token lifetime.
func NewAuthService(users driven.UserStore, secret, algorithm string, ttl time.Duration, logger *slog.Logger) (*AuthService, error) {
	codec, err := newTokenCodec([]byte(secret), algorithm, ttl)
	if err != nil {
		return nil, err
	}

	return &AuthService{users: users, codec: codec, logger: logger}, nil
}

// Authenticate validates an email/password pair. Returns the user on success
// and nil, nil for both an unknown email and a wrong password — the two are
// indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, nil
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}

	return user, nil
}

// CreateUser hashes the password with a fresh random salt and inserts the
// user. A duplicate email surfaces driven.ErrDuplicateEmail from the store.
func (s *AuthService) CreateUser(ctx context.Context, email, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.users.Create(ctx, email, string(hash))
}

// IssueToken builds a signed bearer token for the given user id.
func (s *AuthService) IssueToken(userID int64) (string, error) {
	return s.codec.issue(userID, time.Now().UTC())
}

// VerifyToken checks signature and expiry and returns the subject user id.
// Failures are one of ErrTokenMalformed, ErrTokenSignature, ErrTokenExpired.
func (s *AuthService) VerifyToken(token string) (int64, error) {
	return s.codec.verify(token)
}

// ResolveIdentity composes token verification with a user lookup. The three
// internal failure modes — missing/malformed credential, invalid or expired
// token, user since deleted — are logged for observability but all collapse
// to ErrUnauthorized. A store failure propagates as-is.
func (s *AuthService) ResolveIdentity(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		s.logger.Debug("identity rejected", "reason", "missing credential")
		return nil, ErrUnauthorized
	}

	userID, err := s.codec.verify(token)
	if err != nil {
		s.logger.Debug("identity rejected", "reason", err)
		return nil, ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	if user == nil {
		s.logger.Debug("identity rejected", "reason", "user no longer exists", "user_id", userID)
		return nil, ErrUnauthorized
	}

	return user, nil
}
