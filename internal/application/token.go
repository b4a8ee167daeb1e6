package application

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failure reasons. They stay distinct inside the process
// for logging; the HTTP boundary collapses all of them into a single 401.
var (
	// ErrTokenMalformed covers structurally invalid tokens, including a
	// non-numeric subject claim.
	ErrTokenMalformed = errors.New("token malformed")

	// ErrTokenSignature means the signature did not verify against the
	// configured secret.
	ErrTokenSignature = errors.New("token signature invalid")

	// ErrTokenExpired means the token was well-formed and correctly signed
	// but its expiry is in the past.
	ErrTokenExpired = errors.New("token expired")
)

// tokenCodec issues and verifies signed bearer tokens carrying the user id as
// subject and an absolute expiry. The secret and signing method are fixed at
// construction and never rotated mid-process.
type tokenCodec struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

func newTokenCodec(secret []byte, algorithm string, ttl time.Duration) (*tokenCodec, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not an HMAC method", algorithm)
	}

	return &tokenCodec{secret: secret, method: method, ttl: ttl}, nil
}

// issue builds a signed token with subject = userID and expiry = now + ttl.
func (c *tokenCodec) issue(userID int64, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// verify checks signature and expiry together and returns the subject user id.
// All failures map onto one of the three sentinel reasons; no library error
// escapes this function.
func (c *tokenCodec) verify(tokenString string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{c.method.Alg()}),
	)

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return 0, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return 0, ErrTokenSignature
	case err != nil:
		return 0, ErrTokenMalformed
	case !token.Valid:
		return 0, ErrTokenMalformed
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrTokenMalformed
	}
	return userID, nil
}
