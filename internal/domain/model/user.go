package model

import "time"

// User is an account identity. PasswordHash is an irreversible bcrypt digest
// and never crosses the API boundary.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
