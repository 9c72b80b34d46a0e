package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a user account.
type User struct {
	ID            int64               `json:"id"`
	Username      string              `json:"username"`
	Email         string              `json:"email"`
	PasswordHash  string              `json:"-"`
	SpendingLimit decimal.NullDecimal `json:"-"`
	CreatedAt     time.Time           `json:"created_at"`
}

// PublicUser is the projection of a user returned to clients.
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Public returns the client-safe projection of u.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}
