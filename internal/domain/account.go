package domain

import (
	"strings"
	"time"
)

// AccountState is the lifecycle state of an account.
// Accounts are created Pending and move to Active exactly once, on email confirmation.
type AccountState string

const (
	StatePending AccountState = "pending"
	StateActive  AccountState = "active"
)

type Account struct {
	Email          string       `json:"email" dynamodbav:"email"`
	PasswordDigest string       `json:"-" dynamodbav:"password_digest"`
	State          AccountState `json:"state" dynamodbav:"state"`
	CreatedAt      time.Time    `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time    `json:"updated" dynamodbav:"updated_at"`
}

// Active reports whether the account has completed email confirmation.
func (a *Account) Active() bool { return a.State == StateActive }

// NormalizeEmail case-folds an email address. Applied before every store
// write and lookup so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
