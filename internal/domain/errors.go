package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	// Account lifecycle.
	ErrAlreadyExists    = errors.New("account already exists")
	ErrUnknownAccount   = errors.New("unknown account")
	ErrNotVerified      = errors.New("account not verified")
	ErrWrongCredentials = errors.New("wrong credentials")
	ErrAccountNotFound  = errors.New("account not found")

	// Tokens.
	ErrInvalidToken             = errors.New("invalid token")
	ErrTokenExpired             = errors.New("token expired")
	ErrWrongTokenKind           = errors.New("wrong token kind")
	ErrTokenRevoked             = errors.New("token revoked")
	ErrInvalidConfirmationToken = errors.New("invalid confirmation token")

	// Infrastructure.
	ErrStorage  = errors.New("storage failure")
	ErrNotifier = errors.New("notifier failure")
)
