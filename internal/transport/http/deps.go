package http

import (
	"github.com/go-auth-api/internal/application/account"
	"github.com/go-auth-api/internal/application/token"
	jwtinfra "github.com/go-auth-api/internal/infrastructure/jwt"
)

// Deps holds all infrastructure dependencies for the router. The store and
// notifier fields are interfaces so router tests can inject in-memory fakes.
type Deps struct {
	AccountRepo    account.Store
	RevocationRepo token.Ledger
	Notifier       account.Notifier
	TokenProvider  *jwtinfra.Provider
	ConfirmCodec   *jwtinfra.ConfirmCodec
}
