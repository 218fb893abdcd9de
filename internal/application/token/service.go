package token

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-auth-api/internal/domain"
	jwtinfra "github.com/go-auth-api/internal/infrastructure/jwt"
)

// Ledger is the durable set of revoked token identifiers. Contains is
// consulted on every verification; Insert must be idempotent.
type Ledger interface {
	Contains(ctx context.Context, jti string) (bool, error)
	Insert(ctx context.Context, jti string, expiresAt time.Time) error
}

type Service interface {
	IssueAccessToken(subject string) (string, error)
	IssueRefreshToken(subject string) (string, error)
	VerifyToken(ctx context.Context, raw string, required domain.TokenKind) (subject string, err error)
	RevokeToken(ctx context.Context, raw string) error
}

type service struct {
	provider *jwtinfra.Provider
	ledger   Ledger
}

func NewService(provider *jwtinfra.Provider, ledger Ledger) Service {
	return &service{provider: provider, ledger: ledger}
}

func (s *service) IssueAccessToken(subject string) (string, error) {
	return s.provider.Sign(subject, domain.KindAccess)
}

func (s *service) IssueRefreshToken(subject string) (string, error) {
	return s.provider.Sign(subject, domain.KindRefresh)
}

// VerifyToken checks signature, expiry, kind, and revocation status, in that
// order, and returns the authenticated subject.
func (s *service) VerifyToken(ctx context.Context, raw string, required domain.TokenKind) (string, error) {
	claims, err := s.provider.Parse(raw)
	if err != nil {
		return "", err
	}
	if claims.Kind != required {
		return "", fmt.Errorf("%s token required: %w", required, domain.ErrWrongTokenKind)
	}
	revoked, err := s.ledger.Contains(ctx, claims.ID)
	if err != nil {
		slog.Error("revocation ledger lookup failed", "jti", claims.ID, "err", err)
		return "", fmt.Errorf("revocation lookup: %w", domain.ErrStorage)
	}
	if revoked {
		return "", fmt.Errorf("token has been revoked: %w", domain.ErrTokenRevoked)
	}
	return claims.Subject, nil
}

// RevokeToken inserts the token's jti into the ledger. The signature must
// still validate — a forged or already-expired token cannot revoke anything.
// A ledger write failure is surfaced to the caller, never reported as
// success, since a revocation that silently fails leaves a live token.
func (s *service) RevokeToken(ctx context.Context, raw string) error {
	claims, err := s.provider.Parse(raw)
	if err != nil {
		return err
	}
	if err := s.ledger.Insert(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		slog.Error("revocation ledger insert failed", "jti", claims.ID, "err", err)
		return fmt.Errorf("revocation insert: %w", domain.ErrStorage)
	}
	return nil
}
