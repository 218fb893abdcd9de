package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-auth-api/internal/config"
	"github.com/go-auth-api/internal/domain"
	"github.com/go-auth-api/internal/pkg/id"
	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the JWT payload fields for access and refresh tokens.
type Claims struct {
	Kind domain.TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 JWTs using the server secret.
// Access and refresh tokens differ only in kind and expiry; both carry a
// fresh jti so they can be revoked individually.
type Provider struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewProvider(cfg *config.Config) (*Provider, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	return &Provider{
		secret:        []byte(cfg.JWTSecret),
		accessExpiry:  cfg.AccessTokenExpiry,
		refreshExpiry: cfg.RefreshTokenExpiry,
	}, nil
}

// Sign mints a token of the given kind for subject with a fresh random jti.
func (p *Provider) Sign(subject string, kind domain.TokenKind) (string, error) {
	expiry := p.accessExpiry
	if kind == domain.KindRefresh {
		expiry = p.refreshExpiry
	}
	now := time.Now()
	claims := Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        id.New(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// Parse verifies the signature and expiry of a raw token and returns its
// claims. Expired tokens map to domain.ErrTokenExpired, every other parse or
// signature failure to domain.ErrInvalidToken.
func (p *Provider) Parse(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("parse token: %w", domain.ErrTokenExpired)
		}
		return nil, fmt.Errorf("parse token: %w", domain.ErrInvalidToken)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims: %w", domain.ErrInvalidToken)
	}
	// Confirmation tokens share the signing secret but carry a purpose tag
	// instead of a kind, so they are rejected here.
	if claims.Kind != domain.KindAccess && claims.Kind != domain.KindRefresh {
		return nil, fmt.Errorf("unknown token kind: %w", domain.ErrInvalidToken)
	}
	return claims, nil
}
