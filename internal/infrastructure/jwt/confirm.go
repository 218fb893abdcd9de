package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-auth-api/internal/config"
	"github.com/go-auth-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// confirmPurpose tags confirmation tokens so they cannot be substituted for
// access/refresh tokens signed with the same secret.
const confirmPurpose = "email-confirm"

type confirmClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// ConfirmCodec signs and verifies single-purpose email confirmation tokens.
// Tokens are stateless: the email rides in the token itself, so no pending
// confirmation record is kept server-side.
type ConfirmCodec struct {
	secret []byte
	maxAge time.Duration
}

func NewConfirmCodec(cfg *config.Config) (*ConfirmCodec, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	return &ConfirmCodec{secret: []byte(cfg.JWTSecret), maxAge: cfg.ConfirmTokenMaxAge}, nil
}

// Encode signs a confirmation token binding email to the confirm-registration intent.
func (c *ConfirmCodec) Encode(email string) (string, error) {
	now := time.Now()
	claims := confirmClaims{
		Purpose: confirmPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(c.maxAge)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies a confirmation token and returns the email it was issued
// for. Any decode, signature, purpose, or max-age failure maps to
// domain.ErrInvalidConfirmationToken.
func (c *ConfirmCodec) Decode(raw string) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &confirmClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("decode confirmation token: %w", domain.ErrInvalidConfirmationToken)
	}
	claims, ok := token.Claims.(*confirmClaims)
	if !ok || !token.Valid || claims.Purpose != confirmPurpose {
		return "", fmt.Errorf("not a confirmation token: %w", domain.ErrInvalidConfirmationToken)
	}
	return claims.Subject, nil
}
