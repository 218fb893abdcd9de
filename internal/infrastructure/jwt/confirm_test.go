package jwtinfra

import (
	"errors"
	"testing"
	"time"

	"github.com/go-auth-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T) *ConfirmCodec {
	t.Helper()
	c, err := NewConfirmCodec(testConfig())
	require.NoError(t, err)
	return c
}

func TestConfirmCodec_RoundTrip(t *testing.T) {
	c := newTestCodec(t)

	for _, email := range []string{"a@x.com", "first.last@sub.example.org", "UPPER@x.com"} {
		token, err := c.Encode(email)
		require.NoError(t, err)

		got, err := c.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, email, got)
	}
}

func TestConfirmCodec_Tampered(t *testing.T) {
	c := newTestCodec(t)
	token, err := c.Encode("a@x.com")
	require.NoError(t, err)

	_, err = c.Decode(token + "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidConfirmationToken))
}

func TestConfirmCodec_WrongSecret(t *testing.T) {
	c := newTestCodec(t)
	token, err := c.Encode("a@x.com")
	require.NoError(t, err)

	cfg := testConfig()
	cfg.JWTSecret = "a-different-secret"
	other, err := NewConfirmCodec(cfg)
	require.NoError(t, err)

	_, err = other.Decode(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidConfirmationToken))
}

func TestConfirmCodec_MaxAge(t *testing.T) {
	cfg := testConfig()
	cfg.ConfirmTokenMaxAge = -time.Minute
	c, err := NewConfirmCodec(cfg)
	require.NoError(t, err)

	token, err := c.Encode("a@x.com")
	require.NoError(t, err)

	_, err = c.Decode(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidConfirmationToken))
}

func TestConfirmCodec_RejectsAccessToken(t *testing.T) {
	c := newTestCodec(t)
	p := newTestProvider(t)

	access, err := p.Sign("a@x.com", domain.KindAccess)
	require.NoError(t, err)

	// Same secret, wrong purpose — must not decode as a confirmation token.
	_, err = c.Decode(access)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidConfirmationToken))
}
