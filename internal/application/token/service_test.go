package token

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-auth-api/internal/config"
	"github.com/go-auth-api/internal/domain"
	jwtinfra "github.com/go-auth-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockLedger struct{ mock.Mock }

func (m *mockLedger) Contains(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

func (m *mockLedger) Insert(ctx context.Context, jti string, expiresAt time.Time) error {
	return m.Called(ctx, jti, expiresAt).Error(0)
}

// memLedger is an in-memory revocation set for flow tests.
type memLedger struct{ revoked map[string]bool }

func newMemLedger() *memLedger { return &memLedger{revoked: map[string]bool{}} }

func (m *memLedger) Contains(_ context.Context, jti string) (bool, error) {
	return m.revoked[jti], nil
}

func (m *memLedger) Insert(_ context.Context, jti string, _ time.Time) error {
	m.revoked[jti] = true
	return nil
}

// --- helpers ---

func testProvider(t *testing.T, accessExpiry time.Duration) *jwtinfra.Provider {
	t.Helper()
	p, err := jwtinfra.NewProvider(&config.Config{
		JWTSecret:          "test-secret",
		AccessTokenExpiry:  accessExpiry,
		RefreshTokenExpiry: 30 * 24 * time.Hour,
	})
	require.NoError(t, err)
	return p
}

// --- tests ---

func TestVerifyToken_HappyPath(t *testing.T) {
	p := testProvider(t, 15*time.Minute)
	ml := &mockLedger{}
	ml.On("Contains", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)

	svc := NewService(p, ml)
	raw, err := svc.IssueAccessToken("a@x.com")
	require.NoError(t, err)

	subject, err := svc.VerifyToken(context.Background(), raw, domain.KindAccess)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
	ml.AssertExpectations(t)
}

func TestVerifyToken_WrongKind(t *testing.T) {
	p := testProvider(t, 15*time.Minute)
	ml := &mockLedger{}
	svc := NewService(p, ml)

	access, err := svc.IssueAccessToken("a@x.com")
	require.NoError(t, err)
	refresh, err := svc.IssueRefreshToken("a@x.com")
	require.NoError(t, err)

	_, err = svc.VerifyToken(context.Background(), access, domain.KindRefresh)
	assert.True(t, errors.Is(err, domain.ErrWrongTokenKind))

	_, err = svc.VerifyToken(context.Background(), refresh, domain.KindAccess)
	assert.True(t, errors.Is(err, domain.ErrWrongTokenKind))

	// Kind mismatch is decided before the ledger is consulted.
	ml.AssertNotCalled(t, "Contains", mock.Anything, mock.Anything)
}

func TestVerifyToken_Expired(t *testing.T) {
	p := testProvider(t, -time.Minute)
	ml := &mockLedger{}
	svc := NewService(p, ml)

	raw, err := svc.IssueAccessToken("a@x.com")
	require.NoError(t, err)

	_, err = svc.VerifyToken(context.Background(), raw, domain.KindAccess)
	assert.True(t, errors.Is(err, domain.ErrTokenExpired))
	ml.AssertNotCalled(t, "Contains", mock.Anything, mock.Anything)
}

func TestVerifyToken_Malformed(t *testing.T) {
	svc := NewService(testProvider(t, 15*time.Minute), &mockLedger{})

	_, err := svc.VerifyToken(context.Background(), "garbage", domain.KindAccess)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
}

func TestVerifyToken_Revoked(t *testing.T) {
	p := testProvider(t, 15*time.Minute)
	ml := &mockLedger{}
	ml.On("Contains", mock.Anything, mock.AnythingOfType("string")).Return(true, nil)

	svc := NewService(p, ml)
	raw, err := svc.IssueAccessToken("a@x.com")
	require.NoError(t, err)

	_, err = svc.VerifyToken(context.Background(), raw, domain.KindAccess)
	assert.True(t, errors.Is(err, domain.ErrTokenRevoked))
}

func TestVerifyToken_LedgerFailure(t *testing.T) {
	p := testProvider(t, 15*time.Minute)
	ml := &mockLedger{}
	ml.On("Contains", mock.Anything, mock.AnythingOfType("string")).Return(false, errors.New("dynamo down"))

	svc := NewService(p, ml)
	raw, err := svc.IssueAccessToken("a@x.com")
	require.NoError(t, err)

	_, err = svc.VerifyToken(context.Background(), raw, domain.KindAccess)
	assert.True(t, errors.Is(err, domain.ErrStorage))
}

func TestRevokeToken_InsertsJTIWithTokenExpiry(t *testing.T) {
	p := testProvider(t, 15*time.Minute)
	ml := &mockLedger{}
	ml.On("Insert", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)

	svc := NewService(p, ml)
	raw, err := svc.IssueAccessToken("a@x.com")
	require.NoError(t, err)

	require.NoError(t, svc.RevokeToken(context.Background(), raw))

	expiresAt := ml.Calls[0].Arguments.Get(2).(time.Time)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)
	ml.AssertExpectations(t)
}

func TestRevokeToken_ForgedTokenCannotRevoke(t *testing.T) {
	p := testProvider(t, 15*time.Minute)
	ml := &mockLedger{}
	svc := NewService(p, ml)

	raw, err := svc.IssueAccessToken("a@x.com")
	require.NoError(t, err)

	err = svc.RevokeToken(context.Background(), raw+"x")
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
	ml.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func TestRevokeToken_LedgerFailureSurfaces(t *testing.T) {
	p := testProvider(t, 15*time.Minute)
	ml := &mockLedger{}
	ml.On("Insert", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(errors.New("dynamo down"))

	svc := NewService(p, ml)
	raw, err := svc.IssueAccessToken("a@x.com")
	require.NoError(t, err)

	err = svc.RevokeToken(context.Background(), raw)
	assert.True(t, errors.Is(err, domain.ErrStorage))
}

func TestRevokeThenVerify(t *testing.T) {
	svc := NewService(testProvider(t, 15*time.Minute), newMemLedger())

	raw, err := svc.IssueAccessToken("a@x.com")
	require.NoError(t, err)

	subject, err := svc.VerifyToken(context.Background(), raw, domain.KindAccess)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)

	require.NoError(t, svc.RevokeToken(context.Background(), raw))

	_, err = svc.VerifyToken(context.Background(), raw, domain.KindAccess)
	assert.True(t, errors.Is(err, domain.ErrTokenRevoked))
}

func TestRevokeToken_Idempotent(t *testing.T) {
	svc := NewService(testProvider(t, 15*time.Minute), newMemLedger())

	raw, err := svc.IssueAccessToken("a@x.com")
	require.NoError(t, err)

	require.NoError(t, svc.RevokeToken(context.Background(), raw))
	require.NoError(t, svc.RevokeToken(context.Background(), raw))
}
