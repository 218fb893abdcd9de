package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-auth-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Store is the credential store contract the lifecycle needs. Create must
// enforce email uniqueness at the storage layer: of two concurrent
// registrations for the same email, exactly one may succeed.
type Store interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Create(ctx context.Context, a *domain.Account) error
	Update(ctx context.Context, email string, updates map[string]interface{}) error
	ListAll(ctx context.Context) ([]domain.Account, error)
	DeleteAll(ctx context.Context) (int, error)
}

// Notifier dispatches the confirmation email. Fire-and-forget from the
// lifecycle's point of view; delivery failures surface as ErrNotifier.
type Notifier interface {
	Send(to, subject, body string) error
}

// ConfirmCodec signs and verifies the single-purpose confirmation token.
type ConfirmCodec interface {
	Encode(email string) (string, error)
	Decode(token string) (string, error)
}

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) error
	Confirm(ctx context.Context, token string) error
	Authenticate(ctx context.Context, email, password string) (*domain.Account, error)
	ListAll(ctx context.Context) ([]domain.Account, error)
	DeleteAll(ctx context.Context) (int, error)
}

type service struct {
	store    Store
	codec    ConfirmCodec
	notifier Notifier
	baseURL  string
}

func NewService(store Store, codec ConfirmCodec, notifier Notifier, baseURL string) Service {
	return &service{store: store, codec: codec, notifier: notifier, baseURL: baseURL}
}

// Register creates the account in Pending state and dispatches the
// confirmation email. Uniqueness is decided by the store's conditional
// insert, not by a prior lookup.
func (s *service) Register(ctx context.Context, req domain.RegisterRequest) error {
	email := domain.NormalizeEmail(req.Email)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	a := &domain.Account{
		Email:          email,
		PasswordDigest: string(hash),
		State:          domain.StatePending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.Create(ctx, a); err != nil {
		return err
	}

	token, err := s.codec.Encode(email)
	if err != nil {
		return fmt.Errorf("encode confirmation token: %w", err)
	}
	confirmURL := fmt.Sprintf("%s/v1/confirm/%s", s.baseURL, token)
	body := fmt.Sprintf("Please confirm your email address by visiting:\r\n\r\n%s\r\n", confirmURL)
	if err := s.notifier.Send(email, "Please confirm your email address.", body); err != nil {
		slog.Error("confirmation email delivery failed", "email", email, "err", err)
		return fmt.Errorf("send confirmation email: %w", domain.ErrNotifier)
	}
	return nil
}

// Confirm decodes the token and transitions the account to Active. A token
// for an email with no account is an inconsistent-state condition and fails
// with ErrAccountNotFound rather than silently succeeding. Replay after
// activation is a harmless no-op.
func (s *service) Confirm(ctx context.Context, token string) error {
	email, err := s.codec.Decode(token)
	if err != nil {
		return err
	}
	a, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if a.Active() {
		return nil
	}
	return s.store.Update(ctx, email, map[string]interface{}{"state": domain.StateActive})
}

// Authenticate checks account existence, Active state, and the password, in
// that order.
func (s *service) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	a, err := s.store.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, fmt.Errorf("email not registered: %w", domain.ErrUnknownAccount)
		}
		return nil, err
	}
	if !a.Active() {
		return nil, fmt.Errorf("email not yet verified: %w", domain.ErrNotVerified)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordDigest), []byte(password)); err != nil {
		return nil, fmt.Errorf("password mismatch: %w", domain.ErrWrongCredentials)
	}
	return a, nil
}

func (s *service) ListAll(ctx context.Context) ([]domain.Account, error) {
	return s.store.ListAll(ctx)
}

func (s *service) DeleteAll(ctx context.Context) (int, error) {
	return s.store.DeleteAll(ctx)
}
