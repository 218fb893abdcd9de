package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-auth-api/internal/application/account"
	"github.com/go-auth-api/internal/application/token"
	"github.com/go-auth-api/internal/domain"
	"github.com/go-auth-api/internal/pkg/validate"
	"github.com/go-auth-api/internal/transport/http/middleware"
)

// TokenHandler handles login, logout, and token-refresh endpoints.
type TokenHandler struct {
	accounts account.Service
	tokens   token.Service
}

func NewTokenHandler(accounts account.Service, tokens token.Service) *TokenHandler {
	return &TokenHandler{accounts: accounts, tokens: tokens}
}

func (h *TokenHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	access, err := h.tokens.IssueAccessToken(a.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	refresh, err := h.tokens.IssueRefreshToken(a.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	writeJSON(w, http.StatusOK, TokenPairEnvelope{
		Message:      fmt.Sprintf("logged in as %s", a.Email),
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

// LogoutAccess revokes the access token that authenticated this request.
func (h *TokenHandler) LogoutAccess(w http.ResponseWriter, r *http.Request) {
	raw, ok := middleware.RawTokenFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.tokens.RevokeToken(r.Context(), raw); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "access token has been revoked"})
}

// LogoutRefresh revokes the refresh token presented in the request body.
func (h *TokenHandler) LogoutRefresh(w http.ResponseWriter, r *http.Request) {
	raw, ok := refreshTokenFromBody(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "refresh_token required")
		return
	}
	if err := h.tokens.RevokeToken(r.Context(), raw); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "refresh token has been revoked"})
}

// Refresh mints a new access token from a still-valid refresh token.
func (h *TokenHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	raw, ok := refreshTokenFromBody(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "refresh_token required")
		return
	}
	subject, err := h.tokens.VerifyToken(r.Context(), raw, domain.KindRefresh)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	access, err := h.tokens.IssueAccessToken(subject)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	writeJSON(w, http.StatusOK, TokenPairEnvelope{AccessToken: access})
}

func refreshTokenFromBody(r *http.Request) (string, bool) {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RefreshToken == "" {
		return "", false
	}
	return body.RefreshToken, true
}
