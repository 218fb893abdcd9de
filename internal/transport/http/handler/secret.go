package handler

import (
	"net/http"

	"github.com/go-auth-api/internal/transport/http/middleware"
)

// SecretHandler serves a sample resource protected by the access token.
type SecretHandler struct{}

func NewSecretHandler() *SecretHandler { return &SecretHandler{} }

func (h *SecretHandler) Get(w http.ResponseWriter, r *http.Request) {
	subject, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Subject string `json:"subject"`
		Answer  int    `json:"answer"`
	}{Subject: subject, Answer: 42})
}
