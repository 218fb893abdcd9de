package http

import (
	"net/http"

	"github.com/go-auth-api/internal/application/account"
	"github.com/go-auth-api/internal/application/token"
	"github.com/go-auth-api/internal/config"
	"github.com/go-auth-api/internal/transport/http/handler"
	appmiddleware "github.com/go-auth-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	accountSvc := account.NewService(deps.AccountRepo, deps.ConfirmCodec, deps.Notifier, cfg.BaseURL)
	tokenSvc := token.NewService(deps.TokenProvider, deps.RevocationRepo)

	authMw := appmiddleware.Auth(tokenSvc)

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	healthH := handler.NewHealthHandler()
	accountH := handler.NewAccountHandler(accountSvc)
	tokenH := handler.NewTokenHandler(accountSvc, tokenSvc)
	secretH := handler.NewSecretHandler()

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/registration", accountH.Register)
		r.Get("/confirm/{token}", accountH.Confirm)
		r.With(sensitiveRL.Limit).Post("/login", tokenH.Login)
		r.Post("/logout/refresh", tokenH.LogoutRefresh)
		r.Post("/token/refresh", tokenH.Refresh)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Post("/logout/access", tokenH.LogoutAccess)
			r.Get("/secret", secretH.Get)
		})

		// Debug routes — development only.
		if cfg.AppEnv == "development" {
			r.Get("/users", accountH.List)
			r.Delete("/users", accountH.DeleteAll)
		}
	})

	return r
}
