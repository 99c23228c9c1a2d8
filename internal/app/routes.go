package app

import (
	"context"
	"net/http"
	"time"

	"libraryapi/internal/auth"
	"libraryapi/internal/catalog"
	"libraryapi/internal/httpx"
	"libraryapi/internal/loan"
	"libraryapi/internal/patron"
	"libraryapi/internal/platform/crypto"
)

// Routes returns the full HTTP surface with the middleware stack applied.
// Reads are public; every mutation needs a LIBRARIAN bearer token.
func (a *App) Routes(limiter *httpx.RateLimitMiddleware) http.Handler {
	authHandler := auth.NewHTTPHandler(a.Auth)
	bookHandler := catalog.NewHTTPHandler(a.Books)
	patronHandler := patron.NewHTTPHandler(a.Patrons)
	loanHandler := loan.NewHTTPHandler(a.Loans, a.Queries)

	librarian := httpx.AuthMiddleware(a.Config.JWTSecret, crypto.RoleLibrarian)
	protect := func(h http.HandlerFunc) http.Handler { return librarian(h) }

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := a.Ready(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("POST /v1/auth/login", authHandler.Login)
	router.Handle("GET /v1/auth/me", protect(authHandler.Me))

	router.HandleFunc("GET /v1/books", bookHandler.List)
	router.HandleFunc("GET /v1/books/{id}", bookHandler.Get)
	router.HandleFunc("GET /v1/books/isbn/{isbn}", bookHandler.GetByISBN)
	router.Handle("POST /v1/books", protect(bookHandler.Create))
	router.Handle("PUT /v1/books/{id}", protect(bookHandler.Update))
	router.Handle("DELETE /v1/books/{id}", protect(bookHandler.Delete))

	router.HandleFunc("GET /v1/patrons", patronHandler.List)
	router.HandleFunc("GET /v1/patrons/{id}", patronHandler.Get)
	router.HandleFunc("GET /v1/patrons/{id}/loans", loanHandler.ListByPatron)
	router.Handle("POST /v1/patrons", protect(patronHandler.Create))
	router.Handle("PUT /v1/patrons/{id}", protect(patronHandler.Update))
	router.Handle("DELETE /v1/patrons/{id}", protect(patronHandler.Delete))

	router.HandleFunc("GET /v1/loans", loanHandler.List)
	router.HandleFunc("GET /v1/loans/overdue", loanHandler.Overdue)
	router.HandleFunc("GET /v1/loans/{id}", loanHandler.Get)
	router.Handle("POST /v1/loans", protect(loanHandler.Create))
	router.Handle("PATCH /v1/loans/{id}/return", protect(loanHandler.Return))

	middlewares := []func(http.Handler) http.Handler{
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(a.Logger),
		httpx.RecoveryMiddleware(a.Logger),
		httpx.SecurityHeadersMiddleware(false),
		httpx.CORSMiddleware(a.Config.CORSAllowedOrigins),
		httpx.RequestSizeLimitMiddleware(a.Config.MaxBodyBytes),
	}
	if limiter != nil {
		middlewares = append(middlewares, limiter.Middleware)
	}
	return httpx.Chain(router, middlewares...)
}
