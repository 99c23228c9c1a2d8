package app_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/app"
	"libraryapi/internal/config"
	"libraryapi/internal/platform/crypto"
	"libraryapi/internal/testutil"
)

const (
	secret   = "routes-test-secret"
	email    = "librarian@library.test"
	password = "s3cret-pass"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	hash, err := crypto.HashPassword(password)
	require.NoError(t, err)

	cfg := config.Config{
		DBDriver:              "sqlite",
		DBTimeout:             5 * time.Second,
		JWTSecret:             secret,
		TokenTTL:              time.Hour,
		LibrarianEmail:        email,
		LibrarianPasswordHash: hash,
		MaxBodyBytes:          1 << 20,
		LoanListOrder:         "asc",
		LoanPeriodDays:        14,
		MaxActiveLoans:        3,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := app.NewSQLite(testutil.SQLiteDB(t), cfg, logger)
	return a.Routes(nil)
}

type client struct {
	t      *testing.T
	router http.Handler
	token  string
}

func (c *client) do(method, path string, body any) testutil.RecordResponse {
	c.t.Helper()
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, testutil.NewRequestWithAuth(method, path, body, c.token))
	return testutil.RecordHTTPResponse(w)
}

func TestRoutes_Health(t *testing.T) {
	router := newRouter(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRoutes_MutationsRequireLibrarian(t *testing.T) {
	c := &client{t: t, router: newRouter(t)}

	resp := c.do(http.MethodPost, "/v1/books", map[string]any{"isbn": "9780441013593", "title": "Dune", "author": "Frank Herbert", "total_copies": 1})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	c.token = testutil.GenerateTestToken(secret, "someone", "MEMBER")
	resp = c.do(http.MethodPost, "/v1/loans", map[string]any{})
	assert.Equal(t, http.StatusForbidden, resp.Code)

	c.token = testutil.GenerateExpiredToken(secret, email, crypto.RoleLibrarian)
	resp = c.do(http.MethodPatch, "/v1/loans/2b7e1516-28ae-4d2a-abf7-158809cf4f3c/return", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	c.token = ""
	resp = c.do(http.MethodGet, "/v1/books", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRoutes_LoanLifecycle(t *testing.T) {
	c := &client{t: t, router: newRouter(t)}

	login := c.do(http.MethodPost, "/v1/auth/login", map[string]any{"email": email, "password": password})
	require.Equal(t, http.StatusOK, login.Code)
	c.token = login.Data()["access_token"].(string)

	created := c.do(http.MethodPost, "/v1/books", map[string]any{
		"isbn": "978-0-441-01359-3", "title": "Dune", "author": "Frank Herbert", "total_copies": 1,
	})
	require.Equal(t, http.StatusCreated, created.Code)
	bookID := created.Data()["id"].(string)

	byISBN := c.do(http.MethodGet, "/v1/books/isbn/9780441013593", nil)
	require.Equal(t, http.StatusOK, byISBN.Code)
	assert.Equal(t, bookID, byISBN.Data()["id"])

	var patrons []string
	for _, p := range []map[string]any{
		{"name": "Ada", "email": "ada@library.test", "national_id": "N-1"},
		{"name": "Grace", "email": "grace@library.test", "national_id": "N-2"},
	} {
		resp := c.do(http.MethodPost, "/v1/patrons", p)
		require.Equal(t, http.StatusCreated, resp.Code)
		patrons = append(patrons, resp.Data()["id"].(string))
	}

	dup := c.do(http.MethodPost, "/v1/patrons", map[string]any{"name": "Ada 2", "email": "ada@library.test", "national_id": "N-3"})
	assert.Equal(t, http.StatusConflict, dup.Code)

	lent := c.do(http.MethodPost, "/v1/loans", map[string]any{"patron_id": patrons[0], "book_id": bookID})
	require.Equal(t, http.StatusCreated, lent.Code)
	loanID := lent.Data()["id"].(string)
	assert.Equal(t, "Dune", lent.Data()["book_title"])
	assert.Equal(t, "Ada", lent.Data()["patron_name"])

	book := c.do(http.MethodGet, "/v1/books/"+bookID, nil)
	assert.EqualValues(t, 0, book.Data()["available_copies"])
	assert.Equal(t, "UNAVAILABLE", book.Data()["status"])

	second := c.do(http.MethodPost, "/v1/loans", map[string]any{"patron_id": patrons[1], "book_id": bookID})
	assert.Equal(t, http.StatusUnprocessableEntity, second.Code)
	assert.Equal(t, "book not available", second.ErrorMessage())

	deleteBlocked := c.do(http.MethodDelete, "/v1/books/"+bookID, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, deleteBlocked.Code)
	assert.Equal(t, "book has active loans", deleteBlocked.ErrorMessage())

	all := c.do(http.MethodGet, "/v1/loans?order=desc", nil)
	require.Equal(t, http.StatusOK, all.Code)
	assert.Len(t, all.List(), 1)

	mine := c.do(http.MethodGet, "/v1/patrons/"+patrons[0]+"/loans", nil)
	require.Equal(t, http.StatusOK, mine.Code)
	assert.Len(t, mine.List(), 1)

	overdue := c.do(http.MethodGet, "/v1/loans/overdue", nil)
	require.Equal(t, http.StatusOK, overdue.Code)
	assert.Empty(t, overdue.List())

	returned := c.do(http.MethodPatch, "/v1/loans/"+loanID+"/return", nil)
	require.Equal(t, http.StatusOK, returned.Code)
	assert.Equal(t, "RETURNED", returned.Data()["status"])
	assert.NotNil(t, returned.Data()["return_date"])

	again := c.do(http.MethodPatch, "/v1/loans/"+loanID+"/return", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, again.Code)
	assert.Equal(t, "already returned", again.ErrorMessage())

	book = c.do(http.MethodGet, "/v1/books/"+bookID, nil)
	assert.EqualValues(t, 1, book.Data()["available_copies"])
	assert.Equal(t, "AVAILABLE", book.Data()["status"])

	deleted := c.do(http.MethodDelete, "/v1/books/"+bookID, nil)
	assert.Equal(t, http.StatusNoContent, deleted.Code)

	history := c.do(http.MethodGet, "/v1/loans/"+loanID, nil)
	require.Equal(t, http.StatusOK, history.Code)
	assert.Nil(t, history.Data()["book_id"])
	assert.Equal(t, "Dune", history.Data()["book_title"])

	unknown := c.do(http.MethodGet, "/v1/patrons/00000000-0000-0000-0000-000000000000/loans", nil)
	assert.Equal(t, http.StatusNotFound, unknown.Code)
	assert.Equal(t, "NOT_FOUND", unknown.ErrorCode())
}
