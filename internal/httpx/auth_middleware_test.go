package httpx

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/platform/crypto"
)

const testSecret = "test-secret"

func token(t *testing.T, role string) string {
	t.Helper()
	tok, _, err := crypto.GenerateToken(testSecret, "desk@library.test", role, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	var gotUser, gotRole string
	handler := AuthMiddleware(testSecret, crypto.RoleLibrarian)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotRole = UserIDFrom(r), RoleFrom(r)
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", "Bearer " + token(t, "PATRON"), http.StatusForbidden},
		{"librarian", "Bearer " + token(t, crypto.RoleLibrarian), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/loans", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
	assert.Equal(t, "desk@library.test", gotUser)
	assert.Equal(t, crypto.RoleLibrarian, gotRole)
}

func TestAccessLogMiddleware_RecordsUser(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	inner := AuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	handler := Chain(inner, RequestIDMiddleware, AccessLogMiddleware(logger))

	req := httptest.NewRequest(http.MethodPost, "/v1/loans", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, crypto.RoleLibrarian))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, "status=201")
	assert.Contains(t, out, "user_id=desk@library.test")
	assert.Contains(t, out, "request_id=")
}
