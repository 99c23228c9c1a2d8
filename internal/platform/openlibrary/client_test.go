package openlibrary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/platform/retry"
)

func TestEditionsByISBN(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/books", r.URL.Path)
		assert.Equal(t, "ISBN:9780441013593,ISBN:0000000000", r.URL.Query().Get("bibkeys"))
		assert.Equal(t, "data", r.URL.Query().Get("jscmd"))
		assert.Equal(t, "libraryapi-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ISBN:9780441013593":{"title":"Dune","authors":[{"url":"/authors/OL1A","name":"Frank Herbert"}],"publish_date":"1965"}}`))
	}))
	defer srv.Close()

	c := NewClient("libraryapi-test", 100, WithBaseURL(srv.URL))
	got, err := c.EditionsByISBN(context.Background(), []string{"9780441013593", "0000000000"})
	require.NoError(t, err)
	require.Len(t, got, 1)

	ed := got["9780441013593"]
	assert.Equal(t, "Dune", ed.Title)
	assert.Equal(t, "Frank Herbert", ed.AuthorNames())
	y, ok := ed.PublishYear()
	assert.True(t, ok)
	assert.Equal(t, 1965, y)
}

func TestEditionsByISBN_Empty(t *testing.T) {
	c := NewClient("libraryapi-test", 100, WithBaseURL("http://127.0.0.1:1"))
	got, err := c.EditionsByISBN(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGet_RetriesThrottling(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient("libraryapi-test", 100, WithBaseURL(srv.URL), WithRetry(retry.WithBaseDelay(time.Millisecond)))
	_, err := c.EditionsByISBN(context.Background(), []string{"9780441013593"})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGet_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient("libraryapi-test", 100, WithBaseURL(srv.URL), WithRetry(retry.WithBaseDelay(time.Millisecond)))
	_, err := c.EditionsByISBN(context.Background(), []string{"9780441013593"})

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.Equal(t, int32(1), calls.Load())
}

func TestPublishYear(t *testing.T) {
	for date, want := range map[string]int{
		"March 1965":   1965,
		"2001-05-02":   2001,
		"c. 1813":      1813,
		"unknown date": 0,
	} {
		y, ok := Edition{PublishDate: date}.PublishYear()
		assert.Equal(t, want != 0, ok, date)
		assert.Equal(t, want, y, date)
	}
}
