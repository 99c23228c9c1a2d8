package book_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/book"
	"libraryapi/internal/testutil"
)

func TestPostgresRepo_Lifecycle(t *testing.T) {
	pool := testutil.PostgresDB(t)
	repo := book.NewPostgresRepo(pool, 2*time.Second)
	ctx := context.Background()

	b := newBook("9780441013593", 2, 2)
	require.NoError(t, repo.Create(ctx, b))
	assert.ErrorIs(t, repo.Create(ctx, newBook("9780441013593", 1, 1)), book.ErrISBNTaken)

	got, err := repo.GetByISBN(ctx, b.ISBN)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, book.ErrNotFound)

	updated, err := repo.Update(ctx, b.ID, func(bk *book.Book, active int) error {
		assert.Equal(t, 0, active)
		bk.AvailableCopies = 0
		bk.Status = book.StatusUnavailable
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, book.StatusUnavailable, updated.Status)

	list, total, err := repo.List(ctx, book.Query{Status: book.StatusUnavailable, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, b.ID, func(int) error { return nil }))
	_, err = repo.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, book.ErrNotFound)

	err = repo.Delete(ctx, uuid.NewString(), func(int) error { return nil })
	assert.ErrorIs(t, err, book.ErrNotFound)
}
