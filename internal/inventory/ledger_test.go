package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/apperr"
	"libraryapi/internal/book"
)

type mockBookStore struct {
	mock.Mock
}

func (m *mockBookStore) LockBook(ctx context.Context, id string) (book.Book, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(book.Book), args.Error(1)
}

func (m *mockBookStore) UpdateStock(ctx context.Context, id string, available int, status book.Status) error {
	args := m.Called(ctx, id, available, status)
	return args.Error(0)
}

func stocked(total, available int) book.Book {
	return book.Book{ID: "b1", TotalCopies: total, AvailableCopies: available, Status: RecomputeStatus(available)}
}

func TestRecomputeStatus(t *testing.T) {
	assert.Equal(t, book.StatusAvailable, RecomputeStatus(2))
	assert.Equal(t, book.StatusAvailable, RecomputeStatus(1))
	assert.Equal(t, book.StatusUnavailable, RecomputeStatus(0))
}

func TestReserveCopy(t *testing.T) {
	ctx := context.Background()

	t.Run("decrements and keeps available", func(t *testing.T) {
		s := new(mockBookStore)
		s.On("LockBook", ctx, "b1").Return(stocked(5, 5), nil)
		s.On("UpdateStock", ctx, "b1", 4, book.StatusAvailable).Return(nil)

		b, err := ReserveCopy(ctx, s, "b1")
		require.NoError(t, err)
		assert.Equal(t, 4, b.AvailableCopies)
		assert.Equal(t, book.StatusAvailable, b.Status)
		s.AssertExpectations(t)
	})

	t.Run("last copy flips status", func(t *testing.T) {
		s := new(mockBookStore)
		s.On("LockBook", ctx, "b1").Return(stocked(1, 1), nil)
		s.On("UpdateStock", ctx, "b1", 0, book.StatusUnavailable).Return(nil)

		b, err := ReserveCopy(ctx, s, "b1")
		require.NoError(t, err)
		assert.Equal(t, book.StatusUnavailable, b.Status)
	})

	t.Run("no copy is a conflict", func(t *testing.T) {
		s := new(mockBookStore)
		s.On("LockBook", ctx, "b1").Return(stocked(1, 0), nil)

		_, err := ReserveCopy(ctx, s, "b1")
		assert.ErrorIs(t, err, ErrNoCopyAvailable)
		assert.ErrorIs(t, err, apperr.ErrConflict)
		s.AssertNotCalled(t, "UpdateStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing book", func(t *testing.T) {
		s := new(mockBookStore)
		s.On("LockBook", ctx, "b1").Return(book.Book{}, book.ErrNotFound)

		_, err := ReserveCopy(ctx, s, "b1")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		boom := errors.New("boom")
		s := new(mockBookStore)
		s.On("LockBook", ctx, "b1").Return(stocked(2, 2), nil)
		s.On("UpdateStock", ctx, "b1", 1, book.StatusAvailable).Return(boom)

		_, err := ReserveCopy(ctx, s, "b1")
		assert.ErrorIs(t, err, boom)
	})
}

func TestReleaseCopy(t *testing.T) {
	ctx := context.Background()

	t.Run("restores availability", func(t *testing.T) {
		s := new(mockBookStore)
		s.On("LockBook", ctx, "b1").Return(stocked(1, 0), nil)
		s.On("UpdateStock", ctx, "b1", 1, book.StatusAvailable).Return(nil)

		b, err := ReleaseCopy(ctx, s, "b1")
		require.NoError(t, err)
		assert.Equal(t, 1, b.AvailableCopies)
		assert.Equal(t, book.StatusAvailable, b.Status)
		s.AssertExpectations(t)
	})

	t.Run("never exceeds total", func(t *testing.T) {
		s := new(mockBookStore)
		s.On("LockBook", ctx, "b1").Return(stocked(2, 2), nil)

		_, err := ReleaseCopy(ctx, s, "b1")
		assert.ErrorIs(t, err, ErrStockInvariant)
		s.AssertNotCalled(t, "UpdateStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestValidateStock(t *testing.T) {
	tests := []struct {
		name                     string
		total, available, loaned int
		wantErr                  bool
	}{
		{"fully stocked", 5, 5, 0, false},
		{"some lent", 5, 3, 2, false},
		{"all lent", 2, 0, 2, false},
		{"negative available", 2, -1, 0, true},
		{"available above total", 2, 3, 0, true},
		{"total below lent copies", 2, 1, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStock(tt.total, tt.available, tt.loaned)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrStockInvariant)
				assert.ErrorIs(t, err, apperr.ErrInvalidState)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetStock(t *testing.T) {
	b := stocked(3, 3)
	require.NoError(t, SetStock(&b, 4, 0, 4))
	assert.Equal(t, 4, b.TotalCopies)
	assert.Equal(t, book.StatusUnavailable, b.Status)

	before := b
	assert.Error(t, SetStock(&b, 1, 1, 1))
	assert.Equal(t, before, b)
}
