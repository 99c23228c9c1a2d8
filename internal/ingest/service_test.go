package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/book"
	"libraryapi/internal/catalog"
	"libraryapi/internal/platform/openlibrary"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) EditionsByISBN(ctx context.Context, isbns []string) (map[string]openlibrary.Edition, error) {
	args := m.Called(ctx, isbns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]openlibrary.Edition), args.Error(1)
}

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) Create(ctx context.Context, in catalog.CreateInput) (book.Book, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(book.Book), args.Error(1)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dune() openlibrary.Edition {
	return openlibrary.Edition{
		Title:       "Dune",
		Authors:     []openlibrary.Author{{Name: "Frank Herbert"}},
		PublishDate: "August 1965",
	}
}

func TestService_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("creates known editions and reports the rest", func(t *testing.T) {
		src := new(mockSource)
		cat := new(mockCatalog)
		s := NewService(src, cat, Config{BatchSize: 10, Copies: 2}, quietLogger())

		src.On("EditionsByISBN", ctx, []string{"9780441013593", "9780000000002", "9780547928227"}).
			Return(map[string]openlibrary.Edition{
				"9780441013593": dune(),
				"9780547928227": {Title: "The Hobbit"},
			}, nil)

		cat.On("Create", ctx, mock.MatchedBy(func(in catalog.CreateInput) bool {
			return in.ISBN == "9780441013593" && in.Author == "Frank Herbert" &&
				in.TotalCopies == 2 && in.PublicationYear != nil && *in.PublicationYear == 1965
		})).Return(book.Book{ID: "b1"}, nil)
		cat.On("Create", ctx, mock.MatchedBy(func(in catalog.CreateInput) bool {
			return in.ISBN == "9780547928227"
		})).Return(book.Book{}, book.ErrISBNTaken)

		res, err := s.Import(ctx, []string{"978-0-441-01359-3", "9780000000002", "9780547928227", "not-an-isbn", "9780441013593"})
		require.NoError(t, err)

		assert.Equal(t, []string{"9780441013593"}, res.Imported)
		assert.Equal(t, []string{"9780547928227"}, res.Skipped)
		assert.Equal(t, []string{"9780000000002"}, res.Missing)
		assert.Equal(t, []string{"not-an-isbn"}, res.Invalid)
		src.AssertExpectations(t)
		cat.AssertExpectations(t)
	})

	t.Run("splits lookups into batches", func(t *testing.T) {
		src := new(mockSource)
		cat := new(mockCatalog)
		s := NewService(src, cat, Config{BatchSize: 2}, quietLogger())

		src.On("EditionsByISBN", ctx, []string{"0441013597", "0156012197"}).Return(map[string]openlibrary.Edition{}, nil).Once()
		src.On("EditionsByISBN", ctx, []string{"014143951X"}).Return(map[string]openlibrary.Edition{}, nil).Once()

		res, err := s.Import(ctx, []string{"0441013597", "0156012197", "014143951x"})
		require.NoError(t, err)
		assert.Len(t, res.Missing, 3)
		src.AssertExpectations(t)
		cat.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("uses a placeholder author", func(t *testing.T) {
		src := new(mockSource)
		cat := new(mockCatalog)
		s := NewService(src, cat, Config{}, quietLogger())

		src.On("EditionsByISBN", ctx, []string{"9780441013593"}).
			Return(map[string]openlibrary.Edition{"9780441013593": {Title: "Dune"}}, nil)
		cat.On("Create", ctx, catalog.CreateInput{ISBN: "9780441013593", Title: "Dune", Author: "Unknown", TotalCopies: 1}).
			Return(book.Book{ID: "b1"}, nil)

		_, err := s.Import(ctx, []string{"9780441013593"})
		require.NoError(t, err)
		cat.AssertExpectations(t)
	})

	t.Run("stops on lookup failure", func(t *testing.T) {
		src := new(mockSource)
		cat := new(mockCatalog)
		s := NewService(src, cat, Config{}, quietLogger())

		boom := errors.New("upstream down")
		src.On("EditionsByISBN", ctx, mock.Anything).Return(nil, boom)

		_, err := s.Import(ctx, []string{"9780441013593"})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("stops on storage failure", func(t *testing.T) {
		src := new(mockSource)
		cat := new(mockCatalog)
		s := NewService(src, cat, Config{}, quietLogger())

		src.On("EditionsByISBN", ctx, mock.Anything).Return(map[string]openlibrary.Edition{"9780441013593": dune()}, nil)
		boom := errors.New("disk full")
		cat.On("Create", ctx, mock.Anything).Return(book.Book{}, boom)

		res, err := s.Import(ctx, []string{"9780441013593"})
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, res.Imported)
	})
}
