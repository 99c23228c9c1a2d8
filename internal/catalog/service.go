// Package catalog is the CRUD surface for books. Every change to copy
// counts goes through the inventory ledger so status never drifts from the
// available count.
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"libraryapi/internal/book"
	"libraryapi/internal/inventory"
)

type Service struct {
	repo book.Repository
	now  func() time.Time
}

func NewService(repo book.Repository) *Service {
	return &Service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// WithClock replaces the time source; used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateInput describes a new catalog entry. AvailableCopies defaults to
// TotalCopies.
type CreateInput struct {
	ISBN            string
	Title           string
	Author          string
	PublicationYear *int
	TotalCopies     int
	AvailableCopies *int
}

// UpdateInput replaces every editable field of a book.
type UpdateInput struct {
	ISBN            string
	Title           string
	Author          string
	PublicationYear *int
	TotalCopies     int
	AvailableCopies int
}

func (s *Service) Create(ctx context.Context, in CreateInput) (book.Book, error) {
	available := in.TotalCopies
	if in.AvailableCopies != nil {
		available = *in.AvailableCopies
	}

	now := s.now()
	b := book.Book{
		ID:              uuid.NewString(),
		ISBN:            normalizeISBN(in.ISBN),
		Title:           strings.TrimSpace(in.Title),
		Author:          strings.TrimSpace(in.Author),
		PublicationYear: in.PublicationYear,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := inventory.SetStock(&b, in.TotalCopies, available, 0); err != nil {
		return book.Book{}, err
	}
	if err := s.repo.Create(ctx, &b); err != nil {
		return book.Book{}, err
	}
	return b, nil
}

func (s *Service) Get(ctx context.Context, id string) (book.Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByISBN(ctx context.Context, isbn string) (book.Book, error) {
	return s.repo.GetByISBN(ctx, normalizeISBN(isbn))
}

func (s *Service) List(ctx context.Context, q book.Query) ([]book.Book, int, error) {
	return s.repo.List(ctx, q)
}

// Update edits a book while holding its row. The new counts must leave room
// for every copy that is currently lent out.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (book.Book, error) {
	return s.repo.Update(ctx, id, func(b *book.Book, activeLoans int) error {
		if err := inventory.SetStock(b, in.TotalCopies, in.AvailableCopies, activeLoans); err != nil {
			return err
		}
		b.ISBN = normalizeISBN(in.ISBN)
		b.Title = strings.TrimSpace(in.Title)
		b.Author = strings.TrimSpace(in.Author)
		b.PublicationYear = in.PublicationYear
		b.UpdatedAt = s.now()
		return nil
	})
}

// Delete removes a book that has no ACTIVE loans. Returned loans keep the
// title and lose the reference.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id, func(activeLoans int) error {
		if activeLoans > 0 {
			return book.ErrHasActiveLoans
		}
		return nil
	})
}

func normalizeISBN(s string) string {
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	return strings.ToUpper(s)
}
