// Package inventory is the only code path that changes a book's available
// copy count and the status derived from it.
package inventory

import (
	"context"
	"fmt"

	"libraryapi/internal/apperr"
	"libraryapi/internal/book"
)

var (
	// ErrNoCopyAvailable is returned when a reservation finds no free copy.
	ErrNoCopyAvailable = apperr.Conflict("no copy available")
	// ErrStockInvariant is returned when counts would leave 0 <= available <= total.
	ErrStockInvariant = apperr.InvalidState("stock invariant violated")
)

// BookStore reads and writes book stock inside the caller's transaction.
// LockBook must hold the row until the transaction ends.
type BookStore interface {
	LockBook(ctx context.Context, id string) (book.Book, error)
	UpdateStock(ctx context.Context, id string, available int, status book.Status) error
}

// RecomputeStatus derives the status from an available count.
func RecomputeStatus(available int) book.Status {
	if available > 0 {
		return book.StatusAvailable
	}
	return book.StatusUnavailable
}

// ValidateStock checks a direct edit of the counts against the copies that
// are currently lent out.
func ValidateStock(total, available, activeLoans int) error {
	switch {
	case total < 0 || available < 0:
		return fmt.Errorf("%w: copy counts must not be negative", ErrStockInvariant)
	case available > total:
		return fmt.Errorf("%w: available copies (%d) exceed total copies (%d)", ErrStockInvariant, available, total)
	case available+activeLoans > total:
		return fmt.Errorf("%w: available copies (%d) plus active loans (%d) exceed total copies (%d)",
			ErrStockInvariant, available, activeLoans, total)
	}
	return nil
}

// SetStock applies validated counts to b and recomputes its status.
func SetStock(b *book.Book, total, available, activeLoans int) error {
	if err := ValidateStock(total, available, activeLoans); err != nil {
		return err
	}
	b.TotalCopies = total
	b.AvailableCopies = available
	b.Status = RecomputeStatus(available)
	return nil
}

// ReserveCopy takes one copy of the book out of stock.
func ReserveCopy(ctx context.Context, s BookStore, bookID string) (book.Book, error) {
	b, err := s.LockBook(ctx, bookID)
	if err != nil {
		return book.Book{}, err
	}
	if b.Status != book.StatusAvailable || b.AvailableCopies <= 0 {
		return book.Book{}, ErrNoCopyAvailable
	}

	b.AvailableCopies--
	b.Status = RecomputeStatus(b.AvailableCopies)
	if err := s.UpdateStock(ctx, b.ID, b.AvailableCopies, b.Status); err != nil {
		return book.Book{}, err
	}
	return b, nil
}

// ReleaseCopy puts one copy back into stock. A release that would push
// available above total is rejected rather than clamped.
func ReleaseCopy(ctx context.Context, s BookStore, bookID string) (book.Book, error) {
	b, err := s.LockBook(ctx, bookID)
	if err != nil {
		return book.Book{}, err
	}
	if b.AvailableCopies+1 > b.TotalCopies {
		return book.Book{}, fmt.Errorf("%w: releasing a copy of book %s would exceed %d total copies",
			ErrStockInvariant, b.ID, b.TotalCopies)
	}

	b.AvailableCopies++
	b.Status = RecomputeStatus(b.AvailableCopies)
	if err := s.UpdateStock(ctx, b.ID, b.AvailableCopies, b.Status); err != nil {
		return book.Book{}, err
	}
	return b, nil
}
