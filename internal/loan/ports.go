package loan

import (
	"context"
	"time"

	"libraryapi/internal/activity"
	"libraryapi/internal/inventory"
	"libraryapi/internal/patron"
)

// Tx is the set of operations available inside one loan transaction. Lock
// methods hold the row until the transaction ends; ErrNotFound variants of
// the owning package are returned for missing rows.
type Tx interface {
	inventory.BookStore
	activity.LoanCounter

	LockPatron(ctx context.Context, id string) (patron.Patron, error)
	LockLoan(ctx context.Context, id string) (Loan, error)
	InsertLoan(ctx context.Context, l Loan, patronName, bookTitle string) error
	MarkReturned(ctx context.Context, id string, at time.Time) error
	View(ctx context.Context, id string) (View, error)
}

// Store runs loan transactions and read projections.
//
// WithinTx commits when fn returns nil and rolls back otherwise. Transient
// failures (serialization, deadlock, busy) re-run fn a bounded number of
// times and end in ErrConcurrentModification.
type Store interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	ListViews(ctx context.Context, f Filter) ([]View, error)
	PatronExists(ctx context.Context, id string) (bool, error)
}
