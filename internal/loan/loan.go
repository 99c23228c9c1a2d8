// Package loan runs the loan lifecycle: opening a loan takes a copy out of
// stock and closing it puts the copy back, each as one transaction.
package loan

import (
	"time"

	"libraryapi/internal/apperr"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusReturned Status = "RETURNED"
)

// DefaultLoanPeriodDays is the time between loan date and expected return.
const DefaultLoanPeriodDays = 14

var (
	ErrNotFound         = apperr.NotFound("loan not found")
	ErrPatronNotActive  = apperr.InvalidState("patron not active")
	ErrBookNotAvailable = apperr.InvalidState("book not available")
	ErrAlreadyReturned  = apperr.InvalidState("already returned")
	// ErrConcurrentModification is returned when a transaction kept failing
	// on serialization, deadlock or busy errors.
	ErrConcurrentModification = apperr.Conflict("concurrent modification, retry later")
)

// Loan is the stored record. PatronID and BookID are empty once the
// referenced row has been deleted, which only happens after return.
type Loan struct {
	ID                 string
	PatronID           string
	BookID             string
	LoanDate           time.Time
	ExpectedReturnDate time.Time
	ReturnDate         *time.Time
	Status             Status
}

// View is the read shape of a loan. Names come from the live rows when they
// still exist and from the snapshot taken at loan time otherwise.
type View struct {
	ID                 string     `json:"id" db:"id"`
	BookID             *string    `json:"book_id" db:"book_id"`
	BookTitle          string     `json:"book_title" db:"book_title"`
	PatronID           *string    `json:"patron_id" db:"patron_id"`
	PatronName         string     `json:"patron_name" db:"patron_name"`
	LoanDate           time.Time  `json:"loan_date" db:"loan_date"`
	ExpectedReturnDate time.Time  `json:"expected_return_date" db:"expected_return_date"`
	ReturnDate         *time.Time `json:"return_date" db:"return_date"`
	Status             Status     `json:"status" db:"status"`
}

// Order is the loan date ordering of list results.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ParseOrder accepts "asc" or "desc"; anything else yields ok == false.
func ParseOrder(s string) (Order, bool) {
	switch Order(s) {
	case OrderAsc, OrderDesc:
		return Order(s), true
	}
	return "", false
}

// Filter narrows a view listing. Zero values mean no restriction.
type Filter struct {
	LoanID        string
	PatronID      string
	Status        Status
	OverdueBefore time.Time
	Order         Order
}
