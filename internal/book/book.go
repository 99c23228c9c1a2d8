// Package book holds the Book aggregate and its persistence.
//
// Copy counts and the derived status are only changed through the
// inventory ledger; the repositories here persist whatever the ledger
// decided and never compute status themselves.
package book

import (
	"time"

	"libraryapi/internal/apperr"
)

// Status is the derived availability of a book.
type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusUnavailable Status = "UNAVAILABLE"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusAvailable || s == StatusUnavailable
}

var (
	// ErrNotFound is returned when a book is not found.
	ErrNotFound = apperr.NotFound("book not found")
	// ErrISBNTaken is returned when another book already uses the ISBN.
	ErrISBNTaken = apperr.Conflict("isbn already registered")
	// ErrHasActiveLoans is returned when deleting a book that is still lent out.
	ErrHasActiveLoans = apperr.InvalidState("book has active loans")
)

// Book represents a catalog entry and its lendable copies.
type Book struct {
	ID              string    `json:"id" db:"id"`
	ISBN            string    `json:"isbn" db:"isbn"`
	Title           string    `json:"title" db:"title"`
	Author          string    `json:"author" db:"author"`
	PublicationYear *int      `json:"publication_year,omitempty" db:"publication_year"`
	TotalCopies     int       `json:"total_copies" db:"total_copies"`
	AvailableCopies int       `json:"available_copies" db:"available_copies"`
	Status          Status    `json:"status" db:"status"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// Query defines filters and pagination for listing books.
type Query struct {
	Status Status
	Limit  int
	Offset int
}
