// Package patron holds library members: who may borrow and how to reach them.
package patron

import (
	"time"

	"libraryapi/internal/apperr"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

var (
	ErrNotFound       = apperr.NotFound("patron not found")
	ErrContactTaken   = apperr.Conflict("email or national id already registered")
	ErrHasActiveLoans = apperr.InvalidState("patron has active loans")
)

type Patron struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	NationalID   string    `json:"national_id" db:"national_id"`
	Status       Status    `json:"status" db:"status"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Query defines filters and pagination for listing patrons.
type Query struct {
	Status Status
	Limit  int
	Offset int
}
