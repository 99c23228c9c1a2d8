// Package activity tracks how many loans a patron currently holds and
// enforces the concurrent loan limit.
package activity

import (
	"context"
	"fmt"

	"libraryapi/internal/apperr"
)

// DefaultMaxActiveLoans is the number of ACTIVE loans a patron may hold.
const DefaultMaxActiveLoans = 3

// ErrLimitExceeded is returned when a patron already holds the maximum.
var ErrLimitExceeded = apperr.InvalidState("loan limit exceeded")

// LoanCounter counts ACTIVE loans. Inside a loan transaction it must observe
// the state before the loan being created is inserted.
type LoanCounter interface {
	CountActiveLoans(ctx context.Context, patronID string) (int, error)
}

type Tracker struct {
	limit int
}

// NewTracker returns a tracker enforcing limit; a non-positive limit falls
// back to DefaultMaxActiveLoans.
func NewTracker(limit int) *Tracker {
	if limit <= 0 {
		limit = DefaultMaxActiveLoans
	}
	return &Tracker{limit: limit}
}

func (t *Tracker) Limit() int { return t.limit }

func (t *Tracker) ActiveLoanCount(ctx context.Context, c LoanCounter, patronID string) (int, error) {
	n, err := c.CountActiveLoans(ctx, patronID)
	if err != nil {
		return 0, fmt.Errorf("count active loans: %w", err)
	}
	return n, nil
}

// CheckLimit returns the current count, or ErrLimitExceeded when one more
// loan would go over the limit.
func (t *Tracker) CheckLimit(ctx context.Context, c LoanCounter, patronID string) (int, error) {
	n, err := t.ActiveLoanCount(ctx, c, patronID)
	if err != nil {
		return 0, err
	}
	if n >= t.limit {
		return n, ErrLimitExceeded
	}
	return n, nil
}
