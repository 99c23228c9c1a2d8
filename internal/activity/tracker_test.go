package activity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/apperr"
)

type counterFunc func(ctx context.Context, patronID string) (int, error)

func (f counterFunc) CountActiveLoans(ctx context.Context, patronID string) (int, error) {
	return f(ctx, patronID)
}

func fixed(n int) LoanCounter {
	return counterFunc(func(context.Context, string) (int, error) { return n, nil })
}

func TestNewTracker_DefaultLimit(t *testing.T) {
	assert.Equal(t, DefaultMaxActiveLoans, NewTracker(0).Limit())
	assert.Equal(t, 5, NewTracker(5).Limit())
}

func TestCheckLimit(t *testing.T) {
	ctx := context.Background()
	tr := NewTracker(3)

	for _, n := range []int{0, 1, 2} {
		got, err := tr.CheckLimit(ctx, fixed(n), "p1")
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}

	got, err := tr.CheckLimit(ctx, fixed(3), "p1")
	assert.ErrorIs(t, err, ErrLimitExceeded)
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
	assert.Equal(t, "loan limit exceeded", err.Error())
	assert.Equal(t, 3, got)
}

func TestCheckLimit_CounterError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewTracker(3).CheckLimit(context.Background(), counterFunc(func(context.Context, string) (int, error) {
		return 0, boom
	}), "p1")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrLimitExceeded)
}
