package loan

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"libraryapi/internal/platform/retry"
)

func TestRunTx(t *testing.T) {
	ctx := context.Background()

	t.Run("retries transient failures", func(t *testing.T) {
		calls := 0
		err := runTx(ctx, func(context.Context) error {
			calls++
			if calls < 3 {
				return &pgconn.PgError{Code: "40P01"}
			}
			return nil
		}, retry.WithBaseDelay(0))
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("exhaustion is a conflict", func(t *testing.T) {
		calls := 0
		err := runTx(ctx, func(context.Context) error {
			calls++
			return &pgconn.PgError{Code: "40001"}
		}, retry.WithBaseDelay(0), retry.WithMaxAttempts(4))
		assert.ErrorIs(t, err, ErrConcurrentModification)
		assert.Equal(t, 4, calls)
	})

	t.Run("business errors are not retried", func(t *testing.T) {
		calls := 0
		err := runTx(ctx, func(context.Context) error {
			calls++
			return ErrBookNotAvailable
		})
		assert.ErrorIs(t, err, ErrBookNotAvailable)
		assert.Equal(t, 1, calls)
	})

	t.Run("other failures pass through", func(t *testing.T) {
		boom := errors.New("boom")
		err := runTx(ctx, func(context.Context) error { return boom })
		assert.ErrorIs(t, err, boom)
	})
}

func TestParseOrder(t *testing.T) {
	o, ok := ParseOrder("desc")
	assert.True(t, ok)
	assert.Equal(t, OrderDesc, o)

	_, ok = ParseOrder("DESC")
	assert.False(t, ok)
}
