package loan

import (
	"context"
	"errors"

	"libraryapi/internal/platform/database"
	"libraryapi/internal/platform/retry"
)

// runTx re-runs attempt while it fails with a transient database error and
// reports exhaustion as ErrConcurrentModification.
func runTx(ctx context.Context, attempt retry.Func, opts ...retry.Option) error {
	opts = append([]retry.Option{retry.If(database.IsTransient)}, opts...)
	err := retry.Do(ctx, attempt, opts...)
	if errors.Is(err, retry.ErrExhausted) {
		return ErrConcurrentModification
	}
	return err
}
