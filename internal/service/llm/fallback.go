package llm

import (
	"context"
	"fmt"
	"time"
)

// Attempt is one step of a fallback chain.
type Attempt[T any] struct {
	Name string
	Run  func(ctx context.Context) (T, error)
}

// FirstSuccess runs attempts one after another and returns the first result that
// does not fail, together with the name of the attempt that produced it.
// Every attempt gets exactly one diagnostic log line. When all attempts fail the
// returned error is a *ChainError. A cancelled context stops the chain.
func FirstSuccess[T any](ctx context.Context, logger Logger, attempts []Attempt[T]) (T, string, error) {
	var zero T
	chainErr := &ChainError{}

	for i, attempt := range attempts {
		if err := ctx.Err(); err != nil {
			return zero, "", fmt.Errorf("generation stopped before %s: %w", attempt.Name, err)
		}

		start := time.Now()
		result, err := attempt.Run(ctx)
		if err == nil {
			logger.Info("Provider attempt succeeded",
				"provider", attempt.Name,
				"position", i+1,
				"duration", time.Since(start))
			return result, attempt.Name, nil
		}

		logger.Warn("Provider attempt failed",
			"provider", attempt.Name,
			"position", i+1,
			"reason", Reason(err),
			"error", err.Error(),
			"duration", time.Since(start))
		chainErr.Attempts = append(chainErr.Attempts, AttemptError{Provider: attempt.Name, Err: err})
	}

	return zero, "", chainErr
}
