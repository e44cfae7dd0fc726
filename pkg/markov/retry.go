package markov

import (
	"context"
	"errors"
	"log/slog"
)

// GenerateWithRetry runs Generate until it succeeds or MaxRetries attempts
// have failed with TerminatorNotFound. Each attempt resolves a fresh seed
// state and walks from scratch. The error after exhaustion is the last
// attempt's. Any other error is returned immediately without retrying.
func (c *Chain) GenerateWithRetry(ctx context.Context, opts GenerationOptions) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= MaxRetries; attempt++ {
		text, err := c.Generate(ctx, opts)
		if err == nil {
			return text, nil
		}
		if !errors.Is(err, ErrTerminatorNotFound) {
			return "", err
		}
		lastErr = err
		c.logger.DebugContext(ctx, "Terminator not reached, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_retries", MaxRetries),
		)
	}

	c.logger.WarnContext(ctx, "Generation failed after all retries",
		slog.Int("attempts", MaxRetries),
		slog.String("terminator", opts.Terminator),
	)
	return "", lastErr
}

// GenerateBatch produces opts.Iterations independent results (at least one),
// each from its own GenerateWithRetry call. A failing iteration is recorded
// as an error result and does not stop the others. Invalid options are a
// configuration error: it is returned with no results before any generation.
func (c *Chain) GenerateBatch(ctx context.Context, opts GenerationOptions) ([]Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	iterations := max(opts.Iterations, 1)
	results := make([]Result, 0, iterations)
	var failures int
	for range iterations {
		text, err := c.GenerateWithRetry(ctx, opts)
		if err != nil {
			failures++
		}
		results = append(results, NewResult(text, err))
	}

	c.logger.InfoContext(ctx, "Batch generation completed",
		slog.Int("iterations", iterations),
		slog.Int("failures", failures),
	)
	return results, nil
}
