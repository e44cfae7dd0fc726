package markov

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Chain is the main entry point of the package. It owns a transition table
// built from a corpus at construction time and generates text from it. The
// table is never modified after NewChain returns, so a Chain may be used for
// any number of generations.
type Chain struct {
	table  *Table
	opts   TrainingOptions
	rng    RandSource
	logger *slog.Logger
}

// ChainOption configures a Chain at construction time.
type ChainOption func(*Chain)

// WithLogger sets the logger used for training and generation diagnostics.
// By default all logs are discarded.
func WithLogger(logger *slog.Logger) ChainOption {
	return func(c *Chain) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRandSource sets the random source used for generation.
// Default: DefaultRandSource()
func WithRandSource(rng RandSource) ChainOption {
	return func(c *Chain) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// NewChain builds a Chain by training a fresh table on texts. Texts that are
// empty after normalization are skipped, and a corpus too short to form a
// single window leaves the table empty without error. The only error is a
// configuration error for an order below 1.
func NewChain(texts []string, opts TrainingOptions, chainOpts ...ChainOption) (*Chain, error) {
	if opts.Order < 1 {
		return nil, fmt.Errorf("invalid chain order %d: must be at least 1", opts.Order)
	}

	c := &Chain{
		table:  NewTable(opts.Order),
		opts:   opts,
		rng:    DefaultRandSource(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range chainOpts {
		opt(c)
	}

	c.train(context.Background(), texts)
	return c, nil
}

// SetLogger replaces the logger. A nil logger is ignored.
func (c *Chain) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// WithRand returns a Chain that shares this chain's table but draws from rng.
// Use it to give each concurrent worker its own source.
func (c *Chain) WithRand(rng RandSource) *Chain {
	clone := *c
	if rng != nil {
		clone.rng = rng
	}
	return &clone
}

// Order returns the number of words in a state.
func (c *Chain) Order() int {
	return c.table.Order()
}

// Table returns the chain's transition table. It must be treated as read-only.
func (c *Chain) Table() *Table {
	return c.table
}

// TrainingOptions returns the options the chain was trained with.
func (c *Chain) TrainingOptions() TrainingOptions {
	return c.opts
}

// Stats returns statistics for the chain's table.
func (c *Chain) Stats() TableStats {
	return c.table.Stats()
}
