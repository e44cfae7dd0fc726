package markov

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Generate runs a single generation attempt and returns the generated words
// joined by spaces.
//
// It returns ErrMaxMinWords for invalid options (before touching the table or
// the random source), ErrEmptyChain if the chain was never trained, and a
// TerminatorNotFound error if opts.Terminator is set but no generated word
// ended with it. Generation without a terminator always succeeds, even when
// the walk reaches a state with no successors before MaxWords.
func (c *Chain) Generate(ctx context.Context, opts GenerationOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	if c.table.IsEmpty() {
		return "", ErrEmptyChain
	}

	state := c.resolveSeed(ctx, opts.Seed)

	// MaxWords is caller-controlled and may be far beyond what a walk reaches.
	result := slices.Clone(state)

	terminated := false
	for range max(opts.MaxWords-len(state), 0) {
		dist, ok := c.table.Lookup(state)
		if !ok { // Dead end in chain
			c.logger.DebugContext(ctx, "Generation terminated due to dead-end",
				slog.String("last_state", state.key()),
				slog.Int("generated_length", len(result)),
			)
			break
		}

		word := chooseNextWord(dist, c.rng)
		result = append(result, word)

		if opts.Terminator != "" && len(result) >= opts.MinWords && strings.HasSuffix(word, opts.Terminator) {
			terminated = true
			c.logger.DebugContext(ctx, "Generation terminated by terminator",
				slog.String("terminator", opts.Terminator),
				slog.Int("generated_length", len(result)),
			)
			break
		}

		state = append(state[1:], word)
	}

	if opts.Terminator != "" && !terminated {
		return "", NewTerminatorNotFound(fmt.Sprintf("no word ended with %q within %d words", opts.Terminator, len(result)))
	}

	return strings.Join(result, " "), nil
}

// resolveSeed picks the initial state. Without a seed, any state is chosen
// uniformly. With a seed, states starting with it are preferred, then states
// containing it, and finally any state. The returned state is a fresh copy
// the caller may modify.
func (c *Chain) resolveSeed(ctx context.Context, seed string) State {
	states := c.table.States()
	candidates := states

	if seed != "" {
		seed = strings.ToLower(strings.TrimSpace(seed))
		candidates = filterStates(states, func(s State) bool { return s[0] == seed })
		if len(candidates) == 0 {
			candidates = filterStates(states, func(s State) bool { return s.contains(seed) })
		}
		if len(candidates) == 0 {
			c.logger.WarnContext(ctx, "Seed word not found in chain, using random state",
				slog.String("seed", seed),
			)
			candidates = states
		}
	}

	picked := candidates[c.rng.IntN(len(candidates))]
	state := make(State, len(picked))
	copy(state, picked)
	return state
}

func filterStates(states []State, keep func(State) bool) []State {
	var out []State
	for _, s := range states {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// chooseNextWord draws a word with probability proportional to its frequency
// using a single cumulative scan over the distribution.
func chooseNextWord(dist Distribution, rng RandSource) string {
	randChoice := rng.IntN(dist.Total)
	for _, choice := range dist.Words {
		randChoice -= choice.Freq
		if randChoice < 0 {
			return choice.Word
		}
	}
	// Unreachable while Total is the sum of all frequencies.
	return dist.Words[len(dist.Words)-1].Word
}
