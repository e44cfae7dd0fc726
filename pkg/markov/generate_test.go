package markov

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	corpus := []string{"one fish two fish. red fish blue fish."}

	testCases := []struct {
		name        string
		opts        GenerationOptions
		rng         []int
		expected    string
		expectedErr error
	}{
		{
			name:     "Stopped by max words",
			opts:     NewGenerationOptions(WithSeed("red"), WithMaxWords(3)),
			rng:      []int{0, 0},
			expected: "red fish blue",
		},
		{
			name:     "Stopped by dead end",
			opts:     NewGenerationOptions(WithSeed("red"), WithMaxWords(10)),
			rng:      []int{0, 0, 0},
			expected: "red fish blue fish.",
		},
		{
			name:     "Stopped by terminator",
			opts:     NewGenerationOptions(WithSeed("one"), WithTerminator("."), WithMaxWords(10)),
			rng:      []int{0, 0, 0},
			expected: "one fish two fish.",
		},
		{
			name:     "Terminator ignored below min words",
			opts:     NewGenerationOptions(WithSeed("one"), WithTerminator("."), WithMinWords(5), WithMaxWords(10)),
			rng:      []int{0, 0, 0, 0, 0, 0, 0},
			expected: "one fish two fish. red fish blue fish.",
		},
		{
			name:        "Terminator never reached",
			opts:        NewGenerationOptions(WithSeed("red"), WithTerminator("!"), WithMaxWords(10)),
			rng:         []int{0, 0, 0},
			expectedErr: ErrTerminatorNotFound,
		},
		{
			name:     "Seed matched anywhere in state",
			opts:     NewGenerationOptions(WithSeed("blue"), WithMaxWords(3)),
			rng:      []int{0, 0},
			expected: "fish blue fish.",
		},
		{
			name:     "Max words below order returns the seed state",
			opts:     NewGenerationOptions(WithSeed("red"), WithMaxWords(1), WithMinWords(0)),
			rng:      []int{0},
			expected: "red fish",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rng := &scriptedRand{values: tc.rng}
			c := newTestChain(t, corpus, 2, WithRandSource(rng))

			output, err := c.Generate(context.Background(), tc.opts)
			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Fatalf("expected error %v, got %v", tc.expectedErr, err)
				}
				if output != "" {
					t.Errorf("expected partial output to be discarded, got %q", output)
				}
				return
			}
			if err != nil {
				t.Fatalf("got unexpected error: %v", err)
			}
			if output != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, output)
			}
			if rng.index != len(rng.values) {
				t.Errorf("expected %d random draws, got %d", len(rng.values), rng.index)
			}
		})
	}
}

func TestGenerateRejectsInvalidBounds(t *testing.T) {
	c := newTestChain(t, []string{"a b c d e f"}, 2, WithRandSource(forbiddenRand{t: t}))

	_, err := c.Generate(context.Background(), NewGenerationOptions(WithMaxWords(2), WithMinWords(5)))
	if !errors.Is(err, ErrMaxMinWords) {
		t.Errorf("expected ErrMaxMinWords, got %v", err)
	}

	results, err := c.GenerateBatch(context.Background(), NewGenerationOptions(WithMaxWords(2), WithMinWords(5), WithIterations(3)))
	if !errors.Is(err, ErrMaxMinWords) {
		t.Errorf("expected ErrMaxMinWords from batch, got %v", err)
	}
	if results != nil {
		t.Errorf("expected no results for invalid options, got %v", results)
	}
}

func TestGenerateEmptyChain(t *testing.T) {
	c := newTestChain(t, []string{""}, 2, WithRandSource(forbiddenRand{t: t}))
	ctx := context.Background()

	if _, err := c.Generate(ctx, NewGenerationOptions()); !errors.Is(err, ErrEmptyChain) {
		t.Errorf("Generate: expected ErrEmptyChain, got %v", err)
	}

	logger, buf := newBufferLogger()
	c.SetLogger(logger)
	if _, err := c.GenerateWithRetry(ctx, NewGenerationOptions(WithTerminator("."))); !errors.Is(err, ErrEmptyChain) {
		t.Errorf("GenerateWithRetry: expected ErrEmptyChain, got %v", err)
	}
	if strings.Contains(buf.String(), "retrying") {
		t.Error("EmptyChain must not be retried")
	}
}

func TestResolveSeed(t *testing.T) {
	ctx := context.Background()

	t.Run("Case insensitive", func(t *testing.T) {
		c := newTestChain(t, []string{"The Cat sat"}, 1)
		for _, seed := range []string{"the", "THE", " The "} {
			c.rng = &scriptedRand{values: []int{0}}
			got := c.resolveSeed(ctx, seed)
			if !reflect.DeepEqual(got, State{"the"}) {
				t.Errorf("seed %q resolved to %v, want [the]", seed, got)
			}
		}
	})

	t.Run("First word preferred over contains", func(t *testing.T) {
		c := newTestChain(t, []string{"x y z x w v"}, 2)
		// States: [x y] [y z] [z x] [x w]; only two start with x.
		rng := &countingRand{inner: &scriptedRand{values: []int{1}}}
		c.rng = rng
		got := c.resolveSeed(ctx, "x")
		if !reflect.DeepEqual(got, State{"x", "w"}) {
			t.Errorf("expected [x w], got %v", got)
		}
		if !reflect.DeepEqual(rng.calls, []int{2}) {
			t.Errorf("expected one draw over 2 candidates, got %v", rng.calls)
		}
	})

	t.Run("Contains fallback", func(t *testing.T) {
		c := newTestChain(t, []string{"x y z w"}, 2)
		c.rng = &scriptedRand{values: []int{0}}
		got := c.resolveSeed(ctx, "z")
		if !reflect.DeepEqual(got, State{"y", "z"}) {
			t.Errorf("expected [y z], got %v", got)
		}
	})

	t.Run("Unknown seed falls back to random state", func(t *testing.T) {
		logger, buf := newBufferLogger()
		c := newTestChain(t, []string{"x y z w"}, 2, WithLogger(logger))
		rng := &countingRand{inner: &scriptedRand{values: []int{1}}}
		c.rng = rng
		got := c.resolveSeed(ctx, "missing")
		if !reflect.DeepEqual(got, State{"y", "z"}) {
			t.Errorf("expected [y z], got %v", got)
		}
		if !reflect.DeepEqual(rng.calls, []int{2}) {
			t.Errorf("expected one draw over all 2 states, got %v", rng.calls)
		}
		if !strings.Contains(buf.String(), "Seed word not found") {
			t.Errorf("expected a seed-not-found warning, got log %q", buf.String())
		}
	})

	t.Run("Returned state is a copy", func(t *testing.T) {
		c := newTestChain(t, []string{"x y z w"}, 2)
		c.rng = &scriptedRand{values: []int{0}}
		got := c.resolveSeed(ctx, "x")
		got[0] = "mutated"
		if _, ok := c.Table().Lookup(State{"x", "y"}); !ok {
			t.Error("mutating a resolved state must not change the table")
		}
	})
}

func TestChooseNextWord(t *testing.T) {
	dist := Distribution{Words: []NextWord{{Word: "a", Freq: 3}, {Word: "b", Freq: 1}}, Total: 4}

	for draw, want := range []string{"a", "a", "a", "b"} {
		if got := chooseNextWord(dist, &scriptedRand{values: []int{draw}}); got != want {
			t.Errorf("draw %d: expected %q, got %q", draw, want, got)
		}
	}
}

func TestChooseNextWordDistribution(t *testing.T) {
	const trials = 40000
	dist := Distribution{Words: []NextWord{{Word: "a", Freq: 3}, {Word: "b", Freq: 1}}, Total: 4}
	rng := NewSeededRand(42)

	counts := make(map[string]int)
	for i := 0; i < trials; i++ {
		counts[chooseNextWord(dist, rng)]++
	}

	ratio := float64(counts["a"]) / trials
	if ratio < 0.73 || ratio > 0.77 {
		t.Errorf("expected about 75%% 'a', got %.4f (%v)", ratio, counts)
	}
}

func TestGenerateLengthBounds(t *testing.T) {
	corpus := []string{
		"the quick brown fox jumps over the lazy dog and the dog barks at the fox",
		"a fox is quick and a dog is lazy but the fox and the dog are friends",
	}
	const maxWords = 12

	for _, order := range []int{1, 2, 3} {
		c := newTestChain(t, corpus, order, WithRandSource(NewSeededRand(uint64(order))))
		for i := 0; i < 200; i++ {
			output, err := c.Generate(context.Background(), NewGenerationOptions(WithMaxWords(maxWords)))
			if err != nil {
				t.Fatalf("order %d: Generate() error = %v", order, err)
			}
			n := len(strings.Fields(output))
			if n < order || n > maxWords {
				t.Fatalf("order %d: generated %d words (%q), want between %d and %d", order, n, output, order, maxWords)
			}
		}
	}
}

func TestGenerateHugeMaxWords(t *testing.T) {
	c := newTestChain(t, []string{"a b c d"}, 2, WithRandSource(NewSeededRand(1)))

	output, err := c.Generate(context.Background(), NewGenerationOptions(WithSeed("a"), WithMaxWords(1<<50)))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if output != "a b c d." {
		t.Errorf("expected %q, got %q", "a b c d.", output)
	}
}

func TestGenerateWithRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("Satisfiable terminator", func(t *testing.T) {
		c := newTestChain(t, []string{"a b c. a b d. a b c."}, 2, WithRandSource(NewSeededRand(7)))
		for i := 0; i < 50; i++ {
			output, err := c.GenerateWithRetry(ctx, NewGenerationOptions(WithTerminator(".")))
			if err != nil {
				t.Fatalf("GenerateWithRetry() error = %v", err)
			}
			words := strings.Fields(output)
			if last := words[len(words)-1]; !strings.HasSuffix(last, ".") {
				t.Fatalf("expected the last word to end with '.', got %q", output)
			}
		}
	})

	t.Run("Unreachable terminator exhausts retries", func(t *testing.T) {
		// Every successor is unique, so only the three seed draws use n=3.
		rng := &countingRand{inner: NewSeededRand(1)}
		c := newTestChain(t, []string{"a b c d e"}, 2, WithRandSource(rng))

		_, err := c.GenerateWithRetry(ctx, NewGenerationOptions(WithTerminator("!")))
		if !errors.Is(err, ErrTerminatorNotFound) {
			t.Fatalf("expected ErrTerminatorNotFound, got %v", err)
		}
		if attempts := rng.count(3); attempts != MaxRetries {
			t.Errorf("expected %d attempts, got %d", MaxRetries, attempts)
		}
	})
}

func TestGenerateBatch(t *testing.T) {
	ctx := context.Background()
	c := newTestChain(t, []string{"one fish two fish. red fish blue fish."}, 2, WithRandSource(NewSeededRand(3)))

	results, err := c.GenerateBatch(ctx, NewGenerationOptions(WithIterations(3)))
	if err != nil {
		t.Fatalf("GenerateBatch() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if !r.OK() || r.Text == "" {
			t.Errorf("result %d: expected success, got %v", i, r)
		}
	}

	results, err = c.GenerateBatch(ctx, NewGenerationOptions(WithIterations(0)))
	if err != nil {
		t.Fatalf("GenerateBatch() error = %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected at least one result, got %d", len(results))
	}

	// Failures are recorded per iteration instead of aborting the batch.
	results, err = c.GenerateBatch(ctx, NewGenerationOptions(WithTerminator("!"), WithIterations(2)))
	if err != nil {
		t.Fatalf("GenerateBatch() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for i, r := range results {
		if r.OK() || r.Err.Kind != KindTerminatorNotFound {
			t.Errorf("result %d: expected TerminatorNotFound, got %v", i, r)
		}
	}
}

func TestWithRandSharesTable(t *testing.T) {
	c := newTestChain(t, []string{"a b c d"}, 1)
	clone := c.WithRand(&scriptedRand{values: []int{0, 0, 0}})
	if clone.Table() != c.Table() {
		t.Error("expected the clone to share the original table")
	}
	if clone.rng == c.rng {
		t.Error("expected the clone to use its own random source")
	}
}

func BenchmarkGenerate(b *testing.B) {
	corpus := createBenchmarkCorpus()
	ctx := context.Background()
	c := newTestChain(b, corpus, 2)

	genOpts := map[string]GenerationOptions{
		"Simple":     NewGenerationOptions(WithMaxWords(50)),
		"Seeded":     NewGenerationOptions(WithMaxWords(50), WithSeed("func")),
		"Terminator": NewGenerationOptions(WithMaxWords(50), WithTerminator("}")),
	}

	for name, opts := range genOpts {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				s, err := c.GenerateWithRetry(ctx, opts)
				b.SetBytes(int64(len(s)))
				if err != nil && !errors.Is(err, ErrTerminatorNotFound) {
					b.Fatalf("GenerateWithRetry() failed: %v", err)
				}
			}
		})
	}
}
