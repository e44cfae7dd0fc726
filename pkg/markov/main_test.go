package markov

import (
	"bytes"
	"fmt"
	"go/build"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// scriptedRand returns its values in order and panics when it runs out or a
// value is out of range, so tests notice unexpected draws.
type scriptedRand struct {
	values []int
	index  int
}

func (s *scriptedRand) IntN(n int) int {
	if s.index >= len(s.values) {
		panic(fmt.Sprintf("scriptedRand exhausted, needed value for n=%d", n))
	}
	v := s.values[s.index]
	s.index++
	if v < 0 || v >= n {
		panic(fmt.Sprintf("scriptedRand value %d out of range for n=%d", v, n))
	}
	return v
}

// countingRand wraps a source and records the n of every draw.
type countingRand struct {
	inner RandSource
	calls []int
}

func (c *countingRand) IntN(n int) int {
	c.calls = append(c.calls, n)
	return c.inner.IntN(n)
}

func (c *countingRand) count(n int) int {
	var total int
	for _, call := range c.calls {
		if call == n {
			total++
		}
	}
	return total
}

// forbiddenRand fails the test on any draw.
type forbiddenRand struct {
	t *testing.T
}

func (f forbiddenRand) IntN(n int) int {
	f.t.Fatalf("unexpected random draw IntN(%d)", n)
	return 0
}

// newTestChain trains a chain with the given order and fails the test on error.
func newTestChain(t testing.TB, texts []string, order int, opts ...ChainOption) *Chain {
	t.Helper()
	c, err := NewChain(texts, TrainingOptions{Order: order}, opts...)
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}
	return c
}

// newBufferLogger returns a debug-level logger writing to the returned buffer.
func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, &buf
}

var (
	benchmarkCorpus []string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() []string {
	corpusOnce.Do(func() {
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = []string{strings.Repeat("this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. ", 50)}
				return
			}
			benchmarkCorpus = append(benchmarkCorpus, string(content))
		}
	})
	return benchmarkCorpus
}
