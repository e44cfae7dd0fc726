package output

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/natefinch/atomic"

	"github.com/CTAG07/ryazon/pkg/markov"
)

// JSONSink writes results to a file as indented JSON. A single result is
// written as one tagged object and several as an array. The file is
// replaced atomically, so readers never see a partial document.
type JSONSink struct {
	path string
}

// NewJSONSink creates a JSONSink targeting path.
func NewJSONSink(path string) *JSONSink {
	return &JSONSink{path: path}
}

func (s *JSONSink) Write(_ context.Context, results []markov.Result) error {
	var payload any = results
	if len(results) == 1 {
		payload = results[0]
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return markov.NewIOError(fmt.Errorf("failed to marshal results: %w", err))
	}
	data = append(data, '\n')

	if err = atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return markov.NewIOError(fmt.Errorf("failed to write results file: %w", err))
	}
	return nil
}
