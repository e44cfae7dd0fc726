package output

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/CTAG07/ryazon/pkg/markov"
)

// TextSink renders results line by line. A lone successful result is
// printed as just its text; otherwise each line is prefixed with its
// iteration number.
type TextSink struct {
	w io.Writer
}

// NewTextSink creates a TextSink writing to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

func (s *TextSink) Write(_ context.Context, results []markov.Result) error {
	bw := bufio.NewWriter(s.w)

	if len(results) == 1 {
		_, _ = fmt.Fprintln(bw, results[0].String())
	} else {
		for i, r := range results {
			_, _ = fmt.Fprintf(bw, "%d: %s\n", i+1, r.String())
		}
	}

	if err := bw.Flush(); err != nil {
		return markov.NewIOError(fmt.Errorf("failed to write results: %w", err))
	}
	return nil
}
