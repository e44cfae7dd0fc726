package markov

import (
	"context"
	"log/slog"
)

// defaultTerminator is appended to the last token of the corpus when it does
// not already end in punctuation, independently of AddPunctuation.
const defaultTerminator = "."

// train normalizes every text and folds the whole corpus into the table as
// one continuous token stream. Windows therefore span the boundary between
// consecutive texts.
func (c *Chain) train(ctx context.Context, texts []string) {
	tokenizer := c.opts.tokenizer()

	var stream []string
	var textCount int
	for _, text := range texts {
		words := tokenizer.Tokenize(text)
		if len(words) == 0 {
			continue
		}
		stream = append(stream, words...)
		textCount++
	}

	order := c.table.Order()
	if len(stream) <= order {
		c.logger.InfoContext(ctx, "Corpus too short to train, chain left empty",
			slog.Int("texts_processed", textCount),
			slog.Int("tokens", len(stream)),
			slog.Int("order", order),
		)
		return
	}

	last := len(stream) - 1
	if !endsWithPunctuation(stream[last]) {
		stream[last] += defaultTerminator
	}

	for i := 0; i+order < len(stream); i++ {
		c.table.Record(State(stream[i:i+order]), stream[i+order])
	}

	stats := c.table.Stats()
	c.logger.InfoContext(ctx, "Training completed",
		slog.Int("order", order),
		slog.Int("texts_processed", textCount),
		slog.Int("tokens", len(stream)),
		slog.Int("states", stats.States),
		slog.Int("transitions", stats.Transitions),
	)
}
