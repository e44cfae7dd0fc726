/*
Package markov provides a word-level Markov chain text generator.

A Chain is trained once, at construction, from a list of raw texts: every text
is split on whitespace, lowercased and optionally cleaned of URLs and
punctuation, and the whole corpus is then folded into a transition table as a
single continuous token stream. Each state in the table is a fixed-length
sequence of words (the chain order) mapped to the frequencies of the words
that followed it.

Generation walks the table from a seed-selected state, drawing each next word
with probability proportional to its observed frequency. A terminator may be
required to end the text, in which case failed attempts are retried a bounded
number of times. The table is read-only after training, so one Chain can serve
any number of generations.

	chain, err := markov.NewChain(texts, markov.DefaultTrainingOptions())
	if err != nil {
		return err
	}
	text, err := chain.GenerateWithRetry(ctx, markov.NewGenerationOptions(
		markov.WithSeed("the"),
		markov.WithTerminator("."),
	))
*/
package markov
