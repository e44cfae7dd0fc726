package markov

import (
	"strings"
	"unicode/utf8"
)

// urlPrefixes are the token prefixes dropped when URL removal is enabled.
var urlPrefixes = []string{"http://", "https://", "www."}

// WhitespaceTokenizer splits a text on whitespace, lowercases every word and
// applies the optional normalization steps. Its behavior can be customized
// with functional options.
type WhitespaceTokenizer struct {
	removeURLs        bool
	removePunctuation bool
	addPunctuation    string
}

// Option is a function that configures a WhitespaceTokenizer.
type Option func(*WhitespaceTokenizer)

// WithRemoveURLs drops tokens that look like URLs.
// Default: false
func WithRemoveURLs(remove bool) Option {
	return func(t *WhitespaceTokenizer) {
		t.removeURLs = remove
	}
}

// WithRemovePunctuation strips ASCII punctuation from every token.
// Default: false
func WithRemovePunctuation(remove bool) Option {
	return func(t *WhitespaceTokenizer) {
		t.removePunctuation = remove
	}
}

// WithAddPunctuation sets the string appended to the last token of a text
// when that token does not already end in punctuation. Empty disables it.
// Default: ""
func WithAddPunctuation(punct string) Option {
	return func(t *WhitespaceTokenizer) {
		t.addPunctuation = punct
	}
}

// NewWhitespaceTokenizer creates a tokenizer with the given options applied.
func NewWhitespaceTokenizer(opts ...Option) *WhitespaceTokenizer {
	t := &WhitespaceTokenizer{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokenize returns the normalized words of text. Empty or whitespace-only
// text yields nil.
func (t *WhitespaceTokenizer) Tokenize(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}

	words := make([]string, 0, len(fields))
	for _, field := range fields {
		word := strings.ToLower(field)
		if t.removeURLs && isURL(word) {
			continue
		}
		if t.removePunctuation {
			word = stripPunctuation(word)
		}
		words = append(words, word)
	}

	if len(words) > 0 && t.addPunctuation != "" {
		last := len(words) - 1
		if !endsWithPunctuation(words[last]) {
			words[last] += t.addPunctuation
		}
	}
	return words
}

func isURL(word string) bool {
	for _, prefix := range urlPrefixes {
		if strings.HasPrefix(word, prefix) {
			return true
		}
	}
	return false
}

// isASCIIPunctuation matches !"#$%&'()*+,-./:;<=>?@[\]^_`{|}~
func isASCIIPunctuation(r rune) bool {
	return (r >= '!' && r <= '/') ||
		(r >= ':' && r <= '@') ||
		(r >= '[' && r <= '`') ||
		(r >= '{' && r <= '~')
}

func stripPunctuation(word string) string {
	return strings.Map(func(r rune) rune {
		if isASCIIPunctuation(r) {
			return -1
		}
		return r
	}, word)
}

// endsWithPunctuation reports whether the final character of word is ASCII
// punctuation. An empty word does not.
func endsWithPunctuation(word string) bool {
	r, size := utf8.DecodeLastRuneInString(word)
	return size > 0 && isASCIIPunctuation(r)
}
