// Package corpus loads training texts from a JSON document.
//
// A corpus document is one of three shapes: a single string, a list of
// strings, or an object whose string values are the texts. Parse classifies
// the document and reduces it to a plain list of texts; any other shape is
// rejected rather than coerced.
package corpus

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/goccy/go-json"

	"github.com/CTAG07/ryazon/pkg/markov"
)

// Shape identifies which of the accepted document layouts was parsed.
type Shape uint8

const (
	// ShapeString is a document holding a single text.
	ShapeString Shape = iota + 1
	// ShapeList is a JSON array of texts.
	ShapeList
	// ShapeKeyed is a JSON object whose string values are texts.
	ShapeKeyed
)

func (s Shape) String() string {
	switch s {
	case ShapeString:
		return "string"
	case ShapeList:
		return "list"
	case ShapeKeyed:
		return "keyed"
	}
	return "unknown"
}

// Document is a parsed corpus.
type Document struct {
	Shape Shape
	texts []string
}

// Texts returns the corpus as a uniform list of texts. For keyed documents
// the texts are ordered by ascending key.
func (d Document) Texts() []string {
	return d.texts
}

// Load reads and parses the corpus file at path. An empty path is
// markov.ErrNoPath; read and decode failures are I/O errors; an unsupported
// shape is markov.ErrUnsupportedCorpus.
func Load(path string) (Document, error) {
	if path == "" {
		return Document{}, markov.ErrNoPath
	}
	f, err := os.Open(path)
	if err != nil {
		return Document{}, markov.NewIOError(fmt.Errorf("could not open corpus: %w", err))
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	return Parse(f)
}

// Parse decodes a JSON corpus document from r.
func Parse(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, markov.NewIOError(fmt.Errorf("could not read corpus: %w", err))
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, markov.NewIOError(fmt.Errorf("failed to parse corpus json: %w", err))
	}

	switch v := raw.(type) {
	case string:
		return Document{Shape: ShapeString, texts: []string{v}}, nil

	case []any:
		texts := make([]string, 0, len(v))
		for i, item := range v {
			text, ok := item.(string)
			if !ok {
				return Document{}, markov.NewUnsupportedCorpus(fmt.Sprintf("list element %d is %s, not a string", i, describe(item)))
			}
			texts = append(texts, text)
		}
		return Document{Shape: ShapeList, texts: texts}, nil

	case map[string]any:
		keys := make([]string, 0, len(v))
		for k, item := range v {
			if _, ok := item.(string); ok {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		texts := make([]string, 0, len(keys))
		for _, k := range keys {
			texts = append(texts, v[k].(string))
		}
		return Document{Shape: ShapeKeyed, texts: texts}, nil
	}

	return Document{}, markov.NewUnsupportedCorpus(fmt.Sprintf("top-level value is %s", describe(raw)))
}

// describe names the JSON type of a decoded value.
func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case float64:
		return "a number"
	case string:
		return "a string"
	case []any:
		return "a list"
	case map[string]any:
		return "an object"
	}
	return fmt.Sprintf("%T", v)
}
