package markov

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Kind identifies one variant of the closed error taxonomy shared by the
// chain engine, the corpus loader and the output layer.
type Kind uint8

const (
	// KindNoPath means no corpus location was provided.
	KindNoPath Kind = iota + 1
	// KindEmptyChain means generation was attempted on a table with no states.
	KindEmptyChain
	// KindMaxMinWords means the requested maximum length is below the minimum.
	KindMaxMinWords
	// KindTerminatorNotFound means a required terminator was never generated.
	KindTerminatorNotFound
	// KindIO wraps a corpus read/parse failure or an output write failure.
	KindIO
	// KindUnsupportedCorpus means the corpus document has a shape that cannot
	// be reduced to a list of strings.
	KindUnsupportedCorpus
)

var kindNames = map[Kind]string{
	KindNoPath:             "NoPath",
	KindEmptyChain:         "EmptyChain",
	KindMaxMinWords:        "MaxMinWords",
	KindTerminatorNotFound: "TerminatorNotFound",
	KindIO:                 "IoError",
	KindUnsupportedCorpus:  "UnsupportedCorpus",
}

// String returns the variant name used in serialized output.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind returns the kind with the given variant name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// MarshalText encodes the kind as its variant name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// hasDetail reports whether the variant carries a detail message.
func (k Kind) hasDetail() bool {
	return k == KindTerminatorNotFound || k == KindIO || k == KindUnsupportedCorpus
}

// Error is the single error type returned by this module's public API. Two
// Errors match under errors.Is when their kinds are equal, so the exported
// sentinels can be used to test for a variant regardless of detail.
type Error struct {
	Kind   Kind
	Detail string
	// Err is the underlying cause, if any. It is not serialized.
	Err error
}

var (
	ErrNoPath             = &Error{Kind: KindNoPath}
	ErrEmptyChain         = &Error{Kind: KindEmptyChain}
	ErrMaxMinWords        = &Error{Kind: KindMaxMinWords}
	ErrTerminatorNotFound = &Error{Kind: KindTerminatorNotFound}
	ErrIO                 = &Error{Kind: KindIO}
	ErrUnsupportedCorpus  = &Error{Kind: KindUnsupportedCorpus}
)

// NewTerminatorNotFound returns a TerminatorNotFound error with the given detail.
func NewTerminatorNotFound(detail string) *Error {
	return &Error{Kind: KindTerminatorNotFound, Detail: detail}
}

// NewIOError wraps err as an IoError.
func NewIOError(err error) *Error {
	return &Error{Kind: KindIO, Detail: err.Error(), Err: err}
}

// NewUnsupportedCorpus returns an UnsupportedCorpus error with the given detail.
func NewUnsupportedCorpus(detail string) *Error {
	return &Error{Kind: KindUnsupportedCorpus, Detail: detail}
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNoPath:
		return "no path provided"
	case KindEmptyChain:
		return "the chain is empty"
	case KindMaxMinWords:
		return "max words must be greater than or equal to min words"
	case KindTerminatorNotFound:
		return "terminator not found: " + e.Detail
	case KindIO:
		return "io error: " + e.Detail
	case KindUnsupportedCorpus:
		return "unsupported corpus: " + e.Detail
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// MarshalJSON encodes unit variants as their bare name and detail-carrying
// variants as a single-key object, e.g. {"TerminatorNotFound":"..."}.
func (e *Error) MarshalJSON() ([]byte, error) {
	if !e.Kind.hasDetail() {
		return json.Marshal(e.Kind.String())
	}
	return json.Marshal(map[string]string{e.Kind.String(): e.Detail})
}

// AsError maps err onto the taxonomy. Errors that are not already an *Error
// are treated as I/O failures. A nil err returns nil.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewIOError(err)
}
