package markov

import (
	"slices"
	"strings"
)

// State is an ordered sequence of exactly Order words used as a table key.
type State []string

// key returns the lookup key for the state. Words never contain whitespace,
// so joining on a space is unambiguous.
func (s State) key() string {
	return strings.Join(s, " ")
}

// contains reports whether word appears anywhere in the state.
func (s State) contains(word string) bool {
	for _, w := range s {
		if w == word {
			return true
		}
	}
	return false
}

// NextWord is one possible successor of a state and the number of times it
// was observed.
type NextWord struct {
	Word string
	Freq int
}

// Distribution is the frequency distribution of words that followed a state.
type Distribution struct {
	Words []NextWord // In first-seen order.
	Total int        // Sum of all frequencies.
}

// TableStats holds aggregated statistics for a Table.
type TableStats struct {
	States         int `json:"states"`          // The number of unique states.
	Transitions    int `json:"transitions"`     // The number of unique state->word links.
	TotalFrequency int `json:"total_frequency"` // The sum of all link frequencies; the number of trained windows.
	Vocabulary     int `json:"vocabulary"`      // The number of unique successor words.
}

type tableEntry struct {
	state State
	index map[string]int // word -> position in words
	words []NextWord
	total int
}

// Table maps each State to the distribution of words that followed it. A
// Table is not safe for concurrent writes; once training is done it is only
// read, and concurrent reads are safe.
type Table struct {
	order   int
	entries map[string]*tableEntry
	states  []State // first-recorded order
}

// NewTable creates an empty table for states of the given order.
func NewTable(order int) *Table {
	return &Table{
		order:   order,
		entries: make(map[string]*tableEntry),
	}
}

// Order returns the state length of the table.
func (t *Table) Order() int {
	return t.order
}

// Record increments the count of next under state, creating the entry if it
// does not exist yet.
func (t *Table) Record(state State, next string) {
	k := state.key()
	entry, ok := t.entries[k]
	if !ok {
		stored := make(State, len(state))
		copy(stored, state)
		entry = &tableEntry{state: stored, index: make(map[string]int)}
		t.entries[k] = entry
		t.states = append(t.states, stored)
	}

	if i, seen := entry.index[next]; seen {
		entry.words[i].Freq++
	} else {
		entry.index[next] = len(entry.words)
		entry.words = append(entry.words, NextWord{Word: next, Freq: 1})
	}
	entry.total++
}

// Lookup returns the successor distribution for an exact state match. The
// second result is false if the state was never recorded. Words is a copy,
// so callers cannot alter the table through it.
func (t *Table) Lookup(state State) (Distribution, bool) {
	entry, ok := t.entries[state.key()]
	if !ok {
		return Distribution{}, false
	}
	return Distribution{Words: slices.Clone(entry.words), Total: entry.total}, true
}

// IsEmpty reports whether no state has been recorded.
func (t *Table) IsEmpty() bool {
	return len(t.states) == 0
}

// Len returns the number of unique states.
func (t *Table) Len() int {
	return len(t.states)
}

// States returns every recorded state in the order it was first seen. The
// returned slice must not be modified.
func (t *Table) States() []State {
	return t.states
}

// Stats returns a snapshot of statistics for the table.
func (t *Table) Stats() TableStats {
	vocab := make(map[string]struct{})
	stats := TableStats{States: len(t.states)}
	for _, entry := range t.entries {
		stats.Transitions += len(entry.words)
		stats.TotalFrequency += entry.total
		for _, w := range entry.words {
			vocab[w.Word] = struct{}{}
		}
	}
	stats.Vocabulary = len(vocab)
	return stats
}
