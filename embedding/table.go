// Package embedding holds word embedding tables and the matrix operations
// applied to them before alignment.
package embedding

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrDimensionMismatch is returned when vectors of different lengths meet.
	ErrDimensionMismatch = errors.New("embedding: dimension mismatch")
	// ErrEmpty is returned for operations that need at least one vector.
	ErrEmpty = errors.New("embedding: empty table")
)

// Table maps words to the rows of a dense matrix.
type Table struct {
	Words   []string
	Vectors *mat.Dense
	Skipped int // input lines dropped by Load for having the wrong dimension

	index map[string]int
}

// NewTable wraps words and their vectors. vectors must have one row per word.
// A word listed twice resolves to its first row.
func NewTable(words []string, vectors *mat.Dense) (*Table, error) {
	if vectors == nil {
		if len(words) != 0 {
			return nil, fmt.Errorf("%d words without vectors: %w", len(words), ErrDimensionMismatch)
		}
		return &Table{index: map[string]int{}}, nil
	}
	r, _ := vectors.Dims()
	if r != len(words) {
		return nil, fmt.Errorf("%d words for %d vectors: %w", len(words), r, ErrDimensionMismatch)
	}
	t := &Table{Words: words, Vectors: vectors, index: make(map[string]int, len(words))}
	for i, w := range words {
		if _, ok := t.index[w]; !ok {
			t.index[w] = i
		}
	}
	return t, nil
}

// Len returns the number of words.
func (t *Table) Len() int { return len(t.Words) }

// Dim returns the vector dimensionality, 0 for an empty table.
func (t *Table) Dim() int {
	if t.Vectors == nil {
		return 0
	}
	_, c := t.Vectors.Dims()
	return c
}

// Index returns the row of word.
func (t *Table) Index(word string) (int, bool) {
	i, ok := t.index[word]
	return i, ok
}

// Vector returns the row of word. The slice aliases the table.
func (t *Table) Vector(word string) ([]float64, bool) {
	i, ok := t.index[word]
	if !ok {
		return nil, false
	}
	return t.Vectors.RawRowView(i), true
}

// Embed returns a copy of the vector of word, or zeros for unknown words,
// so a word-level table can stand in for a subword embedder.
func (t *Table) Embed(word string) ([]float64, error) {
	out := make([]float64, t.Dim())
	if v, ok := t.Vector(word); ok {
		copy(out, v)
	}
	return out, nil
}
