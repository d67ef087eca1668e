package subword

import (
	"errors"

	"github.com/ieee0824/bli-go/embedding"
)

// ErrEmptyWord is returned when asked to embed an empty string.
var ErrEmptyWord = errors.New("subword: empty word")

// Embedder composes word vectors from the vectors of their pieces: the
// first and the last piece vectors concatenated, so the word dimension is
// twice the piece dimension. A single-piece word repeats its vector.
type Embedder struct {
	seg   Segmenter
	table *embedding.Table
	unk   []float64
}

// NewEmbedder pairs a segmenter, a *Model or a *Vocab, with a piece
// embedding table. Pieces missing from the table fall back to the <unk>
// vector, or zeros.
func NewEmbedder(seg Segmenter, table *embedding.Table) *Embedder {
	e := &Embedder{seg: seg, table: table}
	if v, ok := table.Vector(Unknown); ok {
		e.unk = v
	} else {
		e.unk = make([]float64, table.Dim())
	}
	return e
}

// Dim returns the dimensionality of word vectors.
func (e *Embedder) Dim() int { return 2 * e.table.Dim() }

// Embed returns the vector of word.
func (e *Embedder) Embed(word string) ([]float64, error) {
	pieces := e.seg.Encode(word)
	if len(pieces) == 0 {
		return nil, ErrEmptyWord
	}
	d := e.table.Dim()
	out := make([]float64, 2*d)
	copy(out[:d], e.piece(pieces[0]))
	copy(out[d:], e.piece(pieces[len(pieces)-1]))
	return out, nil
}

func (e *Embedder) piece(p string) []float64 {
	if v, ok := e.table.Vector(p); ok {
		return v
	}
	return e.unk
}
