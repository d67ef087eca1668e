package embedding

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Embedder produces a vector for a word.
type Embedder interface {
	Embed(word string) ([]float64, error)
	Dim() int
}

// Build embeds every word into one row of a new matrix.
func Build(words []string, e Embedder) (*mat.Dense, error) {
	if len(words) == 0 {
		return nil, ErrEmpty
	}
	dim := e.Dim()
	m := mat.NewDense(len(words), dim, nil)
	for i, w := range words {
		v, err := e.Embed(w)
		if err != nil {
			return nil, fmt.Errorf("embed %q: %w", w, err)
		}
		if len(v) != dim {
			return nil, fmt.Errorf("embed %q: got %d values, want %d: %w", w, len(v), dim, ErrDimensionMismatch)
		}
		m.SetRow(i, v)
	}
	return m, nil
}

// Normalize length-normalizes the rows of m, subtracts the column mean and
// length-normalizes again, in place. Zero rows, such as unknown words,
// stay zero and do not contribute to the mean.
func Normalize(m *mat.Dense) {
	r, c := m.Dims()
	if r == 0 {
		return
	}
	zero := make([]bool, r)
	nonzero := 0
	for i := 0; i < r; i++ {
		zero[i] = floats.Norm(m.RawRowView(i), 2) == 0
		if !zero[i] {
			nonzero++
		}
	}
	if nonzero == 0 {
		return
	}
	unitRows(m)
	mean := make([]float64, c)
	for i := 0; i < r; i++ {
		if !zero[i] {
			floats.Add(mean, m.RawRowView(i))
		}
	}
	floats.Scale(1/float64(nonzero), mean)
	for i := 0; i < r; i++ {
		if !zero[i] {
			floats.Sub(m.RawRowView(i), mean)
		}
	}
	unitRows(m)
}

func unitRows(m *mat.Dense) {
	r, _ := m.Dims()
	for i := 0; i < r; i++ {
		row := m.RawRowView(i)
		if n := floats.Norm(row, 2); n > 0 {
			floats.Scale(1/n, row)
		}
	}
}

// Similarity returns the inner-product graph M Mᵀ. For normalized rows the
// entries are cosine similarities.
func Similarity(m mat.Matrix) *mat.Dense {
	var s mat.Dense
	s.Mul(m, m.T())
	return &s
}

// Rows copies the listed rows of m into a new matrix.
func Rows(m *mat.Dense, rows []int) *mat.Dense {
	_, c := m.Dims()
	out := mat.NewDense(len(rows), c, nil)
	for i, r := range rows {
		out.SetRow(i, m.RawRowView(r))
	}
	return out
}
