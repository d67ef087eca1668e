package embedding

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Reorder lays the vectors of t out in vocab order. Words t does not know
// get a random vector drawn from a normal distribution with the mean and
// standard deviation of all values in t. The second result is the number of
// such sampled rows.
//
// GloVe writes vectors sorted by its own counts; subword lookups need the
// tokenizer's id order back.
func Reorder(vocab []string, t *Table, src rand.Source) (*Table, int, error) {
	if t.Len() == 0 || len(vocab) == 0 {
		return nil, 0, ErrEmpty
	}
	dim := t.Dim()
	raw := mat.DenseCopyOf(t.Vectors).RawMatrix().Data
	mean, std := stat.PopMeanStdDev(raw, nil)
	normal := distuv.Normal{Mu: mean, Sigma: std, Src: src}

	out := mat.NewDense(len(vocab), dim, nil)
	missing := 0
	for i, w := range vocab {
		row := out.RawRowView(i)
		if v, ok := t.Vector(w); ok {
			copy(row, v)
			continue
		}
		missing++
		for j := range row {
			row[j] = normal.Rand()
		}
	}
	words := make([]string, len(vocab))
	copy(words, vocab)
	reordered, err := NewTable(words, out)
	if err != nil {
		return nil, 0, err
	}
	return reordered, missing, nil
}
