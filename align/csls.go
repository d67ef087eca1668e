package align

import (
	"github.com/ieee0824/bli-go/internal/mathutil"
	"github.com/ieee0824/bli-go/lexicon"
	"gonum.org/v1/gonum/mat"
)

// CSLS returns the cross-domain similarity local scaling matrix between the
// rows of x and y:
//
//	CSLS(x, y) = 2 cos(x, y) - r_Y(x) - r_X(y)
//
// where r_Y(x) is the mean similarity of x to its k nearest rows of y and
// r_X(y) likewise. Rows are expected to be unit length.
func CSLS(x, y *mat.Dense, k int) *mat.Dense {
	var sim mat.Dense
	sim.Mul(x, y.T())
	nx, ny := sim.Dims()

	rx := make([]float64, nx)
	for i := 0; i < nx; i++ {
		rx[i] = mathutil.MeanTopK(sim.RawRowView(i), k)
	}
	ry := make([]float64, ny)
	col := make([]float64, nx)
	for j := 0; j < ny; j++ {
		mat.Col(col, j, &sim)
		ry[j] = mathutil.MeanTopK(col, k)
	}

	for i := 0; i < nx; i++ {
		row := sim.RawRowView(i)
		for j := range row {
			row[j] = 2*row[j] - rx[i] - ry[j]
		}
	}
	return &sim
}

// Ranked is a scored candidate for a source word.
type Ranked struct {
	lexicon.Pair
	Score float64
}

// NearestNeighbors returns, for every row of scores, the best column (the
// forward hypotheses) and, for every column, the best row (the reverse
// hypotheses).
func NearestNeighbors(scores *mat.Dense) (forward, reverse []lexicon.Pair) {
	r, c := scores.Dims()
	forward = make([]lexicon.Pair, r)
	for i := 0; i < r; i++ {
		forward[i] = lexicon.Pair{Src: i, Trg: mathutil.Argmax(scores.RawRowView(i))}
	}
	reverse = make([]lexicon.Pair, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, scores)
		reverse[j] = lexicon.Pair{Src: mathutil.Argmax(col), Trg: j}
	}
	return forward, reverse
}

// Rank returns the depth best columns of every row, best first.
func Rank(scores *mat.Dense, depth int) []Ranked {
	r, _ := scores.Dims()
	out := make([]Ranked, 0, r*depth)
	for i := 0; i < r; i++ {
		row := scores.RawRowView(i)
		for _, j := range mathutil.TopK(row, depth) {
			out = append(out, Ranked{Pair: lexicon.Pair{Src: i, Trg: j}, Score: row[j]})
		}
	}
	return out
}

// Mutual returns the pairs found in both directions, ordered by source.
func Mutual(forward, reverse []lexicon.Pair) []lexicon.Pair {
	return lexicon.NewPairSet(forward).Intersect(lexicon.NewPairSet(reverse)).Sorted()
}
