package match

import (
	"fmt"
	"sort"

	"github.com/ieee0824/bli-go/internal/mathutil"
	"github.com/ieee0824/bli-go/lexicon"
	"gonum.org/v1/gonum/mat"
)

// Hypothesis is a proposed translation pair with its support.
type Hypothesis struct {
	lexicon.Pair
	Score float64 // fraction of runs that produced the pair
}

// SoftSGM runs SGM iters times, the first from opts.Init and the rest from
// randomized starting points, and averages the resulting permutations. For
// every node of a it returns up to k nodes of b ordered by how often they
// were matched to it.
func SoftSGM(a, b *mat.Dense, seeds []lexicon.Pair, iters, k int, opts Options) ([]Hypothesis, error) {
	if iters < 1 {
		iters = 1
	}
	if k < 1 {
		k = 1
	}
	n, err := checkGraphs(a, b)
	if err != nil {
		return nil, err
	}
	counts := make([]map[int]int, n)
	for i := range counts {
		counts[i] = make(map[int]int, 1)
	}
	for it := 0; it < iters; it++ {
		o := opts
		if it > 0 {
			o.Init = Randomized
		}
		res, err := SGM(a, b, seeds, o)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", it, err)
		}
		for i, j := range res.ColInd {
			counts[i][j]++
		}
	}

	var hyps []Hypothesis
	for i, row := range counts {
		cols := make([]int, 0, len(row))
		for j := range row {
			cols = append(cols, j)
		}
		sort.Ints(cols)
		scores := make([]float64, len(cols))
		for c, j := range cols {
			scores[c] = float64(row[j]) / float64(iters)
		}
		for _, c := range mathutil.TopK(scores, k) {
			hyps = append(hyps, Hypothesis{Pair: lexicon.Pair{Src: i, Trg: cols[c]}, Score: scores[c]})
		}
	}
	return hyps, nil
}

// Pairs drops the scores.
func Pairs(hyps []Hypothesis) []lexicon.Pair {
	out := make([]lexicon.Pair, len(hyps))
	for i, h := range hyps {
		out[i] = h.Pair
	}
	return out
}
