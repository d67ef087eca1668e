// Package isomorphism measures how similar two embedding spaces are in
// shape through the eigenvector similarity of their nearest-neighbour
// graphs. Lower values mean more isomorphic spaces.
package isomorphism

import (
	"errors"
	"sort"

	"github.com/james-bowman/nlp"
	"github.com/james-bowman/nlp/measures/pairwise"
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// Config controls EVS.
type Config struct {
	Freq      int     // most frequent words compared
	Neighbors int     // nearest neighbours linked per word
	Energy    float64 // spectrum energy kept by SelectK
}

// DefaultConfig returns the usual EVS settings.
func DefaultConfig() Config {
	return Config{Freq: 10000, Neighbors: 1, Energy: 0.9}
}

// ErrEmptySpectrum is returned when a graph has no eigenvalues.
var ErrEmptySpectrum = errors.New("isomorphism: empty spectrum")

// NeighborGraph links every row of m to its k nearest other rows by cosine
// distance. The adjacency is symmetric and unweighted.
func NeighborGraph(m *mat.Dense, k int) *sparse.DOK {
	n, _ := m.Dims()
	adj := sparse.NewDOK(n, n)
	if n < 2 || k < 1 {
		return adj
	}
	idx := nlp.NewLinearScanIndex(pairwise.CosineDistance)
	for i := 0; i < n; i++ {
		idx.Index(m.RowView(i), i)
	}
	for i := 0; i < n; i++ {
		matches := idx.Search(m.RowView(i), k+1)
		sort.SliceStable(matches, func(a, b int) bool { return matches[a].Distance < matches[b].Distance })
		linked := 0
		for _, mt := range matches {
			j, ok := mt.ID.(int)
			if !ok || j == i {
				continue
			}
			adj.Set(i, j, 1)
			adj.Set(j, i, 1)
			if linked++; linked == k {
				break
			}
		}
	}
	return adj
}

// Laplacian returns D - A for the symmetric adjacency adj.
func Laplacian(adj *sparse.DOK) *mat.SymDense {
	n, _ := adj.Dims()
	l := mat.NewSymDense(n, nil)
	deg := make([]float64, n)
	adj.ToCSR().DoNonZero(func(i, j int, v float64) {
		if i == j {
			return
		}
		l.SetSym(i, j, -v)
		deg[i] += v
	})
	for i, d := range deg {
		l.SetSym(i, i, d)
	}
	return l
}

// Spectrum returns the eigenvalues of the Laplacian of adj in ascending
// order.
func Spectrum(adj *sparse.DOK) ([]float64, error) {
	l := Laplacian(adj)
	if l.SymmetricDim() == 0 {
		return nil, ErrEmptySpectrum
	}
	var es mat.EigenSym
	if !es.Factorize(l, false) {
		return nil, errors.New("isomorphism: eigendecomposition failed")
	}
	return es.Values(nil), nil
}

// SelectK returns the smallest k whose leading eigenvalues hold at least
// the given fraction of the total. It returns len(spectrum) when the
// fraction is never reached.
func SelectK(spectrum []float64, energy float64) int {
	total := 0.0
	for _, v := range spectrum {
		total += v
	}
	running := 0.0
	for i, v := range spectrum {
		running += v
		if running/total >= energy {
			return i + 1
		}
	}
	return len(spectrum)
}

// Similarity sums the squared differences of the first k eigenvalues.
func Similarity(l1, l2 []float64, k int) float64 {
	if k > len(l1) {
		k = len(l1)
	}
	if k > len(l2) {
		k = len(l2)
	}
	sum := 0.0
	for i := 0; i < k; i++ {
		d := l1[i] - l2[i]
		sum += d * d
	}
	return sum
}

// EVS compares the neighbourhood graphs of two embedding matrices.
func EVS(x, y *mat.Dense, cfg Config) (float64, error) {
	s1, err := Spectrum(NeighborGraph(x, cfg.Neighbors))
	if err != nil {
		return 0, err
	}
	s2, err := Spectrum(NeighborGraph(y, cfg.Neighbors))
	if err != nil {
		return 0, err
	}
	k := SelectK(s1, cfg.Energy)
	if k2 := SelectK(s2, cfg.Energy); k2 < k {
		k = k2
	}
	return Similarity(s1, s2, k), nil
}
