// Package align maps one embedding space onto another and retrieves
// translation hypotheses from the aligned spaces.
package align

import (
	"errors"
	"fmt"

	"github.com/ieee0824/bli-go/embedding"
	"github.com/ieee0824/bli-go/lexicon"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNoSeeds is returned when an alignment has no pairs to fit.
	ErrNoSeeds = errors.New("align: no seed pairs")
	// ErrDimensionMismatch is returned when both spaces differ in dimension.
	ErrDimensionMismatch = errors.New("align: embedding dimensions differ")
)

// Procrustes returns the orthogonal matrix W that best maps the paired rows
// of x onto those of y, minimizing ‖X_s W - Y_s‖_F. W = U Vᵀ where
// U Σ Vᵀ is the SVD of X_sᵀ Y_s.
func Procrustes(x, y *mat.Dense, pairs []lexicon.Pair) (*mat.Dense, error) {
	if len(pairs) == 0 {
		return nil, ErrNoSeeds
	}
	xr, xd := x.Dims()
	yr, yd := y.Dims()
	if xd != yd {
		return nil, fmt.Errorf("%d vs %d: %w", xd, yd, ErrDimensionMismatch)
	}
	for _, p := range pairs {
		if p.Src < 0 || p.Src >= xr || p.Trg < 0 || p.Trg >= yr {
			return nil, fmt.Errorf("pair %v out of range", p)
		}
	}
	src, trg := lexicon.Unzip(pairs)
	xs := embedding.Rows(x, src)
	ys := embedding.Rows(y, trg)

	var m mat.Dense
	m.Mul(xs.T(), ys)
	var svd mat.SVD
	if !svd.Factorize(&m, mat.SVDFull) {
		return nil, errors.New("align: SVD did not converge")
	}
	var u, v, w mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	w.Mul(&u, v.T())
	return &w, nil
}
