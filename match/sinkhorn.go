package match

import (
	"math"

	"github.com/ieee0824/bli-go/internal/mathutil"
	"gonum.org/v1/gonum/mat"
)

// transportPlan stores in q the entropic optimal transport plan between
// uniform marginals for the score matrix g: q ∝ exp(reg·ĝ) balanced to be
// doubly stochastic, where ĝ is g rescaled to [-1, 0] (negated first when
// minimizing). Balancing runs in the log domain so large reg stays finite.
func transportPlan(q, g *mat.Dense, reg float64, maximize bool, iters int) {
	u, _ := g.Dims()
	lo, hi := mat.Min(g), mat.Max(g)
	span := hi - lo
	raw := q.RawMatrix()
	logK, stride := raw.Data, raw.Stride
	for i := 0; i < u; i++ {
		for j, v := range g.RawRowView(i) {
			x := 0.0
			if span > 0 {
				if maximize {
					x = (v - hi) / span
				} else {
					x = (lo - v) / span
				}
			}
			logK[i*stride+j] = reg * x
		}
	}

	for it := 0; it < iters; it++ {
		for i := 0; i < u; i++ {
			row := logK[i*stride : i*stride+u]
			lse := mathutil.LogSumExp(row)
			for j := range row {
				row[j] -= lse
			}
		}
		worst := 0.0
		for j := 0; j < u; j++ {
			lse := mathutil.LogSumExpStrided(logK, j, stride, u)
			if d := math.Abs(math.Exp(lse) - 1); d > worst {
				worst = d
			}
			for i := 0; i < u; i++ {
				logK[i*stride+j] -= lse
			}
		}
		if worst < 1e-9 {
			break
		}
	}
	for i := 0; i < u; i++ {
		row := logK[i*stride : i*stride+u]
		for j := range row {
			row[j] = math.Exp(row[j])
		}
	}
}
