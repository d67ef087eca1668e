// Package lap solves dense square linear assignment problems.
package lap

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNotSquare is returned for cost matrices with rows != cols.
	ErrNotSquare = errors.New("lap: cost matrix is not square")
	// ErrNotFinite is returned when the cost matrix contains NaN or Inf.
	ErrNotFinite = errors.New("lap: cost matrix has non-finite entries")
)

// Solve returns the column assigned to every row so that the total cost is
// minimal (or maximal when maximize is set). The result is a permutation:
// cols[i] is the column of row i.
//
// Shortest augmenting path with row and column potentials, O(n^3).
func Solve(cost mat.Matrix, maximize bool) ([]int, error) {
	r, c := cost.Dims()
	if r != c {
		return nil, ErrNotSquare
	}
	n := r
	if n == 0 {
		return nil, nil
	}

	a := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x := cost.At(i, j)
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, ErrNotFinite
			}
			if maximize {
				x = -x
			}
			a[i*n+j] = x
		}
	}

	inf := math.Inf(1)
	// 1-based: index 0 is the virtual row/column of the augmenting tree.
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	p := make([]int, n+1)
	way := make([]int, n+1)
	minv := make([]float64, n+1)
	used := make([]bool, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		for j := range minv {
			minv[j] = inf
			used[j] = false
		}
		for {
			used[j0] = true
			i0 := p[j0]
			row := a[(i0-1)*n : i0*n]
			delta := inf
			j1 := 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := row[j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	cols := make([]int, n)
	for j := 1; j <= n; j++ {
		cols[p[j]-1] = j - 1
	}
	return cols, nil
}

// Cost sums cost[i][cols[i]].
func Cost(cost mat.Matrix, cols []int) float64 {
	sum := 0.0
	for i, j := range cols {
		sum += cost.At(i, j)
	}
	return sum
}
