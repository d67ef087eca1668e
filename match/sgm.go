package match

import (
	"fmt"
	"math"

	"github.com/ieee0824/bli-go/internal/lap"
	"github.com/ieee0824/bli-go/lexicon"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// SGM matches the nodes of graph a to the nodes of graph b. Seeds are
// correspondences known in advance and are kept fixed; the remaining nodes
// are matched by relaxing the permutation to a doubly stochastic matrix,
// following Frank-Wolfe steps with exact line search, and projecting the
// result back onto a permutation.
func SGM(a, b *mat.Dense, seeds []lexicon.Pair, opts Options) (*Result, error) {
	n, err := checkGraphs(a, b)
	if err != nil {
		return nil, err
	}
	if err := checkSeeds(seeds, n); err != nil {
		return nil, err
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}

	m := len(seeds)
	u := n - m
	seedA, seedB := lexicon.Unzip(seeds)
	nonseedA := complement(seedA, n)
	nonseedB := complement(seedB, n)
	if opts.ShuffleInput {
		rng.Shuffle(len(nonseedB), func(i, j int) { nonseedB[i], nonseedB[j] = nonseedB[j], nonseedB[i] })
	}
	permA := append(append(make([]int, 0, n), seedA...), nonseedA...)
	permB := append(append(make([]int, 0, n), seedB...), nonseedB...)

	colInd := make([]int, n)
	for k := 0; k < m; k++ {
		colInd[permA[k]] = permB[k]
	}
	if u == 0 {
		return &Result{ColInd: colInd, Fun: objective(a, b, colInd)}, nil
	}

	pa := permute(a, permA)
	pb := permute(b, permB)
	a22 := pa.Slice(m, n, m, n)
	b22 := pb.Slice(m, n, m, n)

	// Constant part of the gradient contributed by the seeded blocks.
	constSum := mat.NewDense(u, u, nil)
	if m > 0 {
		a12, a21 := pa.Slice(0, m, m, n), pa.Slice(m, n, 0, m)
		b12, b21 := pb.Slice(0, m, m, n), pb.Slice(m, n, 0, m)
		var t mat.Dense
		constSum.Mul(a21, b21.T())
		t.Mul(a12.T(), b12)
		constSum.Add(constSum, &t)
	}

	p := initial(u, opts.Init, rng)
	grad := mat.NewDense(u, u, nil)
	q := mat.NewDense(u, u, nil)
	r := mat.NewDense(u, u, nil)
	var t1, t2 mat.Dense

	iter := 0
	for iter < opts.MaxIter {
		iter++

		// ∇f(P) = C + A22 P B22ᵀ + A22ᵀ P B22
		t1.Mul(a22, p)
		t2.Mul(&t1, b22.T())
		grad.Add(constSum, &t2)
		t1.Mul(a22.T(), p)
		t2.Mul(&t1, b22)
		grad.Add(grad, &t2)

		if err := direction(q, grad, opts); err != nil {
			return nil, err
		}
		r.Sub(q, p)

		// f(P + αR) = f(P) + bα + aα²
		bCoef := frobenius(grad, r)
		t1.Mul(a22.T(), r)
		t2.Mul(&t1, b22)
		aCoef := frobenius(&t2, r)
		alpha := lineSearch(aCoef, bCoef, opts.Maximize)

		step := alpha * math.Sqrt(frobenius(r, r))
		if alpha != 0 {
			p.Add(p, scaled(&t1, alpha, r))
		}
		if step/math.Sqrt(float64(u)) < opts.Tol {
			break
		}
	}

	cols, err := lap.Solve(p, true)
	if err != nil {
		return nil, fmt.Errorf("project onto permutation: %w", err)
	}
	for k := 0; k < u; k++ {
		colInd[permA[m+k]] = permB[m+cols[k]]
	}
	return &Result{ColInd: colInd, Fun: objective(a, b, colInd), NIter: iter}, nil
}

func checkGraphs(a, b *mat.Dense) (int, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != ac || br != bc {
		return 0, ErrNotSquare
	}
	if ar != br {
		return 0, fmt.Errorf("%d vs %d nodes: %w", ar, br, ErrSizeMismatch)
	}
	return ar, nil
}

func checkSeeds(seeds []lexicon.Pair, n int) error {
	seenA := make(map[int]bool, len(seeds))
	seenB := make(map[int]bool, len(seeds))
	for _, s := range seeds {
		if s.Src < 0 || s.Src >= n || s.Trg < 0 || s.Trg >= n {
			return fmt.Errorf("seed %v with %d nodes: %w", s, n, ErrSeedRange)
		}
		if seenA[s.Src] || seenB[s.Trg] {
			return fmt.Errorf("seed %v: %w", s, ErrDuplicateSeed)
		}
		seenA[s.Src] = true
		seenB[s.Trg] = true
	}
	return nil
}

// complement returns the sorted indices in [0, n) missing from idx.
func complement(idx []int, n int) []int {
	used := make([]bool, n)
	for _, i := range idx {
		used[i] = true
	}
	out := make([]int, 0, n-len(idx))
	for i := 0; i < n; i++ {
		if !used[i] {
			out = append(out, i)
		}
	}
	return out
}

// permute returns g with rows and columns reordered by perm.
func permute(g *mat.Dense, perm []int) *mat.Dense {
	n := len(perm)
	out := mat.NewDense(n, n, nil)
	for i, pi := range perm {
		src := g.RawRowView(pi)
		dst := out.RawRowView(i)
		for j, pj := range perm {
			dst[j] = src[pj]
		}
	}
	return out
}

func initial(u int, init Init, rng *rand.Rand) *mat.Dense {
	p := mat.NewDense(u, u, nil)
	bary := 1 / float64(u)
	data := p.RawMatrix().Data
	if init != Randomized {
		for i := range data {
			data[i] = bary
		}
		return p
	}
	for i := range data {
		data[i] = rng.Float64()
	}
	balance(p, 100)
	for i := range data {
		data[i] = (data[i] + bary) / 2
	}
	return p
}

// balance scales the rows and columns of a positive matrix in turn until it
// is approximately doubly stochastic.
func balance(p *mat.Dense, iters int) {
	u, _ := p.Dims()
	colSum := make([]float64, u)
	for it := 0; it < iters; it++ {
		for i := 0; i < u; i++ {
			row := p.RawRowView(i)
			s := 0.0
			for _, v := range row {
				s += v
			}
			for j := range row {
				row[j] /= s
			}
		}
		for j := range colSum {
			colSum[j] = 0
		}
		for i := 0; i < u; i++ {
			for j, v := range p.RawRowView(i) {
				colSum[j] += v
			}
		}
		for i := 0; i < u; i++ {
			row := p.RawRowView(i)
			for j := range row {
				row[j] /= colSum[j]
			}
		}
	}
}

func direction(q, grad *mat.Dense, opts Options) error {
	if opts.Direction == GOAT {
		transportPlan(q, grad, opts.Reg, opts.Maximize, opts.SinkhornIters)
		return nil
	}
	cols, err := lap.Solve(grad, opts.Maximize)
	if err != nil {
		return fmt.Errorf("gradient assignment: %w", err)
	}
	q.Zero()
	for i, j := range cols {
		q.Set(i, j, 1)
	}
	return nil
}

// lineSearch maximizes (or minimizes) bα + aα² over α in [0, 1].
func lineSearch(a, b float64, maximize bool) float64 {
	if !maximize {
		a, b = -a, -b
	}
	if a < 0 {
		alpha := -b / (2 * a)
		return math.Max(0, math.Min(1, alpha))
	}
	if a+b > 0 {
		return 1
	}
	return 0
}

func frobenius(x, y *mat.Dense) float64 {
	r, _ := x.Dims()
	sum := 0.0
	for i := 0; i < r; i++ {
		yr := y.RawRowView(i)
		for j, v := range x.RawRowView(i) {
			sum += v * yr[j]
		}
	}
	return sum
}

func scaled(dst *mat.Dense, alpha float64, x *mat.Dense) *mat.Dense {
	dst.Scale(alpha, x)
	return dst
}

// objective computes trace(Aᵀ P B Pᵀ) = Σ A[i][j] B[c(i)][c(j)].
func objective(a, b *mat.Dense, colInd []int) float64 {
	sum := 0.0
	for i, ci := range colInd {
		ar := a.RawRowView(i)
		br := b.RawRowView(ci)
		for j, cj := range colInd {
			sum += ar[j] * br[cj]
		}
	}
	return sum
}
