package isomorphism

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

func TestNeighborGraph(t *testing.T) {
	// Two tight clusters: 0,1 along x and 2,3 along y.
	m := mat.NewDense(4, 2, []float64{
		1, 0.01,
		1, 0.02,
		0.01, 1,
		0.02, 1,
	})
	adj := NeighborGraph(m, 1)
	want := [][]float64{
		{0, 1, 0, 0},
		{1, 0, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
	}
	for i := range want {
		for j := range want[i] {
			if got := adj.At(i, j); got != want[i][j] {
				t.Errorf("adj[%d][%d] = %v, want %v", i, j, got, want[i][j])
			}
		}
	}
}

func TestSpectrumOfPath(t *testing.T) {
	// Path graph 0-1-2 has Laplacian eigenvalues 0, 1, 3.
	m := mat.NewDense(3, 2, []float64{
		1, 0,
		math.Cos(0.3), math.Sin(0.3),
		math.Cos(0.5), math.Sin(0.5),
	})
	adj := NeighborGraph(m, 1)
	got, err := Spectrum(adj)
	if err != nil {
		t.Fatalf("Spectrum error: %v", err)
	}
	want := []float64{0, 1, 3}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("eigenvalue %d = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestSelectK(t *testing.T) {
	tests := []struct {
		spectrum []float64
		energy   float64
		want     int
	}{
		{[]float64{0, 1, 3}, 0.9, 3},
		{[]float64{0, 1, 3}, 0.25, 2},
		{[]float64{5, 1, 1, 1}, 0.5, 1},
		{[]float64{1, 1, 1, 1}, 0.5, 2},
	}
	for _, tt := range tests {
		if got := SelectK(tt.spectrum, tt.energy); got != tt.want {
			t.Errorf("SelectK(%v, %v) = %d, want %d", tt.spectrum, tt.energy, got, tt.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	if got := Similarity([]float64{0, 1, 3}, []float64{0, 2, 5, 9}, 3); got != 5 {
		t.Errorf("Similarity = %v, want 5", got)
	}
	if got := Similarity([]float64{1, 2}, []float64{1}, 5); got != 0 {
		t.Errorf("Similarity clamps k: got %v, want 0", got)
	}
}

func TestEVSRotationInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	const n, d = 25, 4
	x := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			x.Set(i, j, rng.NormFloat64())
		}
	}
	var qr mat.QR
	qr.Factorize(mat.NewDense(d, d, []float64{
		2, 1, 0, 0,
		1, 3, 1, 0,
		0, 1, 4, 1,
		0, 0, 1, 5,
	}))
	var q, y mat.Dense
	qr.QTo(&q)
	y.Mul(x, &q)

	got, err := EVS(x, &y, DefaultConfig())
	if err != nil {
		t.Fatalf("EVS error: %v", err)
	}
	if got > 1e-9 {
		t.Errorf("EVS of rotated copy = %g, want 0", got)
	}
}

func TestSpectrumSingleNode(t *testing.T) {
	if _, err := Spectrum(NeighborGraph(mat.NewDense(1, 1, []float64{1}), 1)); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}
