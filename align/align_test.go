package align

import (
	"math"
	"testing"

	"github.com/ieee0824/bli-go/lexicon"
	"github.com/ieee0824/bli-go/match"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

func randomDense(r, c int, seed uint64) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	m := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, rng.NormFloat64())
		}
	}
	return m
}

func randomRotation(d int, seed uint64) *mat.Dense {
	var qr mat.QR
	qr.Factorize(randomDense(d, d, seed))
	var q mat.Dense
	qr.QTo(&q)
	return &q
}

func unitRows(m *mat.Dense) {
	r, _ := m.Dims()
	for i := 0; i < r; i++ {
		row := m.RawRowView(i)
		n := 0.0
		for _, v := range row {
			n += v * v
		}
		n = math.Sqrt(n)
		for j := range row {
			row[j] /= n
		}
	}
}

func identityPairs(n int) []lexicon.Pair {
	out := make([]lexicon.Pair, n)
	for i := range out {
		out[i] = lexicon.Pair{Src: i, Trg: i}
	}
	return out
}

func TestProcrustesRecoversRotation(t *testing.T) {
	const n, d = 20, 5
	x := randomDense(n, d, 1)
	q := randomRotation(d, 2)
	var y mat.Dense
	y.Mul(x, q)

	w, err := Procrustes(x, &y, identityPairs(10))
	if err != nil {
		t.Fatalf("Procrustes error: %v", err)
	}
	if !mat.EqualApprox(w, q, 1e-9) {
		t.Errorf("W = %v, want %v", mat.Formatted(w), mat.Formatted(q))
	}
}

func TestProcrustesErrors(t *testing.T) {
	x := randomDense(4, 3, 1)
	if _, err := Procrustes(x, x, nil); err != ErrNoSeeds {
		t.Errorf("no pairs: err = %v, want ErrNoSeeds", err)
	}
	y := randomDense(4, 2, 1)
	if _, err := Procrustes(x, y, identityPairs(2)); err == nil {
		t.Error("dimension mismatch: expected error")
	}
	if _, err := Procrustes(x, x, []lexicon.Pair{{Src: 0, Trg: 9}}); err == nil {
		t.Error("out of range pair: expected error")
	}
}

func TestCSLS(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	got := CSLS(x, x, 1)
	want := mat.NewDense(2, 2, []float64{0, -2, -2, 0})
	if !mat.EqualApprox(got, want, 1e-12) {
		t.Errorf("CSLS = %v, want %v", mat.Formatted(got), mat.Formatted(want))
	}
}

func TestCSLSPenalizesHubs(t *testing.T) {
	// y0 is close to both sources; plain cosine sends both to it.
	x := mat.NewDense(2, 2, []float64{1, 0, 0.6, 0.8})
	y := mat.NewDense(2, 2, []float64{0.8, 0.6, 0, 1})
	var cos mat.Dense
	cos.Mul(x, y.T())
	fwd, _ := NearestNeighbors(&cos)
	if fwd[0].Trg != 0 || fwd[1].Trg != 0 {
		t.Fatalf("cosine neighbours = %v, want both 0", fwd)
	}
	fwd, _ = NearestNeighbors(CSLS(x, y, 2))
	if fwd[1].Trg != 1 {
		t.Errorf("CSLS neighbour of 1 = %d, want 1", fwd[1].Trg)
	}
}

func TestNearestNeighborsAndMutual(t *testing.T) {
	scores := mat.NewDense(3, 3, []float64{
		0.9, 0.1, 0.0,
		0.8, 0.2, 0.1,
		0.0, 0.3, 0.7,
	})
	fwd, rev := NearestNeighbors(scores)
	wantFwd := []lexicon.Pair{{Src: 0, Trg: 0}, {Src: 1, Trg: 0}, {Src: 2, Trg: 2}}
	wantRev := []lexicon.Pair{{Src: 0, Trg: 0}, {Src: 2, Trg: 1}, {Src: 2, Trg: 2}}
	for i := range wantFwd {
		if fwd[i] != wantFwd[i] {
			t.Errorf("forward[%d] = %v, want %v", i, fwd[i], wantFwd[i])
		}
		if rev[i] != wantRev[i] {
			t.Errorf("reverse[%d] = %v, want %v", i, rev[i], wantRev[i])
		}
	}
	mutual := Mutual(fwd, rev)
	want := []lexicon.Pair{{Src: 0, Trg: 0}, {Src: 2, Trg: 2}}
	if len(mutual) != len(want) {
		t.Fatalf("Mutual = %v, want %v", mutual, want)
	}
	for i := range want {
		if mutual[i] != want[i] {
			t.Errorf("Mutual[%d] = %v, want %v", i, mutual[i], want[i])
		}
	}
}

func TestRank(t *testing.T) {
	scores := mat.NewDense(2, 3, []float64{
		0.1, 0.5, 0.3,
		0.9, 0.2, 0.4,
	})
	got := Rank(scores, 2)
	want := []Ranked{
		{Pair: lexicon.Pair{Src: 0, Trg: 1}, Score: 0.5},
		{Pair: lexicon.Pair{Src: 0, Trg: 2}, Score: 0.3},
		{Pair: lexicon.Pair{Src: 1, Trg: 0}, Score: 0.9},
		{Pair: lexicon.Pair{Src: 1, Trg: 2}, Score: 0.4},
	}
	if len(got) != len(want) {
		t.Fatalf("Rank len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Rank[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEval(t *testing.T) {
	hyps := []lexicon.Pair{{Src: 0, Trg: 0}, {Src: 1, Trg: 2}, {Src: 2, Trg: 2}}
	gold := []lexicon.Pair{{Src: 0, Trg: 0}, {Src: 1, Trg: 1}}

	s := Eval(hyps, gold)
	if s.Matches != 1 {
		t.Errorf("Matches = %d, want 1", s.Matches)
	}
	if math.Abs(s.Precision-100.0/3) > 1e-9 {
		t.Errorf("Precision = %f, want %f", s.Precision, 100.0/3)
	}
	if s.Recall != 50 {
		t.Errorf("Recall = %f, want 50", s.Recall)
	}

	dev := EvalDev(hyps, []lexicon.Pair{{Src: 1, Trg: 1}})
	if dev.Matches != 0 || dev.Precision != 0 || dev.Recall != 0 {
		t.Errorf("EvalDev = %+v, want zero score", dev)
	}
	dev = EvalDev(hyps, []lexicon.Pair{{Src: 0, Trg: 0}})
	if dev.Precision != 100 || dev.Recall != 100 {
		t.Errorf("EvalDev = %+v, want 100/100", dev)
	}

	if empty := Eval(nil, nil); empty != (Score{}) {
		t.Errorf("Eval(nil, nil) = %+v, want zero", empty)
	}
}

func TestIterativeProcrustes(t *testing.T) {
	const n, d = 40, 6
	x := randomDense(n, d, 5)
	unitRows(x)
	var y mat.Dense
	y.Mul(x, randomRotation(d, 6))

	cfg := ProcrustesConfig{Iters: 2, Neighbors: 1, RankDepth: 3}
	var calls int
	mon := func(stage string, iter int, s Score) {
		calls++
		if stage != "procrustes" {
			t.Errorf("stage = %q, want procrustes", stage)
		}
		if s.Precision != 100 {
			t.Errorf("iteration %d precision = %f, want 100", iter, s.Precision)
		}
	}
	dev := identityPairs(n)[10:]
	res, err := IterativeProcrustes(x, &y, nil, identityPairs(10), dev, cfg, mon)
	if err != nil {
		t.Fatalf("IterativeProcrustes error: %v", err)
	}
	if calls != cfg.Iters {
		t.Errorf("monitor called %d times, want %d", calls, cfg.Iters)
	}
	for i, h := range res.Hypotheses {
		if h.Src != i || h.Trg != i {
			t.Errorf("Hypotheses[%d] = %v, want {%d %d}", i, h, i, i)
		}
	}
	if len(res.Mutual) != n {
		t.Errorf("len(Mutual) = %d, want %d", len(res.Mutual), n)
	}
	if len(res.Ranked) != n*cfg.RankDepth {
		t.Fatalf("len(Ranked) = %d, want %d", len(res.Ranked), n*cfg.RankDepth)
	}
	for i := 0; i < n; i++ {
		if top := res.Ranked[i*cfg.RankDepth]; top.Trg != i {
			t.Errorf("best ranked candidate of %d = %d", i, top.Trg)
		}
	}
}

func TestIterativeSoftSGM(t *testing.T) {
	const n = 12
	a := randomDense(n, n, 3)
	var sym mat.Dense
	sym.Add(a, a.T())
	perm := rand.New(rand.NewSource(4)).Perm(n)
	b := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			b.Set(perm[i], perm[j], sym.At(i, j))
		}
	}

	var gold, dev []lexicon.Pair
	for i := 0; i < n; i++ {
		p := lexicon.Pair{Src: i, Trg: perm[i]}
		if i < 8 {
			gold = append(gold, p)
		} else {
			dev = append(dev, p)
		}
	}

	opts := match.DefaultOptions()
	opts.MaxIter = 100
	opts.Tol = 1e-6
	opts.Rand = rand.New(rand.NewSource(1))
	cfg := SGMConfig{SoftIters: 1, K: 1, Rounds: 2, Reverse: true, Options: opts}

	var last Score
	res, err := IterativeSoftSGM(&sym, b, nil, gold, dev, cfg, func(_ string, _ int, s Score) { last = s })
	if err != nil {
		t.Fatalf("IterativeSoftSGM error: %v", err)
	}
	if len(res.Hypotheses) != n {
		t.Fatalf("len(Hypotheses) = %d, want %d", len(res.Hypotheses), n)
	}
	for _, h := range res.Hypotheses {
		if h.Trg != perm[h.Src] {
			t.Errorf("hypothesis %v, want target %d", h, perm[h.Src])
		}
	}
	fwd := lexicon.NewPairSet(res.Hypotheses)
	for _, p := range res.Confident {
		if !fwd.Has(p) {
			t.Errorf("confident pair %v not among forward hypotheses", p)
		}
	}
	if last.Precision != 100 {
		t.Errorf("dev precision = %f, want 100", last.Precision)
	}
}
