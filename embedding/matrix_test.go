package embedding

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestNormalize(t *testing.T) {
	m := mat.NewDense(3, 2, []float64{
		3, 4,
		1, 0,
		0, 0,
	})
	Normalize(m)

	for i := 0; i < 2; i++ {
		if n := floats.Norm(m.RawRowView(i), 2); math.Abs(n-1) > 1e-12 {
			t.Errorf("row %d norm = %f, want 1", i, n)
		}
	}
	for _, v := range m.RawMatrix().Data {
		if math.IsNaN(v) {
			t.Fatalf("NaN in normalized matrix: %v", mat.Formatted(m))
		}
	}
	if row := m.RawRowView(2); row[0] != 0 || row[1] != 0 {
		t.Errorf("zero row = %v, want [0 0]", row)
	}
}

func TestNormalizeZeroRowsLeaveMeanAlone(t *testing.T) {
	// An out-of-vocabulary row must not shift the centering of the others.
	m := mat.NewDense(3, 2, []float64{1, 0, 0, 1, 0, 0})
	want := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	Normalize(m)
	Normalize(want)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if math.Abs(m.At(i, j)-want.At(i, j)) > 1e-12 {
				t.Errorf("m[%d][%d] = %f, want %f", i, j, m.At(i, j), want.At(i, j))
			}
		}
	}
}

func TestNormalizeCentersBeforeRenormalizing(t *testing.T) {
	// Two identical directions collapse to the zero vector after centering
	// and must stay zero.
	m := mat.NewDense(2, 2, []float64{1, 0, 2, 0})
	Normalize(m)
	for _, v := range m.RawMatrix().Data {
		if v != 0 {
			t.Errorf("m = %v, want all zeros", mat.Formatted(m))
			break
		}
	}
}

func TestSimilarity(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	s := Similarity(m)
	want := []float64{1, 0, 0, 1}
	for i, v := range s.RawMatrix().Data {
		if v != want[i] {
			t.Errorf("S = %v, want identity", mat.Formatted(s))
			break
		}
	}
}

type fixedEmbedder map[string][]float64

func (f fixedEmbedder) Embed(word string) ([]float64, error) {
	v, ok := f[word]
	if !ok {
		return nil, errors.New("unknown word")
	}
	return v, nil
}

func (f fixedEmbedder) Dim() int { return 2 }

func TestBuild(t *testing.T) {
	e := fixedEmbedder{"a": {1, 2}, "b": {3, 4}, "bad": {1}}
	m, err := Build([]string{"b", "a"}, e)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if m.At(0, 0) != 3 || m.At(1, 1) != 2 {
		t.Errorf("m = %v", mat.Formatted(m))
	}
	if _, err := Build([]string{"bad"}, e); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("err = %v, want ErrDimensionMismatch", err)
	}
	if _, err := Build([]string{"zzz"}, e); err == nil {
		t.Error("expected error for unknown word")
	}
	if _, err := Build(nil, e); !errors.Is(err, ErrEmpty) {
		t.Errorf("err = %v, want ErrEmpty", err)
	}
}

func TestReorder(t *testing.T) {
	tab, err := NewTable([]string{"x", "y"}, mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6}))
	if err != nil {
		t.Fatalf("NewTable error: %v", err)
	}
	out, missing, err := Reorder([]string{"y", "new", "x"}, tab, rand.NewSource(7))
	if err != nil {
		t.Fatalf("Reorder error: %v", err)
	}
	if missing != 1 {
		t.Errorf("missing = %d, want 1", missing)
	}
	if out.Words[0] != "y" || out.Vectors.At(0, 0) != 4 {
		t.Errorf("row 0 = %s %v", out.Words[0], out.Vectors.RawRowView(0))
	}
	if out.Vectors.At(2, 2) != 3 {
		t.Errorf("row 2 = %v, want x's vector", out.Vectors.RawRowView(2))
	}
	if v, _ := out.Vector("new"); len(v) != 3 {
		t.Errorf("sampled vector = %v", v)
	}

	if _, _, err := Reorder([]string{"a"}, &Table{}, rand.NewSource(1)); !errors.Is(err, ErrEmpty) {
		t.Errorf("err = %v, want ErrEmpty", err)
	}
}

func TestNewTableMismatch(t *testing.T) {
	if _, err := NewTable([]string{"a"}, mat.NewDense(2, 2, nil)); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("err = %v, want ErrDimensionMismatch", err)
	}
}

func TestTableEmbed(t *testing.T) {
	tab, err := NewTable([]string{"a", "b"}, mat.NewDense(2, 2, []float64{1, 2, 3, 4}))
	if err != nil {
		t.Fatal(err)
	}
	m, err := Build([]string{"b", "zzz"}, tab)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	want := mat.NewDense(2, 2, []float64{3, 4, 0, 0})
	if !mat.Equal(m, want) {
		t.Errorf("Build = %v, want %v", mat.Formatted(m), mat.Formatted(want))
	}
	v, _ := tab.Embed("a")
	v[0] = 99
	if tab.Vectors.At(0, 0) != 1 {
		t.Error("Embed returned a slice aliasing the table")
	}
}
