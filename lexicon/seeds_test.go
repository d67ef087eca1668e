package lexicon

import (
	"reflect"
	"strings"
	"testing"
)

func TestSeeds(t *testing.T) {
	src := []string{"omeya", "omeva", "oshikuni", "ondjila", "egumbo"}
	trg := []string{"the", "water", "country", "road"}
	dict := Translations{
		"omeya":    {"water"},
		"omeva":    {"water", "liquid"}, // water already taken
		"oshikuni": {"land", "country"},
		"ondjila":  {"path"}, // not in target list
	}
	got := Seeds(src, trg, dict)
	want := []Pair{{0, 1}, {2, 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Seeds = %v, want %v", got, want)
	}
}

func TestIdenticalWordsExact(t *testing.T) {
	src := []string{"namibia", "omeya", "windhoek", "ok"}
	trg := []string{"windhoek", "water", "namibia", "ok"}
	got := IdenticalWords(src, trg, 4, 0)
	want := []Pair{{0, 2}, {2, 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("IdenticalWords = %v, want %v", got, want)
	}
}

func TestIdenticalWordsFuzzy(t *testing.T) {
	src := []string{"namibiya", "geingob"}
	trg := []string{"nambia", "namibia", "geingob"}
	got := IdenticalWords(src, trg, 4, 1)
	want := []Pair{{0, 1}, {1, 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("IdenticalWords = %v, want %v", got, want)
	}
}

func TestIdenticalWordsClaimsEachTargetOnce(t *testing.T) {
	tests := []struct {
		name    string
		src     []string
		trg     []string
		maxDist int
		want    []Pair
	}{
		{"exact beats fuzzy", []string{"namibian", "namibia"}, []string{"namibia", "omeya"}, 1, []Pair{{Src: 1, Trg: 0}}},
		{"fuzzy neighbours", []string{"namibia", "namibian", "nambia"}, []string{"namibia", "namibians"}, 1,
			[]Pair{{Src: 0, Trg: 0}, {Src: 1, Trg: 1}}},
		{"repeated source word", []string{"windhoek", "windhoek"}, []string{"windhoek"}, 0, []Pair{{Src: 0, Trg: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IdenticalWords(tt.src, tt.trg, 4, tt.maxDist)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("IdenticalWords = %v, want %v", got, tt.want)
			}
			s, r := RemoveWords(tt.src, tt.trg, got)
			if len(tt.src)-len(s) != len(tt.trg)-len(r) {
				t.Errorf("RemoveWords dropped %d source and %d target words", len(tt.src)-len(s), len(tt.trg)-len(r))
			}
		})
	}
}

func TestRemoveWords(t *testing.T) {
	src := []string{"namibia", "omeya", "windhoek"}
	trg := []string{"windhoek", "water", "namibia"}
	s, r := RemoveWords(src, trg, IdenticalWords(src, trg, 4, 0))
	if strings.Join(s, ",") != "omeya" || strings.Join(r, ",") != "water" {
		t.Errorf("RemoveWords = %v, %v", s, r)
	}
}

func TestNameSeeds(t *testing.T) {
	identical := []Pair{{0, 2}, {2, 0}, {3, 3}}
	seeds := []Pair{{1, 1}, {3, 4}}
	got := NameSeeds(identical, seeds)
	want := []Pair{{0, 2}, {2, 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NameSeeds = %v, want %v", got, want)
	}
}

func TestCombine(t *testing.T) {
	gold := []Pair{{0, 0}, {1, 1}}
	extra := []Pair{{0, 2}, {2, 1}, {2, 2}, {3, 3}, {3, 4}}
	got := Combine(gold, extra)
	want := []Pair{{0, 0}, {1, 1}, {2, 2}, {3, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Combine = %v, want %v", got, want)
	}
}

func TestPairSet(t *testing.T) {
	a := NewPairSet([]Pair{{0, 0}, {1, 1}, {2, 2}})
	b := NewPairSet([]Pair{{1, 1}, {2, 3}, {2, 2}})
	if got := a.Intersect(b).Sorted(); !reflect.DeepEqual(got, []Pair{{1, 1}, {2, 2}}) {
		t.Errorf("Intersect = %v", got)
	}
	if got := a.Minus(b).Sorted(); !reflect.DeepEqual(got, []Pair{{0, 0}}) {
		t.Errorf("Minus = %v", got)
	}
	src, trg := Unzip([]Pair{{1, 2}, {3, 4}})
	if !reflect.DeepEqual(src, []int{1, 3}) || !reflect.DeepEqual(trg, []int{2, 4}) {
		t.Errorf("Unzip = %v, %v", src, trg)
	}
	if got := Swap([]Pair{{1, 2}}); got[0] != (Pair{2, 1}) {
		t.Errorf("Swap = %v", got)
	}
}
