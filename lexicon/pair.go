package lexicon

import "sort"

// Pair links a source vocabulary position to a target vocabulary position.
type Pair struct {
	Src int
	Trg int
}

// PairSet is a set of pairs.
type PairSet map[Pair]struct{}

// NewPairSet collects pairs into a set.
func NewPairSet(pairs []Pair) PairSet {
	s := make(PairSet, len(pairs))
	for _, p := range pairs {
		s[p] = struct{}{}
	}
	return s
}

// Has reports whether p is in the set.
func (s PairSet) Has(p Pair) bool {
	_, ok := s[p]
	return ok
}

// Intersect returns the pairs present in both sets.
func (s PairSet) Intersect(o PairSet) PairSet {
	if len(o) < len(s) {
		s, o = o, s
	}
	out := make(PairSet)
	for p := range s {
		if o.Has(p) {
			out[p] = struct{}{}
		}
	}
	return out
}

// Minus returns the pairs of s not in o.
func (s PairSet) Minus(o PairSet) PairSet {
	out := make(PairSet, len(s))
	for p := range s {
		if !o.Has(p) {
			out[p] = struct{}{}
		}
	}
	return out
}

// Sorted returns the pairs ordered by source, then target.
func (s PairSet) Sorted() []Pair {
	pairs := make([]Pair, 0, len(s))
	for p := range s {
		pairs = append(pairs, p)
	}
	SortPairs(pairs)
	return pairs
}

// SortPairs orders pairs by source, then target.
func SortPairs(pairs []Pair) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Src != pairs[j].Src {
			return pairs[i].Src < pairs[j].Src
		}
		return pairs[i].Trg < pairs[j].Trg
	})
}

// Unzip splits pairs into their source and target indices.
func Unzip(pairs []Pair) (src, trg []int) {
	src = make([]int, len(pairs))
	trg = make([]int, len(pairs))
	for i, p := range pairs {
		src[i] = p.Src
		trg[i] = p.Trg
	}
	return src, trg
}

// Swap exchanges source and target of every pair.
func Swap(pairs []Pair) []Pair {
	out := make([]Pair, len(pairs))
	for i, p := range pairs {
		out[i] = Pair{Src: p.Trg, Trg: p.Src}
	}
	return out
}

// Combine returns gold followed by the extra pairs that share neither a
// source nor a target with anything kept before them. The result is
// one-to-one as long as gold is.
func Combine(gold, extra []Pair) []Pair {
	out := make([]Pair, 0, len(gold)+len(extra))
	usedSrc := make(map[int]bool, len(gold)+len(extra))
	usedTrg := make(map[int]bool, len(gold)+len(extra))
	for _, p := range gold {
		out = append(out, p)
		usedSrc[p.Src] = true
		usedTrg[p.Trg] = true
	}
	for _, p := range extra {
		if usedSrc[p.Src] || usedTrg[p.Trg] {
			continue
		}
		out = append(out, p)
		usedSrc[p.Src] = true
		usedTrg[p.Trg] = true
	}
	return out
}
