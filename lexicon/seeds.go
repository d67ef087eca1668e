package lexicon

import "unicode/utf8"

func indexOf(words []string) map[string]int {
	idx := make(map[string]int, len(words))
	for i, w := range words {
		if _, ok := idx[w]; !ok {
			idx[w] = i
		}
	}
	return idx
}

// Seeds finds known translations between two word lists. Source words are
// visited in list order; each takes the first of its dictionary candidates
// that is present in trg and not already claimed by an earlier source word.
// Words without a usable candidate are skipped.
func Seeds(src, trg []string, dict Translations) []Pair {
	trgIdx := indexOf(trg)
	usedSrc := make(map[int]bool)
	usedTrg := make(map[int]bool)
	var seeds []Pair
	for i, w := range src {
		if usedSrc[i] {
			continue
		}
		for _, cand := range dict[w] {
			j, ok := trgIdx[cand]
			if !ok || usedTrg[j] {
				continue
			}
			seeds = append(seeds, Pair{Src: i, Trg: j})
			usedSrc[i] = true
			usedTrg[j] = true
			break
		}
	}
	return seeds
}

// IdenticalWords returns the pairs of words that look the same in both
// lists: at least minLen runes long and within maxDist edits of each other
// (maxDist 0 means spelled identically). Mostly names, numbers spelled out
// and loanwords. Every target word is claimed at most once, so the result
// is a partial one-to-one matching: exact spellings are claimed first,
// then each remaining source word, in list order, takes its closest
// unclaimed target, the earliest one on ties.
func IdenticalWords(src, trg []string, minLen, maxDist int) []Pair {
	match := make([]int, len(src))
	usedTrg := make(map[int]bool)
	trgIdx := indexOf(trg)
	for i, w := range src {
		match[i] = -1
		if utf8.RuneCountInString(w) < minLen {
			continue
		}
		if j, ok := trgIdx[w]; ok && !usedTrg[j] {
			match[i] = j
			usedTrg[j] = true
		}
	}
	if maxDist > 0 {
		for i, w := range src {
			if match[i] >= 0 || utf8.RuneCountInString(w) < minLen {
				continue
			}
			best, bestDist := -1, maxDist+1
			for j, u := range trg {
				if usedTrg[j] || utf8.RuneCountInString(u) < minLen {
					continue
				}
				if d := EditDistance(w, u); d < bestDist {
					best, bestDist = j, d
				}
			}
			if best >= 0 {
				match[i] = best
				usedTrg[best] = true
			}
		}
	}
	var pairs []Pair
	for i, j := range match {
		if j >= 0 {
			pairs = append(pairs, Pair{Src: i, Trg: j})
		}
	}
	return pairs
}

// RemoveWords drops the given pairs' words from both lists. The remaining
// words keep their order.
func RemoveWords(src, trg []string, pairs []Pair) ([]string, []string) {
	dropSrc := make(map[int]bool, len(pairs))
	dropTrg := make(map[int]bool, len(pairs))
	for _, p := range pairs {
		dropSrc[p.Src] = true
		dropTrg[p.Trg] = true
	}
	keep := func(words []string, drop map[int]bool) []string {
		out := make([]string, 0, len(words))
		for i, w := range words {
			if !drop[i] {
				out = append(out, w)
			}
		}
		return out
	}
	return keep(src, dropSrc), keep(trg, dropTrg)
}

// NameSeeds returns the identical pairs that conflict with no seed. They
// let names anchor the matching when the dictionary covers few words.
func NameSeeds(identical, seeds []Pair) []Pair {
	usedSrc := make(map[int]bool, len(seeds))
	usedTrg := make(map[int]bool, len(seeds))
	for _, p := range seeds {
		usedSrc[p.Src] = true
		usedTrg[p.Trg] = true
	}
	var out []Pair
	for _, p := range identical {
		if usedSrc[p.Src] || usedTrg[p.Trg] {
			continue
		}
		out = append(out, p)
		usedSrc[p.Src] = true
		usedTrg[p.Trg] = true
	}
	return out
}
