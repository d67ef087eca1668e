package align

import "github.com/ieee0824/bli-go/lexicon"

// Score summarizes hypotheses against gold pairs. Precision and recall are
// percentages.
type Score struct {
	Matches   int
	Precision float64
	Recall    float64
}

// Eval compares hypotheses with gold pairs.
func Eval(hyps, gold []lexicon.Pair) Score {
	matches := lexicon.NewPairSet(hyps).Intersect(lexicon.NewPairSet(gold))
	s := Score{Matches: len(matches)}
	if n := len(lexicon.NewPairSet(hyps)); n > 0 {
		s.Precision = float64(s.Matches) / float64(n) * 100
	}
	if n := len(lexicon.NewPairSet(gold)); n > 0 {
		s.Recall = float64(s.Matches) / float64(n) * 100
	}
	return s
}

// EvalDev restricts the hypotheses to the source words of dev before
// comparing, so words outside the held-out set do not count against
// precision.
func EvalDev(hyps, dev []lexicon.Pair) Score {
	srcs := make(map[int]bool, len(dev))
	for _, p := range dev {
		srcs[p.Src] = true
	}
	var kept []lexicon.Pair
	for _, h := range hyps {
		if srcs[h.Src] {
			kept = append(kept, h)
		}
	}
	return Eval(kept, dev)
}
