package survey

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ieee0824/bli-go/lexicon"
)

// NoneOfTheAbove is the answer given when no listed translation fits.
const NoneOfTheAbove = "None of the above"

var quotedWord = regexp.MustCompile(`'(.+?)'`)

// Almost-correct outcomes per kept word.
const (
	Incorrect     = 0
	Correct       = 1
	AlmostCorrect = 2
)

// Evaluator accumulates survey answers over several forms.
type Evaluator struct {
	dict lexicon.Translations

	kept            []int // rank of the agreed best translation, -1 for none
	discarded       int
	almost          []int
	almostDiscarded int
	unranked        map[string]bool
	unrecognized    int
}

// NewEvaluator scores answers against dict, the ranked dictionary the
// survey was generated from.
func NewEvaluator(dict lexicon.Translations) *Evaluator {
	return &Evaluator{dict: dict, unranked: make(map[string]bool)}
}

// AddForm scores the responses to one form. Majorities are taken within
// the form.
func (e *Evaluator) AddForm(form *Form, responses []Response) {
	questions := form.Questions()
	ranks := make(map[string][]int)
	yesNo := make(map[string][]int)

	for _, resp := range responses {
		ids := make([]string, 0, len(resp.Answers))
		for id := range resp.Answers {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			title, ok := questions[id]
			if !ok {
				continue
			}
			m := quotedWord.FindStringSubmatch(title)
			if m == nil {
				e.unrecognized++
				continue
			}
			word := m[1]
			best := strings.HasSuffix(title, ":")
			for _, a := range resp.Answers[id].TextAnswers.Answers {
				switch {
				case a.Value == "":
				case best && a.Value == NoneOfTheAbove:
					ranks[word] = append(ranks[word], -1)
				case best:
					r := e.dict.Rank(word, a.Value)
					if r == 0 {
						e.unrecognized++
						continue
					}
					ranks[word] = append(ranks[word], r)
				case a.Value == "Yes":
					yesNo[word] = append(yesNo[word], 1)
				case a.Value == "No":
					yesNo[word] = append(yesNo[word], 0)
				default:
					e.unrecognized++
				}
			}
		}
	}

	words := make([]string, 0, len(ranks))
	for w := range ranks {
		words = append(words, w)
	}
	sort.Strings(words)
	for _, w := range words {
		value, ok := majority(ranks[w])
		if !ok {
			e.discarded++
			if _, asked := yesNo[w]; asked {
				e.almostDiscarded++
			}
			continue
		}
		e.kept = append(e.kept, value)
		votes, asked := yesNo[w]
		if !asked || len(votes) == 0 {
			continue
		}
		yes := 0
		for _, v := range votes {
			yes += v
		}
		switch ratio := float64(yes) / float64(len(votes)); {
		case ratio == 0.5:
			e.almostDiscarded++
		case ratio > 0.5 && value == 1:
			e.almost = append(e.almost, Correct)
		case ratio > 0.5:
			e.almost = append(e.almost, AlmostCorrect)
		default:
			e.almost = append(e.almost, Incorrect)
		}
	}
	for w := range yesNo {
		if _, ok := ranks[w]; !ok {
			e.unranked[w] = true
		}
	}
}

// majority returns the most frequent value if it occurs more than once and
// strictly more often than any other.
func majority(values []int) (int, bool) {
	counts := make(map[int]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	best, bestN, second := 0, 0, 0
	for v, n := range counts {
		switch {
		case n > bestN:
			second = bestN
			best, bestN = v, n
		case n > second:
			second = n
		}
	}
	if bestN > 1 && bestN > second {
		return best, true
	}
	return 0, false
}

// Report summarizes the kept answers.
type Report struct {
	MRR, P1, P5, P10 float64
	Kept, Discarded  int

	Correct, AlmostCorrect, Incorrect int
	AlmostKept, AlmostDiscarded       int

	Unranked     int // words asked about but never answered in the ranked list
	Unrecognized int // answers that matched neither the dictionary nor yes/no
}

// Report computes the scores over all forms added so far.
func (e *Evaluator) Report() Report {
	r := Report{
		Kept:            len(e.kept),
		Discarded:       e.discarded,
		AlmostKept:      len(e.almost),
		AlmostDiscarded: e.almostDiscarded,
		Unranked:        len(e.unranked),
		Unrecognized:    e.unrecognized,
	}
	for _, v := range e.almost {
		switch v {
		case Correct:
			r.Correct++
		case AlmostCorrect:
			r.AlmostCorrect++
		default:
			r.Incorrect++
		}
	}
	if len(e.kept) == 0 {
		return r
	}
	var p1, p5, p10 int
	for _, rank := range e.kept {
		if rank <= 0 {
			continue
		}
		r.MRR += 1 / float64(rank)
		if rank == 1 {
			p1++
		}
		if rank <= 5 {
			p5++
		}
		if rank <= 10 {
			p10++
		}
	}
	n := float64(len(e.kept))
	r.MRR /= n
	r.P1 = float64(p1) / n
	r.P5 = float64(p5) / n
	r.P10 = float64(p10) / n
	return r
}
