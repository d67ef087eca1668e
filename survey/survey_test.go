package survey

import (
	"math"
	"strings"
	"testing"

	"github.com/ieee0824/bli-go/lexicon"
)

const formJSON = `{
  "formId": "f1",
  "items": [
    {"title": "Intro"},
    {"title": "Best translation of 'ondjila':", "questionItem": {"question": {"questionId": "q1"}}},
    {"title": "Is 'ondjila' almost translated by 'road'?", "questionItem": {"question": {"questionId": "q2"}}},
    {"title": "Best translation of 'omeya':", "questionItem": {"question": {"questionId": "q3"}}},
    {"title": "Best translation of 'ombwa':", "questionItem": {"question": {"questionId": "q4"}}},
    {"title": "Is 'ombwa' almost translated by 'wolf'?", "questionItem": {"question": {"questionId": "q5"}}},
    {"title": "Is 'egumbo' almost translated by 'house'?", "questionItem": {"question": {"questionId": "q6"}}}
  ]
}`

func answers(pairs ...string) map[string]Answer {
	m := make(map[string]Answer)
	for i := 0; i+1 < len(pairs); i += 2 {
		var a Answer
		a.QuestionID = pairs[i]
		a.TextAnswers.Answers = []TextAnswer{{Value: pairs[i+1]}}
		m[pairs[i]] = a
	}
	return m
}

func TestLoadForm(t *testing.T) {
	f, err := LoadForm(strings.NewReader(formJSON))
	if err != nil {
		t.Fatalf("LoadForm error: %v", err)
	}
	q := f.Questions()
	if len(q) != 6 {
		t.Fatalf("len(Questions) = %d, want 6", len(q))
	}
	if q["q3"] != "Best translation of 'omeya':" {
		t.Errorf("q3 = %q", q["q3"])
	}
}

func TestLoadResponses(t *testing.T) {
	const data = `{"responses": [{"responseId": "r1", "answers": {"q1": {"questionId": "q1", "textAnswers": {"answers": [{"value": "way"}]}}}}]}`
	rs, err := LoadResponses(strings.NewReader(data))
	if err != nil {
		t.Fatalf("LoadResponses error: %v", err)
	}
	if len(rs) != 1 || rs[0].Answers["q1"].TextAnswers.Answers[0].Value != "way" {
		t.Errorf("LoadResponses = %+v", rs)
	}
	if _, err := LoadResponses(strings.NewReader("{")); err == nil {
		t.Error("expected error for truncated JSON")
	}
}

func TestEvaluate(t *testing.T) {
	form, err := LoadForm(strings.NewReader(formJSON))
	if err != nil {
		t.Fatal(err)
	}
	dict := lexicon.Translations{
		"ondjila": {"way", "road", "path"},
		"omeya":   {"water", "rain"},
		"ombwa":   {"cat", "dog", "wolf"},
	}
	responses := []Response{
		{ResponseID: "r1", Answers: answers("q1", "road", "q2", "Yes", "q3", "water", "q4", "dog", "q5", "No", "q6", "Yes")},
		{ResponseID: "r2", Answers: answers("q1", "road", "q2", "Yes", "q3", "rain", "q4", "dog", "q5", "Yes", "q6", "No")},
		{ResponseID: "r3", Answers: answers("q1", "way", "q2", "No", "q3", "banana", "q4", NoneOfTheAbove)},
	}

	e := NewEvaluator(dict)
	e.AddForm(form, responses)
	r := e.Report()

	// ondjila: rank 2 twice; omeya: 1 vs 2 tie, discarded; ombwa: rank 2 twice.
	if r.Kept != 2 || r.Discarded != 1 {
		t.Errorf("Kept = %d, Discarded = %d, want 2, 1", r.Kept, r.Discarded)
	}
	if math.Abs(r.MRR-0.5) > 1e-12 {
		t.Errorf("MRR = %f, want 0.5", r.MRR)
	}
	if r.P1 != 0 || r.P5 != 1 || r.P10 != 1 {
		t.Errorf("P@1 = %f, P@5 = %f, P@10 = %f", r.P1, r.P5, r.P10)
	}
	// ondjila: 2/3 yes with best rank 2 -> almost correct; ombwa: 1/2 -> discarded.
	if r.AlmostKept != 1 || r.AlmostCorrect != 1 || r.AlmostDiscarded != 1 {
		t.Errorf("almost: kept %d, almost correct %d, discarded %d", r.AlmostKept, r.AlmostCorrect, r.AlmostDiscarded)
	}
	if r.Unranked != 1 {
		t.Errorf("Unranked = %d, want 1", r.Unranked)
	}
	if r.Unrecognized != 1 {
		t.Errorf("Unrecognized = %d, want 1", r.Unrecognized)
	}
}

func TestMajority(t *testing.T) {
	tests := []struct {
		values []int
		want   int
		ok     bool
	}{
		{[]int{1, 1, 2}, 1, true},
		{[]int{3}, 0, false},
		{[]int{1, 2, 1, 2}, 0, false},
		{[]int{-1, -1, -1, 4, 4}, -1, true},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := majority(tt.values)
		if got != tt.want || ok != tt.ok {
			t.Errorf("majority(%v) = %d, %v, want %d, %v", tt.values, got, ok, tt.want, tt.ok)
		}
	}
}

func TestReportEmpty(t *testing.T) {
	if r := NewEvaluator(nil).Report(); r != (Report{}) {
		t.Errorf("empty Report = %+v", r)
	}
}
