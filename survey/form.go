// Package survey scores a ranked dictionary against exported survey forms
// and their responses, in the JSON shape of the Google Forms API.
package survey

import (
	"fmt"
	"io"
	"os"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// Form is a survey definition.
type Form struct {
	FormID string `json:"formId"`
	Items  []Item `json:"items"`
}

// Item is one entry of a form.
type Item struct {
	Title        string        `json:"title"`
	QuestionItem *QuestionItem `json:"questionItem,omitempty"`
}

// QuestionItem wraps the question of an item.
type QuestionItem struct {
	Question struct {
		QuestionID string `json:"questionId"`
	} `json:"question"`
}

// Questions maps question ids to titles.
func (f *Form) Questions() map[string]string {
	q := make(map[string]string, len(f.Items))
	for _, it := range f.Items {
		if it.QuestionItem == nil || it.QuestionItem.Question.QuestionID == "" {
			continue
		}
		q[it.QuestionItem.Question.QuestionID] = it.Title
	}
	return q
}

// Response is one participant's answers keyed by question id.
type Response struct {
	ResponseID string            `json:"responseId"`
	Answers    map[string]Answer `json:"answers"`
}

// Answer holds the text answers to a question.
type Answer struct {
	QuestionID  string `json:"questionId"`
	TextAnswers struct {
		Answers []TextAnswer `json:"answers"`
	} `json:"textAnswers"`
}

// TextAnswer is a single answer value.
type TextAnswer struct {
	Value string `json:"value"`
}

// LoadForm decodes a form definition.
func LoadForm(r io.Reader) (*Form, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read form: %w", err)
	}
	var f Form
	if err := json5.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode form: %w", err)
	}
	return &f, nil
}

// LoadFormFile reads a form definition from path.
func LoadFormFile(path string) (*Form, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open form: %w", err)
	}
	defer fp.Close()
	return LoadForm(fp)
}

// LoadResponses decodes a response list ({"responses": [...]}).
func LoadResponses(r io.Reader) ([]Response, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read responses: %w", err)
	}
	var list struct {
		Responses []Response `json:"responses"`
	}
	if err := json5.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode responses: %w", err)
	}
	return list.Responses, nil
}

// LoadResponsesFile reads a response list from path.
func LoadResponsesFile(path string) ([]Response, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open responses: %w", err)
	}
	defer fp.Close()
	return LoadResponses(fp)
}
