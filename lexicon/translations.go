// Package lexicon handles bilingual dictionaries: the seed translations fed
// into alignment and the translation dictionaries it produces.
package lexicon

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// Translations maps a source word to its target candidates, best first.
type Translations map[string][]string

// LoadTranslations reads a JSON object of word -> [candidates]. JSON5
// syntax (comments, trailing commas, unquoted keys) is accepted since the
// PDF-derived dictionaries are hand-corrected.
func LoadTranslations(r io.Reader) (Translations, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var t Translations
	if err := json5.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse translations: %w", err)
	}
	if t == nil {
		t = Translations{}
	}
	return t, nil
}

// LoadTranslationsFile is a convenience wrapper that opens a file path.
func LoadTranslationsFile(path string) (Translations, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := LoadTranslations(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// WriteJSON writes t as a JSON object. Keys come out sorted.
func (t Translations) WriteJSON(w io.Writer) error {
	return json.NewEncoder(w).Encode(t)
}

// WriteFile writes t as JSON to path.
func (t Translations) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := t.WriteJSON(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Words returns the source words in sorted order.
func (t Translations) Words() []string {
	words := make([]string, 0, len(t))
	for w := range t {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Rank returns the 1-based position of candidate among the translations of
// word, or 0 when it is not listed.
func (t Translations) Rank(word, candidate string) int {
	for i, c := range t[word] {
		if c == candidate {
			return i + 1
		}
	}
	return 0
}

// MatchTranslations turns index pairs into a dictionary over the word lists.
// Targets are appended in pair order; pairs outside either list are skipped.
func MatchTranslations(src, trg []string, pairs []Pair) Translations {
	t := make(Translations)
	for _, p := range pairs {
		if p.Src < 0 || p.Src >= len(src) || p.Trg < 0 || p.Trg >= len(trg) {
			continue
		}
		t[src[p.Src]] = append(t[src[p.Src]], trg[p.Trg])
	}
	return t
}
