// Package bli induces bilingual lexicons from monolingual word embeddings by
// combining seeded graph matching over similarity graphs with Procrustes
// alignment of the embedding spaces.
package bli

import (
	"errors"
	"fmt"

	"github.com/ieee0824/bli-go/embedding"
	"github.com/ieee0824/bli-go/lexicon"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrDimensionMismatch is returned when embeddings disagree in size.
	ErrDimensionMismatch = errors.New("bli: embedding dimensions differ")
	// ErrSizeMismatch is returned when the vocabularies differ in length.
	ErrSizeMismatch = errors.New("bli: vocabulary sizes differ")
	// ErrNoSeeds is returned when the dictionary yields no seed pairs.
	ErrNoSeeds = errors.New("bli: no seed pairs")
)

// Language is one side of the induction: its words, their normalized
// embeddings and the cosine similarity graph between them.
type Language struct {
	Words   []string
	Vectors *mat.Dense
	Graph   *mat.Dense
}

// NewLanguage embeds words with e, normalizes the rows and builds the
// similarity graph.
func NewLanguage(words []string, e embedding.Embedder) (*Language, error) {
	m, err := embedding.Build(words, e)
	if err != nil {
		if errors.Is(err, embedding.ErrDimensionMismatch) {
			return nil, fmt.Errorf("%w: %v", ErrDimensionMismatch, err)
		}
		return nil, err
	}
	return NewLanguageFromVectors(words, m)
}

// NewLanguageFromVectors uses m, one row per word, as the embeddings. m is
// normalized in place.
func NewLanguageFromVectors(words []string, m *mat.Dense) (*Language, error) {
	r, _ := m.Dims()
	if r != len(words) {
		return nil, fmt.Errorf("%d words but %d vectors: %w", len(words), r, ErrSizeMismatch)
	}
	embedding.Normalize(m)
	return &Language{Words: words, Vectors: m, Graph: embedding.Similarity(m)}, nil
}

// Len returns the vocabulary size.
func (l *Language) Len() int { return len(l.Words) }

// Dim returns the embedding dimension.
func (l *Language) Dim() int {
	_, c := l.Vectors.Dims()
	return c
}

// IdenticalMode says what to do with words spelled the same in both
// vocabularies.
type IdenticalMode int

const (
	// DropIdentical removes them from both vocabularies.
	DropIdentical IdenticalMode = iota
	// SeedIdentical adds them to every trial's training seeds.
	SeedIdentical
	// KeepIdentical leaves them as ordinary words.
	KeepIdentical
)

func (m IdenticalMode) String() string {
	switch m {
	case SeedIdentical:
		return "seed"
	case KeepIdentical:
		return "keep"
	}
	return "drop"
}

// ParseIdenticalMode parses "drop", "seed" or "keep".
func ParseIdenticalMode(s string) (IdenticalMode, error) {
	switch s {
	case "drop", "":
		return DropIdentical, nil
	case "seed":
		return SeedIdentical, nil
	case "keep":
		return KeepIdentical, nil
	}
	return DropIdentical, fmt.Errorf("bli: unknown identical-word mode %q", s)
}

// Vocabularies are the two word lists ready for induction together with the
// seed pairs found for them.
type Vocabularies struct {
	Src, Trg []string
	Seeds    []lexicon.Pair // dictionary pairs, split into train and dev per trial
	Names    []lexicon.Pair // identical words always used for training
}

// PrepareVocabularies applies the identical-word mode to the word lists and
// looks up the dictionary pairs between them.
func PrepareVocabularies(src, trg []string, dict lexicon.Translations, cfg Config) (*Vocabularies, error) {
	identical := lexicon.IdenticalWords(src, trg, cfg.IdenticalMinLen, cfg.IdenticalMaxDist)
	v := &Vocabularies{Src: src, Trg: trg}
	if cfg.Identical == DropIdentical {
		v.Src, v.Trg = lexicon.RemoveWords(src, trg, identical)
	}
	if len(v.Src) != len(v.Trg) {
		return nil, fmt.Errorf("%d source and %d target words: %w", len(v.Src), len(v.Trg), ErrSizeMismatch)
	}
	v.Seeds = lexicon.Seeds(v.Src, v.Trg, dict)
	if len(v.Seeds) == 0 {
		return nil, ErrNoSeeds
	}
	if cfg.Identical == SeedIdentical {
		v.Names = lexicon.NameSeeds(identical, v.Seeds)
	}
	return v, nil
}
