package subword

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/eliben/go-sentencepiece"
)

// Segmenter splits a word into subword pieces.
type Segmenter interface {
	Encode(word string) []string
}

// ErrNoSegmenter is returned by LoadSegmenter when given no file.
var ErrNoSegmenter = errors.New("subword: need a sentencepiece .model or .vocab file")

var (
	_ Segmenter = (*Vocab)(nil)
	_ Segmenter = (*Model)(nil)
)

// Model segments words with a trained sentencepiece .model file. It is the
// preferred segmenter: normalization rules and user-defined pieces stored
// in the model protobuf are applied, which a .vocab listing cannot carry.
type Model struct {
	proc *sentencepiece.Processor
}

// LoadModel reads a serialized sentencepiece ModelProto.
func LoadModel(r io.Reader) (*Model, error) {
	proc, err := sentencepiece.NewProcessor(r)
	if err != nil {
		return nil, fmt.Errorf("sentencepiece model: %w", err)
	}
	return &Model{proc: proc}, nil
}

// LoadModelFile is a convenience wrapper that opens a file path.
func LoadModelFile(path string) (*Model, error) {
	proc, err := sentencepiece.NewProcessorFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Model{proc: proc}, nil
}

// Size returns the number of pieces in the model.
func (m *Model) Size() int { return m.proc.ModelInfo().VocabularySize }

// Encode splits word into pieces. The word is prefixed with the boundary
// symbol the way sentencepiece's dummy prefix does, since the processor
// does not add it.
func (m *Model) Encode(word string) []string {
	word = strings.Join(strings.Fields(word), WordBoundary)
	if word == "" {
		return nil
	}
	tokens := m.proc.Encode(WordBoundary + word)
	pieces := make([]string, len(tokens))
	for i, t := range tokens {
		pieces[i] = t.Text
	}
	return pieces
}

// LoadSegmenter loads modelPath when it is set and falls back to the
// .vocab listing at vocabPath otherwise.
func LoadSegmenter(modelPath, vocabPath string) (Segmenter, error) {
	if modelPath != "" {
		m, err := LoadModelFile(modelPath)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	if vocabPath == "" {
		return nil, ErrNoSegmenter
	}
	v, err := LoadVocabFile(vocabPath)
	if err != nil {
		return nil, err
	}
	return v, nil
}
