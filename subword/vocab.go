// Package subword segments words with a sentencepiece BPE model, or its
// listed vocabulary, and composes word vectors from subword embeddings.
package subword

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// WordBoundary is the sentencepiece meta symbol marking the start of a word.
const WordBoundary = "▁"

// Control pieces never take part in merges.
const (
	Unknown = "<unk>"
	BOS     = "<s>"
	EOS     = "</s>"
)

// Vocab is a sentencepiece vocabulary. Piece ids are line positions.
type Vocab struct {
	Pieces []string
	Scores []float64
	ids    map[string]int
}

// NewVocab builds a vocabulary from pieces and their scores.
func NewVocab(pieces []string, scores []float64) (*Vocab, error) {
	if len(pieces) != len(scores) {
		return nil, fmt.Errorf("%d pieces for %d scores", len(pieces), len(scores))
	}
	v := &Vocab{Pieces: pieces, Scores: scores, ids: make(map[string]int, len(pieces))}
	for i, p := range pieces {
		if _, ok := v.ids[p]; !ok {
			v.ids[p] = i
		}
	}
	return v, nil
}

// LoadVocab reads a sentencepiece .vocab file: piece<TAB>score per line.
// A missing score counts as 0.
func LoadVocab(r io.Reader) (*Vocab, error) {
	scanner := bufio.NewScanner(r)
	var pieces []string
	var scores []float64
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		score := 0.0
		if len(parts) == 2 {
			s, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad score %q", lineNum, parts[1])
			}
			score = s
		}
		pieces = append(pieces, parts[0])
		scores = append(scores, score)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewVocab(pieces, scores)
}

// LoadVocabFile is a convenience wrapper that opens a file path.
func LoadVocabFile(path string) (*Vocab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadVocab(f)
}

// Size returns the number of pieces.
func (v *Vocab) Size() int { return len(v.Pieces) }

// ID returns the id of piece.
func (v *Vocab) ID(piece string) (int, bool) {
	id, ok := v.ids[piece]
	return id, ok
}

func isControl(piece string) bool {
	return piece == Unknown || piece == BOS || piece == EOS
}

// mergeScore returns the score of piece if it can be produced by a merge.
func (v *Vocab) mergeScore(piece string) (float64, bool) {
	id, ok := v.ids[piece]
	if !ok || isControl(piece) {
		return math.Inf(-1), false
	}
	return v.Scores[id], true
}

// Encode segments word into pieces the way sentencepiece BPE does: start
// from single characters behind a word boundary marker and repeatedly merge
// the adjacent pair whose concatenation is the best scoring known piece,
// leftmost first on ties. Inner spaces become boundary markers.
func (v *Vocab) Encode(word string) []string {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil
	}
	text := WordBoundary + strings.Join(strings.Fields(word), WordBoundary)

	syms := make([]string, 0, len(text))
	for _, r := range text {
		syms = append(syms, string(r))
	}

	for len(syms) > 1 {
		best := -1
		bestScore := math.Inf(-1)
		for i := 0; i+1 < len(syms); i++ {
			if s, ok := v.mergeScore(syms[i] + syms[i+1]); ok && s > bestScore {
				best = i
				bestScore = s
			}
		}
		if best < 0 {
			break
		}
		syms[best] += syms[best+1]
		syms = append(syms[:best+1], syms[best+2:]...)
	}
	return syms
}
