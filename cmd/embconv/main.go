package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ieee0824/bli-go/embedding"
	"github.com/ieee0824/bli-go/internal/logging"
	"github.com/ieee0824/bli-go/subword"
	"golang.org/x/exp/rand"
)

func main() {
	vocabPath := flag.String("vocab", "", "sentencepiece .vocab file giving the piece order")
	dim := flag.Int("dim", 0, "embedding dimension (0 = from file)")
	seed := flag.Uint64("seed", 1, "random seed for vectors of pieces GloVe dropped")
	output := flag.String("output", "", "output word2vec file (required)")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: embconv [options] <glove.txt>")
		fmt.Fprintln(os.Stderr, "  Restores the tokenizer order of GloVe piece embeddings so that")
		fmt.Fprintln(os.Stderr, "  row i holds the vector of piece id i. Pieces without a vector get")
		fmt.Fprintln(os.Stderr, "  one sampled from the distribution of all values.")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 || *vocabPath == "" || *output == "" {
		flag.Usage()
		os.Exit(1)
	}
	log := logging.New(*logLevel, nil)

	vocab, err := subword.LoadVocabFile(*vocabPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	table, err := embedding.LoadFile(flag.Arg(0), embedding.Options{Dim: *dim})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if table.Skipped > 0 {
		log.WithField("skipped", table.Skipped).Warn("vectors with unexpected dimension ignored")
	}

	ordered, sampled, err := embedding.Reorder(vocab.Pieces, table, rand.NewSource(*seed))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: reorder: %v\n", err)
		os.Exit(1)
	}
	if err := embedding.WriteFile(*output, ordered); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	log.WithField("pieces", ordered.Len()).WithField("sampled", sampled).WithField("dim", ordered.Dim()).Info("wrote ordered embeddings")
}
