package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ieee0824/bli-go/corpus"
	"github.com/ieee0824/bli-go/embedding"
	"github.com/ieee0824/bli-go/internal/logging"
	"github.com/ieee0824/bli-go/subword"
)

func main() {
	n := flag.Int("n", 3000, "number of most frequent corpus words to embed")
	modelPath := flag.String("model", "", "sentencepiece .model file")
	vocabPath := flag.String("vocab", "", "sentencepiece .vocab file, used when -model is not given")
	piecesPath := flag.String("pieces", "", "ordered piece embeddings from embconv (required)")
	output := flag.String("output", "", "output word2vec file (required)")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wordvecs [options] <corpus-files...>")
		fmt.Fprintln(os.Stderr, "  Embeds the most frequent corpus words through their subword pieces,")
		fmt.Fprintln(os.Stderr, "  normalizes and mean-centers the vectors and writes word2vec text.")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 || (*modelPath == "" && *vocabPath == "") || *piecesPath == "" || *output == "" {
		flag.Usage()
		os.Exit(1)
	}
	log := logging.New(*logLevel, nil)

	words, err := corpus.WordOrderByFrequencyFiles(*n, flag.Args()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	seg, err := subword.LoadSegmenter(*modelPath, *vocabPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	pieces, err := embedding.LoadFile(*piecesPath, embedding.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	m, err := embedding.Build(words, subword.NewEmbedder(seg, pieces))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	embedding.Normalize(m)
	table, err := embedding.NewTable(words, m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := embedding.WriteFile(*output, table); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	log.WithField("words", table.Len()).WithField("dim", table.Dim()).Info("wrote word vectors")
}
