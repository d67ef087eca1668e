package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ieee0824/bli-go/embedding"
	"github.com/ieee0824/bli-go/internal/logging"
	"github.com/ieee0824/bli-go/isomorphism"
)

func main() {
	cfg := isomorphism.DefaultConfig()
	flag.IntVar(&cfg.Freq, "freq", cfg.Freq, "most frequent words compared")
	flag.IntVar(&cfg.Neighbors, "k", cfg.Neighbors, "nearest neighbours linked per word")
	flag.Float64Var(&cfg.Energy, "energy", cfg.Energy, "spectrum energy kept")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: evs [options] <src.word2vec> <trg.word2vec>")
		fmt.Fprintln(os.Stderr, "  Prints the eigenvector similarity of two embedding spaces.")
		fmt.Fprintln(os.Stderr, "  Lower is more isomorphic.")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(1)
	}
	log := logging.New(*logLevel, nil)

	var spaces [2]*embedding.Table
	for i, path := range flag.Args()[:2] {
		t, err := embedding.LoadFile(path, embedding.Options{Limit: cfg.Freq})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		embedding.Normalize(t.Vectors)
		log.WithField("file", path).WithField("words", t.Len()).Debug("loaded")
		spaces[i] = t
	}

	sim, err := isomorphism.EVS(spaces[0].Vectors, spaces[1].Vectors, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(sim)
}
