package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ieee0824/bli-go/corpus"
	"github.com/ieee0824/bli-go/internal/logging"
	"github.com/ieee0824/bli-go/lexicon"
	"github.com/sirupsen/logrus"
)

func main() {
	srcCorpus := flag.String("src", "", "comma-separated source corpus files (required)")
	trgCorpus := flag.String("trg", "", "comma-separated target corpus files (required)")
	n := flag.Int("n", 5000, "most frequent words considered per language")
	output := flag.String("output", "", "output JSON file (default: stdout)")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dictfilter [options] <translations.json>")
		fmt.Fprintln(os.Stderr, "  Keeps the dictionary entries usable as seeds between the most")
		fmt.Fprintln(os.Stderr, "  frequent words of two corpora and reports the coverage.")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 || *srcCorpus == "" || *trgCorpus == "" {
		flag.Usage()
		os.Exit(1)
	}
	log := logging.New(*logLevel, nil)

	dict, err := lexicon.LoadTranslationsFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	src, err := corpus.WordOrderByFrequencyFiles(*n, strings.Split(*srcCorpus, ",")...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	trg, err := corpus.WordOrderByFrequencyFiles(*n, strings.Split(*trgCorpus, ",")...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	seeds := lexicon.Seeds(src, trg, dict)
	filtered := lexicon.MatchTranslations(src, trg, seeds)

	w := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: create %s: %v\n", *output, err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}
	if err := filtered.WriteJSON(w); err != nil {
		fmt.Fprintf(os.Stderr, "error: write: %v\n", err)
		os.Exit(1)
	}

	coverage := 0.0
	if len(src) > 0 {
		coverage = float64(len(seeds)) / float64(len(src)) * 100
	}
	log.WithFields(logrus.Fields{
		"entries":  len(dict),
		"seeds":    len(seeds),
		"src":      len(src),
		"trg":      len(trg),
		"coverage": fmt.Sprintf("%.2f%%", coverage),
	}).Info("filtered dictionary")
}
