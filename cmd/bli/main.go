package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	bli "github.com/ieee0824/bli-go"
	"github.com/ieee0824/bli-go/corpus"
	"github.com/ieee0824/bli-go/embedding"
	"github.com/ieee0824/bli-go/internal/logging"
	"github.com/ieee0824/bli-go/internal/report"
	"github.com/ieee0824/bli-go/lexicon"
	"github.com/ieee0824/bli-go/match"
	"github.com/ieee0824/bli-go/subword"
	"github.com/sirupsen/logrus"
)

// side describes where the words and vectors of one language come from.
type side struct {
	corpus  *string
	model   *string
	vocab   *string
	pieces  *string
	vectors *string
}

func sideFlags(lang string) side {
	return side{
		corpus:  flag.String(lang+"-corpus", "", "comma-separated "+lang+" corpus files (required)"),
		model:   flag.String(lang+"-model", "", lang+" sentencepiece .model file"),
		vocab:   flag.String(lang+"-vocab", "", lang+" sentencepiece .vocab file, used when -"+lang+"-model is not given"),
		pieces:  flag.String(lang+"-pieces", "", lang+" ordered piece embeddings"),
		vectors: flag.String(lang+"-vectors", "", lang+" word vectors (instead of -model/-pieces)"),
	}
}

func (s side) embedder() (embedding.Embedder, error) {
	if *s.vectors != "" {
		t, err := embedding.LoadFile(*s.vectors, embedding.Options{})
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	if *s.pieces == "" {
		return nil, fmt.Errorf("need -vectors or -pieces with -model or -vocab")
	}
	seg, err := subword.LoadSegmenter(*s.model, *s.vocab)
	if err != nil {
		return nil, err
	}
	pieces, err := embedding.LoadFile(*s.pieces, embedding.Options{})
	if err != nil {
		return nil, err
	}
	return subword.NewEmbedder(seg, pieces), nil
}

func main() {
	src := sideFlags("src")
	trg := sideFlags("trg")
	dictPath := flag.String("dict", "", "bilingual dictionary JSON (required)")
	words := flag.Int("words", 5000, "most frequent words per language")
	vocabSize := flag.Int("vocab-size", 20000, "subword vocabulary size, used in output names")
	corpusType := flag.String("corpus-type", "small", "corpus name, used in output names")
	numSeeds := flag.Int("num-seeds", 100, "training seeds per trial")
	endProc := flag.Bool("end-proc", false, "run graph matching first and end with Procrustes")
	trials := flag.Int("trials", 10, "number of train/dev splits")
	rounds := flag.Int("rounds", 20, "Procrustes/SGM alternations per trial")
	workers := flag.Int("workers", 1, "trials run in parallel")
	identical := flag.String("identical", "drop", "identical words: drop, seed or keep")
	direction := flag.String("direction", "goat", "graph matching direction: faq or goat")
	softIters := flag.Int("softsgm-iters", 1, "SGM runs averaged per matching round")
	sgmRounds := flag.Int("sgm-rounds", 1, "iterative SoftSGM rounds")
	procIters := flag.Int("proc-iters", 1, "iterative Procrustes iterations")
	outDir := flag.String("out", ".", "output directory")
	metricsPath := flag.String("metrics", "", "write Prometheus textfile metrics to this file")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: bli [options]")
		fmt.Fprintln(os.Stderr, "  Induces a bilingual lexicon from two corpora and their embeddings")
		fmt.Fprintln(os.Stderr, "  by combining seeded graph matching with Procrustes alignment.")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *src.corpus == "" || *trg.corpus == "" || *dictPath == "" {
		flag.Usage()
		os.Exit(1)
	}
	log := logging.New(*logLevel, nil)

	cfg := bli.DefaultConfig()
	cfg.NumSeeds = *numSeeds
	cfg.Trials = *trials
	cfg.Rounds = *rounds
	cfg.Workers = *workers
	cfg.EndWithProcrustes = *endProc
	cfg.Procrustes.Iters = *procIters
	cfg.SGM.SoftIters = *softIters
	cfg.SGM.Rounds = *sgmRounds
	var err error
	if cfg.Identical, err = bli.ParseIdenticalMode(*identical); err != nil {
		fatal(err)
	}
	if cfg.SGM.Options.Direction, err = match.ParseDirection(*direction); err != nil {
		fatal(err)
	}

	log.Info("getting words")
	srcWords, err := corpus.WordOrderByFrequencyFiles(*words, strings.Split(*src.corpus, ",")...)
	if err != nil {
		fatal(err)
	}
	trgWords, err := corpus.WordOrderByFrequencyFiles(*words, strings.Split(*trg.corpus, ",")...)
	if err != nil {
		fatal(err)
	}
	dict, err := lexicon.LoadTranslationsFile(*dictPath)
	if err != nil {
		fatal(err)
	}
	vocabs, err := bli.PrepareVocabularies(srcWords, trgWords, dict, cfg)
	if err != nil {
		fatal(err)
	}
	log.WithFields(logrus.Fields{
		"words": len(vocabs.Src),
		"seeds": len(vocabs.Seeds),
		"names": len(vocabs.Names),
	}).Info("seeds found")

	log.Info("creating graphs")
	srcLang, err := language(src, vocabs.Src)
	if err != nil {
		fatal(fmt.Errorf("source: %w", err))
	}
	trgLang, err := language(trg, vocabs.Trg)
	if err != nil {
		fatal(fmt.Errorf("target: %w", err))
	}

	metrics := report.NewMetrics()
	in, err := bli.NewInducer(srcLang, trgLang, vocabs,
		bli.WithConfig(cfg),
		bli.WithLogger(log),
		bli.WithMetrics(metrics),
	)
	if err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err := in.Run(ctx)
	if err != nil {
		fatal(err)
	}

	statsPath := filepath.Join(*outDir, "stats-"+*corpusType+".txt")
	line := report.StatsLine(cfg.NumSeeds, *vocabSize, cfg.EndWithProcrustes, res.Mean, res.StdDev)
	if err := report.AppendStats(statsPath, line); err != nil {
		fatal(err)
	}
	if *metricsPath != "" {
		if err := metrics.WriteTextfile(*metricsPath); err != nil {
			fatal(err)
		}
	}

	names := "no-names"
	if cfg.Identical == bli.SeedIdentical {
		names = "names"
	}
	end := "False"
	if cfg.EndWithProcrustes {
		end = "True"
	}
	score := strconv.FormatFloat(math.Round(res.BestTrial().Score.Precision*1e4)/1e4, 'f', -1, 64)
	base := filepath.Join(*outDir, fmt.Sprintf("dictionary-%s-%d-%d-%s-%s-%s", names, cfg.NumSeeds, *vocabSize, end, *corpusType, score))
	if err := res.Dictionary.WriteFile(base + ".json"); err != nil {
		fatal(err)
	}
	if err := res.Ranked.WriteFile(base + "-ranked.json"); err != nil {
		fatal(err)
	}
	log.WithFields(logrus.Fields{
		"mean":       res.Mean,
		"stddev":     res.StdDev,
		"dictionary": base + ".json",
	}).Info("done")
}

func language(s side, words []string) (*bli.Language, error) {
	e, err := s.embedder()
	if err != nil {
		return nil, err
	}
	return bli.NewLanguage(words, e)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
