package bli

import (
	"context"
	"fmt"
	"sync"

	"github.com/ieee0824/bli-go/align"
	"github.com/ieee0824/bli-go/internal/logging"
	"github.com/ieee0824/bli-go/lexicon"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

// Recorder receives trial scores as they complete.
type Recorder interface {
	ObserveTrial(trial int, s align.Score)
	ObserveSeeds(train, dev int)
	ObserveSummary(mean, stddev float64)
}

// Inducer runs lexicon induction trials between two languages.
type Inducer struct {
	src, trg *Language
	seeds    []lexicon.Pair
	names    []lexicon.Pair
	cfg      Config
	log      logrus.FieldLogger
	rec      Recorder
}

// Option configures an Inducer.
type Option func(*Inducer)

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(in *Inducer) { in.cfg = cfg }
}

// WithLogger sets the progress logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(in *Inducer) { in.log = l }
}

// WithMetrics records trial scores in r.
func WithMetrics(r Recorder) Option {
	return func(in *Inducer) { in.rec = r }
}

// NewInducer checks that both languages and the seeds fit together.
func NewInducer(src, trg *Language, v *Vocabularies, opts ...Option) (*Inducer, error) {
	in := &Inducer{
		src:   src,
		trg:   trg,
		seeds: v.Seeds,
		names: v.Names,
		cfg:   DefaultConfig(),
		log:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(in)
	}
	if src.Len() != trg.Len() {
		return nil, fmt.Errorf("%d vs %d words: %w", src.Len(), trg.Len(), ErrSizeMismatch)
	}
	if src.Dim() != trg.Dim() {
		return nil, fmt.Errorf("%d vs %d: %w", src.Dim(), trg.Dim(), ErrDimensionMismatch)
	}
	if len(in.seeds) == 0 {
		return nil, ErrNoSeeds
	}
	for _, p := range append(append([]lexicon.Pair(nil), in.seeds...), in.names...) {
		if p.Src < 0 || p.Src >= src.Len() || p.Trg < 0 || p.Trg >= trg.Len() {
			return nil, fmt.Errorf("bli: seed pair %v out of range", p)
		}
	}
	if in.cfg.Trials < 1 {
		in.cfg.Trials = 1
	}
	if in.cfg.Rounds < 1 {
		in.cfg.Rounds = 1
	}
	if in.cfg.Workers < 1 {
		in.cfg.Workers = 1
	}
	return in, nil
}

// Trial is the outcome of one train/dev split.
type Trial struct {
	Index      int
	Score      align.Score
	Train, Dev []lexicon.Pair
	Hypotheses []lexicon.Pair
	Ranked     []align.Ranked
}

// Result summarizes all trials.
type Result struct {
	Trials     []Trial
	Mean       float64 // mean dev precision
	StdDev     float64 // sample standard deviation of dev precision
	Best       int     // index of the trial with the highest precision
	Dictionary lexicon.Translations
	Ranked     lexicon.Translations
}

// BestTrial returns the trial the dictionaries come from.
func (r *Result) BestTrial() *Trial { return &r.Trials[r.Best] }

// Run executes the configured trials and keeps the dictionaries of the best.
func (in *Inducer) Run(ctx context.Context) (*Result, error) {
	trials := make([]Trial, in.cfg.Trials)
	errs := make([]error, in.cfg.Trials)

	var wg sync.WaitGroup
	sem := make(chan struct{}, in.cfg.Workers)
	for i := range trials {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			t, err := in.trial(ctx, i)
			if err != nil {
				errs[i] = fmt.Errorf("trial %d: %w", i, err)
				return
			}
			trials[i] = *t
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	res := &Result{Trials: trials}
	precisions := make([]float64, len(trials))
	for i, t := range trials {
		precisions[i] = t.Score.Precision
		if t.Score.Precision > trials[res.Best].Score.Precision {
			res.Best = i
		}
	}
	if len(precisions) > 1 {
		res.Mean, res.StdDev = stat.MeanStdDev(precisions, nil)
	} else {
		res.Mean = precisions[0]
	}
	if in.rec != nil {
		in.rec.ObserveSummary(res.Mean, res.StdDev)
	}
	in.log.WithFields(logrus.Fields{
		"mean":   res.Mean,
		"stddev": res.StdDev,
		"best":   res.Best,
	}).Info("trials finished")

	best := res.BestTrial()
	res.Dictionary = in.dictionary(best)
	res.Ranked = in.rankedDictionary(best)
	return res, nil
}

func (in *Inducer) trial(ctx context.Context, idx int) (*Trial, error) {
	rng := rand.New(rand.NewSource(uint64(in.cfg.TrialSeed + int64(idx))))
	seeds := append([]lexicon.Pair(nil), in.seeds...)
	rng.Shuffle(len(seeds), func(i, j int) { seeds[i], seeds[j] = seeds[j], seeds[i] })

	n := in.cfg.NumSeeds
	if n > len(seeds) {
		n = len(seeds)
	}
	t := &Trial{Index: idx, Dev: seeds[n:]}
	t.Train = lexicon.Combine(seeds[:n], in.names)

	log := in.log.WithField("trial", idx)
	log.WithFields(logrus.Fields{"train": len(t.Train), "dev": len(t.Dev)}).Info("trial started")
	if in.rec != nil {
		in.rec.ObserveSeeds(len(t.Train), len(t.Dev))
	}

	sgmCfg := in.cfg.SGM
	sgmCfg.Options.Rand = rng
	var round int
	mon := func(stage string, iter int, s align.Score) {
		log.WithFields(logrus.Fields{
			"round":     round,
			"stage":     stage,
			"iter":      iter,
			"precision": s.Precision,
			"recall":    s.Recall,
		}).Debug("dev score")
	}

	var input []lexicon.Pair
	for round = 1; round <= in.cfg.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if in.cfg.EndWithProcrustes {
			sgm, err := align.IterativeSoftSGM(in.src.Graph, in.trg.Graph, input, t.Train, t.Dev, sgmCfg, mon)
			if err != nil {
				return nil, fmt.Errorf("round %d: %w", round, err)
			}
			pr, err := align.IterativeProcrustes(in.src.Vectors, in.trg.Vectors, sgm.Confident, t.Train, t.Dev, in.cfg.Procrustes, mon)
			if err != nil {
				return nil, fmt.Errorf("round %d: %w", round, err)
			}
			t.Hypotheses, t.Ranked, input = pr.Hypotheses, pr.Ranked, pr.Mutual
		} else {
			pr, err := align.IterativeProcrustes(in.src.Vectors, in.trg.Vectors, input, t.Train, t.Dev, in.cfg.Procrustes, mon)
			if err != nil {
				return nil, fmt.Errorf("round %d: %w", round, err)
			}
			sgm, err := align.IterativeSoftSGM(in.src.Graph, in.trg.Graph, pr.Mutual, t.Train, t.Dev, sgmCfg, mon)
			if err != nil {
				return nil, fmt.Errorf("round %d: %w", round, err)
			}
			t.Hypotheses, t.Ranked, input = sgm.Hypotheses, pr.Ranked, sgm.Confident
		}
	}

	t.Score = align.EvalDev(t.Hypotheses, t.Dev)
	log.WithFields(logrus.Fields{
		"matches":   t.Score.Matches,
		"precision": t.Score.Precision,
		"recall":    t.Score.Recall,
	}).Info("trial finished")
	if in.rec != nil {
		in.rec.ObserveTrial(idx, t.Score)
	}
	return t, nil
}

// dictionary returns the hypotheses of t that are not training seeds.
func (in *Inducer) dictionary(t *Trial) lexicon.Translations {
	pairs := lexicon.NewPairSet(t.Hypotheses).Minus(lexicon.NewPairSet(t.Train)).Sorted()
	return lexicon.MatchTranslations(in.src.Words, in.trg.Words, pairs)
}

// rankedDictionary returns the ranked candidates of every source word that
// is not a training seed, best first.
func (in *Inducer) rankedDictionary(t *Trial) lexicon.Translations {
	train := make(map[int]bool, len(t.Train))
	for _, p := range t.Train {
		train[p.Src] = true
	}
	var pairs []lexicon.Pair
	for _, r := range t.Ranked {
		if !train[r.Src] {
			pairs = append(pairs, r.Pair)
		}
	}
	return lexicon.MatchTranslations(in.src.Words, in.trg.Words, pairs)
}
