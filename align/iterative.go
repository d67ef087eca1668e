package align

import (
	"fmt"

	"github.com/ieee0824/bli-go/lexicon"
	"github.com/ieee0824/bli-go/match"
	"gonum.org/v1/gonum/mat"
)

// Monitor receives the dev score of every refinement step. stage is
// "procrustes" or "sgm".
type Monitor func(stage string, iter int, s Score)

// ProcrustesConfig controls IterativeProcrustes.
type ProcrustesConfig struct {
	Iters     int // refinement iterations
	Neighbors int // CSLS neighbourhood size
	RankDepth int // candidates kept per source word in Ranked
}

// DefaultProcrustesConfig returns the settings used for lexicon induction.
func DefaultProcrustesConfig() ProcrustesConfig {
	return ProcrustesConfig{Iters: 1, Neighbors: 10, RankDepth: 10}
}

// ProcrustesResult is the outcome of IterativeProcrustes.
type ProcrustesResult struct {
	W          *mat.Dense
	Hypotheses []lexicon.Pair // CSLS nearest target of every source word
	Mutual     []lexicon.Pair // pairs that are nearest neighbours both ways
	Ranked     []Ranked       // RankDepth best targets per source word
}

// IterativeProcrustes fits a rotation on gold plus the non-conflicting input
// hypotheses, retrieves CSLS nearest neighbours in both directions and uses
// the mutual ones as input of the next iteration.
func IterativeProcrustes(x, y *mat.Dense, input, gold, dev []lexicon.Pair, cfg ProcrustesConfig, mon Monitor) (*ProcrustesResult, error) {
	if cfg.Iters < 1 {
		cfg.Iters = 1
	}
	var res ProcrustesResult
	for it := 1; it <= cfg.Iters; it++ {
		seeds := lexicon.Combine(gold, input)
		w, err := Procrustes(x, y, seeds)
		if err != nil {
			return nil, fmt.Errorf("procrustes iteration %d: %w", it, err)
		}
		var xw mat.Dense
		xw.Mul(x, w)
		scores := CSLS(&xw, y, cfg.Neighbors)
		forward, reverse := NearestNeighbors(scores)

		res = ProcrustesResult{
			W:          w,
			Hypotheses: forward,
			Mutual:     Mutual(forward, reverse),
			Ranked:     Rank(scores, cfg.RankDepth),
		}
		if mon != nil && len(dev) > 0 {
			mon("procrustes", it, EvalDev(forward, dev))
		}
		input = res.Mutual
	}
	return &res, nil
}

// SGMConfig controls IterativeSoftSGM.
type SGMConfig struct {
	SoftIters int  // SGM runs averaged per round
	K         int  // hypotheses per source word
	Rounds    int  // refinement rounds
	Reverse   bool // also match target to source and keep the agreement
	Options   match.Options
}

// DefaultSGMConfig returns the settings used for lexicon induction.
func DefaultSGMConfig() SGMConfig {
	opts := match.DefaultOptions()
	opts.Direction = match.GOAT
	return SGMConfig{SoftIters: 1, K: 1, Rounds: 1, Reverse: true, Options: opts}
}

// SGMResult is the outcome of IterativeSoftSGM.
type SGMResult struct {
	Hypotheses []lexicon.Pair // forward matching
	Confident  []lexicon.Pair // forward ∩ reverse when Reverse is set
}

// IterativeSoftSGM matches the similarity graphs seeded with gold plus the
// non-conflicting input hypotheses. With Reverse, the graphs are also
// matched the other way round and only pairs found both ways are passed on
// as input of the next round.
func IterativeSoftSGM(xSim, ySim *mat.Dense, input, gold, dev []lexicon.Pair, cfg SGMConfig, mon Monitor) (*SGMResult, error) {
	if cfg.Rounds < 1 {
		cfg.Rounds = 1
	}
	var res SGMResult
	for round := 1; round <= cfg.Rounds; round++ {
		seeds := lexicon.Combine(gold, input)
		fwd, err := match.SoftSGM(xSim, ySim, seeds, cfg.SoftIters, cfg.K, cfg.Options)
		if err != nil {
			return nil, fmt.Errorf("sgm round %d: %w", round, err)
		}
		hyps := match.Pairs(fwd)
		confident := hyps
		if cfg.Reverse {
			rev, err := match.SoftSGM(ySim, xSim, lexicon.Swap(seeds), cfg.SoftIters, cfg.K, cfg.Options)
			if err != nil {
				return nil, fmt.Errorf("reverse sgm round %d: %w", round, err)
			}
			revPairs := lexicon.Swap(match.Pairs(rev))
			confident = lexicon.NewPairSet(hyps).Intersect(lexicon.NewPairSet(revPairs)).Sorted()
		}
		res = SGMResult{Hypotheses: hyps, Confident: confident}
		if mon != nil && len(dev) > 0 {
			mon("sgm", round, EvalDev(hyps, dev))
		}
		input = confident
	}
	return &res, nil
}
