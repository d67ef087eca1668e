package bli

import "github.com/ieee0824/bli-go/align"

// Config holds lexicon induction parameters.
type Config struct {
	NumSeeds          int   // training seeds per trial; the rest is dev
	Trials            int   // independent train/dev splits
	Rounds            int   // alternations between Procrustes and SGM
	EndWithProcrustes bool  // run SGM first and take hypotheses from Procrustes
	TrialSeed         int64 // trial i shuffles with TrialSeed+i
	Workers           int   // trials run concurrently

	Identical        IdenticalMode
	IdenticalMinLen  int // shorter identical words are left alone
	IdenticalMaxDist int // edit distance still considered identical

	Procrustes align.ProcrustesConfig
	SGM        align.SGMConfig
}

// DefaultConfig returns the settings of the reference experiments.
func DefaultConfig() Config {
	return Config{
		NumSeeds:        100,
		Trials:          10,
		Rounds:          20,
		TrialSeed:       2020,
		Workers:         1,
		Identical:       DropIdentical,
		IdenticalMinLen: 4,
		Procrustes:      align.DefaultProcrustesConfig(),
		SGM:             align.DefaultSGMConfig(),
	}
}
