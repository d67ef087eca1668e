// Package match aligns two similarity graphs by seeded graph matching: a
// Frank-Wolfe relaxation of the quadratic assignment problem in which known
// node correspondences are fixed.
package match

import (
	"errors"

	"golang.org/x/exp/rand"
)

var (
	// ErrNotSquare is returned for graphs that are not square matrices.
	ErrNotSquare = errors.New("match: graph is not square")
	// ErrSizeMismatch is returned for graphs with different node counts.
	ErrSizeMismatch = errors.New("match: graphs differ in size")
	// ErrSeedRange is returned for seeds pointing outside a graph.
	ErrSeedRange = errors.New("match: seed index out of range")
	// ErrDuplicateSeed is returned when a node takes part in two seeds.
	ErrDuplicateSeed = errors.New("match: node seeded twice")
)

// Init selects the starting point of the relaxation.
type Init int

const (
	// Barycenter starts from the uniform doubly stochastic matrix.
	Barycenter Init = iota
	// Randomized starts halfway between the barycenter and a random
	// doubly stochastic matrix.
	Randomized
)

// Direction selects how the Frank-Wolfe step direction is computed.
type Direction int

const (
	// FAQ takes the permutation that solves the linear assignment of the
	// gradient.
	FAQ Direction = iota
	// GOAT takes the entropic optimal transport plan of the gradient, a
	// doubly stochastic matrix, which keeps the iterates away from poor
	// vertices.
	GOAT
)

func (d Direction) String() string {
	if d == GOAT {
		return "goat"
	}
	return "faq"
}

// ParseDirection maps "faq" or "goat" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "faq", "sgm":
		return FAQ, nil
	case "goat":
		return GOAT, nil
	}
	return FAQ, errors.New("match: unknown direction " + s)
}

// Options controls SGM.
type Options struct {
	Maximize      bool      // maximize trace(Aᵀ P B Pᵀ) instead of minimizing it
	MaxIter       int       // Frank-Wolfe iterations
	Tol           float64   // stop once ‖ΔP‖_F / sqrt(n) falls below this
	ShuffleInput  bool      // shuffle the unseeded nodes of B before matching
	Init          Init      // starting point
	Direction     Direction // step direction
	Reg           float64   // GOAT: inverse temperature of the transport plan
	SinkhornIters int       // GOAT: Sinkhorn iteration cap
	Rand          *rand.Rand
}

// DefaultOptions returns the settings used for lexicon induction.
func DefaultOptions() Options {
	return Options{
		Maximize:      true,
		MaxIter:       30,
		Tol:           0.03,
		ShuffleInput:  true,
		Init:          Barycenter,
		Direction:     FAQ,
		Reg:           500,
		SinkhornIters: 200,
	}
}

// Result is the outcome of SGM.
type Result struct {
	ColInd []int   // ColInd[i] is the node of B matched to node i of A
	Fun    float64 // objective trace(Aᵀ P B Pᵀ) at the returned permutation
	NIter  int     // Frank-Wolfe iterations run
}
