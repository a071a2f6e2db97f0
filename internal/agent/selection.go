package agent

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/nvandessel/beliefsim/internal/model"
)

// RandSource supplies the uniform variates behind the weighted draw in
// Perform. *math/rand.Rand satisfies it; tests may script fixed values.
type RandSource interface {
	Float64() float64
}

// globalRand adapts the process-wide math/rand generator, used when no
// source was injected.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// Perform selects and records the behaviour for tick t from candidates.
//
// Every candidate's utility is computed, failing fast on missing state.
// When at most one utility is strictly positive the maximal candidate
// is recorded deterministically, first in slice order winning ties, and
// no randomness is consumed. When two or more are strictly positive,
// one of them is drawn with probability proportional to its utility;
// non-positive candidates get exactly zero probability. The chosen
// behaviour overwrites any previous entry at t.
func (a *SocialAgent) Perform(t model.Time, candidates []*model.Behaviour) error {
	if len(candidates) == 0 {
		return errors.New("perform: no candidate behaviours")
	}

	maxUtility := math.Inf(-1)
	var maxBehaviour *model.Behaviour
	var positive []*model.Behaviour
	var weights []float64
	var totalWeight float64

	for _, beh := range candidates {
		u, err := a.utility(beh, t)
		if err != nil {
			return fmt.Errorf("perform at t=%d: %w", t, err)
		}
		if u > maxUtility {
			maxUtility = u
			maxBehaviour = beh
		}
		if u > 0 {
			positive = append(positive, beh)
			weights = append(weights, u)
			totalWeight += u
		}
	}

	if len(positive) <= 1 {
		a.performed[t] = maxBehaviour
		return nil
	}

	// One variate, walked against the cumulative weights. The last
	// bucket catches any floating-point overshoot.
	x := a.randFloat() * totalWeight
	chosen := len(positive) - 1
	for i, w := range weights {
		x -= w
		if x < 0 {
			chosen = i
			break
		}
	}
	a.performed[t] = positive[chosen]
	return nil
}

func (a *SocialAgent) randFloat() float64 {
	if a.rand != nil {
		return a.rand.Float64()
	}
	return globalRand{}.Float64()
}
