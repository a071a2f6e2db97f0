package simulation

import (
	"testing"

	"github.com/nvandessel/beliefsim/internal/scenario"
)

// TestSelection_FrequenciesMatchUtilities validates the weighted draw
// statistically through the full stack: with two positive utilities of
// 3.0 and 1.0, the first should win about three quarters of the time.
// Each trial is an independent run with its own seed; the sampled
// choice is the bootstrap selection at the start tick.
func TestSelection_FrequenciesMatchUtilities(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical test")
	}

	const trials = 500
	counts := make(map[string]int)
	r := NewRunner(t)

	for seed := int64(1); seed <= trials; seed++ {
		doc := &scenario.Scenario{
			Name:       "draw",
			Seed:       seed,
			Steps:      1,
			Behaviours: []string{"strong", "weak"},
			Beliefs: []scenario.BeliefSpec{
				{
					Name:          "preference",
					Relationships: map[string]float64{"preference": 0.0},
					Observed:      map[string]float64{"strong": 0.0, "weak": 0.0},
					Performing:    map[string]float64{"strong": 3.0, "weak": 1.0},
				},
			},
			Agents: []scenario.AgentSpec{
				{
					Name:    "chooser",
					Beliefs: []scenario.AgentBeliefSpec{{Belief: "preference", Activation: 1.0, Delta: 1.0}},
				},
			},
		}
		res := r.Run(doc)
		choice := res.At(t, scenario.StartTick).Rows["chooser"].Performed
		counts[choice]++
	}

	// Standard error at p=0.75 over 500 trials is about 0.019; a 0.06
	// tolerance is past three sigma.
	AssertFrequency(t, counts, "strong", trials, 0.75, 0.06)
	AssertFrequency(t, counts, "weak", trials, 0.25, 0.06)
}
