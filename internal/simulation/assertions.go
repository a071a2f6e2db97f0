package simulation

import (
	"math"
	"testing"

	"github.com/nvandessel/beliefsim/internal/model"
)

// AssertActivation asserts an agent's recorded activation for a belief
// at a tick, within tol.
func AssertActivation(t *testing.T, res Result, tick model.Time, agentName, belief string, want, tol float64) {
	t.Helper()
	row, ok := res.At(t, tick).Rows[agentName]
	if !ok {
		t.Errorf("AssertActivation: tick %d: agent %q not recorded", tick, agentName)
		return
	}
	got, ok := row.Activations[belief]
	if !ok {
		t.Errorf("AssertActivation: tick %d: agent %q has no activation for %q", tick, agentName, belief)
		return
	}
	if math.Abs(got-want) > tol {
		t.Errorf("AssertActivation: tick %d: agent %q belief %q = %.6f, want %.6f ± %.6f",
			tick, agentName, belief, got, want, tol)
	}
}

// AssertPerformed asserts which behaviour an agent performed at a tick.
func AssertPerformed(t *testing.T, res Result, tick model.Time, agentName, want string) {
	t.Helper()
	row, ok := res.At(t, tick).Rows[agentName]
	if !ok {
		t.Errorf("AssertPerformed: tick %d: agent %q not recorded", tick, agentName)
		return
	}
	if row.Performed != want {
		t.Errorf("AssertPerformed: tick %d: agent %q performed %q, want %q", tick, agentName, row.Performed, want)
	}
}

// AssertActivationGrows asserts that an agent's activation for a belief
// strictly increases tick over tick across the whole run.
func AssertActivationGrows(t *testing.T, res Result, agentName, belief string) {
	t.Helper()
	prev := math.Inf(-1)
	for _, state := range res.Ticks {
		row, ok := state.Rows[agentName]
		if !ok {
			continue
		}
		got, ok := row.Activations[belief]
		if !ok {
			t.Errorf("AssertActivationGrows: tick %d: agent %q has no activation for %q", state.Tick, agentName, belief)
			return
		}
		if got <= prev {
			t.Errorf("AssertActivationGrows: tick %d: agent %q belief %q = %.6f, not above %.6f",
				state.Tick, agentName, belief, got, prev)
		}
		prev = got
	}
}

// AssertFrequency asserts that counts[name]/total is within tol of
// want. Use a tolerance wide enough for the trial count; with n trials
// the standard error is about sqrt(p(1-p)/n).
func AssertFrequency(t *testing.T, counts map[string]int, name string, total int, want, tol float64) {
	t.Helper()
	if total <= 0 {
		t.Fatalf("AssertFrequency: no trials")
	}
	got := float64(counts[name]) / float64(total)
	if math.Abs(got-want) > tol {
		t.Errorf("AssertFrequency: %q chosen %d/%d = %.4f, want %.4f ± %.4f",
			name, counts[name], total, got, want, tol)
	}
}
