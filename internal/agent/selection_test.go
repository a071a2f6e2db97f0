package agent

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/nvandessel/beliefsim/internal/model"
)

// failRand fails the test if the draw consumes randomness.
type failRand struct{ t *testing.T }

func (f failRand) Float64() float64 {
	f.t.Error("random source consulted; selection should have been deterministic")
	return 0
}

// scriptedRand replays a fixed sequence of variates.
type scriptedRand struct {
	values []float64
	next   int
}

func (s *scriptedRand) Float64() float64 {
	v := s.values[s.next]
	s.next++
	return v
}

// utilityAgent builds an agent whose utility for each behaviour at tick 0
// equals the given value: one belief per behaviour with activation 1.0,
// performing weight = wanted utility, and all context weights zero.
func utilityAgent(t *testing.T, r RandSource, behaviours []*model.Behaviour, utilities []float64) *SocialAgent {
	t.Helper()
	beliefs := make([]model.Belief, len(behaviours))
	for i := range behaviours {
		bel := model.NewBasicBelief("bel-" + behaviours[i].Name())
		for j, beh := range behaviours {
			if j == i {
				bel.SetPerformingBehaviourRelationship(beh, utilities[i])
			} else {
				bel.SetPerformingBehaviourRelationship(beh, 0.0)
			}
		}
		beliefs[i] = bel
	}
	for _, bel := range beliefs {
		for _, other := range beliefs {
			bel.SetRelationship(other, 0.0)
		}
	}

	seed := map[model.Belief]float64{}
	for _, bel := range beliefs {
		seed[bel] = 1.0
	}
	opts := []Option{WithActivations(map[model.Time]map[model.Belief]float64{0: seed})}
	if r != nil {
		opts = append(opts, WithRand(r))
	}
	return New(opts...)
}

func TestSocialAgent_Perform_NoCandidates(t *testing.T) {
	a := New()
	err := a.Perform(0, nil)
	if err == nil {
		t.Fatal("Perform() with no candidates succeeded")
	}
	if errors.Is(err, model.ErrNotFound) {
		t.Errorf("Perform() with no candidates = %v; empty input is not missing state", err)
	}
	if _, err := a.Performed(0); !errors.Is(err, model.ErrNotFound) {
		t.Error("Perform() recorded a behaviour despite failing")
	}
}

func TestSocialAgent_Perform_SingleCandidate(t *testing.T) {
	cycle := model.NewBehaviour("cycle")
	a := utilityAgent(t, failRand{t}, []*model.Behaviour{cycle}, []float64{-4.0})

	if err := a.Perform(0, []*model.Behaviour{cycle}); err != nil {
		t.Fatalf("Perform() error = %v", err)
	}
	got, err := a.Performed(0)
	if err != nil {
		t.Fatalf("Performed() error = %v", err)
	}
	if got != cycle {
		t.Errorf("Performed() = %q, want the only candidate", got.Name())
	}
}

func TestSocialAgent_Perform_SinglePositive(t *testing.T) {
	cycle := model.NewBehaviour("cycle")
	drive := model.NewBehaviour("drive")
	walk := model.NewBehaviour("walk")
	candidates := []*model.Behaviour{cycle, drive, walk}

	a := utilityAgent(t, failRand{t}, candidates, []float64{-1.0, 2.0, -3.0})

	if err := a.Perform(0, candidates); err != nil {
		t.Fatalf("Perform() error = %v", err)
	}
	got, _ := a.Performed(0)
	if got != drive {
		t.Errorf("Performed() = %q, want the single positive candidate %q", got.Name(), drive.Name())
	}
}

func TestSocialAgent_Perform_AllNonPositive(t *testing.T) {
	cycle := model.NewBehaviour("cycle")
	drive := model.NewBehaviour("drive")
	candidates := []*model.Behaviour{cycle, drive}

	a := utilityAgent(t, failRand{t}, candidates, []float64{-2.0, -1.0})

	if err := a.Perform(0, candidates); err != nil {
		t.Fatalf("Perform() error = %v", err)
	}
	got, _ := a.Performed(0)
	if got != drive {
		t.Errorf("Performed() = %q, want the maximal candidate %q", got.Name(), drive.Name())
	}
}

func TestSocialAgent_Perform_TieKeepsFirst(t *testing.T) {
	cycle := model.NewBehaviour("cycle")
	drive := model.NewBehaviour("drive")
	candidates := []*model.Behaviour{cycle, drive}

	a := utilityAgent(t, failRand{t}, candidates, []float64{-1.0, -1.0})

	if err := a.Perform(0, candidates); err != nil {
		t.Fatalf("Perform() error = %v", err)
	}
	got, _ := a.Performed(0)
	if got != cycle {
		t.Errorf("Performed() = %q, want the first maximal candidate %q", got.Name(), cycle.Name())
	}
}

func TestSocialAgent_Perform_WeightedDrawBuckets(t *testing.T) {
	cycle := model.NewBehaviour("cycle")
	drive := model.NewBehaviour("drive")
	walk := model.NewBehaviour("walk")
	candidates := []*model.Behaviour{cycle, drive, walk}

	// utilities 3, 1 and a negative; positive mass is 4 split 3/4, 1/4.
	tests := []struct {
		name    string
		variate float64
		want    *model.Behaviour
	}{
		{name: "low variate lands in first bucket", variate: 0.0, want: cycle},
		{name: "just under the boundary", variate: 0.74, want: cycle},
		{name: "past the boundary", variate: 0.76, want: drive},
		{name: "top of range", variate: 0.999999, want: drive},
		{name: "overshoot falls into last positive bucket", variate: math.Nextafter(1, 0), want: drive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &scriptedRand{values: []float64{tt.variate}}
			a := utilityAgent(t, r, candidates, []float64{3.0, 1.0, -5.0})
			if err := a.Perform(0, candidates); err != nil {
				t.Fatalf("Perform() error = %v", err)
			}
			got, _ := a.Performed(0)
			if got != tt.want {
				t.Errorf("Performed() = %q, want %q", got.Name(), tt.want.Name())
			}
			if r.next != 1 {
				t.Errorf("draw consumed %d variates, want exactly 1", r.next)
			}
		})
	}
}

func TestSocialAgent_Perform_NegativeNeverDrawn(t *testing.T) {
	cycle := model.NewBehaviour("cycle")
	drive := model.NewBehaviour("drive")
	walk := model.NewBehaviour("walk")
	candidates := []*model.Behaviour{cycle, walk, drive}

	r := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		a := utilityAgent(t, r, candidates, []float64{1.0, -10.0, 1.0})
		if err := a.Perform(0, candidates); err != nil {
			t.Fatalf("Perform() error = %v", err)
		}
		got, _ := a.Performed(0)
		if got == walk {
			t.Fatal("Perform() chose a non-positive candidate")
		}
	}
}

func TestSocialAgent_Perform_Frequencies(t *testing.T) {
	cycle := model.NewBehaviour("cycle")
	drive := model.NewBehaviour("drive")
	candidates := []*model.Behaviour{cycle, drive}

	r := rand.New(rand.NewSource(1))
	a := utilityAgent(t, r, candidates, []float64{3.0, 1.0})

	const trials = 10000
	counts := map[*model.Behaviour]int{}
	for trial := 0; trial < trials; trial++ {
		if err := a.Perform(0, candidates); err != nil {
			t.Fatalf("Perform() error = %v", err)
		}
		got, _ := a.Performed(0)
		counts[got]++
	}

	gotCycle := float64(counts[cycle]) / trials
	if math.Abs(gotCycle-0.75) > 0.02 {
		t.Errorf("empirical frequency of utility-3 candidate = %.4f, want 0.75 within 0.02", gotCycle)
	}
	gotDrive := float64(counts[drive]) / trials
	if math.Abs(gotDrive-0.25) > 0.02 {
		t.Errorf("empirical frequency of utility-1 candidate = %.4f, want 0.25 within 0.02", gotDrive)
	}
}

func TestSocialAgent_Perform_PropagatesMissingState(t *testing.T) {
	cycle := model.NewBehaviour("cycle")
	a := New()

	err := a.Perform(3, []*model.Behaviour{cycle})
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Perform() without an activation bucket = %v, want ErrNotFound", err)
	}
}
