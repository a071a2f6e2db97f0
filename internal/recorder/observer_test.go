package recorder

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/nvandessel/beliefsim/internal/model"
	"github.com/nvandessel/beliefsim/internal/runner"
	"github.com/nvandessel/beliefsim/internal/scenario"
)

func observerScenario(t *testing.T) *scenario.Scenario {
	t.Helper()
	s, err := scenario.Parse([]byte(`name: observed
seed: 7
steps: 3
behaviours: [walk]
beliefs:
  - name: healthy
    relationships: {healthy: 0.0}
    observed: {walk: 1.0}
    performing: {walk: 1.0}
agents:
  - name: ada
    beliefs:
      - {belief: healthy, activation: 1.0, delta: 0.5}
`))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestObserver_RecordsRun(t *testing.T) {
	s := observerScenario(t)
	pop, agents, err := s.Build()
	if err != nil {
		t.Fatal(err)
	}

	mem := NewMemory()
	r := runner.NewRunner(*pop, runner.DefaultConfig())
	r.OnTick(Observer(mem, []NamedAgent{{Name: "ada", Agent: agents["ada"]}}, pop.Beliefs))

	if err := r.Run(context.Background(), scenario.StartTick, 3); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	ticks := mem.Ticks()
	if len(ticks) != 4 {
		t.Fatalf("recorded %d ticks, want 4 (bootstrap + 3 steps)", len(ticks))
	}

	rows := mem.Rows(0)
	if len(rows) != 1 || rows[0].Agent != "ada" {
		t.Fatalf("Rows(0) = %+v", rows)
	}
	if rows[0].Activations["healthy"] != 1.0 {
		t.Errorf("seed activation recorded as %v, want 1.0", rows[0].Activations["healthy"])
	}
	if rows[0].Performed != "walk" {
		t.Errorf("bootstrap behaviour recorded as %q, want %q", rows[0].Performed, "walk")
	}

	// No friends and no social input: activation just decays by delta.
	rows = mem.Rows(1)
	if got := rows[0].Activations["healthy"]; got != 0.5 {
		t.Errorf("tick 1 activation recorded as %v, want 0.5", got)
	}
}

func TestObserver_SkipsMissingState(t *testing.T) {
	bel := model.NewBasicBelief("ghost")
	a := testAgent{}
	mem := NewMemory()
	observe := Observer(mem, []NamedAgent{{Name: "empty", Agent: a}}, []model.Belief{bel})

	if err := observe(0); err != nil {
		t.Fatalf("observer error = %v", err)
	}
	rows := mem.Rows(0)
	if len(rows) != 1 {
		t.Fatalf("Rows(0) = %+v", rows)
	}
	if len(rows[0].Activations) != 0 || rows[0].Performed != "" {
		t.Errorf("missing state was not skipped: %+v", rows[0])
	}
}

// testAgent is an Agent double with no state at all.
type testAgent struct{}

func (testAgent) ID() uuid.UUID { return uuid.UUID{} }

func (testAgent) Activation(t model.Time, b model.Belief) (float64, error) {
	return 0, model.ErrNotFound
}
func (testAgent) UpdateActivation(model.Time, model.Belief) error { return nil }
func (testAgent) Performed(model.Time) (*model.Behaviour, error) {
	return nil, model.ErrNotFound
}
func (testAgent) Perform(model.Time, []*model.Behaviour) error { return nil }
func (testAgent) Tick(model.Time, []*model.Behaviour, []model.Belief) error {
	return nil
}
