package simulation

import (
	"context"
	"testing"

	"github.com/nvandessel/beliefsim/internal/agent"
	"github.com/nvandessel/beliefsim/internal/model"
	"github.com/nvandessel/beliefsim/internal/recorder"
	"github.com/nvandessel/beliefsim/internal/runner"
	"github.com/nvandessel/beliefsim/internal/scenario"
)

// Runner drives scenarios for tests, failing the test on any build or
// run error so assertions can read the result unconditionally.
type Runner struct {
	t *testing.T

	// Workers overrides the driver's parallelism; zero means one
	// goroutine per agent.
	Workers int
}

// NewRunner creates a harness bound to t.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{t: t}
}

// TickState is every agent's recorded state at one tick, keyed by
// agent name.
type TickState struct {
	Tick model.Time
	Rows map[string]recorder.TickRow
}

// Result is one completed run.
type Result struct {
	Scenario   *scenario.Scenario
	Population *runner.Population
	Agents     map[string]*agent.SocialAgent
	Ticks      []TickState
}

// Run builds and executes doc, recording every tick. The scenario's
// Steps field controls run length.
func (r *Runner) Run(doc *scenario.Scenario) Result {
	r.t.Helper()

	pop, agents, err := doc.Build()
	if err != nil {
		r.t.Fatalf("build scenario %q: %v", doc.Name, err)
	}

	named := make([]recorder.NamedAgent, 0, len(doc.Agents))
	for _, spec := range doc.Agents {
		named = append(named, recorder.NamedAgent{Name: spec.Name, Agent: agents[spec.Name]})
	}

	mem := recorder.NewMemory()
	drv := runner.NewRunner(*pop, runner.Config{Workers: r.Workers})
	drv.OnTick(recorder.Observer(mem, named, pop.Beliefs))

	if err := drv.Run(context.Background(), scenario.StartTick, doc.Steps); err != nil {
		r.t.Fatalf("run scenario %q: %v", doc.Name, err)
	}

	result := Result{
		Scenario:   doc,
		Population: pop,
		Agents:     agents,
	}
	for _, tick := range mem.Ticks() {
		state := TickState{Tick: tick, Rows: make(map[string]recorder.TickRow)}
		for _, row := range mem.Rows(tick) {
			state.Rows[row.Agent] = row
		}
		result.Ticks = append(result.Ticks, state)
	}
	return result
}

// PerformedCounts tallies how often each behaviour appears across the
// whole run.
func (res Result) PerformedCounts() map[string]int {
	counts := make(map[string]int)
	for _, state := range res.Ticks {
		for _, row := range state.Rows {
			if row.Performed != "" {
				counts[row.Performed]++
			}
		}
	}
	return counts
}

// At returns the state at tick, failing the test if that tick was not
// recorded.
func (res Result) At(t *testing.T, tick model.Time) TickState {
	t.Helper()
	for _, state := range res.Ticks {
		if state.Tick == tick {
			return state
		}
	}
	t.Fatalf("tick %d not recorded (run covers %d ticks)", tick, len(res.Ticks))
	return TickState{}
}
