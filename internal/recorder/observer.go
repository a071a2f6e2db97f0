package recorder

import (
	"errors"
	"fmt"

	"github.com/nvandessel/beliefsim/internal/agent"
	"github.com/nvandessel/beliefsim/internal/model"
)

// NamedAgent pairs an agent with the name it carries in records.
type NamedAgent struct {
	Name  string
	Agent agent.Agent
}

// Observer bridges a runner's per-tick callback to a Recorder: at each
// tick it snapshots every agent's activations and performed behaviour
// into TickRows. Register the returned function with Runner.OnTick.
//
// An agent missing an activation or a performed entry at a recorded
// tick is skipped for that field rather than failing the run; the
// recorder observes, it does not police preconditions.
func Observer(rec Recorder, agents []NamedAgent, beliefs []model.Belief) func(t model.Time) error {
	return func(t model.Time) error {
		rows := make([]TickRow, 0, len(agents))
		for _, na := range agents {
			row := TickRow{
				Agent:       na.Name,
				Activations: make(map[string]float64, len(beliefs)),
			}
			for _, b := range beliefs {
				v, err := na.Agent.Activation(t, b)
				if err != nil {
					if errors.Is(err, model.ErrNotFound) {
						continue
					}
					return fmt.Errorf("record tick %d: %w", t, err)
				}
				row.Activations[b.Name()] = v
			}
			if beh, err := na.Agent.Performed(t); err == nil {
				row.Performed = beh.Name()
			} else if !errors.Is(err, model.ErrNotFound) {
				return fmt.Errorf("record tick %d: %w", t, err)
			}
			rows = append(rows, row)
		}
		if err := rec.RecordTick(t, rows); err != nil {
			return fmt.Errorf("record tick %d: %w", t, err)
		}
		return nil
	}
}
