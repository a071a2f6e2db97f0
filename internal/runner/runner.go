// Package runner drives a population of agents through simulation ticks.
//
// Each tick runs in two phases separated by barriers: first every agent
// updates its belief activations (reading only tick t-1 state), then,
// once all updates have landed, every agent selects its behaviour for t.
// The barrier is what keeps one agent's read of a peer's t-1 behaviour
// from racing that peer's writes for t; the agents themselves hold no
// locks.
package runner

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/nvandessel/beliefsim/internal/agent"
	"github.com/nvandessel/beliefsim/internal/model"
)

// Population is the closed world of one run: the agents plus the shared
// candidate behaviours and the beliefs every agent updates each tick.
type Population struct {
	Agents     []agent.Agent
	Behaviours []*model.Behaviour
	Beliefs    []model.Belief
}

// Config tunes the runner.
type Config struct {
	// Workers caps concurrent agents per phase. Zero or negative runs
	// one goroutine per agent.
	Workers int
}

// DefaultConfig returns the runner defaults.
func DefaultConfig() Config {
	return Config{Workers: 0}
}

// Runner executes the two-phase tick loop over a population.
type Runner struct {
	config Config
	pop    Population
	onTick []func(t model.Time) error
}

// NewRunner creates a runner over pop.
func NewRunner(pop Population, config Config) *Runner {
	return &Runner{config: config, pop: pop}
}

// OnTick registers an observer invoked on the driver goroutine after
// each tick's selection barrier, in registration order. An observer
// error aborts the run.
func (r *Runner) OnTick(fn func(t model.Time) error) {
	r.onTick = append(r.onTick, fn)
}

// Step executes one full tick at t: the parallel activation-update
// phase, a barrier, the parallel selection phase, a barrier, then the
// observers. The first agent error cancels the phase and aborts the
// step; entries already written stay written.
func (r *Runner) Step(ctx context.Context, t model.Time) error {
	if err := r.runPhase(ctx, r.updateAgent(t)); err != nil {
		return fmt.Errorf("update phase t=%d: %w", t, err)
	}
	if err := r.runPhase(ctx, r.performAgent(t)); err != nil {
		return fmt.Errorf("select phase t=%d: %w", t, err)
	}
	return r.notify(t)
}

// Run bootstraps the start tick, then executes full steps for
// start+1 through start+steps.
//
// The bootstrap gives every agent a performed entry at the start tick,
// which the first full step's social term reads: agents without a
// seeded entry run selection only, from their seeded activations;
// seeded entries are kept as they are.
func (r *Runner) Run(ctx context.Context, start model.Time, steps int) error {
	if steps < 0 {
		return fmt.Errorf("run: negative step count %d", steps)
	}
	if err := r.runPhase(ctx, r.bootstrapAgent(start)); err != nil {
		return fmt.Errorf("bootstrap t=%d: %w", start, err)
	}
	if err := r.notify(start); err != nil {
		return err
	}
	for i := 1; i <= steps; i++ {
		if err := r.Step(ctx, start+model.Time(i)); err != nil {
			return err
		}
	}
	return nil
}

// runPhase fans one per-agent action out across the population and
// waits for all of them. The first error cancels the phase context, so
// in-flight agents stop at their next cancellation check.
func (r *Runner) runPhase(ctx context.Context, action func(ctx context.Context, a agent.Agent) error) error {
	g, gctx := errgroup.WithContext(ctx)
	if r.config.Workers > 0 {
		g.SetLimit(r.config.Workers)
	}
	for _, a := range r.pop.Agents {
		g.Go(func() error {
			return action(gctx, a)
		})
	}
	return g.Wait()
}

func (r *Runner) updateAgent(t model.Time) func(ctx context.Context, a agent.Agent) error {
	return func(ctx context.Context, a agent.Agent) error {
		for _, b := range r.pop.Beliefs {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := a.UpdateActivation(t, b); err != nil {
				return err
			}
		}
		return nil
	}
}

func (r *Runner) performAgent(t model.Time) func(ctx context.Context, a agent.Agent) error {
	return func(ctx context.Context, a agent.Agent) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return a.Perform(t, r.pop.Behaviours)
	}
}

func (r *Runner) bootstrapAgent(start model.Time) func(ctx context.Context, a agent.Agent) error {
	return func(ctx context.Context, a agent.Agent) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := a.Performed(start); err == nil {
			return nil
		}
		return a.Perform(start, r.pop.Behaviours)
	}
}

func (r *Runner) notify(t model.Time) error {
	for _, fn := range r.onTick {
		if err := fn(t); err != nil {
			return fmt.Errorf("tick observer t=%d: %w", t, err)
		}
	}
	return nil
}
