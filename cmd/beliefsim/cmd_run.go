package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/nvandessel/beliefsim/internal/config"
	"github.com/nvandessel/beliefsim/internal/logging"
	"github.com/nvandessel/beliefsim/internal/model"
	"github.com/nvandessel/beliefsim/internal/recorder"
	"github.com/nvandessel/beliefsim/internal/runner"
	"github.com/nvandessel/beliefsim/internal/scenario"
)

// runSummary is the machine-readable result of one run.
type runSummary struct {
	Scenario        string                        `json:"scenario"`
	Seed            int64                         `json:"seed"`
	Steps           int                           `json:"steps"`
	FinalTick       int64                         `json:"final_tick"`
	Activations     map[string]map[string]float64 `json:"activations"`
	Performed       map[string]string             `json:"performed"`
	PerformedCounts map[string]int                `json:"performed_counts"`
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a scenario and report the final state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")

			doc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			applyRunFlags(cmd, cfg, doc)

			pop, agents, err := doc.Build()
			if err != nil {
				return err
			}
			named := make([]recorder.NamedAgent, 0, len(doc.Agents))
			for _, spec := range doc.Agents {
				named = append(named, recorder.NamedAgent{Name: spec.Name, Agent: agents[spec.Name]})
			}

			rec, err := recorder.New(cfg.Recorder)
			if err != nil {
				return err
			}
			defer rec.Close()

			mem := recorder.NewMemory()
			decisions := logging.NewDecisionLogger(cfg.Logging.DecisionLog)
			defer decisions.Close()

			r := runner.NewRunner(*pop, runner.Config{Workers: cfg.Runner.Workers})
			r.OnTick(recorder.Observer(mem, named, pop.Beliefs))
			r.OnTick(recorder.Observer(rec, named, pop.Beliefs))
			r.OnTick(func(t model.Time) error {
				logger.Debug("tick complete", "scenario", doc.Name, "tick", int64(t))
				for _, na := range named {
					beh, err := na.Agent.Performed(t)
					if err != nil {
						continue
					}
					decisions.Log(map[string]any{
						"tick":       int64(t),
						"agent":      na.Name,
						"behaviour":  beh.Name(),
						"candidates": len(pop.Behaviours),
					})
				}
				return nil
			})

			if err := rec.Begin(recorder.RunMeta{
				Scenario:  doc.Name,
				Seed:      doc.Seed,
				Steps:     doc.Steps,
				StartedAt: time.Now().UTC(),
			}); err != nil {
				return err
			}

			logger.Info("starting run", "scenario", doc.Name, "agents", len(named), "steps", doc.Steps, "seed", doc.Seed)
			start := time.Now()
			if err := r.Run(context.Background(), scenario.StartTick, doc.Steps); err != nil {
				return err
			}
			logger.Info("run complete", "scenario", doc.Name, "elapsed", time.Since(start))

			summary := summarize(doc, mem)
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			printSummary(cmd, summary)
			return nil
		},
	}

	cmd.Flags().Int("steps", 0, "Override the scenario's step count")
	cmd.Flags().Int64("seed", 0, "Override the scenario's random seed")
	cmd.Flags().Int("workers", -1, "Concurrent agents per phase (0 = one goroutine per agent)")
	cmd.Flags().String("record", "", "Recorder backend: none, memory, jsonl, or sqlite")
	cmd.Flags().String("out", "", "Recorder output path (jsonl and sqlite backends)")
	cmd.Flags().String("decision-log", "", "Append per-agent selection records to this JSONL file")
	return cmd
}

// applyRunFlags folds the run command's flags over the loaded config
// and scenario. Flags win over both the config file and the scenario
// document.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config, doc *scenario.Scenario) {
	if steps, _ := cmd.Flags().GetInt("steps"); steps > 0 {
		doc.Steps = steps
	}
	if seed, _ := cmd.Flags().GetInt64("seed"); seed != 0 {
		doc.Seed = seed
	}
	if cmd.Flags().Changed("workers") {
		if workers, _ := cmd.Flags().GetInt("workers"); workers >= 0 {
			cfg.Runner.Workers = workers
		}
	}
	if backend, _ := cmd.Flags().GetString("record"); backend != "" {
		cfg.Recorder.Backend = backend
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		cfg.Recorder.Path = out
	}
	if path, _ := cmd.Flags().GetString("decision-log"); path != "" {
		cfg.Logging.DecisionLog = path
	}
	if doc.Seed == 0 && cfg.Seed != 0 {
		doc.Seed = cfg.Seed
	}
}

func summarize(doc *scenario.Scenario, mem *recorder.Memory) runSummary {
	finalTick := scenario.StartTick + model.Time(doc.Steps)
	summary := runSummary{
		Scenario:        doc.Name,
		Seed:            doc.Seed,
		Steps:           doc.Steps,
		FinalTick:       int64(finalTick),
		Activations:     make(map[string]map[string]float64),
		Performed:       make(map[string]string),
		PerformedCounts: make(map[string]int),
	}
	for _, row := range mem.Rows(finalTick) {
		summary.Activations[row.Agent] = row.Activations
		summary.Performed[row.Agent] = row.Performed
	}
	for _, t := range mem.Ticks() {
		for _, row := range mem.Rows(t) {
			if row.Performed != "" {
				summary.PerformedCounts[row.Performed]++
			}
		}
	}
	return summary
}

func printSummary(cmd *cobra.Command, s runSummary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "scenario %s: %d steps, seed %d\n\n", s.Scenario, s.Steps, s.Seed)

	agents := make([]string, 0, len(s.Activations))
	for name := range s.Activations {
		agents = append(agents, name)
	}
	sort.Strings(agents)

	fmt.Fprintf(out, "final state (tick %d):\n", s.FinalTick)
	for _, name := range agents {
		fmt.Fprintf(out, "  %s  performs %s\n", name, s.Performed[name])
		beliefs := make([]string, 0, len(s.Activations[name]))
		for bel := range s.Activations[name] {
			beliefs = append(beliefs, bel)
		}
		sort.Strings(beliefs)
		for _, bel := range beliefs {
			fmt.Fprintf(out, "    %-30s %+.4f\n", bel, s.Activations[name][bel])
		}
	}

	fmt.Fprintf(out, "\nbehaviour counts over the run:\n")
	behaviours := make([]string, 0, len(s.PerformedCounts))
	for beh := range s.PerformedCounts {
		behaviours = append(behaviours, beh)
	}
	sort.Strings(behaviours)
	for _, beh := range behaviours {
		fmt.Fprintf(out, "  %-30s %d\n", beh, s.PerformedCounts[beh])
	}
}
