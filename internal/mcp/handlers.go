package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nvandessel/beliefsim/internal/model"
	"github.com/nvandessel/beliefsim/internal/recorder"
	"github.com/nvandessel/beliefsim/internal/runner"
	"github.com/nvandessel/beliefsim/internal/scenario"
)

// registerTools registers the beliefsim MCP tools with the server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "beliefsim_validate",
		Description: "Preflight a scenario file: report every missing relationship, unknown reference, or incomplete agent state before a run",
	}, s.handleValidate)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "beliefsim_run",
		Description: "Run a scenario file and return the final-tick activations and behaviour counts",
	}, s.handleRun)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "beliefsim_generate",
		Description: "Generate a synthetic scenario file: agents on a ring with noise-derived weights and activations",
	}, s.handleGenerate)
}

func (s *Server) handleValidate(ctx context.Context, req *sdk.CallToolRequest, args ValidateInput) (*sdk.CallToolResult, ValidateOutput, error) {
	doc, err := scenario.Load(args.Path)
	if err != nil {
		return nil, ValidateOutput{}, err
	}
	out := ValidateOutput{Scenario: doc.Name}
	if err := doc.Validate(); err != nil {
		out.Problems = problemLines(err)
	} else {
		out.Valid = true
	}
	return nil, out, nil
}

func (s *Server) handleRun(ctx context.Context, req *sdk.CallToolRequest, args RunInput) (*sdk.CallToolResult, RunOutput, error) {
	out, err := runScenario(ctx, args)
	if err != nil {
		return nil, RunOutput{}, err
	}
	return nil, out, nil
}

func (s *Server) handleGenerate(ctx context.Context, req *sdk.CallToolRequest, args GenerateInput) (*sdk.CallToolResult, GenerateOutput, error) {
	cfg := scenario.DefaultGenerateConfig()
	if args.Name != "" {
		cfg.Name = args.Name
	}
	if args.Agents > 0 {
		cfg.Agents = args.Agents
	}
	if args.Beliefs > 0 {
		cfg.Beliefs = args.Beliefs
	}
	if args.Behaviours > 0 {
		cfg.Behaviours = args.Behaviours
	}
	if args.Steps > 0 {
		cfg.Steps = args.Steps
	}
	if args.Seed != 0 {
		cfg.Seed = args.Seed
	}

	doc := scenario.Generate(cfg)
	data, err := doc.Marshal()
	if err != nil {
		return nil, GenerateOutput{}, err
	}
	if err := writeFile(args.Path, data); err != nil {
		return nil, GenerateOutput{}, err
	}

	return nil, GenerateOutput{
		Path:    args.Path,
		Agents:  len(doc.Agents),
		Message: fmt.Sprintf("wrote scenario %q with %d agents to %s", doc.Name, len(doc.Agents), args.Path),
	}, nil
}

// runScenario loads, builds, and runs one scenario file, collecting the
// run through an in-memory recorder.
func runScenario(ctx context.Context, args RunInput) (RunOutput, error) {
	doc, err := scenario.Load(args.Path)
	if err != nil {
		return RunOutput{}, err
	}
	if args.Steps > 0 {
		doc.Steps = args.Steps
	}
	if args.Seed != 0 {
		doc.Seed = args.Seed
	}

	pop, agents, err := doc.Build()
	if err != nil {
		return RunOutput{}, err
	}

	named := make([]recorder.NamedAgent, 0, len(doc.Agents))
	for _, spec := range doc.Agents {
		named = append(named, recorder.NamedAgent{Name: spec.Name, Agent: agents[spec.Name]})
	}

	mem := recorder.NewMemory()
	r := runner.NewRunner(*pop, runner.Config{Workers: args.Workers})
	r.OnTick(recorder.Observer(mem, named, pop.Beliefs))

	if err := r.Run(ctx, scenario.StartTick, doc.Steps); err != nil {
		return RunOutput{}, fmt.Errorf("run scenario %q: %w", doc.Name, err)
	}

	finalTick := scenario.StartTick + model.Time(doc.Steps)
	out := RunOutput{
		Scenario:        doc.Name,
		Seed:            doc.Seed,
		Steps:           doc.Steps,
		FinalTick:       int64(finalTick),
		Activations:     make(map[string]map[string]float64, len(named)),
		Performed:       make(map[string]string, len(named)),
		PerformedCounts: make(map[string]int),
	}
	for _, row := range mem.Rows(finalTick) {
		out.Activations[row.Agent] = row.Activations
		out.Performed[row.Agent] = row.Performed
	}
	for _, t := range mem.Ticks() {
		for _, row := range mem.Rows(t) {
			if row.Performed != "" {
				out.PerformedCounts[row.Performed]++
			}
		}
	}
	return out, nil
}

// problemLines splits a joined validation error into one line per
// problem for structured output.
func problemLines(err error) []string {
	var out []string
	for _, line := range strings.Split(err.Error(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func writeFile(path string, data []byte) error {
	if path == "" {
		return fmt.Errorf("empty output path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
