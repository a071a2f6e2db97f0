package mcp

// ValidateInput defines the input for the beliefsim_validate tool.
type ValidateInput struct {
	Path string `json:"path" jsonschema:"Path to the scenario YAML file"`
}

// ValidateOutput defines the output for the beliefsim_validate tool.
type ValidateOutput struct {
	Valid    bool     `json:"valid" jsonschema:"Whether the scenario passed preflight validation"`
	Scenario string   `json:"scenario,omitempty" jsonschema:"Scenario name"`
	Problems []string `json:"problems,omitempty" jsonschema:"Validation problems, one per line"`
}

// RunInput defines the input for the beliefsim_run tool.
type RunInput struct {
	Path    string `json:"path" jsonschema:"Path to the scenario YAML file"`
	Steps   int    `json:"steps,omitempty" jsonschema:"Override the scenario's step count"`
	Seed    int64  `json:"seed,omitempty" jsonschema:"Override the scenario's random seed"`
	Workers int    `json:"workers,omitempty" jsonschema:"Concurrent agents per phase (0 = one goroutine per agent)"`
}

// RunOutput defines the output for the beliefsim_run tool.
type RunOutput struct {
	Scenario        string                        `json:"scenario" jsonschema:"Scenario name"`
	Seed            int64                         `json:"seed" jsonschema:"Seed the run used"`
	Steps           int                           `json:"steps" jsonschema:"Number of steps executed"`
	FinalTick       int64                         `json:"final_tick" jsonschema:"Tick index of the final state"`
	Activations     map[string]map[string]float64 `json:"activations" jsonschema:"Final-tick activation per agent per belief"`
	Performed       map[string]string             `json:"performed" jsonschema:"Final-tick behaviour per agent"`
	PerformedCounts map[string]int                `json:"performed_counts" jsonschema:"Times each behaviour was performed across the whole run"`
}

// GenerateInput defines the input for the beliefsim_generate tool.
type GenerateInput struct {
	Path       string `json:"path" jsonschema:"Output path for the generated scenario YAML"`
	Name       string `json:"name,omitempty" jsonschema:"Scenario name (default 'generated')"`
	Agents     int    `json:"agents,omitempty" jsonschema:"Population size (default 10)"`
	Beliefs    int    `json:"beliefs,omitempty" jsonschema:"Belief vocabulary size (default 3)"`
	Behaviours int    `json:"behaviours,omitempty" jsonschema:"Behaviour vocabulary size (default 2)"`
	Steps      int    `json:"steps,omitempty" jsonschema:"Run length written into the scenario (default 20)"`
	Seed       int64  `json:"seed,omitempty" jsonschema:"Generation seed (default 1)"`
}

// GenerateOutput defines the output for the beliefsim_generate tool.
type GenerateOutput struct {
	Path    string `json:"path" jsonschema:"Path the scenario was written to"`
	Agents  int    `json:"agents" jsonschema:"Number of agents generated"`
	Message string `json:"message" jsonschema:"Human-readable result message"`
}
