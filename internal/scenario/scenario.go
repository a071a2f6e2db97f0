// Package scenario loads, validates, and builds simulation populations
// from YAML documents.
//
// A scenario is the complete closed world of one run: the behaviour and
// belief vocabulary with full relationship tables, and every agent's
// starting activations, time deltas, friendships, and optional seeded
// start-tick behaviour. Validation is a preflight of the core's
// preconditions: anything it reports would otherwise surface as a
// missing-state error mid-run.
package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is the YAML document describing one run.
type Scenario struct {
	Name  string `yaml:"name" json:"name"`
	Seed  int64  `yaml:"seed,omitempty" json:"seed,omitempty"`
	Steps int    `yaml:"steps" json:"steps"`

	Behaviours []string     `yaml:"behaviours" json:"behaviours"`
	Beliefs    []BeliefSpec `yaml:"beliefs" json:"beliefs"`
	Agents     []AgentSpec  `yaml:"agents" json:"agents"`
}

// BeliefSpec declares one belief and its three weight tables. The
// tables must cover the full vocabulary: relationships one entry per
// belief (itself included), observed and performing one entry per
// behaviour.
type BeliefSpec struct {
	Name          string             `yaml:"name" json:"name"`
	Relationships map[string]float64 `yaml:"relationships" json:"relationships"`
	Observed      map[string]float64 `yaml:"observed" json:"observed"`
	Performing    map[string]float64 `yaml:"performing" json:"performing"`
}

// AgentSpec declares one agent: its per-belief starting state, an
// optional behaviour seed for the start tick, and its outgoing
// friendships.
type AgentSpec struct {
	Name      string            `yaml:"name" json:"name"`
	Beliefs   []AgentBeliefSpec `yaml:"beliefs" json:"beliefs"`
	Performed string            `yaml:"performed,omitempty" json:"performed,omitempty"`
	Friends   []FriendSpec      `yaml:"friends,omitempty" json:"friends,omitempty"`
}

// AgentBeliefSpec is one agent's starting state for one belief.
type AgentBeliefSpec struct {
	Belief     string  `yaml:"belief" json:"belief"`
	Activation float64 `yaml:"activation" json:"activation"`
	Delta      float64 `yaml:"delta" json:"delta"`
}

// FriendSpec is one directed friendship.
type FriendSpec struct {
	Agent  string  `yaml:"agent" json:"agent"`
	Weight float64 `yaml:"weight" json:"weight"`
}

// Parse decodes a scenario document. Unknown keys are rejected so typos
// in experiment files surface before a run.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &s, nil
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// Marshal renders the scenario back to YAML.
func (s *Scenario) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshalling scenario: %w", err)
	}
	return data, nil
}
