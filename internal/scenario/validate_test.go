package scenario

import (
	"strings"
	"testing"
)

// validScenario builds a minimal scenario that passes Validate; tests
// break one thing at a time.
func validScenario() *Scenario {
	return &Scenario{
		Name:       "minimal",
		Steps:      5,
		Behaviours: []string{"walk"},
		Beliefs: []BeliefSpec{
			{
				Name:          "healthy",
				Relationships: map[string]float64{"healthy": 0.1},
				Observed:      map[string]float64{"walk": 1.0},
				Performing:    map[string]float64{"walk": 1.0},
			},
		},
		Agents: []AgentSpec{
			{
				Name:    "ada",
				Beliefs: []AgentBeliefSpec{{Belief: "healthy", Activation: 1.0, Delta: 0.9}},
			},
			{
				Name:    "ben",
				Beliefs: []AgentBeliefSpec{{Belief: "healthy", Activation: 0.5, Delta: 0.9}},
				Friends: []FriendSpec{{Agent: "ada", Weight: 1.0}},
			},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validScenario().Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Scenario)
		want   string
	}{
		{
			name:   "no steps",
			mutate: func(s *Scenario) { s.Steps = 0 },
			want:   "steps must be positive",
		},
		{
			name:   "duplicate behaviour",
			mutate: func(s *Scenario) { s.Behaviours = append(s.Behaviours, "walk") },
			want:   `duplicate behaviour "walk"`,
		},
		{
			name:   "duplicate belief",
			mutate: func(s *Scenario) { s.Beliefs = append(s.Beliefs, s.Beliefs[0]) },
			want:   `duplicate belief "healthy"`,
		},
		{
			name:   "duplicate agent",
			mutate: func(s *Scenario) { s.Agents = append(s.Agents, s.Agents[0]) },
			want:   `duplicate agent "ada"`,
		},
		{
			name:   "missing self relationship",
			mutate: func(s *Scenario) { delete(s.Beliefs[0].Relationships, "healthy") },
			want:   `no relationship with belief "healthy"`,
		},
		{
			name:   "missing observed weight",
			mutate: func(s *Scenario) { delete(s.Beliefs[0].Observed, "walk") },
			want:   `no observed weight for behaviour "walk"`,
		},
		{
			name:   "missing performing weight",
			mutate: func(s *Scenario) { delete(s.Beliefs[0].Performing, "walk") },
			want:   `no performing weight for behaviour "walk"`,
		},
		{
			name:   "relationship with unknown belief",
			mutate: func(s *Scenario) { s.Beliefs[0].Relationships["ghost"] = 1.0 },
			want:   `relationship with unknown belief "ghost"`,
		},
		{
			name:   "observed weight for unknown behaviour",
			mutate: func(s *Scenario) { s.Beliefs[0].Observed["ghost"] = 1.0 },
			want:   `observed weight for unknown behaviour "ghost"`,
		},
		{
			name:   "agent with unknown belief",
			mutate: func(s *Scenario) {
				s.Agents[0].Beliefs = append(s.Agents[0].Beliefs, AgentBeliefSpec{Belief: "ghost"})
			},
			want: `unknown belief "ghost"`,
		},
		{
			name:   "agent missing belief coverage",
			mutate: func(s *Scenario) { s.Agents[0].Beliefs = nil },
			want:   `no starting state for belief "healthy"`,
		},
		{
			name:   "unknown seeded behaviour",
			mutate: func(s *Scenario) { s.Agents[0].Performed = "fly" },
			want:   `seeded behaviour "fly" is unknown`,
		},
		{
			name:   "unknown friend",
			mutate: func(s *Scenario) { s.Agents[0].Friends = []FriendSpec{{Agent: "ghost"}} },
			want:   `unknown friend "ghost"`,
		},
		{
			name:   "self friendship",
			mutate: func(s *Scenario) { s.Agents[0].Friends = []FriendSpec{{Agent: "ada", Weight: 1}} },
			want:   "befriends itself",
		},
		{
			name: "duplicate friendship",
			mutate: func(s *Scenario) {
				s.Agents[1].Friends = append(s.Agents[1].Friends, FriendSpec{Agent: "ada", Weight: 2})
			},
			want: `duplicate friendship with "ada"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validScenario()
			tt.mutate(s)
			err := s.Validate()
			if err == nil {
				t.Fatal("Validate() passed a broken scenario")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	s := validScenario()
	s.Steps = 0
	s.Agents[0].Performed = "fly"
	err := s.Validate()
	if err == nil {
		t.Fatal("Validate() passed a broken scenario")
	}
	for _, want := range []string{"steps must be positive", `seeded behaviour "fly"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error = %v, missing %q", err, want)
		}
	}
}
