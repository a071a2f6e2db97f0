package visualization

import (
	"strings"
	"testing"

	"github.com/nvandessel/beliefsim/internal/scenario"
)

func testScenario() *scenario.Scenario {
	return &scenario.Scenario{
		Name:       "commute",
		Steps:      5,
		Behaviours: []string{"cycle", "drive"},
		Beliefs: []scenario.BeliefSpec{
			{
				Name:          "exercise-is-good",
				Relationships: map[string]float64{"exercise-is-good": 0.5, "cars-are-fast": -0.3},
				Observed:      map[string]float64{"cycle": 2, "drive": -1},
				Performing:    map[string]float64{"cycle": 1.5, "drive": -1},
			},
			{
				Name:          "cars-are-fast",
				Relationships: map[string]float64{"exercise-is-good": 0, "cars-are-fast": 0.2},
				Observed:      map[string]float64{"cycle": -1, "drive": 1},
				Performing:    map[string]float64{"cycle": -1, "drive": 1},
			},
		},
		Agents: []scenario.AgentSpec{
			{
				Name:      "alice",
				Beliefs:   []scenario.AgentBeliefSpec{{Belief: "exercise-is-good", Activation: 1, Delta: 0.8}},
				Performed: "cycle",
				Friends:   []scenario.FriendSpec{{Agent: "bob", Weight: 1.0}},
			},
			{
				Name:    "bob",
				Beliefs: []scenario.AgentBeliefSpec{{Belief: "cars-are-fast", Activation: 1, Delta: 0.8}},
				Friends: []scenario.FriendSpec{{Agent: "alice", Weight: -0.5}},
			},
		},
	}
}

func TestRenderDOT(t *testing.T) {
	dot := RenderDOT(testScenario())

	for _, want := range []string{
		`digraph "commute" {`,
		`"agent:alice"`,
		`"agent:bob"`,
		`performs cycle`,
		`"agent:alice" -> "agent:bob" [label="1.00", style=solid];`,
		`"agent:bob" -> "agent:alice" [label="-0.50", style=dashed];`,
		`"belief:exercise-is-good"`,
		`"belief:exercise-is-good" -> "belief:cars-are-fast" [label="-0.30", style=dashed, color=gray40];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("RenderDOT() missing %q:\n%s", want, dot)
		}
	}

	// A zero relationship draws nothing.
	if strings.Contains(dot, `"belief:cars-are-fast" -> "belief:exercise-is-good"`) {
		t.Errorf("RenderDOT() rendered a zero-weight relationship:\n%s", dot)
	}
}

func TestRenderDOT_Deterministic(t *testing.T) {
	if RenderDOT(testScenario()) != RenderDOT(testScenario()) {
		t.Error("RenderDOT() output varies across calls")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 40); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	long := strings.Repeat("x", 50)
	got := truncate(long, 40)
	if len([]rune(got)) != 40 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncate(long) = %q", got)
	}
}
