// Package simulation provides a multi-agent test harness for validating
// emergent dynamics of the activation and selection pipeline.
//
// The harness exercises the real SocialAgent, Runner, and scenario
// builder, no mocks. Scenarios are Go builders (or parsed YAML) that
// construct pre-seeded populations and run a configurable number of
// ticks, capturing every agent's activations and behaviour per tick for
// property-based assertions.
//
// Usage:
//
//	func TestConformity(t *testing.T) {
//	    r := simulation.NewRunner(t)
//	    result := r.Run(scenarioDoc)
//	    simulation.AssertPerformed(t, result, 3, "alice", "cycle")
//	    simulation.AssertActivationGrows(t, result, "alice", "exercise-is-good")
//	}
package simulation
