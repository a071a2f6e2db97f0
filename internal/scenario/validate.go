package scenario

import (
	"errors"
	"fmt"
)

// Validate preflights the scenario against the core's preconditions.
// Everything it reports would otherwise surface as a missing-state error
// partway through a run: beliefs without full relationship tables,
// agents without activation or delta coverage, references to names that
// do not exist, self-friendship. All problems are collected and returned
// joined, so one pass over the report fixes the file.
func (s *Scenario) Validate() error {
	var problems []error
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format, args...))
	}

	if s.Name == "" {
		report("scenario has no name")
	}
	if s.Steps <= 0 {
		report("steps must be positive, got %d", s.Steps)
	}
	if len(s.Behaviours) == 0 {
		report("no behaviours declared")
	}
	if len(s.Beliefs) == 0 {
		report("no beliefs declared")
	}
	if len(s.Agents) == 0 {
		report("no agents declared")
	}

	behaviours := make(map[string]bool, len(s.Behaviours))
	for _, name := range s.Behaviours {
		if name == "" {
			report("behaviour with empty name")
			continue
		}
		if behaviours[name] {
			report("duplicate behaviour %q", name)
		}
		behaviours[name] = true
	}

	beliefs := make(map[string]bool, len(s.Beliefs))
	for _, b := range s.Beliefs {
		if b.Name == "" {
			report("belief with empty name")
			continue
		}
		if beliefs[b.Name] {
			report("duplicate belief %q", b.Name)
		}
		beliefs[b.Name] = true
	}

	// Relationship tables must cover the full vocabulary: the dynamics
	// look up every pair over the held set and every behaviour a friend
	// may perform, and the core has no zero default.
	for _, b := range s.Beliefs {
		for _, other := range s.Beliefs {
			if _, ok := b.Relationships[other.Name]; !ok {
				report("belief %q: no relationship with belief %q", b.Name, other.Name)
			}
		}
		for name := range b.Relationships {
			if !beliefs[name] {
				report("belief %q: relationship with unknown belief %q", b.Name, name)
			}
		}
		for _, beh := range s.Behaviours {
			if _, ok := b.Observed[beh]; !ok {
				report("belief %q: no observed weight for behaviour %q", b.Name, beh)
			}
			if _, ok := b.Performing[beh]; !ok {
				report("belief %q: no performing weight for behaviour %q", b.Name, beh)
			}
		}
		for name := range b.Observed {
			if !behaviours[name] {
				report("belief %q: observed weight for unknown behaviour %q", b.Name, name)
			}
		}
		for name := range b.Performing {
			if !behaviours[name] {
				report("belief %q: performing weight for unknown behaviour %q", b.Name, name)
			}
		}
	}

	agents := make(map[string]bool, len(s.Agents))
	for _, a := range s.Agents {
		if a.Name == "" {
			report("agent with empty name")
			continue
		}
		if agents[a.Name] {
			report("duplicate agent %q", a.Name)
		}
		agents[a.Name] = true
	}

	for _, a := range s.Agents {
		seeded := make(map[string]bool, len(a.Beliefs))
		for _, ab := range a.Beliefs {
			if !beliefs[ab.Belief] {
				report("agent %q: unknown belief %q", a.Name, ab.Belief)
				continue
			}
			if seeded[ab.Belief] {
				report("agent %q: duplicate entry for belief %q", a.Name, ab.Belief)
			}
			seeded[ab.Belief] = true
		}
		// Every tick updates every belief, so every agent needs a seed
		// activation and a delta for each one.
		for _, b := range s.Beliefs {
			if !seeded[b.Name] {
				report("agent %q: no starting state for belief %q", a.Name, b.Name)
			}
		}
		if a.Performed != "" && !behaviours[a.Performed] {
			report("agent %q: seeded behaviour %q is unknown", a.Name, a.Performed)
		}
		befriended := make(map[string]bool, len(a.Friends))
		for _, f := range a.Friends {
			if !agents[f.Agent] {
				report("agent %q: unknown friend %q", a.Name, f.Agent)
				continue
			}
			if f.Agent == a.Name {
				report("agent %q: befriends itself", a.Name)
			}
			if befriended[f.Agent] {
				report("agent %q: duplicate friendship with %q", a.Name, f.Agent)
			}
			befriended[f.Agent] = true
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("scenario %q: %w", s.Name, errors.Join(problems...))
}
