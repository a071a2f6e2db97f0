package scenario

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/nvandessel/beliefsim/internal/agent"
	"github.com/nvandessel/beliefsim/internal/model"
	"github.com/nvandessel/beliefsim/internal/runner"
)

// StartTick is the tick scenario seeds are written at. Runs begin here
// and step forward.
const StartTick model.Time = 0

// Build constructs the live object graph the scenario describes: the
// behaviour and belief vocabulary with their weight tables, and every
// agent seeded at StartTick. The returned map recovers each agent by
// its scenario name, for recording and assertions.
//
// Each agent gets its own random source derived from the scenario seed,
// so a run is reproducible regardless of how the driver schedules the
// agents. A zero seed is replaced by the clock.
func (s *Scenario) Build() (*runner.Population, map[string]*agent.SocialAgent, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}

	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	behaviours := make([]*model.Behaviour, 0, len(s.Behaviours))
	behaviourByName := make(map[string]*model.Behaviour, len(s.Behaviours))
	for _, name := range s.Behaviours {
		beh := model.NewBehaviour(name)
		behaviours = append(behaviours, beh)
		behaviourByName[name] = beh
	}

	beliefs := make([]model.Belief, 0, len(s.Beliefs))
	beliefByName := make(map[string]*model.BasicBelief, len(s.Beliefs))
	for _, spec := range s.Beliefs {
		bel := model.NewBasicBelief(spec.Name)
		beliefs = append(beliefs, bel)
		beliefByName[spec.Name] = bel
	}
	for _, spec := range s.Beliefs {
		bel := beliefByName[spec.Name]
		for name, w := range spec.Relationships {
			bel.SetRelationship(beliefByName[name], w)
		}
		for name, w := range spec.Observed {
			bel.SetObservedBehaviourRelationship(behaviourByName[name], w)
		}
		for name, w := range spec.Performing {
			bel.SetPerformingBehaviourRelationship(behaviourByName[name], w)
		}
	}

	agents := make([]agent.Agent, 0, len(s.Agents))
	agentByName := make(map[string]*agent.SocialAgent, len(s.Agents))
	for i, spec := range s.Agents {
		seeds := make(map[model.Belief]float64, len(spec.Beliefs))
		for _, ab := range spec.Beliefs {
			seeds[beliefByName[ab.Belief]] = ab.Activation
		}
		a := agent.New(
			agent.WithActivations(map[model.Time]map[model.Belief]float64{StartTick: seeds}),
			agent.WithRand(rand.New(rand.NewSource(seed+int64(i)+1))),
		)
		for _, ab := range spec.Beliefs {
			a.SetTimeDelta(beliefByName[ab.Belief], ab.Delta)
		}
		if spec.Performed != "" {
			a.SetPerformed(StartTick, behaviourByName[spec.Performed])
		}
		agents = append(agents, a)
		agentByName[spec.Name] = a
	}

	// Friendships wire after all agents exist; forward references in the
	// file are legal.
	for _, spec := range s.Agents {
		a := agentByName[spec.Name]
		for _, f := range spec.Friends {
			peer, ok := agentByName[f.Agent]
			if !ok {
				return nil, nil, fmt.Errorf("build scenario %q: unknown friend %q", s.Name, f.Agent)
			}
			a.SetFriendWeight(peer, f.Weight)
		}
	}

	pop := &runner.Population{
		Agents:     agents,
		Behaviours: behaviours,
		Beliefs:    beliefs,
	}
	return pop, agentByName, nil
}
