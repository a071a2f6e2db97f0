// Package agent implements the belief-driven agent: per-belief activation
// levels evolving by a time recurrence, and stochastic behaviour selection
// under social influence from weighted friends.
package agent

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/nvandessel/beliefsim/internal/model"
)

// Agent is the surface peers and drivers hold an agent through. Any
// implementation can appear as another agent's friend; the social term
// only reads Performed on peers.
type Agent interface {
	ID() uuid.UUID

	Activation(t model.Time, b model.Belief) (float64, error)
	UpdateActivation(t model.Time, b model.Belief) error

	Performed(t model.Time) (*model.Behaviour, error)
	Perform(t model.Time, candidates []*model.Behaviour) error

	Tick(t model.Time, behaviours []*model.Behaviour, beliefs []model.Belief) error
}

// EnvironmentFunc supplies a non-social utility contribution for a
// behaviour at a tick. It must be a pure function of its arguments and
// return a finite value.
type EnvironmentFunc func(beh *model.Behaviour, t model.Time) float64

// Friendship is one directed social link: a peer and the weight this
// agent gives that peer's observed behaviour.
type Friendship struct {
	Peer   Agent
	Weight float64
}

// SocialAgent is the map-backed Agent implementation. It owns four
// sparse tables: activations keyed by tick then belief, one performed
// behaviour per tick, directed friend weights, and per-belief time
// deltas. It holds no locks; concurrent use is coordinated by the
// runner's phase discipline.
type SocialAgent struct {
	id uuid.UUID

	activation map[model.Time]map[uuid.UUID]float64
	beliefs    map[uuid.UUID]model.Belief // handle registry for everything in activation
	performed  map[model.Time]*model.Behaviour
	friends    map[uuid.UUID]Friendship
	timeDeltas map[uuid.UUID]float64

	rand RandSource
	env  EnvironmentFunc
}

var _ Agent = (*SocialAgent)(nil)

// Option configures a SocialAgent at construction.
type Option func(*SocialAgent)

// WithID fixes the agent's identity instead of generating one.
func WithID(id uuid.UUID) Option {
	return func(a *SocialAgent) { a.id = id }
}

// WithActivations seeds the activation table. The seed is copied entry
// by entry; later lookups return exactly the seeded values.
func WithActivations(seed map[model.Time]map[model.Belief]float64) Option {
	return func(a *SocialAgent) {
		for t, bucket := range seed {
			for b, v := range bucket {
				a.SetActivation(t, b, v)
			}
		}
	}
}

// WithRand injects the random source behind behaviour selection. When
// absent the process-wide math/rand generator is used.
func WithRand(r RandSource) Option {
	return func(a *SocialAgent) { a.rand = r }
}

// WithEnvironment injects the non-social utility term. When absent the
// environment contributes exactly zero.
func WithEnvironment(fn EnvironmentFunc) Option {
	return func(a *SocialAgent) { a.env = fn }
}

// New creates an agent with empty tables and a generated ID.
func New(opts ...Option) *SocialAgent {
	a := &SocialAgent{
		id:         uuid.New(),
		activation: make(map[model.Time]map[uuid.UUID]float64),
		beliefs:    make(map[uuid.UUID]model.Belief),
		performed:  make(map[model.Time]*model.Behaviour),
		friends:    make(map[uuid.UUID]Friendship),
		timeDeltas: make(map[uuid.UUID]float64),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ID returns the agent's identity.
func (a *SocialAgent) ID() uuid.UUID { return a.id }

// Activation returns the activation of belief b at tick t. Both a
// missing tick bucket and a missing belief entry fail with ErrNotFound.
func (a *SocialAgent) Activation(t model.Time, b model.Belief) (float64, error) {
	bucket, ok := a.activation[t]
	if !ok {
		return 0, fmt.Errorf("agent %s: no activation recorded at t=%d: %w", a.id, t, model.ErrNotFound)
	}
	v, ok := bucket[b.ID()]
	if !ok {
		return 0, fmt.Errorf("agent %s: no activation for belief %q at t=%d: %w", a.id, b.Name(), t, model.ErrNotFound)
	}
	return v, nil
}

// SetActivation inserts or overwrites the activation of b at t, creating
// the tick bucket when absent. Seeding an activation is what makes the
// agent hold b at t; the value may be zero or negative.
func (a *SocialAgent) SetActivation(t model.Time, b model.Belief, v float64) {
	bucket, ok := a.activation[t]
	if !ok {
		bucket = make(map[uuid.UUID]float64)
		a.activation[t] = bucket
	}
	bucket[b.ID()] = v
	a.beliefs[b.ID()] = b
}

// Performed returns the behaviour recorded at tick t, or ErrNotFound
// when the agent has not performed at t.
func (a *SocialAgent) Performed(t model.Time) (*model.Behaviour, error) {
	beh, ok := a.performed[t]
	if !ok {
		return nil, fmt.Errorf("agent %s: nothing performed at t=%d: %w", a.id, t, model.ErrNotFound)
	}
	return beh, nil
}

// SetPerformed records beh as performed at t, overwriting any previous
// entry. beh must be non-nil. Normal runs record through Perform; this
// setter seeds start-tick behaviour for scenarios and tests.
func (a *SocialAgent) SetPerformed(t model.Time, beh *model.Behaviour) {
	a.performed[t] = beh
}

// FriendWeight returns the weight of the directed link to peer, or
// ErrNotFound when no such friendship exists.
func (a *SocialAgent) FriendWeight(peer Agent) (float64, error) {
	f, ok := a.friends[peer.ID()]
	if !ok {
		return 0, fmt.Errorf("agent %s: no friendship with %s: %w", a.id, peer.ID(), model.ErrNotFound)
	}
	return f.Weight, nil
}

// SetFriendWeight inserts or overwrites the directed link to peer.
func (a *SocialAgent) SetFriendWeight(peer Agent, weight float64) {
	a.friends[peer.ID()] = Friendship{Peer: peer, Weight: weight}
}

// Friends returns the agent's friendships ordered by peer ID.
func (a *SocialAgent) Friends() []Friendship {
	out := make([]Friendship, 0, len(a.friends))
	for _, f := range a.friends {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		return lessID(out[i].Peer.ID(), out[j].Peer.ID())
	})
	return out
}

// TimeDelta returns the persistence coefficient for belief b, or
// ErrNotFound when none is set.
func (a *SocialAgent) TimeDelta(b model.Belief) (float64, error) {
	d, ok := a.timeDeltas[b.ID()]
	if !ok {
		return 0, fmt.Errorf("agent %s: no time delta for belief %q: %w", a.id, b.Name(), model.ErrNotFound)
	}
	return d, nil
}

// SetTimeDelta inserts or overwrites the persistence coefficient for b.
func (a *SocialAgent) SetTimeDelta(b model.Belief, delta float64) {
	a.timeDeltas[b.ID()] = delta
}

// Tick runs one full agent step: update every belief's activation at t
// from t-1 state, then select a behaviour for t. The first error aborts
// the step; entries already written stay written.
func (a *SocialAgent) Tick(t model.Time, behaviours []*model.Behaviour, beliefs []model.Belief) error {
	for _, b := range beliefs {
		if err := a.UpdateActivation(t, b); err != nil {
			return fmt.Errorf("tick t=%d: %w", t, err)
		}
	}
	if err := a.Perform(t, behaviours); err != nil {
		return fmt.Errorf("tick t=%d: %w", t, err)
	}
	return nil
}

// heldBeliefs is the set of beliefs with an activation entry at t, in
// ID order. A missing tick bucket is ErrNotFound; an empty bucket is an
// empty set. The fixed order keeps float summation reproducible across
// runs despite map iteration being randomized.
func (a *SocialAgent) heldBeliefs(t model.Time) ([]model.Belief, error) {
	bucket, ok := a.activation[t]
	if !ok {
		return nil, fmt.Errorf("agent %s: no activation recorded at t=%d: %w", a.id, t, model.ErrNotFound)
	}
	held := make([]model.Belief, 0, len(bucket))
	for id := range bucket {
		held = append(held, a.beliefs[id])
	}
	sort.Slice(held, func(i, j int) bool {
		return lessID(held[i].ID(), held[j].ID())
	})
	return held, nil
}

func lessID(a, b uuid.UUID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}
