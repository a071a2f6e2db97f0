package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Belief is one node of an agent's belief system. An implementation
// carries the three weight tables the dynamics read: how holding other
// beliefs shapes this one's context, how observing a friend perform a
// behaviour feeds this belief, and how much this belief values
// performing a behaviour.
//
// Weights are arbitrary reals. Lookups against an unset pair fail with
// ErrNotFound; there are no implicit zero weights.
type Belief interface {
	ID() uuid.UUID
	Name() string

	// Relationship is the weight linking this belief to another held
	// belief when computing the context factor. Positive amplifies,
	// negative suppresses.
	Relationship(other Belief) (float64, error)
	SetRelationship(other Belief, weight float64)

	// ObservedBehaviourRelationship is the weight of observing a friend
	// perform beh, feeding this belief's activation.
	ObservedBehaviourRelationship(beh *Behaviour) (float64, error)
	SetObservedBehaviourRelationship(beh *Behaviour, weight float64)

	// PerformingBehaviourRelationship is the weight this belief assigns
	// to performing beh itself, feeding behaviour utility.
	PerformingBehaviourRelationship(beh *Behaviour) (float64, error)
	SetPerformingBehaviourRelationship(beh *Behaviour, weight float64)
}

// BasicBelief is the map-backed Belief implementation. Tables are keyed
// by ID rather than by interface value, so any Belief implementation can
// appear on the other end of a relationship.
type BasicBelief struct {
	id   uuid.UUID
	name string

	relationships map[uuid.UUID]float64
	observed      map[uuid.UUID]float64
	performing    map[uuid.UUID]float64
}

// NewBasicBelief creates a belief with a freshly generated ID and empty
// relationship tables.
func NewBasicBelief(name string) *BasicBelief {
	return NewBasicBeliefWithID(uuid.New(), name)
}

// NewBasicBeliefWithID creates a belief with a caller-chosen ID.
func NewBasicBeliefWithID(id uuid.UUID, name string) *BasicBelief {
	return &BasicBelief{
		id:            id,
		name:          name,
		relationships: make(map[uuid.UUID]float64),
		observed:      make(map[uuid.UUID]float64),
		performing:    make(map[uuid.UUID]float64),
	}
}

// ID returns the belief's identity.
func (b *BasicBelief) ID() uuid.UUID { return b.id }

// Name returns the belief's display name.
func (b *BasicBelief) Name() string { return b.name }

// Relationship returns the belief-to-belief weight toward other.
func (b *BasicBelief) Relationship(other Belief) (float64, error) {
	w, ok := b.relationships[other.ID()]
	if !ok {
		return 0, fmt.Errorf("belief %q: no relationship with belief %q: %w", b.name, other.Name(), ErrNotFound)
	}
	return w, nil
}

// SetRelationship inserts or overwrites the weight toward other.
func (b *BasicBelief) SetRelationship(other Belief, weight float64) {
	b.relationships[other.ID()] = weight
}

// ObservedBehaviourRelationship returns the observation weight for beh.
func (b *BasicBelief) ObservedBehaviourRelationship(beh *Behaviour) (float64, error) {
	w, ok := b.observed[beh.ID()]
	if !ok {
		return 0, fmt.Errorf("belief %q: no observed relationship with behaviour %q: %w", b.name, beh.Name(), ErrNotFound)
	}
	return w, nil
}

// SetObservedBehaviourRelationship inserts or overwrites the observation
// weight for beh.
func (b *BasicBelief) SetObservedBehaviourRelationship(beh *Behaviour, weight float64) {
	b.observed[beh.ID()] = weight
}

// PerformingBehaviourRelationship returns the performance weight for beh.
func (b *BasicBelief) PerformingBehaviourRelationship(beh *Behaviour) (float64, error) {
	w, ok := b.performing[beh.ID()]
	if !ok {
		return 0, fmt.Errorf("belief %q: no performing relationship with behaviour %q: %w", b.name, beh.Name(), ErrNotFound)
	}
	return w, nil
}

// SetPerformingBehaviourRelationship inserts or overwrites the
// performance weight for beh.
func (b *BasicBelief) SetPerformingBehaviourRelationship(beh *Behaviour, weight float64) {
	b.performing[beh.ID()] = weight
}
