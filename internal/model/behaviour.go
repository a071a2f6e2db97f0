package model

import "github.com/google/uuid"

// Behaviour is a named action an agent can perform. Behaviours carry no
// dynamics of their own; beliefs attach weights to them by identity, so
// two behaviours with the same name are still distinct.
type Behaviour struct {
	id   uuid.UUID
	name string
}

// NewBehaviour creates a behaviour with a freshly generated ID.
func NewBehaviour(name string) *Behaviour {
	return &Behaviour{id: uuid.New(), name: name}
}

// NewBehaviourWithID creates a behaviour with a caller-chosen ID.
func NewBehaviourWithID(id uuid.UUID, name string) *Behaviour {
	return &Behaviour{id: id, name: name}
}

// ID returns the behaviour's identity.
func (b *Behaviour) ID() uuid.UUID { return b.id }

// Name returns the behaviour's display name.
func (b *Behaviour) Name() string { return b.name }
