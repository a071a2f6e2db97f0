// Package model defines the vocabulary of a belief-behaviour simulation:
// discrete time, behaviours, and beliefs with their relationship tables.
package model

import "errors"

// Time is a discrete simulation tick. Ticks are totally ordered plain
// integers; negative values are representable and simply have no state
// recorded against them.
type Time int64

// ErrNotFound is the single error kind for missing simulation state.
// Every lookup that can miss wraps it, so callers test with
// errors.Is(err, model.ErrNotFound). A missing entry is never silently
// read as zero.
var ErrNotFound = errors.New("not found")
