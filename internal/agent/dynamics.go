package agent

import (
	"fmt"
	"math"

	"github.com/nvandessel/beliefsim/internal/model"
)

// UpdateActivation applies the activation recurrence for belief b at
// tick t:
//
//	activation(t, b) = timeDelta(b)*activation(t-1, b) + contextualObserved(b, t-1)
//
// Only t-1 state is read. The social term is evaluated against the
// friends' behaviour at t-1; that one-tick observation lag is part of
// the model. Fails with ErrNotFound when the time delta or the prior
// activation is missing, or when the social term hits an unset entry.
// On success the (t, b) entry is inserted or overwritten, so
// re-running a step recomputes the same value.
func (a *SocialAgent) UpdateActivation(t model.Time, b model.Belief) error {
	delta, err := a.TimeDelta(b)
	if err != nil {
		return fmt.Errorf("update activation of %q at t=%d: %w", b.Name(), t, err)
	}
	prior, err := a.Activation(t-1, b)
	if err != nil {
		return fmt.Errorf("update activation of %q at t=%d: %w", b.Name(), t, err)
	}
	observed, err := a.contextualObserved(b, t-1)
	if err != nil {
		return fmt.Errorf("update activation of %q at t=%d: %w", b.Name(), t, err)
	}
	a.SetActivation(t, b, delta*prior+observed)
	return nil
}

// observed is the raw social signal for belief b at tick t: the sum
// over friends of the friend weight times the belief's observation
// weight for what that friend performed at t. No friends means zero.
// Any friend without a performed entry at t, or any unset observation
// weight, fails the whole term.
func (a *SocialAgent) observed(b model.Belief, t model.Time) (float64, error) {
	var total float64
	for _, f := range a.Friends() {
		beh, err := f.Peer.Performed(t)
		if err != nil {
			return 0, fmt.Errorf("observe %q at t=%d: %w", b.Name(), t, err)
		}
		w, err := b.ObservedBehaviourRelationship(beh)
		if err != nil {
			return 0, fmt.Errorf("observe %q at t=%d: %w", b.Name(), t, err)
		}
		total += f.Weight * w
	}
	return total, nil
}

// contextualise is the context factor for belief b at tick t: the
// exponential of the sum, over the held beliefs, of their activation
// times their relationship weight toward b. The exponent is raw and
// unclamped; with an empty held set it is exp(0) = 1. Unbounded growth
// of the factor is a property of the model.
func (a *SocialAgent) contextualise(b model.Belief, t model.Time) (float64, error) {
	held, err := a.heldBeliefs(t)
	if err != nil {
		return 0, fmt.Errorf("contextualise %q at t=%d: %w", b.Name(), t, err)
	}
	var sum float64
	for _, other := range held {
		act, err := a.Activation(t, other)
		if err != nil {
			return 0, fmt.Errorf("contextualise %q at t=%d: %w", b.Name(), t, err)
		}
		w, err := b.Relationship(other)
		if err != nil {
			return 0, fmt.Errorf("contextualise %q at t=%d: %w", b.Name(), t, err)
		}
		sum += act * w
	}
	return math.Exp(sum), nil
}

// contextualObserved is the social term of the recurrence: the context
// factor amplifying the raw observed signal.
func (a *SocialAgent) contextualObserved(b model.Belief, t model.Time) (float64, error) {
	ctx, err := a.contextualise(b, t)
	if err != nil {
		return 0, err
	}
	obs, err := a.observed(b, t)
	if err != nil {
		return 0, err
	}
	return ctx * obs, nil
}

// beliefBehaviour is the raw contribution of holding bel toward
// performing beh at t: the performing weight times the activation.
func (a *SocialAgent) beliefBehaviour(bel model.Belief, beh *model.Behaviour, t model.Time) (float64, error) {
	w, err := bel.PerformingBehaviourRelationship(beh)
	if err != nil {
		return 0, err
	}
	act, err := a.Activation(t, bel)
	if err != nil {
		return 0, err
	}
	return w * act, nil
}

// contextualBeliefBehaviour is beliefBehaviour amplified by bel's
// context factor.
func (a *SocialAgent) contextualBeliefBehaviour(bel model.Belief, beh *model.Behaviour, t model.Time) (float64, error) {
	ctx, err := a.contextualise(bel, t)
	if err != nil {
		return 0, err
	}
	raw, err := a.beliefBehaviour(bel, beh, t)
	if err != nil {
		return 0, err
	}
	return ctx * raw, nil
}

// contextualBehaviour sums the contextual contributions of every held
// belief toward performing beh at t. A tick with no activation bucket
// at all is ErrNotFound; an empty bucket sums over nothing and yields
// zero.
func (a *SocialAgent) contextualBehaviour(beh *model.Behaviour, t model.Time) (float64, error) {
	held, err := a.heldBeliefs(t)
	if err != nil {
		return 0, fmt.Errorf("evaluate behaviour %q at t=%d: %w", beh.Name(), t, err)
	}
	var total float64
	for _, bel := range held {
		v, err := a.contextualBeliefBehaviour(bel, beh, t)
		if err != nil {
			return 0, fmt.Errorf("evaluate behaviour %q at t=%d: %w", beh.Name(), t, err)
		}
		total += v
	}
	return total, nil
}

// environment is the non-social utility term. It contributes exactly
// zero unless an EnvironmentFunc was injected at construction.
func (a *SocialAgent) environment(beh *model.Behaviour, t model.Time) float64 {
	if a.env == nil {
		return 0
	}
	return a.env(beh, t)
}

// utility is the full score of performing beh at t.
func (a *SocialAgent) utility(beh *model.Behaviour, t model.Time) (float64, error) {
	social, err := a.contextualBehaviour(beh, t)
	if err != nil {
		return 0, err
	}
	return social + a.environment(beh, t), nil
}
