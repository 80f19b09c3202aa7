package combat

import (
	"context"

	"github.com/gunmetal-games/skirmish/internal/game/participant"
)

// Request bundles everything a strategy needs to resolve one action.
type Request struct {
	Actor *participant.Participant
	// Target is the participant the action is directed at; nil for
	// self-targeted actions.
	Target  *participant.Participant
	Action  Action
	Context *Context
}

// Requirements describes what an action needs before it can be attempted.
// For item-consuming actions (healing, reload) AmmoType carries the item id
// so the caller can decrement inventory uniformly.
type Requirements struct {
	APCost    int
	MinRange  float64
	MaxRange  float64
	AmmoType  string
	AmmoCount int
}

// Strategy is one polymorphic unit of combat behavior, keyed by the action
// types it supports. Probability and requirement queries never mutate the
// actor or target; Execute mutates neither either — the caller applies the
// returned Result (damage, healing, AP, effects, ammunition).
type Strategy interface {
	// SupportedTypes returns the action types this strategy owns.
	SupportedTypes() []ActionType
	// CanHandle is the fast dispatch check: does this strategy apply to
	// the request at all?
	CanHandle(req Request) bool
	// CanPerform is the full precondition check: sufficient AP, target in
	// range, required ammunition or items available.
	CanPerform(req Request) bool
	// ActionRequirements returns the request's resource requirements.
	ActionRequirements(req Request) Requirements
	// SuccessProbability returns the chance of success in [0, 1].
	SuccessProbability(req Request) float64
	// Execute resolves the action and returns its Result. Execute
	// re-validates preconditions and returns an unsuccessful Result
	// (APCost 0) when they fail.
	Execute(ctx context.Context, req Request) (*Result, error)
}

// Probability clamp bounds: attacks are never guaranteed, never impossible.
const (
	MinSuccessProbability = 0.05
	MaxSuccessProbability = 0.95
)

// clampProbability bounds p to [MinSuccessProbability, MaxSuccessProbability].
func clampProbability(p float64) float64 {
	if p < MinSuccessProbability {
		return MinSuccessProbability
	}
	if p > MaxSuccessProbability {
		return MaxSuccessProbability
	}
	return p
}

// supportsType reports whether t appears in types.
func supportsType(types []ActionType, t ActionType) bool {
	for _, st := range types {
		if st == t {
			return true
		}
	}
	return false
}

// effectiveDistance returns the actor-to-target distance after applying the
// environment's distance modifier. A zero modifier means no adjustment.
func effectiveDistance(req Request) float64 {
	if req.Actor == nil || req.Target == nil {
		return 0
	}
	d := req.Actor.DistanceTo(req.Target)
	if req.Context != nil && req.Context.Env.DistanceModifier > 0 {
		d *= req.Context.Env.DistanceModifier
	}
	return d
}
