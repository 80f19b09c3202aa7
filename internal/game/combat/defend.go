package combat

import (
	"context"
	"fmt"
)

const defendAPCost = 1

// StatusDefending is the status-effect name applied by a defend action.
const StatusDefending = "defending"

// DefendStrategy resolves the defend action: cheap, always successful, and
// reported through AppliedEffects so the caller adds the defending status.
type DefendStrategy struct{}

// NewDefendStrategy returns the built-in defend strategy.
func NewDefendStrategy() *DefendStrategy {
	return &DefendStrategy{}
}

// SupportedTypes returns the defend action type.
func (s *DefendStrategy) SupportedTypes() []ActionType {
	return []ActionType{ActionDefend}
}

// CanHandle reports whether the request is a defend with an actor present.
func (s *DefendStrategy) CanHandle(req Request) bool {
	return req.Actor != nil && req.Action.Type == ActionDefend
}

// ActionRequirements returns the defend requirements.
func (s *DefendStrategy) ActionRequirements(Request) Requirements {
	return Requirements{APCost: defendAPCost}
}

// CanPerform checks that the actor is alive and holds enough AP.
func (s *DefendStrategy) CanPerform(req Request) bool {
	return req.Actor != nil && req.Actor.IsAlive() && req.Actor.AP >= defendAPCost
}

// SuccessProbability reports certainty: defending cannot fail.
func (s *DefendStrategy) SuccessProbability(Request) float64 { return 1.0 }

// Execute resolves the defend action, listing the defending status for the
// caller to apply.
func (s *DefendStrategy) Execute(_ context.Context, req Request) (*Result, error) {
	if !s.CanPerform(req) {
		return &Result{
			Success: false,
			Message: fmt.Sprintf("%s cannot defend.", req.Actor.Name),
		}, nil
	}
	return &Result{
		Success:        true,
		APCost:         defendAPCost,
		AppliedEffects: []string{StatusDefending},
		Message:        fmt.Sprintf("%s takes a defensive stance.", req.Actor.Name),
	}, nil
}
