package combat

import (
	"context"
	"fmt"
)

// SkillFirstAid is the participant skill that boosts healing-item potency.
const SkillFirstAid = "first_aid"

const (
	healAPCost = 3
	// defaultHealEffect is the heal amount when the item carries no
	// configured effect value.
	defaultHealEffect = 25
	// healSuccessProbability is reported for previews. Execute does not
	// consult it: healing items always work once their preconditions hold.
	healSuccessProbability = 0.9
)

// HealStrategy resolves item-use actions flagged as healing. Healing is
// self-targeted (range 0) and always succeeds; the heal amount is the item's
// effect value plus a tenth of the actor's first-aid skill.
type HealStrategy struct{}

// NewHealStrategy returns the built-in healing strategy.
func NewHealStrategy() *HealStrategy {
	return &HealStrategy{}
}

// SupportedTypes returns the item-use action type.
func (s *HealStrategy) SupportedTypes() []ActionType {
	return []ActionType{ActionUseItem}
}

// CanHandle reports whether the request is a healing item use.
func (s *HealStrategy) CanHandle(req Request) bool {
	return req.Actor != nil &&
		req.Action.Type == ActionUseItem &&
		req.Action.ItemKind == ItemKindHealing
}

// ActionRequirements returns the healing requirements. AmmoType carries the
// item id so the caller decrements inventory the same way it does for
// ammunition.
func (s *HealStrategy) ActionRequirements(req Request) Requirements {
	r := Requirements{APCost: healAPCost}
	if req.Action.ItemID != "" {
		r.AmmoType = req.Action.ItemID
		r.AmmoCount = 1
	}
	return r
}

// CanPerform checks that the actor is alive, holds enough AP, holds the item,
// and is not targeting someone else (healing is self-use only).
func (s *HealStrategy) CanPerform(req Request) bool {
	if req.Actor == nil || !req.Actor.IsAlive() {
		return false
	}
	if req.Target != nil && req.Target != req.Actor {
		return false
	}
	reqs := s.ActionRequirements(req)
	if req.Actor.AP < reqs.APCost {
		return false
	}
	if reqs.AmmoType != "" && req.Actor.ItemCount(reqs.AmmoType) < reqs.AmmoCount {
		return false
	}
	return true
}

// SuccessProbability returns the fixed healing success chance. This value is
// preview-only; Execute always succeeds.
func (s *HealStrategy) SuccessProbability(Request) float64 {
	return healSuccessProbability
}

// Execute resolves the heal. The heal amount is reported as negative damage;
// the caller applies it to the actor and deducts APCost. Healing never
// fails once preconditions hold — the fixed probability exists for previews
// only.
func (s *HealStrategy) Execute(_ context.Context, req Request) (*Result, error) {
	if !s.CanPerform(req) {
		return &Result{
			Success: false,
			Message: fmt.Sprintf("%s cannot use that item.", req.Actor.Name),
		}, nil
	}

	effect := req.Action.EffectValue
	if effect <= 0 {
		effect = defaultHealEffect
	}
	amount := effect + req.Actor.Skill(SkillFirstAid)/10

	item := req.Action.ItemID
	if item == "" {
		item = "a healing item"
	}

	return &Result{
		Success: true,
		Damage:  -amount,
		APCost:  healAPCost,
		Message: fmt.Sprintf("%s uses %s and recovers %d health.", req.Actor.Name, item, amount),
		Metadata: map[string]any{
			"heal_amount": amount,
		},
	}, nil
}
