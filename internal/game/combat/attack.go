package combat

import (
	"context"
	"fmt"
	"math"
)

// Action point costs for the attack family.
const (
	attackAPCost    = 4
	aimedShotAPCost = 6
	burstFireAPCost = 5
)

// Burst fire trades accuracy for volume: three rounds, a flat accuracy
// penalty, and doubled base damage.
const (
	burstAmmoCount       = 3
	burstAccuracyPenalty = -10
	burstDamageFactor    = 2
)

// Damage variance bounds: every hit's damage is scaled by a uniform draw
// from [varianceMin, varianceMax] so outcomes are never deterministic.
const (
	varianceMin = 0.8
	varianceMax = 1.2
)

// AttackStrategy resolves basic attacks, aimed shots, and burst fire.
//
// Success probability = (weapon skill + environment accuracy modifier
// - target defense + accuracy modifiers) / 100, clamped to
// [MinSuccessProbability, MaxSuccessProbability].
type AttackStrategy struct{}

// NewAttackStrategy returns the built-in attack strategy.
func NewAttackStrategy() *AttackStrategy {
	return &AttackStrategy{}
}

// SupportedTypes returns the attack-family action types.
func (s *AttackStrategy) SupportedTypes() []ActionType {
	return []ActionType{ActionAttack, ActionAimedShot, ActionBurstFire}
}

// CanHandle reports whether the request is an attack-family action with an
// actor present.
func (s *AttackStrategy) CanHandle(req Request) bool {
	return req.Actor != nil && supportsType(s.SupportedTypes(), req.Action.Type)
}

// ActionRequirements returns AP cost, weapon range bounds, and ammunition
// needs for the requested attack variant. Unarmed weapons require no
// ammunition.
func (s *AttackStrategy) ActionRequirements(req Request) Requirements {
	w := req.Actor.Weapon()

	r := Requirements{
		MinRange: 1,
		MaxRange: w.Range,
		AmmoType: w.AmmoType,
	}
	switch req.Action.Type {
	case ActionAimedShot:
		r.APCost = aimedShotAPCost
	case ActionBurstFire:
		r.APCost = burstFireAPCost
	default:
		r.APCost = attackAPCost
	}
	if w.AmmoType != "" {
		r.AmmoCount = 1
		if req.Action.Type == ActionBurstFire {
			r.AmmoCount = burstAmmoCount
		}
	}
	return r
}

// CanPerform checks the full attack preconditions: living actor with enough
// AP, living target within the weapon's range band, and sufficient
// ammunition.
func (s *AttackStrategy) CanPerform(req Request) bool {
	if req.Actor == nil || !req.Actor.IsAlive() {
		return false
	}
	if req.Target == nil || !req.Target.IsAlive() {
		return false
	}
	reqs := s.ActionRequirements(req)
	if req.Actor.AP < reqs.APCost {
		return false
	}
	dist := effectiveDistance(req)
	if dist < reqs.MinRange || dist > reqs.MaxRange {
		return false
	}
	if reqs.AmmoType != "" && req.Actor.ItemCount(reqs.AmmoType) < reqs.AmmoCount {
		return false
	}
	return true
}

// SuccessProbability computes the clamped hit chance for the request.
//
// Postcondition: MinSuccessProbability <= result <= MaxSuccessProbability.
func (s *AttackStrategy) SuccessProbability(req Request) float64 {
	w := req.Actor.Weapon()
	skill := float64(req.Actor.Skill(w.Skill))

	env := 0.0
	accuracy := 0.0
	if req.Context != nil {
		env = float64(req.Context.Env.AccuracyModifier())
		accuracy = req.Context.AccuracyBonus()
	}

	defense := 0.0
	if req.Target != nil {
		defense = float64(req.Target.DefenseValue())
	}

	total := skill + env - defense + accuracy
	if req.Action.Type == ActionBurstFire {
		total += burstAccuracyPenalty
	}
	return clampProbability(total / 100)
}

// Execute resolves the attack. Preconditions are re-validated; a failing
// precondition yields an unsuccessful Result with zero AP cost rather than
// an error. On a hit, damage = floor((base damage + damage bonus) * variance)
// with variance drawn uniformly from [0.8, 1.2); burst fire doubles the base
// damage before variance. The actor, target, and inventory are not mutated —
// the caller applies Damage, APCost, and ammunition from the Result.
func (s *AttackStrategy) Execute(_ context.Context, req Request) (*Result, error) {
	if !s.CanPerform(req) {
		return &Result{
			Success: false,
			Message: fmt.Sprintf("%s cannot %s.", req.Actor.Name, req.Action.Type),
		}, nil
	}

	w := req.Actor.Weapon()
	reqs := s.ActionRequirements(req)
	prob := s.SuccessProbability(req)

	roll := req.Context.Rand.Float64()
	success := roll < prob
	critical := success && roll < prob/5

	result := &Result{
		Success:  success,
		Critical: critical,
		APCost:   reqs.APCost,
		Metadata: map[string]any{
			"probability": prob,
			"roll":        roll,
		},
	}

	if !success {
		result.Message = fmt.Sprintf("%s misses %s with %s.", req.Actor.Name, req.Target.Name, w.Name)
		return result, nil
	}

	variance := varianceMin + req.Context.Rand.Float64()*(varianceMax-varianceMin)
	base := w.BaseDamage + w.DamageBonus
	if req.Action.Type == ActionBurstFire {
		base *= burstDamageFactor
	}
	result.Damage = int(math.Floor(float64(base) * variance))
	result.Metadata["variance"] = variance

	if critical {
		result.Message = fmt.Sprintf("%s critically hits %s with %s for %d damage!",
			req.Actor.Name, req.Target.Name, w.Name, result.Damage)
	} else {
		result.Message = fmt.Sprintf("%s hits %s with %s for %d damage.",
			req.Actor.Name, req.Target.Name, w.Name, result.Damage)
	}
	return result, nil
}
