package combat

import (
	"context"
	"fmt"
)

const (
	reloadAPCost = 2
	// magazineRounds is the number of loose rounds a magazine restores.
	magazineRounds = 12
	// magazineSuffix turns an ammo type into its magazine item id,
	// e.g. "10mm" -> "10mm_mag".
	magazineSuffix = "_mag"
)

// ReloadStrategy converts one magazine item into loose rounds of the
// equipped weapon's ammunition type. The rounds are reported via Result
// metadata; the caller credits them to the actor's inventory.
type ReloadStrategy struct{}

// NewReloadStrategy returns the built-in reload strategy.
func NewReloadStrategy() *ReloadStrategy {
	return &ReloadStrategy{}
}

// SupportedTypes returns the reload action type.
func (s *ReloadStrategy) SupportedTypes() []ActionType {
	return []ActionType{ActionReload}
}

// CanHandle reports whether the request is a reload with an actor present.
func (s *ReloadStrategy) CanHandle(req Request) bool {
	return req.Actor != nil && req.Action.Type == ActionReload
}

// ActionRequirements returns the reload requirements: one magazine item for
// the equipped weapon's ammunition type.
func (s *ReloadStrategy) ActionRequirements(req Request) Requirements {
	r := Requirements{APCost: reloadAPCost}
	if ammo := req.Actor.Weapon().AmmoType; ammo != "" {
		r.AmmoType = ammo + magazineSuffix
		r.AmmoCount = 1
	}
	return r
}

// CanPerform checks that the actor is alive, the weapon takes ammunition,
// and a magazine is held.
func (s *ReloadStrategy) CanPerform(req Request) bool {
	if req.Actor == nil || !req.Actor.IsAlive() {
		return false
	}
	if req.Actor.Weapon().AmmoType == "" {
		return false
	}
	reqs := s.ActionRequirements(req)
	if req.Actor.AP < reqs.APCost {
		return false
	}
	return req.Actor.ItemCount(reqs.AmmoType) >= reqs.AmmoCount
}

// SuccessProbability reports certainty: reloading cannot fail once its
// preconditions hold.
func (s *ReloadStrategy) SuccessProbability(Request) float64 { return 1.0 }

// Execute resolves the reload. Metadata carries the ammunition type and the
// number of rounds restored for the caller to credit.
func (s *ReloadStrategy) Execute(_ context.Context, req Request) (*Result, error) {
	if !s.CanPerform(req) {
		return &Result{
			Success: false,
			Message: fmt.Sprintf("%s cannot reload.", req.Actor.Name),
		}, nil
	}

	w := req.Actor.Weapon()
	return &Result{
		Success: true,
		APCost:  reloadAPCost,
		Message: fmt.Sprintf("%s reloads the %s.", req.Actor.Name, w.Name),
		Metadata: map[string]any{
			"ammo_type":       w.AmmoType,
			"rounds_restored": magazineRounds,
		},
	}, nil
}
