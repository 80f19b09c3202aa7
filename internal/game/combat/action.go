// Package combat implements the action-resolution engine: immutable action
// and context descriptors, the polymorphic strategy contract, the built-in
// attack/heal/reload/defend strategies, and the ordered strategy registry
// that dispatches incoming actions to exactly one strategy.
package combat

import "github.com/gunmetal-games/skirmish/internal/game/participant"

// ActionType identifies what a participant intends to do.
// The zero value (ActionUnknown) is intentionally invalid.
type ActionType int

const (
	ActionUnknown ActionType = iota // zero value; intentionally invalid
	ActionAttack
	ActionAimedShot
	ActionBurstFire
	ActionUseItem
	ActionMove
	ActionReload
	ActionThrowGrenade
	ActionUseSkill
	ActionDefend
	ActionRunAway
)

// String returns the human-readable name of the ActionType.
func (a ActionType) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionAimedShot:
		return "aimed shot"
	case ActionBurstFire:
		return "burst fire"
	case ActionUseItem:
		return "use item"
	case ActionMove:
		return "move"
	case ActionReload:
		return "reload"
	case ActionThrowGrenade:
		return "throw grenade"
	case ActionUseSkill:
		return "use skill"
	case ActionDefend:
		return "defend"
	case ActionRunAway:
		return "run away"
	default:
		return "unknown"
	}
}

// ItemKindHealing marks a use-item action as consuming a healing item.
const ItemKindHealing = "healing"

// Action is the immutable descriptor of one attempted action. Exactly one
// Action is constructed per resolution call; it is never mutated afterwards.
type Action struct {
	Type ActionType

	// TargetID names the intended target entity, if any.
	TargetID string
	// TargetPos is the intended target coordinate for movement-style
	// actions; nil otherwise.
	TargetPos *participant.Position

	// Payload fields; which are meaningful depends on Type.
	ItemID      string
	ItemKind    string
	EffectValue int
	WeaponID    string
	SkillID     string
	Params      map[string]any
}
