package combat

// Result is the outcome of one resolved action. Produced once per resolution
// and never mutated afterwards. Strategies do not apply the outcome: the
// caller is responsible for applying Damage to the target, deducting APCost
// from the actor, and adding AppliedEffects as statuses.
type Result struct {
	// Success reports whether the action achieved its intent. A miss is
	// Success == false, not an error.
	Success bool
	// Damage dealt to the target; negative values denote healing.
	Damage int
	// Message is the human-readable narration of the outcome.
	Message string
	// AppliedEffects lists status-effect names the caller should add to
	// the actor or target.
	AppliedEffects []string
	// APCost is the action-point cost the caller must deduct from the
	// actor. Zero when the action never got off the ground.
	APCost int
	// Critical marks an exceptional success.
	Critical bool
	// Metadata carries strategy-specific extras (rolls, probabilities,
	// restored ammunition).
	Metadata map[string]any
}
