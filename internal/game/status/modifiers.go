package status

import "github.com/gunmetal-games/skirmish/internal/game/combat"

// AccuracyModifiers converts the accuracy-affecting active statuses into
// combat modifiers. For stackable statuses the penalty is multiplied by the
// current stack count.
//
// Postcondition: every returned modifier affects the accuracy attribute and
// has Value <= 0.
func AccuracyModifiers(s *ActiveSet) []combat.Modifier {
	var out []combat.Modifier
	for _, as := range s.statuses {
		if as.Def.AccuracyPenalty <= 0 {
			continue
		}
		out = append(out, combat.Modifier{
			ID:         as.Def.ID,
			Name:       as.Def.Name,
			Attributes: []string{combat.AttrAccuracy},
			Value:      float64(-as.Def.AccuracyPenalty * as.Stacks),
			Kind:       combat.ModifierPenalty,
			Duration:   as.DurationRemaining,
		})
	}
	return out
}

// DefenseBonus returns the net defense modifier from all active statuses.
// For stackable statuses, the penalty is multiplied by the current stack
// count.
//
// Postcondition: Returns <= 0.
func DefenseBonus(s *ActiveSet) int {
	total := 0
	for _, as := range s.statuses {
		if as.Def.DefensePenalty > 0 {
			total -= as.Def.DefensePenalty * as.Stacks
		}
	}
	return total
}

// APReduction returns the number of action points to subtract at the start
// of a turn due to active statuses.
//
// Postcondition: Returns >= 0.
func APReduction(s *ActiveSet) int {
	total := 0
	for _, as := range s.statuses {
		if as.Def.APPenalty > 0 {
			total += as.Def.APPenalty * as.Stacks
		}
	}
	return total
}

// IsActionRestricted reports whether the given action type string is blocked
// by any active status's RestrictActions list.
func IsActionRestricted(s *ActiveSet, actionType string) bool {
	for _, as := range s.statuses {
		for _, r := range as.Def.RestrictActions {
			if r == actionType {
				return true
			}
		}
	}
	return false
}
