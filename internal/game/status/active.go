package status

import "fmt"

// ActiveStatus tracks one applied status effect on an entity.
type ActiveStatus struct {
	Def               *StatusDef
	Stacks            int
	DurationRemaining int // -1 = permanent
}

// ActiveSet tracks all status effects currently applied to one participant.
// It is not safe for concurrent use; the caller must serialise access.
type ActiveSet struct {
	statuses map[string]*ActiveStatus
}

// NewActiveSet creates an empty ActiveSet.
func NewActiveSet() *ActiveSet {
	return &ActiveSet{statuses: make(map[string]*ActiveStatus)}
}

// Apply adds or updates a status on this entity.
// If the status is already present, stacks are incremented (capped at
// MaxStacks). If MaxStacks == 0 (unstackable), stacks is always stored as 1.
// duration is rounds remaining; use -1 for permanent.
//
// Precondition: def must not be nil.
// Postcondition: Has(def.ID) is true; stacks are incremented on re-apply
// (capped at MaxStacks); DurationRemaining is updated to
// max(existing, duration) on re-apply.
func (s *ActiveSet) Apply(def *StatusDef, stacks, duration int) error {
	if def == nil {
		return fmt.Errorf("Apply: def must not be nil")
	}

	if existing, ok := s.statuses[def.ID]; ok {
		if def.MaxStacks == 0 {
			// unstackable: stacks stays at 1; extend duration if longer
			if duration > existing.DurationRemaining {
				existing.DurationRemaining = duration
			}
			return nil
		}
		newStacks := existing.Stacks + stacks
		if newStacks > def.MaxStacks {
			newStacks = def.MaxStacks
		}
		existing.Stacks = newStacks
		if duration > existing.DurationRemaining {
			existing.DurationRemaining = duration
		}
		return nil
	}

	effectiveStacks := stacks
	if def.MaxStacks == 0 {
		effectiveStacks = 1
	}
	capped := effectiveStacks
	if def.MaxStacks > 0 && capped > def.MaxStacks {
		capped = def.MaxStacks
	}
	s.statuses[def.ID] = &ActiveStatus{
		Def:               def,
		Stacks:            capped,
		DurationRemaining: duration,
	}
	return nil
}

// Remove deletes the status with the given ID from the set.
// If the status is not present, Remove is a no-op.
//
// Postcondition: Has(id) is false.
func (s *ActiveSet) Remove(id string) {
	delete(s.statuses, id)
}

// Tick decrements the DurationRemaining of all "rounds"-type statuses by 1.
// Statuses that reach 0 are removed. Permanent statuses
// (DurationRemaining == -1) are not affected.
//
// Postcondition: For every id in the returned slice, Has(id) is false.
func (s *ActiveSet) Tick() []string {
	var expired []string
	// Deleting map entries during range iteration is safe per the Go specification.
	for id, as := range s.statuses {
		if as.Def.DurationType != "rounds" || as.DurationRemaining < 0 {
			continue
		}
		as.DurationRemaining--
		if as.DurationRemaining <= 0 {
			expired = append(expired, id)
			delete(s.statuses, id)
		}
	}
	return expired
}

// Has reports whether the status with id is currently active.
func (s *ActiveSet) Has(id string) bool {
	_, ok := s.statuses[id]
	return ok
}

// Stacks returns the current stack count for status id, or 0 if not present.
func (s *ActiveSet) Stacks(id string) int {
	if as, ok := s.statuses[id]; ok {
		return as.Stacks
	}
	return 0
}

// All returns a slice of pointers to the active statuses.
// The slice itself is a new allocation, but the pointed-to ActiveStatus
// values are shared; callers must not modify them.
func (s *ActiveSet) All() []*ActiveStatus {
	out := make([]*ActiveStatus, 0, len(s.statuses))
	for _, as := range s.statuses {
		out = append(out, as)
	}
	return out
}
