package session

// VictoryCondition is a polymorphic predicate over session state, evaluated
// after every resolved action.
type VictoryCondition interface {
	// Name labels the condition in events and logs.
	Name() string
	// Check reports whether the condition is satisfied.
	Check(s *Session) bool
}

// eliminateAll is satisfied when every listed participant is dead.
type eliminateAll struct {
	name    string
	targets []string
}

// NewEliminateAll returns a condition satisfied once all target participants
// are dead.
//
// Precondition: targets must be non-empty.
func NewEliminateAll(name string, targets []string) VictoryCondition {
	return &eliminateAll{name: name, targets: targets}
}

func (c *eliminateAll) Name() string { return c.name }

func (c *eliminateAll) Check(s *Session) bool {
	for _, id := range c.targets {
		p, ok := s.Participant(id)
		if !ok {
			continue
		}
		if p.IsAlive() {
			return false
		}
	}
	return true
}

// surviveTurns is satisfied once the session reaches the given turn count.
type surviveTurns struct {
	name  string
	turns int
}

// NewSurviveTurns returns a condition satisfied when the session's turn
// counter reaches turns.
//
// Precondition: turns must be >= 1.
func NewSurviveTurns(name string, turns int) VictoryCondition {
	return &surviveTurns{name: name, turns: turns}
}

func (c *surviveTurns) Name() string { return c.name }

func (c *surviveTurns) Check(s *Session) bool {
	return s.Turn >= c.turns
}

// reachPosition is satisfied when a participant is within tolerance of a
// goal coordinate.
type reachPosition struct {
	name          string
	participantID string
	x, y          float64
	tolerance     float64
}

// NewReachPosition returns a condition satisfied when the named participant
// is alive and within tolerance of (x, y).
func NewReachPosition(name, participantID string, x, y, tolerance float64) VictoryCondition {
	return &reachPosition{name: name, participantID: participantID, x: x, y: y, tolerance: tolerance}
}

func (c *reachPosition) Name() string { return c.name }

func (c *reachPosition) Check(s *Session) bool {
	p, ok := s.Participant(c.participantID)
	if !ok || !p.IsAlive() {
		return false
	}
	dx := p.Pos.X - c.x
	dy := p.Pos.Y - c.y
	return dx*dx+dy*dy <= c.tolerance*c.tolerance
}

// ConditionFunc adapts a named predicate function to VictoryCondition for
// custom win conditions.
type ConditionFunc struct {
	ConditionName string
	Fn            func(s *Session) bool
}

// Name returns the condition's label.
func (c *ConditionFunc) Name() string { return c.ConditionName }

// Check invokes the wrapped predicate.
func (c *ConditionFunc) Check(s *Session) bool { return c.Fn(s) }
