package event

// Combat and system event types carried on the bus. Payload envelopes below
// are plain data so observers never need the combat packages to decode them.
const (
	TypeActionExecuted      = "combat.action_executed"
	TypeDamageDealt         = "combat.damage_dealt"
	TypeTurnStarted         = "combat.turn_started"
	TypeCombatEnded         = "combat.combat_ended"
	TypeExtensionRegistered = "extension.registered"
	TypeSystemInitialized   = "system.initialized"
	TypeSystemShutdown      = "system.shutdown"
)

// ActionExecuted is dispatched after every resolved action, hit or miss.
type ActionExecuted struct {
	SessionID  string
	Turn       int
	ActorID    string
	ActorName  string
	TargetID   string
	ActionType string
	Success    bool
	Critical   bool
	Damage     int
	APCost     int
	Message    string
}

// DamageDealt is dispatched when an action result applies damage or healing
// to a participant. Negative Amount denotes healing.
type DamageDealt struct {
	SessionID string
	SourceID  string
	TargetID  string
	Amount    int
	TargetHP  int
	Fatal     bool
}

// TurnStarted is dispatched when a participant's turn begins, after their
// action points are restored.
type TurnStarted struct {
	SessionID     string
	Turn          int
	ParticipantID string
	RestoredAP    int
}

// CombatEnded is dispatched once, when a victory condition first fires.
type CombatEnded struct {
	SessionID string
	Turns     int
	Condition string
}

// ExtensionRegistered is dispatched for every successful extension
// registration.
type ExtensionRegistered struct {
	RegistrationID string
	PointID        string
	PointType      string
}
