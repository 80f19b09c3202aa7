// Package participant defines the mutable state holder for one combat actor:
// health, action points, skills, status effects, inventory, and position.
// Participants are mutated in place and are not safe for concurrent use; the
// single-threaded session scheduling model serialises all access.
package participant

import "math"

// StatusUnconscious is the status-effect name that suppresses CanAct.
const StatusUnconscious = "unconscious"

// Default unarmed weapon baseline. Real weapons are equipped by setting
// Participant.Equipped; these values are the fallback seam.
const (
	UnarmedName           = "Fists"
	UnarmedRange  float64 = 10
	UnarmedDamage         = 10
	UnarmedSkill          = "unarmed"
)

// Position is a 2-D coordinate in combat space.
type Position struct {
	X float64
	Y float64
}

// WeaponProfile describes the combat-relevant attributes of an equipped
// weapon. The data layer (enemy/weapon services) supplies these values; this
// core treats them as opaque inputs.
type WeaponProfile struct {
	Name        string
	Range       float64
	BaseDamage  int
	DamageBonus int
	AmmoType    string
	// Skill names the participant skill governing attacks with this weapon.
	Skill string
}

// Participant is one actor in a combat session.
//
// Invariants: 0 <= HP <= MaxHP and 0 <= AP <= MaxAP at all times.
// Skill values are in [0, 100]. Inventory counts are never negative.
type Participant struct {
	ID   string
	Name string

	HP    int
	MaxHP int

	AP    int
	MaxAP int

	// Defense is the flat defense value subtracted from attack probability.
	Defense int

	// Equipped is the current weapon, or nil for unarmed.
	Equipped *WeaponProfile

	Pos Position

	skills    map[string]int
	statuses  map[string]bool
	inventory map[string]int
}

// New creates a Participant at full health and action points.
//
// Precondition: id and name must be non-empty; maxHP and maxAP must be >= 0.
// Postcondition: HP == MaxHP, AP == MaxAP, no skills, statuses, or items.
func New(id, name string, maxHP, maxAP int) *Participant {
	return &Participant{
		ID:        id,
		Name:      name,
		HP:        maxHP,
		MaxHP:     maxHP,
		AP:        maxAP,
		MaxAP:     maxAP,
		skills:    make(map[string]int),
		statuses:  make(map[string]bool),
		inventory: make(map[string]int),
	}
}

// TakeDamage reduces HP by amount, flooring at zero. Amounts <= 0 are a
// no-op rather than an error.
//
// Postcondition: 0 <= HP <= MaxHP; HP is unchanged when amount <= 0.
func (p *Participant) TakeDamage(amount int) {
	if amount <= 0 {
		return
	}
	p.HP -= amount
	if p.HP < 0 {
		p.HP = 0
	}
}

// Heal raises HP by amount, capped at MaxHP. Amounts <= 0 are a no-op.
//
// Postcondition: 0 <= HP <= MaxHP.
func (p *Participant) Heal(amount int) {
	if amount <= 0 {
		return
	}
	p.HP += amount
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
}

// SpendAP deducts amount action points if available.
//
// Postcondition: returns true and AP is reduced by amount when amount <= AP;
// otherwise returns false and AP is unchanged. AP >= 0 always.
func (p *Participant) SpendAP(amount int) bool {
	if amount > p.AP {
		return false
	}
	p.AP -= amount
	return true
}

// RestoreAP raises AP by amount, capped at MaxAP. Amounts <= 0 are a no-op.
//
// Postcondition: 0 <= AP <= MaxAP.
func (p *Participant) RestoreAP(amount int) {
	if amount <= 0 {
		return
	}
	p.AP += amount
	if p.AP > p.MaxAP {
		p.AP = p.MaxAP
	}
}

// IsAlive reports whether the participant has health remaining.
//
// Postcondition: returns true iff HP > 0.
func (p *Participant) IsAlive() bool { return p.HP > 0 }

// CanAct reports whether the participant may take an action this turn:
// alive, conscious, and holding at least one action point.
func (p *Participant) CanAct() bool {
	return p.IsAlive() && !p.HasStatus(StatusUnconscious) && p.AP > 0
}

// AddStatus applies a status effect. Adding an already-present effect is a
// no-op; the status set never holds duplicates.
func (p *Participant) AddStatus(name string) {
	p.statuses[name] = true
}

// RemoveStatus clears a status effect. Removing an absent effect is a no-op.
func (p *Participant) RemoveStatus(name string) {
	delete(p.statuses, name)
}

// HasStatus reports whether the named status effect is active.
func (p *Participant) HasStatus(name string) bool {
	return p.statuses[name]
}

// Statuses returns the active status-effect names in unspecified order.
// The slice is a new allocation.
func (p *Participant) Statuses() []string {
	out := make([]string, 0, len(p.statuses))
	for name := range p.statuses {
		out = append(out, name)
	}
	return out
}

// SetSkill records a skill value, clamped to [0, 100].
func (p *Participant) SetSkill(name string, value int) {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	p.skills[name] = value
}

// Skill returns the value for the named skill, or 0 if untrained.
func (p *Participant) Skill(name string) int {
	return p.skills[name]
}

// AddItem increases the inventory count for name by n.
//
// Precondition: n must be >= 0.
func (p *Participant) AddItem(name string, n int) {
	if n <= 0 {
		return
	}
	p.inventory[name] += n
}

// ItemCount returns the held count for name, or 0 when absent.
func (p *Participant) ItemCount(name string) int {
	return p.inventory[name]
}

// ConsumeItem removes n units of name from the inventory.
//
// Postcondition: returns true and the count is reduced when n units are held;
// otherwise returns false and the inventory is unchanged. Counts never go
// negative.
func (p *Participant) ConsumeItem(name string, n int) bool {
	if n <= 0 {
		return true
	}
	if p.inventory[name] < n {
		return false
	}
	p.inventory[name] -= n
	if p.inventory[name] == 0 {
		delete(p.inventory, name)
	}
	return true
}

// Weapon returns the equipped weapon, or the unarmed baseline when nothing
// is equipped.
//
// Postcondition: the returned profile is never nil.
func (p *Participant) Weapon() *WeaponProfile {
	if p.Equipped != nil {
		return p.Equipped
	}
	return &WeaponProfile{
		Name:       UnarmedName,
		Range:      UnarmedRange,
		BaseDamage: UnarmedDamage,
		Skill:      UnarmedSkill,
	}
}

// DefenseValue returns the participant's flat defense value.
func (p *Participant) DefenseValue() int { return p.Defense }

// DistanceTo returns the Euclidean distance between two participants'
// positions.
//
// Postcondition: returns >= 0.
func (p *Participant) DistanceTo(other *Participant) float64 {
	dx := p.Pos.X - other.Pos.X
	dy := p.Pos.Y - other.Pos.Y
	return math.Sqrt(dx*dx + dy*dy)
}
