package participant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/gunmetal-games/skirmish/internal/game/participant"
)

func raider() *participant.Participant {
	return participant.New("raider-1", "Raider", 50, 10)
}

func TestTakeDamage_FloorsAtZero(t *testing.T) {
	p := raider()
	p.TakeDamage(80)
	assert.Equal(t, 0, p.HP)
	assert.False(t, p.IsAlive())
}

func TestTakeDamage_NonPositiveIsNoOp(t *testing.T) {
	p := raider()
	p.TakeDamage(0)
	p.TakeDamage(-5)
	assert.Equal(t, 50, p.HP)
}

func TestHeal_CapsAtMax(t *testing.T) {
	p := raider()
	p.TakeDamage(30)
	p.Heal(100)
	assert.Equal(t, 50, p.HP)
}

func TestSpendAP_InsufficientLeavesUnchanged(t *testing.T) {
	p := raider()
	ok := p.SpendAP(11)
	assert.False(t, ok)
	assert.Equal(t, 10, p.AP)
}

func TestSpendAP_DeductsOnSuccess(t *testing.T) {
	p := raider()
	ok := p.SpendAP(4)
	assert.True(t, ok)
	assert.Equal(t, 6, p.AP)
}

func TestRestoreAP_CapsAtMax(t *testing.T) {
	p := raider()
	p.SpendAP(6)
	p.RestoreAP(100)
	assert.Equal(t, 10, p.AP)
}

func TestCanAct_RequiresAliveConsciousAndAP(t *testing.T) {
	p := raider()
	assert.True(t, p.CanAct())

	p.AddStatus(participant.StatusUnconscious)
	assert.False(t, p.CanAct(), "unconscious participants cannot act")

	p.RemoveStatus(participant.StatusUnconscious)
	p.SpendAP(10)
	assert.False(t, p.CanAct(), "zero AP participants cannot act")

	p.RestoreAP(1)
	p.TakeDamage(50)
	assert.False(t, p.CanAct(), "dead participants cannot act")
}

func TestStatus_AddIsIdempotent(t *testing.T) {
	p := raider()
	p.AddStatus("poisoned")
	p.AddStatus("poisoned")
	assert.Len(t, p.Statuses(), 1)
	assert.True(t, p.HasStatus("poisoned"))
}

func TestStatus_RemoveAbsentIsNoOp(t *testing.T) {
	p := raider()
	p.AddStatus("poisoned")
	p.RemoveStatus("blinded")
	assert.Len(t, p.Statuses(), 1)
}

func TestConsumeItem_InsufficientLeavesUnchanged(t *testing.T) {
	p := raider()
	p.AddItem("9mm", 2)
	assert.False(t, p.ConsumeItem("9mm", 3))
	assert.Equal(t, 2, p.ItemCount("9mm"))
}

func TestConsumeItem_Deducts(t *testing.T) {
	p := raider()
	p.AddItem("9mm", 5)
	assert.True(t, p.ConsumeItem("9mm", 3))
	assert.Equal(t, 2, p.ItemCount("9mm"))
}

func TestWeapon_UnarmedBaseline(t *testing.T) {
	p := raider()
	w := p.Weapon()
	assert.Equal(t, participant.UnarmedName, w.Name)
	assert.Equal(t, participant.UnarmedRange, w.Range)
	assert.IsType(t, float64(0), w.Range, "weapon range supports fractional melee reach")
	assert.Equal(t, participant.UnarmedDamage, w.BaseDamage)
}

func TestWeapon_EquippedOverridesBaseline(t *testing.T) {
	p := raider()
	p.Equipped = &participant.WeaponProfile{Name: "10mm Pistol", Range: 25, BaseDamage: 12, AmmoType: "10mm"}
	assert.Equal(t, "10mm Pistol", p.Weapon().Name)
}

func TestDistanceTo_Euclidean(t *testing.T) {
	a := raider()
	b := participant.New("b", "B", 10, 10)
	a.Pos = participant.Position{X: 0, Y: 0}
	b.Pos = participant.Position{X: 3, Y: 4}
	assert.InDelta(t, 5.0, a.DistanceTo(b), 1e-9)
}

func TestSetSkill_Clamps(t *testing.T) {
	p := raider()
	p.SetSkill("small_guns", 120)
	assert.Equal(t, 100, p.Skill("small_guns"))
	p.SetSkill("small_guns", -10)
	assert.Equal(t, 0, p.Skill("small_guns"))
	assert.Equal(t, 0, p.Skill("untrained"))
}

// TestPropertyHP_AlwaysInBounds verifies that any interleaving of damage and
// healing keeps HP within [0, MaxHP].
func TestPropertyHP_AlwaysInBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxHP := rapid.IntRange(1, 200).Draw(rt, "max_hp")
		p := participant.New("p", "P", maxHP, 10)
		ops := rapid.IntRange(1, 50).Draw(rt, "ops")
		for i := 0; i < ops; i++ {
			amount := rapid.IntRange(-20, 100).Draw(rt, "amount")
			if rapid.Bool().Draw(rt, "heal") {
				p.Heal(amount)
			} else {
				p.TakeDamage(amount)
			}
			assert.GreaterOrEqual(rt, p.HP, 0)
			assert.LessOrEqual(rt, p.HP, maxHP)
		}
	})
}

// TestPropertyAP_AlwaysInBounds verifies that any interleaving of SpendAP and
// RestoreAP keeps AP within [0, MaxAP] and SpendAP never overdraws.
func TestPropertyAP_AlwaysInBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxAP := rapid.IntRange(1, 20).Draw(rt, "max_ap")
		p := participant.New("p", "P", 10, maxAP)
		ops := rapid.IntRange(1, 50).Draw(rt, "ops")
		for i := 0; i < ops; i++ {
			amount := rapid.IntRange(0, 30).Draw(rt, "amount")
			if rapid.Bool().Draw(rt, "restore") {
				p.RestoreAP(amount)
			} else {
				before := p.AP
				ok := p.SpendAP(amount)
				if amount > before {
					assert.False(rt, ok, "SpendAP must fail when amount exceeds current AP")
					assert.Equal(rt, before, p.AP)
				}
			}
			assert.GreaterOrEqual(rt, p.AP, 0)
			assert.LessOrEqual(rt, p.AP, maxAP)
		}
	})
}
