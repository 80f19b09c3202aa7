package combat_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/gunmetal-games/skirmish/internal/game/combat"
	"github.com/gunmetal-games/skirmish/internal/game/participant"
	"github.com/gunmetal-games/skirmish/internal/rng"
)

// newShooter returns an attacker with weapon skill 60 and a loaded pistol,
// standing 5 units from the origin target position.
func newShooter() *participant.Participant {
	p := participant.New("shooter", "Vance", 40, 10)
	p.Equipped = &participant.WeaponProfile{
		Name:       "10mm Pistol",
		Range:      25,
		BaseDamage: 12,
		AmmoType:   "10mm",
		Skill:      "small_guns",
	}
	p.SetSkill("small_guns", 60)
	p.AddItem("10mm", 6)
	p.Pos = participant.Position{X: 5, Y: 0}
	return p
}

func newMark() *participant.Participant {
	p := participant.New("mark", "Raider", 30, 8)
	p.Defense = 20
	return p
}

func attackRequest(src rng.Source, lighting combat.Lighting, weather combat.Weather) combat.Request {
	return combat.Request{
		Actor:  newShooter(),
		Target: newMark(),
		Action: combat.Action{Type: combat.ActionAttack, TargetID: "mark"},
		Context: &combat.Context{
			Turn: 1,
			Env:  combat.Environment{Lighting: lighting, Weather: weather},
			Rand: src,
		},
	}
}

// Scenario from the design doc: skill 60, defense 20, bright/clear gives
// probability (60+10-20)/100 = 0.50; an RNG roll of 0.1 hits.
func TestAttack_BrightClearProbability(t *testing.T) {
	s := combat.NewAttackStrategy()
	req := attackRequest(rng.Sequence(0.1, 0.5), combat.LightingBright, combat.WeatherClear)

	assert.InDelta(t, 0.50, s.SuccessProbability(req), 1e-9)

	result, err := s.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 4, result.APCost)
	// variance draw 0.5 -> variance 1.0 -> damage floor(12*1.0) = 12
	assert.Equal(t, 12, result.Damage)
	assert.Contains(t, result.Message, "Vance")
	assert.Contains(t, result.Message, "Raider")
	assert.Contains(t, result.Message, "10mm Pistol")
}

// Scenario: dark/storm contributes -20-10 = -30, so probability is
// max(0.05, (60-30-20)/100) = 0.10.
func TestAttack_DarkStormProbability(t *testing.T) {
	s := combat.NewAttackStrategy()
	req := attackRequest(rng.Sequence(0.5), combat.LightingDark, combat.WeatherStorm)
	assert.InDelta(t, 0.10, s.SuccessProbability(req), 1e-9)
}

func TestAttack_MissYieldsZeroDamage(t *testing.T) {
	s := combat.NewAttackStrategy()
	req := attackRequest(rng.Sequence(0.94), combat.LightingBright, combat.WeatherClear)

	result, err := s.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 0, result.Damage)
	assert.Equal(t, 4, result.APCost, "a swing that misses still costs AP")
	assert.Contains(t, result.Message, "misses")
}

func TestAttack_AimedShotCostsMore(t *testing.T) {
	s := combat.NewAttackStrategy()
	req := attackRequest(rng.Sequence(0.1, 0.5), combat.LightingNormal, combat.WeatherClear)
	req.Action.Type = combat.ActionAimedShot
	assert.Equal(t, 6, s.ActionRequirements(req).APCost)

	req.Action.Type = combat.ActionAttack
	assert.Equal(t, 4, s.ActionRequirements(req).APCost)
}

func TestAttack_BurstFireRequiresThreeRounds(t *testing.T) {
	s := combat.NewAttackStrategy()
	req := attackRequest(rng.Sequence(0.1, 0.5), combat.LightingNormal, combat.WeatherClear)
	req.Action.Type = combat.ActionBurstFire

	reqs := s.ActionRequirements(req)
	assert.Equal(t, 5, reqs.APCost)
	assert.Equal(t, "10mm", reqs.AmmoType)
	assert.Equal(t, 3, reqs.AmmoCount)

	// Burst takes an extra -10 accuracy: (60+0-20-10)/100 = 0.30.
	assert.InDelta(t, 0.30, s.SuccessProbability(req), 1e-9)
}

func TestAttack_AccuracyModifiersAdded(t *testing.T) {
	s := combat.NewAttackStrategy()
	req := attackRequest(rng.Sequence(0.1), combat.LightingBright, combat.WeatherClear)
	req.Context.Modifiers = []combat.Modifier{
		{ID: "scope", Name: "Scope", Attributes: []string{combat.AttrAccuracy}, Value: 15, Kind: combat.ModifierBonus, Duration: -1},
		{ID: "smoke", Name: "Smoke", Attributes: []string{combat.AttrAccuracy}, Value: -5, Kind: combat.ModifierPenalty, Duration: 2},
		{ID: "slow", Name: "Slow", Attributes: []string{"speed"}, Value: -50, Kind: combat.ModifierPenalty, Duration: 1},
	}
	// (60+10-20+15-5)/100 = 0.60; the speed modifier is ignored.
	assert.InDelta(t, 0.60, s.SuccessProbability(req), 1e-9)
}

func TestAttack_CanPerform_OutOfRange(t *testing.T) {
	s := combat.NewAttackStrategy()
	req := attackRequest(rng.Sequence(0.1), combat.LightingNormal, combat.WeatherClear)
	req.Actor.Pos = participant.Position{X: 100, Y: 0}
	assert.False(t, s.CanPerform(req))
}

// Melee weapons can carry fractional reach (a knife's 1.5 units); the range
// band must honor it exactly.
func TestAttack_CanPerform_FractionalMeleeRange(t *testing.T) {
	s := combat.NewAttackStrategy()
	req := attackRequest(rng.Sequence(0.1), combat.LightingNormal, combat.WeatherClear)
	req.Actor.Equipped = &participant.WeaponProfile{
		Name:       "Combat Knife",
		Range:      1.5,
		BaseDamage: 8,
		Skill:      "melee",
	}
	req.Actor.SetSkill("melee", 60)

	req.Actor.Pos = participant.Position{X: 1.2, Y: 0}
	assert.True(t, s.CanPerform(req))

	req.Actor.Pos = participant.Position{X: 2.0, Y: 0}
	assert.False(t, s.CanPerform(req))
}

func TestAttack_CanPerform_NoAmmo(t *testing.T) {
	s := combat.NewAttackStrategy()
	req := attackRequest(rng.Sequence(0.1), combat.LightingNormal, combat.WeatherClear)
	require.True(t, req.Actor.ConsumeItem("10mm", 6))
	assert.False(t, s.CanPerform(req))
}

func TestAttack_CanPerform_InsufficientAP(t *testing.T) {
	s := combat.NewAttackStrategy()
	req := attackRequest(rng.Sequence(0.1), combat.LightingNormal, combat.WeatherClear)
	require.True(t, req.Actor.SpendAP(8))
	assert.False(t, s.CanPerform(req))
}

func TestAttack_ExecuteDoesNotMutateParticipants(t *testing.T) {
	s := combat.NewAttackStrategy()
	req := attackRequest(rng.Sequence(0.1, 0.5), combat.LightingBright, combat.WeatherClear)

	apBefore := req.Actor.AP
	ammoBefore := req.Actor.ItemCount("10mm")
	hpBefore := req.Target.HP

	result, err := s.Execute(context.Background(), req)
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.Equal(t, apBefore, req.Actor.AP, "Execute must not deduct AP")
	assert.Equal(t, ammoBefore, req.Actor.ItemCount("10mm"), "Execute must not consume ammo")
	assert.Equal(t, hpBefore, req.Target.HP, "Execute must not apply damage")
}

func TestAttack_FailedPreconditionCostsNothing(t *testing.T) {
	s := combat.NewAttackStrategy()
	req := attackRequest(rng.Sequence(0.1), combat.LightingNormal, combat.WeatherClear)
	req.Target.TakeDamage(1000) // dead target

	result, err := s.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 0, result.APCost)
	assert.Equal(t, 0, result.Damage)
}

// TestPropertyAttack_ProbabilityAlwaysClamped verifies that no combination of
// skill, defense, environment, and modifiers escapes [0.05, 0.95].
func TestPropertyAttack_ProbabilityAlwaysClamped(t *testing.T) {
	s := combat.NewAttackStrategy()
	lightings := []combat.Lighting{combat.LightingBright, combat.LightingNormal, combat.LightingDim, combat.LightingDark}
	weathers := []combat.Weather{combat.WeatherClear, combat.WeatherRain, combat.WeatherFog, combat.WeatherStorm}

	rapid.Check(t, func(rt *rapid.T) {
		req := attackRequest(rng.Sequence(0.5),
			lightings[rapid.IntRange(0, 3).Draw(rt, "lighting")],
			weathers[rapid.IntRange(0, 3).Draw(rt, "weather")],
		)
		req.Actor.SetSkill("small_guns", rapid.IntRange(0, 100).Draw(rt, "skill"))
		req.Target.Defense = rapid.IntRange(0, 100).Draw(rt, "defense")
		mods := rapid.IntRange(0, 4).Draw(rt, "mods")
		for i := 0; i < mods; i++ {
			req.Context.Modifiers = append(req.Context.Modifiers, combat.Modifier{
				ID:         "m",
				Attributes: []string{combat.AttrAccuracy},
				Value:      float64(rapid.IntRange(-200, 200).Draw(rt, "value")),
				Kind:       combat.ModifierBonus,
				Duration:   -1,
			})
		}

		p := s.SuccessProbability(req)
		assert.GreaterOrEqual(rt, p, combat.MinSuccessProbability)
		assert.LessOrEqual(rt, p, combat.MaxSuccessProbability)
	})
}

// TestPropertyAttack_DamageWithinVarianceBounds verifies that successful hits
// always land within the [0.8, 1.2] variance band of base damage.
func TestPropertyAttack_DamageWithinVarianceBounds(t *testing.T) {
	s := combat.NewAttackStrategy()
	rapid.Check(t, func(rt *rapid.T) {
		varianceDraw := rapid.Float64Range(0, 0.999999).Draw(rt, "variance_draw")
		req := attackRequest(rng.Sequence(0.01, varianceDraw), combat.LightingBright, combat.WeatherClear)

		result, err := s.Execute(context.Background(), req)
		require.NoError(rt, err)
		require.True(rt, result.Success)

		base := 12.0
		assert.GreaterOrEqual(rt, float64(result.Damage), base*0.8-1)
		assert.LessOrEqual(rt, float64(result.Damage), base*1.2)
	})
}
