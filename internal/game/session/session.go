// Package session drives one combat encounter: initiative-ordered turns,
// action-point restoration, action resolution through the strategy registry,
// application of results to participants, and victory-condition evaluation.
// Sessions are single-threaded by design: only one action is ever in flight
// for a given session, and participants are mutated in place.
package session

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/gunmetal-games/skirmish/internal/game/combat"
	"github.com/gunmetal-games/skirmish/internal/game/event"
	"github.com/gunmetal-games/skirmish/internal/game/participant"
	"github.com/gunmetal-games/skirmish/internal/game/status"
	"github.com/gunmetal-games/skirmish/internal/rng"
)

// SkillAgility is the participant skill contributing to initiative.
const SkillAgility = "agility"

// initiativeDie is the size of the uniform initiative roll added to the
// agility skill.
const initiativeDie = 20

// TurnEntry is one slot in the initiative order.
type TurnEntry struct {
	ParticipantID string
	Initiative    int
	CurrentAP     int
	MaxAP         int
}

// Session tracks the live state of one combat encounter.
type Session struct {
	// ID is the session's unique identifier.
	ID string
	// Turn is the current round number, starting at 1 and incrementing
	// each time the initiative order wraps around.
	Turn int

	order       []TurnEntry
	activeIndex int

	participants map[string]*participant.Participant
	roster       []string

	active    bool
	startedAt time.Time
	endedAt   time.Time

	registry   *combat.Registry
	bus        *event.Bus
	statuses   *status.Registry
	effects    map[string]*status.ActiveSet
	conditions []VictoryCondition
	src        rng.Source
}

// New creates a Session, rolls initiative for every participant
// (agility skill + uniform roll), and sorts the turn order descending.
// statuses resolves applied effect names to their timed definitions; pass
// nil when no status content is loaded and effects stay as bare names.
//
// Precondition: registry, bus, and src must be non-nil; fighters must have
// at least two entries with distinct ids.
// Postcondition: the session is active, Turn == 1, and the first living
// participant is the active entry.
func New(registry *combat.Registry, bus *event.Bus, statuses *status.Registry, fighters []*participant.Participant, conditions []VictoryCondition, src rng.Source) (*Session, error) {
	if len(fighters) < 2 {
		return nil, fmt.Errorf("session: need at least 2 participants, got %d", len(fighters))
	}
	if statuses == nil {
		statuses = status.NewRegistry()
	}

	s := &Session{
		ID:           uuid.New().String(),
		Turn:         1,
		participants: make(map[string]*participant.Participant, len(fighters)),
		active:       true,
		startedAt:    time.Now(),
		registry:     registry,
		bus:          bus,
		statuses:     statuses,
		effects:      make(map[string]*status.ActiveSet, len(fighters)),
		conditions:   conditions,
		src:          src,
	}

	for _, f := range fighters {
		if _, exists := s.participants[f.ID]; exists {
			return nil, fmt.Errorf("session: duplicate participant id %q", f.ID)
		}
		s.participants[f.ID] = f
		s.effects[f.ID] = status.NewActiveSet()
		s.roster = append(s.roster, f.ID)
		s.order = append(s.order, TurnEntry{
			ParticipantID: f.ID,
			Initiative:    f.Skill(SkillAgility) + int(src.Float64()*initiativeDie) + 1,
			CurrentAP:     f.AP,
			MaxAP:         f.MaxAP,
		})
	}

	sort.SliceStable(s.order, func(i, j int) bool {
		return s.order[i].Initiative > s.order[j].Initiative
	})
	return s, nil
}

// IsActive reports whether the session is still running.
func (s *Session) IsActive() bool { return s.active }

// StartedAt returns the session start timestamp.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// EndedAt returns the session end timestamp; zero while active.
func (s *Session) EndedAt() time.Time { return s.endedAt }

// Roster returns the participant ids in join order.
func (s *Session) Roster() []string {
	out := make([]string, len(s.roster))
	copy(out, s.roster)
	return out
}

// TurnOrder returns a copy of the initiative-ordered entries.
func (s *Session) TurnOrder() []TurnEntry {
	out := make([]TurnEntry, len(s.order))
	copy(out, s.order)
	return out
}

// Participant returns the participant with the given id.
func (s *Session) Participant(id string) (*participant.Participant, bool) {
	p, ok := s.participants[id]
	return p, ok
}

// Effects returns the timed status effects active on the participant with
// the given id, or nil for an unknown id.
func (s *Session) Effects(id string) *status.ActiveSet {
	return s.effects[id]
}

// Current returns the participant whose turn it is, skipping dead entries.
//
// Postcondition: returns a living participant, or (nil, false) when none
// remain.
func (s *Session) Current() (*participant.Participant, bool) {
	for range s.order {
		p := s.participants[s.order[s.activeIndex].ParticipantID]
		if p.IsAlive() {
			return p, true
		}
		s.activeIndex = (s.activeIndex + 1) % len(s.order)
	}
	return nil, false
}

// Begin restores the first actor's action points and announces their turn.
// Call once after New, before the first action.
func (s *Session) Begin(ctx context.Context) {
	if p, ok := s.Current(); ok {
		s.beginTurnFor(ctx, p)
	}
}

// AdvanceTurn moves to the next living participant in initiative order,
// restoring their action points and dispatching a turn.started event.
// Passing the top of the order ends the round: the round counter
// increments, timed status effects tick down, and victory conditions are
// re-evaluated (survive-N-turns fires here). The round boundary is detected
// while scanning for the next living participant, so dead entries at the
// tail of the order never swallow a round.
//
// Postcondition: returns the new active participant, or (nil, false) when
// the session has ended or no living participants remain.
func (s *Session) AdvanceTurn(ctx context.Context) (*participant.Participant, bool) {
	if !s.active {
		return nil, false
	}

	for i := 1; i <= len(s.order); i++ {
		idx := (s.activeIndex + i) % len(s.order)
		if idx == 0 {
			s.endRound(ctx)
			if !s.active {
				return nil, false
			}
		}
		p := s.participants[s.order[idx].ParticipantID]
		if !p.IsAlive() {
			continue
		}
		s.activeIndex = idx
		s.beginTurnFor(ctx, p)
		return p, true
	}
	return nil, false
}

// endRound increments the round counter, expires timed status effects, and
// re-evaluates victory conditions.
func (s *Session) endRound(ctx context.Context) {
	s.Turn++
	for id, set := range s.effects {
		for _, expired := range set.Tick() {
			s.participants[id].RemoveStatus(expired)
		}
	}
	s.checkVictory(ctx)
}

// beginTurnFor restores p's AP to maximum, less any reduction from active
// status effects, and announces the turn.
func (s *Session) beginTurnFor(ctx context.Context, p *participant.Participant) {
	before := p.AP
	p.RestoreAP(p.MaxAP - p.AP)
	if cut := status.APReduction(s.effects[p.ID]); cut > 0 {
		if cut > p.AP {
			cut = p.AP
		}
		p.SpendAP(cut)
	}
	s.syncEntry(p)

	s.bus.Dispatch(ctx, event.TypeTurnStarted, event.TurnStarted{
		SessionID:     s.ID,
		Turn:          s.Turn,
		ParticipantID: p.ID,
		RestoredAP:    p.AP - before,
	}, s.ID)
}

// ResolveAction runs one action for the current actor through the strategy
// registry and applies the Result: AP deduction, ammunition/item
// consumption, damage or healing, applied statuses, and restored rounds.
// Active status effects participate twice: an effect that restricts the
// action type blocks it outright, and accuracy and defense penalties are
// folded into the combat context as modifiers before the strategy runs.
// Events are dispatched for the execution and any damage dealt, then
// victory conditions are evaluated.
//
// Postcondition: returns the Result, or combat.ErrNoStrategy when no
// registered strategy handles the action; the caller must treat that as a
// distinct outcome from a failed precondition (Success == false).
func (s *Session) ResolveAction(ctx context.Context, action combat.Action, cctx *combat.Context) (*combat.Result, error) {
	if !s.active {
		return nil, fmt.Errorf("session %s: combat has ended", s.ID)
	}
	actor, ok := s.Current()
	if !ok {
		return nil, fmt.Errorf("session %s: no living participants", s.ID)
	}

	if status.IsActionRestricted(s.effects[actor.ID], action.Type.String()) {
		return &combat.Result{
			Success: false,
			Message: fmt.Sprintf("%s cannot %s in their condition.", actor.Name, action.Type),
		}, nil
	}

	req := combat.Request{
		Actor:   actor,
		Action:  action,
		Context: s.contextWithEffects(cctx, actor, action.TargetID),
	}
	if action.TargetID != "" {
		req.Target = s.participants[action.TargetID]
	}

	strategy, found := s.registry.StrategyFor(req)
	if !found {
		return nil, combat.ErrNoStrategy
	}

	result, err := strategy.Execute(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("session %s: executing %s: %w", s.ID, action.Type, err)
	}

	s.apply(ctx, strategy, req, result)

	s.bus.Dispatch(ctx, event.TypeActionExecuted, event.ActionExecuted{
		SessionID:  s.ID,
		Turn:       s.Turn,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		TargetID:   action.TargetID,
		ActionType: action.Type.String(),
		Success:    result.Success,
		Critical:   result.Critical,
		Damage:     result.Damage,
		APCost:     result.APCost,
		Message:    result.Message,
	}, s.ID)

	s.checkVictory(ctx)
	return result, nil
}

// contextWithEffects returns cctx extended with the modifiers derived from
// active status effects: the actor's accuracy penalties, and a bonus
// offsetting whatever defense the target has lost to its own effects. The
// caller's context and modifier slice are never mutated.
func (s *Session) contextWithEffects(cctx *combat.Context, actor *participant.Participant, targetID string) *combat.Context {
	statusMods := status.AccuracyModifiers(s.effects[actor.ID])
	defenseLost := 0
	if targetID != "" {
		defenseLost = -status.DefenseBonus(s.effects[targetID])
	}
	if len(statusMods) == 0 && defenseLost == 0 {
		return cctx
	}

	eff := *cctx
	eff.Modifiers = make([]combat.Modifier, 0, len(cctx.Modifiers)+len(statusMods)+1)
	eff.Modifiers = append(eff.Modifiers, cctx.Modifiers...)
	eff.Modifiers = append(eff.Modifiers, statusMods...)
	if defenseLost > 0 {
		eff.Modifiers = append(eff.Modifiers, combat.Modifier{
			ID:         "target_defense_lost",
			Name:       "Weakened defense",
			Attributes: []string{combat.AttrAccuracy},
			Value:      float64(defenseLost),
			Kind:       combat.ModifierBonus,
			Duration:   -1,
		})
	}
	return &eff
}

// apply mutates participants according to the Result. Strategies are pure;
// this is the single place outcomes take effect.
func (s *Session) apply(ctx context.Context, strategy combat.Strategy, req combat.Request, result *combat.Result) {
	actor := req.Actor

	if result.APCost > 0 {
		actor.SpendAP(result.APCost)

		// The attempt happened, so consumables are spent hit or miss.
		reqs := strategy.ActionRequirements(req)
		if reqs.AmmoType != "" && reqs.AmmoCount > 0 {
			actor.ConsumeItem(reqs.AmmoType, reqs.AmmoCount)
		}
	}

	if result.Damage > 0 && req.Target != nil {
		req.Target.TakeDamage(result.Damage)
		s.syncEntry(req.Target)
		s.bus.Dispatch(ctx, event.TypeDamageDealt, event.DamageDealt{
			SessionID: s.ID,
			SourceID:  actor.ID,
			TargetID:  req.Target.ID,
			Amount:    result.Damage,
			TargetHP:  req.Target.HP,
			Fatal:     !req.Target.IsAlive(),
		}, s.ID)
	} else if result.Damage < 0 {
		heal := -result.Damage
		actor.Heal(heal)
		s.bus.Dispatch(ctx, event.TypeDamageDealt, event.DamageDealt{
			SessionID: s.ID,
			SourceID:  actor.ID,
			TargetID:  actor.ID,
			Amount:    result.Damage,
			TargetHP:  actor.HP,
		}, s.ID)
	}

	for _, effect := range result.AppliedEffects {
		actor.AddStatus(effect)
		if def, ok := s.statuses.Get(effect); ok {
			_ = s.effects[actor.ID].Apply(def, 1, def.DefaultDuration())
		}
	}

	if rounds, ok := result.Metadata["rounds_restored"].(int); ok && rounds > 0 {
		if ammo, ok := result.Metadata["ammo_type"].(string); ok && ammo != "" {
			actor.AddItem(ammo, rounds)
		}
	}

	s.syncEntry(actor)
}

// syncEntry mirrors a participant's current AP into their turn-order entry.
func (s *Session) syncEntry(p *participant.Participant) {
	for i := range s.order {
		if s.order[i].ParticipantID == p.ID {
			s.order[i].CurrentAP = p.AP
			return
		}
	}
}

// checkVictory evaluates all conditions and ends the session on the first
// satisfied one, dispatching combat.ended exactly once.
func (s *Session) checkVictory(ctx context.Context) {
	if !s.active {
		return
	}
	for _, c := range s.conditions {
		if !c.Check(s) {
			continue
		}
		s.active = false
		s.endedAt = time.Now()
		s.bus.Dispatch(ctx, event.TypeCombatEnded, event.CombatEnded{
			SessionID: s.ID,
			Turns:     s.Turn,
			Condition: c.Name(),
		}, s.ID)
		return
	}
}
