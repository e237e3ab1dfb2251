package combat

import (
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/shared"
	"github.com/KirkDiggler/dnd-combat-sim/internal/events"
)

// BeginTurn resets the action economy and emits begin_turn
func (e *Entity) BeginTurn(target *Entity, round int) error {
	e.currentRound = round
	e.Actions = 1
	e.UsedBonus = false

	return e.bus.Emit(&TurnEvent{
		Type:   events.EventBeginTurn,
		Actor:  e,
		Target: target,
		Round:  round,
	})
}

// EndTurn emits end_turn
func (e *Entity) EndTurn(target *Entity) error {
	return e.bus.Emit(&TurnEvent{
		Type:   events.EventEndTurn,
		Actor:  e,
		Target: target,
		Round:  e.currentRound,
	})
}

// Turn runs the full turn lifecycle: begin_turn, before_action, the action
// loop, after_action, end_turn, then a full turn for each minion. Each action
// emission decrements the counter afterward; an ability that granted an
// extra action during dispatch is re-observed by the loop.
func (e *Entity) Turn(target *Entity, round int) error {
	if err := e.BeginTurn(target, round); err != nil {
		return err
	}

	if err := e.emitTurn(events.EventBeforeAction, target); err != nil {
		return err
	}

	for e.Actions > 0 {
		if err := e.emitTurn(events.EventAction, target); err != nil {
			return err
		}
		e.Actions--
	}

	if err := e.emitTurn(events.EventAfterAction, target); err != nil {
		return err
	}

	if err := e.EndTurn(target); err != nil {
		return err
	}

	for _, minion := range e.Minions {
		if err := minion.Turn(target, round); err != nil {
			return err
		}
	}

	return nil
}

// EnemyTurn fires the out-of-band reaction hook once per opponent turn
func (e *Entity) EnemyTurn(enemy *Entity) error {
	return e.bus.Emit(&TurnEvent{
		Type:   events.EventEnemyTurn,
		Actor:  e,
		Target: enemy,
		Round:  e.currentRound,
	})
}

// ShortRest clears transient conditions and emits short_rest; short-rest
// resources and pact slots refill through their listeners.
func (e *Entity) ShortRest() error {
	e.clearTransientConditions()

	return e.bus.Emit(&RestEvent{Type: events.EventShortRest, Actor: e})
}

// LongRest restores full HP, clears the damage log, and runs a short rest
// before emitting long_rest. Long rests are a superset of short rests.
func (e *Entity) LongRest() error {
	e.HP = e.MaxHP
	e.damageTaken = 0
	e.damageBySource = make(map[string]int)

	if err := e.ShortRest(); err != nil {
		return err
	}

	return e.bus.Emit(&RestEvent{Type: events.EventLongRest, Actor: e})
}

func (e *Entity) clearTransientConditions() {
	for _, c := range []shared.Condition{
		shared.ConditionStunned,
		shared.ConditionProne,
		shared.ConditionGrappled,
		shared.ConditionPoisoned,
		shared.ConditionSemistunned,
	} {
		e.ClearCondition(c)
	}
}

func (e *Entity) emitTurn(eventType events.EventType, target *Entity) error {
	return e.bus.Emit(&TurnEvent{
		Type:   eventType,
		Actor:  e,
		Target: target,
		Round:  e.currentRound,
	})
}
