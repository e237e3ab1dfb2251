package combat_test

import (
	"testing"

	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/combat"
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/shared"
	"github.com/KirkDiggler/dnd-combat-sim/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCombatant(t *testing.T, name string) *combat.Entity {
	t.Helper()

	e, err := combat.NewEntity(combat.Config{Name: name, Level: 1})
	require.NoError(t, err)
	return e
}

func TestTurn_LifecycleOrder(t *testing.T) {
	e := newCombatant(t, "Fighter")

	var seen []events.EventType
	record := func(event events.Event) error {
		seen = append(seen, event.EventType())
		return nil
	}
	e.Bus().Register(&hookListener{
		id: "recorder",
		types: []events.EventType{
			events.EventBeginTurn,
			events.EventBeforeAction,
			events.EventAction,
			events.EventAfterAction,
			events.EventEndTurn,
		},
		handle: record,
	})

	require.NoError(t, e.Turn(nil, 1))

	assert.Equal(t, []events.EventType{
		events.EventBeginTurn,
		events.EventBeforeAction,
		events.EventAction,
		events.EventAfterAction,
		events.EventEndTurn,
	}, seen)
}

func TestTurn_ExtraActionRunsActionTwice(t *testing.T) {
	e := newCombatant(t, "Fighter")

	actions := 0
	e.Bus().Register(&hookListener{
		id:    "counter",
		types: []events.EventType{events.EventAction},
		handle: func(event events.Event) error {
			actions++
			return nil
		},
	})
	e.Bus().Register(&hookListener{
		id:    "surge",
		types: []events.EventType{events.EventBeforeAction},
		handle: func(event events.Event) error {
			event.(*combat.TurnEvent).Actor.Actions++
			return nil
		},
	})

	require.NoError(t, e.Turn(nil, 1))
	assert.Equal(t, 2, actions)

	// the grant does not carry into the next turn
	actions = 0
	e.Bus().Unregister("surge")
	require.NoError(t, e.Turn(nil, 2))
	assert.Equal(t, 1, actions)
}

func TestTurn_ActionGrantedDuringActionIsObserved(t *testing.T) {
	e := newCombatant(t, "Fighter")

	actions := 0
	e.Bus().Register(&hookListener{
		id:    "haste-once",
		types: []events.EventType{events.EventAction},
		handle: func(event events.Event) error {
			actions++
			if actions == 1 {
				event.(*combat.TurnEvent).Actor.Actions++
			}
			return nil
		},
	})

	require.NoError(t, e.Turn(nil, 1))
	assert.Equal(t, 2, actions)
}

func TestTurn_MinionsActAfterOwner(t *testing.T) {
	owner := newCombatant(t, "Necromancer")
	minion := newCombatant(t, "Skeleton")
	owner.AddMinion(minion)

	var order []string
	track := func(name string, e *combat.Entity) {
		e.Bus().Register(&hookListener{
			id:    "tracker",
			types: []events.EventType{events.EventAction},
			handle: func(event events.Event) error {
				order = append(order, name)
				return nil
			},
		})
	}
	track("owner", owner)
	track("minion", minion)

	require.NoError(t, owner.Turn(nil, 1))
	assert.Equal(t, []string{"owner", "minion"}, order)
}

func TestEnemyTurn_FiresReactionHook(t *testing.T) {
	e := newCombatant(t, "Warlock")
	enemy := newCombatant(t, "Orc")

	var reacted *combat.TurnEvent
	e.Bus().Register(&hookListener{
		id:    "reaction",
		types: []events.EventType{events.EventEnemyTurn},
		handle: func(event events.Event) error {
			reacted = event.(*combat.TurnEvent)
			return nil
		},
	})

	require.NoError(t, e.EnemyTurn(enemy))
	require.NotNil(t, reacted)
	assert.Same(t, enemy, reacted.Target)
}

func TestShortRest_RefillsShortRestResource(t *testing.T) {
	e := newCombatant(t, "Fighter")
	require.NoError(t, e.AddResource(combat.ResourceConfig{
		Name:  "Action Surge",
		Max:   1,
		Reset: combat.ResetShortRest,
	}))

	require.True(t, e.Resource("Action Surge").Use(1))
	assert.False(t, e.Resource("Action Surge").Use(1), "no second use without a rest")

	require.NoError(t, e.ShortRest())
	assert.True(t, e.Resource("Action Surge").Has(1))
}

func TestShortRest_ClearsTransientConditions(t *testing.T) {
	e := newCombatant(t, "Fighter")
	e.SetCondition(shared.ConditionPoisoned)
	e.SetCondition(shared.ConditionProne)

	require.NoError(t, e.ShortRest())

	assert.False(t, e.HasCondition(shared.ConditionPoisoned))
	assert.False(t, e.HasCondition(shared.ConditionProne))
}

func TestLongRest_RestoresEverything(t *testing.T) {
	e := newCombatant(t, "Fighter")
	require.NoError(t, e.AddResource(combat.ResourceConfig{
		Name:  "Second Wind",
		Max:   1,
		Reset: combat.ResetLongRest,
	}))

	e.ApplyDamage(8, shared.DamageSlashing, "Greataxe")
	require.True(t, e.Resource("Second Wind").Use(1))

	require.NoError(t, e.LongRest())

	assert.Equal(t, e.MaxHP, e.HP)
	assert.Equal(t, 0, e.TotalDamageTaken())
	assert.Empty(t, e.DamageBySource())
	assert.True(t, e.Resource("Second Wind").Has(1))
}
