package combat_test

import (
	"testing"

	mockdice "github.com/KirkDiggler/dnd-combat-sim/internal/dice/mock"
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/combat"
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/shared"
	"github.com/KirkDiggler/dnd-combat-sim/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAttacker(t *testing.T, roller *mockdice.ManualMockRoller) *combat.Entity {
	t.Helper()

	e, err := combat.NewEntity(combat.Config{
		Name:   "Fighter",
		Level:  1,
		Str:    16,
		Prof:   2,
		Roller: roller,
	})
	require.NoError(t, err)
	return e
}

func newTarget(t *testing.T) *combat.Entity {
	t.Helper()

	e, err := combat.NewEntity(combat.Config{
		Name:  "Dummy",
		Level: 1,
		AC:    15,
		HP:    50,
	})
	require.NoError(t, err)
	return e
}

func greatsword() *combat.Weapon {
	return &combat.Weapon{
		Name:       "Greatsword",
		Dice:       []int{6, 6},
		DamageType: shared.DamageSlashing,
	}
}

func TestAttack_HitAppliesWeaponDamage(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	attacker := newAttacker(t, roller)
	target := newTarget(t)

	// d20 10 + 5 to hit meets AC 15; damage 3+4 plus str mod
	roller.SetRolls([]int{10, 2, 3, 4})

	require.NoError(t, attacker.WeaponAttackTarget(target, greatsword()))

	assert.Equal(t, 10, target.TotalDamageTaken())
	assert.Equal(t, 10, target.DamageBySource()["Greatsword"])
}

func TestAttack_MissDealsNothingButStillReportsResult(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	attacker := newAttacker(t, roller)
	target := newTarget(t)

	var result *combat.AttackResultEvent
	attacker.Bus().Register(&hookListener{
		id:    "observer",
		types: []events.EventType{events.EventAttackResult},
		handle: func(event events.Event) error {
			result = event.(*combat.AttackResultEvent)
			return nil
		},
	})

	// d20 9 + 5 to hit falls short of AC 15
	roller.SetRolls([]int{9, 2})

	require.NoError(t, attacker.WeaponAttackTarget(target, greatsword()))

	assert.Equal(t, 0, target.TotalDamageTaken())
	require.NotNil(t, result, "result dispatch runs on misses too")
	assert.True(t, result.Misses())
	assert.Empty(t, result.DamageRoll)
}

func TestAttack_CritDoublesDiceNotFlat(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	attacker := newAttacker(t, roller)
	target := newTarget(t)

	// natural 20, then base dice 3+4, then the crit's extra pair 5+6
	roller.SetRolls([]int{20, 2, 3, 4, 5, 6})

	require.NoError(t, attacker.WeaponAttackTarget(target, greatsword()))

	// 3+4+5+6 dice plus str mod 3, once
	assert.Equal(t, 21, target.TotalDamageTaken())
}

func TestAttack_NaturalTwentyStillChecksAC(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	attacker := newAttacker(t, roller)
	target := newTarget(t)
	target.AC = 30

	roller.SetRolls([]int{20, 2, 3, 4, 5, 6})

	var result *combat.AttackResultEvent
	attacker.Bus().Register(&hookListener{
		id:    "observer",
		types: []events.EventType{events.EventAttackResult},
		handle: func(event events.Event) error {
			result = event.(*combat.AttackResultEvent)
			return nil
		},
	})

	require.NoError(t, attacker.WeaponAttackTarget(target, greatsword()))

	require.NotNil(t, result)
	assert.True(t, result.Crit)
	assert.False(t, result.Hit, "a crit does not bypass the armor class check")
	assert.Equal(t, 0, target.TotalDamageTaken())
}

func TestAttack_AdvantageFromStunnedTarget(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	attacker := newAttacker(t, roller)
	target := newTarget(t)
	target.SetCondition(shared.ConditionStunned)

	// first die low, second high; advantage picks the 18
	roller.SetRolls([]int{3, 18, 3, 4})

	require.NoError(t, attacker.WeaponAttackTarget(target, greatsword()))

	assert.Equal(t, 10, target.TotalDamageTaken())
}

func TestAttack_PoisonedAndStunnedCancel(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	attacker := newAttacker(t, roller)
	target := newTarget(t)

	attacker.SetCondition(shared.ConditionPoisoned)
	target.SetCondition(shared.ConditionStunned)

	// cancellation falls back to the first die: 3+5 misses AC 15
	roller.SetRolls([]int{3, 18})

	require.NoError(t, attacker.WeaponAttackTarget(target, greatsword()))

	assert.Equal(t, 0, target.TotalDamageTaken())
}

func TestAttack_ProneTarget(t *testing.T) {
	tests := []struct {
		name       string
		ranged     bool
		wantDamage int
	}{
		{
			// melee vs prone has advantage, the 17 hits
			name:       "melee gains advantage",
			ranged:     false,
			wantDamage: 10,
		},
		{
			// ranged vs prone has disadvantage, stuck with the 3
			name:       "ranged suffers disadvantage",
			ranged:     true,
			wantDamage: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := mockdice.NewManualMockRoller()
			attacker := newAttacker(t, roller)
			target := newTarget(t)
			target.SetCondition(shared.ConditionProne)

			weapon := greatsword()
			weapon.Ranged = tt.ranged

			roller.SetRolls([]int{3, 17, 3, 4})

			require.NoError(t, attacker.WeaponAttackTarget(target, weapon))
			assert.Equal(t, tt.wantDamage, target.TotalDamageTaken())
		})
	}
}

func TestAttack_SemistunnedGrantsOneAttackOnly(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	attacker := newAttacker(t, roller)
	target := newTarget(t)
	target.SetCondition(shared.ConditionSemistunned)

	// first attack: advantage picks 17 and hits
	roller.SetRolls([]int{3, 17, 3, 4})
	require.NoError(t, attacker.WeaponAttackTarget(target, greatsword()))
	require.Equal(t, 10, target.TotalDamageTaken())
	assert.False(t, target.HasCondition(shared.ConditionSemistunned))

	// second attack: the opening is spent, the 3 misses
	roller.SetRolls([]int{3, 17})
	require.NoError(t, attacker.WeaponAttackTarget(target, greatsword()))
	assert.Equal(t, 10, target.TotalDamageTaken())
}

func TestAttack_ListenerCritThreshold(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	attacker := newAttacker(t, roller)
	target := newTarget(t)

	attacker.Bus().Register(&hookListener{
		id:    "improved-critical",
		types: []events.EventType{events.EventAttackRoll},
		handle: func(event events.Event) error {
			event.(*combat.AttackRollEvent).ProposeCritThreshold(19)
			return nil
		},
	})

	// a 19 now crits: base 3+4 plus extra 5+6 plus str mod
	roller.SetRolls([]int{19, 2, 3, 4, 5, 6})

	require.NoError(t, attacker.WeaponAttackTarget(target, greatsword()))
	assert.Equal(t, 21, target.TotalDamageTaken())
}

func TestAttack_WeaponCritThreshold(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	attacker := newAttacker(t, roller)
	target := newTarget(t)

	weapon := greatsword()
	weapon.CritThreshold = 19

	roller.SetRolls([]int{19, 2, 3, 4, 5, 6})

	require.NoError(t, attacker.WeaponAttackTarget(target, greatsword()))
	assert.Equal(t, 10, target.TotalDamageTaken(), "threshold belongs to the weapon that carries it")

	roller.SetRolls([]int{19, 2, 3, 4, 5, 6})
	require.NoError(t, attacker.WeaponAttackTarget(target, weapon))
	assert.Equal(t, 31, target.TotalDamageTaken())
}

func TestAttack_SituationalBonusTurnsMissIntoHit(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	attacker := newAttacker(t, roller)
	target := newTarget(t)

	attacker.Bus().Register(&hookListener{
		id:    "bless",
		types: []events.EventType{events.EventAttackRoll},
		handle: func(event events.Event) error {
			event.(*combat.AttackRollEvent).SituationalBonus += 2
			return nil
		},
	})

	// 8+5 misses on its own, the +2 carries it over AC 15
	roller.SetRolls([]int{8, 2, 3, 4})

	require.NoError(t, attacker.WeaponAttackTarget(target, greatsword()))
	assert.Equal(t, 10, target.TotalDamageTaken())
}

func TestAttack_MultiplierFloorsDamage(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	attacker := newAttacker(t, roller)
	target := newTarget(t)

	attacker.Bus().Register(&hookListener{
		id:    "half-damage",
		types: []events.EventType{events.EventAttackResult},
		handle: func(event events.Event) error {
			event.(*combat.AttackResultEvent).Multiplier = 0.5
			return nil
		},
	})

	// damage 3+1+3 = 7, halved and floored to 3
	roller.SetRolls([]int{10, 2, 3, 1})

	require.NoError(t, attacker.WeaponAttackTarget(target, greatsword()))
	assert.Equal(t, 3, target.TotalDamageTaken())
}

func TestAttack_ExtraDamageFromListener(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	attacker := newAttacker(t, roller)
	target := newTarget(t)

	attacker.Bus().Register(&hookListener{
		id:    "hex",
		types: []events.EventType{events.EventAttackResult},
		handle: func(event events.Event) error {
			result := event.(*combat.AttackResultEvent)
			if result.Hits() {
				return result.AddDamage("Hex", []int{6}, 0, shared.DamageNecrotic)
			}
			return nil
		},
	})

	// weapon dice 3+4, then the rider's d6
	roller.SetRolls([]int{10, 2, 3, 4, 5})

	require.NoError(t, attacker.WeaponAttackTarget(target, greatsword()))

	assert.Equal(t, 15, target.TotalDamageTaken())
	assert.Equal(t, 10, target.DamageBySource()["Greatsword"])
	assert.Equal(t, 5, target.DamageBySource()["Hex"])
}

func TestDealDamage_BypassesAttackPipeline(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	attacker := newAttacker(t, roller)
	target := newTarget(t)

	var sawAttackResult bool
	attacker.Bus().Register(&hookListener{
		id:    "observer",
		types: []events.EventType{events.EventAttackResult},
		handle: func(event events.Event) error {
			sawAttackResult = true
			return nil
		},
	})

	roller.SetRolls([]int{2, 3})
	damage, err := combat.NewDamageRoll(roller, "Magic Missile", []int{4, 4}, 2, shared.DamageForce)
	require.NoError(t, err)

	require.NoError(t, attacker.DealDamage(target, damage, nil, nil, 1.0))

	assert.Equal(t, 7, target.TotalDamageTaken())
	assert.False(t, sawAttackResult, "direct damage skips attack resolution")
}
