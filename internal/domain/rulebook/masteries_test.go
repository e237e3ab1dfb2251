package rulebook_test

import (
	"testing"

	mockdice "github.com/KirkDiggler/dnd-combat-sim/internal/dice/mock"
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/combat"
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/rulebook"
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMasteryFighter(t *testing.T, roller *mockdice.ManualMockRoller, mastery string) *combat.Entity {
	t.Helper()

	e, err := combat.NewEntity(combat.Config{
		Name:   "Fighter",
		Level:  1,
		Str:    16,
		Prof:   2,
		Roller: roller,
	})
	require.NoError(t, err)

	e.AddMastery(mastery)
	handler, err := rulebook.MasteryAbility(mastery)
	require.NoError(t, err)
	require.NoError(t, e.AddAbility(handler))
	return e
}

func newMasteryTarget(t *testing.T, roller *mockdice.ManualMockRoller) *combat.Entity {
	t.Helper()

	e, err := combat.NewEntity(combat.Config{
		Name:   "Dummy",
		Level:  1,
		AC:     15,
		HP:     50,
		Roller: roller,
	})
	require.NoError(t, err)
	return e
}

func TestVex_HitPrimesNextAttack(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	attacker := newMasteryFighter(t, roller, rulebook.MasteryVex)
	target := newMasteryTarget(t, roller)

	rapier := &combat.Weapon{
		Name:       "Rapier",
		Dice:       []int{8},
		DamageType: shared.DamagePiercing,
		Mastery:    rulebook.MasteryVex,
	}

	// first attack hits: 10+5 vs AC 15, damage d8=4
	roller.SetRolls([]int{10, 2, 4})
	require.NoError(t, attacker.WeaponAttackTarget(target, rapier))
	require.Equal(t, 7, target.TotalDamageTaken())

	// second attack: vex advantage picks 16 over the 3
	roller.SetRolls([]int{3, 16, 5})
	require.NoError(t, attacker.WeaponAttackTarget(target, rapier))
	assert.Equal(t, 15, target.TotalDamageTaken())

	// advantage was consumed by the second hit and re-primed by it; a short
	// rest clears the stored advantage
	require.NoError(t, attacker.ShortRest())
	roller.SetRolls([]int{3, 16})
	require.NoError(t, attacker.WeaponAttackTarget(target, rapier))
	assert.Equal(t, 15, target.TotalDamageTaken(), "no advantage after rest, the 3 misses")
}

func TestVex_RequiresVexWeapon(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	attacker := newMasteryFighter(t, roller, rulebook.MasteryVex)
	target := newMasteryTarget(t, roller)

	greatsword := &combat.Weapon{
		Name:       "Greatsword",
		Dice:       []int{6, 6},
		DamageType: shared.DamageSlashing,
	}

	roller.SetRolls([]int{10, 2, 3, 4})
	require.NoError(t, attacker.WeaponAttackTarget(target, greatsword))

	roller.SetRolls([]int{3, 16})
	require.NoError(t, attacker.WeaponAttackTarget(target, greatsword))
	assert.Equal(t, 10, target.TotalDamageTaken(), "no vex from a non-vex weapon")
}

func TestTopple_FailedSaveKnocksProne(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	attacker := newMasteryFighter(t, roller, rulebook.MasteryTopple)
	targetRoller := mockdice.NewManualMockRoller()
	target := newMasteryTarget(t, targetRoller)

	maul := &combat.Weapon{
		Name:       "Maul",
		Dice:       []int{6, 6},
		DamageType: shared.DamageBludgeoning,
		Mastery:    rulebook.MasteryTopple,
	}

	// hit, then the target's save: 2+2 vs DC 8+2+3=13 fails
	roller.SetRolls([]int{12, 2, 3, 4})
	targetRoller.SetRolls([]int{2})

	require.NoError(t, attacker.WeaponAttackTarget(target, maul))
	assert.True(t, target.HasCondition(shared.ConditionProne))
}

func TestTopple_SuccessfulSaveStaysUp(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	attacker := newMasteryFighter(t, roller, rulebook.MasteryTopple)
	targetRoller := mockdice.NewManualMockRoller()
	target := newMasteryTarget(t, targetRoller)

	maul := &combat.Weapon{
		Name:       "Maul",
		Dice:       []int{6, 6},
		DamageType: shared.DamageBludgeoning,
		Mastery:    rulebook.MasteryTopple,
	}

	roller.SetRolls([]int{12, 2, 3, 4})
	targetRoller.SetRolls([]int{20})

	require.NoError(t, attacker.WeaponAttackTarget(target, maul))
	assert.False(t, target.HasCondition(shared.ConditionProne))
}

func TestGraze_MissStillDealsModifier(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	attacker := newMasteryFighter(t, roller, rulebook.MasteryGraze)
	target := newMasteryTarget(t, roller)

	greatsword := &combat.Weapon{
		Name:       "Greatsword",
		Dice:       []int{6, 6},
		DamageType: shared.DamageSlashing,
		Mastery:    rulebook.MasteryGraze,
	}

	// 3+5 misses AC 15; graze lands the str modifier anyway
	roller.SetRolls([]int{3, 2})
	require.NoError(t, attacker.WeaponAttackTarget(target, greatsword))

	assert.Equal(t, 3, target.TotalDamageTaken())
	assert.Equal(t, 3, target.DamageBySource()[rulebook.MasteryGraze])
}

func TestGraze_NothingOnHit(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	attacker := newMasteryFighter(t, roller, rulebook.MasteryGraze)
	target := newMasteryTarget(t, roller)

	greatsword := &combat.Weapon{
		Name:       "Greatsword",
		Dice:       []int{6, 6},
		DamageType: shared.DamageSlashing,
		Mastery:    rulebook.MasteryGraze,
	}

	roller.SetRolls([]int{15, 2, 3, 4})
	require.NoError(t, attacker.WeaponAttackTarget(target, greatsword))

	assert.Equal(t, 10, target.TotalDamageTaken())
	assert.Zero(t, target.DamageBySource()[rulebook.MasteryGraze])
}

func TestMasteryAbility_Unknown(t *testing.T) {
	_, err := rulebook.MasteryAbility("Cleave")
	assert.Error(t, err)
}
