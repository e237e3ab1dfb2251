package rulebook_test

import (
	"testing"

	mockdice "github.com/KirkDiggler/dnd-combat-sim/internal/dice/mock"
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/rulebook"
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/shared"
	"github.com/KirkDiggler/dnd-combat-sim/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Fighter(t *testing.T) {
	e, err := rulebook.Build(rulebook.BuildConfig{Kind: rulebook.KindFighter, Level: 5})
	require.NoError(t, err)

	assert.Equal(t, "Fighter", e.Name)
	assert.Equal(t, 3, e.Mod(shared.AbilityStr))
	assert.True(t, e.HasAbility("Attack"))
	assert.True(t, e.HasAbility("Action Surge"))
	assert.True(t, e.HasAbility("Great Weapon Master"))
	assert.True(t, e.HasMastery(rulebook.MasteryTopple))
	assert.True(t, e.HasMastery(rulebook.MasteryGraze))
	assert.True(t, e.HasResource("Action Surge"))
	assert.False(t, e.HasAbility("Studied Attacks"), "level 13 feature")
}

func TestBuild_FighterLevelOne(t *testing.T) {
	e, err := rulebook.Build(rulebook.BuildConfig{Kind: rulebook.KindFighter, Level: 1})
	require.NoError(t, err)

	assert.False(t, e.HasAbility("Action Surge"), "level 2 feature")
	assert.False(t, e.HasAbility("Great Weapon Master"), "level 4 feat")
}

func TestBuild_HighLevelFighter(t *testing.T) {
	e, err := rulebook.Build(rulebook.BuildConfig{Kind: rulebook.KindFighter, Level: 17})
	require.NoError(t, err)

	assert.True(t, e.HasAbility("Studied Attacks"))
	assert.Equal(t, 2, e.Resource("Action Surge").Max())
}

func TestBuild_Champion(t *testing.T) {
	e, err := rulebook.Build(rulebook.BuildConfig{Kind: rulebook.KindChampion, Level: 10})
	require.NoError(t, err)

	assert.Equal(t, "Champion Fighter", e.Name)
	assert.True(t, e.HasAbility("Improved Critical"))
	assert.True(t, e.HasAbility("Heroic Advantage"))
}

func TestBuild_ChampionLevelThree(t *testing.T) {
	e, err := rulebook.Build(rulebook.BuildConfig{Kind: rulebook.KindChampion, Level: 3})
	require.NoError(t, err)

	assert.True(t, e.HasAbility("Improved Critical"))
	assert.False(t, e.HasAbility("Heroic Advantage"), "champion level 10 feature")
}

func TestBuild_Warlock(t *testing.T) {
	e, err := rulebook.Build(rulebook.BuildConfig{Kind: rulebook.KindWarlock, Level: 5})
	require.NoError(t, err)

	assert.Equal(t, "Warlock", e.Name)
	require.NotNil(t, e.Spellcasting)
	require.NotNil(t, e.Spellcasting.PactSlots())
	assert.Equal(t, 3, e.Spellcasting.PactSlots().SlotLevel())
	assert.True(t, e.HasAbility("Eldritch Blast"))
	assert.True(t, e.HasAbility("Agonizing Blast"))
}

func TestBuild_UnknownKind(t *testing.T) {
	_, err := rulebook.Build(rulebook.BuildConfig{Kind: "bard", Level: 5})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestBuild_InvalidLevel(t *testing.T) {
	_, err := rulebook.Build(rulebook.BuildConfig{Kind: rulebook.KindFighter, Level: 0})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestBuild_FighterTurnDealsDamage(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	e, err := rulebook.Build(rulebook.BuildConfig{
		Kind:   rulebook.KindFighter,
		Level:  1,
		Roller: roller,
	})
	require.NoError(t, err)

	target, err := rulebook.NewLowACTarget(1)
	require.NoError(t, err)

	// single greatsword attack: 10+5 vs AC 5 hits, dice 3+4 plus str mod
	roller.SetRolls([]int{10, 2, 3, 4})
	require.NoError(t, e.Turn(target, 1))

	assert.Equal(t, 10, target.TotalDamageTaken())
	assert.Equal(t, 10, target.DamageBySource()["Greatsword"])
}

func TestNewMonster(t *testing.T) {
	tests := []struct {
		name         string
		wantAC       int
		wantHP       int
		wantBehavior shared.AIBehavior
	}{
		{name: rulebook.MonsterGoblin, wantAC: 15, wantHP: 7, wantBehavior: shared.AISimple},
		{name: rulebook.MonsterOrc, wantAC: 13, wantHP: 15, wantBehavior: shared.AIBrute},
		{name: rulebook.MonsterEvilMage, wantAC: 12, wantHP: 22, wantBehavior: shared.AICaster},
		{name: rulebook.MonsterAcolyteHealer, wantAC: 10, wantHP: 9, wantBehavior: shared.AISupport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := rulebook.NewMonster(tt.name)
			require.NoError(t, err)

			assert.Equal(t, tt.wantAC, m.AC)
			assert.Equal(t, tt.wantHP, m.MaxHP)
			assert.Equal(t, tt.wantBehavior, m.Behavior)
		})
	}
}

func TestNewMonster_Unknown(t *testing.T) {
	_, err := rulebook.NewMonster("tarrasque")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestNewEvilMage_HasMagicMissile(t *testing.T) {
	m, err := rulebook.NewEvilMage()
	require.NoError(t, err)

	require.NotNil(t, m.Spellcasting)
	require.Len(t, m.Spellcasting.KnownSpells(), 1)
	assert.Equal(t, "Magic Missile", m.Spellcasting.KnownSpells()[0].Name())
	assert.True(t, m.Spellcasting.HasSlot(1), "3rd level caster has first level slots")
}

func TestTargetAC(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{level: 1, want: 13},
		{level: 4, want: 14},
		{level: 5, want: 15},
		{level: 10, want: 17},
		{level: 20, want: 19},
	}

	for _, tt := range tests {
		ac, err := rulebook.TargetAC(tt.level)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ac, "level %d", tt.level)
	}

	_, err := rulebook.TargetAC(0)
	assert.Error(t, err)
	_, err = rulebook.TargetAC(21)
	assert.Error(t, err)
}

func TestTrainingTargets(t *testing.T) {
	target, err := rulebook.NewTrainingTarget(rulebook.TargetConfig{Level: 5})
	require.NoError(t, err)
	assert.Equal(t, 15, target.AC)
	assert.Equal(t, 40, target.MaxHP)

	low, err := rulebook.NewLowACTarget(5)
	require.NoError(t, err)
	assert.Equal(t, 5, low.AC)

	high, err := rulebook.NewHighACTarget(5)
	require.NoError(t, err)
	assert.Equal(t, 25, high.AC)

	boss, err := rulebook.NewBossTarget(5)
	require.NoError(t, err)
	assert.Equal(t, 17, boss.AC)
}
