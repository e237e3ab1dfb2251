package combat_test

import (
	"testing"

	mockdice "github.com/KirkDiggler/dnd-combat-sim/internal/dice/mock"
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/combat"
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/shared"
	"github.com/KirkDiggler/dnd-combat-sim/internal/errors"
	"github.com/KirkDiggler/dnd-combat-sim/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hookListener lets tests observe and mutate events inline
type hookListener struct {
	id     string
	types  []events.EventType
	handle func(event events.Event) error
}

func (l *hookListener) ID() string                 { return l.id }
func (l *hookListener) Events() []events.EventType { return l.types }
func (l *hookListener) HandleEvent(event events.Event) error {
	if l.handle == nil {
		return nil
	}
	return l.handle(event)
}

func TestNewEntity_LevelValidation(t *testing.T) {
	for _, level := range []int{0, -1, 21} {
		_, err := combat.NewEntity(combat.Config{Name: "Fighter", Level: level})
		require.Error(t, err, "level %d", level)
		assert.True(t, errors.IsInvalidArgument(err))
	}
}

func TestNewEntity_DerivedStats(t *testing.T) {
	e, err := combat.NewEntity(combat.Config{
		Name:  "Fighter",
		Level: 5,
		Str:   17,
		Con:   14,
	})
	require.NoError(t, err)

	// 10 base + 4 levels x 6 + con mod x level
	assert.Equal(t, 44, e.MaxHP)
	assert.Equal(t, e.MaxHP, e.HP)
	assert.Equal(t, 3, e.Prof)
	assert.Equal(t, combat.DefaultAC, e.AC)
	assert.Equal(t, 3, e.Mod(shared.AbilityStr))
	assert.Equal(t, 0, e.Mod(shared.AbilityWis), "unset scores default to 10")
	assert.Equal(t, shared.AISimple, e.Behavior)
}

func TestNewEntity_Overrides(t *testing.T) {
	e, err := combat.NewEntity(combat.Config{
		Name:     "Goblin",
		Level:    1,
		Str:      8,
		Dex:      14,
		AC:       15,
		HP:       7,
		Prof:     2,
		Behavior: shared.AISimple,
	})
	require.NoError(t, err)

	assert.Equal(t, 15, e.AC)
	assert.Equal(t, 7, e.MaxHP)
	assert.Equal(t, 2, e.Prof)
}

func TestEntity_ApplyDamage(t *testing.T) {
	tests := []struct {
		name            string
		resistances     []string
		vulnerabilities []string
		immunities      []string
		damage          int
		damageType      string
		wantTaken       int
	}{
		{
			name:       "plain damage",
			damage:     9,
			damageType: shared.DamageSlashing,
			wantTaken:  9,
		},
		{
			name:        "resistance halves rounded down",
			resistances: []string{"bludgeoning from nonmagical attacks"},
			damage:      9,
			damageType:  "Bludgeoning",
			wantTaken:   4,
		},
		{
			name:            "vulnerability doubles",
			vulnerabilities: []string{shared.DamageFire},
			damage:          6,
			damageType:      shared.DamageFire,
			wantTaken:       12,
		},
		{
			name:       "immunity zeroes",
			immunities: []string{"Poison"},
			damage:     10,
			damageType: shared.DamagePoison,
			wantTaken:  0,
		},
		{
			name:            "resistance beats vulnerability",
			resistances:     []string{shared.DamageCold},
			vulnerabilities: []string{shared.DamageCold},
			damage:          8,
			damageType:      shared.DamageCold,
			wantTaken:       4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := combat.NewEntity(combat.Config{
				Name:            "Skeleton",
				Level:           1,
				HP:              20,
				Resistances:     tt.resistances,
				Vulnerabilities: tt.vulnerabilities,
				Immunities:      tt.immunities,
			})
			require.NoError(t, err)

			e.ApplyDamage(tt.damage, tt.damageType, "test")

			assert.Equal(t, 20-tt.wantTaken, e.HP)
			assert.Equal(t, tt.wantTaken, e.TotalDamageTaken())
			assert.Equal(t, tt.wantTaken, e.DamageBySource()["test"])
		})
	}
}

func TestEntity_HPCanGoNegative(t *testing.T) {
	e, err := combat.NewEntity(combat.Config{Name: "Goblin", Level: 1, HP: 7})
	require.NoError(t, err)

	e.ApplyDamage(12, shared.DamageSlashing, "Greatsword")
	assert.Equal(t, -5, e.HP)
	assert.False(t, e.IsAlive())
}

func TestEntity_HealCapsAtMax(t *testing.T) {
	e, err := combat.NewEntity(combat.Config{Name: "Cleric", Level: 1, HP: 10})
	require.NoError(t, err)

	e.ApplyDamage(4, shared.DamageSlashing, "Scimitar")
	e.Heal(20)
	assert.Equal(t, e.MaxHP, e.HP)
}

func TestEntity_IsBloodied(t *testing.T) {
	e, err := combat.NewEntity(combat.Config{Name: "Orc", Level: 1, HP: 15})
	require.NoError(t, err)

	assert.False(t, e.IsBloodied())
	e.ApplyDamage(8, shared.DamageSlashing, "Longsword")
	assert.True(t, e.IsBloodied())
}

func TestEntity_Save(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	e, err := combat.NewEntity(combat.Config{
		Name:   "Orc",
		Level:  1,
		Str:    16,
		Prof:   2,
		Roller: roller,
	})
	require.NoError(t, err)

	// 10 + 3 str + 2 prof = 15
	roller.SetRolls([]int{10})
	ok, err := e.Save(shared.AbilityStr, 15)
	require.NoError(t, err)
	assert.True(t, ok)

	roller.SetRolls([]int{9})
	ok, err = e.Save(shared.AbilityStr, 15)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEntity_UseBonus(t *testing.T) {
	e, err := combat.NewEntity(combat.Config{Name: "Fighter", Level: 1})
	require.NoError(t, err)
	require.NoError(t, e.BeginTurn(nil, 0))

	assert.True(t, e.UseBonus("offhand"))
	assert.False(t, e.UseBonus("shove"), "one bonus action per turn")

	require.NoError(t, e.BeginTurn(nil, 1))
	assert.True(t, e.UseBonus("offhand"))
}

func TestEntity_IncreaseStatRespectsMax(t *testing.T) {
	e, err := combat.NewEntity(combat.Config{Name: "Fighter", Level: 1, Str: 19})
	require.NoError(t, err)

	e.IncreaseStat(shared.AbilityStr, 4)
	assert.Equal(t, shared.DefaultScoreMax, e.Stat(shared.AbilityStr))

	e.IncreaseStatMax(shared.AbilityStr, 2)
	e.IncreaseStat(shared.AbilityStr, 4)
	assert.Equal(t, 22, e.Stat(shared.AbilityStr))
}
