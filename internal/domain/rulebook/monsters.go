package rulebook

import (
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/combat"
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/shared"
	"github.com/KirkDiggler/dnd-combat-sim/internal/errors"
)

// Builtin monster names accepted by NewMonster
const (
	MonsterGoblin        = "goblin"
	MonsterOrc           = "orc"
	MonsterEvilMage      = "evil_mage"
	MonsterAcolyteHealer = "acolyte_healer"
)

// MonsterNames lists the registered monster names
func MonsterNames() []string {
	return []string{MonsterGoblin, MonsterOrc, MonsterEvilMage, MonsterAcolyteHealer}
}

// NewMonster constructs a fresh copy of a builtin monster by name
func NewMonster(name string) (*combat.Entity, error) {
	switch name {
	case MonsterGoblin:
		return NewGoblin()
	case MonsterOrc:
		return NewOrc()
	case MonsterEvilMage:
		return NewEvilMage()
	case MonsterAcolyteHealer:
		return NewAcolyteHealer()
	default:
		return nil, errors.NotFoundf("unknown monster %q", name)
	}
}

// NewGoblin builds a CR 1/4 goblin
func NewGoblin() (*combat.Entity, error) {
	return combat.NewEntity(combat.Config{
		Name:  "Goblin",
		Level: 1,
		Str:   8,
		Dex:   14,
		Con:   10,
		Int:   10,
		Wis:   8,
		Cha:   8,
		AC:    15,
		HP:    7,
		Prof:  2,
	})
}

// NewOrc builds a CR 1/2 orc that hunts the biggest threat on the field
func NewOrc() (*combat.Entity, error) {
	return combat.NewEntity(combat.Config{
		Name:     "Orc",
		Level:    1,
		Str:      16,
		Dex:      12,
		Con:      16,
		Int:      7,
		Wis:      11,
		Cha:      10,
		AC:       13,
		HP:       15,
		Prof:     2,
		Behavior: shared.AIBrute,
	})
}

// NewEvilMage builds a 3rd-level caster that leads with its highest castable
// spell, magic missile by default.
func NewEvilMage() (*combat.Entity, error) {
	e, err := combat.NewEntity(combat.Config{
		Name:         "Evil Mage",
		Level:        3,
		Str:          9,
		Dex:          14,
		Con:          11,
		Int:          17,
		Wis:          12,
		Cha:          11,
		AC:           12,
		HP:           22,
		Prof:         2,
		Behavior:     shared.AICaster,
		SpellAbility: shared.AbilityInt,
		Caster:       combat.CasterFull,
	})
	if err != nil {
		return nil, err
	}

	e.Spellcasting.AddSpell(&MagicMissile{SlotLevel: 1})
	return e, nil
}

// NewAcolyteHealer builds a support caster that patches up the most injured
// ally before falling back to attacks.
func NewAcolyteHealer() (*combat.Entity, error) {
	e, err := combat.NewEntity(combat.Config{
		Name:         "Acolyte Healer",
		Level:        1,
		Wis:          14,
		Cha:          11,
		AC:           10,
		HP:           9,
		Prof:         2,
		Behavior:     shared.AISupport,
		SpellAbility: shared.AbilityWis,
		Caster:       combat.CasterFull,
	})
	if err != nil {
		return nil, err
	}

	e.Spellcasting.AddSpell(&CureWounds{SlotLevel: 1})
	return e, nil
}

// targetAC maps character level to a level-appropriate armor class
var targetAC = [20]int{
	13, 13, 13, 14, 15, 15, 15, 16, 16, 17,
	17, 17, 18, 18, 18, 18, 19, 19, 19, 19,
}

// TargetAC returns the level-appropriate AC for a generic training target
func TargetAC(level int) (int, error) {
	if level < 1 || level > 20 {
		return 0, errors.InvalidArgumentf("level must be 1-20, got %d", level)
	}
	return targetAC[level-1], nil
}

// TargetConfig builds a generic training target
type TargetConfig struct {
	Level int

	// AC overrides the level-appropriate armor class
	AC int
}

// NewTrainingTarget builds a level-scaled practice opponent. Its save bonus
// scales by tier and its HP tracks the rough estimate used for the bloodied
// threshold; damage totals are what DPR runs read, so it does not need to
// survive the fight.
func NewTrainingTarget(cfg TargetConfig) (*combat.Entity, error) {
	ac := cfg.AC
	if ac == 0 {
		var err error
		ac, err = TargetAC(cfg.Level)
		if err != nil {
			return nil, err
		}
	}

	// Save ability modifier scales by tier: +3, +4 from level 4, +5 from 8
	saveMod := 3
	switch {
	case cfg.Level >= 8:
		saveMod = 5
	case cfg.Level >= 4:
		saveMod = 4
	}
	score := 10 + 2*saveMod

	return combat.NewEntity(combat.Config{
		Name:  "Target",
		Level: cfg.Level,
		Str:   score,
		Dex:   score,
		Con:   score,
		Int:   score,
		Wis:   score,
		Cha:   score,
		AC:    ac,
		HP:    10 + cfg.Level*6,
	})
}

// NewLowACTarget builds a target that almost everything hits
func NewLowACTarget(level int) (*combat.Entity, error) {
	return NewTrainingTarget(TargetConfig{Level: level, AC: 5})
}

// NewHighACTarget builds a target that almost nothing hits
func NewHighACTarget(level int) (*combat.Entity, error) {
	return NewTrainingTarget(TargetConfig{Level: level, AC: 25})
}

// NewBossTarget builds a tougher target, two AC above the level norm
func NewBossTarget(level int) (*combat.Entity, error) {
	ac, err := TargetAC(level)
	if err != nil {
		return nil, err
	}
	return NewTrainingTarget(TargetConfig{Level: level, AC: ac + 2})
}
