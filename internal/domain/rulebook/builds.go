package rulebook

import (
	"github.com/KirkDiggler/dnd-combat-sim/internal/dice"
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/combat"
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/shared"
	"github.com/KirkDiggler/dnd-combat-sim/internal/errors"
)

// Builtin character build kinds
const (
	KindFighter  = "fighter"
	KindChampion = "champion"
	KindWarlock  = "warlock"
)

// BuildKinds lists the registered character build kinds
func BuildKinds() []string {
	return []string{KindFighter, KindChampion, KindWarlock}
}

// BuildConfig selects a builtin character build
type BuildConfig struct {
	Kind  string
	Level int

	// Roller overrides the RNG for deterministic tests
	Roller dice.Roller
}

// Build constructs a ready-to-fight entity for a builtin kind. Unknown kinds
// report NotFound; the level is validated by the entity constructor.
func Build(cfg BuildConfig) (*combat.Entity, error) {
	switch cfg.Kind {
	case KindFighter:
		return newFighter(cfg, nil)
	case KindChampion:
		return newChampion(cfg)
	case KindWarlock:
		return newWarlock(cfg)
	default:
		return nil, errors.NotFoundf("unknown build kind %q", cfg.Kind)
	}
}

// newFighter builds the greatsword fighter chassis: Graze on the main weapon,
// a Topple maul swapped in to set up later attacks, Action Surge from level 2
// and Studied Attacks from 13. Subclass abilities attach before the class
// progression so they observe rolls first.
func newFighter(cfg BuildConfig, subclass []combat.Ability) (*combat.Entity, error) {
	e, err := combat.NewEntity(combat.Config{
		Name:         "Fighter",
		Level:        cfg.Level,
		Str:          17,
		ThreatRating: 3,
		Roller:       cfg.Roller,
	})
	if err != nil {
		return nil, err
	}

	greatsword := &combat.Weapon{
		Name:       "Greatsword",
		Dice:       []int{6, 6},
		DamageType: shared.DamageSlashing,
		Mastery:    MasteryGraze,
	}
	maul := &combat.Weapon{
		Name:       "Maul",
		Dice:       []int{6, 6},
		DamageType: shared.DamageBludgeoning,
		Mastery:    MasteryTopple,
	}

	abilities := []combat.Ability{
		NewAttackAction(AttackActionConfig{
			Level:        cfg.Level,
			Weapon:       greatsword,
			ToppleWeapon: maul,
		}),
	}
	abilities = append(abilities, subclass...)

	for _, mastery := range []string{MasteryTopple, MasteryGraze} {
		e.AddMastery(mastery)
		handler, err := MasteryAbility(mastery)
		if err != nil {
			return nil, err
		}
		abilities = append(abilities, handler)
	}

	if cfg.Level >= 2 {
		maxSurges := 1
		if cfg.Level >= fighterActionSurge2 {
			maxSurges = 2
		}
		abilities = append(abilities, NewActionSurge(maxSurges))
	}

	if cfg.Level >= 4 {
		abilities = append(abilities, NewGreatWeaponMaster())
	}

	if cfg.Level >= fighterStudiedAttacks {
		abilities = append(abilities, NewStudiedAttacks())
	}

	for _, ability := range abilities {
		if err := e.AddAbility(ability); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func newChampion(cfg BuildConfig) (*combat.Entity, error) {
	var subclass []combat.Ability

	if cfg.Level >= championImprovedCritical {
		threshold := CritThresholdImproved
		if cfg.Level >= championSuperiorCritical {
			threshold = CritThresholdSuperior
		}
		subclass = append(subclass, NewImprovedCritical(threshold))
	}

	if cfg.Level >= championHeroicAdvantage {
		subclass = append(subclass, NewHeroicAdvantage())
	}

	e, err := newFighter(cfg, subclass)
	if err != nil {
		return nil, err
	}
	e.Name = "Champion Fighter"
	return e, nil
}

// newWarlock builds the Eldritch Blast warlock: pact slots at the class
// progression, Agonizing Blast from level 2.
func newWarlock(cfg BuildConfig) (*combat.Entity, error) {
	e, err := combat.NewEntity(combat.Config{
		Name:         "Warlock",
		Level:        cfg.Level,
		Cha:          17,
		ThreatRating: 2,
		SpellAbility: shared.AbilityCha,
		Roller:       cfg.Roller,
	})
	if err != nil {
		return nil, err
	}

	if err := e.Spellcasting.SetPactLevel(cfg.Level); err != nil {
		return nil, err
	}
	e.Spellcasting.AddSpell(&EldritchBlast{})

	abilities := []combat.Ability{NewEldritchBlastAction()}
	if cfg.Level >= 2 {
		abilities = append(abilities, NewAgonizingBlast())
	}

	for _, ability := range abilities {
		if err := e.AddAbility(ability); err != nil {
			return nil, err
		}
	}
	return e, nil
}
