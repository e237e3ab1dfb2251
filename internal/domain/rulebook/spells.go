package rulebook

import (
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/combat"
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/shared"
)

// MagicMissile fires 3 darts plus one per slot level above 1st, each dealing
// 1d4+1 force damage. The darts hit automatically, so the damage bypasses the
// attack pipeline and goes straight through the damage dispatch.
type MagicMissile struct {
	SlotLevel int
}

func (s *MagicMissile) Name() string        { return "Magic Missile" }
func (s *MagicMissile) Slot() int           { return s.SlotLevel }
func (s *MagicMissile) IsCantrip() bool     { return false }
func (s *MagicMissile) Concentration() bool { return false }
func (s *MagicMissile) IsHealing() bool     { return false }

func (s *MagicMissile) Cast(caster, target *combat.Entity) error {
	if target == nil {
		return nil
	}

	darts := 3 + (s.SlotLevel - 1)
	total := 0
	for i := 0; i < darts; i++ {
		result, err := caster.Roller().Roll(1, 4, 1)
		if err != nil {
			return err
		}
		total += result.Total
	}

	damage, err := combat.NewDamageRoll(caster.Roller(), s.Name(), nil, total, shared.DamageForce)
	if err != nil {
		return err
	}
	return caster.DealDamage(target, damage, nil, s, 1.0)
}

// CureWounds heals the target for slot level d8 plus the caster's
// spellcasting modifier.
type CureWounds struct {
	SlotLevel int
}

func (s *CureWounds) Name() string        { return "Cure Wounds" }
func (s *CureWounds) Slot() int           { return s.SlotLevel }
func (s *CureWounds) IsCantrip() bool     { return false }
func (s *CureWounds) Concentration() bool { return false }
func (s *CureWounds) IsHealing() bool     { return true }

func (s *CureWounds) Cast(caster, target *combat.Entity) error {
	if target == nil {
		return nil
	}

	healing := 0
	for i := 0; i < s.SlotLevel; i++ {
		result, err := caster.Roller().Roll(1, 8, 0)
		if err != nil {
			return err
		}
		healing += result.Total
	}

	if caster.Spellcasting != nil {
		healing += caster.Mod(caster.Spellcasting.Ability())
	}

	target.Heal(healing)
	return nil
}
