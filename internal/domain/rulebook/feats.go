package rulebook

import (
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/combat"
	"github.com/KirkDiggler/dnd-combat-sim/internal/events"
)

const (
	gwmPenalty = 5
	gwmBonus   = 10
	gwmTag     = "gwm"
)

// GreatWeaponMaster trades accuracy for damage on every weapon attack:
// -5 to hit, +10 damage on a hit.
type GreatWeaponMaster struct{}

// NewGreatWeaponMaster creates the feat
func NewGreatWeaponMaster() *GreatWeaponMaster { return &GreatWeaponMaster{} }

func (g *GreatWeaponMaster) Name() string { return "Great Weapon Master" }

func (g *GreatWeaponMaster) Apply(owner *combat.Entity) error { return nil }

func (g *GreatWeaponMaster) ID() string { return "feat:great-weapon-master" }

func (g *GreatWeaponMaster) Events() []events.EventType {
	return []events.EventType{events.EventAttackRoll, events.EventAttackResult}
}

func (g *GreatWeaponMaster) HandleEvent(event events.Event) error {
	switch ev := event.(type) {
	case *combat.AttackRollEvent:
		if ev.Attack.Weapon() == nil {
			return nil
		}
		ev.SituationalBonus -= gwmPenalty
		ev.Attack.AddTag(gwmTag)
	case *combat.AttackResultEvent:
		weapon := ev.Attack.Weapon()
		if weapon == nil || ev.Misses() || !ev.Attack.HasTag(gwmTag) {
			return nil
		}
		return ev.AddDamage(g.Name(), nil, gwmBonus, weapon.DamageType)
	}
	return nil
}
