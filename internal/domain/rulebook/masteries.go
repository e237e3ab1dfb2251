package rulebook

import (
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/combat"
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/shared"
	"github.com/KirkDiggler/dnd-combat-sim/internal/errors"
	"github.com/KirkDiggler/dnd-combat-sim/internal/events"
)

// Weapon mastery names, matched against Weapon.Mastery and the entity's
// known masteries. A mastery fires only when both line up.
const (
	MasteryVex    = "Vex"
	MasteryTopple = "Topple"
	MasteryGraze  = "Graze"
)

// MasteryAbility returns the handler for a named weapon mastery
func MasteryAbility(name string) (combat.Ability, error) {
	switch name {
	case MasteryVex:
		return NewVex(), nil
	case MasteryTopple:
		return NewTopple(), nil
	case MasteryGraze:
		return NewGraze(), nil
	default:
		return nil, errors.NotFoundf("unknown weapon mastery %q", name)
	}
}

// Vex grants advantage on the next attack after hitting with a Vex weapon.
// The stored advantage is consumed by any attack and cleared on short rest.
type Vex struct {
	vexing bool
}

// NewVex creates the Vex mastery handler
func NewVex() *Vex { return &Vex{} }

func (v *Vex) Name() string { return MasteryVex }

func (v *Vex) Apply(owner *combat.Entity) error { return nil }

func (v *Vex) ID() string { return "mastery:vex" }

func (v *Vex) Events() []events.EventType {
	return []events.EventType{events.EventAttackRoll, events.EventAttackResult, events.EventShortRest}
}

func (v *Vex) HandleEvent(event events.Event) error {
	switch ev := event.(type) {
	case *combat.AttackRollEvent:
		if v.vexing {
			ev.Adv = true
			v.vexing = false
		}
	case *combat.AttackResultEvent:
		weapon := ev.Attack.Weapon()
		if weapon == nil || ev.Misses() {
			return nil
		}
		if weapon.Mastery != MasteryVex || !ev.Attack.Actor.HasMastery(MasteryVex) {
			return nil
		}
		v.vexing = true
	case *combat.RestEvent:
		v.vexing = false
	}
	return nil
}

// Topple forces a Strength save on a hit with a Topple weapon; failure knocks
// the target prone. DC is keyed to the weapon's governing ability.
type Topple struct{}

// NewTopple creates the Topple mastery handler
func NewTopple() *Topple { return &Topple{} }

func (t *Topple) Name() string { return MasteryTopple }

func (t *Topple) Apply(owner *combat.Entity) error { return nil }

func (t *Topple) ID() string { return "mastery:topple" }

func (t *Topple) Events() []events.EventType {
	return []events.EventType{events.EventAttackResult}
}

func (t *Topple) HandleEvent(event events.Event) error {
	ev, ok := event.(*combat.AttackResultEvent)
	if !ok {
		return nil
	}

	weapon := ev.Attack.Weapon()
	if weapon == nil || ev.Misses() {
		return nil
	}
	if weapon.Mastery != MasteryTopple || !ev.Attack.Actor.HasMastery(MasteryTopple) {
		return nil
	}

	target := ev.Attack.Target
	if target.HasCondition(shared.ConditionProne) {
		return nil
	}

	saved, err := target.Save(shared.AbilityStr, ev.Attack.Actor.DC(weapon.Mod()))
	if err != nil {
		return err
	}
	if !saved {
		target.KnockProne()
	}
	return nil
}

// Graze deals the ability modifier as damage on a miss with a Graze weapon,
// minimum zero. The damage bypasses the attack pipeline.
type Graze struct{}

// NewGraze creates the Graze mastery handler
func NewGraze() *Graze { return &Graze{} }

func (g *Graze) Name() string { return MasteryGraze }

func (g *Graze) Apply(owner *combat.Entity) error { return nil }

func (g *Graze) ID() string { return "mastery:graze" }

func (g *Graze) Events() []events.EventType {
	return []events.EventType{events.EventAttackResult}
}

func (g *Graze) HandleEvent(event events.Event) error {
	ev, ok := event.(*combat.AttackResultEvent)
	if !ok {
		return nil
	}

	weapon := ev.Attack.Weapon()
	if weapon == nil || ev.Hits() {
		return nil
	}
	if weapon.Mastery != MasteryGraze || !ev.Attack.Actor.HasMastery(MasteryGraze) {
		return nil
	}

	damage := max(0, ev.Attack.Actor.Mod(weapon.Mod()))
	if damage > 0 {
		ev.Attack.Target.ApplyDamage(damage, weapon.DamageType, MasteryGraze)
	}
	return nil
}
