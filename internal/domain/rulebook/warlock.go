package rulebook

import (
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/combat"
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/shared"
	"github.com/KirkDiggler/dnd-combat-sim/internal/events"
)

const eldritchBlastName = "Eldritch Blast"

// EldritchBlast is the warlock's signature cantrip: one ranged spell attack
// per cantrip die, 1d10 force each, with every beam resolved independently.
type EldritchBlast struct{}

func (s *EldritchBlast) Name() string        { return eldritchBlastName }
func (s *EldritchBlast) Slot() int           { return 0 }
func (s *EldritchBlast) IsCantrip() bool     { return true }
func (s *EldritchBlast) Concentration() bool { return false }
func (s *EldritchBlast) IsHealing() bool     { return false }

func (s *EldritchBlast) Cast(caster, target *combat.Entity) error {
	if target == nil {
		return nil
	}

	for beam := 0; beam < caster.CantripDice(); beam++ {
		attack := &combat.SpellAttack{
			Spell:      s,
			Dice:       []int{10},
			DamageType: shared.DamageForce,
			Ranged:     true,
		}
		if err := caster.SpellAttackTarget(target, attack); err != nil {
			return err
		}
	}
	return nil
}

// EldritchBlastAction casts the cantrip as the main action
type EldritchBlastAction struct {
	spell *EldritchBlast
}

// NewEldritchBlastAction creates the warlock attack routine
func NewEldritchBlastAction() *EldritchBlastAction {
	return &EldritchBlastAction{spell: &EldritchBlast{}}
}

func (a *EldritchBlastAction) Name() string { return eldritchBlastName }

func (a *EldritchBlastAction) Apply(owner *combat.Entity) error { return nil }

func (a *EldritchBlastAction) ID() string { return "action:eldritch-blast" }

func (a *EldritchBlastAction) Events() []events.EventType {
	return []events.EventType{events.EventAction}
}

func (a *EldritchBlastAction) HandleEvent(event events.Event) error {
	ev, ok := event.(*combat.TurnEvent)
	if !ok || ev.Target == nil {
		return nil
	}
	if ev.Actor.Spellcasting == nil {
		return a.spell.Cast(ev.Actor, ev.Target)
	}
	return ev.Actor.Spellcasting.Cast(ev.Actor, a.spell, ev.Target)
}

// AgonizingBlast adds the Charisma modifier to each Eldritch Blast beam that
// hits.
type AgonizingBlast struct{}

// NewAgonizingBlast creates the invocation
func NewAgonizingBlast() *AgonizingBlast { return &AgonizingBlast{} }

func (b *AgonizingBlast) Name() string { return "Agonizing Blast" }

func (b *AgonizingBlast) Apply(owner *combat.Entity) error { return nil }

func (b *AgonizingBlast) ID() string { return "invocation:agonizing-blast" }

func (b *AgonizingBlast) Events() []events.EventType {
	return []events.EventType{events.EventAttackResult}
}

func (b *AgonizingBlast) HandleEvent(event events.Event) error {
	ev, ok := event.(*combat.AttackResultEvent)
	if !ok || ev.Misses() {
		return nil
	}

	spell := ev.Attack.Spell()
	if spell == nil || spell.Name() != eldritchBlastName {
		return nil
	}

	mod := ev.Attack.Actor.Mod(shared.AbilityCha)
	if mod <= 0 {
		return nil
	}
	return ev.AddDamage(b.Name(), nil, mod, shared.DamageForce)
}
