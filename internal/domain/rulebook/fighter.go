package rulebook

import (
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/combat"
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/shared"
	"github.com/KirkDiggler/dnd-combat-sim/internal/events"
)

// Fighter milestone levels
const (
	fighterExtraAttack1   = 5
	fighterExtraAttack2   = 11
	fighterStudiedAttacks = 13
	fighterActionSurge2   = 17
	fighterExtraAttack3   = 20
)

// AttacksPerAction returns the fighter's attacks per Attack action
func AttacksPerAction(level int) int {
	switch {
	case level >= fighterExtraAttack3:
		return 4
	case level >= fighterExtraAttack2:
		return 3
	case level >= fighterExtraAttack1:
		return 2
	default:
		return 1
	}
}

// AttackAction drives the fighter's main action: a weapon attack per attack
// the level grants. When a topple weapon is configured, it is used on
// non-final attacks against targets that are not yet prone, so later attacks
// in the sequence get advantage from the knockdown.
type AttackAction struct {
	attacks int
	weapon  *combat.Weapon
	topple  *combat.Weapon
}

// AttackActionConfig configures the fighter's attack routine
type AttackActionConfig struct {
	Level  int
	Weapon *combat.Weapon

	// ToppleWeapon is swapped in for non-final attacks while the target is
	// standing; nil disables the swap
	ToppleWeapon *combat.Weapon
}

// NewAttackAction creates the attack routine for a level
func NewAttackAction(cfg AttackActionConfig) *AttackAction {
	return &AttackAction{
		attacks: AttacksPerAction(cfg.Level),
		weapon:  cfg.Weapon,
		topple:  cfg.ToppleWeapon,
	}
}

func (a *AttackAction) Name() string { return "Attack" }

func (a *AttackAction) Apply(owner *combat.Entity) error { return nil }

func (a *AttackAction) ID() string { return "action:attack" }

func (a *AttackAction) Events() []events.EventType {
	return []events.EventType{events.EventAction}
}

func (a *AttackAction) HandleEvent(event events.Event) error {
	ev, ok := event.(*combat.TurnEvent)
	if !ok || ev.Target == nil {
		return nil
	}

	for i := 0; i < a.attacks; i++ {
		weapon := a.weapon
		if a.topple != nil && i < a.attacks-1 && !ev.Target.HasCondition(shared.ConditionProne) {
			weapon = a.topple
		}
		if err := ev.Actor.WeaponAttackTarget(ev.Target, weapon, "main_action"); err != nil {
			return err
		}
	}
	return nil
}

// ActionSurge grants an extra action per short rest, two at level 17. The
// resource is spent automatically before the action loop starts.
type ActionSurge struct {
	maxSurges int
}

// NewActionSurge creates the surge with its per-rest use count
func NewActionSurge(maxSurges int) *ActionSurge {
	return &ActionSurge{maxSurges: maxSurges}
}

const actionSurgeResource = "Action Surge"

func (s *ActionSurge) Name() string { return actionSurgeResource }

func (s *ActionSurge) Apply(owner *combat.Entity) error {
	return owner.AddResource(combat.ResourceConfig{
		Name:  actionSurgeResource,
		Max:   s.maxSurges,
		Reset: combat.ResetShortRest,
	})
}

func (s *ActionSurge) ID() string { return "feat:action-surge" }

func (s *ActionSurge) Events() []events.EventType {
	return []events.EventType{events.EventBeforeAction}
}

func (s *ActionSurge) HandleEvent(event events.Event) error {
	ev, ok := event.(*combat.TurnEvent)
	if !ok {
		return nil
	}

	resource := ev.Actor.Resource(actionSurgeResource)
	if resource != nil && resource.Use(1) {
		ev.Actor.Actions++
	}
	return nil
}

// StudiedAttacks gives advantage on the attack after a miss
type StudiedAttacks struct {
	enabled bool
}

// NewStudiedAttacks creates the level 13 fighter feature
func NewStudiedAttacks() *StudiedAttacks { return &StudiedAttacks{} }

func (s *StudiedAttacks) Name() string { return "Studied Attacks" }

func (s *StudiedAttacks) Apply(owner *combat.Entity) error { return nil }

func (s *StudiedAttacks) ID() string { return "feat:studied-attacks" }

func (s *StudiedAttacks) Events() []events.EventType {
	return []events.EventType{events.EventAttackRoll, events.EventAttackResult}
}

func (s *StudiedAttacks) HandleEvent(event events.Event) error {
	switch ev := event.(type) {
	case *combat.AttackRollEvent:
		if s.enabled {
			ev.Adv = true
			s.enabled = false
		}
	case *combat.AttackResultEvent:
		if ev.Misses() {
			s.enabled = true
		}
	}
	return nil
}
