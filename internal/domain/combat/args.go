package combat

import (
	"github.com/KirkDiggler/dnd-combat-sim/internal/dice"
	"github.com/KirkDiggler/dnd-combat-sim/internal/events"
)

// TurnEvent is the payload for the turn lifecycle events: begin_turn,
// before_action, action, after_action, end_turn and enemy_turn.
type TurnEvent struct {
	Type   events.EventType
	Actor  *Entity
	Target *Entity
	Round  int
}

func (e *TurnEvent) EventType() events.EventType { return e.Type }

// RestEvent is the payload for short_rest and long_rest
type RestEvent struct {
	Type  events.EventType
	Actor *Entity
}

func (e *RestEvent) EventType() events.EventType { return e.Type }

// AttackEvent binds an attacker, a target and an attack description for the
// duration of one attack resolution. It is the before_attack payload and is
// carried by the roll and result payloads that follow it.
type AttackEvent struct {
	Actor  *Entity
	Target *Entity
	Attack Attack

	tags map[string]bool
}

func (e *AttackEvent) EventType() events.EventType { return events.EventBeforeAttack }

// AddTag marks the attack, e.g. "bonus_action" or "used_mastery"
func (e *AttackEvent) AddTag(tag string) {
	if e.tags == nil {
		e.tags = make(map[string]bool)
	}
	e.tags[tag] = true
}

// HasTag reports whether the attack carries a tag
func (e *AttackEvent) HasTag(tag string) bool {
	return e.tags[tag]
}

// Weapon returns the weapon behind the attack, or nil for spell attacks
func (e *AttackEvent) Weapon() *Weapon {
	if wa, ok := e.Attack.(*WeaponAttack); ok {
		return wa.Weapon
	}
	return nil
}

// Spell returns the spell behind the attack, or nil for weapon attacks
func (e *AttackEvent) Spell() Spell {
	if sa, ok := e.Attack.(*SpellAttack); ok {
		return sa.Spell
	}
	return nil
}

// AttackRollEvent is the attack_roll payload. Listeners may toggle advantage
// and disadvantage, add situational bonus, or propose a crit threshold.
// Roll stays a pure function of the raw fields so listeners can toggle the
// booleans any number of times in dispatch order.
type AttackRollEvent struct {
	Attack           *AttackEvent
	ToHit            int
	Adv              bool
	Disadv           bool
	Roll1            int
	Roll2            int
	SituationalBonus int

	// CritThreshold is the lowest threshold proposed so far; zero means no
	// listener has proposed one and the attack's own default applies
	CritThreshold int

	roller dice.Roller
}

func (e *AttackRollEvent) EventType() events.EventType { return events.EventAttackRoll }

// Roll resolves the d20: advantage and disadvantage cancel back to the first
// roll, advantage takes the higher, disadvantage the lower.
func (e *AttackRollEvent) Roll() int {
	if e.Adv && e.Disadv {
		return e.Roll1
	}
	if e.Adv {
		return max(e.Roll1, e.Roll2)
	}
	if e.Disadv {
		return min(e.Roll1, e.Roll2)
	}
	return e.Roll1
}

// Total returns the resolved d20 plus to-hit and situational bonuses
func (e *AttackRollEvent) Total() int {
	return e.Roll() + e.ToHit + e.SituationalBonus
}

// Hits reports whether the roll beats the target's AC as it stands now.
// Listeners use this mid-dispatch to decide whether to spend a bonus.
func (e *AttackRollEvent) Hits() bool {
	return e.Total() >= e.Attack.Target.AC
}

// Reroll replaces both d20s, for reroll mechanics
func (e *AttackRollEvent) Reroll() error {
	r1, err := e.roller.Roll(1, 20, 0)
	if err != nil {
		return err
	}
	r2, err := e.roller.Roll(1, 20, 0)
	if err != nil {
		return err
	}
	e.Roll1 = r1.Total
	e.Roll2 = r2.Total
	return nil
}

// RerollFirst replaces only the first d20
func (e *AttackRollEvent) RerollFirst() error {
	r, err := e.roller.Roll(1, 20, 0)
	if err != nil {
		return err
	}
	e.Roll1 = r.Total
	return nil
}

// ProposeCritThreshold tightens the crit threshold. The lowest proposal wins;
// a proposal never loosens a threshold already set lower.
func (e *AttackRollEvent) ProposeCritThreshold(threshold int) {
	if e.CritThreshold == 0 || threshold < e.CritThreshold {
		e.CritThreshold = threshold
	}
}

// AttackResultEvent is the attack_result payload. Listeners append damage
// rolls, adjust the multiplier, or trigger secondary effects gated on Hit and
// Crit. It is emitted on misses too so miss-triggered effects can fire.
type AttackResultEvent struct {
	Attack     *AttackEvent
	Hit        bool
	Crit       bool
	Roll       int
	DamageRoll []*DamageRoll
	Multiplier float64

	roller dice.Roller
}

func (e *AttackResultEvent) EventType() events.EventType { return events.EventAttackResult }

// Hits reports whether the attack landed
func (e *AttackResultEvent) Hits() bool { return e.Hit }

// Misses reports whether the attack missed
func (e *AttackResultEvent) Misses() bool { return !e.Hit }

// AddDamage resolves and appends a damage contribution
func (e *AttackResultEvent) AddDamage(source string, diceSizes []int, flat int, damageType string) error {
	roll, err := NewDamageRoll(e.roller, source, diceSizes, flat, damageType)
	if err != nil {
		return err
	}
	e.DamageRoll = append(e.DamageRoll, roll)
	return nil
}

// TotalDamage sums every accumulated damage roll before the multiplier
func (e *AttackResultEvent) TotalDamage() int {
	total := 0
	for _, roll := range e.DamageRoll {
		total += roll.Total()
	}
	return total
}

// DamageRollEvent is the damage_roll payload, the final per-roll adjustment
// hook before damage is applied to the target.
type DamageRollEvent struct {
	Actor  *Entity
	Target *Entity
	Damage *DamageRoll

	// Attack is set for attack damage, nil for direct spell damage
	Attack *AttackEvent

	// Spell is set for spell damage, nil otherwise
	Spell Spell
}

func (e *DamageRollEvent) EventType() events.EventType { return events.EventDamageRoll }

// IsWeaponDamage reports whether the damage comes from a weapon attack
func (e *DamageRollEvent) IsWeaponDamage() bool {
	return e.Attack != nil && e.Attack.Weapon() != nil
}

// IsSpellDamage reports whether the damage comes from a spell
func (e *DamageRollEvent) IsSpellDamage() bool {
	return e.Spell != nil
}

// CastSpellEvent is the cast_spell payload
type CastSpellEvent struct {
	Actor *Entity
	Spell Spell
}

func (e *CastSpellEvent) EventType() events.EventType { return events.EventCastSpell }
