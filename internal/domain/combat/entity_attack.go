package combat

import (
	"math"

	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/shared"
)

// WeaponAttackTarget resolves a weapon attack through the full pipeline
func (e *Entity) WeaponAttackTarget(target *Entity, weapon *Weapon, tags ...string) error {
	return e.Attack(target, NewWeaponAttack(weapon), tags...)
}

// SpellAttackTarget resolves a spell attack through the full pipeline
func (e *Entity) SpellAttackTarget(target *Entity, attack *SpellAttack, tags ...string) error {
	return e.Attack(target, attack, tags...)
}

// Attack runs the attack resolution pipeline: before_attack priming, two raw
// d20s, intrinsic condition adjustments, the attack_roll dispatch,
// advantage/disadvantage resolution, hit and crit determination, the
// attack_result dispatch, then damage application per accumulated roll.
//
// The result dispatch runs on misses too; abilities keyed on misses depend
// on it. A crit does not bypass the AC check, it only doubles damage dice.
func (e *Entity) Attack(target *Entity, attack Attack, tags ...string) error {
	attackEv := &AttackEvent{
		Actor:  e,
		Target: target,
		Attack: attack,
	}
	for _, tag := range tags {
		attackEv.AddTag(tag)
	}

	if err := e.bus.Emit(attackEv); err != nil {
		return err
	}

	rollEv, err := e.attackRoll(attackEv)
	if err != nil {
		return err
	}

	roll := rollEv.Roll()

	minCrit := rollEv.CritThreshold
	if minCrit == 0 {
		minCrit = attack.MinCrit()
	}
	crit := roll >= minCrit
	hit := roll+rollEv.ToHit+rollEv.SituationalBonus >= target.AC

	resultEv := &AttackResultEvent{
		Attack:     attackEv,
		Hit:        hit,
		Crit:       crit,
		Roll:       roll,
		Multiplier: 1.0,
		roller:     e.roller,
	}

	if err := attack.OnResult(resultEv, e); err != nil {
		return err
	}
	if err := e.bus.Emit(resultEv); err != nil {
		return err
	}

	for _, damage := range resultEv.DamageRoll {
		if crit {
			if err := damage.DoubleDice(); err != nil {
				return err
			}
		}

		if err := e.DealDamage(target, damage, attackEv, attackEv.Spell(), resultEv.Multiplier); err != nil {
			return err
		}
	}

	return nil
}

// attackRoll builds the roll payload, applies intrinsic conditions, and runs
// the attack_roll dispatch. Intrinsic conditions go first so listeners see
// the adjusted booleans.
func (e *Entity) attackRoll(attackEv *AttackEvent) (*AttackRollEvent, error) {
	r1, err := e.roller.Roll(1, 20, 0)
	if err != nil {
		return nil, err
	}
	r2, err := e.roller.Roll(1, 20, 0)
	if err != nil {
		return nil, err
	}

	rollEv := &AttackRollEvent{
		Attack: attackEv,
		ToHit:  attackEv.Attack.ToHit(e),
		Roll1:  r1.Total,
		Roll2:  r2.Total,
		roller: e.roller,
	}

	target := attackEv.Target

	if e.HasCondition(shared.ConditionPoisoned) {
		rollEv.Disadv = true
	}

	if target.HasCondition(shared.ConditionStunned) {
		rollEv.Adv = true
	}

	if target.HasCondition(shared.ConditionProne) {
		if attackEv.Attack.IsRanged() {
			rollEv.Disadv = true
		} else {
			rollEv.Adv = true
		}
	}

	// One-shot opening: clears itself after this roll
	if target.HasCondition(shared.ConditionSemistunned) {
		rollEv.Adv = true
		target.ClearCondition(shared.ConditionSemistunned)
	}

	if err := e.bus.Emit(rollEv); err != nil {
		return nil, err
	}

	return rollEv, nil
}

// DealDamage runs the damage_roll dispatch for one damage roll, then applies
// floor(total x multiplier) to the target. Spells that bypass the attack
// pipeline (magic missile, save-for-half effects) call this directly.
func (e *Entity) DealDamage(target *Entity, damage *DamageRoll, attack *AttackEvent, spell Spell, multiplier float64) error {
	damageEv := &DamageRollEvent{
		Actor:  e,
		Target: target,
		Damage: damage,
		Attack: attack,
		Spell:  spell,
	}

	if err := e.bus.Emit(damageEv); err != nil {
		return err
	}

	total := int(math.Floor(float64(damageEv.Damage.Total()) * multiplier))
	target.ApplyDamage(total, damageEv.Damage.Type, damageEv.Damage.Source)

	return nil
}
