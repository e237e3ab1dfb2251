package combat

import (
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/shared"
)

// DefaultCritThreshold is the minimum d20 roll for a critical hit unless a
// weapon or listener proposes a lower one.
const DefaultCritThreshold = 20

// Attack describes one attack declaration, weapon or spell
type Attack interface {
	// Name labels the attack for damage source logging
	Name() string

	// ToHit returns the base attack bonus for the attacker
	ToHit(attacker *Entity) int

	// MinCrit returns the attack's own crit threshold, normally 20
	MinCrit() int

	// IsRanged reports whether the attack is ranged. Prone targets grant
	// advantage to melee attacks and impose disadvantage on ranged ones.
	IsRanged() bool

	// OnResult contributes the attack's own damage after hit and crit are
	// resolved, before the attack_result dispatch.
	OnResult(result *AttackResultEvent, attacker *Entity) error
}

// Weapon is the configuration for one weapon. Damage dice are listed as die
// sizes, e.g. 2d6 is []int{6, 6}.
type Weapon struct {
	Name          string
	Dice          []int
	DamageType    string
	Ability       string // governing ability, str when empty
	MagicBonus    int
	Mastery       string
	Ranged        bool
	CritThreshold int // 0 means the default 20
}

// Mod returns the ability key governing the weapon's rolls
func (w *Weapon) Mod() string {
	if w.Ability == "" {
		return shared.AbilityStr
	}
	return w.Ability
}

// WeaponAttack wraps a weapon as an attack
type WeaponAttack struct {
	Weapon *Weapon
}

// NewWeaponAttack creates a weapon attack
func NewWeaponAttack(weapon *Weapon) *WeaponAttack {
	return &WeaponAttack{Weapon: weapon}
}

func (a *WeaponAttack) Name() string { return a.Weapon.Name }

func (a *WeaponAttack) ToHit(attacker *Entity) int {
	return attacker.Mod(a.Weapon.Mod()) + attacker.Prof + a.Weapon.MagicBonus
}

func (a *WeaponAttack) MinCrit() int {
	if a.Weapon.CritThreshold > 0 {
		return a.Weapon.CritThreshold
	}
	return DefaultCritThreshold
}

func (a *WeaponAttack) IsRanged() bool { return a.Weapon.Ranged }

func (a *WeaponAttack) OnResult(result *AttackResultEvent, attacker *Entity) error {
	if !result.Hit {
		return nil
	}

	flat := attacker.Mod(a.Weapon.Mod()) + a.Weapon.MagicBonus
	return result.AddDamage(a.Weapon.Name, a.Weapon.Dice, flat, a.Weapon.DamageType)
}

// SpellAttack wraps a spell requiring an attack roll. Damage dice and flat
// damage describe the spell's base damage; Callback runs after the base
// damage is contributed, for secondary effects.
type SpellAttack struct {
	Spell      Spell
	Dice       []int
	Flat       int
	DamageType string
	Ranged     bool
	Callback   func(result *AttackResultEvent, attacker *Entity) error
}

func (a *SpellAttack) Name() string { return a.Spell.Name() }

func (a *SpellAttack) ToHit(attacker *Entity) int {
	return attacker.SpellToHit()
}

func (a *SpellAttack) MinCrit() int { return DefaultCritThreshold }

func (a *SpellAttack) IsRanged() bool { return a.Ranged }

func (a *SpellAttack) OnResult(result *AttackResultEvent, attacker *Entity) error {
	if result.Hit && len(a.Dice) > 0 {
		damageType := a.DamageType
		if damageType == "" {
			damageType = shared.DamageForce
		}
		if err := result.AddDamage(a.Spell.Name(), a.Dice, a.Flat, damageType); err != nil {
			return err
		}
	}

	if a.Callback != nil {
		return a.Callback(result, attacker)
	}
	return nil
}
