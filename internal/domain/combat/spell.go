package combat

// Spell is a castable spell. Content definitions live outside the core; the
// engine only needs the slot cost and the cast behavior.
type Spell interface {
	// Name returns the spell name, used as the damage source label
	Name() string

	// Slot returns the spell level, 0 for cantrips
	Slot() int

	// IsCantrip reports whether the spell costs no slot
	IsCantrip() bool

	// Concentration reports whether the spell needs concentration
	Concentration() bool

	// IsHealing reports whether the spell restores hit points; the support
	// targeting policy looks for one of these
	IsHealing() bool

	// Cast applies the spell's effect. Target may be an ally for healing
	// spells or an opponent for damage spells.
	Cast(caster *Entity, target *Entity) error
}
