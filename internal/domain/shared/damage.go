package shared

// Common damage type tags. Matching against resistances, vulnerabilities and
// immunities is case-insensitive substring matching, so entries like
// "bludgeoning from nonmagical attacks" still match "bludgeoning".
const (
	DamageBludgeoning = "bludgeoning"
	DamagePiercing    = "piercing"
	DamageSlashing    = "slashing"
	DamageFire        = "fire"
	DamageCold        = "cold"
	DamageLightning   = "lightning"
	DamageThunder     = "thunder"
	DamagePoison      = "poison"
	DamageAcid        = "acid"
	DamageNecrotic    = "necrotic"
	DamageRadiant     = "radiant"
	DamageForce       = "force"
	DamagePsychic     = "psychic"
)

// AIBehavior selects which targeting policy the combat engine uses
type AIBehavior string

const (
	// AISimple targets the opponent with the lowest current HP
	AISimple AIBehavior = "simple"

	// AIBrute targets the opponent with the highest threat rating
	AIBrute AIBehavior = "brute"

	// AICaster prefers the highest-level castable spell over basic attacks
	AICaster AIBehavior = "caster"

	// AISupport heals the most injured ally before attacking
	AISupport AIBehavior = "support"
)
