package shared

// Ability score keys used across the module
const (
	AbilityStr = "str"
	AbilityDex = "dex"
	AbilityCon = "con"
	AbilityInt = "int"
	AbilityWis = "wis"
	AbilityCha = "cha"

	// AbilityNone marks attacks and spells with no governing ability
	AbilityNone = "none"
)

// AbilityScores lists the six ability score keys in canonical order
var AbilityScores = []string{
	AbilityStr,
	AbilityDex,
	AbilityCon,
	AbilityInt,
	AbilityWis,
	AbilityCha,
}

// DefaultScoreMax is the normal cap on an ability score
const DefaultScoreMax = 20

// Modifier calculates the ability modifier for a score
func Modifier(score int) int {
	m := score - 10
	if m < 0 && m%2 != 0 {
		m-- // floor, not truncate, for odd negative values
	}
	return m / 2
}

// ProficiencyBonus returns the proficiency bonus for a character level or CR
func ProficiencyBonus(level int) int {
	return 2 + (level-1)/4
}
