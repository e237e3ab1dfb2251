package combat

import (
	"strings"

	"github.com/KirkDiggler/dnd-combat-sim/internal/dice"
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/shared"
	"github.com/KirkDiggler/dnd-combat-sim/internal/errors"
	"github.com/KirkDiggler/dnd-combat-sim/internal/events"
)

// DefaultAC is the armor class used when a build does not specify one
const DefaultAC = 15

const (
	baseHP     = 10
	hpPerLevel = 6
)

// Config builds a combat entity. Zero-valued ability scores default to 10;
// zero AC, HP and Prof fall back to the build formulas.
type Config struct {
	Name  string
	Level int

	Str int
	Dex int
	Con int
	Int int
	Wis int
	Cha int

	// AC overrides the default armor class
	AC int

	// HP overrides the level-derived maximum hit points; monsters use their
	// stat-block value
	HP int

	// Prof overrides the level-derived proficiency bonus
	Prof int

	// SpellAbility enables spellcasting when set ("int", "wis", "cha")
	SpellAbility string

	// Caster sets the slot progression, CasterNone by default
	Caster CasterKind

	// CasterLevel overrides Level for slot math; monsters cast below their
	// hit dice
	CasterLevel int

	Behavior     shared.AIBehavior
	ThreatRating int

	Resistances     []string
	Vulnerabilities []string
	Immunities      []string

	// Roller overrides the RNG, for deterministic tests
	Roller dice.Roller
}

// Entity is a combat-capable character or monster: ability scores, hit
// points, attached abilities, resources and spellcasting state, plus the
// event bus its abilities observe.
type Entity struct {
	Name  string
	Level int
	Prof  int
	AC    int

	// HP may go negative to signal defeat; it is never clamped
	HP    int
	MaxHP int

	Behavior     shared.AIBehavior
	ThreatRating int
	Spellcasting *Spellcasting
	Minions      []*Entity

	// Actions and UsedBonus are the per-turn action economy, reset by
	// BeginTurn. Abilities may grant extra actions by incrementing Actions;
	// the turn loop re-observes the counter after every action emission.
	Actions   int
	UsedBonus bool

	scores     map[string]int
	scoreMax   map[string]int
	conditions map[shared.Condition]bool
	masteries  map[string]bool

	resistances     []string
	vulnerabilities []string
	immunities      []string

	bus       *events.Bus
	roller    dice.Roller
	abilities []Ability
	resources map[string]*Resource

	currentRound   int
	damageTaken    int
	damageBySource map[string]int
}

// NewEntity creates an entity from a build configuration
func NewEntity(cfg Config) (*Entity, error) {
	if cfg.Level < 1 || cfg.Level > 20 {
		return nil, errors.InvalidArgumentf("level must be 1-20, got %d", cfg.Level)
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRandomRoller()
	}

	e := &Entity{
		Name:         cfg.Name,
		Level:        cfg.Level,
		Behavior:     cfg.Behavior,
		ThreatRating: cfg.ThreatRating,

		scores: map[string]int{
			shared.AbilityStr: defaultScore(cfg.Str),
			shared.AbilityDex: defaultScore(cfg.Dex),
			shared.AbilityCon: defaultScore(cfg.Con),
			shared.AbilityInt: defaultScore(cfg.Int),
			shared.AbilityWis: defaultScore(cfg.Wis),
			shared.AbilityCha: defaultScore(cfg.Cha),
		},
		scoreMax:   make(map[string]int, len(shared.AbilityScores)),
		conditions: make(map[shared.Condition]bool),
		masteries:  make(map[string]bool),

		resistances:     cfg.Resistances,
		vulnerabilities: cfg.Vulnerabilities,
		immunities:      cfg.Immunities,

		bus:            events.NewBus(),
		roller:         roller,
		resources:      make(map[string]*Resource),
		damageBySource: make(map[string]int),
	}

	for _, stat := range shared.AbilityScores {
		e.scoreMax[stat] = shared.DefaultScoreMax
	}

	if e.Behavior == "" {
		e.Behavior = shared.AISimple
	}
	if e.ThreatRating == 0 {
		e.ThreatRating = 1
	}

	e.Prof = cfg.Prof
	if e.Prof == 0 {
		e.Prof = shared.ProficiencyBonus(cfg.Level)
	}

	e.AC = cfg.AC
	if e.AC == 0 {
		e.AC = DefaultAC
	}

	e.MaxHP = cfg.HP
	if e.MaxHP == 0 {
		e.MaxHP = baseHP + (cfg.Level-1)*hpPerLevel + e.Mod(shared.AbilityCon)*cfg.Level
	}
	e.HP = e.MaxHP

	if cfg.SpellAbility != "" {
		casterLevel := cfg.CasterLevel
		if casterLevel == 0 {
			casterLevel = cfg.Level
		}
		e.Spellcasting = NewSpellcasting(cfg.SpellAbility, []CasterLevel{{Kind: cfg.Caster, Level: casterLevel}})
		e.bus.Register(e.Spellcasting)
	}

	return e, nil
}

func defaultScore(score int) int {
	if score == 0 {
		return 10
	}
	return score
}

// Bus returns the entity's event bus
func (e *Entity) Bus() *events.Bus { return e.bus }

// Roller returns the entity's dice roller
func (e *Entity) Roller() dice.Roller { return e.roller }

// Stat returns a raw ability score; "none" reads as 10
func (e *Entity) Stat(stat string) int {
	if stat == shared.AbilityNone {
		return 10
	}
	if score, ok := e.scores[stat]; ok {
		return score
	}
	return 10
}

// Mod returns an ability modifier; "none" reads as 0
func (e *Entity) Mod(stat string) int {
	if stat == shared.AbilityNone {
		return 0
	}
	return shared.Modifier(e.Stat(stat))
}

// IncreaseStatMax raises the cap for an ability score
func (e *Entity) IncreaseStatMax(stat string, amount int) {
	if _, ok := e.scoreMax[stat]; !ok {
		return
	}
	e.scoreMax[stat] += amount
}

// IncreaseStat raises an ability score, respecting its cap
func (e *Entity) IncreaseStat(stat string, amount int) {
	if _, ok := e.scores[stat]; !ok {
		return
	}
	e.scores[stat] = min(e.scores[stat]+amount, e.scoreMax[stat])
}

// DC returns the save DC for effects keyed to a stat
func (e *Entity) DC(stat string) int {
	return 8 + e.Prof + e.Mod(stat)
}

// SpellToHit returns the spell attack bonus
func (e *Entity) SpellToHit() int {
	if e.Spellcasting == nil {
		return 0
	}
	return e.Mod(e.Spellcasting.Ability()) + e.Prof + e.Spellcasting.ToHitBonus
}

// SpellDC returns the spell save DC
func (e *Entity) SpellDC() int {
	if e.Spellcasting == nil {
		return 0
	}
	return 8 + e.Prof + e.Mod(e.Spellcasting.Ability())
}

// CantripDice returns the cantrip damage dice count at this entity's level
func (e *Entity) CantripDice() int {
	return CantripDice(e.Level)
}

// AddAbility applies an ability and registers it for its declared events.
// Insertion order is dispatch order.
func (e *Entity) AddAbility(ability Ability) error {
	if err := ability.Apply(e); err != nil {
		return errors.Wrapf(err, "applying %s to %s", ability.Name(), e.Name)
	}
	e.abilities = append(e.abilities, ability)
	e.bus.Register(ability)
	return nil
}

// HasAbility reports whether an ability with the given name is attached
func (e *Entity) HasAbility(name string) bool {
	for _, a := range e.abilities {
		if a.Name() == name {
			return true
		}
	}
	return false
}

// AddResource attaches a limited-use resource and registers it for rests
func (e *Entity) AddResource(cfg ResourceConfig) error {
	resource, err := NewResource(cfg)
	if err != nil {
		return err
	}
	e.resources[cfg.Name] = resource
	e.bus.Register(resource)
	return nil
}

// Resource returns a named resource, nil when absent
func (e *Entity) Resource(name string) *Resource {
	return e.resources[name]
}

// HasResource reports whether a named resource exists with uses remaining
func (e *Entity) HasResource(name string) bool {
	r, ok := e.resources[name]
	return ok && r.Has(1)
}

// UseBonus claims the turn's bonus action, returning false if already spent
func (e *Entity) UseBonus(source string) bool {
	if e.UsedBonus {
		return false
	}
	e.UsedBonus = true
	return true
}

// AddMastery grants a weapon mastery
func (e *Entity) AddMastery(mastery string) {
	e.masteries[mastery] = true
}

// HasMastery reports whether the entity knows a weapon mastery
func (e *Entity) HasMastery(mastery string) bool {
	return e.masteries[mastery]
}

// AddMinion attaches a minion that takes a full turn after its owner
func (e *Entity) AddMinion(minion *Entity) {
	e.Minions = append(e.Minions, minion)
}

// SetCondition applies a status condition
func (e *Entity) SetCondition(c shared.Condition) {
	e.conditions[c] = true
}

// ClearCondition removes a status condition
func (e *Entity) ClearCondition(c shared.Condition) {
	delete(e.conditions, c)
}

// HasCondition reports whether a status condition is active
func (e *Entity) HasCondition(c shared.Condition) bool {
	return e.conditions[c]
}

// ApplyDamage reduces HP after resistance, vulnerability and immunity.
// Matching is a case-insensitive substring test so stat-block entries like
// "bludgeoning from nonmagical attacks" still match plain damage types.
// Immunity zeroes the damage, resistance halves it rounded down,
// vulnerability doubles it; resistance is checked before vulnerability.
func (e *Entity) ApplyDamage(damage int, damageType, source string) {
	needle := strings.ToLower(damageType)

	switch {
	case matchesDamageType(needle, e.immunities):
		damage = 0
	case matchesDamageType(needle, e.resistances):
		damage /= 2
	case matchesDamageType(needle, e.vulnerabilities):
		damage *= 2
	}

	e.HP -= damage
	e.damageTaken += damage
	e.damageBySource[source] += damage
}

func matchesDamageType(needle string, entries []string) bool {
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry), needle) {
			return true
		}
	}
	return false
}

// Heal restores hit points up to the maximum
func (e *Entity) Heal(amount int) {
	e.HP = min(e.MaxHP, e.HP+amount)
}

// TotalDamageTaken returns damage accumulated since the last long rest
func (e *Entity) TotalDamageTaken() int { return e.damageTaken }

// DamageBySource returns the per-source damage log
func (e *Entity) DamageBySource() map[string]int { return e.damageBySource }

// IsAlive reports whether the entity has hit points remaining
func (e *Entity) IsAlive() bool { return e.HP > 0 }

// IsBloodied reports whether the entity is at or below half its maximum HP
func (e *Entity) IsBloodied() bool { return e.HP <= e.MaxHP/2 }

// Save rolls a saving throw of ability modifier plus proficiency against a DC
func (e *Entity) Save(ability string, dc int) (bool, error) {
	result, err := e.roller.Roll(1, 20, 0)
	if err != nil {
		return false, err
	}
	return result.Total+e.Mod(ability)+e.Prof >= dc, nil
}

// KnockProne knocks the entity prone
func (e *Entity) KnockProne() {
	e.SetCondition(shared.ConditionProne)
}
