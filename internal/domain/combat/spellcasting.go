package combat

import (
	"github.com/KirkDiggler/dnd-combat-sim/internal/errors"
	"github.com/KirkDiggler/dnd-combat-sim/internal/events"
)

// CasterKind determines how spell slots scale with class level
type CasterKind int

const (
	CasterNone CasterKind = iota
	CasterFull
	CasterHalf
	CasterThird
)

// CasterLevel pairs a caster kind with levels in that class, for multiclass
// effective-level math.
type CasterLevel struct {
	Kind  CasterKind
	Level int
}

// slotTable holds standard slot counts per effective caster level; index 0 is
// unused, columns are slot levels 1-9.
var slotTable = [21][10]int{
	{},
	{0, 2, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 3, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 4, 2, 0, 0, 0, 0, 0, 0, 0},
	{0, 4, 3, 0, 0, 0, 0, 0, 0, 0},
	{0, 4, 3, 2, 0, 0, 0, 0, 0, 0},
	{0, 4, 3, 3, 0, 0, 0, 0, 0, 0},
	{0, 4, 3, 3, 1, 0, 0, 0, 0, 0},
	{0, 4, 3, 3, 2, 0, 0, 0, 0, 0},
	{0, 4, 3, 3, 3, 1, 0, 0, 0, 0},
	{0, 4, 3, 3, 3, 2, 0, 0, 0, 0},
	{0, 4, 3, 3, 3, 2, 1, 0, 0, 0},
	{0, 4, 3, 3, 3, 2, 1, 0, 0, 0},
	{0, 4, 3, 3, 3, 2, 1, 1, 0, 0},
	{0, 4, 3, 3, 3, 2, 1, 1, 0, 0},
	{0, 4, 3, 3, 3, 2, 1, 1, 1, 0},
	{0, 4, 3, 3, 3, 2, 1, 1, 1, 0},
	{0, 4, 3, 3, 3, 2, 1, 1, 1, 1},
	{0, 4, 3, 3, 3, 3, 1, 1, 1, 1},
	{0, 4, 3, 3, 3, 3, 2, 1, 1, 1},
	{0, 4, 3, 3, 3, 3, 2, 2, 1, 1},
}

// EffectiveCasterLevel computes the multiclass effective level: full casters
// contribute their level, half casters half rounded up, third casters a third
// rounded up.
func EffectiveCasterLevel(levels []CasterLevel) int {
	total := 0
	for _, cl := range levels {
		switch cl.Kind {
		case CasterFull:
			total += cl.Level
		case CasterHalf:
			total += (cl.Level + 1) / 2
		case CasterThird:
			total += (cl.Level + 2) / 3
		}
	}
	if total > 20 {
		total = 20
	}
	return total
}

// Spellcasting tracks spell slots, pact slots and concentration for one
// entity. It refills as a rest listener on the owner's bus. DC and to-hit
// live on the entity, which owns the ability scores.
type Spellcasting struct {
	ability    string
	levels     []CasterLevel
	slots      [10]int
	pact       *PactSlots
	known      []Spell
	conc       Spell
	ToHitBonus int
}

// NewSpellcasting creates a spellcasting state with full slots
func NewSpellcasting(ability string, levels []CasterLevel) *Spellcasting {
	s := &Spellcasting{
		ability: ability,
		levels:  levels,
	}
	s.refillSlots()
	return s
}

func (s *Spellcasting) ID() string { return "spellcasting" }

func (s *Spellcasting) Events() []events.EventType {
	return []events.EventType{events.EventShortRest, events.EventLongRest}
}

func (s *Spellcasting) HandleEvent(event events.Event) error {
	switch event.EventType() {
	case events.EventLongRest:
		s.refillSlots()
		s.restReset()
	case events.EventShortRest:
		s.restReset()
	}
	return nil
}

func (s *Spellcasting) refillSlots() {
	s.slots = slotTable[EffectiveCasterLevel(s.levels)]
}

func (s *Spellcasting) restReset() {
	if s.pact != nil {
		s.pact.Reset()
	}
	s.conc = nil
}

// Ability returns the governing spellcasting ability key
func (s *Spellcasting) Ability() string { return s.ability }

// AddCasterLevel adds multiclass caster levels and refills the slot table
func (s *Spellcasting) AddCasterLevel(kind CasterKind, level int) {
	s.levels = append(s.levels, CasterLevel{Kind: kind, Level: level})
	s.refillSlots()
}

// SetPactLevel attaches or updates pact-magic slots for a warlock level
func (s *Spellcasting) SetPactLevel(level int) error {
	if s.pact == nil {
		pact, err := NewPactSlots(level)
		if err != nil {
			return err
		}
		s.pact = pact
		return nil
	}
	s.pact.SetLevel(level)
	return nil
}

// PactSlots returns the pact-magic resource, nil for non-warlocks
func (s *Spellcasting) PactSlots() *PactSlots { return s.pact }

// AddSpell adds a known spell
func (s *Spellcasting) AddSpell(spell Spell) {
	s.known = append(s.known, spell)
}

// KnownSpells returns the known spell list in insertion order
func (s *Spellcasting) KnownSpells() []Spell { return s.known }

// Slots returns remaining regular slots for a spell level
func (s *Spellcasting) Slots(level int) int {
	if level < 1 || level > 9 {
		return 0
	}
	return s.slots[level]
}

// HasSlot reports whether a slot of at least the given level is available,
// counting pact slots at or above that level.
func (s *Spellcasting) HasSlot(level int) bool {
	if level >= 1 && level <= 9 && s.slots[level] > 0 {
		return true
	}
	if s.pact != nil && s.pact.Has(1) && s.pact.SlotLevel() >= level {
		return true
	}
	return false
}

// UseSlot consumes a slot for a spell of the given level: a regular slot of
// exactly that level first, then a pact slot at or above it. It returns false
// when nothing is available, mirroring HasSlot.
func (s *Spellcasting) UseSlot(level int) bool {
	if level >= 1 && level <= 9 && s.slots[level] > 0 {
		s.slots[level]--
		return true
	}
	if s.pact != nil && s.pact.SlotLevel() >= level && s.pact.Use(1) {
		return true
	}
	return false
}

// HighestSlot returns the highest slot level with a slot available, capped at
// maxSlot; zero when none.
func (s *Spellcasting) HighestSlot(maxSlot int) int {
	highest := 0
	for level := 1; level <= 9 && level <= maxSlot; level++ {
		if s.slots[level] > 0 {
			highest = level
		}
	}
	if s.pact != nil && s.pact.Has(1) && s.pact.SlotLevel() <= maxSlot && s.pact.SlotLevel() > highest {
		highest = s.pact.SlotLevel()
	}
	return highest
}

// LowestSlot returns the lowest slot level at or above minSlot with a slot
// available; zero when none.
func (s *Spellcasting) LowestSlot(minSlot int) int {
	lowest := 0
	for level := 9; level >= 1 && level >= minSlot; level-- {
		if s.slots[level] > 0 {
			lowest = level
		}
	}
	if s.pact != nil && s.pact.Has(1) && s.pact.SlotLevel() >= minSlot {
		if lowest == 0 || s.pact.SlotLevel() < lowest {
			lowest = s.pact.SlotLevel()
		}
	}
	return lowest
}

// SetConcentration moves concentration to a new spell, dropping the old one.
// Pass nil to end concentration.
func (s *Spellcasting) SetConcentration(spell Spell) {
	s.conc = spell
}

// IsConcentrating reports whether any concentration spell is active
func (s *Spellcasting) IsConcentrating() bool { return s.conc != nil }

// ConcentratingOn reports whether concentration is held on a named spell
func (s *Spellcasting) ConcentratingOn(name string) bool {
	return s.conc != nil && s.conc.Name() == name
}

// Cast consumes a slot and applies the spell. Casting a leveled spell with no
// slot available is an internal fault: callers are expected to check HasSlot
// first, and an approximated cast would corrupt aggregates.
func (s *Spellcasting) Cast(caster *Entity, spell Spell, target *Entity) error {
	if spell.Slot() > 0 && !s.UseSlot(spell.Slot()) {
		return errors.Internalf("no level %d slot available for %s", spell.Slot(), spell.Name())
	}

	if spell.Concentration() {
		s.SetConcentration(spell)
	}

	if err := caster.bus.Emit(&CastSpellEvent{Actor: caster, Spell: spell}); err != nil {
		return err
	}

	return spell.Cast(caster, target)
}

// CantripDice returns the cantrip damage dice count for a character level,
// scaling at levels 5, 11 and 17.
func CantripDice(level int) int {
	switch {
	case level >= 17:
		return 4
	case level >= 11:
		return 3
	case level >= 5:
		return 2
	default:
		return 1
	}
}
