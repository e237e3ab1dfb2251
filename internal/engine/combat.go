package engine

import (
	"fmt"
	"sort"

	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/combat"
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/shared"
	"github.com/KirkDiggler/dnd-combat-sim/internal/errors"
	"github.com/KirkDiggler/dnd-combat-sim/internal/events"
	"github.com/KirkDiggler/dnd-combat-sim/internal/uuid"
)

// MaxCombatRounds caps an encounter; hitting the cap is a draw
const MaxCombatRounds = 100

// Winner identifiers in combat results
const (
	WinnerParty    = "party"
	WinnerMonsters = "monsters"
	WinnerNobody   = "nobody"
)

// Config sets up one encounter
type Config struct {
	Party   []*combat.Entity
	Enemies []*combat.Entity

	// IDGen overrides the combatant ID source, for tests
	IDGen uuid.Generator
}

// Result summarizes a finished encounter
type Result struct {
	Winner     string
	Rounds     int
	FinalState []CombatantState
}

// CombatantState is one line of the final-state report
type CombatantState struct {
	Name   string
	Team   string
	Status string
	HP     string
}

// Combat runs a single encounter: initiative, a rotating turn order, AI
// target selection and victory detection. Defeated combatants stay in the
// rotation and are skipped, so the round boundary stays stable.
type Combat struct {
	party      []*Combatant
	enemies    []*Combatant
	combatants []*Combatant
	turnOrder  []*Combatant
	rounds     int
	log        []string
}

// New wraps the participants for an encounter
func New(cfg Config) (*Combat, error) {
	if len(cfg.Party) == 0 {
		return nil, errors.InvalidArgument("party must have at least one member")
	}
	if len(cfg.Enemies) == 0 {
		return nil, errors.InvalidArgument("enemies must have at least one member")
	}

	idGen := cfg.IDGen
	if idGen == nil {
		idGen = uuid.NewGoogleUUIDGenerator()
	}

	c := &Combat{}
	for _, e := range cfg.Party {
		c.party = append(c.party, NewCombatant(idGen.New(), e, TeamParty))
	}
	for _, e := range cfg.Enemies {
		c.enemies = append(c.enemies, NewCombatant(idGen.New(), e, TeamEnemies))
	}
	c.combatants = append(append([]*Combatant{}, c.party...), c.enemies...)

	return c, nil
}

// Rounds returns the completed round count
func (c *Combat) Rounds() int { return c.rounds }

// Party returns the party-side combatants
func (c *Combat) Party() []*Combatant { return c.party }

// Enemies returns the enemy-side combatants
func (c *Combat) Enemies() []*Combatant { return c.enemies }

// TurnOrder returns the current rotation, next actor first
func (c *Combat) TurnOrder() []*Combatant { return c.turnOrder }

// Log returns the combat log accumulated so far
func (c *Combat) Log() []string { return c.log }

// Setup readies the encounter: everyone takes a long rest, rolls initiative,
// and the turn order is sorted highest first.
func (c *Combat) Setup() error {
	for _, cb := range c.combatants {
		if err := cb.Entity.LongRest(); err != nil {
			return err
		}
		cb.CurrentHP = cb.Entity.HP
		cb.Down = false
		if err := cb.RollInitiative(); err != nil {
			return err
		}
	}

	c.sortTurnOrder()
	c.rounds = 0

	names := make([]string, 0, len(c.turnOrder))
	for _, cb := range c.turnOrder {
		names = append(names, cb.Entity.Name)
	}
	c.logf("combat starts, turn order: %v", names)
	return nil
}

// RecreateTurnOrder re-rolls initiative without resetting HP or resources,
// the degraded-resume path when the previous order cannot be restored.
func (c *Combat) RecreateTurnOrder() error {
	for _, cb := range c.combatants {
		if err := cb.RollInitiative(); err != nil {
			return err
		}
	}
	c.sortTurnOrder()
	c.logf("turn order re-established")
	return nil
}

func (c *Combat) sortTurnOrder() {
	c.turnOrder = append([]*Combatant{}, c.combatants...)
	sort.SliceStable(c.turnOrder, func(i, j int) bool {
		return c.turnOrder[i].Initiative > c.turnOrder[j].Initiative
	})
}

// Run executes the encounter until one side falls or the round ceiling hits
func (c *Combat) Run() (*Result, error) {
	if err := c.Setup(); err != nil {
		return nil, err
	}

	for !c.IsOver() {
		if err := c.AdvanceTurn(); err != nil {
			return nil, err
		}
	}

	return &Result{
		Winner:     c.winner(),
		Rounds:     c.rounds,
		FinalState: c.FinalState(),
	}, nil
}

// AdvanceTurn runs a single combatant's turn and rotates the order. A round
// completes when the rotation wraps back to the first combatant; the counter
// advances even when the sub-turn is skipped, so the round ceiling always
// holds.
func (c *Combat) AdvanceTurn() error {
	if c.IsOver() {
		return nil
	}
	if len(c.turnOrder) == 0 {
		if err := c.Setup(); err != nil {
			return err
		}
	}

	actor := c.turnOrder[0]
	c.turnOrder = append(c.turnOrder[1:], actor)
	wrapped := c.turnOrder[0] == c.combatants[0]

	err := c.subTurn(actor)

	if wrapped {
		c.rounds++
	}
	return err
}

func (c *Combat) subTurn(actor *Combatant) error {
	if actor.Down {
		return nil
	}

	targets := c.validTargets(actor)
	if len(targets) == 0 {
		return nil
	}

	var target *Combatant
	if actor.Team == TeamEnemies {
		target = c.selectTarget(actor, targets)
	} else {
		target = targets[0]
	}

	if err := c.runTurn(actor, target); err != nil {
		return err
	}
	target.SyncHP()
	return nil
}

// runTurn dispatches between ability-driven and scripted turns. Characters
// carry action listeners and run the full lifecycle; stat-block monsters
// have none and act through the behavior script.
func (c *Combat) runTurn(actor, target *Combatant) error {
	if actor.Entity.Bus().HasListeners(events.EventAction) {
		return actor.Entity.Turn(target.Entity, c.rounds)
	}
	return c.monsterTurn(actor, target)
}

// monsterTurn is the scripted stat-block turn: stand up when prone, then
// heal, cast or swing depending on behavior.
func (c *Combat) monsterTurn(actor, target *Combatant) error {
	e := actor.Entity

	if e.HasCondition(shared.ConditionProne) {
		e.ClearCondition(shared.ConditionProne)
		c.logf("%s stands up from prone", e.Name)
		return nil
	}

	switch e.Behavior {
	case shared.AISupport:
		if done, err := c.supportAction(actor); done || err != nil {
			return err
		}
	case shared.AICaster:
		if spell := highestCastable(e); spell != nil {
			c.logf("%s casts %s at %s", e.Name, spell.Name(), target.Entity.Name)
			return e.Spellcasting.Cast(e, spell, target.Entity)
		}
	}

	return c.basicAttack(e, target.Entity)
}

// supportAction heals the most injured living ally when a healing spell is
// castable. Reports whether the action was consumed.
func (c *Combat) supportAction(actor *Combatant) (bool, error) {
	e := actor.Entity
	if e.Spellcasting == nil {
		return false, nil
	}

	injured := c.injuredAllies(actor)
	if len(injured) == 0 {
		return false, nil
	}

	heal := injured[0]
	for _, ally := range injured[1:] {
		if ally.CurrentHP < heal.CurrentHP {
			heal = ally
		}
	}

	for _, spell := range e.Spellcasting.KnownSpells() {
		if !spell.IsHealing() || !e.Spellcasting.HasSlot(spell.Slot()) {
			continue
		}
		c.logf("%s casts %s on %s", e.Name, spell.Name(), heal.Entity.Name)
		if err := e.Spellcasting.Cast(e, spell, heal.Entity); err != nil {
			return true, err
		}
		heal.SyncHP()
		return true, nil
	}
	return false, nil
}

// highestCastable returns the highest-level spell with a slot available,
// nil when nothing is castable. Cantrips always qualify.
func highestCastable(e *combat.Entity) combat.Spell {
	if e.Spellcasting == nil {
		return nil
	}

	var best combat.Spell
	for _, spell := range e.Spellcasting.KnownSpells() {
		if spell.Slot() > 0 && !e.Spellcasting.HasSlot(spell.Slot()) {
			continue
		}
		if best == nil || spell.Slot() > best.Slot() {
			best = spell
		}
	}
	return best
}

// basicAttack is the stat-block fallback: a strength-based d6 swing through
// the standard pipeline, logged under the monster's name.
func (c *Combat) basicAttack(attacker, target *combat.Entity) error {
	weapon := &combat.Weapon{
		Name:       attacker.Name,
		Dice:       []int{6},
		DamageType: shared.DamagePiercing,
	}
	return attacker.WeaponAttackTarget(target, weapon)
}

func (c *Combat) validTargets(actor *Combatant) []*Combatant {
	var pool []*Combatant
	if actor.Team == TeamParty {
		pool = c.enemies
	} else {
		pool = c.party
	}

	alive := make([]*Combatant, 0, len(pool))
	for _, cb := range pool {
		if cb.IsAlive() {
			alive = append(alive, cb)
		}
	}
	return alive
}

func (c *Combat) injuredAllies(actor *Combatant) []*Combatant {
	allies := c.party
	if actor.Team == TeamEnemies {
		allies = c.enemies
	}

	var injured []*Combatant
	for _, ally := range allies {
		if ally.IsAlive() && ally.CurrentHP < ally.Entity.MaxHP {
			injured = append(injured, ally)
		}
	}
	return injured
}

// selectTarget applies the actor's targeting behavior. Brutes chase the
// highest threat rating; everyone else picks the lowest current HP, falling
// back to the first target when nobody is hurt yet.
func (c *Combat) selectTarget(actor *Combatant, targets []*Combatant) *Combatant {
	if actor.Entity.Behavior == shared.AIBrute {
		best := targets[0]
		for _, t := range targets[1:] {
			if t.Entity.ThreatRating > best.Entity.ThreatRating {
				best = t
			}
		}
		c.logf("%s targets %s (threat %d)", actor.Entity.Name, best.Entity.Name, best.Entity.ThreatRating)
		return best
	}

	allFull := true
	best := targets[0]
	for _, t := range targets {
		if t.CurrentHP < t.Entity.MaxHP {
			allFull = false
		}
		if t.CurrentHP < best.CurrentHP {
			best = t
		}
	}
	if allFull {
		// Nobody is hurt yet: spread the opening attacks
		best = targets[pick(actor, len(targets))]
	}
	c.logf("%s targets %s (hp %d)", actor.Entity.Name, best.Entity.Name, best.CurrentHP)
	return best
}

// pick chooses a target index off the actor's own roller so target spread
// stays deterministic under a seeded or mocked roller.
func pick(actor *Combatant, n int) int {
	if n <= 1 {
		return 0
	}
	result, err := actor.Entity.Roller().Roll(1, n, 0)
	if err != nil {
		return 0
	}
	return result.Total - 1
}

// IsOver reports whether a side has fallen or the round ceiling was reached
func (c *Combat) IsOver() bool {
	return !c.anyAlive(c.party) || !c.anyAlive(c.enemies) || c.rounds >= MaxCombatRounds
}

// PartyWins reports a party victory
func (c *Combat) PartyWins() bool {
	return c.anyAlive(c.party) && !c.anyAlive(c.enemies)
}

// MonstersWin reports an enemy victory
func (c *Combat) MonstersWin() bool {
	return !c.anyAlive(c.party) && c.anyAlive(c.enemies)
}

func (c *Combat) winner() string {
	switch {
	case c.PartyWins():
		return WinnerParty
	case c.MonstersWin():
		return WinnerMonsters
	default:
		return WinnerNobody
	}
}

func (c *Combat) anyAlive(side []*Combatant) bool {
	for _, cb := range side {
		if cb.IsAlive() {
			return true
		}
	}
	return false
}

// FinalState reports every combatant's standing
func (c *Combat) FinalState() []CombatantState {
	state := make([]CombatantState, 0, len(c.combatants))
	for _, cb := range c.combatants {
		state = append(state, CombatantState{
			Name:   cb.Entity.Name,
			Team:   cb.Team,
			Status: cb.Status(),
			HP:     fmt.Sprintf("%d/%d", cb.CurrentHP, cb.Entity.MaxHP),
		})
	}
	return state
}

func (c *Combat) logf(format string, args ...any) {
	c.log = append(c.log, fmt.Sprintf(format, args...))
}
