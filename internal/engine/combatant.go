package engine

import (
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/combat"
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/shared"
)

// Team identifiers
const (
	TeamParty   = "party"
	TeamEnemies = "enemies"
)

// Combatant statuses in the final-state report
const (
	StatusAlive    = "alive"
	StatusDefeated = "defeated"
)

// Combatant wraps an entity with per-encounter state. The HP snapshot and
// defeated flag live here so the same entity can fight again after a rest
// without dragging encounter state along.
type Combatant struct {
	ID         string
	Entity     *combat.Entity
	Team       string
	Initiative int
	CurrentHP  int
	Down       bool
}

// NewCombatant wraps an entity for one encounter
func NewCombatant(id string, entity *combat.Entity, team string) *Combatant {
	return &Combatant{
		ID:        id,
		Entity:    entity,
		Team:      team,
		CurrentHP: entity.HP,
	}
}

// RollInitiative rolls d20 plus the dexterity modifier
func (c *Combatant) RollInitiative() error {
	result, err := c.Entity.Roller().Roll(1, 20, c.Entity.Mod(shared.AbilityDex))
	if err != nil {
		return err
	}
	c.Initiative = result.Total
	return nil
}

// IsAlive reports whether the combatant is still in the fight
func (c *Combatant) IsAlive() bool { return !c.Down }

// SyncHP pulls the HP snapshot from the entity and marks defeat at zero.
// Entity HP changes during other combatants' turns; the snapshot is only
// refreshed here.
func (c *Combatant) SyncHP() {
	c.CurrentHP = c.Entity.HP
	if c.CurrentHP <= 0 && !c.Down {
		c.Down = true
		c.CurrentHP = 0
	}
}

// Status returns the report status string
func (c *Combatant) Status() string {
	if c.Down {
		return StatusDefeated
	}
	return StatusAlive
}
