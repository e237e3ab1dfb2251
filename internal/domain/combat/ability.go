package combat

import (
	"github.com/KirkDiggler/dnd-combat-sim/internal/events"
)

// Ability is a unit of behavior attached to an entity. Attaching calls Apply
// once for one-time setup (stat bumps, resources, masteries), then registers
// the ability on the entity's bus for every event type it declares.
//
// Abilities reach the entity only through event payloads, never through a
// stored back-reference. Private per-turn state belongs to the ability and is
// reset by the ability itself on the appropriate lifecycle event.
type Ability interface {
	events.Listener

	// Name identifies the ability for lookups and logging
	Name() string

	// Apply performs one-time setup when the ability is attached
	Apply(owner *Entity) error
}
