package events

// EventType represents the type of game event
type EventType string

// Lifecycle, attack, and rest events an ability can observe. Emission order
// within a turn follows the entity turn loop; emission order within an attack
// follows the attack pipeline.
const (
	EventBeginTurn    EventType = "begin_turn"
	EventBeforeAction EventType = "before_action"
	EventAction       EventType = "action"
	EventAfterAction  EventType = "after_action"
	EventEndTurn      EventType = "end_turn"
	EventEnemyTurn    EventType = "enemy_turn"
	EventBeforeAttack EventType = "before_attack"
	EventAttackRoll   EventType = "attack_roll"
	EventAttackResult EventType = "attack_result"
	EventDamageRoll   EventType = "damage_roll"
	EventCastSpell    EventType = "cast_spell"
	EventShortRest    EventType = "short_rest"
	EventLongRest     EventType = "long_rest"
)

// Event is the base interface for all game events
type Event interface {
	EventType() EventType
}

// Listener processes events. Listeners declare up front which event types
// they handle; the bus only dispatches declared types to them.
type Listener interface {
	// ID uniquely identifies the listener for idempotent registration
	ID() string

	// Events returns the event types this listener handles
	Events() []EventType

	// HandleEvent processes a single event, mutating its payload in place
	HandleEvent(event Event) error
}
