package combat

import (
	"github.com/KirkDiggler/dnd-combat-sim/internal/errors"
	"github.com/KirkDiggler/dnd-combat-sim/internal/events"
)

// ResetPolicy controls which rest refills a resource
type ResetPolicy string

const (
	ResetShortRest ResetPolicy = "short_rest"
	ResetLongRest  ResetPolicy = "long_rest"
	ResetNever     ResetPolicy = "never"
)

// ResourceConfig configures a limited-use resource
type ResourceConfig struct {
	Name  string
	Max   int
	Reset ResetPolicy
}

// Resource is a counter with a maximum and a reset policy. It listens for
// rest events on its owner's bus: a long rest always refills it regardless of
// policy, a short rest refills it only under ResetShortRest.
type Resource struct {
	name    string
	current int
	max     int
	reset   ResetPolicy
}

// NewResource creates a resource at full capacity
func NewResource(cfg ResourceConfig) (*Resource, error) {
	if cfg.Name == "" {
		return nil, errors.InvalidArgument("resource name is required")
	}
	if cfg.Max < 0 {
		return nil, errors.InvalidArgumentf("resource %s max must not be negative, got %d", cfg.Name, cfg.Max)
	}

	reset := cfg.Reset
	if reset == "" {
		reset = ResetLongRest
	}

	return &Resource{
		name:    cfg.Name,
		current: cfg.Max,
		max:     cfg.Max,
		reset:   reset,
	}, nil
}

func (r *Resource) ID() string { return "resource:" + r.name }

func (r *Resource) Events() []events.EventType {
	return []events.EventType{events.EventShortRest, events.EventLongRest}
}

func (r *Resource) HandleEvent(event events.Event) error {
	switch event.EventType() {
	case events.EventShortRest:
		if r.reset == ResetShortRest {
			r.Reset()
		}
	case events.EventLongRest:
		// Long rests are a superset recovery
		r.Reset()
	}
	return nil
}

// Name returns the resource name
func (r *Resource) Name() string { return r.name }

// Current returns the uses remaining
func (r *Resource) Current() int { return r.current }

// Max returns the maximum uses
func (r *Resource) Max() int { return r.max }

// Has reports whether at least amount uses remain
func (r *Resource) Has(amount int) bool {
	return r.current >= amount
}

// Use consumes amount uses. It returns false and leaves the count unchanged
// when fewer than amount remain; running dry is expected control flow.
func (r *Resource) Use(amount int) bool {
	if r.current < amount {
		return false
	}
	r.current -= amount
	return true
}

// Gain restores uses up to the maximum
func (r *Resource) Gain(amount int) {
	r.current = min(r.max, r.current+amount)
}

// Reset refills the resource to its maximum
func (r *Resource) Reset() {
	r.current = r.max
}

// IncreaseMax raises the maximum without granting uses
func (r *Resource) IncreaseMax(amount int) {
	r.max += amount
}

// PactSlots is the pact-magic resource: both the slot count and the shared
// slot level derive from the owning level and are recomputed on level change.
// Slots refill on short rest.
type PactSlots struct {
	level     int
	slotLevel int
	current   int
	max       int
}

// NewPactSlots creates pact slots for a warlock level
func NewPactSlots(level int) (*PactSlots, error) {
	if level < 1 || level > 20 {
		return nil, errors.InvalidArgumentf("pact slot level must be 1-20, got %d", level)
	}

	p := &PactSlots{}
	p.SetLevel(level)
	return p, nil
}

// SetLevel recomputes slot level and count for a new owning level
func (p *PactSlots) SetLevel(level int) {
	p.level = level

	switch {
	case level >= 9:
		p.slotLevel = 5
	case level >= 7:
		p.slotLevel = 4
	case level >= 5:
		p.slotLevel = 3
	case level >= 3:
		p.slotLevel = 2
	default:
		p.slotLevel = 1
	}

	switch {
	case level >= 17:
		p.max = 4
	case level >= 11:
		p.max = 3
	case level >= 2:
		p.max = 2
	default:
		p.max = 1
	}

	p.current = p.max
}

func (p *PactSlots) ID() string { return "resource:pact-slots" }

func (p *PactSlots) Events() []events.EventType {
	return []events.EventType{events.EventShortRest, events.EventLongRest}
}

func (p *PactSlots) HandleEvent(event events.Event) error {
	switch event.EventType() {
	case events.EventShortRest, events.EventLongRest:
		p.Reset()
	}
	return nil
}

// SlotLevel returns the level every pact slot is cast at
func (p *PactSlots) SlotLevel() int { return p.slotLevel }

// Current returns the slots remaining
func (p *PactSlots) Current() int { return p.current }

// Max returns the slot count
func (p *PactSlots) Max() int { return p.max }

// Has reports whether at least amount slots remain
func (p *PactSlots) Has(amount int) bool {
	return p.current >= amount
}

// Use consumes amount slots, returning false if too few remain
func (p *PactSlots) Use(amount int) bool {
	if p.current < amount {
		return false
	}
	p.current -= amount
	return true
}

// Reset refills all slots
func (p *PactSlots) Reset() {
	p.current = p.max
}
