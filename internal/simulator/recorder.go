package simulator

import (
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/combat"
	"github.com/KirkDiggler/dnd-combat-sim/internal/events"
)

// Recorder is a bus listener tallying attack outcomes for reporting. It is
// the tracking hook for the simulation: an ordinary listener on the
// character's bus, not instrumentation woven into the pipeline. Per-source
// damage is read off the target's own damage log.
type Recorder struct {
	attacks int
	hits    int
	crits   int
}

// NewRecorder creates an empty attack recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) ID() string { return "simulator:recorder" }

func (r *Recorder) Events() []events.EventType {
	return []events.EventType{events.EventAttackResult}
}

func (r *Recorder) HandleEvent(event events.Event) error {
	result, ok := event.(*combat.AttackResultEvent)
	if !ok {
		return nil
	}
	r.attacks++
	if result.Hits() {
		r.hits++
	}
	if result.Crit {
		r.crits++
	}
	return nil
}

// Reset zeroes the tallies
func (r *Recorder) Reset() {
	r.attacks, r.hits, r.crits = 0, 0, 0
}

// Attacks returns the attack count since the last reset
func (r *Recorder) Attacks() int { return r.attacks }

// Hits returns the hit count since the last reset
func (r *Recorder) Hits() int { return r.hits }

// Crits returns the critical-hit count since the last reset
func (r *Recorder) Crits() int { return r.crits }
