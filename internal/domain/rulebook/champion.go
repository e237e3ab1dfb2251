package rulebook

import (
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/combat"
	"github.com/KirkDiggler/dnd-combat-sim/internal/events"
)

// Champion crit thresholds: Improved Critical at subclass level 3, Superior
// Critical at 15.
const (
	CritThresholdImproved = 19
	CritThresholdSuperior = 18
)

// Champion milestone levels
const (
	championImprovedCritical = 3
	championHeroicAdvantage  = 10
	championSuperiorCritical = 15
)

// ImprovedCritical proposes a lowered crit threshold on every attack roll.
// The pipeline keeps the lowest proposal.
type ImprovedCritical struct {
	threshold int
}

// NewImprovedCritical creates the champion crit feature
func NewImprovedCritical(threshold int) *ImprovedCritical {
	return &ImprovedCritical{threshold: threshold}
}

func (c *ImprovedCritical) Name() string { return "Improved Critical" }

func (c *ImprovedCritical) Apply(owner *combat.Entity) error { return nil }

func (c *ImprovedCritical) ID() string { return "feat:improved-critical" }

func (c *ImprovedCritical) Events() []events.EventType {
	return []events.EventType{events.EventAttackRoll}
}

func (c *ImprovedCritical) HandleEvent(event events.Event) error {
	if ev, ok := event.(*combat.AttackRollEvent); ok {
		ev.ProposeCritThreshold(c.threshold)
	}
	return nil
}

// heroicAdvantageThreshold is the d20 result below which the reroll triggers
const heroicAdvantageThreshold = 8

// HeroicAdvantage turns one low attack roll per turn into a roll with
// advantage. Under disadvantage the already-resolved roll is checked and the
// first die rerolled; otherwise the existing second die becomes live through
// the advantage flag.
type HeroicAdvantage struct {
	used bool
}

// NewHeroicAdvantage creates the champion level 10 feature
func NewHeroicAdvantage() *HeroicAdvantage { return &HeroicAdvantage{} }

func (h *HeroicAdvantage) Name() string { return "Heroic Advantage" }

func (h *HeroicAdvantage) Apply(owner *combat.Entity) error { return nil }

func (h *HeroicAdvantage) ID() string { return "feat:heroic-advantage" }

func (h *HeroicAdvantage) Events() []events.EventType {
	return []events.EventType{events.EventBeginTurn, events.EventAttackRoll}
}

func (h *HeroicAdvantage) HandleEvent(event events.Event) error {
	switch ev := event.(type) {
	case *combat.TurnEvent:
		h.used = false
	case *combat.AttackRollEvent:
		if h.used || ev.Adv {
			return nil
		}

		if ev.Disadv {
			if ev.Roll() < heroicAdvantageThreshold {
				h.used = true
				ev.Adv = true
				return ev.RerollFirst()
			}
			return nil
		}

		if ev.Roll1 < heroicAdvantageThreshold {
			h.used = true
			ev.Adv = true
		}
	}
	return nil
}
