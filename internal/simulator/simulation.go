package simulator

import (
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/combat"
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/shared"
	"github.com/KirkDiggler/dnd-combat-sim/internal/errors"
)

// Defaults for the adventuring-day model: three fights of five rounds
// between long rests.
const (
	DefaultRoundsPerFight = 5
	DefaultFightsPerRest  = 3
	DefaultIterations     = 500
	MaxIterations         = 10000
)

// Config builds a damage-per-round simulation
type Config struct {
	Character *combat.Entity
	Target    *combat.Entity

	// Fights and Rounds default to the adventuring-day model when zero
	Fights int
	Rounds int
}

// Simulation runs one character through an adventuring day against a
// stationary target: fights separated by short rests, a long rest up front.
type Simulation struct {
	character *combat.Entity
	target    *combat.Entity
	fights    int
	rounds    int
	recorder  *Recorder
}

// Report summarizes one adventuring day
type Report struct {
	TotalDamage    int
	Rounds         int
	DPR            float64
	DamageBySource map[string]int
	Attacks        int
	Hits           int
	Crits          int
}

// New validates and builds a simulation, attaching an attack recorder to the
// character's bus.
func New(cfg Config) (*Simulation, error) {
	if cfg.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}
	if cfg.Target == nil {
		return nil, errors.InvalidArgument("target is required")
	}
	if cfg.Fights < 0 || cfg.Rounds < 0 {
		return nil, errors.InvalidArgumentf("fights and rounds must be positive, got %d and %d", cfg.Fights, cfg.Rounds)
	}

	s := &Simulation{
		character: cfg.Character,
		target:    cfg.Target,
		fights:    cfg.Fights,
		rounds:    cfg.Rounds,
		recorder:  NewRecorder(),
	}
	if s.fights == 0 {
		s.fights = DefaultFightsPerRest
	}
	if s.rounds == 0 {
		s.rounds = DefaultRoundsPerFight
	}

	s.character.Bus().Register(s.recorder)
	return s, nil
}

// Run plays out the adventuring day and reports the damage dealt. Both sides
// long-rest first, so back-to-back runs on the same entities start clean.
func (s *Simulation) Run() (*Report, error) {
	if err := s.character.LongRest(); err != nil {
		return nil, err
	}
	if err := s.target.LongRest(); err != nil {
		return nil, err
	}
	s.recorder.Reset()

	for fight := 0; fight < s.fights; fight++ {
		for round := 1; round <= s.rounds; round++ {
			if err := s.character.Turn(s.target, round); err != nil {
				return nil, errors.Wrapf(err, "fight %d round %d", fight+1, round)
			}
			if err := s.character.EnemyTurn(s.target); err != nil {
				return nil, err
			}
			// the target spends its turn standing back up when toppled
			if s.target.HasCondition(shared.ConditionProne) {
				s.target.ClearCondition(shared.ConditionProne)
			}
		}
		if fight < s.fights-1 {
			if err := s.character.ShortRest(); err != nil {
				return nil, err
			}
			if err := s.target.ShortRest(); err != nil {
				return nil, err
			}
		}
	}

	rounds := s.fights * s.rounds
	total := s.target.TotalDamageTaken()
	return &Report{
		TotalDamage:    total,
		Rounds:         rounds,
		DPR:            float64(total) / float64(rounds),
		DamageBySource: s.target.DamageBySource(),
		Attacks:        s.recorder.Attacks(),
		Hits:           s.recorder.Hits(),
		Crits:          s.recorder.Crits(),
	}, nil
}
