package simulator

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/combat"
	"github.com/KirkDiggler/dnd-combat-sim/internal/engine"
	"github.com/KirkDiggler/dnd-combat-sim/internal/errors"
)

// SideFunc creates a fresh side for one encounter
type SideFunc func() ([]*combat.Entity, error)

// PartyConfig drives repeated full encounters between two sides
type PartyConfig struct {
	PartyFunc   SideFunc
	EnemiesFunc SideFunc

	// Iterations defaults to DefaultIterations and is capped at MaxIterations
	Iterations int

	// Parallelism bounds concurrent encounters, defaulting to GOMAXPROCS
	Parallelism int
}

// PartyResult aggregates encounter outcomes. Failed encounters drop out of
// the tallies and are counted separately.
type PartyResult struct {
	Iterations int
	Succeeded  int
	Failed     int
	FirstErr   error
	Wins       map[string]int
	AvgRounds  float64

	// LastFinalState is a sample roster from one finished encounter
	LastFinalState []engine.CombatantState
}

// WinRate returns the fraction of finished encounters won by the named side
func (r *PartyResult) WinRate(winner string) float64 {
	if r.Succeeded == 0 {
		return 0
	}
	return float64(r.Wins[winner]) / float64(r.Succeeded)
}

// RunPartyCombat fights the configured number of encounters, each with fresh
// entities, and tallies winners and average length.
func RunPartyCombat(ctx context.Context, cfg PartyConfig) (*PartyResult, error) {
	if cfg.PartyFunc == nil {
		return nil, errors.InvalidArgument("party func is required")
	}
	if cfg.EnemiesFunc == nil {
		return nil, errors.InvalidArgument("enemies func is required")
	}

	iterations := cfg.Iterations
	if iterations == 0 {
		iterations = DefaultIterations
	}
	if iterations < 1 || iterations > MaxIterations {
		return nil, errors.InvalidArgumentf("iterations must be 1-%d, got %d", MaxIterations, iterations)
	}

	parallelism := cfg.Parallelism
	if parallelism < 1 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	var mu sync.Mutex
	totalRounds := 0
	result := &PartyResult{
		Iterations: iterations,
		Wins:       make(map[string]int),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i := 0; i < iterations; i++ {
		encounter := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			outcome, err := runEncounter(cfg)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
				if result.FirstErr == nil {
					result.FirstErr = errors.Wrapf(err, "encounter %d", encounter)
				}
				return nil
			}
			result.Succeeded++
			result.Wins[outcome.Winner]++
			totalRounds += outcome.Rounds
			result.LastFinalState = outcome.FinalState
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if result.Succeeded == 0 {
		return nil, errors.Wrap(result.FirstErr, "all encounters failed")
	}

	result.AvgRounds = float64(totalRounds) / float64(result.Succeeded)
	return result, nil
}

func runEncounter(cfg PartyConfig) (*engine.Result, error) {
	party, err := cfg.PartyFunc()
	if err != nil {
		return nil, errors.Wrap(err, "building party")
	}
	enemies, err := cfg.EnemiesFunc()
	if err != nil {
		return nil, errors.Wrap(err, "building enemies")
	}

	c, err := engine.New(engine.Config{Party: party, Enemies: enemies})
	if err != nil {
		return nil, err
	}
	return c.Run()
}
