package simulator

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/combat"
	"github.com/KirkDiggler/dnd-combat-sim/internal/errors"
)

// BuildFunc creates a fresh entity for one trial. Entities and their event
// buses are single-threaded, so every trial gets its own.
type BuildFunc func() (*combat.Entity, error)

// TrialsConfig drives many independent adventuring days in parallel
type TrialsConfig struct {
	BuildFunc  BuildFunc
	TargetFunc BuildFunc

	// Iterations defaults to DefaultIterations and is capped at MaxIterations
	Iterations int

	Fights int
	Rounds int

	// Parallelism bounds concurrent trials, defaulting to GOMAXPROCS
	Parallelism int
}

// TrialsResult aggregates the trial reports. A failed trial drops out of the
// aggregate instead of corrupting it; Failed counts such trials and FirstErr
// keeps one sample for diagnosis.
type TrialsResult struct {
	Iterations     int
	Succeeded      int
	Failed         int
	FirstErr       error
	TotalDamage    int
	DPR            float64
	DamageBySource map[string]int
	Attacks        int
	Hits           int
	Crits          int
}

// HitRate returns the fraction of attacks that hit
func (r *TrialsResult) HitRate() float64 {
	if r.Attacks == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Attacks)
}

// CritRate returns the fraction of attacks that crit
func (r *TrialsResult) CritRate() float64 {
	if r.Attacks == 0 {
		return 0
	}
	return float64(r.Crits) / float64(r.Attacks)
}

// RunTrials runs the configured number of adventuring days, each with fresh
// entities, and aggregates the damage. Aggregation is commutative, so the
// nondeterministic completion order does not affect the result. Individual
// trial failures are isolated and counted; the run errors out only when
// cancelled or when every trial failed.
func RunTrials(ctx context.Context, cfg TrialsConfig) (*TrialsResult, error) {
	if cfg.BuildFunc == nil {
		return nil, errors.InvalidArgument("build func is required")
	}
	if cfg.TargetFunc == nil {
		return nil, errors.InvalidArgument("target func is required")
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
	agg := &TrialsResult{
		Iterations:     iterations,
		DamageBySource: make(map[string]int),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i := 0; i < iterations; i++ {
		trial := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			report, err := runTrial(cfg)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				agg.Failed++
				if agg.FirstErr == nil {
					agg.FirstErr = errors.Wrapf(err, "trial %d", trial)
				}
				return nil
			}
			agg.Succeeded++
			agg.TotalDamage += report.TotalDamage
			agg.Attacks += report.Attacks
			agg.Hits += report.Hits
			agg.Crits += report.Crits
			for source, damage := range report.DamageBySource {
				agg.DamageBySource[source] += damage
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if agg.Succeeded == 0 {
		return nil, errors.Wrap(agg.FirstErr, "all trials failed")
	}

	fights := cfg.Fights
	if fights == 0 {
		fights = DefaultFightsPerRest
	}
	rounds := cfg.Rounds
	if rounds == 0 {
		rounds = DefaultRoundsPerFight
	}
	agg.DPR = float64(agg.TotalDamage) / float64(fights*rounds*agg.Succeeded)

	return agg, nil
}

func runTrial(cfg TrialsConfig) (*Report, error) {
	character, err := cfg.BuildFunc()
	if err != nil {
		return nil, errors.Wrap(err, "building character")
	}
	target, err := cfg.TargetFunc()
	if err != nil {
		return nil, errors.Wrap(err, "building target")
	}

	sim, err := New(Config{
		Character: character,
		Target:    target,
		Fights:    cfg.Fights,
		Rounds:    cfg.Rounds,
	})
	if err != nil {
		return nil, err
	}
	return sim.Run()
}
