package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dnd-combat-sim/internal/config"
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/combat"
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/rulebook"
	"github.com/KirkDiggler/dnd-combat-sim/internal/errors"
	"github.com/KirkDiggler/dnd-combat-sim/internal/simulator"
)

// Training target flavors for the dpr command
const (
	targetTraining = "training"
	targetLowAC    = "low"
	targetHighAC   = "high"
	targetBoss     = "boss"
)

func newDPRCmd(cfg *config.Config) *cobra.Command {
	var (
		build       string
		levels      string
		target      string
		iterations  int
		fights      int
		rounds      int
		parallelism int
	)

	cmd := &cobra.Command{
		Use:   "dpr",
		Short: "Estimate damage per round for a build across levels",
		Long: "Runs many independent adventuring days for a character build against a " +
			"training target and reports average damage per round, hit rate and crit rate " +
			"for each requested level.",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := simulator.ParseLevels(levels)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "LEVEL\tDPR\tHIT%\tCRIT%\tTOTAL")
			for _, level := range parsed {
				result, err := simulator.RunTrials(cmd.Context(), simulator.TrialsConfig{
					BuildFunc: func() (*combat.Entity, error) {
						return rulebook.Build(rulebook.BuildConfig{Kind: build, Level: level})
					},
					TargetFunc:  targetFunc(target, level),
					Iterations:  iterations,
					Fights:      fights,
					Rounds:      rounds,
					Parallelism: parallelism,
				})
				if err != nil {
					return errors.Wrapf(err, "level %d", level)
				}
				if result.Failed > 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), "level %d: %d of %d trials failed: %v\n",
						level, result.Failed, result.Iterations, result.FirstErr)
				}

				fmt.Fprintf(w, "%d\t%.2f\t%.1f\t%.1f\t%d\n",
					level, result.DPR, result.HitRate()*100, result.CritRate()*100, result.TotalDamage)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&build, "build", cfg.Sim.Build,
		fmt.Sprintf("character build (%s)", strings.Join(rulebook.BuildKinds(), ", ")))
	cmd.Flags().StringVar(&levels, "levels", cfg.Sim.Levels, "level or inclusive range, e.g. 5 or 1-20")
	cmd.Flags().StringVar(&target, "target", targetTraining, "target flavor (training, low, high, boss)")
	cmd.Flags().IntVar(&iterations, "iterations", cfg.Sim.Iterations, "independent trials per level")
	cmd.Flags().IntVar(&fights, "fights", cfg.Sim.Fights, "fights per long rest")
	cmd.Flags().IntVar(&rounds, "rounds", cfg.Sim.Rounds, "rounds per fight")
	cmd.Flags().IntVar(&parallelism, "parallelism", cfg.Sim.Parallelism, "concurrent trials (0 = all CPUs)")
	return cmd
}

func targetFunc(flavor string, level int) simulator.BuildFunc {
	return func() (*combat.Entity, error) {
		switch flavor {
		case targetTraining:
			return rulebook.NewTrainingTarget(rulebook.TargetConfig{Level: level})
		case targetLowAC:
			return rulebook.NewLowACTarget(level)
		case targetHighAC:
			return rulebook.NewHighACTarget(level)
		case targetBoss:
			return rulebook.NewBossTarget(level)
		default:
			return nil, errors.NotFoundf("unknown target flavor %q", flavor)
		}
	}
}
