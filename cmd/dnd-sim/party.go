package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dnd-combat-sim/internal/config"
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/combat"
	"github.com/KirkDiggler/dnd-combat-sim/internal/domain/rulebook"
	"github.com/KirkDiggler/dnd-combat-sim/internal/engine"
	"github.com/KirkDiggler/dnd-combat-sim/internal/simulator"
)

func newPartyCmd(cfg *config.Config) *cobra.Command {
	var (
		build       string
		level       int
		partySize   int
		monsters    []string
		iterations  int
		parallelism int
	)

	cmd := &cobra.Command{
		Use:   "party",
		Short: "Run full encounters between a party and a monster group",
		Long: "Fights many independent encounters between copies of a character build " +
			"and a monster group, then reports win rates, average length and a sample " +
			"final roster.",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := simulator.RunPartyCombat(cmd.Context(), simulator.PartyConfig{
				PartyFunc: func() ([]*combat.Entity, error) {
					party := make([]*combat.Entity, 0, partySize)
					for i := 0; i < partySize; i++ {
						member, err := rulebook.Build(rulebook.BuildConfig{Kind: build, Level: level})
						if err != nil {
							return nil, err
						}
						party = append(party, member)
					}
					return party, nil
				},
				EnemiesFunc: func() ([]*combat.Entity, error) {
					enemies := make([]*combat.Entity, 0, len(monsters))
					for _, name := range monsters {
						monster, err := rulebook.NewMonster(name)
						if err != nil {
							return nil, err
						}
						enemies = append(enemies, monster)
					}
					return enemies, nil
				},
				Iterations:  iterations,
				Parallelism: parallelism,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Failed > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d encounters failed: %v\n",
					result.Failed, result.Iterations, result.FirstErr)
			}
			fmt.Fprintf(out, "encounters: %d\n", result.Iterations)
			for _, winner := range []string{engine.WinnerParty, engine.WinnerMonsters, engine.WinnerNobody} {
				fmt.Fprintf(out, "%-9s %5d  (%.1f%%)\n", winner, result.Wins[winner], result.WinRate(winner)*100)
			}
			fmt.Fprintf(out, "avg rounds: %.1f\n\n", result.AvgRounds)

			fmt.Fprintln(out, "sample final roster:")
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTEAM\tSTATUS\tHP")
			for _, state := range result.LastFinalState {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", state.Name, state.Team, state.Status, state.HP)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&build, "build", cfg.Sim.Build,
		fmt.Sprintf("character build (%s)", strings.Join(rulebook.BuildKinds(), ", ")))
	cmd.Flags().IntVar(&level, "level", 5, "character level for every party member")
	cmd.Flags().IntVar(&partySize, "size", 2, "party size")
	cmd.Flags().StringSliceVar(&monsters, "monsters", []string{rulebook.MonsterOrc, rulebook.MonsterGoblin},
		fmt.Sprintf("monster group (%s)", strings.Join(rulebook.MonsterNames(), ", ")))
	cmd.Flags().IntVar(&iterations, "iterations", cfg.Sim.Iterations, "independent encounters")
	cmd.Flags().IntVar(&parallelism, "parallelism", cfg.Sim.Parallelism, "concurrent encounters (0 = all CPUs)")
	return cmd
}
