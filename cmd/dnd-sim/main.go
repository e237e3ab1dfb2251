package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dnd-combat-sim/internal/config"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := newRootCmd(cfg).Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "dnd-sim",
		Short:         "Monte Carlo combat simulator for D&D 5e character builds",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newDPRCmd(cfg))
	root.AddCommand(newPartyCmd(cfg))
	return root
}
