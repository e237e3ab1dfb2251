package config

import (
	"os"
	"strconv"

	"github.com/KirkDiggler/dnd-combat-sim/internal/errors"
	"github.com/KirkDiggler/dnd-combat-sim/internal/simulator"
)

// Config holds the simulation defaults, overridable per run from the
// command line.
type Config struct {
	Sim SimConfig
}

// SimConfig holds simulation sizing defaults
type SimConfig struct {
	Iterations  int
	Fights      int
	Rounds      int
	Parallelism int
	Levels      string
	Build       string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Sim: SimConfig{
			Iterations:  getEnvAsIntOrDefault("SIM_ITERATIONS", simulator.DefaultIterations),
			Fights:      getEnvAsIntOrDefault("SIM_FIGHTS", simulator.DefaultFightsPerRest),
			Rounds:      getEnvAsIntOrDefault("SIM_ROUNDS", simulator.DefaultRoundsPerFight),
			Parallelism: getEnvAsIntOrDefault("SIM_PARALLELISM", 0),
			Levels:      getEnvOrDefault("SIM_LEVELS", "1-20"),
			Build:       getEnvOrDefault("SIM_BUILD", "fighter"),
		},
	}

	if cfg.Sim.Iterations < 1 || cfg.Sim.Iterations > simulator.MaxIterations {
		return nil, errors.InvalidArgumentf("SIM_ITERATIONS must be 1-%d, got %d", simulator.MaxIterations, cfg.Sim.Iterations)
	}
	if cfg.Sim.Fights < 1 {
		return nil, errors.InvalidArgumentf("SIM_FIGHTS must be positive, got %d", cfg.Sim.Fights)
	}
	if cfg.Sim.Rounds < 1 {
		return nil, errors.InvalidArgumentf("SIM_ROUNDS must be positive, got %d", cfg.Sim.Rounds)
	}
	if _, err := simulator.ParseLevels(cfg.Sim.Levels); err != nil {
		return nil, errors.Wrap(err, "SIM_LEVELS")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
