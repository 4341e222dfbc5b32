// dodger runs the autonomous obstacle-avoidance simulation.
//
// Usage:
//
//	dodger run               - Run headless until the craft crashes
//	dodger watch             - Watch the autopilot in the terminal
//	dodger serve             - Stream a shared run over websockets and SSH
//	dodger rollout           - Drive the discrete action environment
//	dodger pilots            - List target selection policies
//	dodger config            - Print the effective configuration
//
// Global flags:
//
//	--config <path>    - Configuration YAML (default: search ~/.dodger, ./configs, embedded)
//	--seed <value>     - RNG seed (0 = random based on time)
//	--fps <rate>       - Tick rate override
//	--policy <name>    - Target selection policy override
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/drone-dodger/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagFPS      int
	flagPolicy   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dodger",
	Short: "Drone Dodger - an autopilot weaving through obstacles",
	Long: `Drone Dodger simulates a craft flying through a stream of rectangular
obstacles. Each tick an autopilot finds the free vertical bands ahead of
the craft and steers toward one of them.

Available commands:
  run      - Run headless and report the final score
  watch    - Watch the autopilot in your terminal
  serve    - Share one run with websocket and SSH viewers
  rollout  - Drive the discrete action environment with random actions
  pilots   - List target selection policies
  config   - Print the effective configuration

Examples:
  dodger run --seed 42
  dodger watch --policy nearest
  dodger serve --http :8080 --ssh :23234
  dodger config > ~/.dodger/configs/dodger.yaml`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = use config)")
	rootCmd.PersistentFlags().StringVar(&flagPolicy, "policy", "", "Target selection policy override")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(rolloutCmd)
	rootCmd.AddCommand(pilotsCmd)
	rootCmd.AddCommand(configCmd)
}

func setupLogging(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	log.SetLevel(level)
	log.SetReportTimestamp(true)
	return nil
}

// loadConfig loads the configuration, applies flag overrides and validates it.
func loadConfig(cmd *cobra.Command) (config.DodgerConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.DodgerConfig{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Sim.Seed = flagSeed
	}
	if flags.Changed("fps") {
		cfg.Sim.TickRate = flagFPS
	}
	if flags.Changed("policy") {
		cfg.Planner.Policy = flagPolicy
	}

	if err := cfg.Validate(); err != nil {
		return config.DodgerConfig{}, err
	}
	return cfg, nil
}
