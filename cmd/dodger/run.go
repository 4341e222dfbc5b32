package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/drone-dodger/internal/engine"
)

var (
	flagRuns     int
	flagMaxTicks uint64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation headless",
	Long: `Step the simulation as fast as possible until the craft crashes and
print the final score. Runs are deterministic for a fixed seed.

Examples:
  dodger run --seed 42
  dodger run --runs 10 --policy nearest
  dodger run --max-ticks 100000 --log-level debug`,
	RunE: runHeadless,
}

func init() {
	runCmd.Flags().IntVar(&flagRuns, "runs", 1, "Number of consecutive runs")
	runCmd.Flags().Uint64Var(&flagMaxTicks, "max-ticks", 0, "Stop a run after this many ticks (0 = until crash)")
}

func runHeadless(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if flagRuns < 1 {
		return fmt.Errorf("--runs must be at least 1, got %d", flagRuns)
	}

	eng, err := engine.New(cfg, engine.WithLogger(log.Default().WithPrefix("engine")))
	if err != nil {
		return err
	}

	fmt.Printf("  %-8s  %-8s  %8s  %5s  %8s  %s\n", "Run", "ID", "Ticks", "Level", "Score", "Result")
	fmt.Printf("  %-8s  %-8s  %8s  %5s  %8s  %s\n", "---", "--", "-----", "-----", "-----", "------")

	for i := 1; i <= flagRuns; i++ {
		if i > 1 {
			eng.Reset()
		}
		snap := eng.Tick()
		for !snap.Terminal() && (flagMaxTicks == 0 || snap.Tick < flagMaxTicks) {
			snap = eng.Tick()
		}

		result := "crashed"
		if !snap.Terminal() {
			result = "tick limit"
		}
		fmt.Printf("  %-8d  %-8.8s  %8d  %5d  %8d  %s\n", i, snap.RunID, snap.Tick, snap.Level, snap.Score, result)
	}

	stats := eng.Stats()
	fmt.Println()
	fmt.Printf("Seed %d, policy %s, best score %d, avg tick %s\n",
		stats.Seed, stats.Policy, stats.BestScore, stats.Timing.Average)
	return nil
}
