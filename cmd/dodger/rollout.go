package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/drone-dodger/internal/core"
	"github.com/vovakirdan/drone-dodger/internal/rlenv"
)

var (
	flagEpisodes int
	flagMaxSteps int
)

var rolloutCmd = &cobra.Command{
	Use:   "rollout",
	Short: "Drive the discrete action environment with random actions",
	Long: `Play episodes of the action environment with a uniformly random
controller and report how long each survived. Useful as a baseline and to
check observation shapes before training.

Actions: 0 = up, 1 = hold, 2 = down.

Examples:
  dodger rollout --episodes 20 --seed 1
  dodger rollout --max-steps 5000 --log-level debug`,
	RunE: runRollout,
}

func init() {
	rolloutCmd.Flags().IntVar(&flagEpisodes, "episodes", 5, "Number of episodes")
	rolloutCmd.Flags().IntVar(&flagMaxSteps, "max-steps", 100000, "Step limit per episode")
}

func runRollout(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if flagEpisodes < 1 || flagMaxSteps < 1 {
		return fmt.Errorf("--episodes and --max-steps must be positive")
	}

	env, err := rlenv.New(cfg)
	if err != nil {
		return err
	}

	base := cfg.Sim.Seed
	if base == 0 {
		base = time.Now().UnixNano()
	}
	actions := rand.New(rand.NewSource(base))
	logger := log.Default().WithPrefix("rollout")
	logger.Info("starting", "episodes", flagEpisodes, "observation", env.ObservationSize(), "actions", env.ActionSpace(), "seed", base)

	fmt.Printf("  %-7s  %8s  %8s  %5s\n", "Episode", "Steps", "Score", "Level")
	fmt.Printf("  %-7s  %8s  %8s  %5s\n", "-------", "-----", "-----", "-----")

	total := 0
	for ep := 0; ep < flagEpisodes; ep++ {
		obs := env.Reset(base + int64(ep))
		steps := 0
		done := false
		for !done && steps < flagMaxSteps {
			a := core.Action(actions.Intn(env.ActionSpace()))
			obs, done, err = env.Step(a)
			if err != nil {
				return err
			}
			steps++
		}
		logger.Debug("episode finished", "episode", ep+1, "craft_y", obs[0], "terminated", done)

		snap := env.Snapshot()
		total += snap.Score
		fmt.Printf("  %-7d  %8d  %8d  %5d\n", ep+1, steps, snap.Score, snap.Level)
	}

	fmt.Println()
	fmt.Printf("Mean score %.1f over %d episodes\n", float64(total)/float64(flagEpisodes), flagEpisodes)
	return nil
}
