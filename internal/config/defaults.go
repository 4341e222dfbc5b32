package config

import (
	_ "embed"
)

//go:embed defaults/dodger.yaml
var defaultDodgerYAML []byte

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultDodgerYAML))
	copy(out, defaultDodgerYAML)
	return out
}

// DefaultDodgerConfig returns the default dodger configuration.
func DefaultDodgerConfig() DodgerConfig {
	return DodgerConfig{
		Arena: ArenaConfig{
			Width:  800,
			Height: 600,
		},
		Craft: CraftConfig{
			X:       100,
			Width:   40,
			Height:  40,
			MaxStep: 5,
		},
		Obstacles: ObstaclesConfig{
			Catalog: []ArchetypeConfig{
				{Width: 50, Height: 50, Speed: 4},
				{Width: 80, Height: 30, Speed: 3},
				{Width: 30, Height: 80, Speed: 5},
			},
			SpeedCeiling: 12,
		},
		Spawn: SpawnConfig{
			InitialInterval: 1.2,
			MinInterval:     0.3,
		},
		Scoring: ScoringConfig{
			PerTick:   1,
			Milestone: 5000,
		},
		Difficulty: DifficultyConfig{
			SpeedIncrement:    0.5,
			IntervalDecrement: 0.05,
		},
		Planner: PlannerConfig{
			Policy:    "largest",
			LookAhead: 1100,
		},
		Sim: SimConfig{
			TickRate: 30,
			Seed:     0,
		},
		RL: RLConfig{
			ActionStep: 12,
			MaxTracked: 7,
		},
	}
}
