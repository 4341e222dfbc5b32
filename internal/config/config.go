// Package config provides YAML-based simulation configuration loading,
// validation and difficulty progression rules for the dodger.
package config

// DodgerConfig contains all configuration for a dodger run.
// Every value is fixed for the lifetime of a run.
type DodgerConfig struct {
	Arena      ArenaConfig      `yaml:"arena"`
	Craft      CraftConfig      `yaml:"craft"`
	Obstacles  ObstaclesConfig  `yaml:"obstacles"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Planner    PlannerConfig    `yaml:"planner"`
	Sim        SimConfig        `yaml:"sim"`
	RL         RLConfig         `yaml:"rl"`
}

// ArenaConfig defines the bounded simulation plane.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// CraftConfig defines the controlled rectangle.
type CraftConfig struct {
	X       float64 `yaml:"x"`        // Fixed horizontal position (left edge)
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	MaxStep float64 `yaml:"max_step"` // Vertical rate limit per tick
}

// ArchetypeConfig is one catalog entry for spawned obstacles.
type ArchetypeConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"` // Base speed in arena units per tick
}

// ObstaclesConfig defines the obstacle catalog and its speed cap.
type ObstaclesConfig struct {
	Catalog      []ArchetypeConfig `yaml:"catalog"`
	SpeedCeiling float64           `yaml:"speed_ceiling"`
}

// SpawnConfig defines the spawn cadence in seconds.
type SpawnConfig struct {
	InitialInterval float64 `yaml:"initial_interval"`
	MinInterval     float64 `yaml:"min_interval"` // Floor for difficulty reductions
}

// ScoringConfig defines score accrual and milestones.
type ScoringConfig struct {
	PerTick   int `yaml:"per_tick"`  // Added every tick the craft survives
	Milestone int `yaml:"milestone"` // Level-up every multiple of this score
}

// DifficultyConfig defines what changes on each milestone.
type DifficultyConfig struct {
	SpeedIncrement    float64 `yaml:"speed_increment"`    // Added to every archetype speed
	IntervalDecrement float64 `yaml:"interval_decrement"` // Removed from the spawn interval
}

// PlannerConfig defines the safe-zone planner.
type PlannerConfig struct {
	Policy    string  `yaml:"policy"`     // Registered selection policy name
	LookAhead float64 `yaml:"look_ahead"` // Width of the window ahead of the craft
}

// SimConfig defines the tick driver.
type SimConfig struct {
	TickRate int   `yaml:"tick_rate"` // Ticks per second
	Seed     int64 `yaml:"seed"`      // 0 = seed from current time
}

// RLConfig defines the discrete action environment.
type RLConfig struct {
	ActionStep float64 `yaml:"action_step"` // Vertical move for up/down actions
	MaxTracked int     `yaml:"max_tracked"` // Obstacles encoded in the observation
}

// TickSeconds returns the simulated duration of a single tick.
func (c DodgerConfig) TickSeconds() float64 {
	return 1.0 / float64(c.Sim.TickRate)
}
