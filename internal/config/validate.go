package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned for configurations that can never produce a valid run.
var ErrInvalidConfig = errors.New("invalid configuration")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate rejects configurations whose geometry or progression rules are
// unsatisfiable. It is called at construction so nothing is discovered mid-run.
func (c DodgerConfig) Validate() error {
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		return invalid("arena must be positive, got %gx%g", c.Arena.Width, c.Arena.Height)
	}

	if c.Craft.Width <= 0 || c.Craft.Height <= 0 {
		return invalid("craft must be positive, got %gx%g", c.Craft.Width, c.Craft.Height)
	}
	if c.Craft.Height >= c.Arena.Height {
		return invalid("craft height %g must be below arena height %g", c.Craft.Height, c.Arena.Height)
	}
	if c.Craft.X < 0 || c.Craft.X+c.Craft.Width > c.Arena.Width {
		return invalid("craft x %g puts the craft outside the arena", c.Craft.X)
	}
	if c.Craft.MaxStep <= 0 {
		return invalid("craft max_step must be positive, got %g", c.Craft.MaxStep)
	}

	if len(c.Obstacles.Catalog) == 0 {
		return invalid("obstacle catalog is empty")
	}
	for i, a := range c.Obstacles.Catalog {
		if a.Width <= 0 || a.Height <= 0 {
			return invalid("archetype %d must be positive, got %gx%g", i, a.Width, a.Height)
		}
		if a.Height > c.Arena.Height {
			return invalid("archetype %d height %g exceeds arena height %g", i, a.Height, c.Arena.Height)
		}
		if a.Speed < 0 {
			return invalid("archetype %d speed must not be negative, got %g", i, a.Speed)
		}
	}
	if c.Obstacles.SpeedCeiling <= 0 {
		return invalid("speed_ceiling must be positive, got %g", c.Obstacles.SpeedCeiling)
	}

	if c.Spawn.MinInterval <= 0 {
		return invalid("spawn min_interval must be positive, got %g", c.Spawn.MinInterval)
	}
	if c.Spawn.InitialInterval < c.Spawn.MinInterval {
		return invalid("spawn initial_interval %g is below min_interval %g", c.Spawn.InitialInterval, c.Spawn.MinInterval)
	}

	if c.Scoring.PerTick <= 0 {
		return invalid("scoring per_tick must be positive, got %d", c.Scoring.PerTick)
	}
	if c.Scoring.Milestone <= 0 {
		return invalid("scoring milestone must be positive, got %d", c.Scoring.Milestone)
	}

	if c.Difficulty.SpeedIncrement < 0 || c.Difficulty.IntervalDecrement < 0 {
		return invalid("difficulty increments must not be negative")
	}

	if c.Planner.LookAhead < c.Arena.Width {
		return invalid("planner look_ahead %g must cover the arena width %g", c.Planner.LookAhead, c.Arena.Width)
	}

	if c.Sim.TickRate <= 0 {
		return invalid("sim tick_rate must be positive, got %d", c.Sim.TickRate)
	}

	if c.RL.ActionStep <= 0 {
		return invalid("rl action_step must be positive, got %g", c.RL.ActionStep)
	}
	if c.RL.MaxTracked < 0 {
		return invalid("rl max_tracked must not be negative, got %d", c.RL.MaxTracked)
	}

	return nil
}
