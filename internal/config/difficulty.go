package config

import "math"

// DifficultyManager computes milestone crossings and the knob values that
// follow from them. It holds no run state of its own.
type DifficultyManager struct {
	milestone    int
	speedInc     float64
	speedCeiling float64
	intervalDec  float64
	intervalMin  float64
}

// NewDifficultyManager creates a difficulty manager from a full configuration.
func NewDifficultyManager(cfg DodgerConfig) *DifficultyManager {
	return &DifficultyManager{
		milestone:    cfg.Scoring.Milestone,
		speedInc:     cfg.Difficulty.SpeedIncrement,
		speedCeiling: cfg.Obstacles.SpeedCeiling,
		intervalDec:  cfg.Difficulty.IntervalDecrement,
		intervalMin:  cfg.Spawn.MinInterval,
	}
}

// Crossings returns how many milestone multiples lie in (prev, score].
// Comparing quotients instead of testing score >= milestone keeps each
// boundary firing exactly once, however long the score stays above it.
func (d *DifficultyManager) Crossings(prev, score int) int {
	if d.milestone <= 0 || score <= prev {
		return 0
	}
	return score/d.milestone - prev/d.milestone
}

// NextSpeed returns an archetype speed after one level-up, capped at the ceiling.
// A speed already above the ceiling is never lowered.
func (d *DifficultyManager) NextSpeed(speed float64) float64 {
	if speed >= d.speedCeiling {
		return speed
	}
	return math.Min(speed+d.speedInc, d.speedCeiling)
}

// NextInterval returns the spawn interval after one level-up, floored at the minimum.
func (d *DifficultyManager) NextInterval(interval float64) float64 {
	if interval <= d.intervalMin {
		return interval
	}
	return math.Max(interval-d.intervalDec, d.intervalMin)
}

// CapSpeed limits a spawn speed to the ceiling.
func (d *DifficultyManager) CapSpeed(speed float64) float64 {
	return math.Min(speed, d.speedCeiling)
}
