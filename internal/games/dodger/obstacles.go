package dodger

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/drone-dodger/internal/config"
	"github.com/vovakirdan/drone-dodger/internal/core"
)

// Obstacle is a rectangle drifting left at its own speed.
type Obstacle struct {
	X     float64 // Left edge
	Y     float64 // Top edge
	W     float64 // Width
	H     float64 // Height
	Speed float64 // Arena units moved left per tick
}

// Rect returns the collision rectangle for this obstacle.
func (o Obstacle) Rect() core.Rect {
	return core.NewRect(o.X, o.Y, o.W, o.H)
}

// Archetype is a catalog entry used when spawning obstacles.
type Archetype struct {
	Width     float64
	Height    float64
	BaseSpeed float64
}

// ObstacleManager handles spawning, movement, and removal of obstacles.
// The live set keeps spawn order.
type ObstacleManager struct {
	obstacles  []Obstacle
	catalog    []Archetype
	rng        *rand.Rand
	arenaW     float64
	arenaH     float64
	tickRate   int
	countdown  int // Ticks left until the next spawn
	cfg        *config.DodgerConfig
	difficulty *config.DifficultyManager
}

// NewObstacleManager creates a new obstacle manager drawing from rng.
func NewObstacleManager(rng *rand.Rand, cfg *config.DodgerConfig, diff *config.DifficultyManager) *ObstacleManager {
	om := &ObstacleManager{
		obstacles:  make([]Obstacle, 0, 16),
		rng:        rng,
		arenaW:     cfg.Arena.Width,
		arenaH:     cfg.Arena.Height,
		tickRate:   cfg.Sim.TickRate,
		cfg:        cfg,
		difficulty: diff,
	}
	om.Reset(rng)
	return om
}

// Reset clears all obstacles, restores catalog speeds and restarts the spawn timer.
func (om *ObstacleManager) Reset(rng *rand.Rand) {
	om.obstacles = om.obstacles[:0]
	om.rng = rng

	om.catalog = om.catalog[:0]
	for _, a := range om.cfg.Obstacles.Catalog {
		om.catalog = append(om.catalog, Archetype{Width: a.Width, Height: a.Height, BaseSpeed: a.Speed})
	}

	om.countdown = om.intervalTicks(om.cfg.Spawn.InitialInterval)
}

// intervalTicks converts a spawn interval in seconds to a whole number of ticks.
func (om *ObstacleManager) intervalTicks(seconds float64) int {
	ticks := int(math.Ceil(seconds*float64(om.tickRate) - 1e-9))
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

// Update runs the spawner and then the kinematics step for one tick.
// spawnInterval is the current interval in seconds; it is read when the timer reloads.
// Returns true if an obstacle was spawned.
func (om *ObstacleManager) Update(spawnInterval float64) bool {
	spawned := false

	om.countdown--
	if om.countdown <= 0 {
		om.spawn()
		om.countdown = om.intervalTicks(spawnInterval)
		spawned = true
	}

	om.Advance()
	return spawned
}

// spawn appends a random archetype at the right edge of the arena.
func (om *ObstacleManager) spawn() {
	a := om.catalog[om.rng.Intn(len(om.catalog))]

	y := 0.0
	if span := om.arenaH - a.Height; span > 0 {
		y = om.rng.Float64() * span
	}

	om.obstacles = append(om.obstacles, Obstacle{
		X:     om.arenaW,
		Y:     y,
		W:     a.Width,
		H:     a.Height,
		Speed: om.difficulty.CapSpeed(a.BaseSpeed),
	})
}

// Advance moves every obstacle left and drops those fully off the arena.
func (om *ObstacleManager) Advance() {
	for i := range om.obstacles {
		om.obstacles[i].X -= om.obstacles[i].Speed
	}

	// Filter in place, keeping spawn order
	valid := om.obstacles[:0]
	for _, o := range om.obstacles {
		if o.X+o.W > 0 {
			valid = append(valid, o)
		}
	}
	om.obstacles = valid
}

// RaiseSpeeds applies one level-up to every archetype speed.
func (om *ObstacleManager) RaiseSpeeds() {
	for i := range om.catalog {
		om.catalog[i].BaseSpeed = om.difficulty.NextSpeed(om.catalog[i].BaseSpeed)
	}
}

// Add inserts an obstacle directly into the live set.
// Obstacles with non-positive size are ignored.
func (om *ObstacleManager) Add(o Obstacle) {
	if o.W <= 0 || o.H <= 0 {
		return
	}
	om.obstacles = append(om.obstacles, o)
}

// Obstacles returns the current live set. Callers must not modify it.
func (om *ObstacleManager) Obstacles() []Obstacle {
	return om.obstacles
}

// Catalog returns a copy of the archetypes with their current speeds.
func (om *ObstacleManager) Catalog() []Archetype {
	out := make([]Archetype, len(om.catalog))
	copy(out, om.catalog)
	return out
}

// CheckCollision tests if the given rectangle collides with any obstacle.
func (om *ObstacleManager) CheckCollision(r core.Rect) bool {
	for _, o := range om.obstacles {
		if r.Intersects(o.Rect()) {
			return true
		}
	}
	return false
}
