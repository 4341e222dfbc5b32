// Package dodger implements the obstacle-avoidance simulation.
// A craft holds a fixed column while obstacles spawn on the right edge and
// drift left; an autopilot plans free vertical bands and steers into them.
package dodger

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/drone-dodger/internal/config"
	"github.com/vovakirdan/drone-dodger/internal/core"
	"github.com/vovakirdan/drone-dodger/internal/registry"
)

// Game implements the simulation tick and the run lifecycle.
// It is not safe for concurrent use; the engine package serialises access.
type Game struct {
	cfg        config.DodgerConfig
	seed       int64
	rng        *rand.Rand
	obstacles  *ObstacleManager
	planner    *Planner
	controller Controller
	difficulty *config.DifficultyManager

	runID         uuid.UUID
	craftY        float64 // Craft top edge
	score         int
	level         int
	spawnInterval float64 // Seconds between spawns
	phase         Phase
	tick          uint64 // Ticks advanced in this run
	plan          Plan   // Planner output of the last tick
}

// New validates cfg and creates a game in the running phase.
// A zero cfg.Sim.Seed seeds the RNG from the current time.
func New(cfg config.DodgerConfig) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	policy, err := registry.Create(cfg.Planner.Policy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}

	seed := cfg.Sim.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		cfg:        cfg,
		seed:       seed,
		rng:        rand.New(rand.NewSource(seed)),
		difficulty: config.NewDifficultyManager(cfg),
		controller: Controller{
			MaxStep: cfg.Craft.MaxStep,
			MinY:    0,
			MaxY:    cfg.Arena.Height - cfg.Craft.Height,
		},
	}
	g.planner = NewPlanner(policy, cfg.Planner.LookAhead, cfg.Arena.Height)
	g.obstacles = NewObstacleManager(g.rng, &g.cfg, g.difficulty)
	g.Reset()
	return g, nil
}

// Config returns the configuration the game was built with.
func (g *Game) Config() config.DodgerConfig {
	return g.cfg
}

// Seed returns the seed of the RNG stream.
func (g *Game) Seed() int64 {
	return g.seed
}

// Geometry returns the fixed arena and craft dimensions.
func (g *Game) Geometry() Geometry {
	return Geometry{
		ArenaW: g.cfg.Arena.Width,
		ArenaH: g.cfg.Arena.Height,
		CraftX: g.cfg.Craft.X,
		CraftW: g.cfg.Craft.Width,
		CraftH: g.cfg.Craft.Height,
	}
}

// Reset starts a fresh run: craft centered, no obstacles, score 0, level 1,
// initial spawn interval, running phase. The RNG stream continues so
// consecutive runs differ while the whole session stays reproducible.
func (g *Game) Reset() {
	g.runID = uuid.Must(uuid.NewRandomFromReader(g.rng))
	g.craftY = g.cfg.Arena.Height/2 - g.cfg.Craft.Height/2
	g.score = 0
	g.level = 1
	g.spawnInterval = g.cfg.Spawn.InitialInterval
	g.phase = PhaseRunning
	g.tick = 0
	g.plan = Plan{}
	g.obstacles.Reset(g.rng)
}

// ResetSeed reseeds the RNG and starts a fresh run.
func (g *Game) ResetSeed(seed int64) {
	g.seed = seed
	g.rng = rand.New(rand.NewSource(seed))
	g.Reset()
}

// Step advances the run by one tick under the autopilot:
// spawn, move obstacles, plan, steer, detect collision, score, level up.
// A terminal run is left untouched.
func (g *Game) Step() Snapshot {
	if g.phase == PhaseTerminal {
		return g.Snapshot()
	}

	g.tick++
	g.obstacles.Update(g.spawnInterval)

	g.plan = g.planner.Plan(g.obstacles.Obstacles(), g.craftRect())
	g.craftY = g.controller.Next(g.craftY, g.plan.Target, g.plan.OK)

	g.finishTick()
	return g.Snapshot()
}

// StepAction advances the run by one tick with an external discrete command
// in place of the autopilot. The planner is skipped.
func (g *Game) StepAction(a core.Action) Snapshot {
	if g.phase == PhaseTerminal {
		return g.Snapshot()
	}

	g.tick++
	g.obstacles.Update(g.spawnInterval)

	g.plan = Plan{}
	g.craftY = g.controller.Apply(g.craftY, a, g.cfg.RL.ActionStep)

	g.finishTick()
	return g.Snapshot()
}

// finishTick runs collision, scoring and the difficulty scheduler.
func (g *Game) finishTick() {
	if g.obstacles.CheckCollision(g.craftRect()) {
		g.phase = PhaseTerminal
		return
	}

	prev := g.score
	g.score += g.cfg.Scoring.PerTick
	g.applyMilestones(prev)
}

// craftRect returns the craft's collision rectangle.
func (g *Game) craftRect() core.Rect {
	return core.NewRect(g.cfg.Craft.X, g.craftY, g.cfg.Craft.Width, g.cfg.Craft.Height)
}

// CraftY returns the craft's top edge.
func (g *Game) CraftY() float64 {
	return g.craftY
}

// Obstacles returns the live obstacle set in spawn order. Callers must not modify it.
func (g *Game) Obstacles() []Obstacle {
	return g.obstacles.Obstacles()
}

// Catalog returns the archetypes with their current speeds.
func (g *Game) Catalog() []Archetype {
	return g.obstacles.Catalog()
}

// Phase returns the lifecycle phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.score
}

// Level returns the current level.
func (g *Game) Level() int {
	return g.level
}

// SpawnInterval returns the current spawn interval in seconds.
func (g *Game) SpawnInterval() float64 {
	return g.spawnInterval
}

// PolicyName returns the name of the active selection policy.
func (g *Game) PolicyName() string {
	return g.planner.Policy().Name()
}
