// Package rlenv exposes the dodger simulation as a discrete-action
// environment for externally trained controllers.
//
// Reward shaping stays with the caller; the environment only reports the
// observation vector and whether the run has ended.
package rlenv

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/drone-dodger/internal/config"
	"github.com/vovakirdan/drone-dodger/internal/core"
	"github.com/vovakirdan/drone-dodger/internal/games/dodger"
)

// CraftFeatures is the number of leading craft features in an observation.
const CraftFeatures = 3

// ObstacleFeatures is the number of features per tracked obstacle.
const ObstacleFeatures = 5

// ErrInvalidAction is returned by Step for actions outside the action space.
var ErrInvalidAction = errors.New("invalid action")

// Env wraps a Game driven by discrete actions instead of the autopilot.
type Env struct {
	game       *dodger.Game
	arenaW     float64
	arenaH     float64
	speedNorm  float64
	maxTracked int
	prevY      float64 // Craft top before the last step
}

// New creates an environment. The seed in cfg is used until Reset picks another.
func New(cfg config.DodgerConfig) (*Env, error) {
	game, err := dodger.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Env{
		game:       game,
		arenaW:     cfg.Arena.Width,
		arenaH:     cfg.Arena.Height,
		speedNorm:  cfg.Obstacles.SpeedCeiling,
		maxTracked: cfg.RL.MaxTracked,
		prevY:      game.CraftY(),
	}, nil
}

// ActionSpace returns the number of discrete actions.
func (e *Env) ActionSpace() int {
	return core.ActionCount
}

// ObservationSize returns the length of every observation vector.
func (e *Env) ObservationSize() int {
	return CraftFeatures + ObstacleFeatures*e.maxTracked
}

// Reset reseeds the simulation, starts a new run and returns the first observation.
func (e *Env) Reset(seed int64) []float32 {
	e.game.ResetSeed(seed)
	e.prevY = e.game.CraftY()
	return e.Observation()
}

// Step applies one action for one tick and returns the observation after it.
// Once terminated, further steps return the same observation until Reset.
func (e *Env) Step(a core.Action) ([]float32, bool, error) {
	if !a.Valid() {
		return nil, false, fmt.Errorf("%w: %d", ErrInvalidAction, int(a))
	}

	e.prevY = e.game.CraftY()
	snap := e.game.StepAction(a)
	return e.Observation(), snap.Terminal(), nil
}

// Snapshot returns the current run state.
func (e *Env) Snapshot() dodger.Snapshot {
	return e.game.Snapshot()
}

// Observation encodes the current state.
//
// Layout: craft top / H, vertical velocity / H, distance of the craft top
// from the arena midline / (H/2), then for each of the first maxTracked
// obstacles in spawn order x / W, y / H, w / W, h / H, speed / ceiling.
// Missing obstacles are zero padded.
func (e *Env) Observation() []float32 {
	obs := make([]float32, e.ObservationSize())

	y := e.game.CraftY()
	half := e.arenaH / 2
	obs[0] = float32(y / e.arenaH)
	obs[1] = float32((y - e.prevY) / e.arenaH)
	obs[2] = float32(core.AbsF(y-half) / half)

	for i, o := range e.game.Obstacles() {
		if i >= e.maxTracked {
			break
		}
		base := CraftFeatures + i*ObstacleFeatures
		obs[base] = float32(o.X / e.arenaW)
		obs[base+1] = float32(o.Y / e.arenaH)
		obs[base+2] = float32(o.W / e.arenaW)
		obs[base+3] = float32(o.H / e.arenaH)
		obs[base+4] = float32(o.Speed / e.speedNorm)
	}
	return obs
}
