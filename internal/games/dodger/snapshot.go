package dodger

import "github.com/vovakirdan/drone-dodger/internal/core"

// Phase is the lifecycle state of a run.
type Phase string

const (
	PhaseRunning  Phase = "running"
	PhaseTerminal Phase = "terminal"
)

// ObstacleView is the presentation form of an obstacle.
type ObstacleView struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Snapshot is an immutable copy of the run state after a tick.
// Slices are freshly allocated and never shared with the simulation.
type Snapshot struct {
	RunID         string          `json:"run_id"`
	Tick          uint64          `json:"tick"`
	CraftY        float64         `json:"craft_y"`
	Obstacles     []ObstacleView  `json:"obstacles"`
	Score         int             `json:"score"`
	Level         int             `json:"level"`
	Phase         Phase           `json:"phase"`
	SpawnInterval float64         `json:"spawn_interval"`
	Target        *float64        `json:"target,omitempty"` // nil when no safe target existed
	Zones         []core.Interval `json:"zones"`
}

// Terminal reports whether the run has ended.
func (s Snapshot) Terminal() bool {
	return s.Phase == PhaseTerminal
}

// Geometry describes the fixed arena and craft dimensions of a run.
type Geometry struct {
	ArenaW float64 `json:"arena_w"`
	ArenaH float64 `json:"arena_h"`
	CraftX float64 `json:"craft_x"`
	CraftW float64 `json:"craft_w"`
	CraftH float64 `json:"craft_h"`
}

// Snapshot returns the current run state.
func (g *Game) Snapshot() Snapshot {
	live := g.obstacles.Obstacles()
	obstacles := make([]ObstacleView, len(live))
	for i, o := range live {
		obstacles[i] = ObstacleView{X: o.X, Y: o.Y, W: o.W, H: o.H}
	}

	zones := make([]core.Interval, len(g.plan.Zones))
	copy(zones, g.plan.Zones)

	var target *float64
	if g.plan.OK {
		t := g.plan.Target
		target = &t
	}

	return Snapshot{
		RunID:         g.runID.String(),
		Tick:          g.tick,
		CraftY:        g.craftY,
		Obstacles:     obstacles,
		Score:         g.score,
		Level:         g.level,
		Phase:         g.phase,
		SpawnInterval: g.spawnInterval,
		Target:        target,
		Zones:         zones,
	}
}
