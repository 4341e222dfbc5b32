package dodger

import (
	"github.com/vovakirdan/drone-dodger/internal/core"
)

// Controller turns a target position into one tick of rate-limited motion.
type Controller struct {
	MaxStep float64 // Largest move per tick
	MinY    float64 // Highest allowed craft top (0)
	MaxY    float64 // Lowest allowed craft top (arena height - craft height)
}

// Next returns the craft position after one tick.
// Within MaxStep of the target the craft snaps onto it; otherwise it moves
// exactly MaxStep toward it. Without a target the craft holds.
// The result is always clamped to [MinY, MaxY].
func (c Controller) Next(y, target float64, hasTarget bool) float64 {
	if hasTarget {
		delta := target - y
		switch {
		case core.AbsF(delta) < c.MaxStep:
			y = target
		case delta > 0:
			y += c.MaxStep
		default:
			y -= c.MaxStep
		}
	}
	return core.ClampF(y, c.MinY, c.MaxY)
}

// Apply moves the craft by a discrete action of the given size.
func (c Controller) Apply(y float64, a core.Action, step float64) float64 {
	return core.ClampF(y+a.Delta()*step, c.MinY, c.MaxY)
}
