package dodger

import (
	"sort"

	"github.com/vovakirdan/drone-dodger/internal/core"
	"github.com/vovakirdan/drone-dodger/internal/registry"
)

// Plan is the planner output for one tick.
type Plan struct {
	Zones  []core.Interval // Free vertical bands, sorted top to bottom
	Target float64         // Craft top position to head to; valid only if OK
	OK     bool            // False when no free band exists
}

// Planner computes free vertical bands and picks a target through a policy.
type Planner struct {
	policy    registry.Policy
	lookAhead float64
	arenaH    float64
}

// NewPlanner creates a planner using the given selection policy.
// lookAhead is the width of the window starting at the craft's left edge.
func NewPlanner(policy registry.Policy, lookAhead, arenaH float64) *Planner {
	return &Planner{
		policy:    policy,
		lookAhead: lookAhead,
		arenaH:    arenaH,
	}
}

// Policy returns the selection policy in use.
func (p *Planner) Policy() registry.Policy {
	return p.policy
}

// Plan computes the free bands for the craft and selects a target.
func (p *Planner) Plan(obstacles []Obstacle, craft core.Rect) Plan {
	zones := FreeIntervals(obstacles, craft.X, p.lookAhead, p.arenaH)

	zone, ok := p.policy.Select(zones, craft.CenterY())
	if !ok {
		return Plan{Zones: zones}
	}
	return Plan{
		Zones:  zones,
		Target: zone.Mid() - craft.H/2,
		OK:     true,
	}
}

// InWindow reports whether an obstacle's horizontal extent intersects
// the look-ahead window [craftX, craftX+lookAhead].
func InWindow(o Obstacle, craftX, lookAhead float64) bool {
	return o.X < craftX+lookAhead && o.X+o.W > craftX
}

// FreeIntervals subtracts the vertical span of every obstacle inside the
// look-ahead window from [0, arenaH]. Each obstacle is applied to the
// current working set, so later obstacles split bands left by earlier ones.
// The result is sorted by Start and may be empty.
func FreeIntervals(obstacles []Obstacle, craftX, lookAhead, arenaH float64) []core.Interval {
	zones := []core.Interval{{Start: 0, End: arenaH}}

	for _, o := range obstacles {
		if !InWindow(o, craftX, lookAhead) {
			continue
		}
		top, bottom := o.Y, o.Y+o.H

		next := make([]core.Interval, 0, len(zones)+1)
		for _, z := range zones {
			next = append(next, z.Subtract(top, bottom)...)
		}
		zones = next

		if len(zones) == 0 {
			break
		}
	}

	sort.Slice(zones, func(i, j int) bool {
		return zones[i].Start < zones[j].Start
	})
	return zones
}
