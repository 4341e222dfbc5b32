package dodger

import (
	"github.com/vovakirdan/drone-dodger/internal/core"
	"github.com/vovakirdan/drone-dodger/internal/registry"
)

// Policy names accepted in planner.policy.
const (
	PolicyLargest = "largest"
	PolicyNearest = "nearest"
)

// LargestZone heads for the tallest free band.
// Ties go to the topmost band.
type LargestZone struct{}

// Name implements registry.Policy.
func (LargestZone) Name() string { return PolicyLargest }

// Description implements registry.Policy.
func (LargestZone) Description() string { return "Head for the tallest free band" }

// Select implements registry.Policy.
func (LargestZone) Select(zones []core.Interval, _ float64) (core.Interval, bool) {
	if len(zones) == 0 {
		return core.Interval{}, false
	}
	best := zones[0]
	for _, z := range zones[1:] {
		if z.Height() > best.Height() {
			best = z
		}
	}
	return best, true
}

// NearestZone heads for the free band whose midpoint is closest to the craft.
// Ties go to the topmost band.
type NearestZone struct{}

// Name implements registry.Policy.
func (NearestZone) Name() string { return PolicyNearest }

// Description implements registry.Policy.
func (NearestZone) Description() string { return "Head for the free band closest to the craft" }

// Select implements registry.Policy.
func (NearestZone) Select(zones []core.Interval, craftCenter float64) (core.Interval, bool) {
	if len(zones) == 0 {
		return core.Interval{}, false
	}
	best := zones[0]
	bestDist := core.AbsF(best.Mid() - craftCenter)
	for _, z := range zones[1:] {
		if d := core.AbsF(z.Mid() - craftCenter); d < bestDist {
			best, bestDist = z, d
		}
	}
	return best, true
}

func init() {
	registry.Register(PolicyLargest, func() registry.Policy { return LargestZone{} })
	registry.Register(PolicyNearest, func() registry.Policy { return NearestZone{} })
}
