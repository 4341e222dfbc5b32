package dodger

import (
	"fmt"
	"math"

	"github.com/vovakirdan/drone-dodger/internal/core"
)

// Visual characters
const (
	ObstacleChar = '█'
	CraftChar    = '▶'
	TargetChar   = '◆'
	FreeChar     = '┃'
	BlockedChar  = '┊'
)

// RenderOptions toggles optional overlays.
type RenderOptions struct {
	ShowZones bool   // Draw the free-band gutter and the planner target
	Footer    string // Text on the last row, e.g. key help
}

// Render draws a snapshot into dst, scaling the arena to fit inside a box
// below the HUD row. Only the snapshot is read; the game is not touched.
func Render(dst *core.Screen, snap Snapshot, geo Geometry, opts RenderOptions) {
	dst.Clear()

	w, h := dst.Width(), dst.Height()
	if w < 12 || h < 6 || geo.ArenaW <= 0 || geo.ArenaH <= 0 {
		dst.DrawText(0, 0, "too small")
		return
	}

	// HUD
	hud := fmt.Sprintf(" Score: %d  Level: %d  Spawn: %.2fs ", snap.Score, snap.Level, snap.SpawnInterval)
	dst.DrawTextColor(1, 0, hud, core.ColorWhite)
	if len(snap.RunID) >= 8 {
		runText := fmt.Sprintf(" run %s ", snap.RunID[:8])
		if x := w - len(runText) - 1; x > len(hud)+1 {
			dst.DrawTextColor(x, 0, runText, core.ColorGray)
		}
	}

	footerRows := 0
	if opts.Footer != "" {
		footerRows = 1
		dst.DrawTextColor(1, h-1, opts.Footer, core.ColorGray)
	}

	// Box spans rows 1..h-1-footerRows; the arena is its interior.
	boxH := h - 1 - footerRows
	dst.DrawBox(0, 1, w, boxH)
	v := viewport{
		x0: 1, y0: 2,
		w: w - 2, h: boxH - 2,
		sx: float64(w-2) / geo.ArenaW,
		sy: float64(boxH-2) / geo.ArenaH,
	}
	if v.w <= 0 || v.h <= 0 {
		return
	}

	if opts.ShowZones {
		drawZones(dst, v, snap)
	}

	for _, o := range snap.Obstacles {
		x0, x1 := v.spanX(o.X, o.W)
		y0, y1 := v.spanY(o.Y, o.H)
		if x1 > x0 && y1 > y0 {
			dst.FillArea(x0, y0, x1-x0, y1-y0, ObstacleChar, core.ColorRed)
		}
	}

	craftColor := core.ColorCyan
	if snap.Terminal() {
		craftColor = core.ColorYellow
	}
	cx0, cx1 := v.spanX(geo.CraftX, geo.CraftW)
	cy0, cy1 := v.spanY(snap.CraftY, geo.CraftH)
	dst.FillArea(cx0, cy0, cx1-cx0, cy1-cy0, CraftChar, craftColor)

	if opts.ShowZones && snap.Target != nil {
		ty0, _ := v.spanY(*snap.Target, geo.CraftH)
		dst.SetColor(cx1, ty0, TargetChar, core.ColorYellow)
	}

	if snap.Terminal() {
		mid := v.y0 + v.h/2
		dst.DrawTextCentered(mid-1, " CRASHED ")
		dst.DrawTextCentered(mid+1, fmt.Sprintf(" Score: %d  |  Level: %d ", snap.Score, snap.Level))
	}
}

// drawZones marks every arena row in the leftmost column as free or blocked.
func drawZones(dst *core.Screen, v viewport, snap Snapshot) {
	for row := 0; row < v.h; row++ {
		y := (float64(row) + 0.5) / v.sy
		free := false
		for _, z := range snap.Zones {
			if y >= z.Start && y <= z.End {
				free = true
				break
			}
		}
		if free {
			dst.SetColor(v.x0, v.y0+row, FreeChar, core.ColorGreen)
		} else {
			dst.SetColor(v.x0, v.y0+row, BlockedChar, core.ColorRed)
		}
	}
}

// viewport maps arena units onto screen cells.
type viewport struct {
	x0, y0 int     // Top-left cell of the arena
	w, h   int     // Arena size in cells
	sx, sy float64 // Cells per arena unit
}

// spanX returns the half-open cell range covered by [x, x+w), clipped to the arena.
func (v viewport) spanX(x, w float64) (int, int) {
	return span(x, w, v.sx, v.x0, v.w)
}

// spanY returns the half-open cell range covered by [y, y+h), clipped to the arena.
func (v viewport) spanY(y, h float64) (int, int) {
	return span(y, h, v.sy, v.y0, v.h)
}

func span(pos, size, scale float64, origin, limit int) (int, int) {
	start := int(math.Floor(pos * scale))
	end := int(math.Ceil((pos + size) * scale))
	if end <= start {
		end = start + 1
	}
	start = core.Clamp(start, 0, limit)
	end = core.Clamp(end, 0, limit)
	return origin + start, origin + end
}
