package core

// Color represents a foreground color for a screen cell.
// The platform layer maps these to ANSI 256-color codes.
type Color uint8

// Predefined colors for simulation elements.
const (
	ColorDefault Color = iota
	ColorCyan          // craft
	ColorWhite         // HUD
	ColorGray          // secondary labels
	ColorGreen         // free bands
	ColorYellow        // planner target, crashed craft
	ColorRed           // obstacles, blocked bands
)
