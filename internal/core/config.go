package core

// RuntimeConfig contains the terminal-side settings for a viewer.
// The simulation itself runs in arena units and never sees these values.
type RuntimeConfig struct {
	ScreenW    int  // Screen width in characters
	ScreenH    int  // Screen height in characters
	Monochrome bool // Render without colors
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}

// WithTerminalSize returns a copy sized to the terminal.
// Non-positive dimensions keep the current values.
func (c RuntimeConfig) WithTerminalSize(w, h int) RuntimeConfig {
	if w > 0 {
		c.ScreenW = w
	}
	if h > 0 {
		c.ScreenH = h
	}
	return c
}
