package core

import "testing"

func TestRuntimeConfigTerminalSize(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		wantW int
		wantH int
	}{
		{"resized", 120, 40, 120, 40},
		{"unknown size keeps defaults", 0, 0, 80, 24},
		{"partial", -1, 30, 80, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig().WithTerminalSize(tt.w, tt.h)
			if cfg.ScreenW != tt.wantW || cfg.ScreenH != tt.wantH {
				t.Errorf("size = %dx%d, expected %dx%d", cfg.ScreenW, cfg.ScreenH, tt.wantW, tt.wantH)
			}
		})
	}
}
