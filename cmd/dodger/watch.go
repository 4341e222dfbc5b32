package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/drone-dodger/internal/core"
	"github.com/vovakirdan/drone-dodger/internal/engine"
	"github.com/vovakirdan/drone-dodger/internal/platform/tui"
)

var flagMono bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the autopilot in the terminal",
	Long: `Run the simulation in the foreground and draw it in the terminal.
The viewer drives the simulation, one tick per frame.

Controls:
  R          - Start a new run
  Z          - Toggle free band markers
  Tab/D      - Toggle the band detail panel
  ?          - Toggle full help
  Q/Ctrl+C   - Quit

Examples:
  dodger watch
  dodger watch --seed 7 --policy nearest
  dodger watch --fps 60 --mono`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&flagMono, "mono", false, "Render without colors")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Log output would corrupt the alternate screen.
	eng, err := engine.New(cfg, engine.WithLogger(log.New(io.Discard)))
	if err != nil {
		return err
	}

	view := core.DefaultConfig()
	view.Monochrome = flagMono
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		view = view.WithTerminalSize(w, h)
	}

	m := tui.NewDrivingModel(eng, view.ScreenW, view.ScreenH)
	if view.Monochrome {
		m = m.WithTheme(tui.MonochromeTheme())
	}
	return tui.Run(m)
}
