package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/drone-dodger/internal/broadcast"
	"github.com/vovakirdan/drone-dodger/internal/engine"
	"github.com/vovakirdan/drone-dodger/internal/platform/tui"
)

var (
	flagHTTPAddr    string
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagAllowReset  bool
	flagAutoReset   int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Share one run with remote viewers",
	Long: `Tick a single run in real time and stream it to viewers.

The HTTP server exposes:
  GET  /ws        - websocket stream: a hello message, then one update per tick
  GET  /snapshot  - latest snapshot as JSON
  GET  /geometry  - arena and craft dimensions
  GET  /stats     - run counters and tick timing
  POST /reset     - request a new run (needs --allow-reset)
  GET  /health    - liveness probe

With --ssh, terminal viewers can also connect over SSH. Every viewer sees
the same run.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.dodger/host_key

Examples:
  dodger serve                               # HTTP on :8080
  dodger serve --ssh :23234                  # Also accept SSH viewers
  dodger serve --auto-reset 90 --allow-reset # Restart 3s after a crash at 30 fps

Viewers can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP server address (host:port)")
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (empty = disabled)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting SSH viewers")
	serveCmd.Flags().BoolVar(&flagAllowReset, "allow-reset", false, "Let remote viewers start a new run")
	serveCmd.Flags().IntVar(&flagAutoReset, "auto-reset", 0, "Start a new run this many ticks after a crash (0 = never)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	eng, err := engine.New(cfg,
		engine.WithLogger(log.Default().WithPrefix("engine")),
		engine.WithAutoReset(flagAutoReset),
	)
	if err != nil {
		return err
	}

	httpSrv := broadcast.NewServer(broadcast.ServerConfig{
		Address:    flagHTTPAddr,
		AllowReset: flagAllowReset,
	}, eng, log.Default().WithPrefix("http"))
	eng.Subscribe(httpSrv.Hub().Publish)

	var sshSrv *tui.SSHServer
	if flagSSHAddr != "" {
		sshSrv, err = tui.NewSSHServer(tui.SSHServerConfig{
			Address:     flagSSHAddr,
			HostKeyPath: flagHostKey,
			IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
			AllowReset:  flagAllowReset,
		}, eng, log.Default().WithPrefix("ssh"))
		if err != nil {
			return fmt.Errorf("creating SSH server: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		eng.Run(ctx)
		return nil
	})
	g.Go(func() error {
		return httpSrv.ListenAndServe(ctx)
	})
	if sshSrv != nil {
		g.Go(func() error {
			return sshSrv.ListenAndServe(ctx)
		})
	}

	log.Info("serving", "http", flagHTTPAddr, "ssh", flagSSHAddr, "allow_reset", flagAllowReset)
	fmt.Println("Press Ctrl+C to stop")

	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
