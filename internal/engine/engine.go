// Package engine drives a dodger game at a fixed tick rate and publishes
// immutable snapshots to concurrent readers.
//
// One goroutine owns the simulation. Viewers read the latest published
// snapshot without blocking it, and reset requests are recorded and applied
// at the next tick boundary.
package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/drone-dodger/internal/config"
	"github.com/vovakirdan/drone-dodger/internal/games/dodger"
)

// defaultMaxCatchUp bounds how many ticks one wakeup may run after a stall.
const defaultMaxCatchUp = 5

// Listener receives every published snapshot on the ticking goroutine.
// It must not block.
type Listener func(dodger.Snapshot)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithListener registers a listener at construction time.
func WithListener(fn Listener) Option {
	return func(e *Engine) {
		if fn != nil {
			e.listeners = append(e.listeners, fn)
		}
	}
}

// WithMaxCatchUp limits the ticks run per wakeup when Run falls behind.
// Ticks beyond the limit are dropped and counted in Stats.
func WithMaxCatchUp(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxCatchUp = n
		}
	}
}

// WithAutoReset requests a reset once a run has been terminal for the given
// number of ticks. Zero disables it.
func WithAutoReset(ticks int) Option {
	return func(e *Engine) {
		if ticks >= 0 {
			e.autoReset = ticks
		}
	}
}

// Stats reports engine counters and tick timing.
type Stats struct {
	Timing    TickStats `json:"timing"`
	Runs      int       `json:"runs"`       // Runs started, including the first
	BestScore int       `json:"best_score"` // Highest final score this session
	Seed      int64     `json:"seed"`
	Policy    string    `json:"policy"`
	TickRate  int       `json:"tick_rate"`
}

// Engine serialises access to a Game and publishes its snapshots.
type Engine struct {
	mu   sync.Mutex // Guards game and run counters
	game *dodger.Game

	latest       atomic.Pointer[dodger.Snapshot]
	pendingReset atomic.Bool

	listenersMu sync.RWMutex
	listeners   []Listener

	monitor    *TickMonitor
	logger     *log.Logger
	period     time.Duration
	tickRate   int
	maxCatchUp int
	autoReset  int

	runs          int
	bestScore     int
	terminalTicks int
}

// New validates cfg, creates the game and publishes its initial snapshot.
func New(cfg config.DodgerConfig, opts ...Option) (*Engine, error) {
	game, err := dodger.New(cfg)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		game:       game,
		monitor:    NewTickMonitor(),
		logger:     log.Default().WithPrefix("engine"),
		period:     time.Second / time.Duration(cfg.Sim.TickRate),
		tickRate:   cfg.Sim.TickRate,
		maxCatchUp: defaultMaxCatchUp,
		runs:       1,
	}
	for _, opt := range opts {
		opt(e)
	}

	snap := game.Snapshot()
	e.latest.Store(&snap)
	return e, nil
}

// Subscribe registers a listener for every subsequent tick.
func (e *Engine) Subscribe(fn Listener) {
	if fn == nil {
		return
	}
	e.listenersMu.Lock()
	e.listeners = append(e.listeners, fn)
	e.listenersMu.Unlock()
}

// Reset records a reset request. The current run keeps going until the next
// tick boundary, where the request is applied before stepping.
func (e *Engine) Reset() {
	e.pendingReset.Store(true)
}

// ResetPending reports whether a reset request is waiting for the next tick.
func (e *Engine) ResetPending() bool {
	return e.pendingReset.Load()
}

// Latest returns the most recently published snapshot.
// Snapshots are shared between readers and must be treated as read-only.
func (e *Engine) Latest() dodger.Snapshot {
	return *e.latest.Load()
}

// Geometry returns the fixed arena and craft dimensions.
func (e *Engine) Geometry() dodger.Geometry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.Geometry()
}

// TickRate returns the configured ticks per second.
func (e *Engine) TickRate() int {
	return e.tickRate
}

// Tick applies a pending reset, advances the game one tick, publishes the
// snapshot and notifies listeners.
func (e *Engine) Tick() dodger.Snapshot {
	e.mu.Lock()

	if e.pendingReset.Swap(false) {
		e.resetLocked()
	}

	prevLevel := e.game.Level()
	wasRunning := e.game.Phase() == dodger.PhaseRunning

	start := time.Now()
	snap := e.game.Step()
	e.monitor.Observe(time.Since(start))

	ended := wasRunning && snap.Terminal()
	if ended && snap.Score > e.bestScore {
		e.bestScore = snap.Score
	}
	if snap.Terminal() {
		e.terminalTicks++
		if e.autoReset > 0 && e.terminalTicks >= e.autoReset {
			e.pendingReset.Store(true)
		}
	}

	e.latest.Store(&snap)
	e.mu.Unlock()

	if snap.Level > prevLevel {
		e.logger.Debug("level up", "level", snap.Level, "score", snap.Score, "spawn_interval", snap.SpawnInterval)
	}
	if ended {
		e.logger.Info("run ended", "run", snap.RunID, "score", snap.Score, "level", snap.Level, "ticks", snap.Tick)
	}

	e.listenersMu.RLock()
	listeners := e.listeners
	e.listenersMu.RUnlock()
	for _, fn := range listeners {
		fn(snap)
	}

	return snap
}

// resetLocked starts a new run. Caller holds e.mu.
func (e *Engine) resetLocked() {
	if e.game.Phase() == dodger.PhaseRunning && e.game.Score() > e.bestScore {
		e.bestScore = e.game.Score()
	}
	e.game.Reset()
	e.runs++
	e.terminalTicks = 0
	e.logger.Info("run reset", "run", e.game.Snapshot().RunID, "runs", e.runs)
}

// Run ticks at the configured rate until ctx is cancelled.
// Elapsed time is accumulated so late wakeups run the missed ticks, up to
// the catch-up limit.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(e.period)
	defer ticker.Stop()

	e.logger.Info("engine started", "tick_rate", e.tickRate, "seed", e.seed(), "policy", e.policy())

	last := time.Now()
	var acc time.Duration
	for {
		select {
		case <-ctx.Done():
			e.logger.Info("engine stopped", "ticks", e.monitor.Snapshot().Samples)
			return
		case now := <-ticker.C:
			acc += now.Sub(last)
			last = now

			steps := 0
			for acc >= e.period {
				if steps == e.maxCatchUp {
					dropped := int(acc / e.period)
					e.monitor.Drop(dropped)
					e.logger.Warn("tick driver behind, dropping ticks", "dropped", dropped)
					acc %= e.period
					break
				}
				e.Tick()
				acc -= e.period
				steps++
			}
		}
	}
}

// Stats returns counters and tick timing.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	runs, best := e.runs, e.bestScore
	e.mu.Unlock()

	return Stats{
		Timing:    e.monitor.Snapshot(),
		Runs:      runs,
		BestScore: best,
		Seed:      e.seed(),
		Policy:    e.policy(),
		TickRate:  e.tickRate,
	}
}

func (e *Engine) seed() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.Seed()
}

func (e *Engine) policy() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.PolicyName()
}
