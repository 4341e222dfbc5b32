package dodger

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/drone-dodger/internal/config"
	"github.com/vovakirdan/drone-dodger/internal/core"
)

// newTestGame builds a game with a fixed seed. Spawning is pushed far out so
// scenarios control the obstacle set themselves.
func newTestGame(t *testing.T, mutate func(*config.DodgerConfig)) *Game {
	t.Helper()
	cfg := config.DefaultDodgerConfig()
	cfg.Sim.Seed = 42
	cfg.Spawn.InitialInterval = 1000
	if mutate != nil {
		mutate(&cfg)
	}
	g, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return g
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.DodgerConfig)
	}{
		{"craft taller than arena", func(c *config.DodgerConfig) { c.Craft.Height = 600 }},
		{"empty catalog", func(c *config.DodgerConfig) { c.Obstacles.Catalog = nil }},
		{"unknown policy", func(c *config.DodgerConfig) { c.Planner.Policy = "zigzag" }},
		{"zero tick rate", func(c *config.DodgerConfig) { c.Sim.TickRate = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultDodgerConfig()
			tc.mutate(&cfg)
			_, err := New(cfg)
			if !errors.Is(err, config.ErrInvalidConfig) {
				t.Errorf("New() error = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestInitialState(t *testing.T) {
	g := newTestGame(t, nil)
	snap := g.Snapshot()

	if snap.CraftY != 280 {
		t.Errorf("craft should start centered at 280, got %g", snap.CraftY)
	}
	if snap.Score != 0 || snap.Level != 1 || snap.Tick != 0 {
		t.Errorf("unexpected initial counters: score=%d level=%d tick=%d", snap.Score, snap.Level, snap.Tick)
	}
	if snap.Phase != PhaseRunning {
		t.Errorf("initial phase = %s, expected running", snap.Phase)
	}
	if len(snap.Obstacles) != 0 {
		t.Errorf("initial obstacles = %v, expected none", snap.Obstacles)
	}
	if snap.RunID == "" {
		t.Error("run id should be set")
	}
}

func TestBlockedColumnEndsRun(t *testing.T) {
	g := newTestGame(t, nil)
	g.obstacles.Add(Obstacle{X: 100, Y: 0, W: 50, H: 600, Speed: 0})

	snap := g.Step()

	if len(snap.Zones) != 0 {
		t.Errorf("zones = %v, expected none", snap.Zones)
	}
	if snap.Target != nil {
		t.Errorf("target = %g, expected none", *snap.Target)
	}
	if snap.CraftY != 280 {
		t.Errorf("craft should hold at 280 without a target, got %g", snap.CraftY)
	}
	if !snap.Terminal() {
		t.Fatal("run should be terminal after the collision")
	}
	if snap.Score != 0 {
		t.Errorf("collision tick must not score, got %d", snap.Score)
	}

	// Terminal runs are inert.
	again := g.Step()
	if again.Tick != snap.Tick || again.Score != snap.Score || again.CraftY != snap.CraftY {
		t.Errorf("terminal step changed state: before=%+v after=%+v", snap, again)
	}
	actioned := g.StepAction(core.ActionDown)
	if actioned.CraftY != snap.CraftY || actioned.Tick != snap.Tick {
		t.Error("terminal StepAction changed state")
	}
}

func TestEmptyArenaHoldsCenter(t *testing.T) {
	g := newTestGame(t, nil)

	for i := 1; i <= 30; i++ {
		snap := g.Step()
		if snap.CraftY != 280 {
			t.Fatalf("tick %d: craft y = %g, expected 280", i, snap.CraftY)
		}
		if len(snap.Zones) != 1 || snap.Zones[0] != (core.Interval{Start: 0, End: 600}) {
			t.Fatalf("tick %d: zones = %v, expected [{0 600}]", i, snap.Zones)
		}
		if snap.Target == nil || *snap.Target != 280 {
			t.Fatalf("tick %d: target should be 280", i)
		}
		if snap.Score != i {
			t.Fatalf("tick %d: score = %d", i, snap.Score)
		}
	}
}

func TestCorridorTargetsMiddle(t *testing.T) {
	g := newTestGame(t, nil)
	g.obstacles.Add(Obstacle{X: 300, Y: 0, W: 50, H: 200, Speed: 0})
	g.obstacles.Add(Obstacle{X: 300, Y: 400, W: 50, H: 200, Speed: 0})

	snap := g.Step()

	if len(snap.Zones) != 1 || snap.Zones[0] != (core.Interval{Start: 200, End: 400}) {
		t.Fatalf("zones = %v, expected [{200 400}]", snap.Zones)
	}
	if snap.Target == nil || *snap.Target != 280 {
		t.Fatalf("target = %v, expected 280", snap.Target)
	}
	if snap.CraftY != 280 {
		t.Errorf("craft y = %g, expected 280", snap.CraftY)
	}
	if snap.Terminal() {
		t.Error("run should still be running")
	}
}

func TestCraftSteersToLargestZone(t *testing.T) {
	g := newTestGame(t, nil)
	// Free bands [0,100] and [300,600]; target is 450-20 = 430.
	g.obstacles.Add(Obstacle{X: 700, Y: 100, W: 50, H: 200, Speed: 0})

	prev := g.CraftY()
	for i := 0; i < 10; i++ {
		snap := g.Step()
		if d := snap.CraftY - prev; d != 5 {
			t.Fatalf("tick %d: craft moved %g, expected 5", i+1, d)
		}
		prev = snap.CraftY
	}
}

func TestResetAfterTerminal(t *testing.T) {
	g := newTestGame(t, func(c *config.DodgerConfig) {
		c.Spawn.InitialInterval = 1.2
	})
	firstRun := g.Snapshot().RunID

	g.obstacles.Add(Obstacle{X: 100, Y: 0, W: 50, H: 600, Speed: 0})
	if !g.Step().Terminal() {
		t.Fatal("expected a terminal run")
	}

	g.Reset()
	snap := g.Snapshot()

	if snap.Phase != PhaseRunning {
		t.Errorf("phase after reset = %s", snap.Phase)
	}
	if snap.Score != 0 || snap.Level != 1 || snap.Tick != 0 {
		t.Errorf("counters after reset: score=%d level=%d tick=%d", snap.Score, snap.Level, snap.Tick)
	}
	if snap.CraftY != 280 {
		t.Errorf("craft y after reset = %g, expected 280", snap.CraftY)
	}
	if len(snap.Obstacles) != 0 {
		t.Errorf("obstacles after reset = %v", snap.Obstacles)
	}
	if snap.SpawnInterval != g.Config().Spawn.InitialInterval {
		t.Errorf("spawn interval after reset = %g", snap.SpawnInterval)
	}
	if snap.RunID == firstRun {
		t.Error("reset should start a new run id")
	}

	// Spawning resumes from a full interval.
	for i := 0; i < 36; i++ {
		snap = g.Step()
	}
	if len(snap.Obstacles) != 1 {
		t.Errorf("expected one obstacle 36 ticks after reset, got %d", len(snap.Obstacles))
	}
}

func TestMilestonesFireOnce(t *testing.T) {
	g := newTestGame(t, func(c *config.DodgerConfig) {
		c.Scoring.Milestone = 10
	})
	initialSpeeds := g.Catalog()
	initialInterval := g.SpawnInterval()

	for i := 0; i < 9; i++ {
		g.Step()
	}
	if g.Level() != 1 {
		t.Fatalf("level before milestone = %d", g.Level())
	}

	g.Step() // score 10
	if g.Level() != 2 {
		t.Fatalf("level at milestone = %d, expected 2", g.Level())
	}
	for i, a := range g.Catalog() {
		if a.BaseSpeed != initialSpeeds[i].BaseSpeed+0.5 {
			t.Errorf("archetype %d speed = %g, expected +0.5", i, a.BaseSpeed)
		}
	}
	if g.SpawnInterval() != initialInterval-0.05 {
		t.Errorf("spawn interval = %g, expected %g", g.SpawnInterval(), initialInterval-0.05)
	}

	for i := 0; i < 9; i++ {
		g.Step()
	}
	if g.Level() != 2 {
		t.Errorf("level should stay 2 until score 20, got %d", g.Level())
	}

	g.Step() // score 20
	if g.Level() != 3 {
		t.Errorf("level at second milestone = %d, expected 3", g.Level())
	}
}

func TestMilestoneWithLargeIncrement(t *testing.T) {
	g := newTestGame(t, func(c *config.DodgerConfig) {
		c.Scoring.Milestone = 10
		c.Scoring.PerTick = 25
	})

	g.Step() // 0 -> 25 crosses 10 and 20
	if g.Level() != 3 {
		t.Errorf("level = %d, expected 3", g.Level())
	}
	g.Step() // 25 -> 50 crosses 30, 40 and 50
	if g.Level() != 6 {
		t.Errorf("level = %d, expected 6", g.Level())
	}
}

func TestStepAction(t *testing.T) {
	g := newTestGame(t, nil)

	snap := g.StepAction(core.ActionUp)
	if snap.CraftY != 268 {
		t.Errorf("up: craft y = %g, expected 268", snap.CraftY)
	}
	if snap.Target != nil || len(snap.Zones) != 0 {
		t.Error("externally driven ticks should not publish a plan")
	}

	g.StepAction(core.ActionDown)
	snap = g.StepAction(core.ActionDown)
	if snap.CraftY != 292 {
		t.Errorf("down: craft y = %g, expected 292", snap.CraftY)
	}

	for i := 0; i < 40; i++ {
		snap = g.StepAction(core.ActionDown)
	}
	if snap.CraftY != 560 {
		t.Errorf("craft should be clamped at 560, got %g", snap.CraftY)
	}
}

func TestGameDeterminism(t *testing.T) {
	cfg := config.DefaultDodgerConfig()
	cfg.Sim.Seed = 12345

	g1, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	g2, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3000; i++ {
		s1 := g1.Step()
		s2 := g2.Step()
		if !reflect.DeepEqual(s1, s2) {
			t.Fatalf("tick %d: runs diverged\n%+v\n%+v", i+1, s1, s2)
		}
		if s1.Terminal() {
			g1.Reset()
			g2.Reset()
		}
	}
}

func TestResetSeedReproducesRun(t *testing.T) {
	g := newTestGame(t, func(c *config.DodgerConfig) {
		c.Spawn.InitialInterval = 1.2
	})

	run := func() []Snapshot {
		var out []Snapshot
		for i := 0; i < 200; i++ {
			out = append(out, g.Step())
		}
		return out
	}

	g.ResetSeed(9)
	first := run()
	g.ResetSeed(9)
	second := run()

	if !reflect.DeepEqual(first, second) {
		t.Error("same seed should reproduce the same run")
	}
}

func TestRunStaysConsistent(t *testing.T) {
	cfg := config.DefaultDodgerConfig()
	cfg.Sim.Seed = 777
	cfg.Scoring.Milestone = 200
	g, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	maxY := cfg.Arena.Height - cfg.Craft.Height

	prevInterval := g.SpawnInterval()
	prevSpeeds := g.Catalog()

	for i := 0; i < 5000; i++ {
		snap := g.Step()

		if snap.CraftY < 0 || snap.CraftY > maxY {
			t.Fatalf("tick %d: craft y %g out of [0, %g]", i, snap.CraftY, maxY)
		}
		for _, o := range snap.Obstacles {
			if o.W <= 0 || o.H <= 0 || o.X+o.W <= 0 {
				t.Fatalf("tick %d: invalid live obstacle %+v", i, o)
			}
		}
		if snap.SpawnInterval > prevInterval || snap.SpawnInterval < cfg.Spawn.MinInterval {
			t.Fatalf("tick %d: spawn interval %g after %g", i, snap.SpawnInterval, prevInterval)
		}
		speeds := g.Catalog()
		for j := range speeds {
			if speeds[j].BaseSpeed < prevSpeeds[j].BaseSpeed || speeds[j].BaseSpeed > cfg.Obstacles.SpeedCeiling {
				t.Fatalf("tick %d: archetype %d speed %g after %g", i, j, speeds[j].BaseSpeed, prevSpeeds[j].BaseSpeed)
			}
		}
		prevInterval = snap.SpawnInterval
		prevSpeeds = speeds

		if snap.Terminal() {
			g.Reset()
			prevInterval = g.SpawnInterval()
			prevSpeeds = g.Catalog()
		}
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	g := newTestGame(t, nil)
	g.obstacles.Add(Obstacle{X: 700, Y: 100, W: 50, H: 50, Speed: 1})

	snap := g.Step()
	snap.Obstacles[0].X = -999
	snap.Zones[0].Start = -999

	fresh := g.Snapshot()
	if fresh.Obstacles[0].X == -999 || fresh.Zones[0].Start == -999 {
		t.Error("mutating a snapshot must not affect the game")
	}
}
