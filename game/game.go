package game

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/kickoff/config"
	"github.com/pthm-cable/kickoff/inspector"
	"github.com/pthm-cable/kickoff/renderer"
	"github.com/pthm-cable/kickoff/telemetry"
	"github.com/pthm-cable/kickoff/ui"
)

// Options configures a match run.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int

	// StatsCallback, when set, receives every flushed stats window. Used
	// by the tuner to score runs without touching the filesystem.
	StatsCallback func(telemetry.WindowStats)
}

// Game hosts a match: the pitch, telemetry plumbing and, in graphical
// mode, the render stack.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	pitch *Pitch
	opts  Options

	collector *telemetry.Collector
	output    *telemetry.OutputManager
	perf      *telemetry.PerfStats

	// Rendering (nil in headless mode).
	view      *renderer.PitchView
	hud       *ui.HUD
	inspector *inspector.Inspector
	toggles   ui.Toggles

	// Cached HUD possession from the last flushed window.
	lastStats telemetry.WindowStats
}

// NewGameWithOptions builds a match with the given options. Config must
// have been initialized.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}
	if opts.StatsWindowSec <= 0 {
		opts.StatsWindowSec = cfg.Telemetry.StatsWindow
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))

	g := &Game{
		world:     world,
		rng:       rng,
		opts:      opts,
		pitch:     NewPitch(world, rng),
		collector: telemetry.NewCollector(opts.StatsWindowSec, cfg.Physics.DT),
		perf:      telemetry.NewPerfStats(),
	}
	g.pitch.SetCollector(g.collector)

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("telemetry output disabled", "error", err)
	} else {
		g.output = output
		if err := g.output.WriteConfig(cfg); err != nil {
			slog.Error("failed to snapshot config", "error", err)
		}
	}

	if !opts.Headless {
		g.view = renderer.NewPitchView(world)
		g.hud = ui.NewHUD(int32(cfg.Screen.Width), int32(cfg.Screen.Height))
		g.inspector = inspector.NewInspector(int32(cfg.Screen.Width), int32(cfg.Screen.Height))
	}

	return g
}

// Pitch returns the hosted pitch.
func (g *Game) Pitch() *Pitch { return g.pitch }

// Tick returns the simulation tick counter.
func (g *Game) Tick() int32 { return g.pitch.Tick() }

// Update runs one frame in graphical mode: input first, then the
// configured number of simulation steps.
func (g *Game) Update() {
	g.handleInput()

	for i := 0; i < g.opts.StepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// UpdateHeadless runs the configured number of steps without any input
// or rendering concerns.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.opts.StepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// simulationStep advances the pitch one tick and flushes telemetry
// windows as they complete.
func (g *Game) simulationStep() {
	start := time.Now()
	g.pitch.Update(config.Cfg().Physics.DT)
	g.perf.Record("teams", time.Since(start))

	if g.pitch.Paused() || !g.collector.ShouldFlush(g.pitch.Tick()) {
		return
	}

	flushStart := time.Now()
	red, blue := g.pitch.Score()
	stats := g.collector.Flush(g.pitch.Tick(), red, blue)
	g.lastStats = stats

	if g.opts.StatsCallback != nil {
		g.opts.StatsCallback(stats)
	}
	if g.opts.LogStats {
		slog.Info("window stats",
			"sim_time", stats.SimTimeSec,
			"score", []int{stats.ScoreRed, stats.ScoreBlue},
			"possession", []float64{stats.RedPossession, stats.BluePossession},
			"passes", []int{stats.RedPasses, stats.BluePasses},
			"shots", []int{stats.RedShots, stats.BlueShots},
		)
	}
	if err := g.output.WriteMatch(stats); err != nil {
		slog.Error("failed to write match stats", "error", err)
	}
	g.perf.Record("telemetry", time.Since(flushStart))

	if err := g.output.WritePerf(g.perf, g.pitch.Tick()); err != nil {
		slog.Error("failed to write perf stats", "error", err)
	}
}

// Unload releases resources at shutdown.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close telemetry output", "error", err)
	}
}
