package nebula

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// GameOptions configures the Ebitengine host.
type GameOptions struct {
	// Debug logs per-frame timings and bounds checks at debug level.
	Debug bool
	// ShowHUD starts with the F3 overlay visible.
	ShowHUD bool
	// ScreenshotDir receives F12 and scripted captures. Default "screenshots".
	ScreenshotDir string
	// Runner, when set, drives input from a script instead of the cursor.
	Runner *TestRunner
	// ExitWhenDone ends the game once Runner has finished.
	ExitWhenDone bool
	// Trace, when set, receives one CSV row per tick.
	Trace io.Writer
}

// Game adapts an Engine to ebiten.Game.
type Game struct {
	engine *Engine
	comp   *Compositor
	hud    *HUD
	shots  *Screenshots
	runner *TestRunner
	tracer *Tracer
	opts   GameOptions

	showHUD bool
	w, h    int
	stats   frameStats
}

// NewGame creates a host for a fresh engine built from cfg.
func NewGame(cfg *Config, opts GameOptions) *Game {
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = "screenshots"
	}
	g := &Game{
		engine:  NewEngine(cfg),
		comp:    NewCompositor(),
		hud:     NewHUD(),
		shots:   &Screenshots{Dir: opts.ScreenshotDir},
		runner:  opts.Runner,
		opts:    opts,
		showHUD: opts.ShowHUD,
	}
	if opts.Trace != nil {
		g.tracer = NewTracer(opts.Trace)
	}
	return g
}

// Engine returns the hosted engine.
func (g *Game) Engine() *Engine { return g.engine }

// Layout implements ebiten.Game. A size change resizes the engine.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.engine.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	start := time.Now()
	cfg := g.engine.Config()
	dtMs := 1000 / float64(ebiten.TPS())

	if g.runner != nil {
		g.runner.Step(g.engine, g.shots)
		if g.runner.Done() && g.opts.ExitWhenDone && g.shots.Pending() == 0 {
			return ebiten.Termination
		}
	}
	in := pollInput(g.engine, cfg.Navigation.WheelScale, g.runner == nil)
	if in.toggleHUD {
		g.showHUD = !g.showHUD
	}
	if in.screenshot {
		g.shots.Queue("manual")
	}

	g.engine.Update(dtMs)
	if g.showHUD {
		g.hud.Update(dtMs/1000, g.engine)
	}
	if g.tracer != nil {
		if err := g.tracer.Record(g.engine); err != nil {
			slog.Warn("trace disabled", "err", err)
			g.tracer = nil
		}
	}

	g.stats.updateTime = time.Since(start)
	if g.opts.Debug {
		debugCheckParticles(g.engine.Field())
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	t0 := time.Now()
	g.engine.Draw()
	t1 := time.Now()
	g.comp.Render(screen, g.engine)
	g.shots.Flush(screen)
	if g.showHUD {
		g.hud.Draw(screen)
	}

	if g.opts.Debug {
		g.stats.drawTime = t1.Sub(t0)
		g.stats.submitTime = time.Since(t1)
		g.stats.starCmds = g.engine.StarBuffer().Len()
		g.stats.skyCmds = g.engine.CelestialBuffer().Len()
		g.stats.edges = g.engine.Graph().Len()
		debugLog(g.stats, g.engine.Tick())
	}
}

// Run opens a window and runs the game until it is closed.
func Run(cfg *Config, opts GameOptions) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.TPS)

	g := NewGame(cfg, opts)
	defer g.comp.Dispose()
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("nebula: run game: %w", err)
	}
	return nil
}
