// Package nebula is the particle simulation and transition engine behind an
// animated, section-navigated portfolio background, hosted on [Ebitengine].
//
// It simulates a depth-parallax constellation, a warp/transition state
// machine driven by section navigation, a procedurally deformed planet or
// black hole, a proximity connection graph, and particle-text fields that
// dissolve and reform around their glyphs.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	cfg, err := nebula.LoadConfig("")
//	if err != nil {
//		log.Fatal(err)
//	}
//	nebula.Run(cfg, nebula.GameOptions{})
//
// For full control, drive an [Engine] yourself. It needs no window and
// advances on virtual time only:
//
//	e := nebula.NewEngine(cfg)
//	e.Resize(1280, 720)
//	for {
//		e.Update(1000.0 / 60)
//		e.Draw()
//		// submit e.StarBuffer(), e.CelestialBuffer(), text field buffers
//	}
//
// # Engine
//
// [Engine] is the simulation context. Each [Engine.Update] advances the
// virtual [Clock] (firing due timers), smooths the warp factor, steps the
// [Field], the [Celestial] layer and the [Graph], and then steps the one
// [TextField] bound to the active section. Inputs ([Engine.PointerMove],
// [Navigator.GoTo], [Navigator.Wheel], [Navigator.Key], [Engine.Resize]) are
// applied between updates. Nothing is shared between engines.
//
// # Transitions
//
// Navigating to a section begins a [Transition] on the [Controller]. The
// warp factor is smoothed toward 1, and 800 ms later toward 0; a 1200 ms lock
// rejects further navigation. While the lock is held and the warp is
// noticeable, particles move only their overlay, so the committed layout is
// untouched and resumes when the lock releases. The effect is chosen by the
// destination section: warp, slide, twist or ascend.
//
// Timers live in the [Clock]. Beginning a transition cancels any timer the
// previous one left pending before scheduling its own.
//
// # Rendering
//
// Every layer draws into a [CommandBuffer] of [RenderCommand] values: dots,
// rects, lines, polylines, rings and filled polygons. The Ebitengine host
// submits buffers with ebiten/v2/vector and DrawTriangles through a
// [Compositor]; the termview subpackage rasterizes the same buffers as ASCII.
// A text field that is not active keeps its last buffer, so its layer keeps
// showing the last frame.
//
// # Configuration
//
// [LoadConfig] reads YAML layered over the embedded defaults. Zero values
// take built-in defaults, so a file only needs the fields it changes.
//
// # Diagnostics
//
// F3 toggles a HUD, F12 saves a PNG screenshot. [LoadTestScript] builds a
// [TestRunner] that replays navigation, pointer and resize input, and
// [Tracer] writes one CSV row per tick.
//
// [Ebitengine]: https://ebitengine.org
package nebula
