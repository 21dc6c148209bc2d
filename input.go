package nebula

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// navKeys maps keyboard keys to navigation steps.
var navKeys = [...]struct {
	key ebiten.Key
	nav NavKey
}{
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyPageDown, KeyDown},
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyPageUp, KeyUp},
}

// navKeyFor returns the navigation step bound to key.
func navKeyFor(key ebiten.Key) (NavKey, bool) {
	for _, b := range navKeys {
		if b.key == key {
			return b.nav, true
		}
	}
	return 0, false
}

// wheelDelta converts an Ebitengine wheel offset to a page-style deltaY:
// positive scrolls down.
func wheelDelta(yoff, scale float64) float64 {
	return -yoff * scale
}

// insideViewport reports whether a cursor position lies within vp.
func insideViewport(x, y int, vp Viewport) bool {
	return x >= 0 && y >= 0 && float64(x) < vp.Width && float64(y) < vp.Height
}

// hostInput is the set of host toggles pressed this tick.
type hostInput struct {
	toggleHUD  bool
	screenshot bool
}

// pollInput applies this tick's keyboard and wheel input to the navigator,
// and the cursor to the engine unless pointer is false.
func pollInput(e *Engine, wheelScale float64, pointer bool) hostInput {
	nav := e.Navigator()
	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		if k, ok := navKeyFor(key); ok {
			nav.Key(k)
		}
	}

	if _, yoff := ebiten.Wheel(); yoff != 0 {
		nav.Wheel(wheelDelta(yoff, wheelScale))
	}

	if pointer {
		x, y := ebiten.CursorPosition()
		if insideViewport(x, y, e.Viewport()) {
			e.PointerMove(float64(x), float64(y))
		} else {
			e.PointerLeave()
		}
	}

	return hostInput{
		toggleHUD:  inpututil.IsKeyJustPressed(ebiten.KeyF3),
		screenshot: inpututil.IsKeyJustPressed(ebiten.KeyF12),
	}
}
