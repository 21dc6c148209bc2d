package nebula

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const hudRefresh = 0.5 // seconds

// HUD is the F3 diagnostics overlay. The text is re-rendered every ~0.5
// seconds into its own image via ebitenutil.DebugPrint.
type HUD struct {
	img     *ebiten.Image
	elapsed float64
	text    string
}

// NewHUD creates a HUD. The image is allocated on first Draw.
func NewHUD() *HUD {
	return &HUD{elapsed: hudRefresh}
}

// hudText formats one HUD snapshot.
func hudText(e *Engine, fps, tps float64) string {
	ctrl := e.Controller()
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nwarp: %.3f %s\nfx: %s dir %+d\nsection: %d\nparticles: %d\nedges: %d\nbody: %s",
		fps, tps,
		ctrl.Warp(), ctrl.Phase(),
		ctrl.Effect(), int(ctrl.Direction()),
		e.Navigator().Current(),
		e.Field().Len(),
		e.Graph().Len(),
		e.Celestial().Body(),
	)
}

// Update refreshes the text when the refresh interval has passed.
func (h *HUD) Update(dt float64, e *Engine) {
	h.elapsed += dt
	if h.elapsed < hudRefresh {
		return
	}
	h.elapsed = 0
	h.text = hudText(e, ebiten.ActualFPS(), ebiten.ActualTPS())
	if h.img == nil {
		// 160x130 fits eight DebugPrint lines.
		h.img = ebiten.NewImage(160, 130)
	}
	h.img.Clear()
	// Semi-transparent background for readability
	h.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(h.img, h.text)
}

// Draw composites the HUD at the top-left of screen.
func (h *HUD) Draw(screen *ebiten.Image) {
	if h.img == nil {
		return
	}
	screen.DrawImage(h.img, nil)
}
