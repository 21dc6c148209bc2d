package nebula

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// rgba converts a command color to a premultiplied color.RGBA.
func (c color32) rgba() color.RGBA {
	return Color{float64(c.R), float64(c.G), float64(c.B), float64(c.A)}.toRGBA()
}

// Renderer submits command buffers to Ebitengine images. Scratch vertex
// and index buffers are reused across polygons.
type Renderer struct {
	whitePixel *ebiten.Image
	verts      []ebiten.Vertex
	inds       []uint16
}

// NewRenderer creates a renderer. The white pixel is allocated lazily.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
// Used as the source of untextured polygons.
func (r *Renderer) ensureWhitePixel() *ebiten.Image {
	if r.whitePixel == nil {
		r.whitePixel = ebiten.NewImage(1, 1)
		r.whitePixel.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return r.whitePixel
}

// Submit draws buf's commands onto dst in emission order, offset by (ox, oy).
func (r *Renderer) Submit(dst *ebiten.Image, buf *CommandBuffer, ox, oy float32) {
	cmds := buf.Commands()
	for i := range cmds {
		cmd := &cmds[i]
		if cmd.Color.A <= 0 {
			continue
		}
		clr := cmd.Color.rgba()
		switch cmd.Type {
		case CommandDot:
			vector.DrawFilledCircle(dst, cmd.X+ox, cmd.Y+oy, cmd.Radius, clr, true)
		case CommandRect:
			vector.DrawFilledRect(dst, cmd.X+ox, cmd.Y+oy, cmd.X2, cmd.Y2, clr, false)
		case CommandLine:
			vector.StrokeLine(dst, cmd.X+ox, cmd.Y+oy, cmd.X2+ox, cmd.Y2+oy, cmd.Width, clr, true)
		case CommandRing:
			vector.StrokeCircle(dst, cmd.X+ox, cmd.Y+oy, cmd.Radius, cmd.Width, clr, true)
		case CommandPolyline:
			pts := cmd.Points
			for k := 1; k < len(pts); k++ {
				vector.StrokeLine(dst,
					float32(pts[k-1].X)+ox, float32(pts[k-1].Y)+oy,
					float32(pts[k].X)+ox, float32(pts[k].Y)+oy,
					cmd.Width, clr, true)
			}
		case CommandPolygon:
			r.submitPolygon(dst, cmd, ox, oy)
		}
	}
}

// submitPolygon fan-triangulates a convex polygon and draws it with the
// white pixel tinted by the command color.
func (r *Renderer) submitPolygon(dst *ebiten.Image, cmd *RenderCommand, ox, oy float32) {
	n := len(cmd.Points)
	if n < 3 {
		return
	}
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	for _, p := range cmd.Points {
		r.verts = append(r.verts, ebiten.Vertex{
			DstX:   float32(p.X) + ox,
			DstY:   float32(p.Y) + oy,
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: cmd.Color.R,
			ColorG: cmd.Color.G,
			ColorB: cmd.Color.B,
			ColorA: cmd.Color.A,
		})
	}
	for k := 1; k < n-1; k++ {
		r.inds = append(r.inds, 0, uint16(k), uint16(k+1))
	}
	var op ebiten.DrawTrianglesOptions
	op.AntiAlias = true
	dst.DrawTriangles(r.verts, r.inds, r.ensureWhitePixel(), &op)
}

// Dispose releases the renderer's GPU resources.
func (r *Renderer) Dispose() {
	if r.whitePixel != nil {
		r.whitePixel.Deallocate()
		r.whitePixel = nil
	}
}
