// Package termview previews a nebula Engine in a terminal. Each character
// cell stands for a block of viewport pixels; command coverage is reduced to
// a brightness ramp.
package termview

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/nebula"
)

// ramp maps brightness to glyphs, dark to light.
const ramp = " .:-=+*#%@"

// Canvas is a character grid accumulating per-cell brightness in [0, 1].
type Canvas struct {
	cols, rows   int
	cellW, cellH float64
	lum          []float64
}

// NewCanvas creates a grid of cols × rows cells, each cellW × cellH px.
func NewCanvas(cols, rows int, cellW, cellH float64) *Canvas {
	c := &Canvas{cellW: cellW, cellH: cellH}
	c.Resize(cols, rows)
	return c
}

// Resize changes the grid size and clears it.
func (c *Canvas) Resize(cols, rows int) {
	c.cols, c.rows = max(cols, 0), max(rows, 0)
	c.lum = make([]float64, c.cols*c.rows)
}

// Size returns the grid size in cells.
func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

// Pixels returns the viewport size the grid covers.
func (c *Canvas) Pixels() (w, h float64) {
	return float64(c.cols) * c.cellW, float64(c.rows) * c.cellH
}

// Clear resets every cell to dark.
func (c *Canvas) Clear() {
	clear(c.lum)
}

// Lum returns the brightness of one cell.
func (c *Canvas) Lum(col, row int) float64 {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return 0
	}
	return c.lum[row*c.cols+col]
}

// Rune returns the glyph for one cell.
func (c *Canvas) Rune(col, row int) rune {
	l := c.Lum(col, row)
	i := int(math.Round(l * float64(len(ramp)-1)))
	return rune(ramp[min(max(i, 0), len(ramp)-1)])
}

func (c *Canvas) cell(x, y float64) (int, int, bool) {
	col := int(math.Floor(x / c.cellW))
	row := int(math.Floor(y / c.cellH))
	return col, row, col >= 0 && row >= 0 && col < c.cols && row < c.rows
}

// plot brightens the cell under (x, y) to at least a.
func (c *Canvas) plot(x, y, a float64) {
	if col, row, ok := c.cell(x, y); ok {
		i := row*c.cols + col
		c.lum[i] = math.Max(c.lum[i], math.Min(a, 1))
	}
}

// segment plots samples along a line at half-cell spacing.
func (c *Canvas) segment(x0, y0, x1, y1, a float64) {
	step := math.Min(c.cellW, c.cellH) / 2
	n := max(1, int(math.Ceil(math.Hypot(x1-x0, y1-y0)/step)))
	for k := 0; k <= n; k++ {
		t := float64(k) / float64(n)
		c.plot(x0+(x1-x0)*t, y0+(y1-y0)*t, a)
	}
}

// fillPolygon darkens every cell whose centre lies inside pts.
func (c *Canvas) fillPolygon(pts []nebula.Vec2, ox, oy float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X+ox), math.Max(maxX, p.X+ox)
		minY, maxY = math.Min(minY, p.Y+oy), math.Max(maxY, p.Y+oy)
	}
	c0, r0, _ := c.cell(minX, minY)
	c1, r1, _ := c.cell(maxX, maxY)
	for row := max(r0, 0); row <= min(r1, c.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, c.cols-1); col++ {
			cx := (float64(col)+0.5)*c.cellW - ox
			cy := (float64(row)+0.5)*c.cellH - oy
			if insidePolygon(pts, cx, cy) {
				c.lum[row*c.cols+col] = 0
			}
		}
	}
}

// insidePolygon is the even-odd ray-casting test.
func insidePolygon(pts []nebula.Vec2, x, y float64) bool {
	inside := false
	j := len(pts) - 1
	for i := range pts {
		pi, pj := pts[i], pts[j]
		if (pi.Y > y) != (pj.Y > y) && x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Submit rasterizes buf into the grid, offset by (ox, oy) px and scaled by
// opacity. Opaque black fills occlude what was drawn before them.
func (c *Canvas) Submit(buf *nebula.CommandBuffer, ox, oy, opacity float64) {
	cmds := buf.Commands()
	for i := range cmds {
		cmd := &cmds[i]
		a := cmd.Alpha() * opacity
		x, y := float64(cmd.X)+ox, float64(cmd.Y)+oy
		switch cmd.Type {
		case nebula.CommandPolygon:
			if cmd.Color.R == 0 && cmd.Color.G == 0 && cmd.Color.B == 0 {
				c.fillPolygon(cmd.Points, ox, oy)
			}
		case nebula.CommandDot:
			if cmd.Color.R == 0 && cmd.Color.G == 0 && cmd.Color.B == 0 {
				continue
			}
			c.plot(x, y, a)
		case nebula.CommandRect:
			c.plot(x, y, a)
		case nebula.CommandLine:
			c.segment(x, y, float64(cmd.X2)+ox, float64(cmd.Y2)+oy, a)
		case nebula.CommandPolyline:
			for k := 1; k < len(cmd.Points); k++ {
				p, q := cmd.Points[k-1], cmd.Points[k]
				c.segment(p.X+ox, p.Y+oy, q.X+ox, q.Y+oy, a)
			}
		case nebula.CommandRing:
			r := float64(cmd.Radius)
			n := max(8, int(2*math.Pi*r/math.Min(c.cellW, c.cellH)))
			for k := range n {
				t := 2 * math.Pi * float64(k) / float64(n)
				c.plot(x+r*math.Cos(t), y+r*math.Sin(t), a)
			}
		}
	}
}

// Compose draws every visible layer of e in page order.
func (c *Canvas) Compose(e *nebula.Engine) {
	c.Clear()
	c.Submit(e.StarBuffer(), 0, 0, 1)
	if cel := e.Celestial(); cel.Visible() {
		c.Submit(e.CelestialBuffer(), 0, 0, cel.Opacity())
	}
	cur := e.Navigator().Current()
	for _, tf := range e.TextFields() {
		if tf.Section() == cur {
			r := tf.Canvas()
			c.Submit(tf.Buffer(), r.X, r.Y, 1)
		}
	}
}

// Flush writes the grid to screen.
func (c *Canvas) Flush(s tcell.Screen) {
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			v := int32(c.Lum(col, row) * 255)
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(v, v, v))
			s.SetContent(col, row, c.Rune(col, row), nil, style)
		}
	}
	s.Show()
}

// Options configures Run.
type Options struct {
	CellWidth, CellHeight float64 // px per cell; default 8 × 16
	TPS                   int     // ticks per second; default 30
}

// Run drives e on screen until ctx is done or the user quits with q, Esc,
// or Ctrl-C. Terminal events are applied strictly between ticks.
func Run(ctx context.Context, screen tcell.Screen, e *nebula.Engine, opts Options) error {
	if opts.CellWidth <= 0 {
		opts.CellWidth = 8
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = 16
	}
	if opts.TPS <= 0 {
		opts.TPS = 30
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("termview: init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()
	screen.EnableMouse()

	cols, rows := screen.Size()
	canvas := NewCanvas(cols, rows, opts.CellWidth, opts.CellHeight)
	e.Resize(canvas.Pixels())

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	dt := time.Second / time.Duration(opts.TPS)
	ticker := time.NewTicker(dt)
	defer ticker.Stop()
	wheel := e.Config().Navigation.WheelScale

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !handleEvent(ev, e, canvas, wheel) {
				return nil
			}
		case <-ticker.C:
			e.Update(float64(dt.Milliseconds()))
			e.Draw()
			canvas.Compose(e)
			canvas.Flush(screen)
		}
	}
}

// handleEvent applies one terminal event. It reports false on quit.
func handleEvent(ev tcell.Event, e *nebula.Engine, canvas *Canvas, wheel float64) bool {
	nav := e.Navigator()
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		canvas.Resize(cols, rows)
		e.Resize(canvas.Pixels())
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyDown, tcell.KeyPgDn:
			nav.Key(nebula.KeyDown)
		case tcell.KeyUp, tcell.KeyPgUp:
			nav.Key(nebula.KeyUp)
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return false
			}
		}
	case *tcell.EventMouse:
		col, row := ev.Position()
		e.PointerMove((float64(col)+0.5)*canvas.cellW, (float64(row)+0.5)*canvas.cellH)
		switch btn := ev.Buttons(); {
		case btn&tcell.WheelDown != 0:
			nav.Wheel(wheel)
		case btn&tcell.WheelUp != 0:
			nav.Wheel(-wheel)
		}
	case *tcell.EventFocus:
		if !ev.Focused {
			e.PointerLeave()
		}
	}
	return true
}
