package nebula

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Alignment is the horizontal anchoring of rasterized text.
type Alignment uint8

const (
	AlignCenter Alignment = iota // centred on the anchor x
	AlignLeft                    // starts at the anchor x
)

// ParseAlignment maps a config string to an Alignment. Unknown values centre.
func ParseAlignment(s string) Alignment {
	if s == "left" {
		return AlignLeft
	}
	return AlignCenter
}

// coverageThreshold is the alpha a sample needs to become an anchor.
const coverageThreshold = 128

// Go font faces, parsed on first use.
var (
	parseBold    = sync.OnceValues(func() (*opentype.Font, error) { return opentype.Parse(gobold.TTF) })
	parseMedium  = sync.OnceValues(func() (*opentype.Font, error) { return opentype.Parse(gomedium.TTF) })
	parseRegular = sync.OnceValues(func() (*opentype.Font, error) { return opentype.Parse(goregular.TTF) })
)

// fontForWeight returns the Go font closest to a CSS-style weight.
func fontForWeight(weight int) (*opentype.Font, error) {
	switch {
	case weight >= 700:
		return parseBold()
	case weight >= 500:
		return parseMedium()
	default:
		return parseRegular()
	}
}

// RasterOptions describes one text rasterization.
type RasterOptions struct {
	Width, Height int     // canvas size in px
	Size          float64 // font size in px
	Weight        int
	X, Y          float64 // anchor: x per Align, y is the vertical middle
	Align         Alignment
}

// RasterizeText renders s in white onto a fresh transparent canvas.
func RasterizeText(s string, o RasterOptions) (*image.RGBA, error) {
	if o.Width <= 0 || o.Height <= 0 {
		return nil, fmt.Errorf("nebula: rasterize %q: empty canvas %dx%d", s, o.Width, o.Height)
	}
	fnt, err := fontForWeight(o.Weight)
	if err != nil {
		return nil, fmt.Errorf("nebula: parsing font: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    o.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("nebula: creating font face: %w", err)
	}
	defer face.Close()

	img := image.NewRGBA(image.Rect(0, 0, o.Width, o.Height))
	d := &font.Drawer{Dst: img, Src: image.White, Face: face}

	x := o.X
	if o.Align == AlignCenter {
		x -= float64(d.MeasureString(s)) / 64 / 2
	}
	d.Dot = fixed.Point26_6{
		X: fixed.Int26_6(x * 64),
		Y: middleBaseline(face.Metrics(), o.Y),
	}
	d.DrawString(s)
	return img, nil
}

// SampleAnchors walks img on a density-spaced grid and returns every sample
// whose alpha exceeds the coverage threshold, row by row.
func SampleAnchors(img *image.RGBA, density int) []Vec2 {
	if img == nil {
		return nil
	}
	density = max(density, 1)
	b := img.Bounds()
	var anchors []Vec2
	for y := b.Min.Y; y < b.Max.Y; y += density {
		for x := b.Min.X; x < b.Max.X; x += density {
			if img.Pix[img.PixOffset(x, y)+3] > coverageThreshold {
				anchors = append(anchors, Vec2{float64(x), float64(y)})
			}
		}
	}
	return anchors
}

// middleBaseline returns the baseline y that centres the em box on y.
func middleBaseline(m font.Metrics, y float64) fixed.Int26_6 {
	return fixed.Int26_6((y + float64(m.Ascent-m.Descent)/64/2) * 64)
}
