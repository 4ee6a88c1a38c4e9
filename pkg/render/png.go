package render

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/fogleman/gg"
)

// RenderPNG rasterizes the scene directly at the given pixels-per-unit
// scale. The drawing mirrors the SVG output: parallel lines per bond order,
// filled lone-pair dots, and centered glyph text.
func RenderPNG(s Scene, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = DefaultScale
	}

	width := int(s.Bounds.Width() * scale)
	height := int(s.Bounds.Height() * scale)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("scene has empty bounds")
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0.1, 0.1, 0.1)

	project := func(x, y float64) (float64, float64) {
		return (x - s.Bounds.MinX) * scale, (s.Bounds.MaxY - y) * scale
	}

	dc.SetLineWidth(scale * 0.025)
	for _, seg := range s.Bonds {
		x1, y1, x2, y2 := trimSegment(seg.X1, seg.Y1, seg.X2, seg.Y2, textGapFactor)
		px, py := seg.PerpUnit()
		for _, off := range ParallelOffsets(seg.Order) {
			ax, ay := project(x1+px*off, y1+py*off)
			bx, by := project(x2+px*off, y2+py*off)
			dc.DrawLine(ax, ay, bx, by)
			dc.Stroke()
		}
	}

	for _, d := range s.LonePairs {
		x, y := project(d.X, d.Y)
		dc.DrawCircle(x, y, scale*dotRadiusFactor)
		dc.Fill()
	}

	for _, g := range s.Glyphs {
		x, y := project(g.X, g.Y)
		dc.DrawStringAnchored(g.Text, x, y, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
