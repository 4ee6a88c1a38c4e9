package render

import (
	"bytes"
	"fmt"
)

// Default rendering parameters.
const (
	// DefaultScale is the number of SVG pixels per grid unit.
	DefaultScale = 80.0
	// dotRadiusFactor sizes lone-pair dots relative to the scale.
	dotRadiusFactor = 0.04
	// fontFactor sizes glyph text relative to the scale.
	fontFactor = 0.25
	// textGapFactor is the fraction of a bond trimmed at each end so lines
	// do not run through the glyph text.
	textGapFactor = 0.18
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale      float64
	background string
	lineColor  string
	textColor  string
}

// WithScale sets the pixels-per-unit scale factor.
func WithScale(scale float64) SVGOption {
	return func(r *svgRenderer) { r.scale = scale }
}

// WithBackground sets the background fill ("" for transparent).
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithColors sets the bond line and glyph text colors.
func WithColors(line, text string) SVGOption {
	return func(r *svgRenderer) { r.lineColor = line; r.textColor = text }
}

// RenderSVG renders the scene as an SVG document.
//
// The scene's grid coordinates are mapped to SVG pixel space: x scales
// directly, y is flipped (SVG grows downward), and the viewBox covers the
// scene bounds. Bond multiplicity is drawn as parallel lines offset
// perpendicular to the bond; lone pairs are filled dots.
func RenderSVG(s Scene, opts ...SVGOption) []byte {
	r := svgRenderer{
		scale:      DefaultScale,
		background: "white",
		lineColor:  "#1a1a1a",
		textColor:  "#1a1a1a",
	}
	for _, opt := range opts {
		opt(&r)
	}

	width := s.Bounds.Width() * r.scale
	height := s.Bounds.Height() * r.scale

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.background)
	}

	for _, seg := range s.Bonds {
		r.renderBond(&buf, s, seg)
	}
	for _, d := range s.LonePairs {
		x, y := r.project(s, d.X, d.Y)
		fmt.Fprintf(&buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
			x, y, r.scale*dotRadiusFactor, r.lineColor)
	}
	for _, g := range s.Glyphs {
		x, y := r.project(s, g.X, g.Y)
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" font-family="Helvetica, sans-serif" text-anchor="middle" dominant-baseline="central" fill="%s">%s</text>`+"\n",
			x, y, r.scale*fontFactor, r.textColor, escapeText(g.Text))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderBond draws one bond as order-many parallel lines, trimmed at both
// ends so they stop short of the atom glyphs.
func (r *svgRenderer) renderBond(buf *bytes.Buffer, s Scene, seg Segment) {
	x1, y1, x2, y2 := trimSegment(seg.X1, seg.Y1, seg.X2, seg.Y2, textGapFactor)
	px, py := seg.PerpUnit()

	for _, off := range ParallelOffsets(seg.Order) {
		ax, ay := r.project(s, x1+px*off, y1+py*off)
		bx, by := r.project(s, x2+px*off, y2+py*off)
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>`+"\n",
			ax, ay, bx, by, r.lineColor, r.scale*0.025)
	}
}

// project maps grid coordinates to SVG pixel coordinates, flipping y.
func (r *svgRenderer) project(s Scene, x, y float64) (float64, float64) {
	return (x - s.Bounds.MinX) * r.scale, (s.Bounds.MaxY - y) * r.scale
}

// trimSegment shortens a segment by gap at both ends, in grid units
// proportional to the segment length.
func trimSegment(x1, y1, x2, y2, gap float64) (float64, float64, float64, float64) {
	dx, dy := x2-x1, y2-y1
	return x1 + dx*gap, y1 + dy*gap, x2 - dx*gap, y2 - dy*gap
}

func escapeText(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
