// Package render turns a molecule and its computed positions into drawable
// scenes and renders them to SVG, PNG, PDF, or Graphviz DOT.
//
// The Scene type is the stable interface between the core pipeline and any
// rendering technology: atom glyphs with resolved charges and coordinates,
// deduplicated bond segments with multiplicities, lone-pair dots, and plot
// bounds. Scenes serialize to JSON so layout results can be stored and
// rendered later.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/lewisviz/lewis/pkg/layout"
	"github.com/lewisviz/lewis/pkg/molecule"
)

// Lone-pair dot offsets along the connection's stated direction, in grid
// units from the owning atom's center.
const (
	lonePairNear = 0.2
	lonePairFar  = 0.4
)

// boundsMargin pads the plot bounds beyond the outermost atom positions.
// One full unit leaves room for lone-pair glyphs and glyph text.
const boundsMargin = 1.0

// Glyph is one rendered atom: its display text (element symbol plus charge
// annotation) centered at the atom's position.
type Glyph struct {
	Atom   string  `json:"atom"`
	Text   string  `json:"text"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Charge string  `json:"charge,omitempty"`
}

// Segment is one rendered bond between two atom centers.
// Order is the bond multiplicity: the number of parallel lines to draw.
type Segment struct {
	From  string             `json:"from"`
	To    string             `json:"to"`
	X1    float64            `json:"x1"`
	Y1    float64            `json:"y1"`
	X2    float64            `json:"x2"`
	Y2    float64            `json:"y2"`
	Order molecule.BondOrder `json:"order"`
}

// Dot is one lone-pair electron dot.
type Dot struct {
	Atom string  `json:"atom"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Bounds is the plot extent covering all positions plus a margin.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Scene is the complete drawable form of a laid-out molecule.
type Scene struct {
	Glyphs    []Glyph   `json:"glyphs"`
	Bonds     []Segment `json:"bonds"`
	LonePairs []Dot     `json:"lone_pairs,omitempty"`
	Bounds    Bounds    `json:"bounds"`
}

// BuildScene assembles a Scene from a molecule and its position map.
//
// Bonds declared from both sides are drawn once: segments are deduplicated
// with an unordered pair key. Lone pairs become two dots at 0.2 and 0.4
// units from the owning atom along the connection's direction. Bounds cover
// every atom position with a one-unit margin.
func BuildScene(m *molecule.Molecule, positions map[string]layout.Position) Scene {
	var s Scene
	drawn := make(map[[2]string]bool)

	for _, a := range m.Atoms() {
		pos := positions[a.Label]
		s.Glyphs = append(s.Glyphs, Glyph{
			Atom:   a.Label,
			Text:   a.DisplayLabel(),
			X:      pos.X,
			Y:      pos.Y,
			Charge: a.Charge,
		})

		for _, c := range a.Connections {
			switch {
			case c.IsBond():
				key := molecule.PairKey(a.Label, c.Target)
				if drawn[key] {
					continue
				}
				drawn[key] = true
				to := positions[c.Target]
				s.Bonds = append(s.Bonds, Segment{
					From: a.Label, To: c.Target,
					X1: pos.X, Y1: pos.Y,
					X2: to.X, Y2: to.Y,
					Order: c.Order,
				})
			case c.IsLonePair():
				dx, dy := c.Dir.Vector()
				s.LonePairs = append(s.LonePairs,
					Dot{Atom: a.Label, X: pos.X + dx*lonePairNear, Y: pos.Y + dy*lonePairNear},
					Dot{Atom: a.Label, X: pos.X + dx*lonePairFar, Y: pos.Y + dy*lonePairFar},
				)
			}
		}
	}

	s.Bounds = computeBounds(positions)
	return s
}

func computeBounds(positions map[string]layout.Position) Bounds {
	b := Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, p := range positions {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	if len(positions) == 0 {
		return Bounds{}
	}
	b.MinX -= boundsMargin
	b.MinY -= boundsMargin
	b.MaxX += boundsMargin
	b.MaxY += boundsMargin
	return b
}

// ParallelOffsets returns the perpendicular offsets for drawing a bond of
// the given order as parallel lines: one centered line for single bonds,
// ±0.2 units for double bonds, and a center line plus ±0.2 for triple.
func ParallelOffsets(order molecule.BondOrder) []float64 {
	switch order {
	case molecule.Double:
		return []float64{0.2, -0.2}
	case molecule.Triple:
		return []float64{0, 0.2, -0.2}
	default:
		return []float64{0}
	}
}

// PerpUnit returns the unit vector perpendicular to the segment, used to
// offset parallel bond lines. Zero-length segments yield a zero vector.
func (seg Segment) PerpUnit() (float64, float64) {
	dx := seg.X2 - seg.X1
	dy := seg.Y2 - seg.Y1
	norm := math.Hypot(dx, dy)
	if norm == 0 {
		return 0, 0
	}
	return -dy / norm, dx / norm
}

// =============================================================================
// Scene Serialization API
// =============================================================================

// MarshalScene serializes a Scene to pretty-printed JSON bytes.
func MarshalScene(s Scene) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// UnmarshalScene deserializes JSON bytes into a Scene.
func UnmarshalScene(data []byte) (Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return Scene{}, fmt.Errorf("unmarshal scene: %w", err)
	}
	if len(s.Glyphs) == 0 {
		return Scene{}, fmt.Errorf("scene must contain atom glyphs")
	}
	return s, nil
}

// WriteSceneFile writes a Scene to a JSON file.
func WriteSceneFile(s Scene, path string) error {
	data, err := MarshalScene(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadSceneFile reads a Scene from a JSON file.
func ReadSceneFile(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalScene(data)
}

// WriteScene writes a Scene as JSON to an io.Writer.
func WriteScene(s Scene, w io.Writer) error {
	data, err := MarshalScene(s)
	if err != nil {
		return err
	}
	_, err = bytes.NewReader(data).WriteTo(w)
	return err
}
