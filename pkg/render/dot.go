package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/lewisviz/lewis/pkg/molecule"
)

// ToDOT converts a molecule's connectivity to Graphviz DOT format for a
// node-link view that ignores computed positions. Bond multiplicity is
// encoded in the edge label; charged atoms carry their annotation in the
// node label. Useful for eyeballing connectivity independent of layout.
func ToDOT(m *molecule.Molecule) string {
	var buf bytes.Buffer
	buf.WriteString("graph molecule {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=18];\n")
	buf.WriteString("\n")

	for _, a := range m.Atoms() {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", a.Label, a.DisplayLabel())
	}

	buf.WriteString("\n")
	drawn := make(map[[2]string]bool)
	for _, a := range m.Atoms() {
		for _, c := range a.Bonds() {
			key := molecule.PairKey(a.Label, c.Target)
			if drawn[key] {
				continue
			}
			drawn[key] = true
			attrs := edgeAttrs(c.Order)
			fmt.Fprintf(&buf, "  %q -- %q%s;\n", a.Label, c.Target, attrs)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeAttrs(order molecule.BondOrder) string {
	switch order {
	case molecule.Double:
		return ` [color="black:invis:black"]`
	case molecule.Triple:
		return ` [color="black:invis:black:invis:black"]`
	default:
		return ""
	}
}

// RenderDOTSVG renders a DOT graph to SVG using Graphviz.
func RenderDOTSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
