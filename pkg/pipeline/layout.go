package pipeline

import (
	"fmt"

	"github.com/lewisviz/lewis/pkg/graph"
	"github.com/lewisviz/lewis/pkg/layout"
	"github.com/lewisviz/lewis/pkg/molecule"
	"github.com/lewisviz/lewis/pkg/render"
)

// DetectCycle builds the bond adjacency and returns the first ring found,
// or nil when the molecule is acyclic.
func DetectCycle(m *molecule.Molecule) []string {
	adj := graph.BuildAdjacency(m)
	return graph.FindCycle(adj)
}

// BuildScene runs cycle detection and layout, then assembles the scene.
//
// Positions are computed fresh on every call. Only the assembled scene is
// cacheable, keyed by the notation and layout options, because positions
// are a pure function of those inputs.
func BuildScene(m *molecule.Molecule, opts Options) (render.Scene, []string, error) {
	cycle := DetectCycle(m)

	positions, err := layout.Build(m, cycle, layout.Options{Seed: opts.Seed})
	if err != nil {
		return render.Scene{}, nil, fmt.Errorf("layout: %w", err)
	}

	return render.BuildScene(m, positions), cycle, nil
}
