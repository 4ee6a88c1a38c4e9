// Package graph derives undirected connectivity from a parsed molecule and
// detects cyclic substructures (rings).
//
// The adjacency structure reflects bond connections only; lone pairs never
// appear. Bonds declared from a single side are made symmetric, so cycle
// detection always sees an undirected graph regardless of which side of a
// bond the notation declared.
package graph

import (
	"github.com/lewisviz/lewis/pkg/molecule"
)

// Adjacency maps an atom label to the ordered list of directly bonded atom
// labels. Neighbor order is deterministic: each edge is recorded on both
// endpoints at its first declaration, so lists follow the global declaration
// order of first occurrence.
type Adjacency struct {
	neighbors map[string][]string
	order     []string
}

// BuildAdjacency derives the undirected adjacency structure from a Molecule.
// Pure function of the molecule: duplicate declarations (A→B and B→A) are
// collapsed to one edge, and one-sided declarations are completed so the
// structure is symmetric.
func BuildAdjacency(m *molecule.Molecule) *Adjacency {
	adj := &Adjacency{
		neighbors: make(map[string][]string, m.Len()),
		order:     m.Labels(),
	}
	seen := make(map[[2]string]bool)

	for _, a := range m.Atoms() {
		if _, ok := adj.neighbors[a.Label]; !ok {
			adj.neighbors[a.Label] = nil
		}
		for _, c := range a.Bonds() {
			key := molecule.PairKey(a.Label, c.Target)
			if seen[key] {
				continue
			}
			seen[key] = true
			adj.neighbors[a.Label] = append(adj.neighbors[a.Label], c.Target)
			adj.neighbors[c.Target] = append(adj.neighbors[c.Target], a.Label)
		}
	}

	return adj
}

// Neighbors returns the bonded neighbors of the given atom, in deterministic
// order. The returned slice must not be modified.
func (a *Adjacency) Neighbors(label string) []string {
	return a.neighbors[label]
}

// Labels returns all atom labels in declaration order.
func (a *Adjacency) Labels() []string {
	return a.order
}

// Degree returns the number of distinct bonded neighbors.
func (a *Adjacency) Degree(label string) int {
	return len(a.neighbors[label])
}

// EdgeCount returns the number of distinct undirected edges.
func (a *Adjacency) EdgeCount() int {
	n := 0
	for _, nbs := range a.neighbors {
		n += len(nbs)
	}
	return n / 2
}
