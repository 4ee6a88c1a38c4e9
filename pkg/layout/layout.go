// Package layout assigns deterministic 2D coordinates to every atom of a
// molecule: circular placement for a detected ring, directional grid
// placement for everything else, and radial outward placement for
// substituents hanging off ring atoms.
package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/lewisviz/lewis/pkg/errors"
	"github.com/lewisviz/lewis/pkg/molecule"
)

// RingRadius is the radius of the circle ring atoms are placed on.
// Ring units are distinct from the unit grid spacing used for acyclic
// placement.
const RingRadius = 1.0

// Position is a 2D coordinate assigned to exactly one atom label.
// Once assigned during a layout run, a position never changes.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Options configures a layout run.
type Options struct {
	// Seed selects the atom placed at the origin when no ring exists.
	// Empty means the first atom in declaration order. Seed selection is an
	// explicit parameter rather than an accident of map iteration, so runs
	// are reproducible by construction.
	Seed string
}

// Build computes a Position for every atom in the molecule.
//
// When cycle is non-empty, its n atoms are placed evenly on a circle of
// radius [RingRadius], atom i at angle 2πi/n counter-clockwise from the
// positive x-axis. Otherwise the seed atom is placed at the origin. From the
// seeded atoms, positions propagate breadth-first along bonds: each bond's
// stated direction gives a unit grid offset, except that an `above` bond
// leaving a ring atom extends radially outward from the ring center instead.
// First assignment wins; an already-placed atom is never repositioned.
//
// Positions and queue state are local to the call; nothing is shared or
// cached across runs. Returns an UNPLACED_ATOM error when any atom is
// unreachable from the seeds (disconnected components are rejected rather
// than silently left unplaced).
func Build(m *molecule.Molecule, cycle []string, opts Options) (map[string]Position, error) {
	if m.Len() == 0 {
		return nil, errors.New(errors.ErrCodeEmptyMolecule, "molecule has no atoms")
	}

	positions := make(map[string]Position, m.Len())
	queue := make([]string, 0, m.Len())
	inRing := make(map[string]bool, len(cycle))

	if len(cycle) > 0 {
		for i, label := range cycle {
			angle := 2 * math.Pi * float64(i) / float64(len(cycle))
			positions[label] = Position{
				X: RingRadius * math.Cos(angle),
				Y: RingRadius * math.Sin(angle),
			}
			inRing[label] = true
			queue = append(queue, label)
		}
	} else {
		seed, err := pickSeed(m, opts.Seed)
		if err != nil {
			return nil, err
		}
		positions[seed] = Position{}
		queue = append(queue, seed)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		atom, ok := m.Atom(current)
		if !ok {
			return nil, errors.New(errors.ErrCodeUndefinedReference, "cycle names undefined atom %q", current)
		}
		pos := positions[current]

		for _, bond := range atom.Bonds() {
			if _, placed := positions[bond.Target]; placed {
				continue
			}
			next, err := offsetPosition(pos, bond.Dir, inRing[current])
			if err != nil {
				return nil, err
			}
			positions[bond.Target] = next
			queue = append(queue, bond.Target)
		}
	}

	if err := checkAllPlaced(m, positions); err != nil {
		return nil, err
	}
	return positions, nil
}

// offsetPosition computes the neighbor position for a bond leaving pos in
// the given direction. Ring atoms project `above` bonds radially outward
// from the ring center (the origin) instead of straight up, so substituents
// fan out around the ring. A ring atom sitting exactly at the origin has no
// outward direction and falls back to the plain above offset.
func offsetPosition(pos Position, dir molecule.Direction, onRing bool) (Position, error) {
	if onRing && dir == molecule.Above {
		norm := math.Hypot(pos.X, pos.Y)
		if norm == 0 {
			return Position{X: pos.X, Y: pos.Y + 1}, nil
		}
		return Position{X: pos.X + pos.X/norm, Y: pos.Y + pos.Y/norm}, nil
	}

	switch dir {
	case molecule.Left, molecule.Right, molecule.Above, molecule.Below:
		dx, dy := dir.Vector()
		return Position{X: pos.X + dx, Y: pos.Y + dy}, nil
	default:
		return Position{}, errors.New(errors.ErrCodeUnknownDirection, "unknown direction: %v", dir)
	}
}

// pickSeed resolves the seed atom label: the explicit option if given (and
// present in the molecule), else the first atom in declaration order.
func pickSeed(m *molecule.Molecule, seed string) (string, error) {
	if seed == "" {
		return m.Labels()[0], nil
	}
	if _, ok := m.Atom(seed); !ok {
		return "", errors.New(errors.ErrCodeInvalidSeed, "seed atom %q is not in the molecule", seed)
	}
	return seed, nil
}

// checkAllPlaced verifies every atom received a position. Atoms unreachable
// from the seeds via bonds stay unplaced, which means the input contains
// disconnected components; they are reported rather than dropped.
func checkAllPlaced(m *molecule.Molecule, positions map[string]Position) error {
	var missing []string
	for _, label := range m.Labels() {
		if _, ok := positions[label]; !ok {
			missing = append(missing, label)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return errors.New(errors.ErrCodeUnplacedAtom,
		"atoms unreachable from layout seed: %s", strings.Join(missing, ", "))
}
