// Package molecule defines the molecular data model and the notation parser.
//
// A molecule is described in a small semicolon-separated text notation:
//
//	N1{+}[left:-:C1, right:-:C2, above::]
//
// Each statement declares one atom: a label, an optional brace-delimited
// charge annotation, and a bracketed list of connections. A connection is
// either a bond (direction, bond symbol, target label) or a lone pair
// (direction followed by two colons).
//
// The parser produces a Molecule, an ordered read-only mapping from atom
// label to Atom. Iteration order follows input declaration order, which
// downstream layout uses to pick its default seed atom.
package molecule

import (
	"github.com/lewisviz/lewis/pkg/errors"
)

// Direction is one of the four cardinal grid directions a connection can
// point in. No other values are valid input.
type Direction int

// The four recognized directions.
const (
	Left Direction = iota
	Right
	Above
	Below
)

// directionNames maps directions to their notation spelling.
var directionNames = map[Direction]string{
	Left:  "left",
	Right: "right",
	Above: "above",
	Below: "below",
}

// ParseDirection parses a notation direction token.
// Returns an UNKNOWN_DIRECTION error for anything outside the four
// recognized values.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	case "above":
		return Above, nil
	case "below":
		return Below, nil
	default:
		return 0, errors.New(errors.ErrCodeUnknownDirection, "unknown direction: %q", s)
	}
}

// String returns the notation spelling of the direction.
func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "invalid"
}

// Vector returns the unit grid offset for the direction.
// Offsets are in grid units, distinct from the ring radius used by layout.
func (d Direction) Vector() (dx, dy float64) {
	switch d {
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case Above:
		return 0, 1
	case Below:
		return 0, -1
	}
	return 0, 0
}

// BondOrder is the single/double/triple classification of a covalent bond.
// The numeric value equals the number of parallel lines drawn for the bond.
type BondOrder int

// Recognized bond orders.
const (
	Single BondOrder = 1
	Double BondOrder = 2
	Triple BondOrder = 3
)

// ParseBondSymbol parses a notation bond symbol: "-", "=", or "≡".
func ParseBondSymbol(s string) (BondOrder, error) {
	switch s {
	case "-":
		return Single, nil
	case "=":
		return Double, nil
	case "≡":
		return Triple, nil
	default:
		return 0, errors.New(errors.ErrCodeUnknownBond, "unknown bond symbol: %q", s)
	}
}

// Symbol returns the notation symbol for the bond order.
func (o BondOrder) Symbol() string {
	switch o {
	case Single:
		return "-"
	case Double:
		return "="
	case Triple:
		return "≡"
	}
	return "?"
}

// ConnKind distinguishes the two connection variants.
type ConnKind int

const (
	// ConnBond is a covalent bond to another atom.
	ConnBond ConnKind = iota
	// ConnLonePair is a non-bonding electron pair rendered near the owning
	// atom; it links to no other atom.
	ConnLonePair
)

// Connection is a tagged variant over the two connection forms.
// For ConnBond, Order and Target are set; for ConnLonePair only Dir is
// meaningful. Modeling this as an explicit kind avoids the arity-based type
// discrimination the notation itself invites.
type Connection struct {
	Kind   ConnKind
	Dir    Direction
	Order  BondOrder // bonds only
	Target string    // bonds only
}

// IsBond reports whether the connection is a bond.
func (c Connection) IsBond() bool { return c.Kind == ConnBond }

// IsLonePair reports whether the connection is a lone pair.
func (c Connection) IsLonePair() bool { return c.Kind == ConnLonePair }

// String returns the connection in notation form.
func (c Connection) String() string {
	if c.IsLonePair() {
		return c.Dir.String() + "::"
	}
	return c.Dir.String() + ":" + c.Order.Symbol() + ":" + c.Target
}

// Atom is one declared atom: a unique label, an optional charge annotation
// (verbatim notation text, e.g. "{+}"; empty if neutral), and the ordered
// connections declared for it.
type Atom struct {
	Label       string
	Charge      string
	Connections []Connection
}

// Symbol returns the element symbol displayed for the atom, derived as the
// first rune of the label (e.g. "N" from "N1"). Stable for the atom's
// lifetime since labels never change after parsing.
func (a *Atom) Symbol() string {
	for _, r := range a.Label {
		return string(r)
	}
	return ""
}

// DisplayLabel returns the rendered label: element symbol plus the charge
// annotation echoed verbatim.
func (a *Atom) DisplayLabel() string {
	return a.Symbol() + a.Charge
}

// Bonds returns the atom's bond connections, lone pairs excluded.
func (a *Atom) Bonds() []Connection {
	out := make([]Connection, 0, len(a.Connections))
	for _, c := range a.Connections {
		if c.IsBond() {
			out = append(out, c)
		}
	}
	return out
}

// LonePairs returns the atom's lone-pair connections.
func (a *Atom) LonePairs() []Connection {
	var out []Connection
	for _, c := range a.Connections {
		if c.IsLonePair() {
			out = append(out, c)
		}
	}
	return out
}

// Molecule is an ordered mapping from atom label to Atom, built once by the
// parser and read-only afterward. Bonds are symmetric in meaning but may be
// declared from one side only; consumers deduplicate with an unordered pair
// key.
//
// The zero value is not usable - use New to create a Molecule.
type Molecule struct {
	atoms map[string]*Atom
	order []string
}

// New creates an empty Molecule.
func New() *Molecule {
	return &Molecule{atoms: make(map[string]*Atom)}
}

// AddAtom adds an atom, preserving declaration order.
// Returns a DUPLICATE_ATOM error if the label is already taken, or an
// INVALID_STATEMENT error for malformed labels.
func (m *Molecule) AddAtom(a Atom) error {
	if err := errors.ValidateAtomLabel(a.Label); err != nil {
		return err
	}
	if _, exists := m.atoms[a.Label]; exists {
		return errors.New(errors.ErrCodeDuplicateAtom, "duplicate atom label: %q", a.Label)
	}
	atom := a
	m.atoms[atom.Label] = &atom
	m.order = append(m.order, atom.Label)
	return nil
}

// Atom returns the atom with the given label.
func (m *Molecule) Atom(label string) (*Atom, bool) {
	a, ok := m.atoms[label]
	return a, ok
}

// Atoms returns all atoms in declaration order.
func (m *Molecule) Atoms() []*Atom {
	out := make([]*Atom, len(m.order))
	for i, label := range m.order {
		out[i] = m.atoms[label]
	}
	return out
}

// Labels returns all atom labels in declaration order.
func (m *Molecule) Labels() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of atoms.
func (m *Molecule) Len() int { return len(m.order) }

// BondCount returns the number of distinct bonds, counting a bond declared
// from both sides once.
func (m *Molecule) BondCount() int {
	seen := make(map[[2]string]bool)
	for _, a := range m.Atoms() {
		for _, c := range a.Bonds() {
			seen[PairKey(a.Label, c.Target)] = true
		}
	}
	return len(seen)
}

// LonePairCount returns the total number of lone pairs across all atoms.
func (m *Molecule) LonePairCount() int {
	n := 0
	for _, a := range m.Atoms() {
		n += len(a.LonePairs())
	}
	return n
}

// Validate checks graph-level consistency: every bond target must name an
// atom present in the molecule. Returns an UNDEFINED_REFERENCE error naming
// the offending atom and target.
func (m *Molecule) Validate() error {
	for _, a := range m.Atoms() {
		for _, c := range a.Bonds() {
			if _, ok := m.atoms[c.Target]; !ok {
				return errors.New(errors.ErrCodeUndefinedReference,
					"atom %q bonds to undefined atom %q", a.Label, c.Target)
			}
		}
	}
	return nil
}

// PairKey returns the unordered pair key for a bond between two atoms.
// Both declaration directions map to the same key.
func PairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}
