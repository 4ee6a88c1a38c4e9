package molecule

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lewisviz/lewis/pkg/errors"
)

// =============================================================================
// Document - Molecule Serialization Format
// =============================================================================

// Document is the canonical JSON serialization format for molecules.
// It is what `lewis parse` writes and what `lewis layout` and `lewis render`
// accept, allowing the pipeline stages to compose as separate CLI steps.
//
// The format is human-readable and designed for round-trip fidelity:
// parse → export → re-import produces an identical Molecule.
type Document struct {
	Atoms []AtomDoc `json:"atoms"`
}

// AtomDoc is the serialized form of one atom.
type AtomDoc struct {
	Label       string    `json:"label"`
	Charge      string    `json:"charge,omitempty"`
	Connections []ConnDoc `json:"connections,omitempty"`
}

// ConnDoc is the serialized form of one connection.
// Kind is "bond" or "lone_pair"; Bond and Target are set for bonds only.
type ConnDoc struct {
	Kind   string `json:"kind"`
	Dir    string `json:"dir"`
	Bond   string `json:"bond,omitempty"`
	Target string `json:"target,omitempty"`
}

// Serialized kind discriminators.
const (
	KindBond     = "bond"
	KindLonePair = "lone_pair"
)

// =============================================================================
// Molecule ↔ Document Conversion
// =============================================================================

// FromMolecule converts a Molecule to its serialization format.
// Atom order follows the molecule's declaration order.
func FromMolecule(m *Molecule) Document {
	doc := Document{Atoms: make([]AtomDoc, 0, m.Len())}
	for _, a := range m.Atoms() {
		ad := AtomDoc{Label: a.Label, Charge: a.Charge}
		for _, c := range a.Connections {
			ad.Connections = append(ad.Connections, connToDoc(c))
		}
		doc.Atoms = append(doc.Atoms, ad)
	}
	return doc
}

// ToMolecule converts a Document back to a Molecule.
// Returns validation errors for unknown directions, bond symbols, duplicate
// labels, or undefined bond targets.
func ToMolecule(doc Document) (*Molecule, error) {
	m := New()
	for _, ad := range doc.Atoms {
		if err := errors.ValidateCharge(ad.Charge); err != nil {
			return nil, err
		}
		atom := Atom{Label: ad.Label, Charge: ad.Charge}
		for _, cd := range ad.Connections {
			conn, err := connFromDoc(cd)
			if err != nil {
				return nil, err
			}
			atom.Connections = append(atom.Connections, conn)
		}
		if err := m.AddAtom(atom); err != nil {
			return nil, err
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func connToDoc(c Connection) ConnDoc {
	if c.IsLonePair() {
		return ConnDoc{Kind: KindLonePair, Dir: c.Dir.String()}
	}
	return ConnDoc{Kind: KindBond, Dir: c.Dir.String(), Bond: c.Order.Symbol(), Target: c.Target}
}

func connFromDoc(cd ConnDoc) (Connection, error) {
	dir, err := ParseDirection(cd.Dir)
	if err != nil {
		return Connection{}, err
	}
	switch cd.Kind {
	case KindLonePair:
		return Connection{Kind: ConnLonePair, Dir: dir}, nil
	case KindBond:
		order, err := ParseBondSymbol(cd.Bond)
		if err != nil {
			return Connection{}, err
		}
		if cd.Target == "" {
			return Connection{}, errors.New(errors.ErrCodeInvalidConnection, "bond connection missing target")
		}
		return Connection{Kind: ConnBond, Dir: dir, Order: order, Target: cd.Target}, nil
	default:
		return Connection{}, errors.New(errors.ErrCodeInvalidConnection, "unknown connection kind: %q", cd.Kind)
	}
}

// =============================================================================
// Serialization API
// =============================================================================

// MarshalMolecule converts a Molecule to pretty-printed JSON bytes.
func MarshalMolecule(m *Molecule) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteMolecule(m, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteMolecule writes a Molecule as JSON to an io.Writer.
func WriteMolecule(m *Molecule, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromMolecule(m)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteMoleculeFile writes a Molecule to a JSON file.
// The file is created with 0644 permissions.
func WriteMoleculeFile(m *Molecule, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteMolecule(m, f)
}

// ReadMolecule decodes a JSON molecule document from an io.Reader.
func ReadMolecule(r io.Reader) (*Molecule, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToMolecule(doc)
}

// ReadMoleculeFile reads a JSON file and returns the decoded Molecule.
func ReadMoleculeFile(path string) (*Molecule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadMolecule(f)
}
