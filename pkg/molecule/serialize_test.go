package molecule

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lewisviz/lewis/pkg/errors"
)

func TestDocumentRoundTrip(t *testing.T) {
	m, err := Parse("N{+}[left:-:H1,right:-:H2,above::];H1[right:-:N];H2[left:-:N]")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	data, err := MarshalMolecule(m)
	if err != nil {
		t.Fatalf("MarshalMolecule() error = %v", err)
	}
	if !strings.Contains(string(data), `"label": "N"`) {
		t.Errorf("marshaled document missing atom label, got:\n%s", data)
	}
	if !strings.Contains(string(data), `"kind": "lone_pair"`) {
		t.Errorf("marshaled document missing lone pair kind, got:\n%s", data)
	}

	m2, err := ReadMolecule(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadMolecule() error = %v", err)
	}
	if m2.Format() != m.Format() {
		t.Errorf("round trip changed molecule:\n got %q\nwant %q", m2.Format(), m.Format())
	}
}

func TestDocumentFileRoundTrip(t *testing.T) {
	m, err := Parse("C[left:=:O1,right:=:O2];O1[right:=:C];O2[left:=:C]")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "co2.json")
	if err := WriteMoleculeFile(m, path); err != nil {
		t.Fatalf("WriteMoleculeFile() error = %v", err)
	}

	m2, err := ReadMoleculeFile(path)
	if err != nil {
		t.Fatalf("ReadMoleculeFile() error = %v", err)
	}
	if m2.Format() != m.Format() {
		t.Errorf("file round trip changed molecule:\n got %q\nwant %q", m2.Format(), m.Format())
	}
}

func TestToMoleculeErrors(t *testing.T) {
	tests := []struct {
		name     string
		doc      Document
		wantCode errors.Code
	}{
		{
			name: "unknown connection kind",
			doc: Document{Atoms: []AtomDoc{
				{Label: "C", Connections: []ConnDoc{{Kind: "ionic", Dir: "left"}}},
			}},
			wantCode: errors.ErrCodeInvalidConnection,
		},
		{
			name: "bond missing target",
			doc: Document{Atoms: []AtomDoc{
				{Label: "C", Connections: []ConnDoc{{Kind: KindBond, Dir: "left", Bond: "-"}}},
			}},
			wantCode: errors.ErrCodeInvalidConnection,
		},
		{
			name: "unknown direction",
			doc: Document{Atoms: []AtomDoc{
				{Label: "C", Connections: []ConnDoc{{Kind: KindLonePair, Dir: "up"}}},
			}},
			wantCode: errors.ErrCodeUnknownDirection,
		},
		{
			name: "unknown bond symbol",
			doc: Document{Atoms: []AtomDoc{
				{Label: "C", Connections: []ConnDoc{{Kind: KindBond, Dir: "left", Bond: "*", Target: "O"}}},
			}},
			wantCode: errors.ErrCodeUnknownBond,
		},
		{
			name: "malformed charge",
			doc: Document{Atoms: []AtomDoc{
				{Label: "C", Charge: "+"},
			}},
			wantCode: errors.ErrCodeInvalidStatement,
		},
		{
			name: "duplicate label",
			doc: Document{Atoms: []AtomDoc{
				{Label: "C"},
				{Label: "C"},
			}},
			wantCode: errors.ErrCodeDuplicateAtom,
		},
		{
			name: "undefined bond target",
			doc: Document{Atoms: []AtomDoc{
				{Label: "C", Connections: []ConnDoc{{Kind: KindBond, Dir: "left", Bond: "-", Target: "X"}}},
			}},
			wantCode: errors.ErrCodeUndefinedReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToMolecule(tt.doc)
			if err == nil {
				t.Fatal("ToMolecule() expected error, got nil")
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("ToMolecule() code = %s, want %s", got, tt.wantCode)
			}
		})
	}
}

func TestReadMoleculeInvalidJSON(t *testing.T) {
	_, err := ReadMolecule(strings.NewReader("{not json"))
	if err == nil {
		t.Fatal("ReadMolecule() expected error for invalid JSON, got nil")
	}
}
