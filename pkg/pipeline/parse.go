package pipeline

import (
	"github.com/lewisviz/lewis/pkg/molecule"
)

// Parse turns bracket notation into a validated molecule. All syntactic and
// reference checks happen inside molecule.Parse; this stage exists so the
// Runner's cache wrapper has a uniform shape across stages.
func Parse(opts Options) (*molecule.Molecule, error) {
	return molecule.Parse(opts.Notation)
}
