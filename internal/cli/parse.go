package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lewisviz/lewis/pkg/molecule"
	"github.com/lewisviz/lewis/pkg/pipeline"
)

// parseCommand creates the parse command for turning notation into a
// molecule document.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		output  string
		file    string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "parse [notation]",
		Short: "Parse bracket notation into a molecule document",
		Long: `Parse bracket notation into a molecule document.

Notation is a semicolon-separated list of atom statements. Each statement
names an atom, optionally a charge in braces, and a bracketed list of
connections:

  H2O    lewis parse "O[left:-:H1,right:-:H2,above::,below::];H1[right:-:O];H2[left:-:O]"
  CO2    lewis parse "C[left:=:O1,right:=:O2];O1[right:=:C];O2[left:=:C]"

Connection forms:
  dir::          lone pair on the given side (left, right, above, below)
  dir:sym:atom   bond to another atom; sym is - (single), = (double), ≡ (triple)

The output is a JSON molecule document consumed by 'layout' and 'render'.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notation, err := readNotation(args, file)
			if err != nil {
				return err
			}
			return c.runParse(cmd.Context(), notation, output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read notation from a file instead of the argument")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache")

	return cmd
}

// runParse parses the notation and writes the molecule document.
func (c *CLI) runParse(ctx context.Context, notation, output string, noCache, refresh bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{Notation: notation, Refresh: refresh, Logger: c.Logger}

	prog := newProgress(c.Logger)
	m, cacheHit, err := runner.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Parsed %d atoms with %d bonds", m.Len(), m.BondCount()))

	if err := writeMoleculeOutput(m, output); err != nil {
		return err
	}

	if output != "" {
		printSuccess("Parse complete")
		printFile(output)
		printStats(m.Len(), m.BondCount(), cacheHit)
		printNewline()
		printNextStep("Layout", "lewis layout -f "+output)
	}
	return nil
}

// readNotation returns notation from the positional argument or --file.
// Exactly one source must be provided.
func readNotation(args []string, file string) (string, error) {
	switch {
	case file != "" && len(args) > 0:
		return "", fmt.Errorf("provide notation as an argument or via --file, not both")
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", file, err)
		}
		return strings.TrimSpace(string(data)), nil
	case len(args) > 0:
		return args[0], nil
	default:
		return "", fmt.Errorf("notation is required (argument or --file)")
	}
}

// writeMoleculeOutput serializes m as JSON to path (or stdout if empty).
func writeMoleculeOutput(m *molecule.Molecule, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return molecule.WriteMolecule(m, out)
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
