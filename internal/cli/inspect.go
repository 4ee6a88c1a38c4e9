package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lewisviz/lewis/pkg/layout"
	"github.com/lewisviz/lewis/pkg/molecule"
	"github.com/lewisviz/lewis/pkg/pipeline"
)

// inspectCommand creates the inspect command for browsing a molecule's atoms.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		file  string
		seed  string
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [notation]",
		Short: "Browse a molecule's atoms interactively",
		Long: `Browse a molecule's atoms interactively.

Parses the notation, computes the layout, and opens a scrollable table of
atoms showing charge, bond partners, lone pairs, and grid position. Use
--plain for non-interactive output suitable for piping.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args, file, seed, plain)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read a molecule JSON document instead of notation")
	cmd.Flags().StringVar(&seed, "seed", "", "atom label to place at the origin (acyclic molecules)")
	cmd.Flags().BoolVar(&plain, "plain", false, "print a static table instead of the interactive browser")

	return cmd
}

// runInspect builds the atom rows and either prints them or starts the browser.
func (c *CLI) runInspect(ctx context.Context, args []string, file, seed string, plain bool) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	m, err := c.loadMolecule(ctx, runner, args, file, false)
	if err != nil {
		return err
	}

	cycle := pipeline.DetectCycle(m)
	positions, err := layout.Build(m, cycle, layout.Options{Seed: seed})
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	rows := buildAtomRows(m, positions, cycle)

	if plain {
		for _, r := range rows {
			fmt.Printf("%-8s %-6s %-10s %-20s %s\n", r.Label, r.Charge, r.Position, r.Bonds, r.LonePairs)
		}
		return nil
	}

	model := NewAtomListModel(m.Format(), rows)
	_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
	return err
}

// buildAtomRows summarizes each atom for display, in declaration order.
func buildAtomRows(m *molecule.Molecule, positions map[string]layout.Position, cycle []string) []AtomRow {
	ring := make(map[string]bool, len(cycle))
	for _, label := range cycle {
		ring[label] = true
	}

	var rows []AtomRow
	for _, a := range m.Atoms() {
		pos := positions[a.Label]

		var bonds []string
		lonePairs := 0
		for _, conn := range a.Connections {
			if conn.IsBond() {
				bonds = append(bonds, fmt.Sprintf("%s%s", conn.Order.Symbol(), conn.Target))
			} else {
				lonePairs++
			}
		}

		rows = append(rows, AtomRow{
			Label:     a.Label,
			Charge:    a.Charge,
			Position:  fmt.Sprintf("(%.2f, %.2f)", pos.X, pos.Y),
			Bonds:     joinOrDash(bonds),
			LonePairs: fmt.Sprintf("%d", lonePairs),
			OnRing:    ring[a.Label],
		})
	}
	return rows
}

func joinOrDash(parts []string) string {
	if len(parts) == 0 {
		return "—"
	}
	s := parts[0]
	for _, p := range parts[1:] {
		s += ", " + p
	}
	return s
}
