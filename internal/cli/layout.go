package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lewisviz/lewis/pkg/molecule"
	"github.com/lewisviz/lewis/pkg/pipeline"
	"github.com/lewisviz/lewis/pkg/render"
)

// layoutCommand creates the layout command for computing scene geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		file    string
		seed    string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "layout [notation]",
		Short: "Compute 2D positions for a molecule",
		Long: `Compute 2D positions for a molecule and emit a scene document.

The layout command accepts either bracket notation or a molecule JSON file
(produced by 'parse'). If the molecule contains a ring, the ring atoms are
placed on a unit circle and the rest of the molecule grows outward from it;
otherwise atoms are placed on a unit grid starting from the seed atom.

The output is a scene JSON file holding glyphs, bond segments, lone-pair
dots, and plot bounds; 'render' turns it into an image.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args, layoutParams{
				output:  output,
				file:    file,
				seed:    seed,
				noCache: noCache,
				refresh: refresh,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read a molecule JSON document instead of notation")
	cmd.Flags().StringVar(&seed, "seed", "", "atom label to place at the origin (acyclic molecules)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache")

	return cmd
}

// layoutParams bundles the layout command's flags.
type layoutParams struct {
	output  string
	file    string
	seed    string
	noCache bool
	refresh bool
}

// runLayout loads the molecule, computes the scene, and writes output.
func (c *CLI) runLayout(ctx context.Context, args []string, p layoutParams) error {
	runner, err := c.newRunner(p.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	m, err := c.loadMolecule(ctx, runner, args, p.file, p.refresh)
	if err != nil {
		return err
	}

	opts := pipeline.Options{Seed: p.seed, Refresh: p.refresh, Logger: c.Logger}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	scene, cycle, cacheHit, err := runner.BuildSceneWithCacheInfo(ctx, m, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	out, err := openOutput(p.output)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := render.WriteScene(scene, out); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}

	if p.output != "" {
		printSuccess("Layout complete")
		printFile(p.output)
		printStats(m.Len(), m.BondCount(), cacheHit)
		printKeyValue("Bounds", fmt.Sprintf("%.1f x %.1f units", scene.Bounds.Width(), scene.Bounds.Height()))
		if len(cycle) > 0 {
			printDetail("Ring of %d atoms placed on a unit circle", len(cycle))
		}
		printNewline()
		printNextStep("Render", "lewis render -f "+p.output)
	}
	return nil
}

// loadMolecule reads a molecule from a JSON file or parses notation from args.
func (c *CLI) loadMolecule(ctx context.Context, runner *pipeline.Runner, args []string, file string, refresh bool) (*molecule.Molecule, error) {
	if file != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("provide notation as an argument or via --file, not both")
		}
		m, err := molecule.ReadMoleculeFile(file)
		if err != nil {
			return nil, fmt.Errorf("load molecule %s: %w", file, err)
		}
		return m, nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("notation is required (argument or --file)")
	}
	return runner.Parse(ctx, pipeline.Options{Notation: args[0], Refresh: refresh, Logger: c.Logger})
}
