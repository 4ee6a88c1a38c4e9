package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lewisviz/lewis/pkg/pipeline"
)

// renderCommand creates the render command for generating diagram files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		file       string
		formatsStr string
		seed       string
		scale      float64
		background string
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "render [notation]",
		Short: "Render a molecule diagram",
		Long: `Render a molecule diagram from bracket notation or a molecule JSON file.

This is the all-in-one command: it parses, computes the layout, and writes
the requested output formats in a single run. Use 'parse' and 'layout' when
you want to inspect or cache the intermediate documents.

Formats:
  svg    vector diagram (default)
  png    raster diagram
  pdf    via rsvg-convert (must be installed)
  dot    Graphviz source for the bond graph
  graph  node-link SVG rendered by Graphviz from the bond graph
  json   the scene document`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			opts.Seed = seed
			opts.Refresh = refresh
			opts.Formats = c.parseFormats(formatsStr)
			if scale != 0 {
				opts.Scale = scale
			}
			if background != "" {
				opts.Background = background
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args, file, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&file, "file", "", "read a molecule JSON document instead of notation")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, graph, json (comma-separated)")
	cmd.Flags().StringVar(&seed, "seed", "", "atom label to place at the origin (acyclic molecules)")
	cmd.Flags().Float64Var(&scale, "scale", 0, "pixels per grid unit")
	cmd.Flags().StringVar(&background, "background", "", "background fill color")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache")

	return cmd
}

// runRender executes the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, args []string, file string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	m, err := c.loadMolecule(ctx, runner, args, file, opts.Refresh)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Rendering diagram...")
	spinner.Start()

	scene, _, err := runner.BuildScene(ctx, m, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, scene, m, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	input := file
	if input == "" && len(args) > 0 {
		input = "molecule"
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  cacheHit,
		atomCount: m.Len(),
		bondCount: m.BondCount(),
	})
}

// artifactWriteParams bundles the inputs to writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string // input path or a fallback basename
	output    string // output path or base path
	cacheHit  bool
	atomCount int
	bondCount int
}

// writeArtifacts writes the rendered artifacts to disk and prints a summary.
// With one format, output names the file directly; with several, it is used
// as a base path and the format extension is appended.
func writeArtifacts(p artifactWriteParams) error {
	base := artifactBasePath(p.output, p.input)

	var paths []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}

		path := base + "." + format
		if p.output != "" && len(p.formats) == 1 {
			path = p.output
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Render complete")
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.atomCount, p.bondCount, p.cacheHit)
	return nil
}

// artifactBasePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
func artifactBasePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
