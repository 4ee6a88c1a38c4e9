package pipeline

import (
	"fmt"

	"github.com/lewisviz/lewis/pkg/molecule"
	"github.com/lewisviz/lewis/pkg/render"
)

// Render generates output artifacts in the requested formats.
//
// The molecule is needed alongside the scene for the DOT format, which is
// built from bond topology rather than from positioned primitives.
func Render(scene render.Scene, m *molecule.Molecule, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = render.RenderSVG(scene, svgOpts...)
		case FormatPNG:
			data, err = render.RenderPNG(scene, opts.Scale)
		case FormatPDF:
			data, err = render.RenderPDF(scene, svgOpts...)
		case FormatDOT:
			if m == nil {
				return nil, fmt.Errorf("dot output requires the parsed molecule")
			}
			data = []byte(render.ToDOT(m))
		case FormatGraph:
			if m == nil {
				return nil, fmt.Errorf("graph output requires the parsed molecule")
			}
			data, err = render.RenderDOTSVG(render.ToDOT(m))
		case FormatJSON:
			data, err = render.MarshalScene(scene)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// RenderFromSceneData renders output from serialized scene data.
// This is useful when the scene was computed elsewhere (e.g., cached).
func RenderFromSceneData(sceneData []byte, m *molecule.Molecule, opts Options) (map[string][]byte, error) {
	scene, err := render.UnmarshalScene(sceneData)
	if err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return Render(scene, m, opts)
}

// buildSVGOptions builds SVG rendering options from pipeline options.
// Callers are expected to have applied render defaults already.
func buildSVGOptions(opts Options) []render.SVGOption {
	var svgOpts []render.SVGOption
	if opts.Scale != 0 {
		svgOpts = append(svgOpts, render.WithScale(opts.Scale))
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, render.WithBackground(opts.Background))
	}
	return svgOpts
}
