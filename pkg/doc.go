// Package pkg provides the core libraries for Lewis molecule diagrams.
//
// # Overview
//
// Lewis turns a compact bracket notation for small molecules into 2D
// Lewis structure diagrams. The pkg directory is organized into five
// main areas:
//
//  1. [molecule] - Notation parsing and the molecule document model
//  2. [graph] - Bond adjacency and ring detection
//  3. [layout] - Grid placement of atoms (rings on a unit circle)
//  4. [render] - Scene assembly and SVG/PNG/PDF/DOT output
//  5. [pipeline] - Orchestration (parse → layout → render) with caching
//
// # Architecture
//
// The typical data flow:
//
//	Bracket notation
//	         ↓
//	molecule.Parse        → *molecule.Molecule
//	         ↓
//	graph.BuildAdjacency  → ring detection via graph.FindCycle
//	         ↓
//	layout.Build          → map[string]layout.Position
//	         ↓
//	render.BuildScene     → render.Scene
//	         ↓
//	render.RenderSVG/PNG  → bytes
//
// The pipeline package wires these stages together behind a Runner that
// caches intermediate documents (see [cache]). Supporting packages:
// [errors] for coded errors, [cache] for file and Redis backends, and
// [buildinfo] for version metadata.
package pkg
