// Package pkg provides the core libraries for Skyline procedural layouts.
//
// # Overview
//
// Skyline places sub-elements on faces and along lengths: openings in rows
// or columns, framing lattices, and stacked building segments. The pkg
// directory is organized into four main areas:
//
//  1. [core] - Domain logic (geometry, seeded randomness, the three layout
//     engines, material allocation, UV projection, mesh kernel)
//  2. [building] - Composition of layouts into whole buildings
//  3. [render] - SVG, JSON and text artifacts
//  4. [pipeline] - Orchestration (layout → render, plan → render) with caching
//
// # Architecture
//
// The typical data flow through Skyline:
//
//	Spec / Options (TOML, JSON, flags)
//	         ↓
//	    [core/layout/stack] (segments along the building length)
//	         ↓
//	    [building] (panels, [core/layout/grid] windows, [core/layout/lattice] framing)
//	         ↓
//	    [core/material] + [core/uv] + [core/mesh] (composition)
//	         ↓
//	    SVG/JSON/TXT output
//
// Every layout is a pure function of its config, extents and seed: the same
// inputs always produce the same elements.
//
// # Quick Start
//
// Lay out windows on a face:
//
//	import (
//	    "github.com/matzehuels/skyline/pkg/core/geom"
//	    "github.com/matzehuels/skyline/pkg/core/layout/grid"
//	)
//
//	face := geom.Face{Frame: geom.Identity(), Width: 2000, Height: 1500, Depth: 100}
//	res := grid.Generate(grid.DefaultConfig(), face, 42)
//
// Plan a building and render its south elevation:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/skyline/pkg/building"
//	    "github.com/matzehuels/skyline/pkg/render"
//	)
//
//	plan, _ := building.Plan(context.Background(), building.DefaultSpec())
//	svg, _ := render.ElevationSVG(plan, building.South)
//
// Or use [pipeline.Runner] for cached layouts and artifacts.
//
// # Package Organization
//
// Core:
//   - [core/geom]: vectors, frames, faces and boxes
//   - [core/random]: seeded streams and seed derivation
//   - [core/layout]: elements, results, alignment enums
//   - [core/layout/grid], [core/layout/lattice], [core/layout/stack]: engines
//   - [core/material], [core/uv], [core/mesh]: composition support
//
// Infrastructure:
//   - [cache]: file, Redis and null caches with key derivation
//   - [errors]: coded errors and validators
//   - [observability]: layout, cache and API hooks
//   - [buildinfo]: version information
//
// [core]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/core
// [core/geom]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/core/geom
// [core/random]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/core/random
// [core/layout]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/core/layout
// [core/layout/grid]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/core/layout/grid
// [core/layout/lattice]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/core/layout/lattice
// [core/layout/stack]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/core/layout/stack
// [core/material]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/core/material
// [core/uv]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/core/uv
// [core/mesh]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/core/mesh
// [building]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/building
// [render]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/buildinfo
package pkg
