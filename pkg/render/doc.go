// Package render turns layouts and building plans into artifacts.
//
// # SVG
//
// [FaceSVG] draws any [layout.Result] inside a [Viewport]: use
// [FaceViewport] for grid and lattice results and [StackViewport] for
// stacks. [ElevationSVG] draws a whole [building.BuildingPlan] seen from
// one side, painting parts back to front:
//
//	out, err := render.ElevationSVG(plan, building.North, render.WithWidth(1200))
//
// Drawings are produced with github.com/ajstarks/svgo and styled with a
// small embedded stylesheet; every shape carries a class (segment, slab,
// panel, window, opening, member, border).
//
// # JSON and text
//
// [JSON] is the one encoder for plans and results. [Preview] rasterises a
// result into characters for terminal use.
package render
