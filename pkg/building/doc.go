// Package building composes the layout engine into whole buildings.
//
// A [Spec] describes a parent volume. [Plan] stacks segments along it,
// wraps each segment in floor, roof and side panels, cuts a window grid
// into every panel and optionally frames each segment side with a lattice.
// The result is a [BuildingPlan]: plain data, deterministic in the [Spec],
// with every material id already assigned.
//
// [Compose] hands a plan to a [mesh.Kernel] to produce geometry. The
// reference [mesh.BoxKernel] records the boxes and boolean tools without
// triangulating, which is enough for rendering elevations and for tests.
//
// # Seeds
//
// The stack draws from Spec.Seed. Windows of segment i use
// Seed+i, incremented once per panel unless Windows.Uniform is set.
// Lattices use Framing.Seed (or Spec.Seed with Framing.UseRootSeed) on
// every side, offset internally by the lattice package.
//
// # Specs on disk
//
// [LoadSpec] reads TOML on top of [DefaultSpec]:
//
//	seed = 42
//	size = [12000.0, 9000.0, 30000.0]
//
//	[stack]
//	floors = 6
//	rotation = 15.0
//
//	[panels]
//	west = false
//
//	[materials.panels]
//	sides = "glass"
package building
