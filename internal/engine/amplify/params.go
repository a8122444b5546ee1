// Package amplify expands base-mesh elements into tessellated surface
// patches: per element it resolves an anchor, applies visibility and LOD
// policy, and evaluates a parametric patch into a resolution-controlled
// grid, tiling the grid when it exceeds one dispatch group's output budget.
package amplify

import "github.com/Faultbox/resurfacer/internal/engine/surface"

// Params is the per-frame configuration snapshot. Every stage of one
// frame's parallel work reads the same value; nothing mutates it after the
// frame starts.
type Params struct {
	SurfaceType surface.Type
	Shape       surface.Params

	// UserScale is the global patch size multiplier.
	UserScale float32

	// ResolutionM and ResolutionN are the full grid subdivisions along the
	// two parametric axes before LOD reduction.
	ResolutionM int
	ResolutionN int

	// LOD selects coarser grids for elements with a small screen extent.
	LOD       bool
	LODFactor float32

	// Culling enables the frustum and back-face rejection tests.
	Culling bool

	// CullMargin expands the bounding radius before frustum rejection.
	CullMargin float32

	// BackfaceThreshold rejects elements whose normal's alignment with the
	// view vector falls below it. Values below 0 admit silhouette elements.
	BackfaceThreshold float32

	// MaxTileVerts and MaxTilePrims bound one amplification unit's output,
	// forcing grid tiling above them.
	MaxTileVerts int
	MaxTilePrims int
}

// DefaultParams mirrors the original demo's startup configuration, with
// tile budgets matching common mesh-shader output limits.
func DefaultParams() Params {
	return Params{
		SurfaceType:       surface.Torus,
		Shape:             surface.DefaultParams(),
		UserScale:         1.0,
		ResolutionM:       8,
		ResolutionN:       8,
		LOD:               true,
		LODFactor:         1.0,
		Culling:           true,
		CullMargin:        1.2,
		BackfaceThreshold: -0.3,
		MaxTileVerts:      64,
		MaxTilePrims:      126,
	}
}
