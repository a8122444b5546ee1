package amplify

import (
	"github.com/Faultbox/resurfacer/internal/engine/surface"
	"github.com/Faultbox/resurfacer/pkg/math"
)

// Tile is one amplification unit's sub-rectangle of the full (M, N) grid:
// cells [U0, U0+TileM) x [V0, V0+TileN). A tile emits the (TileM+1) x
// (TileN+1) vertices on its corners and edges; adjacent tiles evaluate the
// shared boundary at identical global uv, so their positions match bit for
// bit and no seams open.
type Tile struct {
	U0, V0       int
	TileM, TileN int
}

// VertexCount returns the vertices this tile emits.
func (t Tile) VertexCount() int { return (t.TileM + 1) * (t.TileN + 1) }

// TriangleCount returns the triangles this tile emits.
func (t Tile) TriangleCount() int { return 2 * t.TileM * t.TileN }

// SplitGrid partitions an (m, n) grid into tiles that each fit the
// per-group vertex and primitive budgets. The tile edge lengths are found
// by halving the longer axis until both budgets hold, so the policy scales
// to arbitrary resolutions with no fixed grid limit.
func SplitGrid(m, n, maxVerts, maxPrims int) []Tile {
	// A single cell is the smallest emittable tile.
	if maxVerts < 4 {
		maxVerts = 4
	}
	if maxPrims < 2 {
		maxPrims = 2
	}

	tileM, tileN := m, n
	for (tileM+1)*(tileN+1) > maxVerts || 2*tileM*tileN > maxPrims {
		if tileM >= tileN {
			tileM = (tileM + 1) / 2
		} else {
			tileN = (tileN + 1) / 2
		}
	}

	var tiles []Tile
	for v0 := 0; v0 < n; v0 += tileN {
		tn := tileN
		if v0+tn > n {
			tn = n - v0
		}
		for u0 := 0; u0 < m; u0 += tileM {
			tm := tileM
			if u0+tm > m {
				tm = m - u0
			}
			tiles = append(tiles, Tile{U0: u0, V0: v0, TileM: tm, TileN: tn})
		}
	}
	return tiles
}

// TessellateTile evaluates one tile of an element's grid, appending
// vertices and indices into the caller's pre-sliced output ranges.
// positions, normals must have length tile.VertexCount(); indices must have
// length 3*tile.TriangleCount(). indexBase is the element-batch offset of
// this tile's first vertex.
func TessellateTile(
	eval surface.Evaluator,
	frame Frame,
	anchor math.Vec3,
	scale float32,
	fullM, fullN int,
	tile Tile,
	indexBase uint32,
	positions, normals []math.Vec3,
	indices []uint32,
) {
	stride := tile.TileM + 1

	for v := 0; v <= tile.TileN; v++ {
		for u := 0; u <= tile.TileM; u++ {
			// Global parameter coordinates; shared boundaries between
			// tiles sample identical uv.
			uu := float32(tile.U0+u) / float32(fullM)
			vv := float32(tile.V0+v) / float32(fullN)

			localPos, localNormal := eval.Evaluate(uu, vv)
			pos, normal := frame.Apply(localPos, localNormal, anchor, scale)

			positions[v*stride+u] = pos
			normals[v*stride+u] = normal
		}
	}

	i := 0
	for v := 0; v < tile.TileN; v++ {
		for u := 0; u < tile.TileM; u++ {
			v00 := indexBase + uint32(v*stride+u)
			v10 := v00 + 1
			v01 := v00 + uint32(stride)
			v11 := v01 + 1

			indices[i+0] = v00
			indices[i+1] = v10
			indices[i+2] = v11
			indices[i+3] = v00
			indices[i+4] = v11
			indices[i+5] = v01
			i += 6
		}
	}
}
