package amplify

import (
	"testing"

	"github.com/Faultbox/resurfacer/internal/engine/surface"
	"github.com/Faultbox/resurfacer/pkg/math"
)

func tessellateWhole(m, n int) ([]math.Vec3, []uint32) {
	eval := surface.New(surface.Torus, surface.DefaultParams())
	frame := AnchorFrame(math.Vec3{Z: 1})

	tile := Tile{TileM: m, TileN: n}
	positions := make([]math.Vec3, tile.VertexCount())
	normals := make([]math.Vec3, tile.VertexCount())
	indices := make([]uint32, 3*tile.TriangleCount())

	TessellateTile(eval, frame, math.Vec3{}, 1, m, n, tile, 0, positions, normals, indices)
	return positions, indices
}

func TestTessellationCounts(t *testing.T) {
	for _, res := range [][2]int{{2, 2}, {4, 8}, {11, 3}} {
		m, n := res[0], res[1]
		positions, indices := tessellateWhole(m, n)

		if got, want := len(positions), (m+1)*(n+1); got != want {
			t.Errorf("(%d,%d): %d vertices, want %d", m, n, got, want)
		}
		if got, want := len(indices), 3*2*m*n; got != want {
			t.Errorf("(%d,%d): %d indices, want %d", m, n, got, want)
		}
	}
}

func TestTessellationIndexCoverage(t *testing.T) {
	m, n := 4, 3
	positions, indices := tessellateWhole(m, n)

	used := make([]bool, len(positions))
	for _, idx := range indices {
		if int(idx) >= len(positions) {
			t.Fatalf("index %d out of range (%d vertices)", idx, len(positions))
		}
		used[idx] = true
	}
	for i, u := range used {
		if !u {
			t.Errorf("vertex %d referenced by no triangle", i)
		}
	}
}

func TestSplitGridRespectsBudgets(t *testing.T) {
	cases := []struct {
		m, n, maxVerts, maxPrims int
	}{
		{8, 8, 64, 126},
		{8, 8, 25, 32},
		{64, 64, 64, 126},
		{3, 100, 16, 32},
		{2, 2, 4, 2},
	}
	for _, tc := range cases {
		tiles := SplitGrid(tc.m, tc.n, tc.maxVerts, tc.maxPrims)

		cells := 0
		for _, tile := range tiles {
			if tile.VertexCount() > tc.maxVerts {
				t.Errorf("SplitGrid(%d,%d,%d,%d): tile %+v exceeds vertex budget",
					tc.m, tc.n, tc.maxVerts, tc.maxPrims, tile)
			}
			if tile.TriangleCount() > tc.maxPrims {
				t.Errorf("SplitGrid(%d,%d,%d,%d): tile %+v exceeds primitive budget",
					tc.m, tc.n, tc.maxVerts, tc.maxPrims, tile)
			}
			cells += tile.TileM * tile.TileN
		}
		if cells != tc.m*tc.n {
			t.Errorf("SplitGrid(%d,%d,%d,%d): tiles cover %d cells, want %d",
				tc.m, tc.n, tc.maxVerts, tc.maxPrims, cells, tc.m*tc.n)
		}
	}
}

func TestSplitGridSingleTileWhenWithinBudget(t *testing.T) {
	tiles := SplitGrid(8, 8, 1024, 1024)
	if len(tiles) != 1 {
		t.Fatalf("got %d tiles, want 1", len(tiles))
	}
	if tiles[0].TileM != 8 || tiles[0].TileN != 8 {
		t.Errorf("single tile = %+v, want full 8x8 grid", tiles[0])
	}
}

func TestTiledBoundariesMatchExactly(t *testing.T) {
	const m, n = 8, 8
	eval := surface.New(surface.Torus, surface.DefaultParams())
	frame := AnchorFrame(math.Vec3{X: 1, Y: 0.5, Z: 0.25})
	anchor := math.Vec3{X: 1, Y: 2, Z: 3}
	scale := float32(1.7)

	// Reference: the whole grid in one tile.
	whole := Tile{TileM: m, TileN: n}
	refPos := make([]math.Vec3, whole.VertexCount())
	refNorm := make([]math.Vec3, whole.VertexCount())
	refIdx := make([]uint32, 3*whole.TriangleCount())
	TessellateTile(eval, frame, anchor, scale, m, n, whole, 0, refPos, refNorm, refIdx)

	// Tiled: budget forces a split.
	tiles := SplitGrid(m, n, 25, 32)
	if len(tiles) < 2 {
		t.Fatalf("expected a split, got %d tiles", len(tiles))
	}

	for _, tile := range tiles {
		positions := make([]math.Vec3, tile.VertexCount())
		normals := make([]math.Vec3, tile.VertexCount())
		indices := make([]uint32, 3*tile.TriangleCount())
		TessellateTile(eval, frame, anchor, scale, m, n, tile, 0, positions, normals, indices)

		stride := tile.TileM + 1
		for v := 0; v <= tile.TileN; v++ {
			for u := 0; u <= tile.TileM; u++ {
				gu, gv := tile.U0+u, tile.V0+v
				want := refPos[gv*(m+1)+gu]
				got := positions[v*stride+u]
				// Bitwise equality: shared tile boundaries must not crack.
				if got != want {
					t.Fatalf("tile %+v vertex (%d,%d) = %v, reference %v", tile, gu, gv, got, want)
				}
			}
		}
	}
}
