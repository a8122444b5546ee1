package amplify

import (
	"testing"

	"github.com/Faultbox/resurfacer/internal/engine/surface"
	"github.com/Faultbox/resurfacer/internal/parallel"
	"github.com/Faultbox/resurfacer/pkg/math"
)

// translateBehind moves the model well behind the test camera at z=5.
func translateBehind() math.Mat4 {
	return math.Translate(0, 0, 15)
}

// TestFrameUnitCube is the end-to-end scenario: a unit cube with culling
// and LOD off at resolution (2,2) amplifies all 14 elements into 9 vertices
// and 8 triangles each.
func TestFrameUnitCube(t *testing.T) {
	mesh := buildCube(t)
	pipe := New(mesh, parallel.New(4))

	params := DefaultParams()
	params.Culling = false
	params.LOD = false
	params.ResolutionM = 2
	params.ResolutionN = 2

	batches, stats := pipe.Frame(testView(), params)

	if stats.Elements != 14 || stats.Culled != 0 {
		t.Fatalf("stats = %+v, want 14 elements, 0 culled", stats)
	}
	if len(batches) != 14 {
		t.Fatalf("got %d batches, want 14", len(batches))
	}

	for _, b := range batches {
		if len(b.Positions) != 9 || len(b.Normals) != 9 {
			t.Errorf("element %d: %d vertices, want 9", b.Element, len(b.Positions))
		}
		if len(b.Indices) != 24 {
			t.Errorf("element %d: %d indices, want 24 (8 triangles)", b.Element, len(b.Indices))
		}
		for _, idx := range b.Indices {
			if int(idx) >= len(b.Positions) {
				t.Fatalf("element %d: index %d out of range", b.Element, idx)
			}
		}
	}

	// Batches arrive in element order: faces first, then vertices.
	for i, b := range batches {
		if b.Element != i {
			t.Errorf("batch %d is element %d, want %d", i, b.Element, i)
		}
	}

	if stats.Vertices != 14*9 || stats.Triangles != 14*8 {
		t.Errorf("stats vertices/triangles = %d/%d, want 126/112", stats.Vertices, stats.Triangles)
	}
}

func TestFrameDeterministic(t *testing.T) {
	mesh := buildCube(t)
	pipe := New(mesh, parallel.New(8))

	params := DefaultParams()
	params.Culling = false
	params.SurfaceType = surface.Pebble

	a, _ := pipe.Frame(testView(), params)
	b, _ := pipe.Frame(testView(), params)

	if len(a) != len(b) {
		t.Fatalf("batch counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Element != b[i].Element {
			t.Fatalf("batch %d element differs: %d vs %d", i, a[i].Element, b[i].Element)
		}
		for j := range a[i].Positions {
			if a[i].Positions[j] != b[i].Positions[j] || a[i].Normals[j] != b[i].Normals[j] {
				t.Fatalf("element %d vertex %d differs between identical frames", a[i].Element, j)
			}
		}
		for j := range a[i].Indices {
			if a[i].Indices[j] != b[i].Indices[j] {
				t.Fatalf("element %d index %d differs between identical frames", a[i].Element, j)
			}
		}
	}
}

func TestFrameCullsBehindCamera(t *testing.T) {
	mesh := buildCube(t)
	pipe := New(mesh, parallel.New(2))

	params := DefaultParams()
	params.BackfaceThreshold = -1.1 // isolate the frustum test

	view := testView()
	view.ViewProj = view.ViewProj.Mul(translateBehind())

	batches, stats := pipe.Frame(view, params)
	if len(batches) != 0 || stats.Culled != stats.Elements {
		t.Errorf("cube behind the camera: %d batches, %d/%d culled",
			len(batches), stats.Culled, stats.Elements)
	}
}

func TestFrameTilesLargeResolution(t *testing.T) {
	mesh := buildCube(t)
	pipe := New(mesh, parallel.New(4))

	params := DefaultParams()
	params.Culling = false
	params.LOD = false
	params.ResolutionM = 32
	params.ResolutionN = 32

	_, stats := pipe.Frame(testView(), params)

	// 33x33 vertices never fit the default 64-vertex budget, so every
	// element splits into multiple tiles.
	if stats.Tiles <= stats.Elements {
		t.Errorf("tiles = %d for %d elements, expected a split", stats.Tiles, stats.Elements)
	}
	if stats.Triangles != 14*2*32*32 {
		t.Errorf("triangles = %d, want %d", stats.Triangles, 14*2*32*32)
	}
}
