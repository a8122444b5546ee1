package upload

import (
	"testing"

	"github.com/Faultbox/resurfacer/pkg/halfedge"
	"github.com/Faultbox/resurfacer/pkg/ngon"
)

func TestPackCube(t *testing.T) {
	mesh, err := halfedge.Build(ngon.Cube(1))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	b := Pack(mesh)

	if b.Info.NumVertices != 8 || b.Info.NumFaces != 6 || b.Info.NumHalfEdges != 24 {
		t.Fatalf("Info = %+v, want 8/6/24", b.Info)
	}

	// Vec4 arrays carry 4 floats per element at their wire sizes.
	wantVec4 := []struct {
		slot int
		n    int
	}{
		{Vec4VertexPositions, 8},
		{Vec4VertexColors, 8},
		{Vec4VertexNormals, 8},
		{Vec4FaceNormals, 6},
		{Vec4FaceCenters, 6},
	}
	for _, w := range wantVec4 {
		if got := len(b.Vec4[w.slot]); got != w.n*4 {
			t.Errorf("vec4 slot %d length = %d, want %d", w.slot, got, w.n*4)
		}
	}

	if got := len(b.Vec2[Vec2VertexTexCoords]); got != 8*2 {
		t.Errorf("texcoord length = %d, want 16", got)
	}
	if got := len(b.Float[FloatFaceAreas]); got != 6 {
		t.Errorf("face area length = %d, want 6", got)
	}

	wantInt := map[int]int{
		IntVertexEdges:       8,
		IntFaceEdges:         6,
		IntFaceVertCounts:    6,
		IntFaceOffsets:       6,
		IntHEVertex:          24,
		IntHEFace:            24,
		IntHENext:            24,
		IntHEPrev:            24,
		IntHETwin:            24,
		IntVertexFaceIndices: 24,
	}
	for slot, n := range wantInt {
		if got := len(b.Int[slot]); got != n {
			t.Errorf("int slot %d length = %d, want %d", slot, got, n)
		}
	}
}

func TestPackPreservesLayoutAndValues(t *testing.T) {
	mesh, err := halfedge.Build(ngon.PlaneGrid(2, 2))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	b := Pack(mesh)

	// Positions flatten in x,y,z,w order.
	for i, p := range mesh.VertexPositions {
		for c := 0; c < 4; c++ {
			if b.Vec4[Vec4VertexPositions][i*4+c] != p[c] {
				t.Fatalf("position %d component %d = %v, want %v",
					i, c, b.Vec4[Vec4VertexPositions][i*4+c], p[c])
			}
		}
	}

	// Topology arrays round-trip untouched, including boundary markers.
	twinless := 0
	for i, twin := range b.Int[IntHETwin] {
		if twin != mesh.HETwin[i] {
			t.Fatalf("twin %d = %d, want %d", i, twin, mesh.HETwin[i])
		}
		if twin == halfedge.NoTwin {
			twinless++
		}
	}
	if twinless != mesh.BoundaryEdges {
		t.Errorf("packed twinless = %d, want %d", twinless, mesh.BoundaryEdges)
	}

	for i, area := range mesh.FaceAreas {
		if b.Float[FloatFaceAreas][i] != area {
			t.Errorf("area %d = %v, want %v", i, b.Float[FloatFaceAreas][i], area)
		}
	}
}
