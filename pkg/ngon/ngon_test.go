package ngon

import (
	"strings"
	"testing"

	"github.com/Faultbox/resurfacer/pkg/math"
)

func TestAddFaceDerivedAttributes(t *testing.T) {
	mesh := &Mesh{
		Positions: []math.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 2, Y: 0, Z: 0},
			{X: 2, Y: 2, Z: 0},
			{X: 0, Y: 2, Z: 0},
		},
	}
	if err := mesh.AddFace([]uint32{0, 1, 2, 3}); err != nil {
		t.Fatalf("AddFace: %v", err)
	}

	f := &mesh.Faces[0]
	if f.Normal != (math.Vec3{Z: 1}) {
		t.Errorf("Normal = %v, want +Z", f.Normal)
	}
	if f.Centroid != (math.Vec3{X: 1, Y: 1}) {
		t.Errorf("Centroid = %v, want (1,1,0)", f.Centroid)
	}
	if f.Area < 3.999 || f.Area > 4.001 {
		t.Errorf("Area = %v, want 4", f.Area)
	}
	if f.Offset != 0 || f.Count() != 4 {
		t.Errorf("Offset/Count = %d/%d, want 0/4", f.Offset, f.Count())
	}
}

func TestAddFaceRejectsDegenerate(t *testing.T) {
	mesh := &Mesh{Positions: []math.Vec3{{}, {X: 1}, {Y: 1}}}

	if err := mesh.AddFace([]uint32{0, 1}); err == nil {
		t.Error("AddFace accepted a 2-vertex face")
	}
	if err := mesh.AddFace([]uint32{0, 1, 9}); err == nil {
		t.Error("AddFace accepted an out-of-range index")
	}
}

func TestParseOBJ(t *testing.T) {
	src := `# quad and triangle sharing an edge
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 2 0 0
vn 0 0 1
vt 0 0
f 1/1/1 2/1/1 3/1/1 4/1/1
f 2//1 5//1 3//1
`
	mesh, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}

	if mesh.NumVertices() != 5 || mesh.NumFaces() != 2 {
		t.Fatalf("got %d vertices, %d faces; want 5, 2", mesh.NumVertices(), mesh.NumFaces())
	}
	if mesh.Faces[0].Count() != 4 || mesh.Faces[1].Count() != 3 {
		t.Errorf("face counts = %d, %d; want 4, 3", mesh.Faces[0].Count(), mesh.Faces[1].Count())
	}
	if got := len(mesh.FaceVertexIndices); got != 7 {
		t.Errorf("flattened index count = %d, want 7", got)
	}
	if mesh.Faces[1].Offset != 4 {
		t.Errorf("second face offset = %d, want 4", mesh.Faces[1].Offset)
	}

	// Attribute arrays are index-aligned after FillDefaults.
	if len(mesh.Normals) != 5 || len(mesh.Colors) != 5 || len(mesh.TexCoords) != 5 {
		t.Errorf("attribute arrays not aligned: %d normals, %d colors, %d texcoords",
			len(mesh.Normals), len(mesh.Colors), len(mesh.TexCoords))
	}
}

func TestParseOBJBadFace(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"two vertex face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"index out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n"},
		{"garbage index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 x\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseOBJ(strings.NewReader(tc.src)); err == nil {
				t.Error("ParseOBJ accepted malformed input")
			}
		})
	}
}

func TestCube(t *testing.T) {
	mesh := Cube(1)
	if mesh.NumVertices() != 8 || mesh.NumFaces() != 6 {
		t.Fatalf("cube: %d vertices, %d faces; want 8, 6", mesh.NumVertices(), mesh.NumFaces())
	}

	// Every face of a unit cube has area 1 and a centroid half a unit from
	// the origin along its normal.
	for i := range mesh.Faces {
		f := &mesh.Faces[i]
		if f.Area < 0.999 || f.Area > 1.001 {
			t.Errorf("face %d area = %v, want 1", i, f.Area)
		}
		if d := f.Centroid.Dot(f.Normal); d < 0.499 || d > 0.501 {
			t.Errorf("face %d normal does not point outward (centroid·normal = %v)", i, d)
		}
	}
}

func TestPlaneGrid(t *testing.T) {
	mesh := PlaneGrid(3, 2)
	if mesh.NumVertices() != 12 || mesh.NumFaces() != 6 {
		t.Fatalf("grid: %d vertices, %d faces; want 12, 6", mesh.NumVertices(), mesh.NumFaces())
	}
	for i := range mesh.Faces {
		if n := mesh.Faces[i].Normal; n != (math.Vec3{Y: 1}) {
			t.Errorf("face %d normal = %v, want +Y", i, n)
		}
	}
}
