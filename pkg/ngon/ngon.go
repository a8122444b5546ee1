// Package ngon holds polygon meshes with arbitrary face vertex counts and
// loads them from Wavefront OBJ files.
package ngon

import (
	"fmt"

	"github.com/Faultbox/resurfacer/pkg/math"
)

// Face is one polygon of a Mesh: an ordered vertex index loop plus attributes
// derived from the vertex positions at load time.
type Face struct {
	VertexIndices []uint32

	// Offset of this face's first entry in Mesh.FaceVertexIndices.
	Offset uint32

	Normal   math.Vec3 // cross product of the first three vertices
	Centroid math.Vec3 // arithmetic mean of the vertex positions
	Area     float32   // fan-triangulated area
}

// Count returns the number of vertices in the face loop.
func (f *Face) Count() int {
	return len(f.VertexIndices)
}

// Mesh is an n-gon mesh: parallel per-vertex attribute arrays shared by
// index across faces.
type Mesh struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	Colors    []math.Vec3
	TexCoords []math.Vec2

	Faces []Face

	// FaceVertexIndices is the flattened concatenation of every face's
	// vertex index loop, addressed through Face.Offset.
	FaceVertexIndices []uint32
}

// NumVertices returns the vertex count.
func (m *Mesh) NumVertices() int {
	return len(m.Positions)
}

// NumFaces returns the face count.
func (m *Mesh) NumFaces() int {
	return len(m.Faces)
}

// AddFace appends a face loop, deriving its normal, centroid, and area.
// Faces with fewer than three vertices or out-of-range indices are rejected.
func (m *Mesh) AddFace(indices []uint32) error {
	if len(indices) < 3 {
		return fmt.Errorf("face %d has %d vertices, need at least 3", len(m.Faces), len(indices))
	}
	for _, idx := range indices {
		if int(idx) >= len(m.Positions) {
			return fmt.Errorf("face %d references vertex %d, mesh has %d", len(m.Faces), idx, len(m.Positions))
		}
	}

	face := Face{
		VertexIndices: indices,
		Offset:        uint32(len(m.FaceVertexIndices)),
		Normal:        faceNormal(m.Positions, indices),
		Centroid:      faceCentroid(m.Positions, indices),
		Area:          faceArea(m.Positions, indices),
	}

	m.FaceVertexIndices = append(m.FaceVertexIndices, indices...)
	m.Faces = append(m.Faces, face)
	return nil
}

// FillDefaults resizes missing per-vertex attributes so all arrays are
// index-aligned with Positions. Missing normals default to +Z, colors to
// white, texcoords to the origin.
func (m *Mesh) FillDefaults() {
	n := len(m.Positions)
	for len(m.Normals) < n {
		m.Normals = append(m.Normals, math.Vec3{Z: 1})
	}
	for len(m.Colors) < n {
		m.Colors = append(m.Colors, math.Vec3{X: 1, Y: 1, Z: 1})
	}
	for len(m.TexCoords) < n {
		m.TexCoords = append(m.TexCoords, math.Vec2{})
	}
}

func faceNormal(positions []math.Vec3, indices []uint32) math.Vec3 {
	v0 := positions[indices[0]]
	v1 := positions[indices[1]]
	v2 := positions[indices[2]]

	n := v1.Sub(v0).Cross(v2.Sub(v0))
	if n.Length() == 0 {
		return math.Vec3{Z: 1}
	}
	return n.Normalize()
}

func faceCentroid(positions []math.Vec3, indices []uint32) math.Vec3 {
	var c math.Vec3
	for _, idx := range indices {
		c = c.Add(positions[idx])
	}
	return c.Scale(1 / float32(len(indices)))
}

// faceArea fan-triangulates from the first vertex and sums triangle areas.
func faceArea(positions []math.Vec3, indices []uint32) float32 {
	var total float32
	v0 := positions[indices[0]]
	for i := 1; i < len(indices)-1; i++ {
		e1 := positions[indices[i]].Sub(v0)
		e2 := positions[indices[i+1]].Sub(v0)
		total += e1.Cross(e2).Length() * 0.5
	}
	return total
}
