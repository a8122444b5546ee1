// Package halfedge builds a structure-of-arrays half-edge representation
// from an n-gon mesh and validates its adjacency.
package halfedge

import "github.com/Faultbox/resurfacer/pkg/math"

// NoTwin marks a boundary half-edge with no opposite partner.
const NoTwin int32 = -1

// Mesh is an immutable half-edge mesh laid out as parallel arrays, the
// layout uploaded verbatim to GPU storage buffers. All arrays are sized by
// exactly one of the three counts: vertices (V), faces (F), half-edges (H).
type Mesh struct {
	// Per vertex (size V).
	VertexPositions []math.Vec4 // xyz, w=1
	VertexColors    []math.Vec4
	VertexNormals   []math.Vec4 // xyz, w=0
	VertexTexCoords []math.Vec2
	VertexEdges     []int32 // representative outgoing half-edge

	// Per face (size F).
	FaceEdges      []int32 // representative half-edge
	FaceVertCounts []int32
	FaceOffsets    []int32 // offset into VertexFaceIndices
	FaceNormals    []math.Vec4
	FaceCenters    []math.Vec4
	FaceAreas      []float32

	// Per half-edge (size H).
	HEVertex []int32 // origin vertex
	HEFace   []int32 // owning face
	HENext   []int32 // next half-edge around the face, CCW
	HEPrev   []int32
	HETwin   []int32 // opposite half-edge, NoTwin on a boundary

	// Flattened per-face vertex index loops (size H), for the n-gon
	// tessellation fallback.
	VertexFaceIndices []int32

	// BoundaryEdges is the number of half-edges without a twin.
	BoundaryEdges int
}

// NumVertices returns V.
func (m *Mesh) NumVertices() int { return len(m.VertexPositions) }

// NumFaces returns F.
func (m *Mesh) NumFaces() int { return len(m.FaceEdges) }

// NumHalfEdges returns H.
func (m *Mesh) NumHalfEdges() int { return len(m.HEVertex) }

// NumElements returns the amplification element count: all faces followed
// by all vertices.
func (m *Mesh) NumElements() int { return m.NumFaces() + m.NumVertices() }

// Destination returns the vertex a half-edge points to, which is the origin
// of its next half-edge.
func (m *Mesh) Destination(he int32) int32 {
	return m.HEVertex[m.HENext[he]]
}
