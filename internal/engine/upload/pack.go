// Package upload flattens a half-edge mesh into the fixed set of parallel
// arrays shared with the GPU and uploads them into GPU-resident buffers.
// The slot layout must stay bit-compatible with the shader side.
package upload

import (
	"github.com/Faultbox/resurfacer/pkg/halfedge"
	"github.com/Faultbox/resurfacer/pkg/math"
)

// Vec4 buffer slots.
const (
	Vec4VertexPositions = iota
	Vec4VertexColors
	Vec4VertexNormals
	Vec4FaceNormals
	Vec4FaceCenters
	NumVec4Buffers
)

// Vec2 buffer slots.
const (
	Vec2VertexTexCoords = iota
	NumVec2Buffers
)

// Int buffer slots.
const (
	IntVertexEdges = iota
	IntFaceEdges
	IntFaceVertCounts
	IntFaceOffsets
	IntHEVertex
	IntHEFace
	IntHENext
	IntHEPrev
	IntHETwin
	IntVertexFaceIndices
	NumIntBuffers
)

// Float buffer slots.
const (
	FloatFaceAreas = iota
	NumFloatBuffers
)

// MeshInfo is the companion count record uploaded alongside the arrays.
type MeshInfo struct {
	NumVertices  uint32
	NumFaces     uint32
	NumHalfEdges uint32
	_            uint32 // pad to 16 bytes
}

// Buffers is the host-side image of the upload boundary: every mesh array
// flattened to its wire layout.
type Buffers struct {
	Vec4  [NumVec4Buffers][]float32
	Vec2  [NumVec2Buffers][]float32
	Int   [NumIntBuffers][]int32
	Float [NumFloatBuffers][]float32
	Info  MeshInfo
}

// Pack flattens the mesh. The output aliases no mesh storage except the
// int arrays, which are uploaded verbatim.
func Pack(m *halfedge.Mesh) *Buffers {
	b := &Buffers{
		Info: MeshInfo{
			NumVertices:  uint32(m.NumVertices()),
			NumFaces:     uint32(m.NumFaces()),
			NumHalfEdges: uint32(m.NumHalfEdges()),
		},
	}

	b.Vec4[Vec4VertexPositions] = flattenVec4(m.VertexPositions)
	b.Vec4[Vec4VertexColors] = flattenVec4(m.VertexColors)
	b.Vec4[Vec4VertexNormals] = flattenVec4(m.VertexNormals)
	b.Vec4[Vec4FaceNormals] = flattenVec4(m.FaceNormals)
	b.Vec4[Vec4FaceCenters] = flattenVec4(m.FaceCenters)

	b.Vec2[Vec2VertexTexCoords] = flattenVec2(m.VertexTexCoords)

	b.Int[IntVertexEdges] = m.VertexEdges
	b.Int[IntFaceEdges] = m.FaceEdges
	b.Int[IntFaceVertCounts] = m.FaceVertCounts
	b.Int[IntFaceOffsets] = m.FaceOffsets
	b.Int[IntHEVertex] = m.HEVertex
	b.Int[IntHEFace] = m.HEFace
	b.Int[IntHENext] = m.HENext
	b.Int[IntHEPrev] = m.HEPrev
	b.Int[IntHETwin] = m.HETwin
	b.Int[IntVertexFaceIndices] = m.VertexFaceIndices

	b.Float[FloatFaceAreas] = m.FaceAreas

	return b
}

func flattenVec4(src []math.Vec4) []float32 {
	out := make([]float32, 0, len(src)*4)
	for _, v := range src {
		out = append(out, v[0], v[1], v[2], v[3])
	}
	return out
}

func flattenVec2(src []math.Vec2) []float32 {
	out := make([]float32, 0, len(src)*2)
	for _, v := range src {
		out = append(out, v.X, v.Y)
	}
	return out
}
