package halfedge

import (
	"fmt"

	"github.com/Faultbox/resurfacer/pkg/math"
	"github.com/Faultbox/resurfacer/pkg/ngon"
)

type edgeKey struct {
	v0, v1 int32
}

// Build converts an n-gon mesh into a half-edge mesh. It is deterministic
// and fails fast: a malformed face or a non-manifold directed edge aborts
// with no partial result, and the assembled topology is validated before
// return.
func Build(src *ngon.Mesh) (*Mesh, error) {
	numVertices := src.NumVertices()
	numFaces := src.NumFaces()

	numHalfEdges := 0
	for i := range src.Faces {
		if src.Faces[i].Count() < 3 {
			return nil, fmt.Errorf("face %d has %d vertices, need at least 3", i, src.Faces[i].Count())
		}
		numHalfEdges += src.Faces[i].Count()
	}

	// All sizes are known up front; allocate exact final arrays.
	m := &Mesh{
		VertexPositions: make([]math.Vec4, numVertices),
		VertexColors:    make([]math.Vec4, numVertices),
		VertexNormals:   make([]math.Vec4, numVertices),
		VertexTexCoords: make([]math.Vec2, numVertices),
		VertexEdges:     make([]int32, numVertices),

		FaceEdges:      make([]int32, numFaces),
		FaceVertCounts: make([]int32, numFaces),
		FaceOffsets:    make([]int32, numFaces),
		FaceNormals:    make([]math.Vec4, numFaces),
		FaceCenters:    make([]math.Vec4, numFaces),
		FaceAreas:      make([]float32, numFaces),

		HEVertex: make([]int32, numHalfEdges),
		HEFace:   make([]int32, numHalfEdges),
		HENext:   make([]int32, numHalfEdges),
		HEPrev:   make([]int32, numHalfEdges),
		HETwin:   make([]int32, numHalfEdges),

		VertexFaceIndices: make([]int32, numHalfEdges),
	}

	for i := range m.VertexEdges {
		m.VertexEdges[i] = -1
	}

	for i := 0; i < numVertices; i++ {
		m.VertexPositions[i] = math.Point4(src.Positions[i])
		m.VertexColors[i] = math.Point4(src.Colors[i])
		m.VertexNormals[i] = math.Dir4(src.Normals[i])
		m.VertexTexCoords[i] = src.TexCoords[i]
	}

	for i := range src.Faces {
		face := &src.Faces[i]
		m.FaceVertCounts[i] = int32(face.Count())
		m.FaceOffsets[i] = int32(face.Offset)
		m.FaceNormals[i] = math.Dir4(face.Normal)
		m.FaceCenters[i] = math.Point4(face.Centroid)
		m.FaceAreas[i] = face.Area
	}
	for i, idx := range src.FaceVertexIndices {
		m.VertexFaceIndices[i] = int32(idx)
	}

	// Emit half-edges face by face, contiguously, registering each directed
	// edge for the twin pass.
	edgeMap := make(map[edgeKey]int32, numHalfEdges)
	current := int32(0)

	for faceID := range src.Faces {
		face := &src.Faces[faceID]
		n := int32(face.Count())
		first := current

		for i := int32(0); i < n; i++ {
			he := current
			v0 := int32(face.VertexIndices[i])
			v1 := int32(face.VertexIndices[(i+1)%n])

			m.HEVertex[he] = v0
			m.HEFace[he] = int32(faceID)

			if i == n-1 {
				m.HENext[he] = first
			} else {
				m.HENext[he] = he + 1
			}
			if i == 0 {
				m.HEPrev[he] = first + n - 1
			} else {
				m.HEPrev[he] = he - 1
			}

			if m.VertexEdges[v0] == -1 {
				m.VertexEdges[v0] = he
			}

			key := edgeKey{v0, v1}
			if prev, dup := edgeMap[key]; dup {
				return nil, fmt.Errorf("non-manifold input: directed edge %d->%d emitted by half-edges %d and %d",
					v0, v1, prev, he)
			}
			edgeMap[key] = he

			current++
		}

		m.FaceEdges[faceID] = first
	}

	// Second pass: resolve twins through the directed-edge map.
	for he := int32(0); he < int32(numHalfEdges); he++ {
		v0 := m.HEVertex[he]
		v1 := m.HEVertex[m.HENext[he]]

		if twin, ok := edgeMap[edgeKey{v1, v0}]; ok {
			m.HETwin[he] = twin
		} else {
			m.HETwin[he] = NoTwin
			m.BoundaryEdges++
		}
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}
