package amplify

import (
	"github.com/Faultbox/resurfacer/pkg/halfedge"
	"github.com/Faultbox/resurfacer/pkg/math"
)

// ElementKind distinguishes the two anchor kinds of the element index
// space.
type ElementKind uint8

const (
	KindFace ElementKind = iota
	KindVertex
)

// Element is the transient per-dispatch view of one base-mesh element. It
// is computed on demand and never persisted.
type Element struct {
	Index  int
	Kind   ElementKind
	Anchor math.Vec3
	Normal math.Vec3

	// Area is the characteristic area of the anchoring face.
	Area float32
}

// MapElement resolves a global element index in [0, F+V) to its anchor.
// Indices below F address faces; the rest address vertices, in order. This
// face-then-vertex ordering gives a stable, gap-free index space and must
// match the dispatch sizing of Mesh.NumElements.
func MapElement(m *halfedge.Mesh, index int) Element {
	numFaces := m.NumFaces()

	if index < numFaces {
		return Element{
			Index:  index,
			Kind:   KindFace,
			Anchor: m.FaceCenters[index].Vec3(),
			Normal: m.FaceNormals[index].Vec3(),
			Area:   m.FaceAreas[index],
		}
	}

	vertex := index - numFaces
	// The anchoring face is the one owning the vertex's representative
	// outgoing half-edge.
	face := m.HEFace[m.VertexEdges[vertex]]

	return Element{
		Index:  index,
		Kind:   KindVertex,
		Anchor: m.VertexPositions[vertex].Vec3(),
		Normal: m.VertexNormals[vertex].Vec3(),
		Area:   m.FaceAreas[face],
	}
}
