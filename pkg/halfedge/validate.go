package halfedge

import "fmt"

// validate checks the three adjacency invariants the rest of the pipeline
// relies on. Any violation is a construction bug or malformed input, never
// recovered.
func (m *Mesh) validate() error {
	// Every face's next/prev loop closes after exactly its vertex count.
	for faceID := range m.FaceEdges {
		edge := m.FaceEdges[faceID]
		start := edge
		count := int32(0)

		for {
			next := m.HENext[edge]
			if m.HEPrev[next] != edge {
				return fmt.Errorf("topology: prev(next(%d)) != %d at face %d", edge, edge, faceID)
			}
			edge = next
			count++
			if count > int32(m.NumHalfEdges()) {
				return fmt.Errorf("topology: face %d loop does not close", faceID)
			}
			if edge == start {
				break
			}
		}

		if count != m.FaceVertCounts[faceID] {
			return fmt.Errorf("topology: face %d loop has %d edges, declared %d",
				faceID, count, m.FaceVertCounts[faceID])
		}
	}

	// Twin symmetry, with endpoints matching in reverse order.
	for he := int32(0); he < int32(m.NumHalfEdges()); he++ {
		twin := m.HETwin[he]
		if twin == NoTwin {
			continue
		}
		if m.HETwin[twin] != he {
			return fmt.Errorf("topology: twin(twin(%d)) = %d, want %d", he, m.HETwin[twin], he)
		}
		if m.HEVertex[he] != m.Destination(twin) || m.Destination(he) != m.HEVertex[twin] {
			return fmt.Errorf("topology: half-edge %d and twin %d endpoints do not reverse", he, twin)
		}
	}

	// Every vertex's representative edge exists and originates there.
	for v := range m.VertexEdges {
		edge := m.VertexEdges[v]
		if edge == -1 {
			return fmt.Errorf("topology: vertex %d has no outgoing half-edge", v)
		}
		if m.HEVertex[edge] != int32(v) {
			return fmt.Errorf("topology: vertex %d representative edge %d originates at %d",
				v, edge, m.HEVertex[edge])
		}
	}

	return nil
}
