package amplify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Faultbox/resurfacer/internal/parallel"
	"github.com/Faultbox/resurfacer/pkg/halfedge"
	"github.com/Faultbox/resurfacer/pkg/ngon"
)

func TestWriteOBJRoundTrip(t *testing.T) {
	mesh, err := halfedge.Build(ngon.Cube(1))
	if err != nil {
		t.Fatalf("build cube: %v", err)
	}

	params := DefaultParams()
	params.Culling = false
	params.LOD = false
	params.ResolutionM, params.ResolutionN = 2, 2

	p := New(mesh, parallel.New(1))
	batches, stats := p.Frame(testView(), params)

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, batches); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}

	parsed, err := ngon.ParseOBJ(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("re-parse export: %v", err)
	}

	if got, want := parsed.NumVertices(), stats.Vertices; got != want {
		t.Errorf("exported %d vertices, stats say %d", got, want)
	}
	if got, want := parsed.NumFaces(), stats.Triangles; got != want {
		t.Errorf("exported %d faces, stats say %d", got, want)
	}
}

func TestWriteOBJEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, nil); err != nil {
		t.Fatalf("WriteOBJ on empty input: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "#") {
		t.Error("expected header comment in empty export")
	}
}
