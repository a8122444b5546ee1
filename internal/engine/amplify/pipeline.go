package amplify

import (
	"github.com/Faultbox/resurfacer/internal/engine/surface"
	"github.com/Faultbox/resurfacer/internal/parallel"
	"github.com/Faultbox/resurfacer/pkg/halfedge"
	"github.com/Faultbox/resurfacer/pkg/math"
)

// Batch is the write-once output of one surviving element: the tessellated
// patch vertices and triangle indices, indices local to the batch.
type Batch struct {
	Element   int
	Positions []math.Vec3
	Normals   []math.Vec3
	Indices   []uint32
}

// FrameStats summarizes one frame's amplification for logging and tests.
type FrameStats struct {
	Elements  int
	Culled    int
	Tiles     int
	Vertices  int
	Triangles int
}

// Pipeline amplifies a half-edge mesh: one unit of work per element for
// mapping and visibility, then one unit per tile for surviving elements.
// The mesh is read-only for the pipeline's lifetime.
type Pipeline struct {
	mesh *halfedge.Mesh
	pool *parallel.Pool
}

// New creates a pipeline over an immutable half-edge mesh.
func New(mesh *halfedge.Mesh, pool *parallel.Pool) *Pipeline {
	return &Pipeline{mesh: mesh, pool: pool}
}

// plan is the per-element scratch filled in the element phase and read by
// the tile phase. The Dispatch barrier between the phases orders the
// writes before any tile reads them.
type plan struct {
	visible bool
	elem    Element
	eval    surface.Evaluator
	frame   Frame
	scale   float32
	m, n    int
	tiles   []Tile
}

// tileTask addresses one tile's pre-sliced output ranges inside its
// element's batch.
type tileTask struct {
	p          *plan
	tile       Tile
	batch      *Batch
	vertOffset int
	idxOffset  int
}

// Frame runs one frame: element mapping and visibility in a first parallel
// dispatch, tile tessellation in a second. A culled element contributes no
// batch; nothing is retried. Identical inputs produce identical batches.
func (p *Pipeline) Frame(view View, params Params) ([]Batch, FrameStats) {
	numElements := p.mesh.NumElements()
	plans := make([]plan, numElements)

	var shared surface.Evaluator
	if params.SurfaceType != surface.Pebble {
		// Analytic evaluators are stateless; all elements share one.
		shared = surface.New(params.SurfaceType, params.Shape)
	}

	p.pool.Dispatch(numElements, func(i int) {
		pl := &plans[i]
		pl.elem = MapElement(p.mesh, i)

		if !Visible(pl.elem, view, params) {
			return
		}
		pl.visible = true

		pl.m, pl.n = Resolution(pl.elem, view, params)
		pl.tiles = SplitGrid(pl.m, pl.n, params.MaxTileVerts, params.MaxTilePrims)
		pl.frame = AnchorFrame(pl.elem.Normal)
		pl.scale = PatchScale(pl.elem.Area, params.UserScale)

		// Pebble cages are per-element scratch, constructed here so the
		// dispatch barrier publishes them before tile work reads them.
		if params.SurfaceType == surface.Pebble {
			pl.eval = surface.NewPebble(params.Shape, uint32(i))
		} else {
			pl.eval = shared
		}
	})

	// Lay out batches and tile tasks; each tile owns a disjoint slice of
	// its element's batch, so the tile phase writes without coordination.
	batches := make([]Batch, 0, numElements)
	var tasks []tileTask
	stats := FrameStats{Elements: numElements}

	for i := range plans {
		pl := &plans[i]
		if !pl.visible {
			stats.Culled++
			continue
		}

		verts, prims := 0, 0
		for _, tile := range pl.tiles {
			verts += tile.VertexCount()
			prims += tile.TriangleCount()
		}

		batches = append(batches, Batch{
			Element:   i,
			Positions: make([]math.Vec3, verts),
			Normals:   make([]math.Vec3, verts),
			Indices:   make([]uint32, 3*prims),
		})
		batch := &batches[len(batches)-1]

		vertOffset, idxOffset := 0, 0
		for _, tile := range pl.tiles {
			tasks = append(tasks, tileTask{
				p:          pl,
				tile:       tile,
				batch:      batch,
				vertOffset: vertOffset,
				idxOffset:  idxOffset,
			})
			vertOffset += tile.VertexCount()
			idxOffset += 3 * tile.TriangleCount()
		}

		stats.Tiles += len(pl.tiles)
		stats.Vertices += verts
		stats.Triangles += prims
	}

	p.pool.Dispatch(len(tasks), func(i int) {
		t := &tasks[i]
		TessellateTile(
			t.p.eval,
			t.p.frame,
			t.p.elem.Anchor,
			t.p.scale,
			t.p.m, t.p.n,
			t.tile,
			uint32(t.vertOffset),
			t.batch.Positions[t.vertOffset:t.vertOffset+t.tile.VertexCount()],
			t.batch.Normals[t.vertOffset:t.vertOffset+t.tile.VertexCount()],
			t.batch.Indices[t.idxOffset:t.idxOffset+3*t.tile.TriangleCount()],
		)
	})

	return batches, stats
}
