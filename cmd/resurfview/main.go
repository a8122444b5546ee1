// Package main is the interactive viewer: it re-amplifies the mesh every
// frame for the current camera and draws the result with OpenGL.
package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/resurfacer/internal/config"
	"github.com/Faultbox/resurfacer/internal/engine/amplify"
	"github.com/Faultbox/resurfacer/internal/engine/camera"
	"github.com/Faultbox/resurfacer/internal/engine/preview"
	"github.com/Faultbox/resurfacer/internal/engine/renderer"
	"github.com/Faultbox/resurfacer/internal/engine/surface"
	"github.com/Faultbox/resurfacer/internal/engine/upload"
	"github.com/Faultbox/resurfacer/internal/engine/window"
	"github.com/Faultbox/resurfacer/internal/logger"
	"github.com/Faultbox/resurfacer/internal/parallel"
	"github.com/Faultbox/resurfacer/pkg/halfedge"
	gmath "github.com/Faultbox/resurfacer/pkg/math"
	"github.com/Faultbox/resurfacer/pkg/ngon"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Resurfacer Viewer ===")

	v, err := newViewer(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

type viewer struct {
	cfg    *config.Config
	params amplify.Params

	win      *window.Window
	renderer *renderer.Renderer
	camera   *camera.OrbitCamera

	pipeline *amplify.Pipeline
	gpuMesh  *upload.GPUMesh

	lastBatches []amplify.Batch
	lastView    amplify.View
}

func newViewer(cfg *config.Config) (*viewer, error) {
	mesh, err := loadMesh(cfg.Mesh.Path)
	if err != nil {
		return nil, err
	}

	he, err := halfedge.Build(mesh)
	if err != nil {
		return nil, fmt.Errorf("build half-edge mesh: %w", err)
	}
	logger.Info("half-edge mesh built",
		zap.Int("vertices", he.NumVertices()),
		zap.Int("faces", he.NumFaces()),
		zap.Int("halfEdges", he.NumHalfEdges()),
	)

	win, err := window.New(window.Config{
		Title:      "resurfview",
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, err
	}

	r, err := renderer.New(renderer.Config{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
	})
	if err != nil {
		win.Close()
		return nil, err
	}

	// The flattened topology buffers live on the GPU for the whole session;
	// only the amplified geometry is re-streamed per frame.
	gpuMesh, err := upload.Upload(upload.Pack(he))
	if err != nil {
		r.Close()
		win.Close()
		return nil, fmt.Errorf("upload mesh buffers: %w", err)
	}
	logger.Info("mesh buffers resident",
		zap.Int("vec4Buffers", upload.NumVec4Buffers),
	)

	cam := camera.New()
	cam.FitToBounds(meshBounds(he))

	return &viewer{
		cfg:      cfg,
		params:   cfg.Params(),
		win:      win,
		renderer: r,
		camera:   cam,
		pipeline: amplify.New(he, parallel.New(0)),
		gpuMesh:  gpuMesh,
	}, nil
}

func (v *viewer) Close() {
	if v.gpuMesh != nil {
		v.gpuMesh.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.win != nil {
		v.win.Close()
	}
}

// Run drives the frame loop until quit.
func (v *viewer) Run() error {
	lastTitle := time.Now()
	frames := 0

	for {
		in := v.win.Poll()
		if in.Quit {
			return nil
		}
		v.handleInput(in)

		width, height := v.win.DrawableSize()
		v.renderer.Resize(width, height)

		aspect := float32(width) / float32(height)
		view := amplify.View{
			ViewProj: v.camera.ViewProj(aspect),
			Eye:      v.camera.Position(),
		}

		batches, stats := v.pipeline.Frame(view, v.params)
		v.lastBatches, v.lastView = batches, view

		v.renderer.Begin()
		v.renderer.DrawBatches(batches, view.ViewProj, view.Eye)
		v.win.SwapBuffers()

		if in.Snapshot {
			v.snapshot()
		}

		frames++
		if now := time.Now(); now.Sub(lastTitle) >= time.Second {
			v.win.SetTitle(fmt.Sprintf("resurfview | %s | %d fps | %d tris",
				v.params.SurfaceType, frames, stats.Triangles))
			frames = 0
			lastTitle = now
		}
	}
}

func (v *viewer) handleInput(in window.Input) {
	if in.DragX != 0 || in.DragY != 0 {
		v.camera.HandleDrag(in.DragX, in.DragY)
	}
	if in.Zoom != 0 {
		v.camera.HandleZoom(in.Zoom)
	}
	if in.CycleSurface {
		v.params.SurfaceType = (v.params.SurfaceType + 1) % (surface.Pebble + 1)
		logger.Info("surface switched", zap.String("surface", v.params.SurfaceType.String()))
	}
	if in.ToggleWire {
		v.renderer.ToggleWireframe()
	}
}

// snapshot writes the last amplified frame through the software rasterizer,
// so the saved image matches what the pipeline produced, not the GL state.
func (v *viewer) snapshot() {
	path := fmt.Sprintf("snapshot-%s.webp", time.Now().Format("150405"))
	img := preview.Render(v.lastBatches, v.lastView.ViewProj, preview.DefaultOptions())
	if err := preview.WriteWebP(path, img); err != nil {
		logger.Error("snapshot failed", zap.Error(err))
		return
	}
	logger.Info("snapshot written", zap.String("path", path))
}

func loadMesh(path string) (*ngon.Mesh, error) {
	if path == "" {
		return ngon.Cube(1), nil
	}
	mesh, err := ngon.LoadOBJ(path)
	if err != nil {
		return nil, fmt.Errorf("load mesh: %w", err)
	}
	return mesh, nil
}

func meshBounds(m *halfedge.Mesh) (gmath.Vec3, gmath.Vec3) {
	if len(m.VertexPositions) == 0 {
		return gmath.Vec3{}, gmath.Vec3{}
	}
	lo := m.VertexPositions[0].Vec3()
	hi := lo
	for _, p := range m.VertexPositions[1:] {
		v := p.Vec3()
		if v.X < lo.X {
			lo.X = v.X
		}
		if v.Y < lo.Y {
			lo.Y = v.Y
		}
		if v.Z < lo.Z {
			lo.Z = v.Z
		}
		if v.X > hi.X {
			hi.X = v.X
		}
		if v.Y > hi.Y {
			hi.Y = v.Y
		}
		if v.Z > hi.Z {
			hi.Z = v.Z
		}
	}
	return lo, hi
}
