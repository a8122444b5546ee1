// Package main is the headless resurfacing tool: it builds the half-edge
// mesh, runs one amplification frame, and writes the result to disk.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/resurfacer/internal/config"
	"github.com/Faultbox/resurfacer/internal/engine/amplify"
	"github.com/Faultbox/resurfacer/internal/engine/camera"
	"github.com/Faultbox/resurfacer/internal/engine/preview"
	"github.com/Faultbox/resurfacer/internal/logger"
	"github.com/Faultbox/resurfacer/internal/parallel"
	"github.com/Faultbox/resurfacer/pkg/halfedge"
	gmath "github.com/Faultbox/resurfacer/pkg/math"
	"github.com/Faultbox/resurfacer/pkg/ngon"
)

var (
	flagOut     = flag.String("out", "amplified.obj", "Output OBJ path")
	flagPreview = flag.String("preview", "", "Optional webp snapshot path")
	flagWorkers = flag.Int("workers", 0, "Worker count (default: GOMAXPROCS)")
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

	logger.Info("=== Resurfacer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("resurfacing failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	mesh, err := loadMesh(cfg.Mesh.Path)
	if err != nil {
		return err
	}

	start := time.Now()
	he, err := halfedge.Build(mesh)
	if err != nil {
		return fmt.Errorf("build half-edge mesh: %w", err)
	}
	logger.Info("half-edge mesh built",
		zap.Int("vertices", he.NumVertices()),
		zap.Int("faces", he.NumFaces()),
		zap.Int("halfEdges", he.NumHalfEdges()),
		zap.Int("boundaryEdges", he.BoundaryEdges),
		zap.Duration("elapsed", time.Since(start)),
	)

	cam := camera.New()
	lo, hi := meshBounds(he)
	cam.FitToBounds(lo, hi)

	params := cfg.Params()
	view := amplify.View{
		ViewProj: cam.ViewProj(1.0),
		Eye:      cam.Position(),
	}

	pipeline := amplify.New(he, parallel.New(*flagWorkers))
	start = time.Now()
	batches, stats := pipeline.Frame(view, params)
	logger.Info("frame amplified",
		zap.Int("elements", stats.Elements),
		zap.Int("culled", stats.Culled),
		zap.Int("tiles", stats.Tiles),
		zap.Int("vertices", stats.Vertices),
		zap.Int("triangles", stats.Triangles),
		zap.Duration("elapsed", time.Since(start)),
	)

	if err := amplify.ExportOBJ(*flagOut, batches); err != nil {
		return err
	}
	logger.Info("wrote obj", zap.String("path", *flagOut))

	if *flagPreview != "" {
		opts := preview.DefaultOptions()
		opts.Width = cfg.Window.Width
		opts.Height = cfg.Window.Height
		img := preview.Render(batches, view.ViewProj, opts)
		if err := preview.WriteWebP(*flagPreview, img); err != nil {
			return err
		}
		logger.Info("wrote preview", zap.String("path", *flagPreview))
	}

	return nil
}

func loadMesh(path string) (*ngon.Mesh, error) {
	if path == "" {
		logger.Info("no mesh path given, using built-in cube")
		return ngon.Cube(1), nil
	}
	mesh, err := ngon.LoadOBJ(path)
	if err != nil {
		return nil, fmt.Errorf("load mesh: %w", err)
	}
	logger.Info("mesh loaded",
		zap.String("path", path),
		zap.Int("vertices", mesh.NumVertices()),
		zap.Int("faces", mesh.NumFaces()),
	)
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
