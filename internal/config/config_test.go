package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/resurfacer/internal/engine/surface"
)

func TestDefaultMatchesPipelineDefaults(t *testing.T) {
	cfg := Default()
	p := cfg.Params()

	if p.SurfaceType != surface.Torus {
		t.Errorf("default surface = %v, want torus", p.SurfaceType)
	}
	if p.UserScale != 1.0 {
		t.Errorf("default scale = %v, want 1", p.UserScale)
	}
	if p.ResolutionM != 8 || p.ResolutionN != 8 {
		t.Errorf("default resolution = (%d,%d), want (8,8)", p.ResolutionM, p.ResolutionN)
	}
	if !p.Culling || !p.LOD {
		t.Error("culling and LOD default on")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resurfacer.yaml")

	cfg := Default()
	cfg.Resurfacing.Surface = "pebble"
	cfg.Resurfacing.Scale = 2.5
	cfg.Resurfacing.ResolutionM = 16
	cfg.Mesh.Path = "assets/icosphere.obj"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}

	if loaded.Resurfacing.Surface != "pebble" {
		t.Errorf("surface = %q, want pebble", loaded.Resurfacing.Surface)
	}
	if loaded.Resurfacing.Scale != 2.5 {
		t.Errorf("scale = %v, want 2.5", loaded.Resurfacing.Scale)
	}
	if loaded.Resurfacing.ResolutionM != 16 {
		t.Errorf("resolution_m = %d, want 16", loaded.Resurfacing.ResolutionM)
	}
	if loaded.Mesh.Path != "assets/icosphere.obj" {
		t.Errorf("mesh path = %q", loaded.Mesh.Path)
	}
}

func TestFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resurfacer.yaml")
	src := `resurfacing:
  surface: cylinder
  resolution_n: 4
logging:
  level: warn
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}

	if cfg.Resurfacing.Surface != "cylinder" {
		t.Errorf("surface = %q, want cylinder", cfg.Resurfacing.Surface)
	}
	if cfg.Resurfacing.ResolutionN != 4 {
		t.Errorf("resolution_n = %d, want 4", cfg.Resurfacing.ResolutionN)
	}
	// Untouched keys keep their defaults.
	if cfg.Resurfacing.ResolutionM != 8 {
		t.Errorf("resolution_m = %d, want default 8", cfg.Resurfacing.ResolutionM)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("level = %q, want warn", cfg.Logging.Level)
	}
}

func TestParamsParsesUnknownSurfaceAsSphere(t *testing.T) {
	cfg := Default()
	cfg.Resurfacing.Surface = "bspline" // stale selector from an old config
	if got := cfg.Params().SurfaceType; got != surface.Sphere {
		t.Errorf("unknown surface parsed to %v, want sphere fallback", got)
	}
}
