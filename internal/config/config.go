// Package config handles configuration loading and management.
package config

import (
	"github.com/Faultbox/resurfacer/internal/engine/amplify"
	"github.com/Faultbox/resurfacer/internal/engine/surface"
)

// Config holds all settings.
type Config struct {
	Window      WindowConfig      `yaml:"window"`
	Mesh        MeshConfig        `yaml:"mesh"`
	Resurfacing ResurfacingConfig `yaml:"resurfacing"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// WindowConfig holds viewer display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// MeshConfig holds the input mesh source.
type MeshConfig struct {
	// Path to an OBJ file; empty selects the built-in cube.
	Path string `yaml:"path"`
}

// ResurfacingConfig holds the amplification parameters: which surface is
// bound to mesh elements and how it is scaled, tessellated, and culled.
type ResurfacingConfig struct {
	Surface     string         `yaml:"surface"` // torus, sphere, cone, cylinder, pebble
	Scale       float32        `yaml:"scale"`
	ResolutionM int            `yaml:"resolution_m"`
	ResolutionN int            `yaml:"resolution_n"`
	Shape       surface.Params `yaml:"shape"`

	LOD       bool    `yaml:"lod"`
	LODFactor float32 `yaml:"lod_factor"`

	Culling           bool    `yaml:"culling"`
	CullMargin        float32 `yaml:"cull_margin"`
	BackfaceThreshold float32 `yaml:"backface_threshold"`

	MaxTileVerts int `yaml:"max_tile_verts"`
	MaxTilePrims int `yaml:"max_tile_prims"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	p := amplify.DefaultParams()
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Resurfacing: ResurfacingConfig{
			Surface:           p.SurfaceType.String(),
			Scale:             p.UserScale,
			ResolutionM:       p.ResolutionM,
			ResolutionN:       p.ResolutionN,
			Shape:             p.Shape,
			LOD:               p.LOD,
			LODFactor:         p.LODFactor,
			Culling:           p.Culling,
			CullMargin:        p.CullMargin,
			BackfaceThreshold: p.BackfaceThreshold,
			MaxTileVerts:      p.MaxTileVerts,
			MaxTilePrims:      p.MaxTilePrims,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Params converts the resurfacing section into the immutable per-frame
// snapshot the pipeline consumes.
func (c *Config) Params() amplify.Params {
	r := &c.Resurfacing
	return amplify.Params{
		SurfaceType:       surface.ParseType(r.Surface),
		Shape:             r.Shape,
		UserScale:         r.Scale,
		ResolutionM:       r.ResolutionM,
		ResolutionN:       r.ResolutionN,
		LOD:               r.LOD,
		LODFactor:         r.LODFactor,
		Culling:           r.Culling,
		CullMargin:        r.CullMargin,
		BackfaceThreshold: r.BackfaceThreshold,
		MaxTileVerts:      r.MaxTileVerts,
		MaxTilePrims:      r.MaxTilePrims,
	}
}
