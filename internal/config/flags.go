package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagMesh       = flag.String("mesh", "", "Path to OBJ mesh (default: built-in cube)")
	flagSurface    = flag.String("surface", "", "Surface type: torus, sphere, cone, cylinder, pebble")
	flagScale      = flag.Float64("scale", 0, "Global patch scale multiplier")
	flagResolution = flag.Int("resolution", 0, "Grid resolution for both parametric axes")
	flagNoCull     = flag.Bool("nocull", false, "Disable frustum and back-face culling")
	flagNoLOD      = flag.Bool("nolod", false, "Disable level-of-detail resolution selection")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMesh != "" {
		cfg.Mesh.Path = *flagMesh
	}
	if *flagSurface != "" {
		cfg.Resurfacing.Surface = *flagSurface
	}
	if *flagScale > 0 {
		cfg.Resurfacing.Scale = float32(*flagScale)
	}
	if *flagResolution > 0 {
		cfg.Resurfacing.ResolutionM = *flagResolution
		cfg.Resurfacing.ResolutionN = *flagResolution
	}
	if *flagNoCull {
		cfg.Resurfacing.Culling = false
	}
	if *flagNoLOD {
		cfg.Resurfacing.LOD = false
	}
}
