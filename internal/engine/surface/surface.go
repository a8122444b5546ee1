// Package surface evaluates parametric patches over the unit UV square.
// Each evaluator is a pure function of (u, v) plus fixed shape parameters,
// so re-evaluating the same coordinates always reproduces the same
// geometry bit for bit.
package surface

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/resurfacer/pkg/math"
)

const twoPi = 2 * math32.Pi

// Type selects which patch is bound to mesh elements.
type Type uint32

const (
	Torus Type = iota
	Sphere
	Cone
	Cylinder
	Pebble
)

// String returns the config-file name of the type.
func (t Type) String() string {
	switch t {
	case Torus:
		return "torus"
	case Sphere:
		return "sphere"
	case Cone:
		return "cone"
	case Cylinder:
		return "cylinder"
	case Pebble:
		return "pebble"
	}
	return "unknown"
}

// ParseType maps a config-file name to a Type. Unknown names select Sphere,
// matching the evaluator fallback for stale selectors.
func ParseType(name string) Type {
	switch name {
	case "torus":
		return Torus
	case "sphere":
		return Sphere
	case "cone":
		return Cone
	case "cylinder":
		return Cylinder
	case "pebble":
		return Pebble
	}
	return Sphere
}

// Params carries the per-shape numeric parameters. Zero values are replaced
// by the original demo's defaults.
type Params struct {
	TorusMajorR    float32 `yaml:"torus_major_radius"`
	TorusMinorR    float32 `yaml:"torus_minor_radius"`
	SphereRadius   float32 `yaml:"sphere_radius"`
	ConeRadius     float32 `yaml:"cone_radius"`
	ConeHeight     float32 `yaml:"cone_height"`
	CylinderRadius float32 `yaml:"cylinder_radius"`
	CylinderHeight float32 `yaml:"cylinder_height"`
	PebbleRough    float32 `yaml:"pebble_roughness"`
}

// DefaultParams returns the shape parameters the original demo starts with.
func DefaultParams() Params {
	return Params{
		TorusMajorR:    1.0,
		TorusMinorR:    0.3,
		SphereRadius:   0.5,
		ConeRadius:     0.5,
		ConeHeight:     1.0,
		CylinderRadius: 0.4,
		CylinderHeight: 1.0,
		PebbleRough:    0.35,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.TorusMajorR <= 0 {
		p.TorusMajorR = d.TorusMajorR
	}
	if p.TorusMinorR <= 0 {
		p.TorusMinorR = d.TorusMinorR
	}
	if p.SphereRadius <= 0 {
		p.SphereRadius = d.SphereRadius
	}
	if p.ConeRadius <= 0 {
		p.ConeRadius = d.ConeRadius
	}
	if p.ConeHeight <= 0 {
		p.ConeHeight = d.ConeHeight
	}
	if p.CylinderRadius <= 0 {
		p.CylinderRadius = d.CylinderRadius
	}
	if p.CylinderHeight <= 0 {
		p.CylinderHeight = d.CylinderHeight
	}
	if p.PebbleRough <= 0 {
		p.PebbleRough = d.PebbleRough
	}
	return p
}

// Evaluator maps a parameter coordinate in [0,1]² to a local-space position
// and unit normal.
type Evaluator interface {
	Evaluate(u, v float32) (pos, normal math.Vec3)
}

// New returns the evaluator for the given type. Element-type selection comes
// from external configuration that may be stale across asset reloads, so an
// unknown type falls back to a sphere instead of failing. Pebble evaluators
// carry per-element state; use NewPebble for those.
func New(t Type, p Params) Evaluator {
	p = p.withDefaults()
	switch t {
	case Torus:
		return torus{major: p.TorusMajorR, minor: p.TorusMinorR}
	case Sphere:
		return sphere{radius: p.SphereRadius}
	case Cone:
		return cone{radius: p.ConeRadius, height: p.ConeHeight}
	case Cylinder:
		return cylinder{radius: p.CylinderRadius, height: p.CylinderHeight}
	default:
		return sphere{radius: p.SphereRadius}
	}
}

// wrap maps a periodic parameter onto [0,1) so that u=1 evaluates bitwise
// identically to u=0, closing seams exactly.
func wrap(u float32) float32 {
	return u - math32.Floor(u)
}

type torus struct {
	major, minor float32
}

// Evaluate revolves a minor circle of radius minor around the Y axis at
// distance major. Both parameters are periodic.
func (t torus) Evaluate(u, v float32) (math.Vec3, math.Vec3) {
	theta := twoPi * wrap(u)
	phi := twoPi * wrap(v)

	ct, st := math32.Cos(theta), math32.Sin(theta)
	cp, sp := math32.Cos(phi), math32.Sin(phi)

	ring := t.major + t.minor*cp
	pos := math.Vec3{X: ring * ct, Y: t.minor * sp, Z: ring * st}

	// dPhi x dTheta, normalized; points away from the ring axis.
	normal := math.Vec3{X: cp * ct, Y: sp, Z: cp * st}
	return pos, normal
}

type sphere struct {
	radius float32
}

// Evaluate uses spherical coordinates: u is azimuth, v is polar from the
// +Y pole. The normal is the normalized position.
func (s sphere) Evaluate(u, v float32) (math.Vec3, math.Vec3) {
	theta := twoPi * wrap(u)
	phi := math32.Pi * v

	ct, st := math32.Cos(theta), math32.Sin(theta)
	cp, sp := math32.Cos(phi), math32.Sin(phi)

	normal := math.Vec3{X: sp * ct, Y: cp, Z: sp * st}
	return normal.Scale(s.radius), normal
}

type cone struct {
	radius, height float32
}

// Evaluate interpolates radius linearly from the base at v=0 to the apex
// at v=1 along the Y axis.
func (c cone) Evaluate(u, v float32) (math.Vec3, math.Vec3) {
	theta := twoPi * wrap(u)
	ct, st := math32.Cos(theta), math32.Sin(theta)

	r := c.radius * (1 - v)
	pos := math.Vec3{X: r * ct, Y: v * c.height, Z: r * st}

	// dV x dU with dV = (-radius*ct, height, -radius*st).
	normal := math.Vec3{X: c.height * ct, Y: c.radius, Z: c.height * st}.Normalize()
	return pos, normal
}

type cylinder struct {
	radius, height float32
}

func (c cylinder) Evaluate(u, v float32) (math.Vec3, math.Vec3) {
	theta := twoPi * wrap(u)
	ct, st := math32.Cos(theta), math32.Sin(theta)

	pos := math.Vec3{X: c.radius * ct, Y: v * c.height, Z: c.radius * st}
	normal := math.Vec3{X: ct, Z: st}
	return pos, normal
}
