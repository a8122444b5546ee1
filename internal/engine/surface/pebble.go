package surface

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/resurfacer/pkg/math"
)

// Cage lattice resolution: cageU azimuth segments by cageV polar bands.
const (
	cageU = 8
	cageV = 4
)

// PebbleCage is a procedurally constructed control cage: a sphere whose
// radius is perturbed per lattice point by a hash of the owning element
// index, then evaluated by smoothed bilinear interpolation. The cage is
// built once per element, before tile work for that element fans out, and
// is read-only afterwards; it is never shared across elements.
type PebbleCage struct {
	// radii is a fixed-size scratch arena filled during construction.
	// Column cageU duplicates column 0 and the pole rows are constant so
	// interpolation stays seam-free.
	radii [cageV + 1][cageU + 1]float32
}

// NewPebble constructs the cage for one element. The same (params, element)
// pair always builds the same cage.
func NewPebble(p Params, element uint32) *PebbleCage {
	p = p.withDefaults()
	base := p.SphereRadius
	rough := p.PebbleRough

	cage := &PebbleCage{}
	for j := 0; j <= cageV; j++ {
		for i := 0; i < cageU; i++ {
			cage.radii[j][i] = base * (1 + rough*hashSigned(element, uint32(i), uint32(j)))
		}
		cage.radii[j][cageU] = cage.radii[j][0]
	}

	// Each pole is a single point; its whole row must carry one radius.
	for i := 0; i <= cageU; i++ {
		cage.radii[0][i] = cage.radii[0][0]
		cage.radii[cageV][i] = cage.radii[cageV][0]
	}
	return cage
}

// radius interpolates the cage at (u, v) with smoothstep-eased bilinear
// weights, rounding the silhouette between lattice points.
func (c *PebbleCage) radius(u, v float32) float32 {
	fu := wrap(u) * cageU
	fv := clamp01(v) * cageV

	iu := int(fu)
	iv := int(fv)
	if iu >= cageU {
		iu = cageU - 1
	}
	if iv >= cageV {
		iv = cageV - 1
	}

	tu := smoothstep(fu - float32(iu))
	tv := smoothstep(fv - float32(iv))

	r00 := c.radii[iv][iu]
	r10 := c.radii[iv][iu+1]
	r01 := c.radii[iv+1][iu]
	r11 := c.radii[iv+1][iu+1]

	return lerp(lerp(r00, r10, tu), lerp(r01, r11, tu), tv)
}

func (c *PebbleCage) position(u, v float32) math.Vec3 {
	theta := twoPi * wrap(u)
	phi := math32.Pi * clamp01(v)

	ct, st := math32.Cos(theta), math32.Sin(theta)
	cp, sp := math32.Cos(phi), math32.Sin(phi)

	r := c.radius(u, v)
	return math.Vec3{X: r * sp * ct, Y: r * cp, Z: r * sp * st}
}

// Evaluate samples the cage surface. The normal comes from central finite
// differences with a fixed step, so it is as deterministic as the position.
func (c *PebbleCage) Evaluate(u, v float32) (math.Vec3, math.Vec3) {
	pos := c.position(u, v)

	const eps = 1.0 / 256
	du := c.position(u+eps, v).Sub(c.position(u-eps, v))
	dv := c.position(u, v+eps).Sub(c.position(u, v-eps))

	normal := du.Cross(dv)
	if normal.Length() < 1e-8 {
		// Degenerate at the poles where du collapses; the radial
		// direction is exact there.
		normal = pos
	}
	return pos, normal.Normalize()
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

func smoothstep(t float32) float32 {
	return t * t * (3 - 2*t)
}

// hashSigned maps (element, i, j) to a deterministic value in [-1, 1].
func hashSigned(element, i, j uint32) float32 {
	h := element*73856093 ^ i*19349663 ^ j*83492791
	h ^= h >> 13
	h *= 0x5bd1e995
	h ^= h >> 15
	return float32(h&0xffff)/32767.5 - 1
}
