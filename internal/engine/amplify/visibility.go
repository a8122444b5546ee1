package amplify

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/resurfacer/pkg/math"
)

// minBoundingRadius is the lower bound substituted for degenerate areas so
// thin or zero-area faces still render instead of failing.
const minBoundingRadius = 1e-4

// View carries the camera state one frame's visibility tests read.
type View struct {
	// ViewProj is the combined view-projection transform, mapping world
	// space to clip space with a 0-to-1 depth range.
	ViewProj math.Mat4

	// Eye is the camera position in world space.
	Eye math.Vec3
}

// BoundingRadius returns the conservative world-space radius of the patch
// a visible element may produce: the radius of the circle with the
// element's area, scaled like the patch itself and padded by the margin.
func BoundingRadius(area, userScale, margin float32) float32 {
	r := math32.Sqrt(area/math32.Pi) * userScale * margin
	if r < minBoundingRadius {
		r = minBoundingRadius
	}
	return r
}

// Visible applies the frustum and back-face tests from spec'd policy:
// reject behind the near plane, reject when the radius-expanded bound lies
// outside any NDC half-space, reject when the anchor normal faces away
// beyond the configured threshold. With culling disabled every element
// passes.
func Visible(elem Element, view View, p Params) bool {
	if !p.Culling {
		return true
	}

	clip := view.ViewProj.MulVec4(math.Point4(elem.Anchor))
	w := clip[3]
	if w <= 0 {
		return false
	}

	radius := BoundingRadius(elem.Area, p.UserScale, p.CullMargin)
	ndcRadius := radius / w

	x := clip[0] / w
	y := clip[1] / w
	z := clip[2] / w

	if x+ndcRadius < -1 || x-ndcRadius > 1 {
		return false
	}
	if y+ndcRadius < -1 || y-ndcRadius > 1 {
		return false
	}
	if z+ndcRadius < 0 || z-ndcRadius > 1 {
		return false
	}

	// Back-face: alignment of the anchor normal with the view direction.
	toEye := view.Eye.Sub(elem.Anchor).Normalize()
	return elem.Normal.Dot(toEye) >= p.BackfaceThreshold
}

// lodSteps maps screen-space extent (NDC units) to a resolution divisor, in
// decreasing extent order. Smaller on screen means a coarser grid.
var lodSteps = []struct {
	minExtent float32
	divisor   int
}{
	{0.50, 1},
	{0.20, 2},
	{0.05, 4},
}

// Resolution picks the tessellation grid for an element. With LOD off it is
// the configured resolution; otherwise the projected extent of the bounding
// radius selects a divisor from a monotonic step table. The result never
// drops below 2 subdivisions per axis.
func Resolution(elem Element, view View, p Params) (m, n int) {
	m, n = p.ResolutionM, p.ResolutionN
	if m < 2 {
		m = 2
	}
	if n < 2 {
		n = 2
	}
	if !p.LOD {
		return m, n
	}

	clip := view.ViewProj.MulVec4(math.Point4(elem.Anchor))
	w := clip[3]
	if w <= 0 {
		return 2, 2
	}

	radius := BoundingRadius(elem.Area, p.UserScale, 1)
	extent := radius / w * p.LODFactor

	divisor := lodSteps[len(lodSteps)-1].divisor * 2
	for _, step := range lodSteps {
		if extent >= step.minExtent {
			divisor = step.divisor
			break
		}
	}

	m /= divisor
	n /= divisor
	if m < 2 {
		m = 2
	}
	if n < 2 {
		n = 2
	}
	return m, n
}
