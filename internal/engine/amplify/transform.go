package amplify

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/resurfacer/pkg/math"
)

// Frame is an orthonormal basis anchored at an element, aligning the
// patch's local +Y axis to the anchor normal.
type Frame struct {
	Tangent   math.Vec3 // local +X
	Normal    math.Vec3 // local +Y
	Bitangent math.Vec3 // local +Z
}

// AnchorFrame builds the basis by Gram-Schmidt orthonormalization against a
// helper axis. The helper switches when near-parallel to the normal, so the
// frame is stable for any anchor orientation without precomputed tangents.
func AnchorFrame(normal math.Vec3) Frame {
	n := normal.Normalize()
	if n == (math.Vec3{}) {
		n = math.Vec3{Y: 1}
	}

	helper := math.Vec3{Y: 1}
	if math32.Abs(n.Y) > 0.99 {
		helper = math.Vec3{X: 1}
	}

	tangent := helper.Cross(n).Normalize()
	bitangent := n.Cross(tangent)

	return Frame{Tangent: tangent, Normal: n, Bitangent: bitangent}
}

// PatchScale returns the local-to-world scale factor: the square root of
// the anchoring face's area times the user multiplier, so patch size tracks
// the linear dimension of the face rather than its area.
func PatchScale(area, userScale float32) float32 {
	return math32.Sqrt(area) * userScale
}

// Apply transforms an evaluator's local-space output to world space. The
// order is fixed: scale, then rotate into the anchor frame, then translate
// to the anchor.
func (f Frame) Apply(localPos, localNormal, anchor math.Vec3, scale float32) (pos, normal math.Vec3) {
	p := localPos.Scale(scale)

	pos = anchor.
		Add(f.Tangent.Scale(p.X)).
		Add(f.Normal.Scale(p.Y)).
		Add(f.Bitangent.Scale(p.Z))

	normal = f.Tangent.Scale(localNormal.X).
		Add(f.Normal.Scale(localNormal.Y)).
		Add(f.Bitangent.Scale(localNormal.Z))

	return pos, normal
}
