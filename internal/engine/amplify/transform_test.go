package amplify

import (
	"fmt"
	"testing"

	"github.com/Faultbox/resurfacer/pkg/math"
)

func checkOrthonormal(t *testing.T, f Frame, label string) {
	t.Helper()
	eps := float32(1e-5)

	for _, axis := range []struct {
		name string
		v    math.Vec3
	}{
		{"tangent", f.Tangent}, {"normal", f.Normal}, {"bitangent", f.Bitangent},
	} {
		if l := axis.v.Length(); l < 1-eps || l > 1+eps {
			t.Errorf("%s: %s length = %v, want 1", label, axis.name, l)
		}
	}

	if d := f.Tangent.Dot(f.Normal); d < -eps || d > eps {
		t.Errorf("%s: tangent·normal = %v, want 0", label, d)
	}
	if d := f.Tangent.Dot(f.Bitangent); d < -eps || d > eps {
		t.Errorf("%s: tangent·bitangent = %v, want 0", label, d)
	}
	if d := f.Normal.Dot(f.Bitangent); d < -eps || d > eps {
		t.Errorf("%s: normal·bitangent = %v, want 0", label, d)
	}
}

func TestAnchorFrameOrthonormal(t *testing.T) {
	normals := []math.Vec3{
		{X: 1}, {Y: 1}, {Z: 1},
		{X: -1}, {Y: -1}, {Z: -1},
		{X: 1, Y: 1, Z: 1},
		{X: 0.01, Y: 0.9999, Z: 0.01}, // near-parallel to the default helper
		{X: 3, Y: -2, Z: 0.5},
	}
	for _, n := range normals {
		checkOrthonormal(t, AnchorFrame(n), fmt.Sprintf("normal %v", n))
	}
}

func TestAnchorFrameAlignsNormal(t *testing.T) {
	n := math.Vec3{X: 1, Y: 2, Z: -3}
	f := AnchorFrame(n)

	want := n.Normalize()
	if d := f.Normal.Sub(want).Length(); d > 1e-5 {
		t.Errorf("frame normal = %v, want %v", f.Normal, want)
	}

	// Local +Y maps onto the anchor normal.
	_, worldNormal := f.Apply(math.Vec3{}, math.Vec3{Y: 1}, math.Vec3{}, 1)
	if d := worldNormal.Sub(want).Length(); d > 1e-5 {
		t.Errorf("local up maps to %v, want %v", worldNormal, want)
	}
}

func TestAnchorFrameDegenerateNormal(t *testing.T) {
	// A zero normal comes from degenerate geometry; the frame must still
	// be usable.
	checkOrthonormal(t, AnchorFrame(math.Vec3{}), "zero normal")
}

func TestApplyOrder(t *testing.T) {
	// With the identity frame (normal +Y), local (1,0,0) scaled by 2 and
	// anchored at (10,0,0) must land at 10 + 2: scale before translate.
	f := AnchorFrame(math.Vec3{Y: 1})
	anchor := math.Vec3{X: 10}

	pos, _ := f.Apply(math.Vec3{X: 1}, math.Vec3{Y: 1}, anchor, 2)
	d := pos.Sub(anchor).Length()
	if d < 1.999 || d > 2.001 {
		t.Errorf("scaled offset = %v, want 2", d)
	}
}

func TestPatchScaleTracksLinearDimension(t *testing.T) {
	// Scaling the area by k² scales the patch's linear extent by k.
	base := PatchScale(2, 1.5)
	scaled := PatchScale(2*9, 1.5)

	ratio := scaled / base
	if ratio < 2.999 || ratio > 3.001 {
		t.Errorf("area x9 scaled extent by %v, want 3", ratio)
	}
}

func TestApplyKeepsRelativeGeometry(t *testing.T) {
	// The same local patch transformed into two frames keeps its internal
	// distances, only scaled.
	a := math.Vec3{X: 0.5, Y: 0.1, Z: -0.2}
	b := math.Vec3{X: -0.3, Y: 0.4, Z: 0.6}
	localDist := a.Sub(b).Length()

	f := AnchorFrame(math.Vec3{X: 1, Y: 1, Z: 0})
	anchor := math.Vec3{X: 5, Y: -2, Z: 1}
	scale := float32(2.5)

	pa, _ := f.Apply(a, math.Vec3{Y: 1}, anchor, scale)
	pb, _ := f.Apply(b, math.Vec3{Y: 1}, anchor, scale)

	got := pa.Sub(pb).Length()
	want := localDist * scale
	if got < want*0.999 || got > want*1.001 {
		t.Errorf("world distance = %v, want %v", got, want)
	}
}
