package camera

import (
	"testing"

	"github.com/Faultbox/resurfacer/pkg/math"
)

func TestPositionRespectsDistance(t *testing.T) {
	c := New()
	c.Center = math.Vec3{X: 1, Y: 2, Z: 3}
	c.Distance = 7

	d := c.Position().Distance(c.Center)
	if d < 6.999 || d > 7.001 {
		t.Errorf("camera distance = %v, want 7", d)
	}
}

func TestHandleZoomClamps(t *testing.T) {
	c := New()

	for i := 0; i < 200; i++ {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("zoom in: distance = %v, want clamp at %v", c.Distance, c.MinDistance)
	}

	for i := 0; i < 200; i++ {
		c.HandleZoom(-1)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("zoom out: distance = %v, want clamp at %v", c.Distance, c.MaxDistance)
	}
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := New()
	c.HandleDrag(0, 1e6)
	if c.RotationX != c.MaxPitch {
		t.Errorf("pitch = %v, want clamp at %v", c.RotationX, c.MaxPitch)
	}
}

func TestViewProjCentersTarget(t *testing.T) {
	c := New()
	c.Center = math.Vec3{X: 5, Y: -1, Z: 2}

	// The orbit center projects to the middle of the screen.
	p := c.ViewProj(16.0 / 9.0).TransformPoint(c.Center)
	if p.X < -1e-4 || p.X > 1e-4 || p.Y < -1e-4 || p.Y > 1e-4 {
		t.Errorf("center projects to (%v, %v), want (0, 0)", p.X, p.Y)
	}
}

func TestFitToBounds(t *testing.T) {
	c := New()
	c.FitToBounds(math.Vec3{X: -2, Y: -2, Z: -2}, math.Vec3{X: 2, Y: 2, Z: 2})

	if c.Center != (math.Vec3{}) {
		t.Errorf("center = %v, want origin", c.Center)
	}
	if c.Distance <= 0 {
		t.Errorf("distance = %v, want positive", c.Distance)
	}
}
