// Package preview renders amplified geometry to an image with a small
// software rasterizer, for headless snapshots of the pipeline output.
package preview

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/Faultbox/resurfacer/internal/engine/amplify"
	gmath "github.com/Faultbox/resurfacer/pkg/math"
)

// Options controls the snapshot rendering.
type Options struct {
	Width  int
	Height int

	// Supersample renders at a multiple of the output size and downscales.
	Supersample int

	// Background is the clear color.
	Background [3]uint8
}

// DefaultOptions returns an 800x600 snapshot with 2x supersampling.
func DefaultOptions() Options {
	return Options{
		Width:       800,
		Height:      600,
		Supersample: 2,
		Background:  [3]uint8{26, 26, 38},
	}
}

// lightDir is the fixed key light for lambert shading, in world space.
var lightDir = gmath.Vec3{X: 0.4, Y: 0.8, Z: 0.45}.Normalize()

type frameBuffer struct {
	w, h  int
	color []uint8   // RGBA interleaved
	depth []float32 // NDC depth, initialized past the far plane
}

func newFrameBuffer(w, h int, bg [3]uint8) *frameBuffer {
	fb := &frameBuffer{
		w:     w,
		h:     h,
		color: make([]uint8, w*h*4),
		depth: make([]float32, w*h),
	}
	for i := 0; i < w*h; i++ {
		fb.color[i*4+0] = bg[0]
		fb.color[i*4+1] = bg[1]
		fb.color[i*4+2] = bg[2]
		fb.color[i*4+3] = 255
		fb.depth[i] = math.MaxFloat32
	}
	return fb
}

// Render draws the batches with depth testing and per-triangle lambert
// shading, then downscales to the requested output size.
func Render(batches []amplify.Batch, viewProj gmath.Mat4, opts Options) *image.NRGBA {
	ss := opts.Supersample
	if ss < 1 {
		ss = 1
	}
	w, h := opts.Width*ss, opts.Height*ss
	fb := newFrameBuffer(w, h, opts.Background)

	for i := range batches {
		drawBatch(fb, &batches[i], viewProj)
	}

	img := &image.NRGBA{
		Pix:    fb.color,
		Stride: w * 4,
		Rect:   image.Rect(0, 0, w, h),
	}
	if ss == 1 {
		return img
	}

	out := image.NewNRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	xdraw.ApproxBiLinear.Scale(out, out.Rect, img, img.Rect, xdraw.Src, nil)
	return out
}

func drawBatch(fb *frameBuffer, b *amplify.Batch, viewProj gmath.Mat4) {
	// Project once per vertex: screen x/y plus NDC depth; w<=0 marks a
	// vertex behind the camera and drops its triangles.
	type projected struct {
		x, y, z float32
		ok      bool
	}
	screen := make([]projected, len(b.Positions))
	for i, p := range b.Positions {
		clip := viewProj.MulVec4(gmath.Point4(p))
		if clip[3] <= 0 {
			continue
		}
		inv := 1 / clip[3]
		screen[i] = projected{
			x:  (clip[0]*inv + 1) * 0.5 * float32(fb.w),
			y:  (1 - clip[1]*inv) * 0.5 * float32(fb.h),
			z:  clip[2] * inv,
			ok: true,
		}
	}

	for t := 0; t+2 < len(b.Indices); t += 3 {
		i0, i1, i2 := b.Indices[t], b.Indices[t+1], b.Indices[t+2]
		if !screen[i0].ok || !screen[i1].ok || !screen[i2].ok {
			continue
		}

		// Average the vertex normals for one shade per triangle.
		n := b.Normals[i0].Add(b.Normals[i1]).Add(b.Normals[i2]).Normalize()
		shade := n.Dot(lightDir)
		if shade < 0 {
			shade = -shade * 0.4 // dim back sides instead of dropping them
		}
		intensity := 0.15 + 0.85*shade

		r := uint8(200 * intensity)
		g := uint8(180 * intensity)
		bl := uint8(150 * intensity)

		fillTriangle(fb,
			screen[i0].x, screen[i0].y, screen[i0].z,
			screen[i1].x, screen[i1].y, screen[i1].z,
			screen[i2].x, screen[i2].y, screen[i2].z,
			r, g, bl)
	}
}

func fillTriangle(fb *frameBuffer, x0, y0, z0, x1, y1, z1, x2, y2, z2 float32, r, g, b uint8) {
	minX := clampInt(int(min3(x0, x1, x2)), 0, fb.w-1)
	maxX := clampInt(int(max3(x0, x1, x2))+1, 0, fb.w-1)
	minY := clampInt(int(min3(y0, y1, y2)), 0, fb.h-1)
	maxY := clampInt(int(max3(y0, y1, y2))+1, 0, fb.h-1)

	area := edge(x0, y0, x1, y1, x2, y2)
	if area > -1e-6 && area < 1e-6 {
		return
	}
	invArea := 1 / area

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5

			w0 := edge(x1, y1, x2, y2, px, py) * invArea
			w1 := edge(x2, y2, x0, y0, px, py) * invArea
			w2 := edge(x0, y0, x1, y1, px, py) * invArea
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			idx := y*fb.w + x
			if z >= fb.depth[idx] {
				continue
			}
			fb.depth[idx] = z

			fb.color[idx*4+0] = r
			fb.color[idx*4+1] = g
			fb.color[idx*4+2] = b
			fb.color[idx*4+3] = 255
		}
	}
}

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

func min3(a, b, c float32) float32 { return minf(minf(a, b), c) }
func max3(a, b, c float32) float32 { return maxf(maxf(a, b), c) }

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
