package ngon

import "github.com/Faultbox/resurfacer/pkg/math"

// Cube returns a closed quad cube with the given edge length, centered at
// the origin. 8 vertices, 6 quad faces, all faces wound CCW from outside.
func Cube(size float32) *Mesh {
	h := size / 2
	mesh := &Mesh{
		Positions: []math.Vec3{
			{X: -h, Y: -h, Z: -h},
			{X: h, Y: -h, Z: -h},
			{X: h, Y: h, Z: -h},
			{X: -h, Y: h, Z: -h},
			{X: -h, Y: -h, Z: h},
			{X: h, Y: -h, Z: h},
			{X: h, Y: h, Z: h},
			{X: -h, Y: h, Z: h},
		},
	}

	faces := [][]uint32{
		{0, 3, 2, 1}, // back (-Z)
		{4, 5, 6, 7}, // front (+Z)
		{0, 1, 5, 4}, // bottom (-Y)
		{3, 7, 6, 2}, // top (+Y)
		{0, 4, 7, 3}, // left (-X)
		{1, 2, 6, 5}, // right (+X)
	}
	for _, f := range faces {
		if err := mesh.AddFace(f); err != nil {
			panic(err) // static data
		}
	}

	// Vertex normals point away from the cube center.
	for _, p := range mesh.Positions {
		mesh.Normals = append(mesh.Normals, p.Normalize())
	}
	mesh.FillDefaults()
	return mesh
}

// PlaneGrid returns an open nx-by-nz grid of unit quads in the XZ plane,
// normals up. Its single boundary loop has 2*(nx+nz) edges.
func PlaneGrid(nx, nz int) *Mesh {
	mesh := &Mesh{}

	for z := 0; z <= nz; z++ {
		for x := 0; x <= nx; x++ {
			mesh.Positions = append(mesh.Positions, math.Vec3{
				X: float32(x) - float32(nx)/2,
				Z: float32(z) - float32(nz)/2,
			})
			mesh.Normals = append(mesh.Normals, math.Vec3{Y: 1})
		}
	}

	stride := uint32(nx + 1)
	for z := 0; z < nz; z++ {
		for x := 0; x < nx; x++ {
			v0 := uint32(z)*stride + uint32(x)
			if err := mesh.AddFace([]uint32{v0, v0 + stride, v0 + stride + 1, v0 + 1}); err != nil {
				panic(err)
			}
		}
	}

	mesh.FillDefaults()
	return mesh
}
