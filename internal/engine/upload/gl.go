package upload

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GPUMesh owns the GPU-resident copies of the packed arrays. The buffers
// are written once at upload and read-only for the mesh's lifetime; they
// must not be touched while in-flight frames may still read them.
//
// IMPORTANT: requires a current OpenGL context.
type GPUMesh struct {
	Vec4  [NumVec4Buffers]uint32
	Vec2  [NumVec2Buffers]uint32
	Int   [NumIntBuffers]uint32
	Float [NumFloatBuffers]uint32

	Info MeshInfo
}

// Upload creates one texture buffer per packed array and fills it with
// STATIC_DRAW usage.
func Upload(b *Buffers) (*GPUMesh, error) {
	g := &GPUMesh{Info: b.Info}

	for i, data := range b.Vec4 {
		id, err := uploadFloats(data)
		if err != nil {
			return nil, fmt.Errorf("vec4 buffer %d: %w", i, err)
		}
		g.Vec4[i] = id
	}
	for i, data := range b.Vec2 {
		id, err := uploadFloats(data)
		if err != nil {
			return nil, fmt.Errorf("vec2 buffer %d: %w", i, err)
		}
		g.Vec2[i] = id
	}
	for i, data := range b.Int {
		id, err := uploadInts(data)
		if err != nil {
			return nil, fmt.Errorf("int buffer %d: %w", i, err)
		}
		g.Int[i] = id
	}
	for i, data := range b.Float {
		id, err := uploadFloats(data)
		if err != nil {
			return nil, fmt.Errorf("float buffer %d: %w", i, err)
		}
		g.Float[i] = id
	}

	return g, nil
}

// Close deletes all GPU buffers.
func (g *GPUMesh) Close() {
	for _, id := range g.Vec4 {
		deleteBuffer(id)
	}
	for _, id := range g.Vec2 {
		deleteBuffer(id)
	}
	for _, id := range g.Int {
		deleteBuffer(id)
	}
	for _, id := range g.Float {
		deleteBuffer(id)
	}
}

func uploadFloats(data []float32) (uint32, error) {
	return uploadBuffer(len(data)*4, unsafe.Pointer(sliceBase32(data)))
}

func uploadInts(data []int32) (uint32, error) {
	return uploadBuffer(len(data)*4, unsafe.Pointer(sliceBaseI32(data)))
}

func uploadBuffer(size int, ptr unsafe.Pointer) (uint32, error) {
	var id uint32
	gl.GenBuffers(1, &id)
	if id == 0 {
		return 0, fmt.Errorf("glGenBuffers failed")
	}
	gl.BindBuffer(gl.TEXTURE_BUFFER, id)
	gl.BufferData(gl.TEXTURE_BUFFER, size, ptr, gl.STATIC_DRAW)
	gl.BindBuffer(gl.TEXTURE_BUFFER, 0)

	if errCode := gl.GetError(); errCode != gl.NO_ERROR {
		deleteBuffer(id)
		return 0, fmt.Errorf("glBufferData error 0x%x", errCode)
	}
	return id, nil
}

func deleteBuffer(id uint32) {
	if id != 0 {
		gl.DeleteBuffers(1, &id)
	}
}

func sliceBase32(s []float32) *float32 {
	if len(s) == 0 {
		return nil
	}
	return &s[0]
}

func sliceBaseI32(s []int32) *int32 {
	if len(s) == 0 {
		return nil
	}
	return &s[0]
}
