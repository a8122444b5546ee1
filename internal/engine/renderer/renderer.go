// Package renderer draws amplified surface batches with OpenGL.
package renderer

import (
	"fmt"
	"strings"
	"unsafe"

	"go.uber.org/zap"

	"github.com/Faultbox/resurfacer/internal/engine/amplify"
	"github.com/Faultbox/resurfacer/internal/logger"
	gmath "github.com/Faultbox/resurfacer/pkg/math"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer owns the GL state for drawing amplified geometry. Batches are
// re-streamed every frame since the pipeline regenerates them per view.
type Renderer struct {
	config Config

	program uint32

	vao uint32
	vbo uint32
	ebo uint32

	// Uniform locations, resolved once at link time.
	uViewProj int32
	uLightDir int32
	uEye      int32

	wireframe bool

	// Scratch buffers reused across frames to avoid reallocation.
	vertexScratch []float32
	indexScratch  []uint32
}

// New creates a renderer.
// Must be called after the OpenGL context exists.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	var err error
	r.program, err = createProgram()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.uViewProj = gl.GetUniformLocation(r.program, gl.Str("uViewProj\x00"))
	r.uLightDir = gl.GetUniformLocation(r.program, gl.Str("uLightDir\x00"))
	r.uEye = gl.GetUniformLocation(r.program, gl.Str("uEye\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	// Interleaved position + normal, 6 floats per vertex.
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	gl.BindVertexArray(0)

	return r, nil
}

// Close releases GL resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// ToggleWireframe flips between filled and wireframe polygons.
func (r *Renderer) ToggleWireframe() {
	r.wireframe = !r.wireframe
}

// Begin clears the frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawBatches streams the frame's batches into one interleaved buffer and
// issues a single indexed draw.
func (r *Renderer) DrawBatches(batches []amplify.Batch, viewProj gmath.Mat4, eye gmath.Vec3) {
	if len(batches) == 0 {
		return
	}

	r.vertexScratch = r.vertexScratch[:0]
	r.indexScratch = r.indexScratch[:0]

	base := uint32(0)
	for i := range batches {
		b := &batches[i]
		for j := range b.Positions {
			p, n := b.Positions[j], b.Normals[j]
			r.vertexScratch = append(r.vertexScratch,
				p.X, p.Y, p.Z,
				n.X, n.Y, n.Z,
			)
		}
		for _, idx := range b.Indices {
			r.indexScratch = append(r.indexScratch, base+idx)
		}
		base += uint32(len(b.Positions))
	}
	if len(r.indexScratch) == 0 {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.uViewProj, 1, false, viewProj.Ptr())
	gl.Uniform3f(r.uLightDir, 0.4, 0.8, 0.45)
	gl.Uniform3f(r.uEye, eye.X, eye.Y, eye.Z)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.vertexScratch)*4,
		unsafe.Pointer(&r.vertexScratch[0]), gl.STREAM_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(r.indexScratch)*4,
		unsafe.Pointer(&r.indexScratch[0]), gl.STREAM_DRAW)

	if r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	gl.DrawElements(gl.TRIANGLES, int32(len(r.indexScratch)), gl.UNSIGNED_INT, nil)
	if r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	gl.BindVertexArray(0)
}

func createProgram() (uint32, error) {
	vertexShaderSource := `
		#version 410 core

		layout (location = 0) in vec3 aPos;
		layout (location = 1) in vec3 aNormal;

		uniform mat4 uViewProj;

		out vec3 vNormal;
		out vec3 vWorldPos;

		void main() {
			gl_Position = uViewProj * vec4(aPos, 1.0);
			vNormal = aNormal;
			vWorldPos = aPos;
		}
	` + "\x00"

	fragmentShaderSource := `
		#version 410 core

		in vec3 vNormal;
		in vec3 vWorldPos;

		uniform vec3 uLightDir;
		uniform vec3 uEye;

		out vec4 FragColor;

		void main() {
			vec3 n = normalize(vNormal);
			vec3 l = normalize(uLightDir);
			float diffuse = max(dot(n, l), 0.0);

			vec3 v = normalize(uEye - vWorldPos);
			vec3 h = normalize(l + v);
			float spec = pow(max(dot(n, h), 0.0), 32.0);

			vec3 albedo = vec3(0.78, 0.70, 0.58);
			vec3 color = albedo * (0.15 + 0.85 * diffuse) + vec3(0.25) * spec;
			FragColor = vec4(color, 1.0);
		}
	` + "\x00"

	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %s", log)
	}

	logger.Debug("shader program created", zap.Uint32("program", program))
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %s", log)
	}

	return shader, nil
}
