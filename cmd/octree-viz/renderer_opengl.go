package main

import (
	"fmt"
	"math"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/mirstar13/octree3d/internal/gfx"
)

// OpenGLRenderer draws line geometry only: it exists to show the shape of a
// live octree (node boundaries, stored object boxes, query rays) rather than
// to render scenes of solid meshes.
type OpenGLRenderer struct {
	window *glfw.Window
	width  int
	height int

	program      uint32
	vao          uint32
	vbo          uint32
	uniformModel int32
	uniformView  int32
	uniformProj  int32

	lineVertices []float32

	Camera        *gfx.Camera
	ShowDebugInfo bool

	initialized bool
	frameCount  int
}

const (
	vertexShaderSource = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;

out vec3 FragColor;

uniform mat4 model;
uniform mat4 view;
uniform mat4 proj;

void main() {
    gl_Position = proj * view * model * vec4(aPos, 1.0);
    FragColor = aColor;
}
` + "\x00"

	fragmentShaderSource = `
#version 410 core
in vec3 FragColor;
out vec4 color;

void main() {
    color = vec4(FragColor, 1.0);
}
` + "\x00"
)

func NewOpenGLRenderer(width, height int) *OpenGLRenderer {
	return &OpenGLRenderer{
		width:        width,
		height:       height,
		lineVertices: make([]float32, 0, 60000),
	}
}

func (r *OpenGLRenderer) Initialize() error {
	if r.initialized {
		return nil
	}

	fmt.Println("[OpenGL] Initializing...")

	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(r.width, r.height, "octree3d viewer", nil, nil)
	if err != nil {
		return fmt.Errorf("failed to create window: %v", err)
	}
	r.window = window
	r.window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %v", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	fmt.Printf("[OpenGL] Version: %s\n", version)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	if err := r.createShaderProgram(); err != nil {
		return err
	}
	if err := r.createBuffers(); err != nil {
		return err
	}

	gl.Viewport(0, 0, int32(r.width), int32(r.height))

	fmt.Println("[OpenGL] Initialization complete")
	r.initialized = true
	return nil
}

func (r *OpenGLRenderer) createShaderProgram() error {
	vertexShader, err := r.compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return fmt.Errorf("vertex shader: %v", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := r.compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return fmt.Errorf("fragment shader: %v", err)
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
		return fmt.Errorf("failed to link program: %v", log)
	}

	r.program = program
	r.uniformModel = gl.GetUniformLocation(program, gl.Str("model\x00"))
	r.uniformView = gl.GetUniformLocation(program, gl.Str("view\x00"))
	r.uniformProj = gl.GetUniformLocation(program, gl.Str("proj\x00"))
	return nil
}

func (r *OpenGLRenderer) compileShader(source string, shaderType uint32) (uint32, error) {
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
		return 0, fmt.Errorf("failed to compile shader: %v", log)
	}

	return shader, nil
}

func (r *OpenGLRenderer) createBuffers() error {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	bufferSize := 200000 * 6 * 4 // 6 floats per vertex, 4 bytes per float
	gl.BufferData(gl.ARRAY_BUFFER, bufferSize, nil, gl.DYNAMIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return nil
}

func (r *OpenGLRenderer) Shutdown() {
	if !r.initialized {
		return
	}

	fmt.Println("[OpenGL] Shutting down...")
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteVertexArrays(1, &r.vao)
	gl.DeleteProgram(r.program)

	r.window.Destroy()
	glfw.Terminate()
	r.initialized = false
}

func (r *OpenGLRenderer) BeginFrame() {
	if !r.initialized {
		return
	}
	glfw.PollEvents()
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *OpenGLRenderer) EndFrame() {
	// No-op: rendering happens in Present.
}

func (r *OpenGLRenderer) Present() {
	if !r.initialized {
		return
	}

	if len(r.lineVertices) > 0 {
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
		dataSize := len(r.lineVertices) * 4
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, dataSize, gl.Ptr(r.lineVertices))

		gl.UseProgram(r.program)
		r.updateMatrices()

		gl.BindVertexArray(r.vao)
		vertexCount := int32(len(r.lineVertices) / 6)
		gl.DrawArrays(gl.LINES, 0, vertexCount)
		gl.BindVertexArray(0)
	}

	r.window.SwapBuffers()
	r.frameCount++
	r.lineVertices = r.lineVertices[:0]

	if r.frameCount%60 == 0 && r.ShowDebugInfo {
		r.window.SetTitle(fmt.Sprintf("octree3d viewer - frame %d", r.frameCount))
	}
}

func (r *OpenGLRenderer) updateMatrices() {
	r.uploadMatrix(r.uniformModel, gfx.IdentityMatrix())
	r.uploadMatrix(r.uniformView, r.Camera.Transform.GetInverseMatrix())
	r.uploadMatrix(r.uniformProj, r.buildProjectionMatrix())
}

func (r *OpenGLRenderer) buildProjectionMatrix() gfx.Matrix4x4 {
	fovY := 60.0 * math.Pi / 180.0
	aspect := float64(r.width) / float64(r.height)
	near := r.Camera.Near
	far := r.Camera.Far
	f := 1.0 / math.Tan(fovY/2.0)

	return gfx.Matrix4x4{M: [16]float64{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) / (near - far), -1,
		0, 0, (2 * far * near) / (near - far), 0,
	}}
}

func (r *OpenGLRenderer) uploadMatrix(uniform int32, matrix gfx.Matrix4x4) {
	var m [16]float32
	for i := 0; i < 16; i++ {
		m[i] = float32(matrix.M[i])
	}
	gl.UniformMatrix4fv(uniform, 1, true, &m[0])
}

// AddBoxWireframe queues the twelve edges of box.
func (r *OpenGLRenderer) AddBoxWireframe(box Box, color gfx.Color) {
	hx, hy, hz := box.Size.X/2, box.Size.Y/2, box.Size.Z/2
	c := box.Center

	corners := [8]gfx.Point{
		{X: c.X - hx, Y: c.Y - hy, Z: c.Z - hz},
		{X: c.X + hx, Y: c.Y - hy, Z: c.Z - hz},
		{X: c.X - hx, Y: c.Y + hy, Z: c.Z - hz},
		{X: c.X + hx, Y: c.Y + hy, Z: c.Z - hz},
		{X: c.X - hx, Y: c.Y - hy, Z: c.Z + hz},
		{X: c.X + hx, Y: c.Y - hy, Z: c.Z + hz},
		{X: c.X - hx, Y: c.Y + hy, Z: c.Z + hz},
		{X: c.X + hx, Y: c.Y + hy, Z: c.Z + hz},
	}

	edges := [12][2]int{
		{0, 1}, {0, 2}, {1, 3}, {2, 3}, // near face
		{4, 5}, {4, 6}, {5, 7}, {6, 7}, // far face
		{0, 4}, {1, 5}, {2, 6}, {3, 7}, // connecting edges
	}

	for _, e := range edges {
		r.AddLine(corners[e[0]], corners[e[1]], color)
	}
}

// AddLine queues a single line segment.
func (r *OpenGLRenderer) AddLine(start, end gfx.Point, color gfx.Color) {
	rf, gf, bf := float32(color.R)/255.0, float32(color.G)/255.0, float32(color.B)/255.0
	r.addLineVertex(start, rf, gf, bf)
	r.addLineVertex(end, rf, gf, bf)
}

func (r *OpenGLRenderer) addLineVertex(p gfx.Point, red, green, blue float32) {
	r.lineVertices = append(r.lineVertices,
		float32(p.X), float32(p.Y), float32(p.Z),
		red, green, blue,
	)
}

func (r *OpenGLRenderer) SetCamera(camera *gfx.Camera) {
	r.Camera = camera
}

func (r *OpenGLRenderer) GetDimensions() (width, height int) {
	return r.width, r.height
}

func (r *OpenGLRenderer) SetShowDebugInfo(show bool) {
	r.ShowDebugInfo = show
}
