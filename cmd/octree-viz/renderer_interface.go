package main

import "github.com/mirstar13/octree3d/internal/gfx"

// Renderer is the interface an octree wireframe viewer backend must satisfy.
// Only one implementation (OpenGLRenderer) exists. main.go constructs it
// directly and reads its GLFW window for input, so main.go depends on the
// concrete type and not only on this interface.
type Renderer interface {
	Initialize() error
	Shutdown()

	BeginFrame()
	EndFrame()
	Present()

	// AddBoxWireframe queues the twelve edges of box for the next Present.
	AddBoxWireframe(box Box, color gfx.Color)
	// AddLine queues a single line segment for the next Present.
	AddLine(start, end gfx.Point, color gfx.Color)

	SetCamera(camera *gfx.Camera)
	GetDimensions() (width, height int)
	SetShowDebugInfo(show bool)
}

// Box is the minimal axis-aligned box description the renderer needs to draw
// a wireframe, decoupled from the octree package's own AABB type so this
// package doesn't need to import it just for rendering.
type Box struct {
	Center gfx.Point
	Size   gfx.Point
}
