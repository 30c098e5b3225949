package main

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// InputState is a snapshot of which camera-control keys are currently held.
type InputState struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Up       bool
	Down     bool
	RotLeft  bool
	RotRight bool
	RotUp    bool
	RotDown  bool
	SpeedUp  bool
	SlowDown bool
	Reset    bool
	Quit     bool
}

// GLFWInputManager polls key state directly from the window each frame.
type GLFWInputManager struct {
	window *glfw.Window
}

// NewGLFWInputManager creates a GLFW input manager for an initialized window.
func NewGLFWInputManager(window *glfw.Window) *GLFWInputManager {
	if window == nil {
		panic("NewGLFWInputManager: window is nil; call renderer.Initialize() first")
	}
	return &GLFWInputManager{window: window}
}

// GetInputState polls the current key states.
func (gim *GLFWInputManager) GetInputState() InputState {
	w := gim.window
	var state InputState

	state.Forward = w.GetKey(glfw.KeyW) == glfw.Press
	state.Backward = w.GetKey(glfw.KeyS) == glfw.Press
	state.Left = w.GetKey(glfw.KeyA) == glfw.Press
	state.Right = w.GetKey(glfw.KeyD) == glfw.Press

	state.Up = w.GetKey(glfw.KeyE) == glfw.Press
	state.Down = w.GetKey(glfw.KeyQ) == glfw.Press

	state.RotLeft = w.GetKey(glfw.KeyJ) == glfw.Press || w.GetKey(glfw.KeyLeft) == glfw.Press
	state.RotRight = w.GetKey(glfw.KeyL) == glfw.Press || w.GetKey(glfw.KeyRight) == glfw.Press
	state.RotUp = w.GetKey(glfw.KeyI) == glfw.Press || w.GetKey(glfw.KeyUp) == glfw.Press
	state.RotDown = w.GetKey(glfw.KeyK) == glfw.Press || w.GetKey(glfw.KeyDown) == glfw.Press

	state.SpeedUp = w.GetKey(glfw.KeyEqual) == glfw.Press
	state.SlowDown = w.GetKey(glfw.KeyMinus) == glfw.Press
	state.Reset = w.GetKey(glfw.KeyR) == glfw.Press
	state.Quit = w.GetKey(glfw.KeyX) == glfw.Press || w.GetKey(glfw.KeyEscape) == glfw.Press

	return state
}

// ShouldClose reports whether the window has been asked to close.
func (gim *GLFWInputManager) ShouldClose() bool {
	return gim.window.ShouldClose()
}

// CameraController drives a gfx.Camera from polled input, with an idle
// auto-orbit mode that disengages as soon as the user touches a movement key.
type CameraController struct {
	Camera        *Camera
	MoveSpeed     float64
	RotationSpeed float64
	AutoOrbit     bool
	OrbitRadius   float64
	OrbitSpeed    float64
	OrbitAngle    float64
	OrbitCenter   Point
}

// NewCameraController creates a controller orbiting the world origin.
func NewCameraController(camera *Camera) *CameraController {
	return &CameraController{
		Camera:        camera,
		MoveSpeed:     2.0,
		RotationSpeed: 0.05,
		AutoOrbit:     true,
		OrbitRadius:   50.0,
		OrbitSpeed:    0.01,
	}
}

// Update applies one frame of input to the camera.
func (cc *CameraController) Update(input InputState) {
	if input.Forward || input.Backward || input.Left || input.Right ||
		input.Up || input.Down || input.RotLeft || input.RotRight ||
		input.RotUp || input.RotDown {
		cc.AutoOrbit = false
	}

	if cc.AutoOrbit {
		cc.OrbitAngle += cc.OrbitSpeed
		x := cc.OrbitCenter.X + cc.OrbitRadius*math.Cos(cc.OrbitAngle)
		y := cc.OrbitCenter.Y + 20*math.Sin(cc.OrbitAngle*0.5)
		z := cc.OrbitCenter.Z + cc.OrbitRadius*math.Sin(cc.OrbitAngle)
		cc.Camera.SetPosition(x, y, z)
		cc.Camera.LookAt(cc.OrbitCenter)
		return
	}

	if input.Forward {
		cc.Camera.MoveForward(cc.MoveSpeed)
	}
	if input.Backward {
		cc.Camera.MoveForward(-cc.MoveSpeed)
	}
	if input.Right {
		cc.Camera.MoveRight(cc.MoveSpeed)
	}
	if input.Left {
		cc.Camera.MoveRight(-cc.MoveSpeed)
	}
	if input.Up {
		cc.Camera.MoveUp(cc.MoveSpeed)
	}
	if input.Down {
		cc.Camera.MoveUp(-cc.MoveSpeed)
	}
	if input.RotLeft {
		cc.Camera.RotateYaw(-cc.RotationSpeed)
	}
	if input.RotRight {
		cc.Camera.RotateYaw(cc.RotationSpeed)
	}
	if input.RotUp {
		cc.Camera.RotatePitch(cc.RotationSpeed)
	}
	if input.RotDown {
		cc.Camera.RotatePitch(-cc.RotationSpeed)
	}

	if input.SpeedUp {
		cc.MoveSpeed += 0.5
	}
	if input.SlowDown && cc.MoveSpeed > 0.5 {
		cc.MoveSpeed -= 0.5
	}

	if input.Reset {
		cc.AutoOrbit = true
		cc.OrbitAngle = 0.0
		cc.MoveSpeed = 2.0
	}
}
