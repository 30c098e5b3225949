package gfx

// Camera represents the viewing frustum and projection parameters
type Camera struct {
	Transform *Transform // Unified transform system
	Near      float64    // Near clipping plane
	Far       float64    // Far clipping plane
}

// NewCamera creates a new camera with default settings
func NewCamera() *Camera {
	transform := NewTransformAt(0, 0, DEFAULT_CAMERA_Z)
	return &Camera{
		Transform: transform,
		Near:      0.1,
		Far:       100000.0,
	}
}

// NewCameraAt creates a camera at a specific position
func NewCameraAt(x, y, z float64) *Camera {
	cam := NewCamera()
	cam.Transform.SetPosition(x, y, z)
	return cam
}

func (cam *Camera) SetPosition(x, y, z float64) {
	cam.Transform.SetPosition(x, y, z)
}

// LookAt makes the camera look at a target position
func (cam *Camera) LookAt(target Point) {
	cam.Transform.LookAt(target)
}

// MoveForward moves the camera forward in its local space
func (cam *Camera) MoveForward(distance float64) {
	forward := cam.Transform.GetForwardVector()
	cam.Transform.Translate(forward.X*distance, forward.Y*distance, forward.Z*distance)
}

// MoveRight moves the camera right in its local space
func (cam *Camera) MoveRight(distance float64) {
	right := cam.Transform.GetRightVector()
	cam.Transform.Translate(right.X*distance, right.Y*distance, right.Z*distance)
}

// MoveUp moves the camera up in WORLD space (not local)
func (cam *Camera) MoveUp(distance float64) {
	// World-space up (Y axis)
	cam.Transform.Translate(0, distance, 0)
}

// RotateYaw rotates the camera around the WORLD Y axis (left/right turn)
func (cam *Camera) RotateYaw(angle float64) {
	// Rotate around world Y axis
	worldYAxis := Point{X: 0, Y: 1, Z: 0}
	cam.Transform.RotateAxisAngle(worldYAxis, angle)
}

// RotatePitch rotates the camera around its LOCAL X axis (up/down look)
func (cam *Camera) RotatePitch(angle float64) {
	// Rotate around local right vector
	right := cam.Transform.GetRightVector()
	cam.Transform.RotateAxisAngle(right, angle)
}
