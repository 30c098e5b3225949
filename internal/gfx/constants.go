package gfx

// Camera and viewer constants.
const (
	DEFAULT_CAMERA_Z = -200.0
)
