package gfx

import "math"

// Matrix4x4 represents a 4x4 transformation matrix
type Matrix4x4 struct {
	M [16]float64 // Row-major order: element (row, col) is M[row*4+col]
}

// IdentityMatrix returns an identity matrix
func IdentityMatrix() Matrix4x4 {
	return Matrix4x4{M: [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// Multiply multiplies two matrices
func (m *Matrix4x4) Multiply(other Matrix4x4) Matrix4x4 {
	var result Matrix4x4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += m.M[i*4+k] * other.M[k*4+j]
			}
			// Round to prevent floating point drift
			if math.Abs(sum) < 1e-10 {
				sum = 0.0
			}
			result.M[i*4+j] = sum
		}
	}
	return result
}

// ComposeMatrix creates a transformation matrix from position, rotation, scale
func ComposeMatrix(pos Point, rot Quaternion, scale Point) Matrix4x4 {
	// Convert quaternion to rotation matrix
	rotMatrix := rot.ToMatrix()

	// Apply scale
	var result Matrix4x4
	result.M[0] = rotMatrix.M[0] * scale.X
	result.M[1] = rotMatrix.M[1] * scale.X
	result.M[2] = rotMatrix.M[2] * scale.X
	result.M[3] = pos.X

	result.M[4] = rotMatrix.M[4] * scale.Y
	result.M[5] = rotMatrix.M[5] * scale.Y
	result.M[6] = rotMatrix.M[6] * scale.Y
	result.M[7] = pos.Y

	result.M[8] = rotMatrix.M[8] * scale.Z
	result.M[9] = rotMatrix.M[9] * scale.Z
	result.M[10] = rotMatrix.M[10] * scale.Z
	result.M[11] = pos.Z

	result.M[12] = 0
	result.M[13] = 0
	result.M[14] = 0
	result.M[15] = 1

	return result
}

// Invert returns the inverse matrix
func (m *Matrix4x4) Invert() Matrix4x4 {
	// Using adjugate method - full implementation
	var inv Matrix4x4
	inv.M[0] = m.M[5]*m.M[10]*m.M[15] - m.M[5]*m.M[11]*m.M[14] - m.M[9]*m.M[6]*m.M[15] +
		m.M[9]*m.M[7]*m.M[14] + m.M[13]*m.M[6]*m.M[11] - m.M[13]*m.M[7]*m.M[10]

	inv.M[4] = -m.M[4]*m.M[10]*m.M[15] + m.M[4]*m.M[11]*m.M[14] + m.M[8]*m.M[6]*m.M[15] -
		m.M[8]*m.M[7]*m.M[14] - m.M[12]*m.M[6]*m.M[11] + m.M[12]*m.M[7]*m.M[10]

	inv.M[8] = m.M[4]*m.M[9]*m.M[15] - m.M[4]*m.M[11]*m.M[13] - m.M[8]*m.M[5]*m.M[15] +
		m.M[8]*m.M[7]*m.M[13] + m.M[12]*m.M[5]*m.M[11] - m.M[12]*m.M[7]*m.M[9]

	inv.M[12] = -m.M[4]*m.M[9]*m.M[14] + m.M[4]*m.M[10]*m.M[13] + m.M[8]*m.M[5]*m.M[14] -
		m.M[8]*m.M[6]*m.M[13] - m.M[12]*m.M[5]*m.M[10] + m.M[12]*m.M[6]*m.M[9]

	inv.M[1] = -m.M[1]*m.M[10]*m.M[15] + m.M[1]*m.M[11]*m.M[14] + m.M[9]*m.M[2]*m.M[15] -
		m.M[9]*m.M[3]*m.M[14] - m.M[13]*m.M[2]*m.M[11] + m.M[13]*m.M[3]*m.M[10]

	inv.M[5] = m.M[0]*m.M[10]*m.M[15] - m.M[0]*m.M[11]*m.M[14] - m.M[8]*m.M[2]*m.M[15] +
		m.M[8]*m.M[3]*m.M[14] + m.M[12]*m.M[2]*m.M[11] - m.M[12]*m.M[3]*m.M[10]

	inv.M[9] = -m.M[0]*m.M[9]*m.M[15] + m.M[0]*m.M[11]*m.M[13] + m.M[8]*m.M[1]*m.M[15] -
		m.M[8]*m.M[3]*m.M[13] - m.M[12]*m.M[1]*m.M[11] + m.M[12]*m.M[3]*m.M[9]

	inv.M[13] = m.M[0]*m.M[9]*m.M[14] - m.M[0]*m.M[10]*m.M[13] - m.M[8]*m.M[1]*m.M[14] +
		m.M[8]*m.M[2]*m.M[13] + m.M[12]*m.M[1]*m.M[10] - m.M[12]*m.M[2]*m.M[9]

	inv.M[2] = m.M[1]*m.M[6]*m.M[15] - m.M[1]*m.M[7]*m.M[14] - m.M[5]*m.M[2]*m.M[15] +
		m.M[5]*m.M[3]*m.M[14] + m.M[13]*m.M[2]*m.M[7] - m.M[13]*m.M[3]*m.M[6]

	inv.M[6] = -m.M[0]*m.M[6]*m.M[15] + m.M[0]*m.M[7]*m.M[14] + m.M[4]*m.M[2]*m.M[15] -
		m.M[4]*m.M[3]*m.M[14] - m.M[12]*m.M[2]*m.M[7] + m.M[12]*m.M[3]*m.M[6]

	inv.M[10] = m.M[0]*m.M[5]*m.M[15] - m.M[0]*m.M[7]*m.M[13] - m.M[4]*m.M[1]*m.M[15] +
		m.M[4]*m.M[3]*m.M[13] + m.M[12]*m.M[1]*m.M[7] - m.M[12]*m.M[3]*m.M[5]

	inv.M[14] = -m.M[0]*m.M[5]*m.M[14] + m.M[0]*m.M[6]*m.M[13] + m.M[4]*m.M[1]*m.M[14] -
		m.M[4]*m.M[2]*m.M[13] - m.M[12]*m.M[1]*m.M[6] + m.M[12]*m.M[2]*m.M[5]

	inv.M[3] = -m.M[1]*m.M[6]*m.M[11] + m.M[1]*m.M[7]*m.M[10] + m.M[5]*m.M[2]*m.M[11] -
		m.M[5]*m.M[3]*m.M[10] - m.M[9]*m.M[2]*m.M[7] + m.M[9]*m.M[3]*m.M[6]

	inv.M[7] = m.M[0]*m.M[6]*m.M[11] - m.M[0]*m.M[7]*m.M[10] - m.M[4]*m.M[2]*m.M[11] +
		m.M[4]*m.M[3]*m.M[10] + m.M[8]*m.M[2]*m.M[7] - m.M[8]*m.M[3]*m.M[6]

	inv.M[11] = -m.M[0]*m.M[5]*m.M[11] + m.M[0]*m.M[7]*m.M[9] + m.M[4]*m.M[1]*m.M[11] -
		m.M[4]*m.M[3]*m.M[9] - m.M[8]*m.M[1]*m.M[7] + m.M[8]*m.M[3]*m.M[5]

	inv.M[15] = m.M[0]*m.M[5]*m.M[10] - m.M[0]*m.M[6]*m.M[9] - m.M[4]*m.M[1]*m.M[10] +
		m.M[4]*m.M[2]*m.M[9] + m.M[8]*m.M[1]*m.M[6] - m.M[8]*m.M[2]*m.M[5]

	det := m.M[0]*inv.M[0] + m.M[1]*inv.M[4] + m.M[2]*inv.M[8] + m.M[3]*inv.M[12]

	if math.Abs(det) < 1e-10 {
		return IdentityMatrix()
	}

	invDet := 1.0 / det
	for i := 0; i < 16; i++ {
		inv.M[i] *= invDet
	}

	return inv
}
