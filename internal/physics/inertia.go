package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// SphereInertia is the unit-mass inertia tensor of a solid ball.
func SphereInertia(radius float32) mgl32.Mat3 {
	return mgl32.Ident3().Mul(0.4 * radius * radius)
}

// BoxInertia is the unit-mass inertia tensor of a solid box of full size s.
func BoxInertia(s rl.Vector3) mgl32.Mat3 {
	x, y, z := s.X*s.X, s.Y*s.Y, s.Z*s.Z
	return mgl32.Diag3(mgl32.Vec3{y + z, x + z, x + y}).Mul(1.0 / 12)
}

// ShiftInertia moves a unit-mass tensor from its center to a point at
// offset, by the parallel-axis theorem.
func ShiftInertia(inertia mgl32.Mat3, offset rl.Vector3) mgl32.Mat3 {
	d := mgl32.Vec3{offset.X, offset.Y, offset.Z}
	outer := mgl32.Mat3FromCols(d.Mul(d[0]), d.Mul(d[1]), d.Mul(d[2]))
	return inertia.Add(mgl32.Ident3().Mul(d.Dot(d))).Sub(outer)
}

// RotationMatrix returns q as a 3x3 rotation matrix.
func RotationMatrix(q rl.Quaternion) mgl32.Mat3 {
	col := func(axis rl.Vector3) mgl32.Vec3 {
		v := rl.Vector3RotateByQuaternion(axis, q)
		return mgl32.Vec3{v.X, v.Y, v.Z}
	}
	return mgl32.Mat3FromCols(col(rl.Vector3{X: 1}), col(rl.Vector3{Y: 1}), col(rl.Vector3{Z: 1}))
}

// InverseWorldInertia returns R·I⁻¹·Rᵀ with the rows and columns of frozen
// world axes cleared.
func InverseWorldInertia(local mgl32.Mat3, rotation rl.Quaternion, frozen [3]bool) mgl32.Mat3 {
	if frozen[0] && frozen[1] && frozen[2] {
		return mgl32.Mat3{}
	}
	r := RotationMatrix(rotation)
	inv := r.Mul3(local.Inv()).Mul3(r.Transpose())
	for axis, f := range frozen {
		if !f {
			continue
		}
		for k := 0; k < 3; k++ {
			inv.Set(axis, k, 0)
			inv.Set(k, axis, 0)
		}
	}
	return inv
}

func ToVec3(v rl.Vector3) mgl32.Vec3 { return mgl32.Vec3{v.X, v.Y, v.Z} }

func FromVec3(v mgl32.Vec3) rl.Vector3 { return rl.Vector3{X: v[0], Y: v[1], Z: v[2]} }
