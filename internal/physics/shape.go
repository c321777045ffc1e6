package physics

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ShapeKind tags the concrete geometry behind a Shape.
type ShapeKind int

const (
	ShapeSphere ShapeKind = iota
	ShapeMesh
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSphere:
		return "sphere"
	case ShapeMesh:
		return "mesh"
	}
	return fmt.Sprintf("ShapeKind(%d)", int(k))
}

// Pose places a shape in world space. Position is the shape's own center,
// already offset from its owner.
type Pose struct {
	Position rl.Vector3
	Rotation rl.Quaternion
	Scale    rl.Vector3
}

// IdentityPose returns a pose at the origin with unit scale.
func IdentityPose() Pose {
	return Pose{
		Rotation: rl.QuaternionIdentity(),
		Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
	}
}

// Matrix returns the scale, rotate, translate model matrix for the pose.
func (p Pose) Matrix() rl.Matrix {
	scale := rl.MatrixScale(p.Scale.X, p.Scale.Y, p.Scale.Z)
	rot := rl.QuaternionToMatrix(p.Rotation)
	trans := rl.MatrixTranslate(p.Position.X, p.Position.Y, p.Position.Z)
	return rl.MatrixMultiply(rl.MatrixMultiply(scale, rot), trans)
}

// Shape is a convex collision volume with a cached world-space form.
// All queries read the cache built by the last Update.
type Shape interface {
	Kind() ShapeKind
	Update(pose Pose)

	Center() rl.Vector3
	OuterRadius() float32
	OuterRadiusSqr() float32

	// SupportPoints returns the points with the smallest and largest
	// projection on direction.
	SupportPoints(direction rl.Vector3) (nearest, farthest rl.Vector3)

	// VerticesOnPlane returns the vertices whose squared distance to the
	// plane through point with the given unit normal is at most epsilon².
	VerticesOnPlane(point, normal rl.Vector3, epsilon float32) []rl.Vector3
}

// Contact is the result of an overlapping narrow-phase query.
// Exit moves the first shape out of the second. Axis is unit length and
// points from the first shape toward the second.
type Contact struct {
	Exit     rl.Vector3
	Axis     rl.Vector3
	Endpoint rl.Vector3
	Depth    float32
}

func newContact(a Shape, axis rl.Vector3, depth float32) Contact {
	_, far := a.SupportPoints(axis)
	return Contact{
		Exit:     rl.Vector3Scale(axis, -depth),
		Axis:     axis,
		Endpoint: far,
		Depth:    depth,
	}
}

// Project returns the interval covered by s along axis.
func Project(s Shape, axis rl.Vector3) (min, max float32) {
	near, far := s.SupportPoints(axis)
	return rl.Vector3DotProduct(near, axis), rl.Vector3DotProduct(far, axis)
}

// BoundsOverlap reports whether the outer bounding spheres of a and b intersect.
func BoundsOverlap(a, b Shape) bool {
	r := a.OuterRadius() + b.OuterRadius()
	return lengthSqr(rl.Vector3Subtract(a.Center(), b.Center())) < r*r
}
