package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// stubShape is a kind-tagged shape with no geometry.
type stubShape struct {
	kind ShapeKind
}

func (s stubShape) Kind() ShapeKind       { return s.kind }
func (stubShape) Update(Pose)             {}
func (stubShape) Center() rl.Vector3      { return rl.Vector3{} }
func (stubShape) OuterRadius() float32    { return 1 }
func (stubShape) OuterRadiusSqr() float32 { return 1 }

func (stubShape) VerticesOnPlane(_, _ rl.Vector3, _ float32) []rl.Vector3 {
	return nil
}

func (stubShape) SupportPoints(rl.Vector3) (rl.Vector3, rl.Vector3) {
	return rl.Vector3{}, rl.Vector3{}
}

func posed(s Shape, position rl.Vector3) Shape {
	pose := IdentityPose()
	pose.Position = position
	s.Update(pose)
	return s
}

func sphereAt(radius float32, position rl.Vector3) *Sphere {
	s, err := NewSphere(radius)
	if err != nil {
		panic(err)
	}
	posed(s, position)
	return s
}

func cubeAt(size float32, position rl.Vector3) *ConvexMesh {
	c, err := NewCube(rl.Vector3{X: size, Y: size, Z: size})
	if err != nil {
		panic(err)
	}
	posed(c, position)
	return c
}
