package physics

import (
	"fmt"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sphere is a ball of a local radius, scaled by the largest pose scale axis.
type Sphere struct {
	radius float32

	center      rl.Vector3
	worldRadius float32
}

func NewSphere(radius float32) (*Sphere, error) {
	s := &Sphere{}
	if err := s.SetRadius(radius); err != nil {
		return nil, err
	}
	s.Update(IdentityPose())
	return s, nil
}

func (s *Sphere) Kind() ShapeKind { return ShapeSphere }

func (s *Sphere) Radius() float32 { return s.radius }

// SetRadius changes the local radius. The world radius follows on the next Update.
func (s *Sphere) SetRadius(radius float32) error {
	if !(radius > 0) {
		return fmt.Errorf("%w: sphere radius %v", ErrInvalidShape, radius)
	}
	s.radius = radius
	return nil
}

func (s *Sphere) Update(pose Pose) {
	scale := math32.Max(math32.Abs(pose.Scale.X), math32.Max(math32.Abs(pose.Scale.Y), math32.Abs(pose.Scale.Z)))
	s.center = pose.Position
	s.worldRadius = s.radius * scale
}

func (s *Sphere) Center() rl.Vector3      { return s.center }
func (s *Sphere) OuterRadius() float32    { return s.worldRadius }
func (s *Sphere) OuterRadiusSqr() float32 { return s.worldRadius * s.worldRadius }

func (s *Sphere) SupportPoints(direction rl.Vector3) (nearest, farthest rl.Vector3) {
	d := normalizeOr(direction, rl.Vector3{X: 1})
	offset := rl.Vector3Scale(d, s.worldRadius)
	return rl.Vector3Subtract(s.center, offset), rl.Vector3Add(s.center, offset)
}

// VerticesOnPlane returns the silhouette point nearest the plane when it
// lies within epsilon of it.
func (s *Sphere) VerticesOnPlane(point, normal rl.Vector3, epsilon float32) []rl.Vector3 {
	dist := dot(rl.Vector3Subtract(s.center, point), normal)
	var p rl.Vector3
	if dist >= 0 {
		p = rl.Vector3Subtract(s.center, rl.Vector3Scale(normal, s.worldRadius))
	} else {
		p = rl.Vector3Add(s.center, rl.Vector3Scale(normal, s.worldRadius))
	}
	d := dot(rl.Vector3Subtract(p, point), normal)
	if d*d > epsilon*epsilon {
		return nil
	}
	return []rl.Vector3{p}
}
