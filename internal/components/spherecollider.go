package components

import (
	"rigid3d/internal/engine"
	"rigid3d/internal/physics"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func init() {
	engine.RegisterComponent("SphereCollider", func() engine.Serializable {
		c, _ := NewSphereCollider(0.5)
		return c
	})
}

type SphereCollider struct {
	ColliderBase
	shape *physics.Sphere
}

// NewSphereCollider fails with physics.ErrInvalidShape unless radius > 0.
func NewSphereCollider(radius float32) (*SphereCollider, error) {
	shape, err := physics.NewSphere(radius)
	if err != nil {
		return nil, err
	}
	return &SphereCollider{ColliderBase: newColliderBase(), shape: shape}, nil
}

func (s *SphereCollider) Radius() float32 { return s.shape.Radius() }

func (s *SphereCollider) SetRadius(radius float32) error {
	if err := s.shape.SetRadius(radius); err != nil {
		return err
	}
	s.UpdateData()
	return nil
}

func (s *SphereCollider) Shape() physics.Shape { return s.shape }

func (s *SphereCollider) UpdateData() { s.shape.Update(s.Pose()) }

func (s *SphereCollider) UnitInertia() mgl32.Mat3 {
	r := s.shape.Radius()
	if g := s.GetGameObject(); g != nil {
		sc := g.WorldScale()
		r *= math32.Max(math32.Abs(sc.X), math32.Max(math32.Abs(sc.Y), math32.Abs(sc.Z)))
	}
	return physics.SphereInertia(r)
}

// TypeName implements engine.Serializable
func (s *SphereCollider) TypeName() string {
	return "SphereCollider"
}

// Serialize implements engine.Serializable
func (s *SphereCollider) Serialize() map[string]any {
	data := s.serializeBase("SphereCollider")
	data["radius"] = s.shape.Radius()
	return data
}

// Deserialize implements engine.Serializable
func (s *SphereCollider) Deserialize(data map[string]any) error {
	if err := s.deserializeBase(data); err != nil {
		return err
	}
	return s.shape.SetRadius(engine.PropFloat(data, "radius", s.shape.Radius()))
}
