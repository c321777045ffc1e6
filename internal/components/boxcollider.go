package components

import (
	"rigid3d/internal/engine"
	"rigid3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

func init() {
	engine.RegisterComponent("BoxCollider", func() engine.Serializable {
		b, _ := NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1})
		return b
	})
}

// BoxCollider is a MeshCollider built from a cube of the given full size.
type BoxCollider struct {
	MeshCollider
	size rl.Vector3
}

func NewBoxCollider(size rl.Vector3) (*BoxCollider, error) {
	shape, err := physics.NewCube(size)
	if err != nil {
		return nil, err
	}
	return &BoxCollider{
		MeshCollider: MeshCollider{ColliderBase: newColliderBase(), shape: shape},
		size:         size,
	}, nil
}

func (b *BoxCollider) Size() rl.Vector3 { return b.size }

func (b *BoxCollider) SetSize(size rl.Vector3) error {
	shape, err := physics.NewCube(size)
	if err != nil {
		return err
	}
	b.shape, b.size = shape, size
	b.UpdateData()
	return nil
}

func (b *BoxCollider) UnitInertia() mgl32.Mat3 {
	size := b.size
	if g := b.GetGameObject(); g != nil {
		size = rl.Vector3Multiply(size, g.WorldScale())
	}
	return physics.BoxInertia(size)
}

// GetAABB returns the world-space box around the current shape cache.
func (b *BoxCollider) GetAABB() physics.AABB {
	return physics.NewAABBFromShape(b.shape)
}

// TypeName implements engine.Serializable
func (b *BoxCollider) TypeName() string {
	return "BoxCollider"
}

// Serialize implements engine.Serializable
func (b *BoxCollider) Serialize() map[string]any {
	data := b.serializeBase("BoxCollider")
	data["size"] = engine.VectorProp(b.size)
	return data
}

// Deserialize implements engine.Serializable
func (b *BoxCollider) Deserialize(data map[string]any) error {
	if err := b.deserializeBase(data); err != nil {
		return err
	}
	return b.SetSize(engine.PropVector3(data, "size", b.size))
}
