package components

import (
	"fmt"

	"rigid3d/internal/engine"
	"rigid3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

func init() {
	engine.RegisterComponent("MeshCollider", func() engine.Serializable {
		return &MeshCollider{ColliderBase: newColliderBase()}
	})
}

// MeshCollider wraps an arbitrary convex mesh. The hull is not checked for
// convexity; concave input gives wrong contacts.
type MeshCollider struct {
	ColliderBase
	shape *physics.ConvexMesh
}

func NewMeshCollider(vertices []rl.Vector3, faces [][]int) (*MeshCollider, error) {
	shape, err := physics.NewConvexMesh(vertices, faces)
	if err != nil {
		return nil, err
	}
	return &MeshCollider{ColliderBase: newColliderBase(), shape: shape}, nil
}

func (m *MeshCollider) Mesh() *physics.ConvexMesh { return m.shape }

func (m *MeshCollider) Shape() physics.Shape { return m.shape }

func (m *MeshCollider) UpdateData() { m.shape.Update(m.Pose()) }

// UnitInertia approximates the hull by its scaled local bounding box.
func (m *MeshCollider) UnitInertia() mgl32.Mat3 {
	size := m.shape.LocalBounds().Size()
	if g := m.GetGameObject(); g != nil {
		size = rl.Vector3Multiply(size, g.WorldScale())
	}
	return physics.BoxInertia(size)
}

// TypeName implements engine.Serializable
func (m *MeshCollider) TypeName() string {
	return "MeshCollider"
}

// Serialize implements engine.Serializable
func (m *MeshCollider) Serialize() map[string]any {
	data := m.serializeBase("MeshCollider")
	vertices := make([]any, 0, len(m.shape.LocalVertices()))
	for _, v := range m.shape.LocalVertices() {
		vertices = append(vertices, engine.VectorProp(v))
	}
	faces := make([]any, 0, len(m.shape.Faces()))
	for _, f := range m.shape.Faces() {
		face := make([]any, len(f))
		for i, idx := range f {
			face[i] = idx
		}
		faces = append(faces, face)
	}
	data["vertices"] = vertices
	data["faces"] = faces
	return data
}

// Deserialize implements engine.Serializable
func (m *MeshCollider) Deserialize(data map[string]any) error {
	if err := m.deserializeBase(data); err != nil {
		return err
	}
	rawVerts, _ := data["vertices"].([]any)
	rawFaces, _ := data["faces"].([]any)
	vertices := make([]rl.Vector3, 0, len(rawVerts))
	for i, raw := range rawVerts {
		v, ok := vectorFromList(raw)
		if !ok {
			return fmt.Errorf("%w: vertex %d is not a 3-element list", physics.ErrInvalidShape, i)
		}
		vertices = append(vertices, v)
	}
	faces := make([][]int, 0, len(rawFaces))
	for i, raw := range rawFaces {
		list, ok := raw.([]any)
		if !ok {
			return fmt.Errorf("%w: face %d is not a list", physics.ErrInvalidShape, i)
		}
		face := make([]int, len(list))
		for j, idx := range list {
			face[j] = int(engine.PropFloat(map[string]any{"i": idx}, "i", -1))
		}
		faces = append(faces, face)
	}
	shape, err := physics.NewConvexMesh(vertices, faces)
	if err != nil {
		return err
	}
	m.shape = shape
	return nil
}

func vectorFromList(raw any) (rl.Vector3, bool) {
	list, ok := raw.([]any)
	if !ok || len(list) != 3 {
		return rl.Vector3{}, false
	}
	return engine.PropVector3(map[string]any{"v": list}, "v", rl.Vector3{}), true
}
