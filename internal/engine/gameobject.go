package engine

import (
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var nextUID atomic.Uint64

// Transform is expressed in the parent's frame.
type Transform struct {
	Position rl.Vector3
	Rotation rl.Quaternion
	Scale    rl.Vector3
}

// SetEuler sets Rotation from pitch/yaw/roll in degrees.
func (t *Transform) SetEuler(degrees rl.Vector3) {
	t.Rotation = rl.QuaternionFromEuler(degrees.X*rl.Deg2rad, degrees.Y*rl.Deg2rad, degrees.Z*rl.Deg2rad)
}

// Euler returns Rotation as pitch/yaw/roll in degrees.
func (t Transform) Euler() rl.Vector3 {
	return rl.Vector3Scale(rl.QuaternionToEuler(t.Rotation), rl.Rad2deg)
}

type GameObject struct {
	UID        uint64
	Name       string
	Tags       []string
	Transform  Transform
	Active     bool
	Scene      *Scene
	Parent     *GameObject
	Children   []*GameObject
	components []Component
	started    bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:    nextUID.Add(1),
		Name:   name,
		Active: true,
		Transform: Transform{
			Rotation: rl.QuaternionIdentity(),
			Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		components: make([]Component, 0),
		Children:   make([]*GameObject, 0),
	}
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
	if g.started {
		c.Start()
	}
}

// RemoveComponent detaches c and lets it release what it holds.
func (g *GameObject) RemoveComponent(c Component) {
	for i, existing := range g.components {
		if existing == c {
			g.components = append(g.components[:i], g.components[i+1:]...)
			c.OnDestroy()
			return
		}
	}
}

// GetComponent returns the first component assignable to T
func GetComponent[T Component](g *GameObject) T {
	var zero T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

// GetComponents returns every component assignable to T, in insertion order.
func GetComponents[T any](g *GameObject) []T {
	var out []T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	for _, c := range g.components {
		c.Start()
	}
	g.started = true
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.ActiveInHierarchy() {
		return
	}
	for _, c := range g.components {
		if c.Enabled() {
			c.Update(deltaTime)
		}
	}
}

func (g *GameObject) Components() []Component {
	return g.components
}

// ActiveInHierarchy reports whether g and all of its ancestors are active.
func (g *GameObject) ActiveInHierarchy() bool {
	for o := g; o != nil; o = o.Parent {
		if !o.Active {
			return false
		}
	}
	return true
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (g *GameObject) AddChild(child *GameObject) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = g
	g.Children = append(g.Children, child)
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

func (g *GameObject) WorldPosition() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Position
	}
	parentPos := g.Parent.WorldPosition()
	parentRot := g.Parent.WorldRotation()
	parentScale := g.Parent.WorldScale()

	// Scale local position by parent's world scale, then rotate into the world
	scaled := rl.Vector3Multiply(g.Transform.Position, parentScale)
	rotated := rl.Vector3RotateByQuaternion(scaled, parentRot)
	return rl.Vector3Add(parentPos, rotated)
}

func (g *GameObject) WorldRotation() rl.Quaternion {
	if g.Parent == nil {
		return g.Transform.Rotation
	}
	return rl.QuaternionNormalize(rl.QuaternionMultiply(g.Parent.WorldRotation(), g.Transform.Rotation))
}

func (g *GameObject) WorldScale() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Scale
	}
	return rl.Vector3Multiply(g.Parent.WorldScale(), g.Transform.Scale)
}

// SetWorldPosition moves g so that its world position becomes p.
func (g *GameObject) SetWorldPosition(p rl.Vector3) {
	if g.Parent == nil {
		g.Transform.Position = p
		return
	}
	local := rl.Vector3Subtract(p, g.Parent.WorldPosition())
	local = rl.Vector3RotateByQuaternion(local, rl.QuaternionInvert(g.Parent.WorldRotation()))
	s := g.Parent.WorldScale()
	g.Transform.Position = rl.Vector3{X: divOrZero(local.X, s.X), Y: divOrZero(local.Y, s.Y), Z: divOrZero(local.Z, s.Z)}
}

// SetWorldRotation turns g so that its world rotation becomes q.
func (g *GameObject) SetWorldRotation(q rl.Quaternion) {
	q = rl.QuaternionNormalize(q)
	if g.Parent == nil {
		g.Transform.Rotation = q
		return
	}
	g.Transform.Rotation = rl.QuaternionNormalize(rl.QuaternionMultiply(rl.QuaternionInvert(g.Parent.WorldRotation()), q))
}

// ModelMatrix maps local coordinates to world coordinates.
func (g *GameObject) ModelMatrix() rl.Matrix {
	p, q, s := g.WorldPosition(), g.WorldRotation(), g.WorldScale()
	return rl.MatrixMultiply(
		rl.MatrixMultiply(rl.MatrixScale(s.X, s.Y, s.Z), rl.QuaternionToMatrix(q)),
		rl.MatrixTranslate(p.X, p.Y, p.Z),
	)
}

func divOrZero(a, b float32) float32 {
	if b == 0 {
		return 0
	}
	return a / b
}
