package engine

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestNewGameObject(t *testing.T) {
	obj := NewGameObject("TestObject")

	if obj.Name != "TestObject" {
		t.Errorf("Expected name 'TestObject', got '%s'", obj.Name)
	}

	if obj.UID == 0 {
		t.Error("UID should not be 0")
	}

	if obj.components == nil {
		t.Error("components slice should be initialized")
	}
}

func TestGameObjectUniqueUIDs(t *testing.T) {
	obj1 := NewGameObject("First")
	obj2 := NewGameObject("Second")
	obj3 := NewGameObject("Third")

	if obj1.UID == obj2.UID {
		t.Error("GameObjects should have unique UIDs")
	}
	if obj2.UID == obj3.UID {
		t.Error("GameObjects should have unique UIDs")
	}
	if obj1.UID == obj3.UID {
		t.Error("GameObjects should have unique UIDs")
	}
}

func TestGameObjectHasTag(t *testing.T) {
	obj := NewGameObject("Test")
	obj.Tags = []string{"enemy", "ai", "dangerous"}

	if !obj.HasTag("enemy") {
		t.Error("HasTag should return true for existing tag")
	}

	if !obj.HasTag("ai") {
		t.Error("HasTag should return true for existing tag")
	}

	if obj.HasTag("player") {
		t.Error("HasTag should return false for non-existent tag")
	}

	// Test empty tags
	obj2 := NewGameObject("Test2")
	if obj2.HasTag("anything") {
		t.Error("HasTag should return false when Tags is nil/empty")
	}
}

func TestGameObjectParentChild(t *testing.T) {
	parent := NewGameObject("Parent")
	child := NewGameObject("Child")

	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("Child.Parent should be set")
	}

	if len(parent.Children) != 1 {
		t.Errorf("Expected 1 child, got %d", len(parent.Children))
	}

	if parent.Children[0] != child {
		t.Error("Child not added to parent's Children slice")
	}
}

func TestGameObjectRemoveChild(t *testing.T) {
	parent := NewGameObject("Parent")
	child1 := NewGameObject("Child1")
	child2 := NewGameObject("Child2")

	parent.AddChild(child1)
	parent.AddChild(child2)

	parent.RemoveChild(child1)

	if len(parent.Children) != 1 {
		t.Errorf("Expected 1 child after removal, got %d", len(parent.Children))
	}

	if parent.Children[0] != child2 {
		t.Error("Wrong child removed")
	}

	if child1.Parent != nil {
		t.Error("Removed child should have nil parent")
	}
}

func TestGameObjectAddComponent(t *testing.T) {
	obj := NewGameObject("Test")
	comp := &BaseComponent{}

	obj.AddComponent(comp)

	if len(obj.components) != 1 {
		t.Errorf("Expected 1 component, got %d", len(obj.components))
	}

	if comp.gameObject != obj {
		t.Error("Component.gameObject should be set")
	}
}

func TestGameObjectGetComponent(t *testing.T) {
	obj := NewGameObject("Test")
	comp := &BaseComponent{}

	obj.AddComponent(comp)

	found := GetComponent[*BaseComponent](obj)
	if found != comp {
		t.Error("GetComponent failed to find component")
	}
}

func TestGameObjectStartCalledOnce(t *testing.T) {
	obj := NewGameObject("Test")

	// First call should set started = true
	obj.Start()
	if !obj.started {
		t.Error("started flag should be true after Start()")
	}

	// Second call should be a no-op (no panic, no re-initialization)
	obj.Start() // Should not panic or cause issues
}

type countingComponent struct {
	BaseComponent
	updates   int
	destroyed int
}

func (c *countingComponent) Update(deltaTime float32) { c.updates++ }

func (c *countingComponent) OnDestroy() { c.destroyed++ }

func TestGameObjectUpdateSkipsDisabled(t *testing.T) {
	obj := NewGameObject("Test")
	comp := &countingComponent{}
	obj.AddComponent(comp)

	obj.Update(0.1)
	comp.SetEnabled(false)
	obj.Update(0.1)

	if comp.updates != 1 {
		t.Errorf("Expected 1 update, got %d", comp.updates)
	}
	if ActiveAndEnabled(comp) {
		t.Error("Disabled component reported active")
	}
}

func TestGameObjectActiveInHierarchy(t *testing.T) {
	parent := NewGameObject("Parent")
	child := NewGameObject("Child")
	parent.AddChild(child)

	if !child.ActiveInHierarchy() {
		t.Error("Child should be active")
	}

	parent.Active = false
	if child.ActiveInHierarchy() {
		t.Error("Child of inactive parent should be inactive")
	}
}

func TestGameObjectRemoveComponent(t *testing.T) {
	obj := NewGameObject("Test")
	comp := &countingComponent{}
	obj.AddComponent(comp)

	obj.RemoveComponent(comp)

	if len(obj.Components()) != 0 {
		t.Errorf("Expected 0 components, got %d", len(obj.Components()))
	}
	if comp.destroyed != 1 {
		t.Errorf("Expected OnDestroy once, got %d", comp.destroyed)
	}
}

func TestGameObjectGetComponents(t *testing.T) {
	obj := NewGameObject("Test")
	a := &countingComponent{}
	b := &countingComponent{}
	obj.AddComponent(a)
	obj.AddComponent(&BaseComponent{})
	obj.AddComponent(b)

	found := GetComponents[*countingComponent](obj)
	if len(found) != 2 || found[0] != a || found[1] != b {
		t.Errorf("GetComponents returned %v", found)
	}
}

func nearly(a, b rl.Vector3) bool {
	return rl.Vector3Length(rl.Vector3Subtract(a, b)) < 1e-4
}

func TestGameObjectWorldTransform(t *testing.T) {
	parent := NewGameObject("Parent")
	parent.Transform.Position = rl.Vector3{X: 10}
	parent.Transform.Rotation = rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, math.Pi/2)
	parent.Transform.Scale = rl.Vector3{X: 2, Y: 2, Z: 2}

	child := NewGameObject("Child")
	child.Transform.Position = rl.Vector3{X: 1}
	parent.AddChild(child)

	// (1,0,0) scaled by 2 then turned 90 degrees about Y lands on -Z.
	want := rl.Vector3{X: 10, Z: -2}
	if got := child.WorldPosition(); !nearly(got, want) {
		t.Errorf("WorldPosition = %v, want %v", got, want)
	}
	if got := child.WorldScale(); got != (rl.Vector3{X: 2, Y: 2, Z: 2}) {
		t.Errorf("WorldScale = %v", got)
	}

	m := child.ModelMatrix()
	if got := rl.Vector3Transform(rl.Vector3{}, m); !nearly(got, want) {
		t.Errorf("ModelMatrix origin = %v, want %v", got, want)
	}
}

func TestGameObjectSetWorldPositionThroughParent(t *testing.T) {
	parent := NewGameObject("Parent")
	parent.Transform.Position = rl.Vector3{Y: 5}
	parent.Transform.Rotation = rl.QuaternionFromAxisAngle(rl.Vector3{Z: 1}, math.Pi/3)
	parent.Transform.Scale = rl.Vector3{X: 2, Y: 1, Z: 4}

	child := NewGameObject("Child")
	parent.AddChild(child)

	target := rl.Vector3{X: 3, Y: -1, Z: 2}
	child.SetWorldPosition(target)
	if got := child.WorldPosition(); !nearly(got, target) {
		t.Errorf("WorldPosition = %v, want %v", got, target)
	}

	q := rl.QuaternionFromAxisAngle(rl.Vector3{X: 1}, 0.7)
	child.SetWorldRotation(q)
	got := child.WorldRotation()
	dot := got.X*q.X + got.Y*q.Y + got.Z*q.Z + got.W*q.W
	if math.Abs(float64(dot)) < 0.9999 {
		t.Errorf("WorldRotation = %v, want %v", got, q)
	}
}

func TestTransformEulerRoundTrip(t *testing.T) {
	var tr Transform
	tr.SetEuler(rl.Vector3{X: 10, Y: 20, Z: 30})
	if got := tr.Euler(); !nearly(got, rl.Vector3{X: 10, Y: 20, Z: 30}) {
		t.Errorf("Euler = %v", got)
	}
}
