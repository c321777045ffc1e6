package engine

import (
	"fmt"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Serializable is a component that can be written to and read from a scene
// file. Serialize returns plain values (numbers, strings, bools, slices
// and maps) that any of the scene codecs can encode.
type Serializable interface {
	Component
	TypeName() string
	Serialize() map[string]any
	Deserialize(data map[string]any) error
}

// ComponentFactory creates a zero-configured component for Deserialize.
type ComponentFactory func() Serializable

var componentRegistry = map[string]ComponentFactory{}

// RegisterComponent registers a named component type. It panics if the name
// is already taken; registrations happen from init functions.
func RegisterComponent(name string, factory ComponentFactory) {
	if _, exists := componentRegistry[name]; exists {
		panic(fmt.Sprintf("component %q already registered", name))
	}
	componentRegistry[name] = factory
}

// CreateComponent builds the component registered under name and fills it
// from data.
func CreateComponent(name string, data map[string]any) (Serializable, error) {
	factory, ok := componentRegistry[name]
	if !ok {
		return nil, fmt.Errorf("engine: unknown component type %q", name)
	}
	c := factory()
	if err := c.Deserialize(data); err != nil {
		return nil, fmt.Errorf("engine: %s: %w", name, err)
	}
	return c, nil
}

// GetRegisteredComponents returns the registered names, sorted.
func GetRegisteredComponents() []string {
	names := make([]string, 0, len(componentRegistry))
	for name := range componentRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// PropFloat reads a number from decoded scene data. Decoders differ in the
// numeric types they produce, so every Go number type is accepted.
func PropFloat(data map[string]any, key string, fallback float32) float32 {
	switch v := data[key].(type) {
	case float64:
		return float32(v)
	case float32:
		return v
	case int:
		return float32(v)
	case int64:
		return float32(v)
	case uint64:
		return float32(v)
	}
	return fallback
}

func PropBool(data map[string]any, key string, fallback bool) bool {
	if v, ok := data[key].(bool); ok {
		return v
	}
	return fallback
}

func PropString(data map[string]any, key string, fallback string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return fallback
}

// PropVector3 reads a three-element list.
func PropVector3(data map[string]any, key string, fallback rl.Vector3) rl.Vector3 {
	list, ok := data[key].([]any)
	if !ok || len(list) != 3 {
		return fallback
	}
	elem := map[string]any{"x": list[0], "y": list[1], "z": list[2]}
	return rl.Vector3{
		X: PropFloat(elem, "x", fallback.X),
		Y: PropFloat(elem, "y", fallback.Y),
		Z: PropFloat(elem, "z", fallback.Z),
	}
}

// VectorProp is the inverse of PropVector3.
func VectorProp(v rl.Vector3) []any {
	return []any{v.X, v.Y, v.Z}
}
