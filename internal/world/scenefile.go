package world

import (
	"fmt"
	"os"

	"rigid3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// --- YAML types ---

type SceneFile struct {
	Name    string      `yaml:"name"`
	Objects []ObjectDef `yaml:"objects"`
}

type ObjectDef struct {
	Name     string     `yaml:"name"`
	Tags     []string   `yaml:"tags,omitempty"`
	Parent   string     `yaml:"parent,omitempty"`
	Inactive bool       `yaml:"inactive,omitempty"`
	Position [3]float32 `yaml:"position"`
	Rotation [3]float32 `yaml:"rotation"` // Euler degrees
	Scale    [3]float32 `yaml:"scale"`
	// Each component is a map with a "type" key naming a registered
	// component; the other keys go to its Deserialize.
	Components []map[string]any `yaml:"components,omitempty"`
}

// --- Loading ---

// LoadScene reads a YAML scene file. Parents are referenced by name and
// may appear later in the file.
func LoadScene(path string) (*engine.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	var sf SceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return buildScene(sf)
}

func buildScene(sf SceneFile) (*engine.Scene, error) {
	name := sf.Name
	if name == "" {
		name = "Main"
	}
	scene := engine.NewScene(name)

	objects := make([]*engine.GameObject, len(sf.Objects))
	for i, def := range sf.Objects {
		g := engine.NewGameObject(def.Name)
		g.Tags = def.Tags
		g.Active = !def.Inactive
		g.Transform.Position = rl.Vector3{X: def.Position[0], Y: def.Position[1], Z: def.Position[2]}
		g.Transform.SetEuler(rl.Vector3{X: def.Rotation[0], Y: def.Rotation[1], Z: def.Rotation[2]})

		// Default scale to 1 if zero
		if def.Scale != [3]float32{} {
			g.Transform.Scale = rl.Vector3{X: def.Scale[0], Y: def.Scale[1], Z: def.Scale[2]}
		}

		for k, raw := range def.Components {
			typeName, _ := raw["type"].(string)
			c, err := engine.CreateComponent(typeName, raw)
			if err != nil {
				return nil, fmt.Errorf("scene object %q component %d: %w", def.Name, k, err)
			}
			g.AddComponent(c)
		}
		objects[i] = g
		scene.AddGameObject(g)
	}

	for i, def := range sf.Objects {
		if def.Parent == "" {
			continue
		}
		parent := scene.FindByName(def.Parent)
		if parent == nil || parent == objects[i] {
			return nil, fmt.Errorf("scene object %q: unknown parent %q", def.Name, def.Parent)
		}
		parent.AddChild(objects[i])
	}
	return scene, nil
}

// LoadScene replaces the world's scene with the one in path.
func (w *World) LoadScene(path string) error {
	scene, err := LoadScene(path)
	if err != nil {
		return err
	}
	w.SetScene(scene)
	return nil
}

// --- Saving ---

// SaveScene writes the world's scene. Components that are not registered
// for serialization are skipped.
func (w *World) SaveScene(path string) error {
	data, err := yaml.Marshal(sceneFileOf(w.Scene))
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

func sceneFileOf(scene *engine.Scene) SceneFile {
	sf := SceneFile{Name: scene.Name}
	for _, g := range scene.GameObjects {
		p, r, s := g.Transform.Position, g.Transform.Euler(), g.Transform.Scale
		def := ObjectDef{
			Name:     g.Name,
			Tags:     g.Tags,
			Inactive: !g.Active,
			Position: [3]float32{p.X, p.Y, p.Z},
			Rotation: [3]float32{r.X, r.Y, r.Z},
			Scale:    [3]float32{s.X, s.Y, s.Z},
		}
		if g.Parent != nil {
			def.Parent = g.Parent.Name
		}
		for _, c := range g.Components() {
			if ser, ok := c.(engine.Serializable); ok {
				def.Components = append(def.Components, ser.Serialize())
			}
		}
		sf.Objects = append(sf.Objects, def)
	}
	return sf
}
