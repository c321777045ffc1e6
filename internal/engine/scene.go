package engine

// Scene holds root and child objects alike in a flat list; the list order
// is the iteration order of every per-object pass.
type Scene struct {
	Name        string
	GameObjects []*GameObject
	uidMap      map[uint64]*GameObject
	started     bool
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		uidMap:      make(map[uint64]*GameObject),
	}
}

func (s *Scene) AddGameObject(g *GameObject) {
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*GameObject)
	}
	if _, exists := s.uidMap[g.UID]; exists {
		return
	}
	g.Scene = s
	s.GameObjects = append(s.GameObjects, g)
	s.uidMap[g.UID] = g
	if s.started {
		g.Start()
	}
}

// RemoveGameObject removes g and, recursively, its children. Every
// component of a removed object gets OnDestroy.
func (s *Scene) RemoveGameObject(g *GameObject) {
	for len(g.Children) > 0 {
		s.RemoveGameObject(g.Children[len(g.Children)-1])
	}
	if g.Parent != nil {
		g.Parent.RemoveChild(g)
	}
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			break
		}
	}
	delete(s.uidMap, g.UID)
	for _, c := range g.components {
		c.OnDestroy()
	}
	g.Scene = nil
}

// FindByUID is O(1).
func (s *Scene) FindByUID(uid uint64) *GameObject {
	return s.uidMap[uid]
}

func (s *Scene) FindByName(name string) *GameObject {
	for _, g := range s.GameObjects {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

func (s *Scene) Start() {
	for _, g := range s.GameObjects {
		g.Start()
	}
	s.started = true
}

func (s *Scene) Update(deltaTime float32) {
	for _, g := range s.GameObjects {
		g.Update(deltaTime)
	}
}

// CollectComponents returns every component assignable to T in scene
// order, then insertion order.
func CollectComponents[T any](s *Scene) []T {
	var out []T
	for _, g := range s.GameObjects {
		out = append(out, GetComponents[T](g)...)
	}
	return out
}
