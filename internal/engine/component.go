package engine

type Component interface {
	Start()
	Update(deltaTime float32)
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
	Enabled() bool
	SetEnabled(enabled bool)
	OnDestroy()
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	gameObject *GameObject
	disabled   bool
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update(deltaTime float32) {}

func (b *BaseComponent) OnDestroy() {}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}

func (b *BaseComponent) Enabled() bool {
	return !b.disabled
}

func (b *BaseComponent) SetEnabled(enabled bool) {
	b.disabled = !enabled
}

// ActiveAndEnabled reports whether c is enabled and attached to an object
// that is active in the hierarchy.
func ActiveAndEnabled(c Component) bool {
	if !c.Enabled() {
		return false
	}
	g := c.GetGameObject()
	return g != nil && g.ActiveInHierarchy()
}
