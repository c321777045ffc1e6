package world

import (
	"fmt"
	"log/slog"

	"rigid3d/internal/components"
	"rigid3d/internal/config"
	"rigid3d/internal/engine"
	"rigid3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PhysicsWorld runs fixed steps over every collider and rigidbody in a
// scene. Pairs are tested brute force, in scene order.
type PhysicsWorld struct {
	Scene          *engine.Scene
	Gravity        rl.Vector3
	ContactEpsilon float32
	Newton         physics.NewtonSolver

	narrow physics.NarrowPhase
	logger *slog.Logger

	lookup map[components.ColliderID]components.Collider
}

func NewPhysicsWorld(scene *engine.Scene, logger *slog.Logger) *PhysicsWorld {
	if logger == nil {
		logger = slog.Default()
	}
	p := &PhysicsWorld{
		Scene:  scene,
		logger: logger,
		lookup: make(map[components.ColliderID]components.Collider),
	}
	p.ApplySettings(config.Default())
	return p
}

// ApplySettings takes over the physics fields of s. s must be valid.
func (p *PhysicsWorld) ApplySettings(s config.Settings) {
	p.Gravity = rl.Vector3{X: s.Gravity[0], Y: s.Gravity[1], Z: s.Gravity[2]}
	p.ContactEpsilon = s.ContactEpsilon
	p.Newton = physics.NewtonSolver{MaxIterations: s.NewtonIterations, Tolerance: s.NewtonTolerance}
	switch s.NarrowPhase {
	case config.NarrowPhaseGJK:
		p.narrow = physics.GJKEPA{MaxIterations: s.EPAMaxIterations, Logger: p.logger}
	default:
		p.narrow = physics.SAT{}
	}
}

func (p *PhysicsWorld) NarrowPhase() physics.NarrowPhase { return p.narrow }

func (p *PhysicsWorld) SetNarrowPhase(np physics.NarrowPhase) { p.narrow = np }

// Colliders returns every collider in the scene, enabled or not.
func (p *PhysicsWorld) Colliders() []components.Collider {
	return engine.CollectComponents[components.Collider](p.Scene)
}

// Rigidbodies returns every rigidbody in the scene, enabled or not.
func (p *PhysicsWorld) Rigidbodies() []*components.Rigidbody {
	return engine.CollectComponents[*components.Rigidbody](p.Scene)
}

func (p *PhysicsWorld) collider(id components.ColliderID) components.Collider {
	return p.lookup[id]
}

// Step advances the simulation by dt: integrate bodies, refresh collider
// caches, resolve every overlapping pair, fire events, then commit the
// queued velocity changes and corrections.
func (p *PhysicsWorld) Step(dt float32) error {
	bodies := p.Rigidbodies()
	for _, rb := range bodies {
		if err := rb.FixedUpdate(dt, p.Gravity); err != nil {
			return fmt.Errorf("physics step: %s: %w", rb.GetGameObject().Name, err)
		}
	}

	all := p.Colliders()
	clear(p.lookup)
	active := make([]components.Collider, 0, len(all))
	for _, c := range all {
		p.lookup[c.Base().ID()] = c
		if components.Participates(c) {
			c.UpdateData()
			active = append(active, c)
		}
	}

	contacts := 0
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			a, b := active[i], active[j]
			if a.GetGameObject() == b.GetGameObject() {
				continue
			}
			hit, err := p.collide(a, b)
			if err != nil {
				return fmt.Errorf("physics step: %s/%s: %w", a.GetGameObject().Name, b.GetGameObject().Name, err)
			}
			if hit {
				contacts++
			}
		}
	}
	p.logger.Debug("physics step", "colliders", len(active), "contacts", contacts)

	for _, c := range all {
		components.DispatchTriggerEvents(c, p.collider)
	}
	for _, rb := range bodies {
		rb.DispatchCollisionEvents(p.collider)
	}
	for _, rb := range bodies {
		rb.ApplyQueued()
	}
	return nil
}

func (p *PhysicsWorld) collide(a, b components.Collider) (bool, error) {
	contact, hit, err := p.narrow.Collide(a.Shape(), b.Shape())
	if err != nil || !hit {
		return false, err
	}

	if a.Base().IsTrigger || b.Base().IsTrigger {
		a.Base().RecordTrigger(b.Base().ID())
		b.Base().RecordTrigger(a.Base().ID())
		return true, nil
	}

	rbA, rbB := components.AttachedRigidbody(a), components.AttachedRigidbody(b)
	if rbA != nil {
		rbA.RecordCollision(a.Base().ID(), b.Base().ID())
	}
	if rbB != nil {
		rbB.RecordCollision(b.Base().ID(), a.Base().ID())
	}
	if !movable(rbA) && !movable(rbB) {
		return true, nil
	}
	return true, p.resolve(a, b, rbA, rbB, contact)
}

func movable(rb *components.Rigidbody) bool {
	return rb != nil && !rb.Immovable()
}
