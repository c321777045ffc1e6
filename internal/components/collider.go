package components

import (
	"fmt"
	"sync/atomic"

	"rigid3d/internal/engine"
	"rigid3d/internal/physics"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// ColliderID is unique for the life of the process.
type ColliderID uint64

var nextColliderID atomic.Uint64

// Collider is a convex collision volume attached to a GameObject.
type Collider interface {
	engine.Component
	Base() *ColliderBase
	Shape() physics.Shape

	// UpdateData rebuilds the shape's world cache from the owner's transform.
	UpdateData()

	// UnitInertia is the inertia tensor per unit mass about the collider's
	// own center, in the owner's local axes, at the owner's current scale.
	UnitInertia() mgl32.Mat3
}

// TriggerEvent is delivered to both colliders of a trigger overlap.
type TriggerEvent struct {
	Collider Collider
	Other    Collider
}

// ColliderBase holds what every collider shape shares.
type ColliderBase struct {
	engine.BaseComponent

	id ColliderID

	// Offset is in the owner's local frame and is scaled with it.
	Offset rl.Vector3
	// MassFraction weighs this collider's share of the body's inertia.
	MassFraction float32
	IsTrigger    bool
	// Material overrides the rigidbody's material when set.
	Material *physics.PhysicMaterial

	OnTriggerEnter engine.EventWithArg[TriggerEvent]
	OnTriggerStay  engine.EventWithArg[TriggerEvent]
	OnTriggerExit  engine.EventWithArg[TriggerEvent]

	triggers rollingSet[ColliderID]
}

func newColliderBase() ColliderBase {
	return ColliderBase{MassFraction: 1}
}

func (c *ColliderBase) Base() *ColliderBase { return c }

func (c *ColliderBase) ID() ColliderID {
	if c.id == 0 {
		c.id = ColliderID(nextColliderID.Add(1))
	}
	return c.id
}

// SetMassFraction rejects negative and non-finite values.
func (c *ColliderBase) SetMassFraction(f float32) error {
	if !(f >= 0) || math32.IsInf(f, 0) {
		return fmt.Errorf("components: invalid mass fraction %v", f)
	}
	c.MassFraction = f
	return nil
}

// RecordTrigger notes that other overlaps this collider during the current step.
func (c *ColliderBase) RecordTrigger(other ColliderID) {
	c.triggers.record(other)
}

// Pose places the collider's shape: the owner's world transform moved by
// the scaled, rotated offset.
func (c *ColliderBase) Pose() physics.Pose {
	g := c.GetGameObject()
	if g == nil {
		return physics.IdentityPose()
	}
	pos, rot, scale := g.WorldPosition(), g.WorldRotation(), g.WorldScale()
	offset := rl.Vector3RotateByQuaternion(rl.Vector3Multiply(c.Offset, scale), rot)
	return physics.Pose{Position: rl.Vector3Add(pos, offset), Rotation: rot, Scale: scale}
}

// scaledOffset is the offset from the owner's origin in its local axes.
func (c *ColliderBase) scaledOffset() rl.Vector3 {
	g := c.GetGameObject()
	if g == nil {
		return c.Offset
	}
	return rl.Vector3Multiply(c.Offset, g.WorldScale())
}

// Participates reports whether the collider takes part in the current step.
func Participates(c Collider) bool {
	return engine.ActiveAndEnabled(c)
}

// AttachedRigidbody returns the active, enabled rigidbody on the collider's
// object, or nil when the collider is static geometry.
func AttachedRigidbody(c Collider) *Rigidbody {
	g := c.GetGameObject()
	if g == nil {
		return nil
	}
	rb := engine.GetComponent[*Rigidbody](g)
	if rb == nil || !engine.ActiveAndEnabled(rb) {
		return nil
	}
	return rb
}

// MaterialOf resolves the material used at a contact: the collider's own
// override, then its rigidbody's, then the default.
func MaterialOf(c Collider) physics.PhysicMaterial {
	if m := c.Base().Material; m != nil {
		return *m
	}
	if rb := AttachedRigidbody(c); rb != nil {
		return rb.Material
	}
	return physics.DefaultMaterial()
}

// DispatchTriggerEvents fires enter, stay and exit for c and rolls its
// overlap sets. Exit is skipped when lookup no longer knows the other
// collider.
func DispatchTriggerEvents(c Collider, lookup func(ColliderID) Collider) {
	b := c.Base()
	b.triggers.roll(
		func(id ColliderID) {
			if other := lookup(id); other != nil {
				b.OnTriggerEnter.Invoke(TriggerEvent{Collider: c, Other: other})
			}
		},
		func(id ColliderID) {
			if other := lookup(id); other != nil {
				b.OnTriggerStay.Invoke(TriggerEvent{Collider: c, Other: other})
			}
		},
		func(id ColliderID) {
			if other := lookup(id); other != nil {
				b.OnTriggerExit.Invoke(TriggerEvent{Collider: c, Other: other})
			}
		},
	)
}

func (c *ColliderBase) serializeBase(typeName string) map[string]any {
	data := map[string]any{
		"type":         typeName,
		"offset":       engine.VectorProp(c.Offset),
		"massFraction": c.MassFraction,
		"isTrigger":    c.IsTrigger,
	}
	if c.Material != nil {
		data["material"] = serializeMaterial(*c.Material)
	}
	return data
}

func (c *ColliderBase) deserializeBase(data map[string]any) error {
	c.Offset = engine.PropVector3(data, "offset", c.Offset)
	if err := c.SetMassFraction(engine.PropFloat(data, "massFraction", c.MassFraction)); err != nil {
		return err
	}
	c.IsTrigger = engine.PropBool(data, "isTrigger", c.IsTrigger)
	if raw, ok := data["material"].(map[string]any); ok {
		m, err := deserializeMaterial(raw, physics.DefaultMaterial())
		if err != nil {
			return err
		}
		c.Material = &m
	}
	return nil
}

func serializeMaterial(m physics.PhysicMaterial) map[string]any {
	return map[string]any{
		"friction":        m.Friction,
		"bounciness":      m.Bounciness,
		"frictionCombine": m.FrictionCombine.String(),
		"bounceCombine":   m.BounceCombine.String(),
	}
}

func deserializeMaterial(data map[string]any, m physics.PhysicMaterial) (physics.PhysicMaterial, error) {
	m.Friction = engine.PropFloat(data, "friction", m.Friction)
	m.Bounciness = engine.PropFloat(data, "bounciness", m.Bounciness)
	var err error
	if s, ok := data["frictionCombine"].(string); ok {
		if m.FrictionCombine, err = physics.ParseCombineMode(s); err != nil {
			return m, err
		}
	}
	if s, ok := data["bounceCombine"].(string); ok {
		if m.BounceCombine, err = physics.ParseCombineMode(s); err != nil {
			return m, err
		}
	}
	return m, nil
}
