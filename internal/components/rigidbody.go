package components

import (
	"fmt"

	"rigid3d/internal/engine"
	"rigid3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

func init() {
	engine.RegisterComponent("Rigidbody", func() engine.Serializable {
		return NewRigidbody()
	})
}

// CollisionPair is one of the body's colliders touching another collider.
type CollisionPair struct {
	Own   ColliderID
	Other ColliderID
}

// CollisionEvent is delivered to the body owning Collider.
type CollisionEvent struct {
	Body     *Rigidbody
	Collider Collider
	Other    Collider
}

// Rigidbody integrates its object's motion. The center of mass is the
// object's origin.
type Rigidbody struct {
	engine.BaseComponent

	Velocity        rl.Vector3
	AngularVelocity rl.Vector3 // radians per second, world axes
	LinearDrag      float32
	AngularDrag     float32
	UseGravity      bool
	IsStatic        bool // never moved by the simulation
	FreezeMovement  bool
	FreezeRotation  [3]bool // world X, Y, Z
	Material        physics.PhysicMaterial

	OnCollisionBegin engine.EventWithArg[CollisionEvent]
	OnCollisionStay  engine.EventWithArg[CollisionEvent]
	OnCollisionEnd   engine.EventWithArg[CollisionEvent]

	mass   float32
	force  rl.Vector3
	torque rl.Vector3

	localInertia mgl32.Mat3
	invInertia   mgl32.Mat3

	pendingVelocity rl.Vector3
	pendingAngular  rl.Vector3
	correctionSum   rl.Vector3
	corrections     int

	collisions rollingSet[CollisionPair]
}

func NewRigidbody() *Rigidbody {
	return &Rigidbody{
		mass:       1,
		UseGravity: true,
		Material:   physics.DefaultMaterial(),
	}
}

func (r *Rigidbody) Mass() float32 { return r.mass }

func (r *Rigidbody) SetMass(mass float32) error {
	if !(mass > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidMass, mass)
	}
	r.mass = mass
	return nil
}

// Immovable reports whether contacts can move this body at all.
func (r *Rigidbody) Immovable() bool {
	return r.IsStatic || !engine.ActiveAndEnabled(r)
}

// InverseMass is zero for static bodies and when movement is frozen.
func (r *Rigidbody) InverseMass() float32 {
	if r.Immovable() || r.FreezeMovement {
		return 0
	}
	return 1 / r.mass
}

// InverseInertia recomputes the inverse inertia tensor in world axes from
// the current colliders, rotation, flags and mass.
func (r *Rigidbody) InverseInertia() (mgl32.Mat3, error) {
	if err := r.Refresh(); err != nil {
		return mgl32.Mat3{}, err
	}
	return r.invInertia, nil
}

// Center is the world-space center of mass.
func (r *Rigidbody) Center() rl.Vector3 {
	if g := r.GetGameObject(); g != nil {
		return g.WorldPosition()
	}
	return rl.Vector3{}
}

// PointVelocity is the world velocity of the body at world point p.
func (r *Rigidbody) PointVelocity(p rl.Vector3) rl.Vector3 {
	arm := rl.Vector3Subtract(p, r.Center())
	return rl.Vector3Add(r.Velocity, rl.Vector3CrossProduct(r.AngularVelocity, arm))
}

// Refresh aggregates the inertia tensor from the object's enabled
// colliders and recomputes the world-space inverse. Immovable bodies get a
// zero inverse without aggregation.
func (r *Rigidbody) Refresh() error {
	g := r.GetGameObject()
	if g == nil || r.Immovable() {
		r.invInertia = mgl32.Mat3{}
		return nil
	}
	local, err := aggregateInertia(g)
	if err != nil {
		r.invInertia = mgl32.Mat3{}
		return err
	}
	r.localInertia = local.Mul(r.mass)
	r.invInertia = physics.InverseWorldInertia(r.localInertia, g.WorldRotation(), r.FreezeRotation)
	return nil
}

// aggregateInertia weighs each enabled collider's unit tensor by its mass
// fraction and moves it to the object's origin. An object without colliders
// behaves like a unit ball.
func aggregateInertia(g *engine.GameObject) (mgl32.Mat3, error) {
	var colliders []Collider
	var total float32
	for _, c := range engine.GetComponents[Collider](g) {
		if !c.Enabled() {
			continue
		}
		colliders = append(colliders, c)
		total += c.Base().MassFraction
	}
	if len(colliders) == 0 {
		return physics.SphereInertia(1), nil
	}
	if !(total > 0) {
		return mgl32.Mat3{}, fmt.Errorf("%w: object %q", physics.ErrZeroMassFraction, g.Name)
	}
	var sum mgl32.Mat3
	for _, c := range colliders {
		shifted := physics.ShiftInertia(c.UnitInertia(), c.Base().scaledOffset())
		sum = sum.Add(shifted.Mul(c.Base().MassFraction / total))
	}
	return sum, nil
}

// FixedUpdate advances the body by one fixed step.
func (r *Rigidbody) FixedUpdate(dt float32, gravity rl.Vector3) error {
	if r.Immovable() {
		r.clearAccumulators()
		return r.Refresh()
	}
	if err := r.Refresh(); err != nil {
		return err
	}
	g := r.GetGameObject()

	if r.UseGravity {
		r.Velocity = rl.Vector3Add(r.Velocity, rl.Vector3Scale(gravity, dt))
	}
	r.Velocity = rl.Vector3Add(r.Velocity, rl.Vector3Scale(r.force, dt/r.mass))
	angularAccel := physics.FromVec3(r.invInertia.Mul3x1(physics.ToVec3(r.torque)))
	r.AngularVelocity = rl.Vector3Add(r.AngularVelocity, rl.Vector3Scale(angularAccel, dt))

	r.Velocity = rl.Vector3Scale(r.Velocity, 1/(1+dt*r.LinearDrag))
	r.AngularVelocity = rl.Vector3Scale(r.AngularVelocity, 1/(1+dt*r.AngularDrag))
	r.applyFreeze()

	g.SetWorldPosition(rl.Vector3Add(g.WorldPosition(), rl.Vector3Scale(r.Velocity, dt)))
	g.SetWorldRotation(integrateRotation(g.WorldRotation(), r.AngularVelocity, dt))

	r.clearAccumulators()
	return r.Refresh()
}

// integrateRotation applies q' = q + ½·(ω, 0)·q·dt and renormalizes.
func integrateRotation(q rl.Quaternion, omega rl.Vector3, dt float32) rl.Quaternion {
	spin := rl.QuaternionMultiply(rl.Quaternion{X: omega.X, Y: omega.Y, Z: omega.Z}, q)
	return rl.QuaternionNormalize(rl.QuaternionAdd(q, rl.QuaternionScale(spin, 0.5*dt)))
}

func (r *Rigidbody) applyFreeze() {
	if r.FreezeMovement {
		r.Velocity = rl.Vector3{}
	}
	if r.FreezeRotation[0] {
		r.AngularVelocity.X = 0
	}
	if r.FreezeRotation[1] {
		r.AngularVelocity.Y = 0
	}
	if r.FreezeRotation[2] {
		r.AngularVelocity.Z = 0
	}
}

func (r *Rigidbody) clearAccumulators() {
	r.force = rl.Vector3{}
	r.torque = rl.Vector3{}
}

// AddForce accumulates a force through the center of mass until the next step.
func (r *Rigidbody) AddForce(f rl.Vector3) {
	r.force = rl.Vector3Add(r.force, f)
}

// AddForceAtPosition accumulates a force applied at a world point.
func (r *Rigidbody) AddForceAtPosition(f, point rl.Vector3) {
	r.AddForce(f)
	r.AddTorque(rl.Vector3CrossProduct(rl.Vector3Subtract(point, r.Center()), f))
}

func (r *Rigidbody) AddTorque(t rl.Vector3) {
	r.torque = rl.Vector3Add(r.torque, t)
}

// AddImpulse changes the velocity immediately.
func (r *Rigidbody) AddImpulse(j rl.Vector3) {
	r.Velocity = rl.Vector3Add(r.Velocity, rl.Vector3Scale(j, r.InverseMass()))
}

func (r *Rigidbody) AddAngularImpulse(l rl.Vector3) error {
	dw, err := r.angularResponse(l)
	if err != nil {
		return err
	}
	r.AngularVelocity = rl.Vector3Add(r.AngularVelocity, dw)
	return nil
}

// AddImpulseAtPosition changes both velocities immediately, or neither when
// the inertia cannot be computed.
func (r *Rigidbody) AddImpulseAtPosition(j, point rl.Vector3) error {
	dw, err := r.angularResponse(rl.Vector3CrossProduct(rl.Vector3Subtract(point, r.Center()), j))
	if err != nil {
		return err
	}
	r.AddImpulse(j)
	r.AngularVelocity = rl.Vector3Add(r.AngularVelocity, dw)
	return nil
}

func (r *Rigidbody) angularResponse(l rl.Vector3) (rl.Vector3, error) {
	invI, err := r.InverseInertia()
	if err != nil {
		return rl.Vector3{}, err
	}
	return physics.FromVec3(invI.Mul3x1(physics.ToVec3(l))), nil
}

func (r *Rigidbody) SetVelocity(v rl.Vector3) { r.Velocity = v }

func (r *Rigidbody) SetAngularVelocity(w rl.Vector3) { r.AngularVelocity = w }

// QueueImpulse records an impulse applied at arm, relative to the center of
// mass. ApplyQueued commits it.
func (r *Rigidbody) QueueImpulse(j, arm rl.Vector3) error {
	dw, err := r.angularResponse(rl.Vector3CrossProduct(arm, j))
	if err != nil {
		return err
	}
	r.pendingVelocity = rl.Vector3Add(r.pendingVelocity, rl.Vector3Scale(j, r.InverseMass()))
	r.pendingAngular = rl.Vector3Add(r.pendingAngular, dw)
	return nil
}

// QueueCorrection records a position correction. ApplyQueued moves the body
// by the mean of all corrections queued in the step.
func (r *Rigidbody) QueueCorrection(delta rl.Vector3) {
	r.correctionSum = rl.Vector3Add(r.correctionSum, delta)
	r.corrections++
}

// Nudge moves the body immediately, for tentative placement during
// contact resolution.
func (r *Rigidbody) Nudge(delta rl.Vector3) {
	if g := r.GetGameObject(); g != nil {
		g.SetWorldPosition(rl.Vector3Add(g.WorldPosition(), delta))
	}
}

// ApplyQueued commits everything queued during the step.
func (r *Rigidbody) ApplyQueued() {
	r.Velocity = rl.Vector3Add(r.Velocity, r.pendingVelocity)
	r.AngularVelocity = rl.Vector3Add(r.AngularVelocity, r.pendingAngular)
	if r.corrections > 0 {
		r.Nudge(rl.Vector3Scale(r.correctionSum, 1/float32(r.corrections)))
	}
	r.applyFreeze()
	r.pendingVelocity = rl.Vector3{}
	r.pendingAngular = rl.Vector3{}
	r.correctionSum = rl.Vector3{}
	r.corrections = 0
}

// RecordCollision notes that own, one of this body's colliders, touches
// other during the current step.
func (r *Rigidbody) RecordCollision(own, other ColliderID) {
	r.collisions.record(CollisionPair{Own: own, Other: other})
}

// DispatchCollisionEvents fires begin, stay and end for the step and rolls
// the pair sets. End is skipped when either collider is gone.
func (r *Rigidbody) DispatchCollisionEvents(lookup func(ColliderID) Collider) {
	fire := func(ev *engine.EventWithArg[CollisionEvent]) func(CollisionPair) {
		return func(p CollisionPair) {
			own, other := lookup(p.Own), lookup(p.Other)
			if own == nil || other == nil {
				return
			}
			ev.Invoke(CollisionEvent{Body: r, Collider: own, Other: other})
		}
	}
	r.collisions.roll(fire(&r.OnCollisionBegin), fire(&r.OnCollisionStay), fire(&r.OnCollisionEnd))
}

// TypeName implements engine.Serializable
func (r *Rigidbody) TypeName() string {
	return "Rigidbody"
}

// Serialize implements engine.Serializable
func (r *Rigidbody) Serialize() map[string]any {
	return map[string]any{
		"type":            "Rigidbody",
		"mass":            r.mass,
		"velocity":        engine.VectorProp(r.Velocity),
		"angularVelocity": engine.VectorProp(r.AngularVelocity),
		"linearDrag":      r.LinearDrag,
		"angularDrag":     r.AngularDrag,
		"useGravity":      r.UseGravity,
		"isStatic":        r.IsStatic,
		"freezeMovement":  r.FreezeMovement,
		"freezeRotation":  []any{r.FreezeRotation[0], r.FreezeRotation[1], r.FreezeRotation[2]},
		"material":        serializeMaterial(r.Material),
	}
}

// Deserialize implements engine.Serializable
func (r *Rigidbody) Deserialize(data map[string]any) error {
	if err := r.SetMass(engine.PropFloat(data, "mass", r.mass)); err != nil {
		return err
	}
	r.Velocity = engine.PropVector3(data, "velocity", r.Velocity)
	r.AngularVelocity = engine.PropVector3(data, "angularVelocity", r.AngularVelocity)
	r.LinearDrag = engine.PropFloat(data, "linearDrag", r.LinearDrag)
	r.AngularDrag = engine.PropFloat(data, "angularDrag", r.AngularDrag)
	r.UseGravity = engine.PropBool(data, "useGravity", r.UseGravity)
	r.IsStatic = engine.PropBool(data, "isStatic", r.IsStatic)
	r.FreezeMovement = engine.PropBool(data, "freezeMovement", r.FreezeMovement)
	if list, ok := data["freezeRotation"].([]any); ok && len(list) == 3 {
		for i, v := range list {
			r.FreezeRotation[i], _ = v.(bool)
		}
	}
	if raw, ok := data["material"].(map[string]any); ok {
		m, err := deserializeMaterial(raw, r.Material)
		if err != nil {
			return err
		}
		r.Material = m
	}
	return nil
}
