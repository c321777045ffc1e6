package components

import (
	"math"
	"testing"

	"rigid3d/internal/engine"
	"rigid3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBody(t *testing.T, pos rl.Vector3) (*engine.GameObject, *Rigidbody) {
	t.Helper()
	g, _ := newSphereObject(t, "Body", pos, 1)
	rb := NewRigidbody()
	g.AddComponent(rb)
	return g, rb
}

var gravity = rl.Vector3{Y: -10}

func TestRigidbodySetMass(t *testing.T) {
	rb := NewRigidbody()
	assert.ErrorIs(t, rb.SetMass(0), ErrInvalidMass)
	assert.ErrorIs(t, rb.SetMass(-3), ErrInvalidMass)
	require.NoError(t, rb.SetMass(4))
	assert.Equal(t, float32(4), rb.Mass())
}

func TestFixedUpdateGravity(t *testing.T) {
	g, rb := newBody(t, rl.Vector3{Y: 5})

	require.NoError(t, rb.FixedUpdate(0.1, gravity))

	assertVec(t, rl.Vector3{Y: -1}, rb.Velocity, 1e-6)
	assertVec(t, rl.Vector3{Y: 4.9}, g.WorldPosition(), 1e-5)

	rb.UseGravity = false
	require.NoError(t, rb.FixedUpdate(0.1, gravity))
	assertVec(t, rl.Vector3{Y: -1}, rb.Velocity, 1e-6)
}

func TestFixedUpdateDragAndForce(t *testing.T) {
	_, rb := newBody(t, rl.Vector3{})
	rb.UseGravity = false
	require.NoError(t, rb.SetMass(2))
	rb.LinearDrag = 1

	rb.AddForce(rl.Vector3{X: 20})
	require.NoError(t, rb.FixedUpdate(0.5, gravity))

	// v = (20/2·0.5) / (1 + 0.5·1)
	assert.InDelta(t, 5.0/1.5, rb.Velocity.X, 1e-5)

	// Accumulated forces last one step only.
	rb.LinearDrag = 0
	require.NoError(t, rb.FixedUpdate(0.5, gravity))
	assert.InDelta(t, 5.0/1.5, rb.Velocity.X, 1e-5)
}

func TestStaticBodyDoesNotMove(t *testing.T) {
	g, rb := newBody(t, rl.Vector3{Y: 1})
	rb.IsStatic = true
	rb.Velocity = rl.Vector3{X: 3}

	require.NoError(t, rb.FixedUpdate(1, gravity))

	assert.Equal(t, rl.Vector3{Y: 1}, g.WorldPosition())
	assert.Zero(t, rb.InverseMass())
	inv, err := rb.InverseInertia()
	require.NoError(t, err)
	assert.Equal(t, mgl32.Mat3{}, inv)
}

func TestInverseInertiaFollowsStaticFlag(t *testing.T) {
	_, rb := newBody(t, rl.Vector3{})
	rb.IsStatic = true
	require.NoError(t, rb.FixedUpdate(0.1, gravity))

	rb.IsStatic = false
	// Unit ball of mass 1: I = 0.4.
	require.NoError(t, rb.AddAngularImpulse(rl.Vector3{Y: 0.4}))
	assertVec(t, rl.Vector3{Y: 1}, rb.AngularVelocity, 1e-5)

	rb.IsStatic = true
	require.NoError(t, rb.AddAngularImpulse(rl.Vector3{Y: 0.4}))
	assertVec(t, rl.Vector3{Y: 1}, rb.AngularVelocity, 1e-5)
}

func TestZeroMassFractionFailsImpulses(t *testing.T) {
	g, rb := newBody(t, rl.Vector3{})
	c := engine.GetComponent[*SphereCollider](g)
	require.NoError(t, c.SetMassFraction(0))

	_, err := rb.InverseInertia()
	assert.ErrorIs(t, err, physics.ErrZeroMassFraction)
	assert.ErrorIs(t, rb.AddAngularImpulse(rl.Vector3{Y: 1}), physics.ErrZeroMassFraction)
	assert.ErrorIs(t, rb.AddImpulseAtPosition(rl.Vector3{Z: 1}, rl.Vector3{X: 1}), physics.ErrZeroMassFraction)
	assert.ErrorIs(t, rb.QueueImpulse(rl.Vector3{Z: 1}, rl.Vector3{X: 1}), physics.ErrZeroMassFraction)

	// Nothing was applied or queued.
	rb.ApplyQueued()
	assert.Equal(t, rl.Vector3{}, rb.Velocity)
	assert.Equal(t, rl.Vector3{}, rb.AngularVelocity)
}

func TestDisabledBodyIsImmovable(t *testing.T) {
	g, rb := newBody(t, rl.Vector3{})
	g.Active = false
	assert.True(t, rb.Immovable())
	assert.Zero(t, rb.InverseMass())
}

func TestFixedUpdateZeroMassFraction(t *testing.T) {
	g, rb := newBody(t, rl.Vector3{})
	c := engine.GetComponent[*SphereCollider](g)
	require.NoError(t, c.SetMassFraction(0))

	err := rb.FixedUpdate(0.1, gravity)
	assert.ErrorIs(t, err, physics.ErrZeroMassFraction)
	assert.Contains(t, err.Error(), "Body")
}

func TestInertiaAggregation(t *testing.T) {
	g := engine.NewGameObject("Dumbbell")
	for _, x := range []float32{-1, 1} {
		c, err := NewSphereCollider(0.5)
		require.NoError(t, err)
		c.Offset = rl.Vector3{X: x}
		g.AddComponent(c)
	}
	rb := NewRigidbody()
	require.NoError(t, rb.SetMass(2))
	g.AddComponent(rb)

	require.NoError(t, rb.Refresh())

	// Each ball: 0.4·0.25 = 0.1 about its center, plus 1 along Y and Z
	// from the offset; halves weighted equally, times mass 2.
	local := rb.localInertia
	assert.InDelta(t, 0.2, local.At(0, 0), 1e-5)
	assert.InDelta(t, 2.2, local.At(1, 1), 1e-5)
	assert.InDelta(t, 2.2, local.At(2, 2), 1e-5)
}

func TestParentFrameIntegration(t *testing.T) {
	parent := engine.NewGameObject("Parent")
	parent.Transform.Position = rl.Vector3{X: 10}
	parent.Transform.Rotation = rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, math.Pi/2)
	parent.Transform.Scale = rl.Vector3{X: 2, Y: 2, Z: 2}

	child, rb := newBody(t, rl.Vector3{Z: 1})
	parent.AddChild(child)
	rb.UseGravity = false
	rb.Velocity = rl.Vector3{X: 1}

	before := child.WorldPosition()
	require.NoError(t, rb.FixedUpdate(1, gravity))

	assertVec(t, rl.Vector3Add(before, rl.Vector3{X: 1}), child.WorldPosition(), 1e-4)
}

func TestIntegrateRotation(t *testing.T) {
	_, rb := newBody(t, rl.Vector3{})
	rb.UseGravity = false
	rb.AngularVelocity = rl.Vector3{Y: 1}

	for i := 0; i < 100; i++ {
		require.NoError(t, rb.FixedUpdate(0.01, gravity))
	}

	// One radian about Y.
	x := rl.Vector3RotateByQuaternion(rl.Vector3{X: 1}, rb.GetGameObject().WorldRotation())
	assertVec(t, rl.Vector3{X: float32(math.Cos(1)), Z: float32(-math.Sin(1))}, x, 1e-2)
}

func TestFreezeFlags(t *testing.T) {
	_, rb := newBody(t, rl.Vector3{})
	rb.FreezeMovement = true
	rb.FreezeRotation = [3]bool{true, false, true}
	rb.AngularVelocity = rl.Vector3{X: 1, Y: 2, Z: 3}

	require.NoError(t, rb.FixedUpdate(0.1, gravity))

	assert.Equal(t, rl.Vector3{}, rb.Velocity)
	assert.Equal(t, rl.Vector3{Y: 2}, rb.AngularVelocity)
	assert.Zero(t, rb.InverseMass())
	inv, err := rb.InverseInertia()
	require.NoError(t, err)
	assert.Zero(t, inv.At(0, 0))
	assert.NotZero(t, inv.At(1, 1))

	rb.FreezeRotation = [3]bool{true, true, true}
	inv, err = rb.InverseInertia()
	require.NoError(t, err)
	assert.Equal(t, mgl32.Mat3{}, inv)
}

func TestForceAtPositionAddsTorque(t *testing.T) {
	_, rb := newBody(t, rl.Vector3{})
	rb.AddForceAtPosition(rl.Vector3{Z: 1}, rl.Vector3{X: 1})

	assert.Equal(t, rl.Vector3{Z: 1}, rb.force)
	assertVec(t, rl.Vector3{Y: -1}, rb.torque, 1e-6)
}

func TestImpulses(t *testing.T) {
	_, rb := newBody(t, rl.Vector3{})
	require.NoError(t, rb.SetMass(2))

	rb.AddImpulse(rl.Vector3{X: 4})
	assertVec(t, rl.Vector3{X: 2}, rb.Velocity, 1e-6)

	// Unit ball of mass 2: I = 0.8, so ω = L / 0.8.
	require.NoError(t, rb.AddAngularImpulse(rl.Vector3{Y: 0.8}))
	assertVec(t, rl.Vector3{Y: 1}, rb.AngularVelocity, 1e-5)

	rb.SetVelocity(rl.Vector3{})
	rb.SetAngularVelocity(rl.Vector3{})
	require.NoError(t, rb.AddImpulseAtPosition(rl.Vector3{Z: 0.8}, rl.Vector3{X: 1}))
	assertVec(t, rl.Vector3{Z: 0.4}, rb.Velocity, 1e-6)
	assertVec(t, rl.Vector3{Y: -1}, rb.AngularVelocity, 1e-5)
}

func TestQueuedChangesApplyTogether(t *testing.T) {
	g, rb := newBody(t, rl.Vector3{})
	require.NoError(t, rb.QueueImpulse(rl.Vector3{X: 1}, rl.Vector3{}))
	require.NoError(t, rb.QueueImpulse(rl.Vector3{Z: 0.4}, rl.Vector3{X: 1}))
	rb.QueueCorrection(rl.Vector3{Y: 1})
	rb.QueueCorrection(rl.Vector3{Y: 3})

	assert.Equal(t, rl.Vector3{}, rb.Velocity)
	assert.Equal(t, rl.Vector3{}, g.WorldPosition())

	rb.ApplyQueued()
	assertVec(t, rl.Vector3{X: 1, Z: 0.4}, rb.Velocity, 1e-6)
	// (1,0,0) × (0,0,0.4) over I = 0.4
	assertVec(t, rl.Vector3{Y: -1}, rb.AngularVelocity, 1e-5)
	assertVec(t, rl.Vector3{Y: 2}, g.WorldPosition(), 1e-6)

	rb.ApplyQueued()
	assertVec(t, rl.Vector3{Y: 2}, g.WorldPosition(), 1e-6)
}

func TestPointVelocity(t *testing.T) {
	_, rb := newBody(t, rl.Vector3{X: 1})
	rb.Velocity = rl.Vector3{Y: 1}
	rb.AngularVelocity = rl.Vector3{Z: 2}

	// ω × r = (0,0,2) × (1,0,0) = (0,2,0)
	assertVec(t, rl.Vector3{Y: 3}, rb.PointVelocity(rl.Vector3{X: 2}), 1e-6)
}

func TestDispatchCollisionEvents(t *testing.T) {
	g, rb := newBody(t, rl.Vector3{})
	own := engine.GetComponent[*SphereCollider](g)
	_, other := newSphereObject(t, "Other", rl.Vector3{}, 1)
	known := map[ColliderID]Collider{own.ID(): own, other.ID(): other}
	lookup := func(id ColliderID) Collider { return known[id] }

	var log []string
	rb.OnCollisionBegin.AddListener(func(e CollisionEvent) {
		assert.Same(t, rb, e.Body)
		assert.Same(t, own, e.Collider)
		assert.Same(t, other, e.Other)
		log = append(log, "begin")
	})
	rb.OnCollisionStay.AddListener(func(CollisionEvent) { log = append(log, "stay") })
	rb.OnCollisionEnd.AddListener(func(CollisionEvent) { log = append(log, "end") })

	rb.RecordCollision(own.ID(), other.ID())
	rb.DispatchCollisionEvents(lookup)
	rb.RecordCollision(own.ID(), other.ID())
	rb.RecordCollision(own.ID(), other.ID())
	rb.DispatchCollisionEvents(lookup)
	rb.DispatchCollisionEvents(lookup)

	assert.Equal(t, []string{"begin", "stay", "end"}, log)
}
