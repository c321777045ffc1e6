package world

import (
	"rigid3d/internal/components"
	"rigid3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// contactBody is one side of a contact; rb is nil for static geometry.
type contactBody struct {
	collider components.Collider
	rb       *components.Rigidbody
	invMass  float32
	invI     mgl32.Mat3
	arm      rl.Vector3
}

func newContactBody(c components.Collider, rb *components.Rigidbody) (contactBody, error) {
	b := contactBody{collider: c, rb: rb}
	if rb == nil {
		return b, nil
	}
	invI, err := rb.InverseInertia()
	if err != nil {
		return b, err
	}
	b.invMass, b.invI = rb.InverseMass(), invI
	return b, nil
}

func (b *contactBody) nudge(delta rl.Vector3) {
	if b.rb == nil {
		return
	}
	b.rb.Nudge(delta)
	b.collider.UpdateData()
}

// velocity is the body's velocity at its arm.
func (b *contactBody) velocity() rl.Vector3 {
	if b.rb == nil {
		return rl.Vector3{}
	}
	return rl.Vector3Add(b.rb.Velocity, rl.Vector3CrossProduct(b.rb.AngularVelocity, b.arm))
}

// response is the change of velocity at the arm caused by impulse j.
func (b *contactBody) response(j mgl32.Vec3) mgl32.Vec3 {
	arm := physics.ToVec3(b.arm)
	angular := b.invI.Mul3x1(arm.Cross(j)).Cross(arm)
	return j.Mul(b.invMass).Add(angular)
}

// resolve separates a and b along the contact and queues the impulse that
// turns their relative velocity at the contact point into
// -e·vn·n + (1-μ)·vt. Nothing is committed until ApplyQueued.
func (p *PhysicsWorld) resolve(a, b components.Collider, rbA, rbB *components.Rigidbody, contact physics.Contact) error {
	bodyA, err := newContactBody(a, rbA)
	if err != nil {
		return err
	}
	bodyB, err := newContactBody(b, rbB)
	if err != nil {
		return err
	}

	// The lighter side moves more; an immovable side does not move at all.
	var wA, wB float32
	if total := bodyA.invMass + bodyB.invMass; total > 0 {
		wA, wB = bodyA.invMass/total, bodyB.invMass/total
	}
	corrA := rl.Vector3Scale(contact.Exit, wA)
	corrB := rl.Vector3Scale(contact.Exit, -wB)

	bodyA.nudge(corrA)
	bodyB.nudge(corrB)
	rollback := func() {
		bodyA.nudge(rl.Vector3Negate(corrA))
		bodyB.nudge(rl.Vector3Negate(corrB))
	}
	commitCorrections := func() {
		if rbA != nil {
			rbA.QueueCorrection(corrA)
		}
		if rbB != nil {
			rbB.QueueCorrection(corrB)
		}
	}

	point, err := physics.EstimateContact(a.Shape(), b.Shape(), contact.Axis, p.ContactEpsilon)
	if err != nil {
		rollback()
		return err
	}
	if !physics.IsFinite(point) {
		rollback()
		commitCorrections()
		p.logger.Warn("contact point not finite, impulse deferred",
			"a", a.GetGameObject().Name, "b", b.GetGameObject().Name)
		return nil
	}

	if rbA != nil {
		bodyA.arm = rl.Vector3Subtract(point, rbA.Center())
	}
	if rbB != nil {
		bodyB.arm = rl.Vector3Subtract(point, rbB.Center())
	}
	rollback()
	commitCorrections()

	n := contact.Axis
	vrel := rl.Vector3Subtract(bodyA.velocity(), bodyB.velocity())
	vn := rl.Vector3DotProduct(vrel, n)
	if vn <= 0 {
		return nil
	}
	vt := rl.Vector3Subtract(vrel, rl.Vector3Scale(n, vn))

	friction, bounciness := components.MaterialOf(a).Combine(components.MaterialOf(b))
	target := physics.ToVec3(rl.Vector3Add(rl.Vector3Scale(n, (1+bounciness)*vn), rl.Vector3Scale(vt, friction)))
	residual := func(j mgl32.Vec3) mgl32.Vec3 {
		return bodyA.response(j).Add(bodyB.response(j)).Add(target)
	}
	impulse, converged, err := p.Newton.Solve(residual, mgl32.Vec3{})
	if err != nil {
		return err
	}
	if !converged {
		// The last estimate is still the best impulse available.
		p.logger.Debug("impulse not converged", "a", a.GetGameObject().Name, "b", b.GetGameObject().Name,
			"residual", residual(impulse).Len(), "target", target.Len())
	}

	j := physics.FromVec3(impulse)
	if rbA != nil {
		if err := rbA.QueueImpulse(j, bodyA.arm); err != nil {
			return err
		}
	}
	if rbB != nil {
		if err := rbB.QueueImpulse(rl.Vector3Negate(j), bodyB.arm); err != nil {
			return err
		}
	}
	return nil
}
