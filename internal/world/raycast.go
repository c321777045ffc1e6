package world

import (
	"rigid3d/internal/components"
	"rigid3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type RaycastHit struct {
	physics.RaycastHit
	Collider components.Collider
}

// Raycast returns the closest solid collider hit within maxDistance.
// Triggers and disabled colliders are ignored.
func (p *PhysicsWorld) Raycast(origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	direction = rl.Vector3Normalize(direction)
	var closest RaycastHit
	closest.Distance = maxDistance
	found := false

	for _, c := range p.Colliders() {
		if !components.Participates(c) || c.Base().IsTrigger {
			continue
		}
		c.UpdateData()
		hit, ok := physics.Raycast(c.Shape(), origin, direction, closest.Distance)
		if ok && (!found || hit.Distance < closest.Distance) {
			closest = RaycastHit{RaycastHit: hit, Collider: c}
			found = true
		}
	}
	return closest, found
}
