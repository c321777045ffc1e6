package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type RaycastHit struct {
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// Raycast intersects a ray with the shape's world cache. direction must be
// unit length. A ray starting inside the shape hits where it leaves.
func Raycast(s Shape, origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	switch shape := s.(type) {
	case *Sphere:
		return raycastSphere(shape, origin, direction, maxDistance)
	case *ConvexMesh:
		return raycastMesh(shape, origin, direction, maxDistance)
	}
	return RaycastHit{}, false
}

func raycastSphere(s *Sphere, origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	center := s.Center()
	oc := rl.Vector3Subtract(origin, center)
	b := dot(oc, direction)
	c := lengthSqr(oc) - s.OuterRadiusSqr()

	discriminant := b*b - c
	if discriminant < 0 {
		return RaycastHit{}, false
	}
	root := math32.Sqrt(discriminant)
	t := -b - root
	if t < 0 {
		t = -b + root
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	normal := normalizeOr(rl.Vector3Subtract(point, center), rl.Vector3Negate(direction))
	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

// raycastMesh clips the ray against every face plane of the hull.
func raycastMesh(m *ConvexMesh, origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	vertices := m.Vertices()
	center := m.Center()
	tmin, tmax := float32(0), maxDistance
	var enterNormal, exitNormal rl.Vector3

	for _, face := range m.Faces() {
		n := newellNormal(vertices, face)
		if lengthSqr(n) == 0 {
			continue
		}
		p := vertices[face[0]]
		if dot(n, rl.Vector3Subtract(p, center)) < 0 {
			n = rl.Vector3Negate(n)
		}
		dist := dot(n, rl.Vector3Subtract(p, origin))
		denom := dot(n, direction)

		if math32.Abs(denom) < 1e-9 {
			if dist < 0 {
				return RaycastHit{}, false
			}
			continue
		}
		t := dist / denom
		if denom < 0 {
			if t > tmin {
				tmin, enterNormal = t, n
			}
		} else if t < tmax {
			tmax, exitNormal = t, n
		}
		if tmin > tmax {
			return RaycastHit{}, false
		}
	}

	if enterNormal == (rl.Vector3{}) {
		// Origin is inside: report the exit face.
		if exitNormal == (rl.Vector3{}) {
			return RaycastHit{}, false
		}
		point := rl.Vector3Add(origin, rl.Vector3Scale(direction, tmax))
		return RaycastHit{Point: point, Normal: exitNormal, Distance: tmax}, true
	}
	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, tmin))
	return RaycastHit{Point: point, Normal: enterNormal, Distance: tmin}, true
}
