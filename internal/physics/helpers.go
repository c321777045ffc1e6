package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// collinearDot is the |cos| above which two axes count as the same axis.
const collinearDot = 1 - 1e-6

// cross computes the cross product of two vectors
func cross(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func dot(a, b rl.Vector3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func lengthSqr(v rl.Vector3) float32 {
	return dot(v, v)
}

// clamp restricts a value to a range
func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// normalizeOr returns v scaled to unit length, or fallback when v is too
// short to carry a direction.
func normalizeOr(v, fallback rl.Vector3) rl.Vector3 {
	l := math32.Sqrt(lengthSqr(v))
	if l < 1e-9 {
		return fallback
	}
	return rl.Vector3Scale(v, 1/l)
}

// IsFinite reports whether every component of v is a real number.
func IsFinite(v rl.Vector3) bool {
	for _, c := range [3]float32{v.X, v.Y, v.Z} {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// NaNVector is the contact point reported when two contact polygons do not
// intersect.
func NaNVector() rl.Vector3 {
	n := math32.NaN()
	return rl.Vector3{X: n, Y: n, Z: n}
}

// closestPointOnSegment returns the point of segment [a, b] nearest to p.
func closestPointOnSegment(p, a, b rl.Vector3) rl.Vector3 {
	ab := rl.Vector3Subtract(b, a)
	den := lengthSqr(ab)
	if den < 1e-12 {
		return a
	}
	t := clamp(dot(rl.Vector3Subtract(p, a), ab)/den, 0, 1)
	return rl.Vector3Add(a, rl.Vector3Scale(ab, t))
}

// appendAxis adds a unit axis unless a collinear one is already present.
func appendAxis(axes []rl.Vector3, v rl.Vector3) []rl.Vector3 {
	l := math32.Sqrt(lengthSqr(v))
	if l < 1e-6 {
		return axes
	}
	axis := rl.Vector3Scale(v, 1/l)
	for _, existing := range axes {
		if math32.Abs(dot(existing, axis)) > collinearDot {
			return axes
		}
	}
	return append(axes, axis)
}

func mean(points []rl.Vector3) rl.Vector3 {
	var sum rl.Vector3
	for _, p := range points {
		sum = rl.Vector3Add(sum, p)
	}
	return rl.Vector3Scale(sum, 1/float32(len(points)))
}

// planeBasis returns two unit vectors spanning the plane orthogonal to
// normal, with u × v = normal.
func planeBasis(normal rl.Vector3) (u, v rl.Vector3) {
	ref := rl.Vector3{X: 1}
	if math32.Abs(normal.X) > 0.9 {
		ref = rl.Vector3{Y: 1}
	}
	u = normalizeOr(cross(ref, normal), rl.Vector3{Z: 1})
	v = cross(normal, u)
	return u, v
}
