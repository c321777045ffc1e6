package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// NarrowPhase decides whether two shapes overlap and, if they do, how to
// separate them. Implementations only read the shapes' caches.
type NarrowPhase interface {
	Collide(a, b Shape) (Contact, bool, error)
}

// SAT is the separating-axis narrow phase.
type SAT struct{}

func (SAT) Collide(a, b Shape) (Contact, bool, error) {
	axes, err := CandidateAxes(a, b)
	if err != nil {
		return Contact{}, false, err
	}
	if !BoundsOverlap(a, b) {
		return Contact{}, false, nil
	}
	axis, depth, ok := leastPenetration(a, b, axes)
	if !ok {
		return Contact{}, false, nil
	}
	return newContact(a, axis, depth), true, nil
}

// Separated reports whether any of axes separates a and b.
func Separated(a, b Shape, axes []rl.Vector3) bool {
	_, _, ok := leastPenetration(a, b, axes)
	return !ok
}

// leastPenetration projects both shapes on every axis and returns the
// direction from a toward b with the smallest overlap. The first minimum wins.
func leastPenetration(a, b Shape, axes []rl.Vector3) (rl.Vector3, float32, bool) {
	if len(axes) == 0 {
		return rl.Vector3{}, 0, false
	}
	best := math32.Inf(1)
	var dir rl.Vector3
	for _, axis := range axes {
		minA, maxA := Project(a, axis)
		minB, maxB := Project(b, axis)

		pushBack := maxA - minB    // a sits below b on this axis
		pushForward := maxB - minA // a sits above b on this axis
		if pushBack <= 0 || pushForward <= 0 {
			return rl.Vector3{}, 0, false
		}
		if pushBack < best {
			best, dir = pushBack, axis
		}
		if pushForward < best {
			best, dir = pushForward, rl.Vector3Negate(axis)
		}
	}
	return dir, best, true
}
