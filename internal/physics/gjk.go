package physics

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// DefaultEPAIterations bounds polytope expansion.
	DefaultEPAIterations = 4096

	gjkMaxIterations = 64
	gjkTolerance     = 1e-6
	epaTolerance     = 1e-4
)

// GJKEPA detects overlap with GJK and measures it with EPA.
type GJKEPA struct {
	MaxIterations int
	Logger        *slog.Logger
}

func (g GJKEPA) Collide(a, b Shape) (Contact, bool, error) {
	if _, err := CandidateAxes(a, b); err != nil {
		return Contact{}, false, err
	}
	if !BoundsOverlap(a, b) {
		return Contact{}, false, nil
	}
	simplex, ok := gjk(a, b)
	if !ok {
		return Contact{}, false, nil
	}
	if !completeSimplex(a, b, &simplex) {
		return Contact{}, false, nil
	}

	limit := g.MaxIterations
	if limit <= 0 {
		limit = DefaultEPAIterations
	}
	normal, depth, converged := epa(a, b, simplex, limit)
	if !converged && g.Logger != nil {
		g.Logger.Debug("epa iteration bound reached", "iterations", limit, "depth", depth)
	}
	if !(depth > 0) {
		return Contact{}, false, nil
	}
	return newContact(a, normal, depth), true, nil
}

// minkowskiSupport returns the point of a - b farthest along direction.
func minkowskiSupport(a, b Shape, direction rl.Vector3) rl.Vector3 {
	_, farA := a.SupportPoints(direction)
	nearB, _ := b.SupportPoints(direction)
	return rl.Vector3Subtract(farA, nearB)
}

type simplex struct {
	points [4]rl.Vector3
	count  int
}

func (s *simplex) push(p rl.Vector3) {
	s.points[s.count] = p
	s.count++
}

func (s *simplex) set(points ...rl.Vector3) {
	s.count = copy(s.points[:], points)
}

// gjk reports whether the Minkowski difference of a and b contains the
// origin. The returned simplex holds the last points visited.
func gjk(a, b Shape) (simplex, bool) {
	var s simplex
	dir := normalizeOr(rl.Vector3Subtract(b.Center(), a.Center()), rl.Vector3{X: 1})
	first := minkowskiSupport(a, b, dir)
	s.push(first)

	dir = rl.Vector3Negate(first)
	if lengthSqr(dir) < 1e-12 {
		return s, true
	}
	for i := 0; i < gjkMaxIterations; i++ {
		dir = normalizeOr(dir, rl.Vector3{X: 1})
		p := minkowskiSupport(a, b, dir)
		if dot(p, dir) <= gjkTolerance {
			return s, false
		}
		s.push(p)
		if s.refine(&dir) {
			return s, true
		}
	}
	return s, false
}

// refine shrinks the simplex to the feature nearest the origin and points
// dir at the origin from it. It returns true once the origin is enclosed.
func (s *simplex) refine(dir *rl.Vector3) bool {
	switch s.count {
	case 2:
		return s.line(dir)
	case 3:
		return s.triangle(dir)
	case 4:
		return s.tetrahedron(dir)
	}
	return false
}

func (s *simplex) line(dir *rl.Vector3) bool {
	a, b := s.points[1], s.points[0]
	ab := rl.Vector3Subtract(b, a)
	ao := rl.Vector3Negate(a)

	if dot(ab, ao) <= 0 {
		s.set(a)
		*dir = ao
		return lengthSqr(ao) < 1e-12
	}
	perp := cross(cross(ab, ao), ab)
	if lengthSqr(perp) < 1e-12 {
		// origin on the segment
		return true
	}
	*dir = perp
	return false
}

func (s *simplex) triangle(dir *rl.Vector3) bool {
	a, b, c := s.points[2], s.points[1], s.points[0]
	ab := rl.Vector3Subtract(b, a)
	ac := rl.Vector3Subtract(c, a)
	ao := rl.Vector3Negate(a)
	abc := cross(ab, ac)

	if lengthSqr(abc) < 1e-12 {
		s.set(b, a)
		return s.line(dir)
	}
	if dot(cross(ab, abc), ao) > 0 {
		s.set(b, a)
		*dir = cross(cross(ab, ao), ab)
		return false
	}
	if dot(cross(abc, ac), ao) > 0 {
		s.set(c, a)
		*dir = cross(cross(ac, ao), ac)
		return false
	}

	side := dot(abc, ao)
	switch {
	case side > 1e-12:
		*dir = abc
	case side < -1e-12:
		s.set(b, c, a)
		*dir = rl.Vector3Negate(abc)
	default:
		// origin in the triangle's plane
		return true
	}
	return false
}

func (s *simplex) tetrahedron(dir *rl.Vector3) bool {
	a, b, c, d := s.points[3], s.points[2], s.points[1], s.points[0]
	ab := rl.Vector3Subtract(b, a)
	ac := rl.Vector3Subtract(c, a)
	ad := rl.Vector3Subtract(d, a)
	ao := rl.Vector3Negate(a)

	// each face normal points away from the vertex it does not touch
	abc := cross(ab, ac)
	if dot(abc, ad) > 0 {
		abc = rl.Vector3Negate(abc)
	}
	acd := cross(ac, ad)
	if dot(acd, ab) > 0 {
		acd = rl.Vector3Negate(acd)
	}
	adb := cross(ad, ab)
	if dot(adb, ac) > 0 {
		adb = rl.Vector3Negate(adb)
	}

	if lengthSqr(abc) < 1e-12 || lengthSqr(acd) < 1e-12 || lengthSqr(adb) < 1e-12 {
		s.set(c, b, a)
		return s.triangle(dir)
	}

	switch {
	case dot(abc, ao) > 0:
		s.set(c, b, a)
	case dot(acd, ao) > 0:
		s.set(d, c, a)
	case dot(adb, ao) > 0:
		s.set(b, d, a)
	default:
		return true
	}
	return s.triangle(dir)
}

var searchAxes = [6]rl.Vector3{
	{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
}

// completeSimplex grows a touching simplex into a non-degenerate
// tetrahedron so EPA has a volume to expand.
func completeSimplex(a, b Shape, s *simplex) bool {
	if s.count == 1 {
		for _, d := range searchAxes {
			p := minkowskiSupport(a, b, d)
			if lengthSqr(rl.Vector3Subtract(p, s.points[0])) > 1e-10 {
				s.push(p)
				break
			}
		}
	}
	if s.count == 2 {
		ab := rl.Vector3Subtract(s.points[1], s.points[0])
		for _, axis := range [3]rl.Vector3{{X: 1}, {Y: 1}, {Z: 1}} {
			perp := cross(ab, axis)
			if lengthSqr(perp) < 1e-10 {
				continue
			}
			if p, ok := farthestOffLine(a, b, s.points[0], ab, perp); ok {
				s.push(p)
				break
			}
		}
	}
	if s.count == 3 {
		n := cross(rl.Vector3Subtract(s.points[1], s.points[0]), rl.Vector3Subtract(s.points[2], s.points[0]))
		for _, d := range [2]rl.Vector3{n, rl.Vector3Negate(n)} {
			p := minkowskiSupport(a, b, d)
			if dist := dot(rl.Vector3Subtract(p, s.points[0]), d); dist*dist > 1e-10*lengthSqr(d) {
				s.push(p)
				break
			}
		}
	}
	return s.count == 4
}

func farthestOffLine(a, b Shape, origin, line, perp rl.Vector3) (rl.Vector3, bool) {
	for _, d := range [2]rl.Vector3{perp, rl.Vector3Negate(perp)} {
		p := minkowskiSupport(a, b, d)
		if lengthSqr(cross(rl.Vector3Subtract(p, origin), line)) > 1e-10 {
			return p, true
		}
	}
	return rl.Vector3{}, false
}
