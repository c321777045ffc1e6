package physics

import (
	"fmt"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultContactEpsilon is the plane thickness used to gather contact vertices.
const DefaultContactEpsilon = 1e-3

const polygonTolerance = 1e-6

type point2 struct{ X, Y float32 }

func sub2(a, b point2) point2       { return point2{a.X - b.X, a.Y - b.Y} }
func cross2(a, b point2) float32    { return a.X*b.Y - a.Y*b.X }
func orient(a, b, c point2) float32 { return cross2(sub2(b, a), sub2(c, a)) }

// EstimateContact returns a single world-space contact point for two
// touching shapes separated along axis (unit, from a toward b). The plane
// passes through a's farthest point along axis.
//
// A point that is not finite is returned when both contact polygons exist
// but do not intersect.
func EstimateContact(a, b Shape, axis rl.Vector3, epsilon float32) (rl.Vector3, error) {
	_, ref := a.SupportPoints(axis)
	onA := a.VerticesOnPlane(ref, axis, epsilon)
	onB := b.VerticesOnPlane(ref, axis, epsilon)

	switch {
	case len(onA) == 0 && len(onB) == 0:
		return rl.Vector3{}, fmt.Errorf("%w: %s against %s", ErrNoContactPlane, a.Kind(), b.Kind())
	case len(onA) == 1:
		return onA[0], nil
	case len(onB) == 1:
		return onB[0], nil
	case len(onA) == 0:
		return mean(onB), nil
	case len(onB) == 0:
		return mean(onA), nil
	}

	u, v := planeBasis(axis)
	flatten := func(points []rl.Vector3) []point2 {
		out := make([]point2, len(points))
		for i, p := range points {
			d := rl.Vector3Subtract(p, ref)
			out[i] = point2{dot(d, u), dot(d, v)}
		}
		return out
	}

	polyA := convexLoop(flatten(onA))
	polyB := convexLoop(flatten(onB))
	overlap := intersectPolygons(polyA, polyB)
	if len(overlap) == 0 {
		return NaNVector(), nil
	}

	var cx, cy float32
	for _, p := range overlap {
		cx += p.X
		cy += p.Y
	}
	n := float32(len(overlap))
	return rl.Vector3Add(ref, rl.Vector3Add(rl.Vector3Scale(u, cx/n), rl.Vector3Scale(v, cy/n))), nil
}

// convexLoop orders points counter-clockwise around their hull by gift
// wrapping. Interior points are dropped.
func convexLoop(points []point2) []point2 {
	points = dedupe(points)
	if len(points) < 3 {
		return points
	}
	start := 0
	for i, p := range points {
		if p.X < points[start].X || (p.X == points[start].X && p.Y < points[start].Y) {
			start = i
		}
	}

	loop := []point2{}
	current := start
	for len(loop) <= len(points) {
		loop = append(loop, points[current])
		next := (current + 1) % len(points)
		for i, p := range points {
			if i == current {
				continue
			}
			o := orient(points[current], points[next], p)
			if o < 0 || (o == 0 && dist2(points[current], p) > dist2(points[current], points[next])) {
				next = i
			}
		}
		current = next
		if current == start {
			break
		}
	}
	return loop
}

func dist2(a, b point2) float32 {
	d := sub2(a, b)
	return d.X*d.X + d.Y*d.Y
}

func dedupe(points []point2) []point2 {
	out := make([]point2, 0, len(points))
next:
	for _, p := range points {
		for _, q := range out {
			if dist2(p, q) <= polygonTolerance*polygonTolerance {
				continue next
			}
		}
		out = append(out, p)
	}
	return out
}

// insidePolygon reports whether p lies inside or on the boundary of a
// counter-clockwise convex loop.
func insidePolygon(p point2, poly []point2) bool {
	if len(poly) < 3 {
		return false
	}
	for i := range poly {
		if orient(poly[i], poly[(i+1)%len(poly)], p) < -polygonTolerance {
			return false
		}
	}
	return true
}

func segmentIntersection(p1, p2, q1, q2 point2) (point2, bool) {
	r := sub2(p2, p1)
	s := sub2(q2, q1)
	den := cross2(r, s)
	if math32.Abs(den) < 1e-12 {
		return point2{}, false
	}
	qp := sub2(q1, p1)
	t := cross2(qp, s) / den
	w := cross2(qp, r) / den
	if t < 0 || t > 1 || w < 0 || w > 1 {
		return point2{}, false
	}
	return point2{p1.X + t*r.X, p1.Y + t*r.Y}, true
}

func edgesOf(poly []point2) [][2]point2 {
	switch len(poly) {
	case 0, 1:
		return nil
	case 2:
		return [][2]point2{{poly[0], poly[1]}}
	}
	edges := make([][2]point2, len(poly))
	for i := range poly {
		edges[i] = [2]point2{poly[i], poly[(i+1)%len(poly)]}
	}
	return edges
}

// intersectPolygons returns the vertices of the overlap of two convex
// loops: the corners of each inside the other plus boundary crossings.
func intersectPolygons(a, b []point2) []point2 {
	var out []point2
	for _, p := range a {
		if insidePolygon(p, b) {
			out = append(out, p)
		}
	}
	for _, p := range b {
		if insidePolygon(p, a) {
			out = append(out, p)
		}
	}
	for _, ea := range edgesOf(a) {
		for _, eb := range edgesOf(b) {
			if p, ok := segmentIntersection(ea[0], ea[1], eb[0], eb[1]); ok {
				out = append(out, p)
			}
		}
	}
	return dedupe(out)
}
