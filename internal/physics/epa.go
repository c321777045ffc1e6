package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// epaFace is a triangle of the expanding polytope. adj[i] is the face
// across the edge v[i] -> v[(i+1)%3]. Vertices wind counter-clockwise
// seen from outside.
type epaFace struct {
	v      [3]int
	adj    [3]int
	normal rl.Vector3
	dist   float32
	alive  bool
}

type horizonEdge struct {
	from, to int
	face     int // surviving face across the edge
	edge     int // index of the edge within that face
}

type polytope struct {
	verts []rl.Vector3
	faces []epaFace
}

func newPolytope(s simplex) *polytope {
	p0, p1, p2, p3 := s.points[0], s.points[1], s.points[2], s.points[3]
	if dot(cross(rl.Vector3Subtract(p1, p0), rl.Vector3Subtract(p2, p0)), rl.Vector3Subtract(p3, p0)) > 0 {
		p1, p2 = p2, p1
	}
	pt := &polytope{verts: []rl.Vector3{p0, p1, p2, p3}}
	for _, f := range [4][3]int{{0, 1, 2}, {0, 3, 1}, {0, 2, 3}, {1, 3, 2}} {
		pt.addFace(f[0], f[1], f[2])
	}
	pt.link(0, len(pt.faces))
	return pt
}

func (pt *polytope) addFace(a, b, c int) int {
	va, vb, vc := pt.verts[a], pt.verts[b], pt.verts[c]
	n := cross(rl.Vector3Subtract(vb, va), rl.Vector3Subtract(vc, va))
	f := epaFace{v: [3]int{a, b, c}, alive: true, adj: [3]int{-1, -1, -1}}
	if l := math32.Sqrt(lengthSqr(n)); l > 1e-12 {
		f.normal = rl.Vector3Scale(n, 1/l)
		f.dist = dot(f.normal, va)
	} else {
		// zero-area faces never win the closest-face search
		f.dist = math32.Inf(1)
	}
	pt.faces = append(pt.faces, f)
	return len(pt.faces) - 1
}

// link fills in adjacency between the faces in [from, to) by matching
// each directed edge with its reverse.
func (pt *polytope) link(from, to int) {
	type slot struct{ face, edge int }
	edges := make(map[[2]int]slot, (to-from)*3)
	for fi := from; fi < to; fi++ {
		f := &pt.faces[fi]
		for i := 0; i < 3; i++ {
			a, b := f.v[i], f.v[(i+1)%3]
			if twin, ok := edges[[2]int{b, a}]; ok {
				f.adj[i] = twin.face
				pt.faces[twin.face].adj[twin.edge] = fi
				continue
			}
			edges[[2]int{a, b}] = slot{fi, i}
		}
	}
}

func (pt *polytope) closest() int {
	best, bestDist := -1, math32.Inf(1)
	for i := range pt.faces {
		f := &pt.faces[i]
		if f.alive && f.dist < bestDist {
			best, bestDist = i, f.dist
		}
	}
	return best
}

func (pt *polytope) sees(fi int, p rl.Vector3) bool {
	f := &pt.faces[fi]
	return dot(f.normal, rl.Vector3Subtract(p, pt.verts[f.v[0]])) > 0
}

// carve removes every face visible from p, starting at fi, and collects
// the boundary of the removed region.
func (pt *polytope) carve(fi int, p rl.Vector3, horizon []horizonEdge) []horizonEdge {
	pt.faces[fi].alive = false
	for i := 0; i < 3; i++ {
		n := pt.faces[fi].adj[i]
		if n < 0 || !pt.faces[n].alive {
			continue
		}
		if pt.sees(n, p) {
			horizon = pt.carve(n, p, horizon)
			continue
		}
		from, to := pt.faces[fi].v[i], pt.faces[fi].v[(i+1)%3]
		horizon = append(horizon, horizonEdge{from: from, to: to, face: n, edge: edgeIndex(pt.faces[n], to, from)})
	}
	return horizon
}

func edgeIndex(f epaFace, a, b int) int {
	for i := 0; i < 3; i++ {
		if f.v[i] == a && f.v[(i+1)%3] == b {
			return i
		}
	}
	return -1
}

// expand adds p, replacing the faces it can see. It returns false when no
// face could be replaced.
func (pt *polytope) expand(start int, p rl.Vector3) bool {
	horizon := pt.carve(start, p, nil)
	if len(horizon) == 0 {
		return false
	}
	pi := len(pt.verts)
	pt.verts = append(pt.verts, p)

	first := len(pt.faces)
	for _, h := range horizon {
		fi := pt.addFace(h.from, h.to, pi)
		pt.faces[fi].adj[0] = h.face
		if h.edge >= 0 {
			pt.faces[h.face].adj[h.edge] = fi
		}
	}
	pt.link(first, len(pt.faces))
	return true
}

// epa returns the normal and depth of the polytope face nearest the origin.
// converged is false when the iteration bound cut the search short.
func epa(a, b Shape, s simplex, maxIterations int) (normal rl.Vector3, depth float32, converged bool) {
	pt := newPolytope(s)
	best := pt.closest()
	if best < 0 {
		return rl.Vector3{}, 0, false
	}
	for i := 0; i < maxIterations; i++ {
		face := pt.faces[best]
		support := minkowskiSupport(a, b, face.normal)
		d := dot(support, face.normal)
		if d-face.dist < epaTolerance {
			return face.normal, d, true
		}
		if !pt.expand(best, support) {
			return face.normal, d, true
		}
		next := pt.closest()
		if next < 0 {
			return face.normal, d, true
		}
		best = next
	}
	face := pt.faces[best]
	return face.normal, dot(minkowskiSupport(a, b, face.normal), face.normal), false
}
