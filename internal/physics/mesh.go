package physics

import (
	"fmt"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ConvexMesh is a convex polyhedron given by local vertices and face loops.
// Face loops are counter-clockwise when seen from outside.
type ConvexMesh struct {
	vertices []rl.Vector3
	faces    [][]int
	edges    [][2]int
	normals  []rl.Vector3

	// indices of faces / edges whose direction is not collinear with an
	// earlier one
	normalAxes []int
	edgeAxes   []int

	worldVertices []rl.Vector3
	worldNormals  []rl.Vector3
	worldEdgeDirs []rl.Vector3
	center        rl.Vector3
	radius        float32
}

// NewConvexMesh builds a mesh from local vertices and counter-clockwise
// face loops. Convexity is the caller's responsibility.
func NewConvexMesh(vertices []rl.Vector3, faces [][]int) (*ConvexMesh, error) {
	if len(vertices) < 4 || len(faces) < 4 {
		return nil, fmt.Errorf("%w: mesh needs at least 4 vertices and 4 faces, got %d and %d",
			ErrInvalidShape, len(vertices), len(faces))
	}
	m := &ConvexMesh{
		vertices: append([]rl.Vector3(nil), vertices...),
		faces:    make([][]int, len(faces)),
		normals:  make([]rl.Vector3, len(faces)),
	}

	seen := make(map[[2]int]bool)
	for fi, face := range faces {
		if len(face) < 3 {
			return nil, fmt.Errorf("%w: face %d has %d vertices", ErrInvalidShape, fi, len(face))
		}
		for _, vi := range face {
			if vi < 0 || vi >= len(vertices) {
				return nil, fmt.Errorf("%w: face %d references vertex %d", ErrInvalidShape, fi, vi)
			}
		}
		m.faces[fi] = append([]int(nil), face...)
		m.normals[fi] = newellNormal(vertices, face)
		if lengthSqr(m.normals[fi]) == 0 {
			return nil, fmt.Errorf("%w: face %d is degenerate", ErrInvalidShape, fi)
		}

		for i := range face {
			a, b := face[i], face[(i+1)%len(face)]
			if a > b {
				a, b = b, a
			}
			if seen[[2]int{a, b}] {
				continue
			}
			seen[[2]int{a, b}] = true
			m.edges = append(m.edges, [2]int{a, b})
		}
	}

	var axes []rl.Vector3
	for fi, n := range m.normals {
		next := appendAxis(axes, n)
		if len(next) > len(axes) {
			m.normalAxes = append(m.normalAxes, fi)
		}
		axes = next
	}
	axes = axes[:0]
	for ei, e := range m.edges {
		d := rl.Vector3Subtract(vertices[e[1]], vertices[e[0]])
		next := appendAxis(axes, d)
		if len(next) > len(axes) {
			m.edgeAxes = append(m.edgeAxes, ei)
		}
		axes = next
	}

	m.worldVertices = make([]rl.Vector3, len(m.vertices))
	m.worldNormals = make([]rl.Vector3, len(m.normalAxes))
	m.worldEdgeDirs = make([]rl.Vector3, len(m.edgeAxes))
	m.Update(IdentityPose())
	return m, nil
}

// NewCube builds an axis-aligned box of the given full size centered on
// the local origin.
func NewCube(size rl.Vector3) (*ConvexMesh, error) {
	if !(size.X > 0 && size.Y > 0 && size.Z > 0) {
		return nil, fmt.Errorf("%w: cube size %v", ErrInvalidShape, size)
	}
	h := rl.Vector3Scale(size, 0.5)
	vertices := make([]rl.Vector3, 8)
	for i := range vertices {
		v := rl.Vector3{X: -h.X, Y: -h.Y, Z: -h.Z}
		if i&1 != 0 {
			v.X = h.X
		}
		if i&2 != 0 {
			v.Y = h.Y
		}
		if i&4 != 0 {
			v.Z = h.Z
		}
		vertices[i] = v
	}
	faces := [][]int{
		{1, 3, 7, 5}, // +X
		{0, 4, 6, 2}, // -X
		{2, 6, 7, 3}, // +Y
		{0, 1, 5, 4}, // -Y
		{4, 5, 7, 6}, // +Z
		{0, 2, 3, 1}, // -Z
	}
	return NewConvexMesh(vertices, faces)
}

func newellNormal(vertices []rl.Vector3, face []int) rl.Vector3 {
	var n rl.Vector3
	for i := range face {
		a, b := vertices[face[i]], vertices[face[(i+1)%len(face)]]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return normalizeOr(n, rl.Vector3{})
}

func (m *ConvexMesh) Kind() ShapeKind { return ShapeMesh }

func (m *ConvexMesh) Update(pose Pose) {
	mat := pose.Matrix()
	var sum rl.Vector3
	for i, v := range m.vertices {
		w := rl.Vector3Transform(v, mat)
		m.worldVertices[i] = w
		sum = rl.Vector3Add(sum, w)
	}
	m.center = rl.Vector3Scale(sum, 1/float32(len(m.worldVertices)))

	var r2 float32
	for _, w := range m.worldVertices {
		r2 = math32.Max(r2, lengthSqr(rl.Vector3Subtract(w, m.center)))
	}
	m.radius = math32.Sqrt(r2)

	inv := rl.Vector3{X: safeInverse(pose.Scale.X), Y: safeInverse(pose.Scale.Y), Z: safeInverse(pose.Scale.Z)}
	for i, fi := range m.normalAxes {
		n := rl.Vector3Multiply(m.normals[fi], inv)
		m.worldNormals[i] = normalizeOr(rl.Vector3RotateByQuaternion(n, pose.Rotation), rl.Vector3{})
	}
	for i, ei := range m.edgeAxes {
		e := m.edges[ei]
		d := rl.Vector3Subtract(m.worldVertices[e[1]], m.worldVertices[e[0]])
		m.worldEdgeDirs[i] = normalizeOr(d, rl.Vector3{})
	}
}

func safeInverse(s float32) float32 {
	if math32.Abs(s) < 1e-12 {
		return 0
	}
	return 1 / s
}

func (m *ConvexMesh) Center() rl.Vector3      { return m.center }
func (m *ConvexMesh) OuterRadius() float32    { return m.radius }
func (m *ConvexMesh) OuterRadiusSqr() float32 { return m.radius * m.radius }

// Vertices returns the cached world-space vertices. The slice is owned by the mesh.
func (m *ConvexMesh) Vertices() []rl.Vector3 { return m.worldVertices }

// LocalVertices returns the unposed vertices.
func (m *ConvexMesh) LocalVertices() []rl.Vector3 { return m.vertices }

func (m *ConvexMesh) Faces() [][]int  { return m.faces }
func (m *ConvexMesh) Edges() [][2]int { return m.edges }

// FaceNormals returns the world-space normals with collinear duplicates removed.
func (m *ConvexMesh) FaceNormals() []rl.Vector3 { return m.worldNormals }

// EdgeDirections returns the world-space edge directions with collinear
// duplicates removed.
func (m *ConvexMesh) EdgeDirections() []rl.Vector3 { return m.worldEdgeDirs }

// LocalBounds returns the axis-aligned box around the unposed vertices.
func (m *ConvexMesh) LocalBounds() AABB {
	return NewAABBFromPoints(m.vertices)
}

func (m *ConvexMesh) SupportPoints(direction rl.Vector3) (nearest, farthest rl.Vector3) {
	minD, maxD := math32.Inf(1), math32.Inf(-1)
	for _, v := range m.worldVertices {
		d := dot(v, direction)
		if d < minD {
			minD, nearest = d, v
		}
		if d > maxD {
			maxD, farthest = d, v
		}
	}
	return nearest, farthest
}

func (m *ConvexMesh) VerticesOnPlane(point, normal rl.Vector3, epsilon float32) []rl.Vector3 {
	var out []rl.Vector3
	for _, v := range m.worldVertices {
		d := dot(rl.Vector3Subtract(v, point), normal)
		if d*d <= epsilon*epsilon {
			out = append(out, v)
		}
	}
	return out
}
