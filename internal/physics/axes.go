package physics

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type axisRule func(a, b Shape) []rl.Vector3

// axisRules maps an ordered pair of shape kinds to the rule producing the
// candidate separating axes for that pair.
var axisRules = map[[2]ShapeKind]axisRule{
	{ShapeMesh, ShapeMesh}:     meshMeshAxes,
	{ShapeMesh, ShapeSphere}:   meshSphereAxes,
	{ShapeSphere, ShapeMesh}:   func(a, b Shape) []rl.Vector3 { return meshSphereAxes(b, a) },
	{ShapeSphere, ShapeSphere}: sphereSphereAxes,
}

// CandidateAxes returns the unit axes that must be tested to prove a and b
// disjoint, with collinear duplicates removed.
func CandidateAxes(a, b Shape) ([]rl.Vector3, error) {
	rule, ok := axisRules[[2]ShapeKind{a.Kind(), b.Kind()}]
	if !ok {
		return nil, fmt.Errorf("%w: %s and %s", ErrUnsupportedShapePair, a.Kind(), b.Kind())
	}
	return rule(a, b), nil
}

// FaceAxes returns only the face normals of both shapes. Useful as a cheap
// rejection set; it is not sufficient to prove overlap.
func FaceAxes(a, b Shape) []rl.Vector3 {
	var axes []rl.Vector3
	for _, s := range [2]Shape{a, b} {
		if m, ok := s.(*ConvexMesh); ok {
			for _, n := range m.FaceNormals() {
				axes = appendAxis(axes, n)
			}
		}
	}
	return axes
}

func meshMeshAxes(a, b Shape) []rl.Vector3 {
	ma, mb := a.(*ConvexMesh), b.(*ConvexMesh)
	axes := FaceAxes(a, b)
	for _, ea := range ma.EdgeDirections() {
		for _, eb := range mb.EdgeDirections() {
			axes = appendAxis(axes, cross(ea, eb))
		}
	}
	return axes
}

func meshSphereAxes(mesh, sphere Shape) []rl.Vector3 {
	m := mesh.(*ConvexMesh)
	c := sphere.Center()

	var axes []rl.Vector3
	for _, n := range m.FaceNormals() {
		axes = appendAxis(axes, n)
	}
	verts := m.Vertices()
	for _, v := range verts {
		axes = appendAxis(axes, rl.Vector3Subtract(c, v))
	}
	for _, e := range m.Edges() {
		p := closestPointOnSegment(c, verts[e[0]], verts[e[1]])
		axes = appendAxis(axes, rl.Vector3Subtract(c, p))
	}
	return axes
}

func sphereSphereAxes(a, b Shape) []rl.Vector3 {
	axis := normalizeOr(rl.Vector3Subtract(b.Center(), a.Center()), rl.Vector3{X: 1})
	return []rl.Vector3{axis}
}
