package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var down = rl.Vector3{Y: -1}

func assertVectorInDelta(t *testing.T, want, got rl.Vector3, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x")
	assert.InDelta(t, want.Y, got.Y, delta, "y")
	assert.InDelta(t, want.Z, got.Z, delta, "z")
}

func TestEstimateContactFaceOnFace(t *testing.T) {
	top := cubeAt(2, rl.Vector3{Y: 2})
	bottom := cubeAt(2, rl.Vector3{})

	p, err := EstimateContact(top, bottom, down, DefaultContactEpsilon)
	require.NoError(t, err)
	assertVectorInDelta(t, rl.Vector3{Y: 1}, p, 1e-5)
}

func TestEstimateContactPartialOverlap(t *testing.T) {
	top := cubeAt(2, rl.Vector3{X: 1, Y: 2, Z: 0.5})
	bottom := cubeAt(2, rl.Vector3{})

	p, err := EstimateContact(top, bottom, down, DefaultContactEpsilon)
	require.NoError(t, err)
	assertVectorInDelta(t, rl.Vector3{X: 0.5, Y: 1, Z: 0.25}, p, 1e-5)
}

func TestEstimateContactSinglePoint(t *testing.T) {
	ball := sphereAt(1, rl.Vector3{X: 0.3, Y: 2})
	floor := cubeAt(2, rl.Vector3{})

	p, err := EstimateContact(ball, floor, down, DefaultContactEpsilon)
	require.NoError(t, err)
	assertVectorInDelta(t, rl.Vector3{X: 0.3, Y: 1}, p, 1e-5)
}

func TestEstimateContactOneSideEmpty(t *testing.T) {
	top := cubeAt(2, rl.Vector3{Y: 2})
	farBall := sphereAt(1, rl.Vector3{Y: -5})

	p, err := EstimateContact(top, farBall, down, DefaultContactEpsilon)
	require.NoError(t, err)
	assertVectorInDelta(t, rl.Vector3{Y: 1}, p, 1e-5)
}

func TestEstimateContactDisjointPolygons(t *testing.T) {
	top := cubeAt(2, rl.Vector3{Y: 2})
	aside := cubeAt(2, rl.Vector3{X: 5})

	p, err := EstimateContact(top, aside, down, DefaultContactEpsilon)
	require.NoError(t, err)
	assert.False(t, IsFinite(p))
}

func TestEstimateContactNoPlane(t *testing.T) {
	_, err := EstimateContact(stubShape{kind: ShapeMesh}, stubShape{kind: ShapeMesh}, down, DefaultContactEpsilon)
	assert.ErrorIs(t, err, ErrNoContactPlane)
}

func TestConvexLoop(t *testing.T) {
	loop := convexLoop([]point2{{1, 1}, {-1, -1}, {1, -1}, {0, 0}, {-1, 1}, {1, 1}})

	require.Len(t, loop, 4)
	assert.Equal(t, point2{-1, -1}, loop[0])
	assert.NotContains(t, loop, point2{0, 0})

	var area float32
	for i := range loop {
		area += cross2(loop[i], loop[(i+1)%len(loop)])
	}
	assert.InDelta(t, 8, area, 1e-6, "loop must wind counter-clockwise")
}

func TestIntersectPolygonsSegmentAcrossSquare(t *testing.T) {
	square := convexLoop([]point2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}})
	edge := []point2{{-2, 0}, {2, 0}}

	got := intersectPolygons(edge, square)
	assert.ElementsMatch(t, []point2{{-1, 0}, {1, 0}}, got)
}
