package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultNewtonIterations = 16
	DefaultNewtonTolerance  = 1e-5
	newtonStep              = 1e-2
)

// NewtonSolver finds a root of a function R³ -> R³ with a finite-difference
// Jacobian.
type NewtonSolver struct {
	MaxIterations int
	Tolerance     float32
}

// Solve iterates from x0 until |f(x)| drops below the tolerance, scaled by
// |f(x0)| when that exceeds 1, or the iteration budget runs out. It returns
// the last estimate either way; converged reports whether the tolerance was
// met. A singular Jacobian is ErrSingularJacobian.
func (n NewtonSolver) Solve(f func(mgl32.Vec3) mgl32.Vec3, x0 mgl32.Vec3) (x mgl32.Vec3, converged bool, err error) {
	iterations := n.MaxIterations
	if iterations <= 0 {
		iterations = DefaultNewtonIterations
	}
	tol := n.Tolerance
	if tol <= 0 {
		tol = DefaultNewtonTolerance
	}

	x = x0
	tol *= math32.Max(1, f(x0).Len())
	for i := 0; i < iterations; i++ {
		fx := f(x)
		if fx.Len() <= tol {
			return x, true, nil
		}
		jac := jacobian(f, x, fx)
		if math32.Abs(jac.Det()) < 1e-12 {
			return x, false, ErrSingularJacobian
		}
		x = x.Sub(jac.Inv().Mul3x1(fx))
	}
	return x, f(x).Len() <= tol, nil
}

// jacobian estimates df/dx at x with forward differences; column i holds
// the partial derivative along axis i.
func jacobian(f func(mgl32.Vec3) mgl32.Vec3, x, fx mgl32.Vec3) mgl32.Mat3 {
	h := newtonStep * math32.Max(1, x.Len())
	var cols [3]mgl32.Vec3
	for i := 0; i < 3; i++ {
		xi := x
		xi[i] += h
		cols[i] = f(xi).Sub(fx).Mul(1 / h)
	}
	return mgl32.Mat3FromCols(cols[0], cols[1], cols[2])
}
