package physics

import "errors"

var (
	// ErrUnsupportedShapePair is returned when no candidate-axis rule exists
	// for a pair of shape kinds.
	ErrUnsupportedShapePair = errors.New("physics: unsupported shape pair")

	// ErrNoContactPlane is returned when neither shape has a vertex on the
	// queried contact plane.
	ErrNoContactPlane = errors.New("physics: no vertices on contact plane")

	// ErrZeroMassFraction is returned when a body's enabled colliders carry
	// no mass at all.
	ErrZeroMassFraction = errors.New("physics: total collider mass fraction is zero")

	// ErrSingularJacobian is returned when a Newton step cannot be taken.
	ErrSingularJacobian = errors.New("physics: singular jacobian")

	// ErrInvalidShape is returned for malformed shape parameters.
	ErrInvalidShape = errors.New("physics: invalid shape")
)
