package physics

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// CombineMode selects how two materials' coefficients merge at a contact.
// When the modes differ, the larger value wins.
type CombineMode int

const (
	CombineAverage CombineMode = iota
	CombineGeometricAverage
	CombineMinimum
	CombineMultiply
	CombineMaximum
)

var combineNames = map[CombineMode]string{
	CombineAverage:          "average",
	CombineGeometricAverage: "geometric_average",
	CombineMinimum:          "minimum",
	CombineMultiply:         "multiply",
	CombineMaximum:          "maximum",
}

func (m CombineMode) String() string {
	if name, ok := combineNames[m]; ok {
		return name
	}
	return fmt.Sprintf("CombineMode(%d)", int(m))
}

// ParseCombineMode accepts the names produced by String, case-insensitively.
// The empty string means CombineAverage.
func ParseCombineMode(s string) (CombineMode, error) {
	if s == "" {
		return CombineAverage, nil
	}
	for mode, name := range combineNames {
		if strings.EqualFold(s, name) {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("physics: unknown combine mode %q", s)
}

func (m CombineMode) combine(a, b float32) float32 {
	switch m {
	case CombineGeometricAverage:
		return math32.Sqrt(a * b)
	case CombineMinimum:
		return math32.Min(a, b)
	case CombineMultiply:
		return a * b
	case CombineMaximum:
		return math32.Max(a, b)
	}
	return (a + b) / 2
}

// PhysicMaterial describes the surface response of a body.
type PhysicMaterial struct {
	Friction        float32
	Bounciness      float32
	FrictionCombine CombineMode
	BounceCombine   CombineMode
}

func DefaultMaterial() PhysicMaterial {
	return PhysicMaterial{Friction: 0.4}
}

// Combine returns the friction and bounciness used for a contact between m and other.
func (m PhysicMaterial) Combine(other PhysicMaterial) (friction, bounciness float32) {
	fm := max(m.FrictionCombine, other.FrictionCombine)
	bm := max(m.BounceCombine, other.BounceCombine)
	return fm.combine(m.Friction, other.Friction), bm.combine(m.Bounciness, other.Bounciness)
}
