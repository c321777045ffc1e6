package components

import "errors"

var ErrInvalidMass = errors.New("components: mass must be positive")
