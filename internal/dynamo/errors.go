package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for engine configuration and runs.
var (
	// ErrEmptySystem indicates a store built without any bodies.
	ErrEmptySystem = errors.New("dynamo: system has no bodies")

	// ErrInvalidMass indicates a mass that is zero, negative or not finite.
	ErrInvalidMass = errors.New("dynamo: mass must be positive and finite")

	// ErrAnchorRange indicates an anchor index outside the body list.
	ErrAnchorRange = errors.New("dynamo: anchor index out of range")

	// ErrNoAnchor indicates orbital seeding without an anchor body.
	ErrNoAnchor = errors.New("dynamo: orbital seeding requires an anchor")

	// ErrCoincidentAnchor indicates a body seeded on top of the anchor.
	ErrCoincidentAnchor = errors.New("dynamo: body coincides with anchor")

	// ErrInvalidFactor indicates a negative or non-finite eccentricity factor.
	ErrInvalidFactor = errors.New("dynamo: eccentricity factor must be non-negative")

	// ErrInvalidCoupling indicates a gravitational constant that is not usable.
	ErrInvalidCoupling = errors.New("dynamo: gravitational constant must be positive and finite")

	// ErrInvalidState indicates NaN or Inf in a body after a tick.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")
)

// ConfigError wraps a validation failure with the offending body.
type ConfigError struct {
	Body    string
	Field   string
	Wrapped error
}

func (e *ConfigError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Wrapped)
	}
	return fmt.Sprintf("body %q %s: %v", e.Body, e.Field, e.Wrapped)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}

// SimulationError wraps an error with the tick it occurred on.
type SimulationError struct {
	Tick    int
	Time    float64
	Body    string
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("tick %d (t=%.4f) body %q: %v", e.Tick, e.Time, e.Body, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
