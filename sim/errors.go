package sim

import "errors"

var (
	// ErrInvalidConfig indicates a non-positive integration step or precision,
	// or invalid noise parameters. Fatal to the instance being built.
	ErrInvalidConfig = errors.New("invalid engine configuration")

	// ErrInvalidDuration indicates an Advance duration that is negative or not
	// an integer multiple of the integration step within precision.
	ErrInvalidDuration = errors.New("invalid advance duration")

	// ErrInvalidControl indicates a non-finite control or reset value.
	ErrInvalidControl = errors.New("invalid control command")
)
