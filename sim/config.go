package sim

import (
	"fmt"
	"math"
)

const (
	// DefaultIntegrationStep is the sub-step length in seconds.
	DefaultIntegrationStep = 1e-3
	// DefaultPrecision is the tolerance used to accept Advance durations.
	DefaultPrecision = 1e-8
)

// EngineConfig groups the numerical parameters of an Engine.
type EngineConfig struct {
	IntegrationStep float64 // sub-step length in seconds (must be > 0)
	Precision       float64 // duration tolerance in seconds (must be > 0)
}

// NewEngineConfig creates an EngineConfig with all fields explicitly set.
func NewEngineConfig(integrationStep, precision float64) EngineConfig {
	return EngineConfig{IntegrationStep: integrationStep, Precision: precision}
}

// DefaultEngineConfig returns the 1 ms / 1e-8 s configuration.
func DefaultEngineConfig() EngineConfig {
	return NewEngineConfig(DefaultIntegrationStep, DefaultPrecision)
}

// Validate checks that both parameters are finite and positive.
func (c EngineConfig) Validate() error {
	if !(c.IntegrationStep > 0) || math.IsInf(c.IntegrationStep, 0) {
		return fmt.Errorf("%w: integration step must be positive and finite, got %v", ErrInvalidConfig, c.IntegrationStep)
	}
	if !(c.Precision > 0) || math.IsInf(c.Precision, 0) {
		return fmt.Errorf("%w: precision must be positive and finite, got %v", ErrInvalidConfig, c.Precision)
	}
	return nil
}
