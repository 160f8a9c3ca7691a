package sim

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// ChannelParams configures one Gaussian noise channel.
type ChannelParams struct {
	Enable   bool    `yaml:"enable"`
	Mean     float64 `yaml:"mean"`
	Variance float64 `yaml:"variance"` // must be >= 0
}

// NoiseGeneratorParams configures the three sensor noise channels.
// The zero value disables all of them.
type NoiseGeneratorParams struct {
	Gyro  ChannelParams `yaml:"gyro"`
	Accel ChannelParams `yaml:"accel"`
	Lidar ChannelParams `yaml:"lidar"`
}

// Validate checks that every channel has a finite mean and a finite, non-negative variance.
func (p NoiseGeneratorParams) Validate() error {
	channels := []struct {
		name string
		c    ChannelParams
	}{{"gyro", p.Gyro}, {"accel", p.Accel}, {"lidar", p.Lidar}}
	for _, ch := range channels {
		if math.IsNaN(ch.c.Mean) || math.IsInf(ch.c.Mean, 0) {
			return fmt.Errorf("%w: %s mean must be finite, got %v", ErrInvalidConfig, ch.name, ch.c.Mean)
		}
		if !(ch.c.Variance >= 0) || math.IsInf(ch.c.Variance, 0) {
			return fmt.Errorf("%w: %s variance must be non-negative and finite, got %v", ErrInvalidConfig, ch.name, ch.c.Variance)
		}
	}
	return nil
}

// gaussian is one noise channel drawing from the shared source.
type gaussian struct {
	enabled bool
	mean    float64
	stdDev  float64
}

func newGaussian(c ChannelParams) gaussian {
	return gaussian{enabled: c.Enable, mean: c.Mean, stdDev: math.Sqrt(c.Variance)}
}

func (g gaussian) sample(rng *rand.Rand) float64 {
	return rng.NormFloat64()*g.stdDev + g.mean
}

// NoiseGenerator injects additive Gaussian noise into sensor readings.
//
// All channels share one bit source: identical seed and identical call
// sequence give identical noise, and reordering calls changes it. Disabled
// channels draw nothing, so toggling one never shifts another's sequence.
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type NoiseGenerator struct {
	rng    *rand.Rand
	gyro   gaussian
	accel  gaussian
	lidar  gaussian
	params NoiseGeneratorParams
}

// NewNoiseGenerator validates params and seeds the shared source from key.
func NewNoiseGenerator(params NoiseGeneratorParams, key SimulationKey) (*NoiseGenerator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &NoiseGenerator{
		rng:    newBitSource(key),
		gyro:   newGaussian(params.Gyro),
		accel:  newGaussian(params.Accel),
		lidar:  newGaussian(params.Lidar),
		params: params,
	}, nil
}

// Params returns the configuration the generator was built with.
func (n *NoiseGenerator) Params() NoiseGeneratorParams { return n.params }

// ApplyToGyro adds one draw to the yaw-rate (z) component.
func (n *NoiseGenerator) ApplyToGyro(gyro *r3.Vec) {
	if !n.gyro.enabled {
		return
	}
	gyro.Z += n.gyro.sample(n.rng)
}

// ApplyToAccel adds one draw to the x component, then one to the y component.
func (n *NoiseGenerator) ApplyToAccel(accel *r3.Vec) {
	if !n.accel.enabled {
		return
	}
	accel.X += n.accel.sample(n.rng)
	accel.Y += n.accel.sample(n.rng)
}

// ApplyToLidar adds one draw per range sample, in index order.
func (n *NoiseGenerator) ApplyToLidar(ranges []float32) {
	if !n.lidar.enabled {
		return
	}
	for i := range ranges {
		ranges[i] += float32(n.lidar.sample(n.rng))
	}
}
