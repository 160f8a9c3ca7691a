package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/trucksim/trucksim/sim/internal/testutil"
	"github.com/trucksim/trucksim/sim/model"
)

// wallMapYAML is a 1 m x 2 m obstacle spanning x in [2, 3], y in [-1, 1].
const wallMapYAML = `
version: "1"
obstacles:
  - id: wall
    polygon:
      - {x: 2, y: -1}
      - {x: 3, y: -1}
      - {x: 3, y: 1}
      - {x: 2, y: 1}
`

// testParams is a unit-wheelbase vehicle with the base at the rear axle.
func testParams() model.Params {
	return model.Params{
		WheelBase:        1.0,
		TrackWidth:       0.5,
		MaxAcceleration:  2.0,
		MaxSteeringAngle: 0.5,
		MaxSteeringRate:  1.0,
	}
}

func newTestModel(t *testing.T, p model.Params) *model.Model {
	t.Helper()
	m, err := model.New(p)
	require.NoError(t, err)
	return m
}

func newTestNoise(t *testing.T, p NoiseGeneratorParams, seed int64) *NoiseGenerator {
	t.Helper()
	n, err := NewNoiseGenerator(p, NewSimulationKey(seed))
	require.NoError(t, err)
	return n
}

func newTestEngine(t *testing.T, p model.Params, noise *NoiseGenerator, cfg EngineConfig) *Engine {
	t.Helper()
	e, err := NewEngine(newTestModel(t, p), noise, cfg)
	require.NoError(t, err)
	return e
}

func writeWallMap(t *testing.T) string {
	t.Helper()
	return testutil.WriteFixture(t, "map.yaml", wallMapYAML)
}

func r3Vec(x, y, z float64) r3.Vec { return r3.Vec{X: x, Y: y, Z: z} }
