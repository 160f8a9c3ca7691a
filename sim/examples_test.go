package sim

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trucksim/trucksim/sim/collision"
	"github.com/trucksim/trucksim/sim/model"
	"github.com/trucksim/trucksim/sim/trace"
)

// TestExampleConfigs_Yard verifies that the example map loads with all obstacles.
func TestExampleConfigs_Yard(t *testing.T) {
	// GIVEN the yard.yaml example map
	m := &collision.Map{}

	// WHEN loading it
	require.NoError(t, m.Load(filepath.Join("..", "examples", "yard.yaml")))

	// THEN the dock wall and both trailers are present
	assert.Equal(t, 3, m.Len())
}

// TestExampleConfigs_ModelTruck verifies the standalone vehicle model example.
func TestExampleConfigs_ModelTruck(t *testing.T) {
	m, err := model.LoadModel(filepath.Join("..", "examples", "model-truck.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 0.32, m.WheelBase())
	assert.Equal(t, 721, m.Lidar().Beams())
}

// TestExampleConfigs_StraightIntoDock runs the example and checks it hits the dock wall.
func TestExampleConfigs_StraightIntoDock(t *testing.T) {
	// GIVEN the straight-into-dock.yaml scenario with a small test vehicle
	spec, err := LoadScenario(filepath.Join("..", "examples", "straight-into-dock.yaml"))
	require.NoError(t, err)
	require.NoError(t, spec.Validate())
	p := testParams()
	p.MaxAcceleration = 1.5
	e := newTestEngine(t, p, nil, DefaultEngineConfig())
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelStates})

	// WHEN running it
	res, err := RunScenario(e, spec, st)
	require.NoError(t, err)

	// THEN the run stops at the dock wall (x = 40)
	assert.False(t, res.Completed)
	require.Len(t, st.Collisions, 1)
	assert.InDelta(t, 40.0, st.Collisions[0].X, 0.01)
}

// TestExampleConfigs_LaneChange runs the example to completion without collisions.
func TestExampleConfigs_LaneChange(t *testing.T) {
	// GIVEN the lane-change.yaml scenario
	spec, err := LoadScenario(filepath.Join("..", "examples", "lane-change.yaml"))
	require.NoError(t, err)
	p := testParams()
	p.MaxAcceleration = 1.5
	e := newTestEngine(t, p, nil, DefaultEngineConfig())
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelStates})

	// WHEN running it
	res, err := RunScenario(e, spec, st)
	require.NoError(t, err)

	// THEN it completes, clear of the trailers, and comes to rest
	assert.True(t, res.Completed)
	assert.Empty(t, st.Collisions)
	assert.InDelta(t, 14.0, res.Final.Time, 1e-9)
	assert.InDelta(t, 0.0, res.Final.BaseTwist.Velocity, 1e-9)
	assert.Greater(t, res.Final.BasePose.Pos.Y, 0.0)
}
