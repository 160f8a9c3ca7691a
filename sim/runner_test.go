package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trucksim/trucksim/sim/trace"
)

func newStatesTrace() *trace.SimulationTrace {
	return trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelStates})
}

func TestRunScenario_RecordsEverySampleInterval(t *testing.T) {
	// GIVEN a 1 s straight segment sampled every 0.1 s without a map
	e := newTestEngine(t, testParams(), nil, DefaultEngineConfig())
	spec := &ScenarioSpec{
		Start:    StartSpec{Velocity: 1},
		Segments: []SegmentSpec{{Duration: 1, Velocity: 1}},
	}
	st := newStatesTrace()

	// WHEN running it
	res, err := RunScenario(e, spec, st)
	require.NoError(t, err)

	// THEN the initial state plus ten samples are recorded
	assert.True(t, res.Completed)
	require.Len(t, st.States, 11)
	assert.Zero(t, st.States[0].Time)
	assert.InDelta(t, 1.0, st.States[10].Time, 1e-12)
	assert.InDelta(t, 1.0, st.States[10].X, 1e-9)
	assert.Equal(t, string(StatusActive), st.States[10].Status)
	assert.Empty(t, st.Collisions)
	assert.InDelta(t, 1.0, res.Final.BasePose.Pos.X, 1e-9)
}

func TestRunScenario_LastChunkIsShorter(t *testing.T) {
	e := newTestEngine(t, testParams(), nil, DefaultEngineConfig())
	spec := &ScenarioSpec{
		SampleInterval: 0.4,
		Segments:       []SegmentSpec{{Duration: 1, Velocity: 1}},
	}
	st := newStatesTrace()

	_, err := RunScenario(e, spec, st)
	require.NoError(t, err)

	// 0, 0.4, 0.8, 1.0
	require.Len(t, st.States, 4)
	assert.InDelta(t, 0.8, st.States[2].Time, 1e-12)
	assert.InDelta(t, 1.0, st.States[3].Time, 1e-12)
}

func TestRunScenario_StopOnCollision(t *testing.T) {
	// GIVEN a scenario driving into the wall at x = 2
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "map.yaml"), []byte(wallMapYAML), 0o644))
	spec := &ScenarioSpec{
		Map:             filepath.Join(dir, "map.yaml"),
		Start:           StartSpec{Velocity: 1},
		StopOnCollision: true,
		Segments: []SegmentSpec{
			{Duration: 3, Velocity: 1},
			{Duration: 3, Velocity: 1, Curvature: 0.5},
		},
	}
	e := newTestEngine(t, testParams(), nil, DefaultEngineConfig())
	st := newStatesTrace()

	// WHEN running it
	res, err := RunScenario(e, spec, st)
	require.NoError(t, err)

	// THEN the run stops in the first segment with one collision recorded
	assert.False(t, res.Completed)
	assert.Equal(t, StatusCollided, res.Final.Status)
	require.Len(t, st.Collisions, 1)
	c := st.Collisions[0]
	assert.Equal(t, 0, c.Segment)
	assert.InDelta(t, 2.0, c.X, 0.002)
	assert.InDelta(t, 2.0, c.Time, 0.002)
	assert.Equal(t, string(StatusCollided), st.States[len(st.States)-1].Status)
	assert.Less(t, res.Final.Time, 2.2)
}

func TestRunScenario_ContinuesThroughCollision(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "map.yaml"), []byte(wallMapYAML), 0o644))
	spec := &ScenarioSpec{
		Map:      filepath.Join(dir, "map.yaml"),
		Start:    StartSpec{Velocity: 1},
		Segments: []SegmentSpec{{Duration: 4, Velocity: 1}},
	}
	e := newTestEngine(t, testParams(), nil, DefaultEngineConfig())
	st := newStatesTrace()

	res, err := RunScenario(e, spec, st)
	require.NoError(t, err)

	assert.True(t, res.Completed)
	assert.Len(t, st.Collisions, 1, "collision is recorded once")
	assert.InDelta(t, 4.0, res.Final.BasePose.Pos.X, 1e-9)
}

func TestRunScenario_Errors(t *testing.T) {
	tests := []struct {
		name string
		spec *ScenarioSpec
		want error
	}{
		{
			name: "duration off the step grid",
			spec: &ScenarioSpec{Segments: []SegmentSpec{{Duration: 0.0005}}},
			want: ErrInvalidDuration,
		},
		{
			name: "start steering beyond limit",
			spec: &ScenarioSpec{Start: StartSpec{Steering: 1}, Segments: []SegmentSpec{{Duration: 1}}},
			want: ErrInvalidControl,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, testParams(), nil, DefaultEngineConfig())
			_, err := RunScenario(e, tt.spec, nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("invalid scenario", func(t *testing.T) {
		e := newTestEngine(t, testParams(), nil, DefaultEngineConfig())
		_, err := RunScenario(e, &ScenarioSpec{}, nil)
		assert.Error(t, err)
	})

	t.Run("missing map", func(t *testing.T) {
		e := newTestEngine(t, testParams(), nil, DefaultEngineConfig())
		spec := &ScenarioSpec{Map: filepath.Join(t.TempDir(), "absent.yaml"), Segments: []SegmentSpec{{Duration: 1}}}
		_, err := RunScenario(e, spec, nil)
		assert.Error(t, err)
	})
}

func TestRunScenario_NilTraceAndDisabledTrace(t *testing.T) {
	spec := &ScenarioSpec{Segments: []SegmentSpec{{Duration: 0.5, Velocity: 1}}}

	e := newTestEngine(t, testParams(), nil, DefaultEngineConfig())
	_, err := RunScenario(e, spec, nil)
	require.NoError(t, err)

	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelNone})
	e = newTestEngine(t, testParams(), nil, DefaultEngineConfig())
	_, err = RunScenario(e, spec, st)
	require.NoError(t, err)
	assert.Empty(t, st.States)
}

func TestRunScenario_DeterministicWithNoise(t *testing.T) {
	// GIVEN two runs of the same scenario with the same seed
	spec := &ScenarioSpec{
		Segments: []SegmentSpec{
			{Duration: 1, Velocity: 2, Curvature: 0.2},
			{Duration: 1, Velocity: 0.5, Curvature: -0.3},
		},
	}
	noise := NoiseGeneratorParams{Gyro: ChannelParams{Enable: true, Variance: 0.1}}
	run := func() (*RunResult, *trace.SimulationTrace) {
		e := newTestEngine(t, testParams(), newTestNoise(t, noise, 5), DefaultEngineConfig())
		st := newStatesTrace()
		res, err := RunScenario(e, spec, st)
		require.NoError(t, err)
		return res, st
	}

	r1, t1 := run()
	r2, t2 := run()

	// THEN the results and recorded states match exactly
	assert.Equal(t, r1.Final, r2.Final)
	assert.Equal(t, t1.States, t2.States)
}
