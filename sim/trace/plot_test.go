package trace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavePlot_WritesImage(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelStates})
	for i := 0; i < 10; i++ {
		st.RecordState(StateRecord{Time: float64(i) * 0.1, X: float64(i) * 0.1, Y: float64(i*i) * 0.01})
	}
	st.RecordCollision(CollisionRecord{Time: 0.8, X: 0.8, Y: 0.64})

	path := filepath.Join(t.TempDir(), "plots", "trajectory.png")
	require.NoError(t, SavePlot(st, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSavePlot_EmptyTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	assert.ErrorIs(t, SavePlot(nil, path), ErrEmptyTrace)
	assert.ErrorIs(t, SavePlot(NewSimulationTrace(TraceConfig{}), path), ErrEmptyTrace)
}
