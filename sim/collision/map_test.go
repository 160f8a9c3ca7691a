package collision

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/trucksim/trucksim/sim/geom"
)

const wallYAML = `
version: "1"
obstacles:
  - id: wall
    polygon:
      - {x: 2, y: -1}
      - {x: 3, y: -1}
      - {x: 3, y: 1}
      - {x: 2, y: 1}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMap_ZeroValueIsEmpty(t *testing.T) {
	var m Map
	assert.False(t, m.IsOccupied(geom.NewPose(0, 0, 0)))
	assert.True(t, math.IsInf(m.RayCast(r2.Vec{}, 0, 100), 1))
	assert.Equal(t, 0, m.Len())
}

func TestMap_LoadAndQuery(t *testing.T) {
	m := &Map{}
	path := writeFile(t, "map.yaml", wallYAML)
	require.NoError(t, m.Load(path))
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, path, m.Path())

	assert.True(t, m.IsOccupied(geom.NewPose(2.5, 0, 1.0)))
	assert.False(t, m.IsOccupied(geom.NewPose(1.5, 0, 0)))
	assert.False(t, m.IsOccupied(geom.NewPose(2.5, 1.5, 0)))

	m.Clear()
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, "", m.Path())
	assert.False(t, m.IsOccupied(geom.NewPose(2.5, 0, 0)))
}

func TestMap_FailedLoadKeepsPreviousObstacles(t *testing.T) {
	m := &Map{}
	good := writeFile(t, "map.yaml", wallYAML)
	require.NoError(t, m.Load(good))

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.yaml"), nil},
		{"unknown key", writeFile(t, "typo.yaml", "obstacle: []\n"), nil},
		{"degenerate polygon", writeFile(t, "degenerate.yaml", `
obstacles:
  - id: line
    polygon: [{x: 0, y: 0}, {x: 1, y: 0}]
`), ErrInvalidMap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Load(tt.path)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			// THEN the previous map is still in place
			assert.Equal(t, good, m.Path())
			assert.True(t, m.IsOccupied(geom.NewPose(2.5, 0, 0)))
		})
	}
}

func TestMap_RayCast(t *testing.T) {
	m := NewMap(geom.Polygon{{X: 2, Y: -1}, {X: 3, Y: -1}, {X: 3, Y: 1}, {X: 2, Y: 1}})

	assert.InDelta(t, 2.0, m.RayCast(r2.Vec{}, 0, 10), 1e-12)
	assert.InDelta(t, 1.5, m.RayCast(r2.Vec{X: 0.5}, 0, 10), 1e-12)
	assert.True(t, math.IsInf(m.RayCast(r2.Vec{}, math.Pi, 10), 1), "looking away")
	assert.True(t, math.IsInf(m.RayCast(r2.Vec{}, 0, 1.5), 1), "beyond max range")

	// from inside the obstacle the nearest edge is hit
	assert.InDelta(t, 0.5, m.RayCast(r2.Vec{X: 2.5}, 0, 10), 1e-12)
}

func TestNewMap_MultipleObstacles(t *testing.T) {
	m := NewMap(
		geom.Polygon{{X: 2, Y: -1}, {X: 3, Y: -1}, {X: 3, Y: 1}, {X: 2, Y: 1}},
		geom.Polygon{{X: -3, Y: -1}, {X: -2, Y: -1}, {X: -2, Y: 1}, {X: -3, Y: 1}},
	)
	assert.Equal(t, 2, m.Len())
	assert.True(t, m.IsOccupied(geom.NewPose(-2.5, 0, 0)))
	assert.InDelta(t, 2.0, m.RayCast(r2.Vec{}, math.Pi, 10), 1e-9)
}
