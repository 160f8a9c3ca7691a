// Package testutil provides shared test infrastructure for the simulator:
// fixture files and floating-point assertion helpers used across the sim/
// test packages.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/trucksim/trucksim/sim/geom"
)

// WriteFixture writes content to name inside a per-test temporary directory
// and returns the full path.
func WriteFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture %s: %v", name, err)
	}
	return path
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertPoseNear compares two poses component-wise with absolute tolerance.
func AssertPoseNear(t *testing.T, name string, want, got geom.Pose, tol float64) {
	t.Helper()
	if math.Abs(want.Pos.X-got.Pos.X) > tol || math.Abs(want.Pos.Y-got.Pos.Y) > tol || math.Abs(want.Yaw-got.Yaw) > tol {
		t.Errorf("%s: got (%v, %v, yaw=%v), want (%v, %v, yaw=%v) within %v",
			name, got.Pos.X, got.Pos.Y, got.Yaw, want.Pos.X, want.Pos.Y, want.Yaw, tol)
	}
}

// AssertVec3Near compares two vectors component-wise with absolute tolerance.
func AssertVec3Near(t *testing.T, name string, want, got r3.Vec, tol float64) {
	t.Helper()
	if math.Abs(want.X-got.X) > tol || math.Abs(want.Y-got.Y) > tol || math.Abs(want.Z-got.Z) > tol {
		t.Errorf("%s: got %+v, want %+v within %v", name, got, want, tol)
	}
}
