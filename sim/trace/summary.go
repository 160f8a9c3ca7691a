package trace

import (
	"math"
)

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	RunID              string  `json:"run_id"`
	Samples            int     `json:"samples"`
	Duration           float64 `json:"duration"`
	Distance           float64 `json:"distance"` // polyline length through sampled positions
	MaxSpeed           float64 `json:"max_speed"`
	MaxAbsSteering     float64 `json:"max_abs_steering"`
	Collided           bool    `json:"collided"`
	FirstCollisionTime float64 `json:"first_collision_time"` // 0 when not collided
	Collisions         int     `json:"collisions"`
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil {
		return summary
	}
	summary.RunID = st.RunID
	summary.Samples = len(st.States)

	for i, s := range st.States {
		summary.MaxSpeed = math.Max(summary.MaxSpeed, math.Abs(s.Velocity))
		summary.MaxAbsSteering = math.Max(summary.MaxAbsSteering, math.Abs(s.Steering))
		if i > 0 {
			prev := st.States[i-1]
			summary.Distance += math.Hypot(s.X-prev.X, s.Y-prev.Y)
		}
	}
	if n := len(st.States); n > 0 {
		summary.Duration = st.States[n-1].Time - st.States[0].Time
	}

	summary.Collisions = len(st.Collisions)
	if summary.Collisions > 0 {
		summary.Collided = true
		summary.FirstCollisionTime = st.Collisions[0].Time
	}
	return summary
}
