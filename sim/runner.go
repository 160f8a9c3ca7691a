package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/trucksim/trucksim/sim/geom"
	"github.com/trucksim/trucksim/sim/trace"
)

// RunResult reports how a scenario ended.
type RunResult struct {
	Final     TruckState
	Completed bool // false when stopped early by stop_on_collision
}

// RunScenario resets e to the scenario start, loads the scenario map if one
// is named, then plays every segment, advancing in sample-interval chunks and
// recording a snapshot after each chunk into st (which may be nil).
func RunScenario(e *Engine, spec *ScenarioSpec, st *trace.SimulationTrace) (*RunResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("validating scenario: %w", err)
	}
	step := e.params.IntegrationStep
	chunk := max(int64(1), int64(math.Round(spec.sampleInterval()/step)))

	start := geom.NewPose(spec.Start.X, spec.Start.Y, spec.Start.Yaw)
	if err := e.ResetBase(start, spec.Start.Steering, spec.Start.Velocity); err != nil {
		return nil, fmt.Errorf("resetting base: %w", err)
	}
	if spec.Map != "" {
		if err := e.ResetMap(spec.Map); err != nil {
			return nil, err
		}
	}
	snap := e.TruckState()
	st.RecordState(stateRecord(snap))

	for i, seg := range spec.Segments {
		steps := math.Round(seg.Duration / step)
		if math.Abs(steps*step-seg.Duration) > e.params.Precision {
			return nil, fmt.Errorf("segment[%d]: %w: %v s is not a multiple of the %v s step",
				i, ErrInvalidDuration, seg.Duration, step)
		}
		if err := e.SetControl(Control{Velocity: seg.Velocity, Acceleration: seg.Acceleration, Curvature: seg.Curvature}); err != nil {
			return nil, fmt.Errorf("segment[%d]: %w", i, err)
		}
		logrus.Debugf("[t=%.3fs] segment %d: velocity=%.3f curvature=%.3f duration=%.3f",
			e.Time(), i, seg.Velocity, seg.Curvature, seg.Duration)

		for remaining := int64(steps); remaining > 0; {
			n := min(chunk, remaining)
			before := e.Status()
			if err := e.Advance(float64(n) * step); err != nil {
				return nil, fmt.Errorf("segment[%d]: %w", i, err)
			}
			remaining -= n

			snap = e.TruckState()
			st.RecordState(stateRecord(snap))
			if before == StatusActive && snap.Status == StatusCollided {
				logrus.Infof("[t=%.3fs] collided during segment %d", snap.CollisionTime, i)
				st.RecordCollision(trace.CollisionRecord{
					Time:    snap.CollisionTime,
					X:       snap.CollisionPose.Pos.X,
					Y:       snap.CollisionPose.Pos.Y,
					Yaw:     snap.CollisionPose.Yaw,
					Segment: i,
				})
				if spec.StopOnCollision {
					return &RunResult{Final: snap, Completed: false}, nil
				}
			}
		}
	}
	return &RunResult{Final: snap, Completed: true}, nil
}

func stateRecord(s TruckState) trace.StateRecord {
	return trace.StateRecord{
		Time:            s.Time,
		X:               s.BasePose.Pos.X,
		Y:               s.BasePose.Pos.Y,
		Yaw:             s.BasePose.Yaw,
		Steering:        s.Steering.Middle,
		Velocity:        s.BaseTwist.Velocity,
		Acceleration:    s.Acceleration,
		AngularVelocity: s.BaseTwist.AngularVelocity,
		Status:          string(s.Status),
	}
}
