package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/trucksim/trucksim/sim/collision"
	"github.com/trucksim/trucksim/sim/geom"
	"github.com/trucksim/trucksim/sim/model"
)

// Control is the pending command. It persists across Advance calls until
// replaced. Velocity is the base-frame speed; Curvature is converted to a
// middle steering angle through the wheel base. A nil Acceleration means the
// acceleration is derived from velocity tracking.
type Control struct {
	Velocity     float64
	Acceleration *float64
	Curvature    float64
}

// Engine simulates a single rear-driven, front-steered vehicle.
//
// Thread-safety: NOT thread-safe. Owned by a single goroutine; every call
// completes synchronously.
type Engine struct {
	params  EngineConfig
	cache   cache
	control Control

	clock         int64 // sub-steps since the last ResetBase
	status        Status
	collisionTime float64
	collisionPose geom.Pose // rear axle

	rear state

	model     *model.Model
	noise     *NoiseGenerator
	obstacles *collision.Map
}

// NewEngine builds an Engine that exclusively owns m and noise. A nil noise
// generator means noiseless sensors. The vehicle starts at rest at the
// origin with an empty map.
func NewEngine(m *model.Model, noise *NoiseGenerator, cfg EngineConfig) (*Engine, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: vehicle model is required", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if noise == nil {
		var err error
		if noise, err = NewNoiseGenerator(NoiseGeneratorParams{}, NewSimulationKey(0)); err != nil {
			return nil, err
		}
	}
	e := &Engine{
		params:    cfg,
		cache:     newCache(m, cfg.IntegrationStep),
		model:     m,
		noise:     noise,
		obstacles: &collision.Map{},
	}
	if err := e.ResetBase(geom.Pose{}, 0, 0); err != nil {
		return nil, err
	}
	return e, nil
}

// Config returns the numerical configuration.
func (e *Engine) Config() EngineConfig { return e.params }

// Model returns the vehicle model.
func (e *Engine) Model() *model.Model { return e.model }

// Status returns the current collision status.
func (e *Engine) Status() Status { return e.status }

// Time returns the simulation clock in seconds since the last ResetBase.
func (e *Engine) Time() float64 {
	return float64(e.clock) * e.params.IntegrationStep
}

// Control returns a copy of the pending control command.
func (e *Engine) Control() Control {
	c := e.control
	if c.Acceleration != nil {
		acc := *c.Acceleration
		c.Acceleration = &acc
	}
	return c
}

// ResetBase places the vehicle at pose with the given middle steering and
// base-frame velocity, zeroes the clock and clears the status. The pending
// control command is kept.
func (e *Engine) ResetBase(pose geom.Pose, steering, velocity float64) error {
	for name, v := range map[string]float64{
		"x": pose.Pos.X, "y": pose.Pos.Y, "yaw": pose.Yaw, "steering": steering, "velocity": velocity,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: reset %s must be finite, got %v", ErrInvalidControl, name, v)
		}
	}
	if math.Abs(steering) > e.model.MaxSteeringAngle() {
		return fmt.Errorf("%w: reset steering %v exceeds limit %v", ErrInvalidControl, steering, e.model.MaxSteeringAngle())
	}

	rear := pose.Advance(-e.model.BaseToRear())
	e.rear = state{
		idxX:        rear.Pos.X,
		idxY:        rear.Pos.Y,
		idxYaw:      rear.Yaw,
		idxSteering: steering,
		idxVelocity: e.model.BaseToRearVelocity(velocity, steering),
	}
	e.clock = 0
	e.status = StatusActive
	e.collisionTime = 0
	e.collisionPose = geom.Pose{}
	logrus.Debugf("reset base to (%.3f, %.3f, yaw=%.3f) steering=%.3f velocity=%.3f",
		pose.Pos.X, pose.Pos.Y, pose.Yaw, steering, velocity)
	return nil
}

// ResetMap replaces the obstacle map with the one stored at path. A load
// error is returned unchanged and the previous map stays in place.
func (e *Engine) ResetMap(path string) error {
	return e.obstacles.Load(path)
}

// EraseMap removes every obstacle.
func (e *Engine) EraseMap() {
	e.obstacles.Clear()
	logrus.Info("collision map erased")
}

// SetControl replaces the pending control command.
func (e *Engine) SetControl(c Control) error {
	if math.IsNaN(c.Velocity) || math.IsInf(c.Velocity, 0) {
		return fmt.Errorf("%w: velocity must be finite, got %v", ErrInvalidControl, c.Velocity)
	}
	if math.IsNaN(c.Curvature) || math.IsInf(c.Curvature, 0) {
		return fmt.Errorf("%w: curvature must be finite, got %v", ErrInvalidControl, c.Curvature)
	}
	if c.Acceleration != nil {
		acc := *c.Acceleration
		if math.IsNaN(acc) || math.IsInf(acc, 0) {
			return fmt.Errorf("%w: acceleration must be finite, got %v", ErrInvalidControl, acc)
		}
		c.Acceleration = &acc
	}
	e.control = c
	return nil
}

// SetBaseControl commands a velocity reached with an explicit acceleration
// along a path of the given curvature.
func (e *Engine) SetBaseControl(velocity, acceleration, curvature float64) error {
	return e.SetControl(Control{Velocity: velocity, Acceleration: &acceleration, Curvature: curvature})
}

// SetBaseVelocityControl commands a velocity along a path of the given
// curvature; the acceleration is derived by the model's rate limiter.
func (e *Engine) SetBaseVelocityControl(velocity, curvature float64) error {
	return e.SetControl(Control{Velocity: velocity, Curvature: curvature})
}

// Advance integrates the vehicle over seconds, split into
// round(seconds / step) sub-steps. The duration must be a non-negative
// multiple of the step within precision; otherwise ErrInvalidDuration is
// returned and nothing changes. A collision never stops the loop: the
// caller inspects Status afterwards.
func (e *Engine) Advance(seconds float64) error {
	step := e.params.IntegrationStep
	n := math.Round(seconds / step)
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 || math.Abs(n*step-seconds) > e.params.Precision {
		return fmt.Errorf("%w: %v s is not a non-negative multiple of the %v s step", ErrInvalidDuration, seconds, step)
	}
	logrus.Tracef("[t=%.6fs] advancing %d sub-steps", e.Time(), int64(n))
	for i := int64(0); i < int64(n); i++ {
		e.step()
	}
	return nil
}

// step runs one sub-step: rates, RK4, steering clamp, clock, collision check.
func (e *Engine) step() {
	acceleration, steeringVelocity := e.currentRates()
	e.rear = e.rk4(acceleration, steeringVelocity)
	e.rear[idxSteering] = e.model.LimitSteering(e.rear[idxSteering])
	e.clock++
	e.checkForCollisions()
}

// target converts the base-frame control into a rear-axle rate-limiter target.
func (e *Engine) target() model.Target {
	steering := e.model.LimitSteering(e.model.SteeringFromCurvature(e.control.Curvature))
	return model.Target{
		Velocity:     e.model.BaseToRearVelocity(e.control.Velocity, steering),
		Acceleration: e.control.Acceleration,
		Steering:     steering,
	}
}

func (e *Engine) currentRates() (acceleration, steeringVelocity float64) {
	return e.model.LimitedRates(e.rear[idxVelocity], e.rear[idxSteering], e.target(), e.cache.inverseIntegrationStep)
}

func (e *Engine) rearPose() geom.Pose {
	return geom.NewPose(e.rear[idxX], e.rear[idxY], e.rear[idxYaw])
}

func (e *Engine) checkForCollisions() {
	if e.status == StatusCollided {
		return
	}
	pose := e.rearPose()
	if e.obstacles.IsOccupied(pose) {
		e.status = StatusCollided
		e.collisionTime = e.Time()
		e.collisionPose = pose
		logrus.Warnf("[t=%.3fs] collision at (%.3f, %.3f)", e.collisionTime, pose.Pos.X, pose.Pos.Y)
	}
}
