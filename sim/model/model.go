package model

import (
	"math"
)

// Steering holds the middle (bicycle) steering angle together with the
// Ackermann angles of the real left and right front wheels.
type Steering struct {
	Middle float64
	Left   float64
	Right  float64
}

// Twist is a planar velocity: signed linear speed along heading and yaw rate.
type Twist struct {
	Velocity        float64
	AngularVelocity float64
}

// Target is what the rate limiter tracks, expressed at the rear axle.
// A nil Acceleration means "derive it from velocity tracking"; a non-nil
// value (including zero) is used as given, within limits.
type Target struct {
	Velocity     float64
	Acceleration *float64
	Steering     float64
}

// Model is an immutable vehicle description.
type Model struct {
	params Params
}

// New validates params and returns a Model.
func New(params Params) (*Model, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Model{params: params}, nil
}

func (m *Model) Params() Params            { return m.params }
func (m *Model) WheelBase() float64        { return m.params.WheelBase }
func (m *Model) BaseToRear() float64       { return m.params.BaseToRear }
func (m *Model) MaxAcceleration() float64  { return m.params.MaxAcceleration }
func (m *Model) MaxSteeringAngle() float64 { return m.params.MaxSteeringAngle }
func (m *Model) MaxSteeringRate() float64  { return m.params.MaxSteeringRate }
func (m *Model) Lidar() LidarParams        { return m.params.Lidar }
func (m *Model) Imu() ImuParams            { return m.params.Imu }

// LimitSteering projects a middle steering angle into the allowed range.
func (m *Model) LimitSteering(steering float64) float64 {
	return clamp(steering, -m.params.MaxSteeringAngle, m.params.MaxSteeringAngle)
}

// SteeringFromCurvature returns the middle steering angle that follows a
// path of the given curvature. The result is not limited.
func (m *Model) SteeringFromCurvature(curvature float64) float64 {
	return math.Atan(curvature * m.params.WheelBase)
}

// CurvatureFromSteering is the inverse of SteeringFromCurvature.
func (m *Model) CurvatureFromSteering(steering float64) float64 {
	return math.Tan(steering) / m.params.WheelBase
}

// WheelSteering splits a middle steering angle into Ackermann wheel angles.
func (m *Model) WheelSteering(middle float64) Steering {
	k := m.CurvatureFromSteering(middle)
	half := m.params.TrackWidth / 2
	return Steering{
		Middle: middle,
		Left:   math.Atan2(m.params.WheelBase*k, 1-k*half),
		Right:  math.Atan2(m.params.WheelBase*k, 1+k*half),
	}
}

// leverRatio is |v_base| / |v_rear| for a rigid body turning with the given
// middle steering: the base origin sits base_to_rear ahead of the rear axle.
func (m *Model) leverRatio(steering float64) float64 {
	lateral := m.params.BaseToRear * math.Tan(steering) / m.params.WheelBase
	return math.Sqrt(1 + lateral*lateral)
}

// RearToBaseVelocity converts a rear-axle speed into the base-frame speed.
func (m *Model) RearToBaseVelocity(velocity, steering float64) float64 {
	return velocity * m.leverRatio(steering)
}

// BaseToRearVelocity converts a base-frame speed into the rear-axle speed.
func (m *Model) BaseToRearVelocity(velocity, steering float64) float64 {
	return velocity / m.leverRatio(steering)
}

// LimitedRates returns the acceleration and steering angular velocity that
// move (velocity, steering) toward target within one step of length
// 1/inverseStep, never exceeding the declared physical limits.
func (m *Model) LimitedRates(velocity, steering float64, target Target, inverseStep float64) (acceleration, steeringVelocity float64) {
	maxAcc := m.params.MaxAcceleration
	if target.Acceleration != nil {
		acceleration = clamp(*target.Acceleration, -maxAcc, maxAcc)
	} else {
		acceleration = clamp((target.Velocity-velocity)*inverseStep, -maxAcc, maxAcc)
	}

	maxRate := m.params.MaxSteeringRate
	desired := m.LimitSteering(target.Steering)
	steeringVelocity = clamp((desired-steering)*inverseStep, -maxRate, maxRate)
	return acceleration, steeringVelocity
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
