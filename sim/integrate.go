package sim

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// State vector indices, rear-axle frame.
const (
	idxX = iota
	idxY
	idxYaw
	idxSteering
	idxVelocity
	stateDim
)

// state is the rear-axle kinematic state: x, y, yaw, middle steering, speed.
type state [stateDim]float64

// derivative is the bicycle-kinematics law. Acceleration and steering
// velocity are held constant across a sub-step.
func (e *Engine) derivative(s state, acceleration, steeringVelocity float64) state {
	v := s[idxVelocity]
	sin, cos := math.Sincos(s[idxYaw])
	return state{
		idxX:        v * cos,
		idxY:        v * sin,
		idxYaw:      v * math.Tan(s[idxSteering]) * e.cache.inverseWheelBase,
		idxSteering: steeringVelocity,
		idxVelocity: acceleration,
	}
}

// rk4 integrates the rear-axle state over one sub-step with the classical
// fourth-order Runge-Kutta scheme. The result is unclamped.
func (e *Engine) rk4(acceleration, steeringVelocity float64) state {
	y := e.rear
	var tmp state

	k1 := e.derivative(y, acceleration, steeringVelocity)
	floats.AddScaledTo(tmp[:], y[:], e.cache.integrationStep2, k1[:])
	k2 := e.derivative(tmp, acceleration, steeringVelocity)
	floats.AddScaledTo(tmp[:], y[:], e.cache.integrationStep2, k2[:])
	k3 := e.derivative(tmp, acceleration, steeringVelocity)
	floats.AddScaledTo(tmp[:], y[:], e.params.IntegrationStep, k3[:])
	k4 := e.derivative(tmp, acceleration, steeringVelocity)

	next := y
	floats.AddScaled(next[:], e.cache.integrationStep6, k1[:])
	floats.AddScaled(next[:], 2*e.cache.integrationStep6, k2[:])
	floats.AddScaled(next[:], 2*e.cache.integrationStep6, k3[:])
	floats.AddScaled(next[:], e.cache.integrationStep6, k4[:])
	return next
}
