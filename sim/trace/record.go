// Package trace provides run-trace recording for vehicle simulations.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// StateRecord captures one sampled vehicle snapshot.
type StateRecord struct {
	Time            float64 `json:"time"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	Yaw             float64 `json:"yaw"`
	Steering        float64 `json:"steering"`
	Velocity        float64 `json:"velocity"`
	Acceleration    float64 `json:"acceleration"`
	AngularVelocity float64 `json:"angular_velocity"`
	Status          string  `json:"status"`
}

// CollisionRecord captures a collision transition and the rear-axle pose where it happened.
type CollisionRecord struct {
	Time    float64 `json:"time"` // sub-step time of the transition
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Yaw     float64 `json:"yaw"`
	Segment int     `json:"segment"` // index of the scenario segment
}
