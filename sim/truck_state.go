package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/trucksim/trucksim/sim/geom"
	"github.com/trucksim/trucksim/sim/model"
)

// TruckState is a read-only snapshot of the simulated vehicle.
type TruckState struct {
	Time          float64 // seconds since the last ResetBase
	Status        Status
	CollisionTime float64   // valid only when Status is StatusCollided
	CollisionPose geom.Pose // rear axle at CollisionTime

	BasePose       geom.Pose
	RearPose       geom.Pose
	Steering       model.Steering
	TargetSteering model.Steering

	BaseTwist           model.Twist // base-frame speed, yaw rate
	RearTwist           model.Twist
	Acceleration        float64 // rear-axle, from the rate limiter
	AngularAcceleration float64

	LidarPose   geom.Pose
	LidarRanges []float32 // nil when the model has no lidar scan

	ImuAngularVelocity    r3.Vec
	ImuLinearAcceleration r3.Vec
}

// TruckState returns a snapshot of the vehicle. It does not change the
// vehicle state, clock or status; it does draw sensor noise, in the fixed
// order gyro, accel, lidar.
func (e *Engine) TruckState() TruckState {
	s := e.rear
	v, steering := s[idxVelocity], s[idxSteering]
	acceleration, steeringVelocity := e.currentRates()

	d := e.derivative(s, acceleration, steeringVelocity)
	angularVelocity := d[idxYaw]
	tan := math.Tan(steering)
	cos := math.Cos(steering)
	angularAcceleration := (acceleration*tan + v*steeringVelocity/(cos*cos)) * e.cache.inverseWheelBase

	rear := e.rearPose()
	lidarPose := geom.Pose{Pos: rear.Transform(e.cache.rearToLidar), Yaw: rear.Yaw}

	// noise draw order: gyro, accel, lidar
	gyro := e.imuAngularVelocity(angularVelocity)
	accel := e.imuLinearAcceleration(v, acceleration, angularVelocity, angularAcceleration)
	ranges := e.lidarRanges(lidarPose)

	return TruckState{
		Time:          e.Time(),
		Status:        e.status,
		CollisionTime: e.collisionTime,
		CollisionPose: e.collisionPose,

		BasePose:       rear.Advance(e.model.BaseToRear()),
		RearPose:       rear,
		Steering:       e.model.WheelSteering(steering),
		TargetSteering: e.model.WheelSteering(e.target().Steering),

		BaseTwist:           model.Twist{Velocity: e.model.RearToBaseVelocity(v, steering), AngularVelocity: angularVelocity},
		RearTwist:           model.Twist{Velocity: v, AngularVelocity: angularVelocity},
		Acceleration:        acceleration,
		AngularAcceleration: angularAcceleration,

		LidarPose:   lidarPose,
		LidarRanges: ranges,

		ImuAngularVelocity:    gyro,
		ImuLinearAcceleration: accel,
	}
}
