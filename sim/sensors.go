package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/trucksim/trucksim/sim/geom"
)

// imuAngularVelocity expresses the body yaw rate in the IMU frame and adds gyro noise.
func (e *Engine) imuAngularVelocity(angularVelocity float64) r3.Vec {
	gyro := e.cache.bodyToImu.Rotate(r3.Vec{Z: angularVelocity})
	e.noise.ApplyToGyro(&gyro)
	return gyro
}

// imuLinearAcceleration moves the rear-axle acceleration to the IMU lever
// arm r, rotates it into the IMU frame and adds accel noise.
//
// The rear axle does not slip sideways, so its body-frame acceleration is
// (a, v*w). The offset point adds the centripetal term -w^2 r and the
// tangential term alpha r_perp.
func (e *Engine) imuLinearAcceleration(velocity, acceleration, angularVelocity, angularAcceleration float64) r3.Vec {
	r := e.cache.rearToImu
	a := r2.Vec{X: acceleration, Y: velocity * angularVelocity}
	a = r2.Add(a, r2.Scale(-angularVelocity*angularVelocity, r))
	a = r2.Add(a, r2.Scale(angularAcceleration, geom.Perp(r)))

	accel := e.cache.bodyToImu.Rotate(r3.Vec{X: a.X, Y: a.Y})
	e.noise.ApplyToAccel(&accel)
	return accel
}

// lidarRanges ray casts the scan against the map. Returns outside
// [range_min, range_max] are reported as +Inf. Lidar noise is added last.
func (e *Engine) lidarRanges(pose geom.Pose) []float32 {
	params := e.model.Lidar()
	beams := params.Beams()
	if beams == 0 {
		return nil
	}
	ranges := make([]float32, beams)
	for i := range ranges {
		angle := pose.Yaw + params.AngleMin + float64(i)*params.AngleIncrement
		d := e.obstacles.RayCast(pose.Pos, angle, params.RangeMax)
		if d < params.RangeMin {
			d = math.Inf(1)
		}
		ranges[i] = float32(d)
	}
	e.noise.ApplyToLidar(ranges)
	return ranges
}
