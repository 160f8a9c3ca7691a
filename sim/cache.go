package sim

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/trucksim/trucksim/sim/geom"
	"github.com/trucksim/trucksim/sim/model"
)

// cache holds constants derived from the integration step and the vehicle
// geometry. It must be rebuilt whenever the step changes.
type cache struct {
	integrationStep2       float64 // step / 2
	integrationStep6       float64 // step / 6
	inverseIntegrationStep float64
	inverseWheelBase       float64
	rearToLidar            r2.Vec // body frame, from the rear axle
	rearToImu              r2.Vec // body frame, from the rear axle
	bodyToImu              r3.Rotation
}

func newCache(m *model.Model, integrationStep float64) cache {
	lidar, imu := m.Lidar(), m.Imu()
	return cache{
		integrationStep2:       integrationStep / 2,
		integrationStep6:       integrationStep / 6,
		inverseIntegrationStep: 1 / integrationStep,
		inverseWheelBase:       1 / m.WheelBase(),
		rearToLidar:            r2.Vec{X: m.BaseToRear() + lidar.OffsetX, Y: lidar.OffsetY},
		rearToImu:              r2.Vec{X: m.BaseToRear() + imu.OffsetX, Y: imu.OffsetY},
		bodyToImu:              geom.RotationFromRPY(imu.Roll, imu.Pitch, imu.Yaw),
	}
}
