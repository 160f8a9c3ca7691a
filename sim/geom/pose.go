// Package geom provides the planar geometry used by the simulator: poses,
// polygons, segments and the fixed sensor rotations. Vectors are gonum
// spatial values (r2 for the ground plane, r3 for inertial readings).
package geom

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Pose is a position on the ground plane with a heading.
// Yaw is an unbounded accumulator; it is never wrapped implicitly.
type Pose struct {
	Pos r2.Vec
	Yaw float64
}

// NewPose builds a pose from scalar coordinates.
func NewPose(x, y, yaw float64) Pose {
	return Pose{Pos: r2.Vec{X: x, Y: y}, Yaw: yaw}
}

// Dir returns the unit heading vector.
func (p Pose) Dir() r2.Vec {
	return r2.Vec{X: math.Cos(p.Yaw), Y: math.Sin(p.Yaw)}
}

// Transform maps a body-frame offset into the pose's parent frame.
func (p Pose) Transform(offset r2.Vec) r2.Vec {
	return r2.Add(p.Pos, Rotate(offset, p.Yaw))
}

// Advance moves the pose along its heading by dist (negative moves back).
func (p Pose) Advance(dist float64) Pose {
	return Pose{Pos: r2.Add(p.Pos, r2.Scale(dist, p.Dir())), Yaw: p.Yaw}
}

// Rotate rotates v counter-clockwise by angle radians about the origin.
func Rotate(v r2.Vec, angle float64) r2.Vec {
	sin, cos := math.Sincos(angle)
	return r2.Vec{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// Perp returns v rotated by +90 degrees.
func Perp(v r2.Vec) r2.Vec {
	return r2.Vec{X: -v.Y, Y: v.X}
}

// RotationFromRPY composes a fixed rotation from roll, pitch and yaw
// applied in that order about the x, y and z axes.
func RotationFromRPY(roll, pitch, yaw float64) r3.Rotation {
	qx := quat.Number(r3.NewRotation(roll, r3.Vec{X: 1}))
	qy := quat.Number(r3.NewRotation(pitch, r3.Vec{Y: 1}))
	qz := quat.Number(r3.NewRotation(yaw, r3.Vec{Z: 1}))
	return r3.Rotation(quat.Mul(qz, quat.Mul(qy, qx)))
}
