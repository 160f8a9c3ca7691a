// Package model describes the simulated vehicle: its fixed geometry, its
// physical limits and the single-step rate-limiting law that keeps commanded
// motion inside those limits.
package model

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidParams is returned when vehicle parameters are out of range.
var ErrInvalidParams = errors.New("invalid vehicle model parameters")

// LidarParams places a planar range sensor relative to the base frame and
// describes its scan pattern. A zero AngleIncrement disables the scan.
type LidarParams struct {
	OffsetX        float64 `yaml:"offset_x"`
	OffsetY        float64 `yaml:"offset_y"`
	AngleMin       float64 `yaml:"angle_min"`
	AngleMax       float64 `yaml:"angle_max"`
	AngleIncrement float64 `yaml:"angle_increment"`
	RangeMin       float64 `yaml:"range_min"`
	RangeMax       float64 `yaml:"range_max"`
}

// Enabled reports whether the lidar produces a scan.
func (l LidarParams) Enabled() bool { return l.AngleIncrement > 0 }

// Beams returns the number of rays in one scan (0 when disabled).
func (l LidarParams) Beams() int {
	if !l.Enabled() {
		return 0
	}
	return int(math.Floor((l.AngleMax-l.AngleMin)/l.AngleIncrement+1e-9)) + 1
}

// ImuParams places the inertial sensor relative to the base frame.
// Roll, Pitch and Yaw define the fixed rotation applied to body-frame vectors
// to express them in the IMU frame.
type ImuParams struct {
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Roll    float64 `yaml:"roll"`
	Pitch   float64 `yaml:"pitch"`
	Yaw     float64 `yaml:"yaw"`
}

// Params are the fixed vehicle parameters. Distances are metres, angles
// radians, rates per second.
type Params struct {
	WheelBase        float64     `yaml:"wheel_base"`
	BaseToRear       float64     `yaml:"base_to_rear"` // rear axle to base origin, along heading
	TrackWidth       float64     `yaml:"track_width"`
	MaxAcceleration  float64     `yaml:"max_acceleration"`
	MaxSteeringAngle float64     `yaml:"max_steering_angle"` // middle (virtual) wheel
	MaxSteeringRate  float64     `yaml:"max_steering_rate"`
	Lidar            LidarParams `yaml:"lidar"`
	Imu              ImuParams   `yaml:"imu"`
}

// Validate checks that every parameter is finite and inside its range.
func (p Params) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"wheel_base", p.WheelBase},
		{"base_to_rear", p.BaseToRear},
		{"track_width", p.TrackWidth},
		{"max_acceleration", p.MaxAcceleration},
		{"max_steering_angle", p.MaxSteeringAngle},
		{"max_steering_rate", p.MaxSteeringRate},
		{"lidar.offset_x", p.Lidar.OffsetX},
		{"lidar.offset_y", p.Lidar.OffsetY},
		{"lidar.angle_min", p.Lidar.AngleMin},
		{"lidar.angle_max", p.Lidar.AngleMax},
		{"lidar.angle_increment", p.Lidar.AngleIncrement},
		{"lidar.range_min", p.Lidar.RangeMin},
		{"lidar.range_max", p.Lidar.RangeMax},
		{"imu.offset_x", p.Imu.OffsetX},
		{"imu.offset_y", p.Imu.OffsetY},
		{"imu.roll", p.Imu.Roll},
		{"imu.pitch", p.Imu.Pitch},
		{"imu.yaw", p.Imu.Yaw},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidParams, f.name, f.v)
		}
	}
	if p.WheelBase <= 0 {
		return fmt.Errorf("%w: wheel_base must be positive, got %f", ErrInvalidParams, p.WheelBase)
	}
	if p.BaseToRear < 0 {
		return fmt.Errorf("%w: base_to_rear must be non-negative, got %f", ErrInvalidParams, p.BaseToRear)
	}
	if p.TrackWidth < 0 {
		return fmt.Errorf("%w: track_width must be non-negative, got %f", ErrInvalidParams, p.TrackWidth)
	}
	if p.MaxAcceleration <= 0 {
		return fmt.Errorf("%w: max_acceleration must be positive, got %f", ErrInvalidParams, p.MaxAcceleration)
	}
	if p.MaxSteeringAngle <= 0 || p.MaxSteeringAngle >= math.Pi/2 {
		return fmt.Errorf("%w: max_steering_angle must be in (0, pi/2), got %f", ErrInvalidParams, p.MaxSteeringAngle)
	}
	if p.MaxSteeringRate <= 0 {
		return fmt.Errorf("%w: max_steering_rate must be positive, got %f", ErrInvalidParams, p.MaxSteeringRate)
	}
	if p.Lidar.AngleIncrement < 0 {
		return fmt.Errorf("%w: lidar.angle_increment must be non-negative, got %f", ErrInvalidParams, p.Lidar.AngleIncrement)
	}
	if p.Lidar.Enabled() {
		if p.Lidar.AngleMax < p.Lidar.AngleMin {
			return fmt.Errorf("%w: lidar.angle_max (%f) below angle_min (%f)", ErrInvalidParams, p.Lidar.AngleMax, p.Lidar.AngleMin)
		}
		if p.Lidar.RangeMin < 0 || p.Lidar.RangeMax <= p.Lidar.RangeMin {
			return fmt.Errorf("%w: lidar range must satisfy 0 <= range_min < range_max, got [%f, %f]",
				ErrInvalidParams, p.Lidar.RangeMin, p.Lidar.RangeMax)
		}
	}
	return nil
}

// LoadParams reads vehicle parameters from a YAML file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadParams(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("reading vehicle model: %w", err)
	}
	var params Params
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&params); err != nil {
		return Params{}, fmt.Errorf("parsing vehicle model: %w", err)
	}
	return params, nil
}

// LoadModel reads, validates and wraps vehicle parameters from a YAML file.
func LoadModel(path string) (*Model, error) {
	params, err := LoadParams(path)
	if err != nil {
		return nil, err
	}
	return New(params)
}
