package sim

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultSampleInterval is the snapshot period used when a scenario omits it.
const DefaultSampleInterval = 0.1

// StartSpec is the base-frame initial condition of a scenario.
type StartSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Yaw      float64 `yaml:"yaw"`
	Steering float64 `yaml:"steering"`
	Velocity float64 `yaml:"velocity"`
}

// SegmentSpec holds one control command for a fixed duration.
// A nil Acceleration lets the rate limiter derive it from Velocity.
type SegmentSpec struct {
	Duration     float64  `yaml:"duration"`
	Velocity     float64  `yaml:"velocity"`
	Curvature    float64  `yaml:"curvature"`
	Acceleration *float64 `yaml:"acceleration,omitempty"`
}

// ScenarioSpec is the top-level scenario configuration.
// Loaded from YAML via LoadScenario(path).
type ScenarioSpec struct {
	Version         string        `yaml:"version"`
	Seed            int64         `yaml:"seed"`
	Map             string        `yaml:"map,omitempty"` // relative paths resolve against the scenario file
	Start           StartSpec     `yaml:"start"`
	SampleInterval  float64       `yaml:"sample_interval,omitempty"`
	StopOnCollision bool          `yaml:"stop_on_collision"`
	Segments        []SegmentSpec `yaml:"segments"`
}

// LoadScenario reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenario(path string) (*ScenarioSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var spec ScenarioSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if spec.Map != "" && !filepath.IsAbs(spec.Map) {
		spec.Map = filepath.Join(filepath.Dir(path), spec.Map)
	}
	return &spec, nil
}

// Validate checks that all fields in the scenario are valid.
func (s *ScenarioSpec) Validate() error {
	start := map[string]float64{
		"start.x": s.Start.X, "start.y": s.Start.Y, "start.yaw": s.Start.Yaw,
		"start.steering": s.Start.Steering, "start.velocity": s.Start.Velocity,
	}
	for name, v := range start {
		if err := validateFinite(name, v); err != nil {
			return err
		}
	}
	if err := validateFinite("sample_interval", s.SampleInterval); err != nil {
		return err
	}
	if s.SampleInterval < 0 {
		return fmt.Errorf("sample_interval must be non-negative, got %f", s.SampleInterval)
	}
	if len(s.Segments) == 0 {
		return fmt.Errorf("at least one segment required")
	}
	for i, seg := range s.Segments {
		prefix := fmt.Sprintf("segment[%d]", i)
		if err := validateFinite(prefix+".duration", seg.Duration); err != nil {
			return err
		}
		if seg.Duration < 0 {
			return fmt.Errorf("%s: duration must be non-negative, got %f", prefix, seg.Duration)
		}
		if err := validateFinite(prefix+".velocity", seg.Velocity); err != nil {
			return err
		}
		if err := validateFinite(prefix+".curvature", seg.Curvature); err != nil {
			return err
		}
		if seg.Acceleration != nil {
			if err := validateFinite(prefix+".acceleration", *seg.Acceleration); err != nil {
				return err
			}
		}
	}
	return nil
}

// sampleInterval returns the effective snapshot period.
func (s *ScenarioSpec) sampleInterval() float64 {
	if s.SampleInterval == 0 {
		return DefaultSampleInterval
	}
	return s.SampleInterval
}

func validateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be finite, got %v", name, v)
	}
	return nil
}
