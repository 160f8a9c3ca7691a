// Package collision holds the static obstacle map the simulator checks the
// vehicle against. Obstacles are simple polygons loaded from a YAML file.
package collision

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/trucksim/trucksim/sim/geom"
)

// ErrInvalidMap is returned when a map file parses but describes invalid obstacles.
var ErrInvalidMap = errors.New("invalid collision map")

// PointSpec is one polygon vertex in a map file.
type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ObstacleSpec is one obstacle in a map file.
type ObstacleSpec struct {
	ID      string      `yaml:"id"`
	Polygon []PointSpec `yaml:"polygon"`
}

// MapSpec is the top-level map file.
type MapSpec struct {
	Version   string         `yaml:"version"`
	Obstacles []ObstacleSpec `yaml:"obstacles"`
}

// Validate checks every obstacle polygon.
func (s *MapSpec) Validate() error {
	for i, o := range s.Obstacles {
		if len(o.Polygon) < 3 {
			return fmt.Errorf("%w: obstacle[%d] %q has %d vertices, need at least 3", ErrInvalidMap, i, o.ID, len(o.Polygon))
		}
		for j, p := range o.Polygon {
			if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
				return fmt.Errorf("%w: obstacle[%d] vertex %d is not finite", ErrInvalidMap, i, j)
			}
		}
	}
	return nil
}

// LoadMapSpec reads and parses a YAML map file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadMapSpec(path string) (*MapSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map: %w", err)
	}
	var spec MapSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing map: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

type obstacle struct {
	id       string
	polygon  geom.Polygon
	box      geom.BoundingBox
	segments []geom.Segment
}

func newObstacle(id string, polygon geom.Polygon) obstacle {
	return obstacle{id: id, polygon: polygon, box: polygon.BoundingBox(), segments: polygon.Segments()}
}

// Map is a set of static obstacles. The zero value is an empty map.
//
// Thread-safety: NOT thread-safe. Owned by a single engine.
type Map struct {
	path      string
	obstacles []obstacle
}

// NewMap creates a map from in-memory polygons.
func NewMap(polygons ...geom.Polygon) *Map {
	m := &Map{}
	for i, p := range polygons {
		m.obstacles = append(m.obstacles, newObstacle(fmt.Sprintf("obstacle_%d", i), p))
	}
	return m
}

// Load replaces the map contents with the obstacles in path. The file is
// parsed and validated completely before the swap: on error the previous
// obstacles stay in place.
func (m *Map) Load(path string) error {
	spec, err := LoadMapSpec(path)
	if err != nil {
		return err
	}
	obstacles := make([]obstacle, 0, len(spec.Obstacles))
	for _, o := range spec.Obstacles {
		poly := make(geom.Polygon, 0, len(o.Polygon))
		for _, p := range o.Polygon {
			poly = append(poly, r2.Vec{X: p.X, Y: p.Y})
		}
		obstacles = append(obstacles, newObstacle(o.ID, poly))
	}
	m.obstacles = obstacles
	m.path = path
	logrus.Infof("loaded collision map %s (%d obstacles)", path, len(obstacles))
	return nil
}

// Clear removes every obstacle.
func (m *Map) Clear() {
	m.obstacles = nil
	m.path = ""
}

// Path returns the file the map was loaded from, or "" for in-memory maps.
func (m *Map) Path() string { return m.path }

// Len returns the number of obstacles.
func (m *Map) Len() int { return len(m.obstacles) }

// IsOccupied reports whether the pose position lies inside an obstacle.
func (m *Map) IsOccupied(pose geom.Pose) bool {
	for _, o := range m.obstacles {
		if o.box.Contains(pose.Pos) && o.polygon.Contains(pose.Pos) {
			return true
		}
	}
	return false
}

// RayCast returns the distance from origin to the nearest obstacle edge along
// the ray at angle (radians, world frame), or +Inf if nothing is hit within maxRange.
func (m *Map) RayCast(origin r2.Vec, angle, maxRange float64) float64 {
	dir := r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
	best := math.Inf(1)
	for _, o := range m.obstacles {
		for _, s := range o.segments {
			if d, ok := s.RayDistance(origin, dir); ok && d < best {
				best = d
			}
		}
	}
	if best > maxRange {
		return math.Inf(1)
	}
	return best
}
