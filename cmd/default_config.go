package cmd

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	sim "github.com/trucksim/trucksim/sim"
	"github.com/trucksim/trucksim/sim/model"
)

// noNoiseProfile selects noiseless sensors without a defaults.yaml entry.
const noNoiseProfile = "none"

// Config represents the full defaults.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Version       string                              `yaml:"version"`
	Vehicles      map[string]model.Params             `yaml:"vehicles"`
	NoiseProfiles map[string]sim.NoiseGeneratorParams `yaml:"noise_profiles"`
}

// loadDefaultsConfig parses defaults.yaml into a Config struct.
// Uses strict field checking: typos must cause errors.
func loadDefaultsConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading defaults file: %w", err)
	}
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing defaults YAML: %w", err)
	}
	return &cfg, nil
}

// Vehicle returns the named vehicle preset.
func (c *Config) Vehicle(name string) (model.Params, error) {
	p, ok := c.Vehicles[name]
	if !ok {
		return model.Params{}, fmt.Errorf("unknown vehicle %q; known: %v", name, sortedKeys(c.Vehicles))
	}
	return p, nil
}

// NoiseProfile returns the named noise profile. "none" is always available
// and disables every channel.
func (c *Config) NoiseProfile(name string) (sim.NoiseGeneratorParams, error) {
	if p, ok := c.NoiseProfiles[name]; ok {
		return p, nil
	}
	if name == noNoiseProfile {
		return sim.NoiseGeneratorParams{}, nil
	}
	return sim.NoiseGeneratorParams{}, fmt.Errorf("unknown noise profile %q; known: %v", name, sortedKeys(c.NoiseProfiles))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
