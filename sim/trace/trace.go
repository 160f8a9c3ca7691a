package trace

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// TraceLevel controls the verbosity of run tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelStates captures sampled states and collisions.
	TraceLevelStates TraceLevel = "states"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelStates: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel `json:"level"`
}

// SimulationTrace collects records during one simulation run.
type SimulationTrace struct {
	RunID      string            `json:"run_id"`
	Config     TraceConfig       `json:"config"`
	States     []StateRecord     `json:"states"`
	Collisions []CollisionRecord `json:"collisions"`
}

// NewSimulationTrace creates a SimulationTrace with a fresh run ID.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		RunID:      uuid.NewString(),
		Config:     config,
		States:     make([]StateRecord, 0),
		Collisions: make([]CollisionRecord, 0),
	}
}

// Enabled reports whether records are kept. Safe for nil traces.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelStates
}

// RecordState appends a state record when tracing is enabled.
func (st *SimulationTrace) RecordState(record StateRecord) {
	if st.Enabled() {
		st.States = append(st.States, record)
	}
}

// RecordCollision appends a collision record when tracing is enabled.
func (st *SimulationTrace) RecordCollision(record CollisionRecord) {
	if st.Enabled() {
		st.Collisions = append(st.Collisions, record)
	}
}

// Save writes the trace as indented JSON.
func (st *SimulationTrace) Save(path string) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// Load reads a trace written by Save.
func Load(path string) (*SimulationTrace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	var st SimulationTrace
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parsing trace: %w", err)
	}
	if _, err := uuid.Parse(st.RunID); err != nil {
		return nil, fmt.Errorf("parsing trace: run_id: %w", err)
	}
	return &st, nil
}
