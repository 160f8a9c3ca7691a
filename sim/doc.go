// Package sim provides the vehicle dynamics simulation engine for trucksim.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - engine.go: Engine state, reset and control surface, the Advance loop
//   - integrate.go: bicycle-kinematics derivative and the RK4 step
//   - sensors.go: lever-arm IMU kinematics and the lidar scan
//   - noise.go: the seeded noise generator shared by all sensor channels
//
// # Architecture
//
// The sim package owns the engine; collaborators live in sub-packages:
//   - sim/model/: vehicle geometry, limits and the rate-limiting law
//   - sim/collision/: static obstacle map (occupancy and ray casting)
//   - sim/geom/: poses, polygons and fixed rotations
//   - sim/trace/: run trace recording, summary and trajectory plot
//
// Scenario files (scenario.go) drive an Engine through a sequence of control
// segments (runner.go), recording snapshots into a trace.
//
// # Determinism
//
// An Engine is single-threaded and synchronous. Two engines built from the
// same parameters and SimulationKey, fed the same call sequence, produce
// bit-for-bit identical snapshots. The noise channels share one bit source,
// so the order of sensor reads is part of that contract.
package sim
