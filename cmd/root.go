package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/trucksim/trucksim/sim"
	"github.com/trucksim/trucksim/sim/model"
	"github.com/trucksim/trucksim/sim/trace"
)

var (
	// CLI flags for the run command
	defaultsFilePath string  // Path to defaults.yaml
	vehicleName      string  // Vehicle preset in defaults.yaml
	vehicleFile      string  // Vehicle model YAML; overrides the preset
	noiseProfile     string  // Noise profile in defaults.yaml
	scenarioPath     string  // Scenario YAML
	mapPath          string  // Obstacle map YAML; overrides the scenario map
	seed             int64   // Noise seed; overrides the scenario seed when set
	integrationStep  float64 // RK4 sub-step in seconds
	precision        float64 // Duration tolerance in seconds
	logLevel         string  // Log verbosity level
	traceLevel       string  // Trace verbosity level
	traceOutput      string  // Trace JSON output path
	plotOutput       string  // Trajectory image output path
)

// runOptions is the resolved input of one simulation run.
type runOptions struct {
	Params     model.Params
	Noise      sim.NoiseGeneratorParams
	Engine     sim.EngineConfig
	Scenario   *sim.ScenarioSpec
	TraceLevel trace.TraceLevel
}

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "trucksim",
	Short: "Kinematic truck simulator with noisy IMU and lidar",
}

// runCmd executes a scenario using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a driving scenario",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if scenarioPath == "" {
			logrus.Fatalf("Scenario not provided. Exiting simulation.")
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}

		opts, err := resolveRunOptions(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		logrus.Infof("Starting scenario %s with seed=%d, step=%gs, vehicle wheel_base=%.3fm",
			scenarioPath, opts.Scenario.Seed, opts.Engine.IntegrationStep, opts.Params.WheelBase)
		startTime := time.Now()

		st, res, err := runSimulation(opts)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Infof("Simulation finished in %s: status=%s, t=%.3fs, completed=%v",
			time.Since(startTime), res.Final.Status, res.Final.Time, res.Completed)

		if err := printSummary(st); err != nil {
			logrus.Fatalf("%v", err)
		}
		if traceOutput != "" {
			if err := st.Save(traceOutput); err != nil {
				logrus.Fatalf("Failed to save trace: %v", err)
			}
			logrus.Infof("Trace written to %s", traceOutput)
		}
		if plotOutput != "" {
			if err := trace.SavePlot(st, plotOutput); err != nil {
				logrus.Fatalf("Failed to save plot: %v", err)
			}
			logrus.Infof("Plot written to %s", plotOutput)
		}
	},
}

// resolveRunOptions merges defaults.yaml, the scenario file and CLI flags.
// Flags only override when explicitly set.
func resolveRunOptions(cmd *cobra.Command) (*runOptions, error) {
	defaults, err := loadDefaultsConfig(defaultsFilePath)
	if err != nil {
		return nil, err
	}

	var params model.Params
	if vehicleFile != "" {
		params, err = model.LoadParams(vehicleFile)
	} else {
		params, err = defaults.Vehicle(vehicleName)
	}
	if err != nil {
		return nil, err
	}

	noise, err := defaults.NoiseProfile(noiseProfile)
	if err != nil {
		return nil, err
	}

	scenario, err := sim.LoadScenario(scenarioPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("seed") {
		logrus.Infof("CLI --seed %d overrides scenario seed %d", seed, scenario.Seed)
		scenario.Seed = seed
	}
	if cmd.Flags().Changed("map") {
		scenario.Map = mapPath
	}

	return &runOptions{
		Params:     params,
		Noise:      noise,
		Engine:     sim.NewEngineConfig(integrationStep, precision),
		Scenario:   scenario,
		TraceLevel: trace.TraceLevel(traceLevel),
	}, nil
}

// runSimulation builds an engine from opts and plays the scenario.
func runSimulation(opts *runOptions) (*trace.SimulationTrace, *sim.RunResult, error) {
	m, err := model.New(opts.Params)
	if err != nil {
		return nil, nil, err
	}
	noise, err := sim.NewNoiseGenerator(opts.Noise, sim.NewSimulationKey(opts.Scenario.Seed))
	if err != nil {
		return nil, nil, err
	}
	engine, err := sim.NewEngine(m, noise, opts.Engine)
	if err != nil {
		return nil, nil, err
	}
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: opts.TraceLevel})
	res, err := sim.RunScenario(engine, opts.Scenario, st)
	if err != nil {
		return nil, nil, err
	}
	return st, res, nil
}

// printSummary writes the trace summary as JSON to stdout.
func printSummary(st *trace.SimulationTrace) error {
	data, err := json.MarshalIndent(trace.Summarize(st), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	fmt.Println("=== Trajectory Summary ===")
	fmt.Println(string(data))
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {

	runCmd.Flags().StringVar(&defaultsFilePath, "defaults", "defaults.yaml", "Path to vehicle and noise presets")
	runCmd.Flags().StringVar(&vehicleName, "vehicle", "tractor", "Vehicle preset name")
	runCmd.Flags().StringVar(&vehicleFile, "vehicle-file", "", "Vehicle model YAML (overrides --vehicle)")
	runCmd.Flags().StringVar(&noiseProfile, "noise", noNoiseProfile, "Noise profile name")
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario YAML")
	runCmd.Flags().StringVar(&mapPath, "map", "", "Obstacle map YAML (overrides the scenario map)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Noise seed (overrides the scenario seed)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Integration configs
	runCmd.Flags().Float64Var(&integrationStep, "step", sim.DefaultIntegrationStep, "Integration sub-step in seconds")
	runCmd.Flags().Float64Var(&precision, "precision", sim.DefaultPrecision, "Tolerance for durations that must be step multiples")

	// Outputs
	runCmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelStates), "Trace level (none, states)")
	runCmd.Flags().StringVar(&traceOutput, "trace-out", "", "Write the run trace as JSON to this path")
	runCmd.Flags().StringVar(&plotOutput, "plot-out", "", "Write the trajectory plot to this path (.png, .svg, .pdf)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
