package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/trucksim/trucksim/sim/trace"
)

var (
	plotTracePath  string
	plotOutputPath string
)

// plotCmd re-renders a saved trace without re-running the scenario.
var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Plot the trajectory stored in a trace file",
	Run: func(cmd *cobra.Command, args []string) {
		st, err := trace.Load(plotTracePath)
		if err != nil {
			logrus.Fatalf("Failed to load trace: %v", err)
		}
		if err := trace.SavePlot(st, plotOutputPath); err != nil {
			logrus.Fatalf("Failed to save plot: %v", err)
		}
		logrus.Infof("Plot written to %s", plotOutputPath)
	},
}

// summarizeCmd prints the summary of a saved trace.
var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Print the summary of a trace file as JSON",
	Run: func(cmd *cobra.Command, args []string) {
		st, err := trace.Load(plotTracePath)
		if err != nil {
			logrus.Fatalf("Failed to load trace: %v", err)
		}
		if err := printSummary(st); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func init() {
	plotCmd.Flags().StringVar(&plotTracePath, "trace", "", "Trace JSON written by run --trace-out")
	plotCmd.Flags().StringVar(&plotOutputPath, "out", "trajectory.png", "Output image path")
	_ = plotCmd.MarkFlagRequired("trace")

	summarizeCmd.Flags().StringVar(&plotTracePath, "trace", "", "Trace JSON written by run --trace-out")
	_ = summarizeCmd.MarkFlagRequired("trace")

	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(summarizeCmd)
}
