package cmd

import (
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pagesim/scenario"
	"github.com/sarchlab/pagesim/simulation"
	"github.com/sarchlab/pagesim/vm"
)

var runCmd = &cobra.Command{
	Use:   "run [scenario file]",
	Short: "Replay a scenario file and report the fault count.",
	Long: `Run loads a scenario file (page count, frame count, reference ` +
		`string length, and the reference string, as whitespace-separated ` +
		`integers), replays the reference string, and prints the final ` +
		`page table.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runScenario(cmd, args[0])
	},
}

func init() {
	runCmd.Flags().StringP("algorithm", "a", "fifo",
		"replacement algorithm: fifo, lru, or mfu")
	runCmd.Flags().BoolP("verbose", "v", false,
		"describe the configuration and log every page reference")
	runCmd.Flags().Bool("record", false,
		"record every page reference into a SQLite database")
	runCmd.Flags().String("output", "",
		"name of the database to record into, implies --record")
	runCmd.Flags().Bool("monitor", false,
		"serve the page table state over HTTP while running")

	rootCmd.AddCommand(runCmd)
}

func runScenario(cmd *cobra.Command, path string) {
	algorithmName, _ := cmd.Flags().GetString("algorithm")
	verbose, _ := cmd.Flags().GetBool("verbose")
	record, _ := cmd.Flags().GetBool("record")
	output, _ := cmd.Flags().GetString("output")
	monitor, _ := cmd.Flags().GetBool("monitor")

	algorithm, err := vm.ParseReplacementAlgorithm(algorithmName)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	s, err := scenario.Load(path)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	builder := simulation.MakeBuilder().
		WithScenario(s).
		WithAlgorithm(algorithm)

	if verbose {
		builder = builder.WithVerbose()
	}

	if record || output != "" {
		builder = builder.WithDataRecording()
	}

	if output != "" {
		builder = builder.WithOutputFileName(output)
	}

	if monitor {
		builder = builder.WithMonitoring()
		if port := monitorPortFromEnv(); port > 0 {
			builder = builder.WithMonitorPort(port)
		}
	}

	sim, err := builder.Build()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer sim.Terminate()

	if _, err := sim.Run(); err != nil {
		log.Fatalf("Error: %v", err)
	}

	if err := sim.Report(os.Stdout); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func monitorPortFromEnv() int {
	value := os.Getenv("PAGESIM_MONITOR_PORT")
	if value == "" {
		return 0
	}

	port, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Error: invalid PAGESIM_MONITOR_PORT %q", value)
	}

	return port
}
