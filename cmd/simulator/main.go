package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
)

var (
	file        = flag.String("file", "", "CSV or XLSX shipment file (default: embedded sample dataset)")
	generate    = flag.Int("generate", 0, "Use N synthetic import rows instead of a file")
	seed        = flag.Int64("seed", 42, "Seed for -generate")
	shipping    = flag.Float64("shipping", 0, "Shipping cost change (%)")
	duty        = flag.Float64("duty", 0, "Duty rate change (%)")
	demand      = flag.Float64("demand", 0, "Demand change (%)")
	supplier    = flag.Float64("supplier", 0, "Supplier price change (%)")
	sweep       = flag.String("sweep", "", "Sweep one lever across its range: shipping|duty|demand|supplier")
	steps       = flag.Int("steps", 11, "Number of sweep steps")
	interactive = flag.Bool("interactive", false, "Enable interactive mode")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	// Setup logger
	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	config := &SimulatorConfig{
		File:     *file,
		Generate: *generate,
		Seed:     *seed,
		Shipping: *shipping,
		Duty:     *duty,
		Demand:   *demand,
		Supplier: *supplier,
		Sweep:    *sweep,
		Steps:    *steps,
	}

	simulator, err := NewSimulator(config, os.Stdout, logger)
	if err != nil {
		logger.Fatal("Failed to load shipments", zap.Error(err))
	}

	if *interactive {
		runInteractiveMode(simulator)
		return
	}

	if err := simulator.Run(); err != nil {
		logger.Fatal("Simulation failed", zap.Error(err))
	}
}

func runInteractiveMode(sim *Simulator) {
	fmt.Println("\nTrade What-If Simulator - Interactive Mode")
	fmt.Println("==========================================")
	fmt.Println("Commands:")
	fmt.Println("  set <lever> <percent>   - Set shipping|duty|demand|supplier")
	fmt.Println("  run                     - Simulate with current levers")
	fmt.Println("  sweep <lever>           - Sweep a lever across its range")
	fmt.Println("  emissions               - Show CO2 estimate")
	fmt.Println("  forecast                - Show revenue forecast")
	fmt.Println("  reset                   - Reset all levers to 0")
	fmt.Println("  quit                    - Exit simulator")
	fmt.Println("")

	sim.RunInteractive(os.Stdin)
}
