package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/seu-repo/tradeinsight/internal/domain"
	"github.com/seu-repo/tradeinsight/internal/service/analytics"
	"github.com/seu-repo/tradeinsight/internal/service/ingest"
	"github.com/seu-repo/tradeinsight/internal/service/simulation"
	"github.com/seu-repo/tradeinsight/internal/service/sustainability"
)

// SimulatorConfig holds simulator configuration
type SimulatorConfig struct {
	File     string
	Generate int
	Seed     int64

	Shipping float64
	Duty     float64
	Demand   float64
	Supplier float64

	Sweep string
	Steps int
}

// Simulator runs what-if scenarios over one loaded set of shipments.
type Simulator struct {
	config  *SimulatorConfig
	records []domain.ShipmentRecord
	params  domain.SimulationParams
	out     io.Writer
	log     *zap.Logger
}

// NewSimulator loads the shipments named by config.
func NewSimulator(config *SimulatorConfig, out io.Writer, log *zap.Logger) (*Simulator, error) {
	rows, err := loadRows(config, log)
	if err != nil {
		return nil, err
	}

	s := &Simulator{
		config:  config,
		records: ingest.NormalizeAll(rows),
		params: domain.SimulationParams{
			ShippingCostChange:  config.Shipping,
			DutyRateChange:      config.Duty,
			DemandChange:        config.Demand,
			SupplierPriceChange: config.Supplier,
		},
		out: out,
		log: log,
	}
	log.Info("Shipments loaded", zap.Int("records", len(s.records)))
	return s, nil
}

func loadRows(config *SimulatorConfig, log *zap.Logger) ([]domain.RawRecord, error) {
	switch {
	case config.Generate > 0:
		return ingest.NewGenerator(config.Seed).Generate(config.Generate), nil
	case config.File != "":
		f, err := os.Open(config.File)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ingest.Parse(config.File, f)
	default:
		return ingest.NewDefaultProvider(log).Raw(), nil
	}
}

// Run prints one simulation, or a sweep when config.Sweep is set.
func (s *Simulator) Run() error {
	if s.config.Sweep != "" {
		return s.sweep(s.config.Sweep)
	}
	return s.simulate()
}

func (s *Simulator) simulate() error {
	return s.print(simulation.Simulate(s.records, s.params))
}

func (s *Simulator) sweep(name string) error {
	lever := simulation.Lever(name)
	r, ok := simulation.ParamRanges[lever]
	if !ok {
		return fmt.Errorf("unknown lever %q", name)
	}
	n := s.config.Steps
	if n < 2 {
		n = 11
	}
	return s.print(simulation.Sweep(s.records, s.params, lever, simulation.Steps(r, n)))
}

func (s *Simulator) print(v interface{}) error {
	enc := json.NewEncoder(s.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (s *Simulator) set(name string, value float64) error {
	switch simulation.Lever(name) {
	case simulation.LeverShipping:
		s.params.ShippingCostChange = value
	case simulation.LeverDuty:
		s.params.DutyRateChange = value
	case simulation.LeverDemand:
		s.params.DemandChange = value
	case simulation.LeverSupplier:
		s.params.SupplierPriceChange = value
	default:
		return fmt.Errorf("unknown lever %q", name)
	}
	return nil
}

// RunInteractive reads commands from in until EOF or quit.
func (s *Simulator) RunInteractive(in io.Reader) {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(s.out, "> ")

	for scanner.Scan() {
		parts := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(parts) == 0 {
			fmt.Fprint(s.out, "> ")
			continue
		}

		cmd := parts[0]
		args := parts[1:]
		var err error

		switch cmd {
		case "set":
			if len(args) < 2 {
				fmt.Fprintln(s.out, "Usage: set <lever> <percent>")
				break
			}
			value, perr := strconv.ParseFloat(args[1], 64)
			if perr != nil {
				fmt.Fprintf(s.out, "Invalid percent %q\n", args[1])
				break
			}
			err = s.set(args[0], value)
			if err == nil {
				fmt.Fprintf(s.out, "%s set to %.1f%%\n", args[0], value)
			}

		case "run":
			err = s.simulate()

		case "sweep":
			if len(args) < 1 {
				fmt.Fprintln(s.out, "Usage: sweep <lever>")
				break
			}
			err = s.sweep(args[0])

		case "emissions":
			err = s.print(sustainability.Estimate(s.records))

		case "forecast":
			err = s.print(analytics.Forecast(s.records))

		case "reset":
			s.params = simulation.DefaultParams()
			fmt.Fprintln(s.out, "Levers reset")

		case "quit", "exit":
			fmt.Fprintln(s.out, "Goodbye!")
			return

		default:
			fmt.Fprintf(s.out, "Unknown command: %s\n", cmd)
		}

		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
		fmt.Fprint(s.out, "> ")
	}
}
