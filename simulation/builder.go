package simulation

import (
	"fmt"
	"log"

	"github.com/rs/xid"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/monitoring"
	"github.com/sarchlab/pagesim/scenario"
	"github.com/sarchlab/pagesim/trace"
	"github.com/sarchlab/pagesim/vm"
)

// Builder can be used to build a simulation.
type Builder struct {
	scenario       scenario.Scenario
	algorithm      vm.ReplacementAlgorithm
	verbose        bool
	logger         *log.Logger
	recordingOn    bool
	outputFileName string
	monitorOn      bool
	monitorPort    int
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		algorithm: vm.FIFO,
	}
}

// WithScenario sets the scenario that the simulation replays.
func (b Builder) WithScenario(s scenario.Scenario) Builder {
	b.scenario = s
	return b
}

// WithAlgorithm sets the replacement algorithm to simulate.
func (b Builder) WithAlgorithm(a vm.ReplacementAlgorithm) Builder {
	b.algorithm = a
	return b
}

// WithVerbose makes the simulation describe its configuration and log every
// page reference.
func (b Builder) WithVerbose() Builder {
	b.verbose = true
	return b
}

// WithLogger sets the logger used for verbose output.
func (b Builder) WithLogger(logger *log.Logger) Builder {
	b.logger = logger
	return b
}

// WithDataRecording makes the simulation record every page reference into a
// SQLite database.
func (b Builder) WithDataRecording() Builder {
	b.recordingOn = true
	return b
}

// WithOutputFileName sets the custom output file name for the data
// recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithMonitoring makes the simulation serve its state over HTTP.
func (b Builder) WithMonitoring() Builder {
	b.monitorOn = true
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.recordingOn && b.outputFileName != "" {
		panic("output file name cannot be set when recording is disabled")
	}
}

// Build builds the simulation.
func (b Builder) Build() (*Simulation, error) {
	b.parametersMustBeValid()

	if err := b.scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	s := &Simulation{
		id:       xid.New().String(),
		scenario: b.scenario,
	}

	engine, err := vm.MakeBuilder().
		WithPageCount(b.scenario.PageCount).
		WithFrameCount(b.scenario.FrameCount).
		WithAlgorithm(b.algorithm).
		WithVerbose(b.verbose).
		WithLogger(b.logger).
		Build("Engine_" + s.id)
	if err != nil {
		return nil, err
	}
	s.engine = engine

	if b.verbose {
		logger := b.logger
		if logger == nil {
			logger = log.Default()
		}
		s.engine.AcceptHook(trace.NewTracer(logger))
	}

	if b.recordingOn {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "pagesim_" + s.id
		}

		s.dataRecorder = datarecording.New(outputPath)
		s.engine.AcceptHook(trace.NewDBTracer(s.dataRecorder, "accesses"))
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		s.monitor.RegisterEngine(s.engine)
		s.monitor.StartServer()
	}

	return s, nil
}
