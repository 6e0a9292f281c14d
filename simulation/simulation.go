// Package simulation ties a scenario, a page table engine, and the
// observers of the run together.
package simulation

import (
	"fmt"
	"io"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/monitoring"
	"github.com/sarchlab/pagesim/report"
	"github.com/sarchlab/pagesim/scenario"
	"github.com/sarchlab/pagesim/vm"
)

// A Simulation replays one scenario against one page table engine.
// Simulations share no mutable state; to compare algorithms, build one
// simulation per algorithm and run them independently.
type Simulation struct {
	id       string
	scenario scenario.Scenario
	engine   *vm.Engine

	dataRecorder datarecording.DataRecorder
	monitor      *monitoring.Monitor
}

// ID returns the unique identifier of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// Engine returns the page table engine driven by the simulation.
func (s *Simulation) Engine() *vm.Engine {
	return s.engine
}

// Scenario returns the scenario the simulation replays.
func (s *Simulation) Scenario() scenario.Scenario {
	return s.scenario
}

// GetDataRecorder returns the data recorder used in the simulation, or nil
// if recording is disabled.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetMonitor returns the monitor used in the simulation, or nil if
// monitoring is disabled.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// Run replays the reference string in order and returns the final fault
// count.
func (s *Simulation) Run() (uint64, error) {
	for i, page := range s.scenario.RefStr {
		if err := s.engine.Access(page); err != nil {
			return s.engine.FaultCount(),
				fmt.Errorf("reference %d: %w", i, err)
		}
	}

	return s.engine.FaultCount(), nil
}

// Report renders the final state of the page table.
func (s *Simulation) Report(w io.Writer) error {
	return report.Summary(w, s.engine)
}

// Terminate flushes the recorded data.
func (s *Simulation) Terminate() {
	if s.dataRecorder != nil {
		s.dataRecorder.Flush()
	}
}
