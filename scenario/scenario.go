// Package scenario loads the test scenarios that drive the page table
// engine.
package scenario

import "fmt"

// A Scenario holds the already-validated inputs of one simulation run: the
// size of the address space, the size of simulated memory, and the sequence
// of page references to replay.
type Scenario struct {
	PageCount  int
	FrameCount int
	RefStr     []int
}

// Validate returns an error if the scenario cannot be replayed against an
// engine.
func (s Scenario) Validate() error {
	if s.PageCount < 0 {
		return fmt.Errorf("page count must be non-negative, got %d",
			s.PageCount)
	}

	if s.FrameCount < 0 {
		return fmt.Errorf("frame count must be non-negative, got %d",
			s.FrameCount)
	}

	for i, page := range s.RefStr {
		if page < 0 || page >= s.PageCount {
			return fmt.Errorf(
				"reference %d is page %d, out of range [0, %d)",
				i, page, s.PageCount)
		}
	}

	return nil
}
