package scenario

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Load reads a scenario from a text file. The file holds whitespace
// separated integers: the page count, the frame count, the length of the
// reference string, and then the reference string itself.
func Load(path string) (Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("cannot open scenario file: %w", err)
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario file %s: %w", path, err)
	}

	return s, nil
}

// Read parses a scenario from a reader. See Load for the format.
func Read(r io.Reader) (Scenario, error) {
	br := bufio.NewReader(r)

	s := Scenario{}

	if _, err := fmt.Fscan(br, &s.PageCount); err != nil {
		return Scenario{}, fmt.Errorf("read of number of pages failed: %w", err)
	}

	if _, err := fmt.Fscan(br, &s.FrameCount); err != nil {
		return Scenario{}, fmt.Errorf("read of number of frames failed: %w", err)
	}

	refStrLen := 0
	if _, err := fmt.Fscan(br, &refStrLen); err != nil {
		return Scenario{}, fmt.Errorf("read of number of entries failed: %w", err)
	}

	if refStrLen < 0 {
		return Scenario{}, fmt.Errorf(
			"number of entries must be non-negative, got %d", refStrLen)
	}

	// The declared length is untrusted input. Grow the slice entry by
	// entry so a bogus length fails on the missing entries instead of on
	// the allocation.
	s.RefStr = []int{}
	for i := 0; i < refStrLen; i++ {
		ref := 0
		if _, err := fmt.Fscan(br, &ref); err != nil {
			return Scenario{}, fmt.Errorf(
				"read of reference string failed at entry %d: %w", i, err)
		}

		s.RefStr = append(s.RefStr, ref)
	}

	if err := s.Validate(); err != nil {
		return Scenario{}, err
	}

	return s, nil
}
