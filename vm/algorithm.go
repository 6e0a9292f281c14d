package vm

import (
	"fmt"
	"strings"
)

// ReplacementAlgorithm selects the policy that picks eviction victims.
type ReplacementAlgorithm int

// The replacement algorithms that an Engine can be configured with. The
// algorithm is fixed for the lifetime of the engine.
const (
	FIFO ReplacementAlgorithm = iota
	LRU
	MFU
)

var replacementAlgorithmNames = [...]string{
	"FIFO",
	"LRU",
	"MFU",
}

// String returns the name of the algorithm.
func (a ReplacementAlgorithm) String() string {
	if a < 0 || int(a) >= len(replacementAlgorithmNames) {
		return fmt.Sprintf("ReplacementAlgorithm(%d)", int(a))
	}

	return replacementAlgorithmNames[a]
}

// ParseReplacementAlgorithm converts a name such as "fifo" or "LRU" into a
// ReplacementAlgorithm.
func ParseReplacementAlgorithm(name string) (ReplacementAlgorithm, error) {
	for i, n := range replacementAlgorithmNames {
		if strings.EqualFold(name, n) {
			return ReplacementAlgorithm(i), nil
		}
	}

	return 0, fmt.Errorf("unknown replacement algorithm %q", name)
}

// usesAccessCounters reports if the algorithm relies on per-frame access
// counts.
func (a ReplacementAlgorithm) usesAccessCounters() bool {
	return a == LRU || a == MFU
}
