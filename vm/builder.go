package vm

import (
	"fmt"
	"log"
	"os"

	"github.com/sarchlab/pagesim/vm/replacement"
)

// A Builder can build page table engines.
type Builder struct {
	pageCount  int
	frameCount int
	algorithm  ReplacementAlgorithm
	verbose    bool
	logger     *log.Logger
}

// MakeBuilder creates a new builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		algorithm: FIFO,
	}
}

// WithPageCount sets the number of pages the engine keeps track of.
func (b Builder) WithPageCount(n int) Builder {
	b.pageCount = n
	return b
}

// WithFrameCount sets the number of frames in simulated memory.
func (b Builder) WithFrameCount(n int) Builder {
	b.frameCount = n
	return b
}

// WithAlgorithm sets the replacement algorithm to use for page swapping.
func (b Builder) WithAlgorithm(a ReplacementAlgorithm) Builder {
	b.algorithm = a
	return b
}

// WithVerbose enables a one-line description of the configuration when the
// engine is built.
func (b Builder) WithVerbose(verbose bool) Builder {
	b.verbose = verbose
	return b
}

// WithLogger sets the logger that the verbose description is written to.
// Without a logger, the description goes to standard output.
func (b Builder) WithLogger(logger *log.Logger) Builder {
	b.logger = logger
	return b
}

// Build creates an engine with all pages non-resident and the fault counter
// at zero. It returns an error if the configuration is invalid.
func (b Builder) Build(name string) (*Engine, error) {
	if b.pageCount < 0 {
		return nil, fmt.Errorf("page count must be non-negative, got %d",
			b.pageCount)
	}

	if b.frameCount < 0 {
		return nil, fmt.Errorf("frame count must be non-negative, got %d",
			b.frameCount)
	}

	finder, err := b.victimFinder()
	if err != nil {
		return nil, err
	}

	e := &Engine{
		name:         name,
		algorithm:    b.algorithm,
		table:        NewPageTable(b.pageCount, b.frameCount),
		victimFinder: finder,
	}

	if b.verbose {
		b.logConfiguration()
	}

	return e, nil
}

func (b Builder) victimFinder() (replacement.VictimFinder, error) {
	switch b.algorithm {
	case FIFO:
		return replacement.NewFIFOVictimFinder(b.frameCount), nil
	case LRU:
		return replacement.NewLRUVictimFinder(), nil
	case MFU:
		return replacement.NewMFUVictimFinder(), nil
	default:
		return nil, fmt.Errorf("unknown replacement algorithm %d",
			int(b.algorithm))
	}
}

func (b Builder) logConfiguration() {
	logger := b.logger
	if logger == nil {
		logger = log.New(os.Stdout, "", 0)
	}

	logger.Printf(
		"Created page_table{page_count=%d, frame_count=%d, replacement_algorithm=%s}",
		b.pageCount, b.frameCount, b.algorithm)
}
