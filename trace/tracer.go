// Package trace provides hooks that record every page reference an engine
// serves.
package trace

import (
	"log"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/vm"
)

// accessEntry represents one page reference in the database
type accessEntry struct {
	Seq     int
	Page    int
	Frame   int
	Fault   bool
	Victim  int
	Evicted bool
}

// A tracer is a hook that writes one line per page reference into a logger.
type tracer struct {
	logger *log.Logger
}

// NewTracer creates a new tracer that writes to the given logger.
func NewTracer(logger *log.Logger) vm.Hook {
	t := new(tracer)
	t.logger = logger

	return t
}

// Func writes the access information into the logger
func (t *tracer) Func(ctx vm.HookCtx) {
	record, ok := ctx.Item.(vm.AccessRecord)
	if !ok {
		return
	}

	if !record.Fault {
		t.logger.Printf("%d, hit, page %d, frame %d\n",
			record.Seq, record.Page, record.Frame)
		return
	}

	if record.Evicted {
		t.logger.Printf("%d, fault, page %d, frame %d, evicted page %d\n",
			record.Seq, record.Page, record.Frame, record.Victim)
		return
	}

	t.logger.Printf("%d, fault, page %d, frame %d\n",
		record.Seq, record.Page, record.Frame)
}

// A dbTracer is a hook that records page references through a DataRecorder.
type dbTracer struct {
	tableName    string
	dataRecorder datarecording.DataRecorder
}

// NewDBTracer creates a tracer that writes one row per page reference into
// the given table.
func NewDBTracer(
	dataRecorder datarecording.DataRecorder,
	tableName string,
) vm.Hook {
	t := &dbTracer{
		tableName:    tableName,
		dataRecorder: dataRecorder,
	}

	t.dataRecorder.CreateTable(tableName, accessEntry{})

	return t
}

// Func records the access information in the database.
func (t *dbTracer) Func(ctx vm.HookCtx) {
	record, ok := ctx.Item.(vm.AccessRecord)
	if !ok {
		return
	}

	entry := accessEntry{
		Seq:     record.Seq,
		Page:    record.Page,
		Frame:   record.Frame,
		Fault:   record.Fault,
		Victim:  record.Victim,
		Evicted: record.Evicted,
	}

	t.dataRecorder.InsertData(t.tableName, entry)
}
