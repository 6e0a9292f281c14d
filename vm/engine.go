// Package vm simulates the address-translation side of a virtual-memory
// manager. An Engine replays a reference string against a bounded set of
// frames, counts page faults, and evicts pages with a configurable
// replacement algorithm.
package vm

import (
	"fmt"
	"log"

	"github.com/sarchlab/pagesim/vm/replacement"
)

// An AccessRecord describes the outcome of one page reference. It is the
// item carried by the hooks that the engine invokes.
type AccessRecord struct {
	// Seq is the 1-based position of the reference in the access history.
	Seq   int
	Page  int
	Frame int
	Fault bool

	// Victim is the page that was evicted to make room, meaningful only
	// when Evicted is true.
	Victim  int
	Evicted bool
}

// An Engine owns one page table and replays page references against it. An
// engine serves a single scenario; run concurrent scenarios with one engine
// each.
type Engine struct {
	HookableBase

	name         string
	algorithm    ReplacementAlgorithm
	table        PageTable
	victimFinder replacement.VictimFinder

	faultCount uint64
	numAccess  int
}

// Name returns the name of the engine.
func (e *Engine) Name() string {
	return e.name
}

// Algorithm returns the replacement algorithm the engine was built with.
func (e *Engine) Algorithm() ReplacementAlgorithm {
	return e.algorithm
}

// FaultCount returns the number of accesses that missed so far.
func (e *Engine) FaultCount() uint64 {
	return e.faultCount
}

// PageTable returns the page table for read-only queries.
func (e *Engine) PageTable() PageTable {
	return e.table
}

// Access simulates one reference to the given page. A reference to a
// non-resident page counts as a fault and loads the page, evicting a victim
// if no frame is empty. A reference to an out-of-range page is rejected
// without touching any state.
func (e *Engine) Access(page int) error {
	if page < 0 || page >= e.table.PageCount() {
		return fmt.Errorf("page %d out of range [0, %d)",
			page, e.table.PageCount())
	}

	e.numAccess++

	if frame, ok := e.table.FrameOf(page); ok {
		e.hit(page, frame)
		return nil
	}

	e.fault(page)

	return nil
}

func (e *Engine) hit(page, frame int) {
	if e.algorithm.usesAccessCounters() {
		e.table.Touch(page)
	}

	e.invokeHook(HookPosHit, AccessRecord{
		Seq:   e.numAccess,
		Page:  page,
		Frame: frame,
	})
}

func (e *Engine) fault(page int) {
	e.faultCount++

	record := AccessRecord{
		Seq:   e.numAccess,
		Page:  page,
		Frame: EmptyFrame,
		Fault: true,
	}

	// With no frames at all, every reference faults and nothing can be
	// loaded.
	if e.table.FrameCount() == 0 {
		e.invokeHook(HookPosFault, record)
		return
	}

	frame, ok := e.table.FreeFrame()
	if !ok {
		frame, record.Victim = e.evictVictim()
		record.Evicted = true
	}

	e.place(page, frame)
	record.Frame = frame

	e.invokeHook(HookPosFault, record)
}

func (e *Engine) evictVictim() (frame, victim int) {
	table := e.table.(replacement.Table)

	frame, victim = e.victimFinder.FindVictim(table)

	evicted := e.table.Evict(frame)
	if evicted != victim {
		log.Panicf("victim finder chose page %d in frame %d, but the frame held page %d",
			victim, frame, evicted)
	}

	return frame, victim
}

func (e *Engine) place(page, frame int) {
	e.table.Place(page, frame)
	e.victimFinder.PageLoaded(page, frame)

	// The load itself counts as the first access.
	if e.algorithm.usesAccessCounters() {
		e.table.Touch(page)
	}
}

func (e *Engine) invokeHook(pos *HookPos, record AccessRecord) {
	if e.NumHooks() == 0 {
		return
	}

	e.InvokeHook(HookCtx{
		Domain: e,
		Pos:    pos,
		Item:   record,
	})
}
