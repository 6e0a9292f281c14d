// Package replacement implements the victim-selection policies of the page
// table engine.
//
// Three policies are available. FIFO evicts the resident page that was
// loaded earliest. LRU evicts the frame with the smallest access count,
// where the count starts at the load and grows with every hit; the count
// never decays, so a long-resident but busy frame can outlive a recent but
// idle one. MFU is the symmetric policy and evicts the frame with the
// largest access count.
package replacement

import (
	"log"

	"github.com/sarchlab/pagesim/vm/queueing"
)

// A Table is the read-only view of the page table that victim finders
// consult.
type Table interface {
	FrameCount() int

	// FrameOf returns the frame that currently holds the page. The bool
	// return value indicates if the page is resident.
	FrameOf(page int) (int, bool)

	// OccupantOf returns the page held by the frame. The bool return value
	// indicates if the frame is occupied.
	OccupantOf(frame int) (int, bool)

	AccessCountOf(frame int) uint64
}

// A VictimFinder decides which frame should be freed when a page must be
// loaded and no frame is empty.
type VictimFinder interface {
	// PageLoaded notifies the finder that a page has been placed into a
	// frame.
	PageLoaded(page, frame int)

	// FindVictim returns the frame to free and the page that currently
	// occupies it.
	FindVictim(table Table) (frame, victim int)
}

// FIFOVictimFinder evicts the resident page that was loaded earliest.
type FIFOVictimFinder struct {
	queue queueing.Buffer
}

// NewFIFOVictimFinder returns a finder that tracks load order in a bounded
// queue. The capacity must equal the number of frames.
func NewFIFOVictimFinder(capacity int) *FIFOVictimFinder {
	f := new(FIFOVictimFinder)
	f.queue = queueing.NewBuffer("FIFOQueue", capacity)
	return f
}

// PageLoaded records the page at the back of the load-order queue.
func (f *FIFOVictimFinder) PageLoaded(page, _ int) {
	f.queue.Push(page)
}

// FindVictim dequeues the oldest resident page and resolves the frame it
// currently occupies. The queue only holds resident pages, so the lookup
// must succeed.
func (f *FIFOVictimFinder) FindVictim(table Table) (int, int) {
	if f.queue.Size() == 0 {
		log.Panic("fifo queue is empty, no victim to select")
	}

	victim := f.queue.Pop().(int)

	frame, ok := table.FrameOf(victim)
	if !ok {
		log.Panicf("page %d dequeued for eviction is not resident", victim)
	}

	return frame, victim
}

// LRUVictimFinder evicts the frame with the smallest access count.
type LRUVictimFinder struct {
}

// NewLRUVictimFinder returns a newly constructed lru evictor.
func NewLRUVictimFinder() *LRUVictimFinder {
	return new(LRUVictimFinder)
}

// PageLoaded does nothing. Access counts live in the page table.
func (e *LRUVictimFinder) PageLoaded(_, _ int) {
}

// FindVictim scans all frames and returns the one with the strictly
// smallest access count. Ties go to the lowest frame index.
func (e *LRUVictimFinder) FindVictim(table Table) (int, int) {
	frame := scanCounters(table, func(count, best uint64) bool {
		return count < best
	})

	victim, ok := table.OccupantOf(frame)
	if !ok {
		log.Panicf("frame %d selected for eviction is empty", frame)
	}

	return frame, victim
}

// MFUVictimFinder evicts the frame with the largest access count.
type MFUVictimFinder struct {
}

// NewMFUVictimFinder returns a newly constructed mfu evictor.
func NewMFUVictimFinder() *MFUVictimFinder {
	return new(MFUVictimFinder)
}

// PageLoaded does nothing. Access counts live in the page table.
func (e *MFUVictimFinder) PageLoaded(_, _ int) {
}

// FindVictim scans all frames and returns the one with the strictly
// largest access count. Ties go to the lowest frame index.
func (e *MFUVictimFinder) FindVictim(table Table) (int, int) {
	frame := scanCounters(table, func(count, best uint64) bool {
		return count > best
	})

	victim, ok := table.OccupantOf(frame)
	if !ok {
		log.Panicf("frame %d selected for eviction is empty", frame)
	}

	return frame, victim
}

func scanCounters(table Table, better func(count, best uint64) bool) int {
	if table.FrameCount() == 0 {
		log.Panic("cannot select a victim from a table with no frames")
	}

	frame := 0
	best := table.AccessCountOf(0)

	for f := 1; f < table.FrameCount(); f++ {
		count := table.AccessCountOf(f)
		if better(count, best) {
			frame = f
			best = count
		}
	}

	return frame
}
