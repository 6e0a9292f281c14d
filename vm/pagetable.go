package vm

import "log"

// EmptyFrame marks a page that does not currently name a frame.
const EmptyFrame = -1

// A Page is an entry in the page table. The Frame field keeps the number of
// the last frame the page was in; if the page is resident, it is the frame
// the page is currently in.
type Page struct {
	Number int
	Frame  int
	Valid  bool
}

// A PageTable maintains the residency of pages in frames. It keeps two
// views, one indexed by page and one indexed by frame, that must agree at
// all times.
type PageTable interface {
	PageCount() int
	FrameCount() int

	// Page returns a copy of the entry for the given page number.
	Page(number int) Page

	// FrameOf returns the frame that currently holds the page. The bool
	// return value indicates if the page is resident.
	FrameOf(page int) (int, bool)

	// OccupantOf returns the page held by the frame. The bool return value
	// indicates if the frame is occupied.
	OccupantOf(frame int) (int, bool)

	// AccessCountOf returns how many times the page in the frame has been
	// touched since it was loaded.
	AccessCountOf(frame int) uint64

	// FreeFrame returns the lowest-numbered empty frame.
	FreeFrame() (int, bool)

	// Place puts a page into an empty frame and resets the frame's access
	// count.
	Place(page, frame int)

	// Touch increments the access count of the frame holding the page.
	Touch(page int)

	// Evict clears the residency of the page in the frame and returns the
	// evicted page number.
	Evict(frame int) int

	// CheckIntegrity panics if the page view and the frame view disagree.
	CheckIntegrity()
}

// NewPageTable creates a PageTable with all pages non-resident and all
// frames empty.
func NewPageTable(pageCount, frameCount int) PageTable {
	if pageCount < 0 || frameCount < 0 {
		log.Panicf("page table size cannot be negative, got %d pages, %d frames",
			pageCount, frameCount)
	}

	t := &pageTableImpl{
		entries:  make([]pageEntry, pageCount),
		frames:   make([]int, frameCount),
		counters: make([]uint64, frameCount),
	}

	for i := range t.entries {
		t.entries[i].frame = EmptyFrame
	}

	for i := range t.frames {
		t.frames[i] = emptySlot
	}

	return t
}

const emptySlot = -1

type pageEntry struct {
	frame int
	valid bool
}

// pageTableImpl is the default implementation of a PageTable.
type pageTableImpl struct {
	entries  []pageEntry
	frames   []int
	counters []uint64
}

func (t *pageTableImpl) PageCount() int {
	return len(t.entries)
}

func (t *pageTableImpl) FrameCount() int {
	return len(t.frames)
}

func (t *pageTableImpl) Page(number int) Page {
	entry := t.entries[number]

	return Page{
		Number: number,
		Frame:  entry.frame,
		Valid:  entry.valid,
	}
}

func (t *pageTableImpl) FrameOf(page int) (int, bool) {
	entry := t.entries[page]
	if !entry.valid {
		return EmptyFrame, false
	}

	return entry.frame, true
}

func (t *pageTableImpl) OccupantOf(frame int) (int, bool) {
	page := t.frames[frame]
	if page == emptySlot {
		return emptySlot, false
	}

	return page, true
}

func (t *pageTableImpl) AccessCountOf(frame int) uint64 {
	return t.counters[frame]
}

func (t *pageTableImpl) FreeFrame() (int, bool) {
	for f, page := range t.frames {
		if page == emptySlot {
			return f, true
		}
	}

	return EmptyFrame, false
}

func (t *pageTableImpl) Place(page, frame int) {
	t.pageMustNotBeResident(page)
	t.frameMustBeEmpty(frame)

	t.entries[page].frame = frame
	t.entries[page].valid = true
	t.frames[frame] = page
	t.counters[frame] = 0
}

func (t *pageTableImpl) Touch(page int) {
	t.pageMustBeResident(page)

	t.counters[t.entries[page].frame]++
}

func (t *pageTableImpl) Evict(frame int) int {
	page := t.frames[frame]
	if page == emptySlot {
		log.Panicf("frame %d is empty, nothing to evict", frame)
	}

	// The entry keeps the frame number so that reports can show the last
	// frame the page was in.
	t.entries[page].valid = false
	t.frames[frame] = emptySlot

	return page
}

func (t *pageTableImpl) CheckIntegrity() {
	numResident := 0

	for page, entry := range t.entries {
		if !entry.valid {
			continue
		}

		numResident++

		if entry.frame < 0 || entry.frame >= len(t.frames) {
			log.Panicf("page %d names frame %d, which does not exist",
				page, entry.frame)
		}

		if t.frames[entry.frame] != page {
			log.Panicf("page %d names frame %d, but the frame holds page %d",
				page, entry.frame, t.frames[entry.frame])
		}
	}

	numOccupied := 0

	for frame, page := range t.frames {
		if page == emptySlot {
			continue
		}

		numOccupied++

		if !t.entries[page].valid || t.entries[page].frame != frame {
			log.Panicf("frame %d holds page %d, but the page does not name it back",
				frame, page)
		}
	}

	if numResident != numOccupied {
		log.Panicf("%d resident pages but %d occupied frames",
			numResident, numOccupied)
	}
}

func (t *pageTableImpl) pageMustBeResident(page int) {
	if !t.entries[page].valid {
		log.Panicf("page %d is not resident", page)
	}
}

func (t *pageTableImpl) pageMustNotBeResident(page int) {
	if t.entries[page].valid {
		log.Panicf("page %d is already resident", page)
	}
}

func (t *pageTableImpl) frameMustBeEmpty(frame int) {
	if t.frames[frame] != emptySlot {
		log.Panicf("frame %d is occupied by page %d", frame, t.frames[frame])
	}
}
