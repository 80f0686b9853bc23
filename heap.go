package main

import "github.com/jcorbin/colorforth/internal/mem"

// defaultHeapLimit mirrors the source's "100 KiB" default code heap size
// (in cells rather than bytes -- the heap is a mem.Ints arena of machine
// words, not a byte buffer).
const defaultHeapLimit = 100 * 1024 / 4

// Heap is the code heap: a bump-allocated arena of cells realizing the
// REDESIGN FLAG in §9 (arena of indexed cells instead of raw pointer
// arithmetic). Comma appends at the high-water mark h; Load/Store
// address any previously-allocated cell. Backed by internal/mem.Ints, the
// teacher's own paged integer memory, so heap exhaustion surfaces as a
// mem.LimitError rather than an unchecked pointer walk off the end.
type Heap struct {
	mem mem.Ints
	h   uint
}

// NewHeap constructs a Heap with the given cell limit; zero means
// unbounded, matching the source's unchecked growth.
func NewHeap(limit uint) *Heap {
	var hp Heap
	hp.mem.Limit = limit
	return &hp
}

// Here returns the current bump pointer h, the address the next Comma
// will occupy.
func (hp *Heap) Here() uint { return hp.h }

// Comma stores val at h and advances h by one machine word.
func (hp *Heap) Comma(val Cell) error {
	if err := hp.mem.Stor(hp.h, int(val)); err != nil {
		return err
	}
	hp.h++
	return nil
}

// Load reads a single cell at addr. Unallocated addresses read as zero,
// matching colorForth's zero-initialized heap pages.
func (hp *Heap) Load(addr uint) Cell {
	v, _ := hp.mem.Load(addr)
	return Cell(v)
}

// Store overwrites a cell at addr without advancing h, used by
// back-patching (then) and variable stores (!).
func (hp *Heap) Store(addr uint, val Cell) error {
	return hp.mem.Stor(addr, int(val))
}
