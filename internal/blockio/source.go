// Package blockio provides sequential access to colorForth block storage:
// a read-only stream of 32-bit little-endian cells, chained across one or
// more underlying files the way the editor's block device would be
// backed by several block files on disk.
package blockio

import (
	"encoding/binary"
	"fmt"
	"io"
)

// CellSize is the width in bytes of one stored cell.
const CellSize = 4

// BlockCells is the number of cells in one logical block.
const BlockCells = 256

// BlockBytes is the byte size of one logical block.
const BlockBytes = BlockCells * CellSize

// Location names a cell offset within a named source, for diagnostics.
type Location struct {
	Name string
	Cell int
}

func (loc Location) String() string { return fmt.Sprintf("%v@%v", loc.Name, loc.Cell) }

// Source reads a sequential stream of int32 cells across a Queue of one or
// more io.Readers, the way fileinput.Input chains rune sources -- except
// each read here consumes a fixed 4-byte little-endian cell instead of a
// rune.
type Source struct {
	r     io.Reader
	Queue []io.Reader
	Last  Location
	cell  int
}

// ReadCell reads one 32-bit little-endian cell from the current input
// stream, rolling over to the next queued reader on EOF.
func (s *Source) ReadCell() (int32, error) {
	var buf [CellSize]byte
	for {
		if s.r == nil && !s.nextIn() {
			return 0, io.EOF
		}
		n, err := io.ReadFull(s.r, buf[:])
		if n == CellSize {
			s.Last.Cell = s.cell
			s.cell++
			return int32(binary.LittleEndian.Uint32(buf[:])), nil
		}
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return 0, err
		}
		// short/empty read: this source is exhausted, advance the queue
		if cl, ok := s.r.(io.Closer); ok {
			cl.Close()
		}
		s.r = nil
	}
}

func (s *Source) nextIn() bool {
	if len(s.Queue) == 0 {
		return false
	}
	r := s.Queue[0]
	s.Queue = s.Queue[1:]
	s.r = r
	s.cell = 0
	s.Last.Name = nameOf(r)
	return true
}

// ReadAll drains the whole queue into a flat slice of cells, used to
// materialize the read-only block store the core dispatches against.
func (s *Source) ReadAll() ([]int32, error) {
	var cells []int32
	for {
		c, err := s.ReadCell()
		if err == io.EOF {
			return cells, nil
		}
		if err != nil {
			return cells, err
		}
		cells = append(cells, c)
	}
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
