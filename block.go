package main

import (
	"fmt"
	"io"

	"github.com/jcorbin/colorforth/internal/blockio"
)

// BlockStore is the read-only, materialized cell image of one or more
// chained block files: a flat address space the loader indexes by block
// number, the way the editor treats its block device.
type BlockStore struct {
	cells []Cell
}

// LoadBlocks drains readers (in order) through a blockio.Source into one
// flat BlockStore, letting a program's source span more than one file as
// long as each file is a whole number of blocks.
func LoadBlocks(readers ...io.Reader) (*BlockStore, error) {
	if len(readers) == 0 {
		return &BlockStore{}, nil
	}
	src := &blockio.Source{Queue: readers}
	raw, err := src.ReadAll()
	if err != nil {
		return nil, err
	}
	cells := make([]Cell, len(raw))
	for i, v := range raw {
		cells[i] = Cell(v)
	}
	return &BlockStore{cells: cells}, nil
}

// NumBlocks reports how many whole 256-cell blocks are available.
func (bs *BlockStore) NumBlocks() int {
	if bs == nil {
		return 0
	}
	return len(bs.cells) / blockio.BlockCells
}

// Block returns the cells of block n, a slice into the store's backing
// array (read-only in spirit -- callers must not mutate it).
func (bs *BlockStore) Block(n int) ([]Cell, error) {
	if bs == nil || n < 0 || n >= bs.NumBlocks() {
		return nil, fmt.Errorf("block %d out of range (have %d)", n, bs.NumBlocks())
	}
	start := n * blockio.BlockCells
	return bs.cells[start : start+blockio.BlockCells], nil
}

// RunBlock dispatches every cell of block n in order. The historical
// two-zero-cell early termination is not implemented here: like the
// final revision of the source, every cell of the block runs.
func (vm *Interpreter) RunBlock(n int) error {
	block, err := vm.blocks.Block(n)
	if err != nil {
		return err
	}
	for _, c := range block {
		if err := vm.Dispatch(c); err != nil {
			return err
		}
	}
	return nil
}
