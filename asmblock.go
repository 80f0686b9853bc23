package main

import "github.com/jcorbin/colorforth/internal/blockio"

// asmblock.go is test/tooling infrastructure, not a parser exposed to
// programs: it builds colorForth blocks directly from Go-level symbolic
// tokens instead of requiring a binary block-file fixture checked into
// the repo, mirroring the teacher's choice to keep FIRST's bootstrap
// program (thirdKernel, historically) as Go source rather than an
// external file. Used by _test.go files and scripts/gen_block_fixtures.go.

// Word builds a cell naming a word with the given color tag -- the usual
// way to reference a forth/macro dictionary entry (Execute, Compile,
// CompileMacro, Define, DefineVariable all wrap this).
func Word(tag ColorTag, name string) Cell {
	c, err := pack(name)
	if err != nil {
		panic(err)
	}
	return c.Payload() | Cell(tag)
}

// Execute builds a tag-1 cell: look up name in the forth dictionary and
// run it immediately.
func Execute(name string) Cell { return Word(TagExecute, name) }

// Compile builds a tag-4 cell: compile a call to name (or expand it
// inline if name is a macro word), the color a colon definition's body
// normally uses to reference other words.
func Compile(name string) Cell { return Word(TagCompile, name) }

// CompileMacro builds a tag-7 cell: compile/expand a macro-dictionary
// word by name.
func CompileMacro(name string) Cell { return Word(TagCompileMacro, name) }

// Define builds a tag-3 cell: start a new definition named name in the
// currently selected dictionary.
func Define(name string) Cell { return Word(TagDefine, name) }

// DefineVariable builds a tag-12 cell: create a variable named name.
func DefineVariable(name string) Cell { return Word(TagVariable, name) }

// Number builds a tag-8 cell: push n onto the data stack immediately.
func Number(n int32) Cell { return NewNumberCell(n, TagNumber) }

// CompileNumber builds a tag-6 cell: compile n as a literal.
func CompileNumber(n int32) Cell { return NewNumberCell(n, TagCompileNumber) }

// Comment builds a tag-9 cell carrying no meaningful payload, used to pad
// a definition or mark a shadow line; the dispatcher ignores it.
func Comment() Cell { return Cell(TagComment9) }

// AssembleBlock lays out cells at the start of a fresh 256-cell block,
// padding the remainder after them with zero (tag-0, word-extension/ignored) cells exactly
// as an editor would leave the untyped tail of a block.
func AssembleBlock(cells ...Cell) []Cell {
	if len(cells) > blockio.BlockCells {
		panic("asmblock: too many cells for one block")
	}
	block := make([]Cell, blockio.BlockCells)
	copy(block, cells)
	return block
}

// AssembleBlocks lays out one or more blocks end to end into a flat cell
// image matching the shape LoadBlocks produces from a real block file,
// for constructing a *BlockStore directly in tests without going through
// an io.Reader.
func AssembleBlocks(blocks ...[]Cell) *BlockStore {
	bs := &BlockStore{}
	for _, b := range blocks {
		block := AssembleBlock(b...)
		bs.cells = append(bs.cells, block...)
	}
	return bs
}
