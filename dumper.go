package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/jcorbin/colorforth/internal/runeio"
)

// Disassemble writes a human-readable report of an Interpreter's state: the
// data and return stacks, both dictionaries, and the code heap with each
// cell annotated by the builtin primitive or compiled-word name occupying
// it, grounded in the teacher's vmDumper (dumper.go) but addressed by
// codeword/heap-address rather than raw byte offsets into one shared
// memory blob.
func Disassemble(w io.Writer, vm *Interpreter) {
	fmt.Fprintf(w, "# colorforth dump\n")
	fmt.Fprintf(w, "  selected: %v\n", vm.selected)
	fmt.Fprintf(w, "  data:  %v\n", vm.data.Values())
	fmt.Fprintf(w, "  ret:   %v\n", vm.ret.Values())

	dmp := dumper{vm: vm, out: w}
	dmp.dictionary("forth", vm.forth.Entries())
	dmp.dictionary("macro", vm.macro.Entries())
	dmp.heap()
}

type dumper struct {
	vm  *Interpreter
	out io.Writer
}

func (d *dumper) dictionary(name string, entries []*Entry) {
	fmt.Fprintf(d.out, "  %s dictionary:\n", name)
	for _, e := range entries {
		fmt.Fprintf(d.out, "    %-12s @%d\n", unpack(e.Name), e.CodeWord)
	}
}

// codewordName resolves a codeword to a human label: a forth-dictionary
// name if one targets it directly, one of the unnamed interpretation-time
// helpers, or a bare numeral for an address with no associated name (the
// body of a definition past its first cell).
func (d *dumper) codewordName(cw uint) string {
	switch cw {
	case d.vm.cwExit:
		return ";"
	case d.vm.cwLiteral:
		return "(literal)"
	case d.vm.cwVariable:
		return "(variable)"
	case d.vm.cwZeroBranch:
		return "(zero_branch)"
	case d.vm.cwForAux:
		return "(for_aux)"
	case d.vm.cwNextAux:
		return "(next_aux)"
	case d.vm.cwRDrop:
		return "(rdrop)"
	case d.vm.cwSwap:
		return "(swap)"
	}
	for _, e := range d.vm.forth.Entries() {
		if e.CodeWord == cw {
			return unpack(e.Name)
		}
	}
	if cw < uint(len(d.vm.forthPrims)) {
		return fmt.Sprintf("prim#%d", cw)
	}
	return fmt.Sprintf("%d", cw)
}

// heap lists every allocated heap cell in address order, resolving
// definition-entry-point addresses to their word names the way the
// teacher's dumper resolves `last`-linked words, except this reimplementation
// has no pointer-range heuristic to guess where code ends: it simply walks
// up to the bump pointer `h`.
func (d *dumper) heap() {
	fmt.Fprintf(d.out, "  heap (%d cells):\n", d.vm.heap.Here())

	starts := make(map[uint]string)
	for _, e := range d.vm.forth.Entries() {
		if e.CodeWord >= uint(len(d.vm.forthPrims)) {
			starts[e.CodeWord] = unpack(e.Name)
		}
	}
	addrs := make([]uint, 0, len(starts))
	for a := range starts {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	for addr := uint(0); addr < d.vm.heap.Here(); addr++ {
		if name, ok := starts[addr]; ok {
			fmt.Fprintf(d.out, "  : %s\n", name)
		}
		cw := uint(d.vm.heap.Load(addr))
		fmt.Fprintf(d.out, "    @%-4d %s\n", addr, d.codewordName(cw))
	}
}

// tagColor maps a ColorTag to the ANSI SGR foreground color code the
// historical editor would have rendered it in -- red for definitions,
// green for compiled words, yellow for numbers, and so on -- literalizing
// "color"Forth for a plain terminal.
func tagColor(t ColorTag) string {
	switch t {
	case TagDefine:
		return "\x1b[31m" // red
	case TagCompile, TagCompileMacro:
		return "\x1b[32m" // green
	case TagCompileNumber, TagNumber:
		return "\x1b[33m" // yellow
	case TagVariable:
		return "\x1b[35m" // magenta
	case TagComment9, TagComment10, TagComment11:
		return "\x1b[90m" // bright black
	case TagExecute:
		return "\x1b[36m" // cyan
	default:
		return "\x1b[37m" // white
	}
}

const ansiReset = "\x1b[0m"

// RenderBlock writes an ANSI-colorized listing of a block's cells, one per
// line, colored by color tag -- the read-only, editor-facing counterpart to
// the SDL/TTF renderer's block view, reusing internal/runeio's ANSI-aware
// rune writer the way the teacher's own tools write escape sequences
// through it rather than raw byte slices.
func RenderBlock(w io.Writer, block []Cell) {
	for i, c := range block {
		if c == 0 {
			continue
		}
		color := tagColor(c.Tag())
		_, _ = runeio.WriteANSIString(w, color)
		fmt.Fprintf(w, "%4d: %v", i, c)
		_, _ = runeio.WriteANSIString(w, ansiReset)
		fmt.Fprintln(w)
	}
}
