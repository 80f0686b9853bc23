/* Package main: colorforth -- a dialect of colorForth

colorForth is Chuck Moore's minimalist Forth variant in which each source
token carries a semantic "color" tag -- immediate, compile-time, macro,
definition, number literal, variable, comment -- instead of relying on
parser state. Source programs live as fixed-size blocks of pre-tokenized,
pre-packed 32-bit cells on disk; a block loader drives a dispatch table
keyed by color, which in turn drives the interpreter or compiler to
materialize executable threaded code in a heap.

This package is the core of that system: the word codec, the
color-directed dispatch and compilation engine, and the threaded-code
execution model. The SDL/TTF editor, the raw block file, and CLI
argument handling are treated as external collaborators -- this package
only exposes: read a cell, run the dispatch for one cell, report stack
contents as text, look up a word.

Section 1: word codec, see codec.go and cell.go.
Section 2: dictionaries, code heap, stacks, see dict.go, heap.go, stack.go.
Section 3: primitives and control-flow macros, see primitives.go, macros.go.
Section 4: inner interpreter and color dispatcher, see vm.go and inner.go.
Section 5: block loader and public API, see block.go, vm.go, api.go.

Memory layout note, carried over from the historical source: unlike a
linear "location 0 holds the dictionary pointer" layout, this
reimplementation keeps the dictionary, code heap, and both stacks as
explicit fields of an Interpreter value rather than as well-known
addresses inside one shared memory blob. The wire format and color
semantics are unchanged; only the host-side bookkeeping moved out of
band.
*/
package main
