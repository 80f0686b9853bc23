package main

// DictKind selects which of the two dictionaries a definition or lookup
// targets: the forth dictionary (default) or the macro dictionary
// (compile-time-only words like if/then/for/next).
type DictKind int

const (
	ForthDict DictKind = iota
	MacroDict
)

func (k DictKind) String() string {
	if k == MacroDict {
		return "macro"
	}
	return "forth"
}

// Entry is one dictionary definition: a packed name and a codeword. The
// codeword's range determines how the inner interpreter enters it: values
// below the builtin count select a primitive directly; values at or above
// it are heap addresses, entered the way DOCOL would push a return
// address and jump, with no separate synthetic DOCOL cell ever stored in
// the heap.
type Entry struct {
	Name     Cell
	CodeWord uint
}

// Dictionary is an ordered list of Entries, newest-last. Lookup scans from
// the end so a later definition shadows an earlier one of the same name,
// matching how a running colorForth session lets you redefine a word.
type Dictionary struct {
	entries []*Entry
}

// Define appends a new entry, possibly shadowing an existing one of the
// same name.
func (d *Dictionary) Define(e *Entry) {
	d.entries = append(d.entries, e)
}

// Lookup finds the most recently defined entry whose name matches the
// payload bits of name (the color tag is ignored).
func (d *Dictionary) Lookup(name Cell) (*Entry, bool) {
	want := name.Payload()
	for i := len(d.entries) - 1; i >= 0; i-- {
		if d.entries[i].Name.Payload() == want {
			return d.entries[i], true
		}
	}
	return nil, false
}

// Entries returns the dictionary's entries in definition order, for the
// disassembler.
func (d *Dictionary) Entries() []*Entry {
	out := make([]*Entry, len(d.entries))
	copy(out, d.entries)
	return out
}
