package main

// Dispatch realizes the sixteen-way color dispatcher: it decides, from a
// single cell's tag, whether to run a word now, compile a call to one,
// compile a literal, begin or continue a definition, or ignore the cell
// outright. It is the single entry point block.go's loader calls once
// per cell read from a block.
func (vm *Interpreter) Dispatch(c Cell) error {
	switch c.Tag() {
	case TagWordExtension:
		return nil // continuation of a prior word, folded in at pack time
	case TagExecute:
		return vm.dispatchExecute(c)
	case TagBigNumber:
		return nil // reserved, ignored
	case TagDefine:
		return vm.beginDefine(c)
	case TagCompile:
		return vm.dispatchCompile(c)
	case TagCompileBigNumber:
		return nil // reserved, ignored
	case TagCompileNumber:
		return vm.compileNumber(c)
	case TagCompileMacro:
		return vm.dispatchCompileMacro(c)
	case TagNumber:
		return vm.data.Push(c.Number())
	case TagComment9, TagComment10, TagComment11:
		return nil
	case TagVariable:
		return vm.defineVariable(c)
	case TagFeedback:
		return nil
	case TagDisplayMacro:
		return nil
	case TagReserved:
		return nil
	default:
		return nil
	}
}

func (vm *Interpreter) dispatchExecute(c Cell) error {
	e, ok := vm.forth.Lookup(c)
	if !ok {
		return vm.reportUnknown(c)
	}
	return vm.call(e.CodeWord)
}

// dispatchCompile realizes tag 4 (compile forth word, green): the macro
// dictionary is consulted first -- a macro word found there runs
// immediately, at compile time, the way if/then/for/next expand inline
// wherever they're referenced -- and only once that lookup misses does a
// forth-dictionary hit get compiled as a call (its codeword appended to
// the heap). This is what makes scenario 6's "macro switch" work: a word
// defined in the macro dictionary and later referenced with a plain
// compile-tagged cell expands inline into the definition compiling it.
func (vm *Interpreter) dispatchCompile(c Cell) error {
	if e, ok := vm.macro.Lookup(c); ok {
		return vm.executeMacroEntry(e)
	}

	e, ok := vm.forth.Lookup(c)
	if !ok {
		return vm.reportUnknown(c)
	}
	if err := vm.heap.Comma(Cell(e.CodeWord)); err != nil {
		return err
	}
	if vm.defining != nil && e.CodeWord == vm.cwExit {
		vm.defining = nil
	}
	return nil
}

// dispatchCompileMacro realizes tag 7 (compile macro call). Macro
// dictionary words act at compile time rather than being called later --
// a builtin is a Go closure that edits the code heap directly, and a
// user-defined macro word's body is copied inline -- so this tag does not
// append an address the way it would a forth word's codeword; it runs
// executeMacroEntry instead, the same as a macro-dictionary hit under
// tag 4. The two tags differ only in which
// dictionary a reference normally expects to resolve against.
func (vm *Interpreter) dispatchCompileMacro(c Cell) error {
	e, ok := vm.macro.Lookup(c)
	if !ok {
		return vm.reportUnknown(c)
	}
	return vm.executeMacroEntry(e)
}

// executeMacroEntry runs a macro dictionary entry at compile time: a
// builtin's codeword indexes vm.macroPrims directly and edits the heap
// itself (if/then/for/next and friends), while a user-defined macro word
// (one compiled while the macro dictionary was selected) has a heap
// address instead and is expanded inline -- its own compiled body is
// copied codeword for codeword into whatever definition is currently
// compiling, the way "macro switch" inlines a macro-dict word at its
// point of reference rather than compiling a call to it.
func (vm *Interpreter) executeMacroEntry(e *Entry) error {
	if e.CodeWord < uint(len(vm.macroPrims)) {
		return vm.macroPrims[e.CodeWord](vm)
	}
	return vm.inlineMacroBody(e.CodeWord)
}

// inlineMacroBody copies a user-defined macro word's compiled body, cell
// by cell and unevaluated, into the heap until it reaches that body's own
// closing exit codeword (which is not copied -- the inlined cells have no
// call frame of their own to return from). Operand cells following a
// literal or branch codeword are copied right along with it, since this
// walks the body blindly rather than decoding each codeword's arity.
func (vm *Interpreter) inlineMacroBody(addr uint) error {
	for {
		cw := vm.heap.Load(addr)
		addr++
		if uint(cw) == vm.cwExit {
			return nil
		}
		if err := vm.heap.Comma(cw); err != nil {
			return err
		}
	}
}

func (vm *Interpreter) compileNumber(c Cell) error {
	if err := vm.heap.Comma(Cell(vm.cwLiteral)); err != nil {
		return err
	}
	return vm.heap.Comma(Cell(c.Number()))
}

// beginDefine starts a colon-style definition: the entry is created and
// published into the selected dictionary immediately, at the address
// the body is about to start at, so a recursive call inside the body
// resolves correctly. A definition compiled while the macro dictionary is
// selected (scenario 6's "macro switch") is a colon definition exactly
// like a forth one -- the same DOCOL-less, heap-addressed body -- just
// published into vm.macro instead of vm.forth, so a later tag-4 reference
// to it is found by dispatchCompile's macro-first lookup and executed at
// compile time rather than compiled as a call.
func (vm *Interpreter) beginDefine(c Cell) error {
	e := &Entry{Name: c.Payload(), CodeWord: vm.heap.Here()}
	switch vm.selected {
	case MacroDict:
		vm.macro.Define(e)
	default:
		vm.forth.Define(e)
	}
	vm.defining = e
	vm.defDict = vm.selected
	return nil
}

// defineVariable reserves one storage cell after a DOVAR-style codeword
// and publishes the entry immediately; variables have no body to close,
// so vm.defining is left untouched.
func (vm *Interpreter) defineVariable(c Cell) error {
	e := &Entry{Name: c.Payload(), CodeWord: vm.heap.Here()}
	if err := vm.heap.Comma(Cell(vm.cwVariable)); err != nil {
		return err
	}
	if err := vm.heap.Comma(0); err != nil {
		return err
	}
	vm.forth.Define(e)
	return nil
}
