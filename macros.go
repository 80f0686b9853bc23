package main

// installMacroPrimitives populates vm.macroPrims and the macro
// dictionary. The builtin macro words are Go functions that run
// immediately, at compile time, when a TagCompile or TagCompileMacro cell
// names them; words defined while the macro dictionary is selected are
// added later by beginDefine and inlined by executeMacroEntry. Several
// builtins emit runtime codewords into the heap; if/then
// and for/next additionally use the data stack as a back-patch scratch
// area, the same stack a running program uses for numbers, matching how
// colorForth itself overlays compiler bookkeeping onto the data stack
// while a block is being compiled.
func installMacroPrimitives(vm *Interpreter) {
	vm.macroPrims = vm.macroPrims[:0]
	vm.macro = Dictionary{}

	add := func(name string, fn func(*Interpreter) error) {
		cw := uint(len(vm.macroPrims))
		vm.macroPrims = append(vm.macroPrims, fn)
		n, err := pack(name)
		if err != nil {
			panic(err)
		}
		vm.macro.Define(&Entry{Name: n.Payload(), CodeWord: cw})
	}

	add("rdrop", macroRDrop)
	add("ne", macroNotEqual)
	add("swap", macroSwap)
	add("if", macroIf)
	add("then", macroThen)
	add("for", macroFor)
	add("next", macroNext)
}

// macroRDrop compiles a call to the runtime rdrop primitive.
func macroRDrop(vm *Interpreter) error {
	return vm.heap.Comma(Cell(vm.cwRDrop))
}

// macroNotEqual compiles a call to the forth dictionary's runtime ne.
func macroNotEqual(vm *Interpreter) error {
	e, ok := vm.forth.Lookup(mustPack("ne"))
	if !ok {
		return unknownWordError{name: "ne"}
	}
	return vm.heap.Comma(Cell(e.CodeWord))
}

// macroSwap compiles a call to the runtime swap primitive (primSwap):
// swap has no forth-dictionary entry of its own (§4.4), so every use of it
// inside a definition must be expanded, at compile time, into a call to
// its runtime primitive, the same way rdrop's and ne's macros compile
// calls to theirs.
func macroSwap(vm *Interpreter) error {
	return vm.heap.Comma(Cell(vm.cwSwap))
}

// macroIf compiles a zero_branch with a placeholder target and leaves
// the address of that placeholder on the data stack for then to patch.
func macroIf(vm *Interpreter) error {
	if err := vm.heap.Comma(Cell(vm.cwZeroBranch)); err != nil {
		return err
	}
	slot := vm.heap.Here()
	if err := vm.heap.Comma(0); err != nil {
		return err
	}
	return vm.data.Push(int32(slot))
}

// macroThen patches the zero_branch target left by a prior if to land
// right here, closing the conditional.
func macroThen(vm *Interpreter) error {
	slot, err := vm.data.Pop()
	if err != nil {
		return err
	}
	return vm.heap.Store(uint(slot), Cell(vm.heap.Here()))
}

// macroFor compiles a for_aux (moving the loop count from the data stack
// to the return stack) and remembers the loop top for next to branch
// back to.
func macroFor(vm *Interpreter) error {
	if err := vm.heap.Comma(Cell(vm.cwForAux)); err != nil {
		return err
	}
	return vm.data.Push(int32(vm.heap.Here()))
}

// macroNext compiles a next_aux whose inline operand is the loop top
// address left by for.
func macroNext(vm *Interpreter) error {
	top, err := vm.data.Pop()
	if err != nil {
		return err
	}
	if err := vm.heap.Comma(Cell(vm.cwNextAux)); err != nil {
		return err
	}
	return vm.heap.Comma(Cell(top))
}

func mustPack(name string) Cell {
	c, err := pack(name)
	if err != nil {
		panic(err)
	}
	return c.Payload()
}
