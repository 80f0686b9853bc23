package main

// installForthPrimitives populates vm.forthPrims, the codeword table for
// the forth dictionary: index i is the Go implementation invoked when a
// compiled cell's value equals i. Values from len(vm.forthPrims) upward
// are heap addresses instead, realizing the codeword-table split the
// inner loop relies on. The interpretation-time-only helpers (literal,
// variable, zero_branch, for_aux, next_aux) occupy slots here too, but
// are never bound to a dictionary name -- nothing can TagExecute or
// TagCompile them by name, only the compiler emits them directly.
func installForthPrimitives(vm *Interpreter) {
	vm.forthPrims = vm.forthPrims[:0]
	vm.forth = Dictionary{}

	add := func(name string, fn func(*Interpreter) error) uint {
		cw := uint(len(vm.forthPrims))
		vm.forthPrims = append(vm.forthPrims, fn)
		if name != "" {
			n, err := pack(name)
			if err != nil {
				panic(err) // builtin names are fixed and always valid
			}
			vm.forth.Define(&Entry{Name: n.Payload(), CodeWord: cw})
		}
		return cw
	}

	add(",", primComma)
	add("load", primLoad)
	add("loads", primLoads)
	add("forth", primSelectForth)
	add("macro", primSelectMacro)
	vm.cwExit = add(";", primExit)
	add("!", primStore)
	add("@", primFetch)
	add("+", primAdd)
	add("-", primSub)
	add("*", primMul)
	add("/", primDiv)
	add("ne", primNotEqual)
	add("dup", primDup)
	add("drop", primDrop)
	add("nip", primNip)
	add("negate", primNegate)
	add(".", primDot)
	add("here", primHere)
	add("i", primI)
	add("and", primAnd)
	add("or", primOr)
	add("xor", primXor)
	add("not", primNot)
	add("lt", primLessThan)

	vm.cwLiteral = add("", primLiteral)
	vm.cwVariable = add("", primVariable)
	vm.cwZeroBranch = add("", primZeroBranch)
	vm.cwForAux = add("", primForAux)
	vm.cwNextAux = add("", primNextAux)
	vm.cwRDrop = add("", primRDrop)
	vm.cwSwap = add("", primSwap)
}

// primSwap exchanges the top two data stack cells at runtime. It backs
// the macro dictionary's "swap" (§4.4 lists swap only in the macro
// dictionary, never the forth one): macroSwap compiles a call to this the
// same way macroRDrop and macroNotEqual compile calls to their runtime
// counterparts, rather than running the exchange itself at compile time.
func primSwap(vm *Interpreter) error {
	b, err := vm.data.Pop()
	if err != nil {
		return err
	}
	a, err := vm.data.Pop()
	if err != nil {
		return err
	}
	if err := vm.data.Push(b); err != nil {
		return err
	}
	return vm.data.Push(a)
}

// primRDrop discards the top of the return stack at runtime; the macro
// dict's rdrop compiles a call to this so a loop body can abandon its
// counter before running next.
func primRDrop(vm *Interpreter) error {
	_, err := vm.ret.Pop()
	return err
}

// primComma appends the top of the data stack to the code heap as a raw
// cell, the runtime face of the ',' operator colorForth's compiler uses
// on itself.
func primComma(vm *Interpreter) error {
	v, err := vm.data.Pop()
	if err != nil {
		return err
	}
	return vm.heap.Comma(Cell(v))
}

// primLoad interprets one block by number.
func primLoad(vm *Interpreter) error {
	n, err := vm.data.Pop()
	if err != nil {
		return err
	}
	return vm.RunBlock(int(n))
}

// primLoads interprets a contiguous range of blocks [i, j].
func primLoads(vm *Interpreter) error {
	j, err := vm.data.Pop()
	if err != nil {
		return err
	}
	i, err := vm.data.Pop()
	if err != nil {
		return err
	}
	for n := i; n <= j; n++ {
		if n%2 != 0 {
			continue // odd blocks are shadow comment blocks, skipped by loads
		}
		if err := vm.RunBlock(int(n)); err != nil {
			return err
		}
	}
	return nil
}

func primSelectForth(vm *Interpreter) error {
	vm.selected = ForthDict
	return nil
}

func primSelectMacro(vm *Interpreter) error {
	vm.selected = MacroDict
	return nil
}

// primExit ends the current call frame: pop the return stack and jump
// there, or halt cleanly if the return stack is already empty.
func primExit(vm *Interpreter) error {
	addr, err := vm.ret.Pop()
	if err != nil {
		return haltError{}
	}
	vm.ip = uint(addr)
	return nil
}

func primStore(vm *Interpreter) error {
	addr, err := vm.data.Pop()
	if err != nil {
		return err
	}
	val, err := vm.data.Pop()
	if err != nil {
		return err
	}
	return vm.heap.Store(uint(addr), Cell(val))
}

func primFetch(vm *Interpreter) error {
	addr, err := vm.data.Pop()
	if err != nil {
		return err
	}
	return vm.data.Push(int32(vm.heap.Load(uint(addr))))
}

func binaryOp(vm *Interpreter, fn func(a, b int32) int32) error {
	b, err := vm.data.Pop()
	if err != nil {
		return err
	}
	a, err := vm.data.Pop()
	if err != nil {
		return err
	}
	return vm.data.Push(fn(a, b))
}

func primAdd(vm *Interpreter) error { return binaryOp(vm, func(a, b int32) int32 { return a + b }) }
func primSub(vm *Interpreter) error { return binaryOp(vm, func(a, b int32) int32 { return a - b }) }
func primMul(vm *Interpreter) error { return binaryOp(vm, func(a, b int32) int32 { return a * b }) }
func primDiv(vm *Interpreter) error {
	return binaryOp(vm, func(a, b int32) int32 {
		if b == 0 {
			return 0
		}
		return a / b
	})
}
func primAnd(vm *Interpreter) error { return binaryOp(vm, func(a, b int32) int32 { return a & b }) }
func primOr(vm *Interpreter) error  { return binaryOp(vm, func(a, b int32) int32 { return a | b }) }
func primXor(vm *Interpreter) error { return binaryOp(vm, func(a, b int32) int32 { return a ^ b }) }

// primLessThan compares the second-from-top value against the top
// (a lt b tests a < b), pushing the canonical -1/0 boolean. Not named in
// §4.4's primitive list, but required by the abs scenario in §8
// ("dup 0 lt if negate then"); added alongside and/or/xor/not as a
// canonical comparison the dispatcher table doesn't otherwise expose.
func primLessThan(vm *Interpreter) error {
	return binaryOp(vm, func(a, b int32) int32 {
		if a < b {
			return -1
		}
		return 0
	})
}

func primNotEqual(vm *Interpreter) error {
	return binaryOp(vm, func(a, b int32) int32 {
		if a != b {
			return -1
		}
		return 0
	})
}

func primNot(vm *Interpreter) error {
	v, err := vm.data.Pop()
	if err != nil {
		return err
	}
	if v == 0 {
		return vm.data.Push(-1)
	}
	return vm.data.Push(0)
}

func primDup(vm *Interpreter) error {
	v, err := vm.data.Peek()
	if err != nil {
		return err
	}
	return vm.data.Push(v)
}

func primDrop(vm *Interpreter) error {
	_, err := vm.data.Pop()
	return err
}

// primNip discards the second item from the top, keeping the top.
func primNip(vm *Interpreter) error {
	top, err := vm.data.Pop()
	if err != nil {
		return err
	}
	if _, err := vm.data.Pop(); err != nil {
		return err
	}
	return vm.data.Push(top)
}

func primNegate(vm *Interpreter) error {
	v, err := vm.data.Pop()
	if err != nil {
		return err
	}
	return vm.data.Push(-v)
}

// primDot prints the top of the data stack followed by a space, the
// conventional Forth '.' rendering.
func primDot(vm *Interpreter) error {
	v, err := vm.data.Pop()
	if err != nil {
		return err
	}
	vm.writeOutf("%d ", v)
	return nil
}

func primHere(vm *Interpreter) error {
	return vm.data.Push(int32(vm.heap.Here()))
}

// primI pushes the innermost for/next loop counter without consuming it.
func primI(vm *Interpreter) error {
	v, err := vm.ret.Peek()
	if err != nil {
		return err
	}
	return vm.data.Push(v)
}
