package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jcorbin/colorforth/internal/flushio"
)

// Interpreter is a colorForth virtual machine: a code heap, two
// dictionaries, a data stack and a return stack, plus the bookkeeping
// needed to compile new definitions as their source cells are read. It is
// an ordinary value-ish type (held by pointer), not a package-level
// singleton, so a program can run more than one independently.
type Interpreter struct {
	heap *Heap
	data *Stack
	ret  *Stack

	forth Dictionary
	macro Dictionary

	forthPrims []func(*Interpreter) error
	macroPrims []func(*Interpreter) error

	ip uint

	selected DictKind // which dictionary TagDefine targets
	defining *Entry   // non-nil while compiling a colon-style body
	defDict  DictKind

	// codeword indices for the interpretation-time-only helpers, set once
	// by installForthPrimitives and used by dispatch to emit them without
	// exposing dictionary names for them.
	cwExit       uint
	cwLiteral    uint
	cwVariable   uint
	cwZeroBranch uint
	cwForAux     uint
	cwNextAux    uint
	cwRDrop      uint
	cwSwap       uint

	blocks *BlockStore

	ctx       context.Context
	out       flushio.WriteFlusher
	onUnknown func(Cell)
	logf      func(format string, args ...interface{})
}

// NewInterpreter builds an Interpreter with the given heap and stack
// capacities, an empty pair of dictionaries, and the builtin primitives
// installed into the forth and macro dictionaries.
func NewInterpreter(heapLimit uint, stackCapacity int) *Interpreter {
	if stackCapacity <= 0 {
		stackCapacity = defaultStackCapacity
	}
	vm := &Interpreter{
		heap: NewHeap(heapLimit),
		data: NewStack(stackCapacity),
		ret:  NewStack(stackCapacity),
	}
	installForthPrimitives(vm)
	installMacroPrimitives(vm)

	// Reserve the low end of the heap's address space so that no compiled
	// definition's entry point (a heap address) can ever collide with a
	// primitive's codeword index: call/enter tell the two apart solely by
	// comparing against len(vm.forthPrims), and executeMacroEntry does the
	// same against len(vm.macroPrims), so heap addresses must start at or
	// beyond both.
	reserve := uint(len(vm.forthPrims))
	if n := uint(len(vm.macroPrims)); n > reserve {
		reserve = n
	}
	vm.heap.h = reserve
	return vm
}

// call runs the word whose codeword is cw to completion: if cw selects a
// primitive it runs once and returns; if cw is a heap address it is
// entered DOCOL-style and driven by the inner loop until the return stack
// unwinds back to the depth it had on entry.
func (vm *Interpreter) call(cw uint) error {
	depth := vm.ret.Len()
	if err := vm.enter(cw); err != nil {
		return unwrapHalt(err)
	}
	if cw < uint(len(vm.forthPrims)) {
		return nil
	}
	for vm.ret.Len() > depth {
		if err := vm.step(); err != nil {
			return unwrapHalt(err)
		}
	}
	return nil
}

// step executes exactly one codeword at vm.ip, advancing ip past it
// first (NEXT), then entering it (DOCOL/primitive dispatch). If Run
// supplied a context, it is checked here so a runaway definition can
// still be cut off by cancellation or a timeout.
func (vm *Interpreter) step() error {
	if vm.ctx != nil {
		if err := vm.ctx.Err(); err != nil {
			return err
		}
	}
	cw := uint(vm.heap.Load(vm.ip))
	if vm.logf != nil {
		vm.logit("step @%d cw=%d data=%v ret=%v", vm.ip, cw, vm.data.Values(), vm.ret.Values())
	}
	vm.ip++
	return vm.enter(cw)
}

// enter realizes the codeword table: values below the builtin count run
// a Go primitive directly; values at or above it are call addresses,
// entered by pushing a return address and jumping, with no synthetic
// DOCOL cell ever materialized in the heap.
func (vm *Interpreter) enter(cw uint) error {
	if cw < uint(len(vm.forthPrims)) {
		return vm.forthPrims[cw](vm)
	}
	if err := vm.ret.Push(int32(vm.ip)); err != nil {
		return err
	}
	vm.ip = cw
	return nil
}

// unwrapHalt turns a clean haltError into nil: callers above call() treat
// an unbalanced EXIT as ordinary completion, matching source behavior
// where running off the end of a definition simply stops.
func unwrapHalt(err error) error {
	if _, ok := err.(haltError); ok {
		return nil
	}
	return err
}

// literal pushes the cell immediately following the codeword that
// invoked it, then skips past it so the inner loop doesn't try to
// execute the literal's bit pattern as a codeword.
func primLiteral(vm *Interpreter) error {
	v := vm.heap.Load(vm.ip)
	vm.ip++
	return vm.data.Push(int32(v))
}

// variable pushes the address of the single storage cell that follows
// its own codeword cell, then exits -- the threaded-code equivalent of
// Forth's DOVAR.
func primVariable(vm *Interpreter) error {
	addr := vm.ip
	if err := vm.data.Push(int32(addr)); err != nil {
		return err
	}
	return primExit(vm)
}

// zeroBranch pops a flag; on zero it jumps to the address stored inline
// after the codeword, otherwise it skips that operand and falls through
// -- an idiomatic branch-if-zero rather than the historical
// branch-if-nonzero polarity.
func primZeroBranch(vm *Interpreter) error {
	flag, err := vm.data.Pop()
	if err != nil {
		return err
	}
	target := vm.heap.Load(vm.ip)
	vm.ip++
	if flag == 0 {
		vm.ip = uint(target)
	}
	return nil
}

// forAux pushes the loop counter (popped from the data stack) onto the
// return stack, where for/next keep it between iterations.
func primForAux(vm *Interpreter) error {
	n, err := vm.data.Pop()
	if err != nil {
		return err
	}
	return vm.ret.Push(n)
}

// nextAux decrements the return-stack-resident loop counter and branches
// back to the inline loop-top address while it remains positive, otherwise
// it drops the counter and falls through -- the body must not run again
// once the counter reaches zero, matching the original's next_aux
// (compiler.c: "if (n > 0)").
func primNextAux(vm *Interpreter) error {
	n, err := vm.ret.Peek()
	if err != nil {
		return err
	}
	target := vm.heap.Load(vm.ip)
	vm.ip++
	n--
	if n > 0 {
		if err := vm.ret.SetTop(n); err != nil {
			return err
		}
		vm.ip = uint(target)
		return nil
	}
	_, err = vm.ret.Pop()
	return err
}

func (vm *Interpreter) reportUnknown(c Cell) error {
	if vm.onUnknown != nil {
		vm.onUnknown(c)
	}
	return nil
}

func (vm *Interpreter) logit(format string, args ...interface{}) {
	if vm.logf != nil {
		vm.logf(format, args...)
	}
}

func (vm *Interpreter) writeOut(s string) {
	if vm.out != nil {
		_, _ = io.WriteString(vm.out, s)
		_ = vm.out.Flush()
	}
}

func (vm *Interpreter) writeOutf(format string, args ...interface{}) {
	vm.writeOut(fmt.Sprintf(format, args...))
}
