package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_primSwap(t *testing.T) {
	vm := New()
	require.NoError(t, vm.data.Push(1))
	require.NoError(t, vm.data.Push(2))
	require.NoError(t, primSwap(vm))
	assert.Equal(t, []int32{2, 1}, vm.data.Values())
}

func Test_macroSwap_compilesACallNotAnExchange(t *testing.T) {
	// swap has no forth dictionary entry; referencing it inside a
	// definition must compile a call to the runtime primitive, not
	// perform the exchange at compile time against an empty data stack.
	vm := New()
	require.NoError(t, vm.Dispatch(Define("w")))
	before := vm.heap.Here()
	require.NoError(t, vm.Dispatch(Compile("swap")))
	after := vm.heap.Here()
	require.NoError(t, vm.Dispatch(Compile(";")))

	assert.Equal(t, uint(1), after-before, "swap compiles to exactly one codeword cell")
	assert.Equal(t, Cell(vm.cwSwap), vm.heap.Load(before))
}

func Test_primLessThan(t *testing.T) {
	for _, tc := range []struct{ a, b, want int32 }{
		{1, 2, -1},
		{2, 1, 0},
		{2, 2, 0},
	} {
		vm := New()
		require.NoError(t, vm.data.Push(tc.a))
		require.NoError(t, vm.data.Push(tc.b))
		require.NoError(t, primLessThan(vm))
		v, err := vm.data.Pop()
		require.NoError(t, err)
		assert.Equal(t, tc.want, v, "%d lt %d", tc.a, tc.b)
	}
}

func Test_macroIfThen_backpatchesZeroBranchTarget(t *testing.T) {
	vm := New()
	require.NoError(t, vm.Dispatch(Define("w")))
	require.NoError(t, vm.Dispatch(CompileMacro("if")))
	slot, err := vm.data.Peek()
	require.NoError(t, err)

	require.NoError(t, vm.Dispatch(CompileNumber(1)))
	require.NoError(t, vm.Dispatch(CompileMacro("then")))

	// then must have patched the zero_branch operand left at slot to the
	// address right after the conditionally-compiled body.
	assert.Equal(t, Cell(vm.heap.Here()), vm.heap.Load(uint(slot)))

	require.NoError(t, vm.Dispatch(Compile(";")))
}

func Test_macroFor_rdropAbandonsLoopCounter(t *testing.T) {
	// : dropn for rdrop ; moves the count onto the return stack via
	// for, then rdrop discards it without ever reaching next -- the
	// runtime counterpart of a loop body that exits early. With no next to
	// consume it, for's compile-time loop-top address stays on the data
	// stack.
	vm := New()
	require.NoError(t, vm.Dispatch(Define("dropn")))
	require.NoError(t, vm.Dispatch(Compile("for")))
	loopTop, err := vm.data.Peek()
	require.NoError(t, err)
	require.NoError(t, vm.Dispatch(CompileMacro("rdrop")))
	require.NoError(t, vm.Dispatch(Compile(";")))

	require.NoError(t, vm.Dispatch(Number(5)))
	require.NoError(t, vm.Dispatch(Execute("dropn")))
	assert.Equal(t, []int32{loopTop}, vm.data.Values(), "the count must have moved off the data stack")
	assert.Equal(t, 0, vm.ret.Len(), "the return stack must be back to its pre-call depth")
}
