package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// caseTest drives an Interpreter through a sequence of cells and asserts
// the resulting data stack, following the teacher's fluent vmTestCase
// builder (here reduced to the handful of knobs these scenarios need).
type caseTest struct {
	name  string
	cells []Cell
	want  []int32
}

func (c caseTest) run(t *testing.T) {
	t.Run(c.name, func(t *testing.T) {
		vm := New()
		for _, cell := range c.cells {
			require.NoError(t, vm.Dispatch(cell))
		}
		assert.Equal(t, c.want, vm.data.Values())
	})
}

func Test_Dispatch_literalLoad(t *testing.T) {
	// 1. Literal load: (1<<5)|8, (2<<5)|8, pack("+")|1 -> [3]
	caseTest{
		name:  "literal load",
		cells: []Cell{Number(1), Number(2), Execute("+")},
		want:  []int32{3},
	}.run(t)
}

func Test_Dispatch_definitionAndCall(t *testing.T) {
	// 2. : inc 1 + ; then 10 inc -> [11]
	caseTest{
		name: "definition and call",
		cells: []Cell{
			Define("inc"), CompileNumber(1), Compile("+"), Compile(";"),
			Number(10), Execute("inc"),
		},
		want: []int32{11},
	}.run(t)
}

func Test_Dispatch_variable(t *testing.T) {
	// 3. variable x, 5 x !, x @ -> [5]
	caseTest{
		name: "variable",
		cells: []Cell{
			DefineVariable("x"),
			Number(5), Execute("x"), Execute("!"),
			Execute("x"), Execute("@"),
		},
		want: []int32{5},
	}.run(t)
}

func Test_Dispatch_conditional_abs(t *testing.T) {
	// 4. : abs dup 0 lt if negate then ; with -7 abs -> [7]
	caseTest{
		name: "abs of a negative number",
		cells: []Cell{
			Define("abs"), Compile("dup"), CompileNumber(0), Compile("lt"),
			CompileMacro("if"), Compile("negate"), CompileMacro("then"), Compile(";"),
			Number(-7), Execute("abs"),
		},
		want: []int32{7},
	}.run(t)
}

func Test_Dispatch_conditional_abs_positive(t *testing.T) {
	caseTest{
		name: "abs of a nonnegative number is unchanged",
		cells: []Cell{
			Define("abs"), Compile("dup"), CompileNumber(0), Compile("lt"),
			CompileMacro("if"), Compile("negate"), CompileMacro("then"), Compile(";"),
			Number(7), Execute("abs"),
		},
		want: []int32{7},
	}.run(t)
}

func Test_Dispatch_ifThen_roundtrip(t *testing.T) {
	// "0 if 42 then" leaves the stack unchanged; "-1 if 42 then" leaves 42.
	runWord := func(t *testing.T, flag int32, want []int32) {
		vm := New()
		require.NoError(t, vm.Dispatch(Define("f")))
		require.NoError(t, vm.Dispatch(CompileMacro("if")))
		require.NoError(t, vm.Dispatch(CompileNumber(42)))
		require.NoError(t, vm.Dispatch(CompileMacro("then")))
		require.NoError(t, vm.Dispatch(Compile(";")))

		require.NoError(t, vm.Dispatch(Number(flag)))
		require.NoError(t, vm.Dispatch(Execute("f")))
		if len(want) == 0 {
			assert.Empty(t, vm.data.Values())
		} else {
			assert.Equal(t, want, vm.data.Values())
		}
	}

	t.Run("false", func(t *testing.T) { runWord(t, 0, nil) })
	t.Run("true", func(t *testing.T) { runWord(t, -1, []int32{42}) })
}

func Test_Dispatch_forLoop_sum(t *testing.T) {
	// 5. : sum 0 swap for i + next ; with 5 sum -> [15]
	caseTest{
		name: "for loop sum",
		cells: []Cell{
			Define("sum"), CompileNumber(0), Compile("swap"),
			Compile("for"), Compile("i"), Compile("+"), Compile("next"),
			Compile(";"),
			Number(5), Execute("sum"),
		},
		want: []int32{15},
	}.run(t)
}

func Test_Dispatch_forLoop_runsExactlyNTimesNotNPlusOne(t *testing.T) {
	// : count 0 swap for 1 + next ; with 5 count -> [5], not [6]. A stray
	// iteration at the counter's zero pass would overcount by one here,
	// the same off-by-one that turns 5 fact into 0 instead of 120.
	caseTest{
		name: "for loop runs exactly n times",
		cells: []Cell{
			Define("count"), CompileNumber(0), Compile("swap"),
			Compile("for"), CompileNumber(1), Compile("+"), Compile("next"),
			Compile(";"),
			Number(5), Execute("count"),
		},
		want: []int32{5},
	}.run(t)
}

func Test_Dispatch_threadedExecution_sq(t *testing.T) {
	// : sq dup * ; with 3 sq -> [9]
	caseTest{
		name:  "sq",
		cells: []Cell{Define("sq"), Compile("dup"), Compile("*"), Compile(";"), Number(3), Execute("sq")},
		want:  []int32{9},
	}.run(t)
}

func Test_Dispatch_threadedExecution_fact(t *testing.T) {
	// : fact 1 swap for i * next ; with 5 fact -> [120]
	caseTest{
		name: "fact",
		cells: []Cell{
			Define("fact"), CompileNumber(1), Compile("swap"),
			Compile("for"), Compile("i"), Compile("*"), Compile("next"),
			Compile(";"),
			Number(5), Execute("fact"),
		},
		want: []int32{120},
	}.run(t)
}

func Test_Dispatch_macroSwitch_inlinesBody(t *testing.T) {
	// 6. macro : neg negate ; forth defines neg in the macro dict;
	// compiling : f neg ; expands neg inline during compile.
	vm := New()
	require.NoError(t, vm.Dispatch(Execute("macro")))
	require.NoError(t, vm.Dispatch(Define("neg")))
	require.NoError(t, vm.Dispatch(Compile("negate")))
	require.NoError(t, vm.Dispatch(Compile(";")))
	require.NoError(t, vm.Dispatch(Execute("forth")))

	_, ok := vm.macro.Lookup(mustPack("neg"))
	require.True(t, ok, "neg must be published into the macro dictionary, not forth")
	_, ok = vm.forth.Lookup(mustPack("neg"))
	assert.False(t, ok, "neg must not leak into the forth dictionary")

	fEntry := vm.heap.Here()
	require.NoError(t, vm.Dispatch(Define("f")))
	require.NoError(t, vm.Dispatch(Compile("neg")))
	require.NoError(t, vm.Dispatch(Compile(";")))

	// f's compiled body is [negate's codeword, exit] -- neg's own body was
	// copied in, not called, so the data stack is untouched by compiling f.
	assert.Empty(t, vm.data.Values())

	negEntry, ok := vm.forth.Lookup(mustPack("negate"))
	require.True(t, ok)
	assert.Equal(t, Cell(negEntry.CodeWord), vm.heap.Load(vm.heap.Here()-2))
	assert.Equal(t, Cell(vm.cwExit), vm.heap.Load(vm.heap.Here()-1))

	fWord, ok := vm.forth.Lookup(mustPack("f"))
	require.True(t, ok)
	assert.Equal(t, fEntry, fWord.CodeWord, "f's body starts exactly where it was entered")

	require.NoError(t, vm.Dispatch(Number(5)))
	require.NoError(t, vm.Dispatch(Execute("f")))
	assert.Equal(t, []int32{-5}, vm.data.Values())
}

func Test_Dispatch_dispatcherTotality(t *testing.T) {
	// Dispatcher totality: every tag value terminates without panic on a
	// cell whose name payload is valid, whether or not it resolves.
	vm := New()
	name := mustPack("zzz")
	for tag := ColorTag(0); tag < 16; tag++ {
		assert.NotPanics(t, func() {
			_ = vm.Dispatch(name | Cell(tag))
		})
	}
}

func Test_Dispatch_numericEncoding(t *testing.T) {
	for _, n := range []int32{0, 1, -1, 1000, -1000, 1 << 20, -(1 << 20)} {
		vm := New()
		require.NoError(t, vm.Dispatch(NewNumberCell(n, TagNumber)))
		assert.Equal(t, []int32{n}, vm.data.Values())
	}
}

func Test_Dictionary_ordering_redefine(t *testing.T) {
	vm := New()
	require.NoError(t, vm.Dispatch(Define("k")))
	require.NoError(t, vm.Dispatch(CompileNumber(1)))
	require.NoError(t, vm.Dispatch(Compile(";")))

	require.NoError(t, vm.Dispatch(Define("k")))
	require.NoError(t, vm.Dispatch(CompileNumber(2)))
	require.NoError(t, vm.Dispatch(Compile(";")))

	require.NoError(t, vm.Dispatch(Execute("k")))
	assert.Equal(t, []int32{2}, vm.data.Values(), "lookup must return the most recent definition")
}
