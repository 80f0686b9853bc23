package main

import (
	"context"
	"errors"
	"io"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/jcorbin/colorforth/internal/flushio"
	"github.com/jcorbin/colorforth/internal/logio"
	"github.com/jcorbin/colorforth/internal/panicerr"
)

// New builds an Interpreter from a set of Options, applying
// defaultOptions first so callers only need to override what they care
// about.
func New(opts ...Option) *Interpreter {
	vm := NewInterpreter(0, defaultStackCapacity)
	defaultOptions.apply(vm)
	Options(opts...).apply(vm)
	return vm
}

// Run drives the interpreter over whatever blocks WithBlocks supplied,
// executing block 0 the way the standalone compiler does on startup. The
// whole run happens inside one panicerr.Recover-wrapped call so a
// runaway definition surfaces as an ordinary error instead of taking the
// host process down with it; ctx is checked once per codeword step so a
// timeout or cancellation can still cut a non-terminating loop off.
func (vm *Interpreter) Run(ctx context.Context) error {
	err := panicerr.Recover("colorforth", func() error {
		vm.ctx = ctx
		return vm.RunBlock(0)
	})
	vm.ctx = nil
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var he haltError
	if errors.As(err, &he) {
		return he.error
	}
	return err
}

// Lookup resolves name (color tag ignored) in the forth or macro
// dictionary, the Interpreter-level counterpart to §6's conceptual
// embedding API "lookup(cell, which) -> entry?" that an editor would call
// to pre-check a word before emitting an interpret-tagged cell.
func (vm *Interpreter) Lookup(name Cell, which DictKind) (*Entry, bool) {
	if which == MacroDict {
		return vm.macro.Lookup(name)
	}
	return vm.forth.Lookup(name)
}

// DotS renders the data stack as text, bottom to top, the public
// counterpart to §6's conceptual "dot_s() -> text" embedding API an
// editor would poll to draw its stack status line.
func (vm *Interpreter) DotS() string {
	vals := vm.data.Values()
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatInt(int64(v), 10)
	}
	return strings.Join(parts, " ")
}

// Option configures an Interpreter at construction time.
type Option interface{ apply(vm *Interpreter) }

var defaultOptions = Options(
	withOutput(ioutil.Discard),
)

// Options flattens any number of Options into one, the way the source's
// VMOptions collapses a call's variadic opts slice.
func Options(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noption struct{}

func (noption) apply(*Interpreter) {}

type options []Option

func (opts options) apply(vm *Interpreter) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(vm)
		}
	}
}

// WithOutput directs `.` output to w, replacing any writer configured so
// far.
func WithOutput(w io.Writer) Option { return withOutput(w) }

// WithTee directs `.` output to both the previously configured writer
// and w.
func WithTee(w io.Writer) Option { return withTee(w) }

// WithLogf installs a leveled-logging sink for interpreter diagnostics
// (one trace line per executed codeword step, and block-loading failures).
func WithLogf(logf func(mess string, args ...interface{})) Option { return withLogf(logf) }

// WithLogger installs an internal/logio.Logger as the log sink, the
// concrete type the standalone binary wires up from its -trace flag.
func WithLogger(log *logio.Logger, level string) Option {
	return withLogf(log.Leveledf(level))
}

// WithMemLimit bounds the code heap to at most limit cells; zero (the
// default) leaves it unbounded.
func WithMemLimit(limit uint) Option { return withMemLimit(limit) }

// WithStackCapacity overrides the fixed capacity of both the data and
// return stacks.
func WithStackCapacity(capacity int) Option { return withStackCapacity(capacity) }

// WithBlocks chains one or more block sources into the interpreter's
// address space, in order, the way fileinput.Input.Queue chains several
// text sources end to end.
func WithBlocks(readers ...io.Reader) Option { return withBlocks(readers) }

// WithUnknownWordHandler installs a callback invoked whenever the
// dispatcher fails to resolve a name in the active dictionary; the
// dispatcher itself never aborts on an unknown word.
func WithUnknownWordHandler(fn func(Cell)) Option { return withUnknownWord(fn) }

type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type logfOption func(mess string, args ...interface{})
type memLimitOption uint
type stackCapacityOption int
type blocksOption []io.Reader
type unknownWordOption func(Cell)

func withOutput(w io.Writer) outputOption                 { return outputOption{w} }
func withTee(w io.Writer) teeOption                        { return teeOption{w} }
func withLogf(fn func(string, ...interface{})) logfOption  { return logfOption(fn) }
func withMemLimit(limit uint) memLimitOption               { return memLimitOption(limit) }
func withStackCapacity(n int) stackCapacityOption          { return stackCapacityOption(n) }
func withBlocks(rs []io.Reader) blocksOption                { return blocksOption(rs) }
func withUnknownWord(fn func(Cell)) unknownWordOption      { return unknownWordOption(fn) }

func (o outputOption) apply(vm *Interpreter) {
	vm.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(vm *Interpreter) {
	cur, _ := vm.out.(flushio.WriteFlusher)
	vm.out = flushio.WriteFlushers(cur, flushio.NewWriteFlusher(o.Writer))
}

func (fn logfOption) apply(vm *Interpreter) { vm.logf = fn }

func (lim memLimitOption) apply(vm *Interpreter) {
	if lim == 0 {
		vm.heap.mem.Limit = 0
		return
	}
	// Count cells from the current bump pointer, past the address space
	// NewInterpreter reserves for primitive codewords.
	vm.heap.mem.Limit = vm.heap.Here() + uint(lim)
}

func (n stackCapacityOption) apply(vm *Interpreter) {
	vm.data = NewStack(int(n))
	vm.ret = NewStack(int(n))
}

func (rs blocksOption) apply(vm *Interpreter) {
	bs, err := LoadBlocks(rs...)
	if err != nil {
		vm.logit("loading blocks: %v", err)
		return
	}
	vm.blocks = bs
}

func (fn unknownWordOption) apply(vm *Interpreter) { vm.onUnknown = fn }
