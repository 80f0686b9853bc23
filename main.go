/* Command colorforth runs a colorForth block file.

It opens the block file(s) named on the command line, chains them into one
logical cell address space (see WithBlocks), and executes block 0 on
startup, the way the historical standalone compiler binary does. The
SDL/TTF editor is a separate program; this binary only drives the core
interpreter non-interactively.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jcorbin/colorforth/internal/logio"
)

func main() {
	var (
		memLimit uint
		timeout  time.Duration
		trace    bool
		dump     bool
		render   bool
	)
	flag.UintVar(&memLimit, "mem-limit", 0, "limit the code heap to at most this many cells (0: unbounded)")
	flag.DurationVar(&timeout, "timeout", 0, "abort after this long (0: no limit)")
	flag.BoolVar(&trace, "trace", false, "enable step trace logging")
	flag.BoolVar(&dump, "dump", false, "print a heap/dictionary dump after execution")
	flag.BoolVar(&render, "render", false, "print an ANSI-colorized listing of block 0 before executing it")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer os.Exit(log.ExitCode())

	var readers []io.Reader
	for _, name := range flag.Args() {
		f, err := os.Open(name)
		if err != nil {
			log.Errorf("%v", err)
			return
		}
		defer f.Close()
		readers = append(readers, f)
	}

	opts := []Option{
		WithMemLimit(memLimit),
		WithOutput(os.Stdout),
		WithBlocks(readers...),
		WithUnknownWordHandler(func(c Cell) {
			log.Printf("WARN", "unknown word %v", c)
		}),
	}
	if trace {
		opts = append(opts, WithLogger(&log, "TRACE"))
	}
	vm := New(opts...)

	if render {
		if block, err := vm.blocks.Block(0); err == nil {
			fmt.Fprintln(os.Stderr, "# block 0")
			RenderBlock(os.Stderr, block)
		}
	}

	if dump {
		defer func() {
			lw := &logio.Writer{Logf: log.Leveledf("DUMP")}
			defer lw.Close()
			Disassemble(lw, vm)
		}()
	}

	ctx := context.Background()
	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.ErrorIf(vm.Run(ctx))
}
