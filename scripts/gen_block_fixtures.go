// Command gen_block_fixtures regenerates the binary block fixtures under
// testdata/blocks/ from the symbolic program list below, plus a small
// generated Go file indexing them by name. It is a standalone tool (run
// via `go run scripts/gen_block_fixtures.go`), not a package the rest of
// the module imports, so it carries its own minimal copy of the cell
// encoding rather than importing package main -- the same reason the
// teacher's own scripts/gen_vm_expects.go never imports the root package
// it generates code for.
package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
)

// alphabet must track colorforth's own (codec.go); duplicated here since
// this tool builds cells without linking against package main.
const alphabet = " rtoeanismcylgfwdvpbhxuq0123456789j-k.z/;:!+@*,?"

var alphabetIndex = func() map[rune]int {
	m := make(map[rune]int, len(alphabet))
	for i, r := range alphabet {
		m[r] = i
	}
	return m
}()

const blockCells = 256

func pack(name string) int32 {
	var acc uint32
	remaining := 28
	for _, r := range name {
		idx, ok := alphabetIndex[r]
		if !ok {
			log.Fatalf("gen_block_fixtures: %q not in colorforth alphabet", r)
		}
		var length int
		var code uint32
		switch {
		case idx <= 7:
			length, code = 4, uint32(idx)
		case idx <= 15:
			length, code = 5, uint32(idx)+8
		default:
			length, code = 7, uint32(idx)+80
		}
		acc = acc<<uint(length) + code
		remaining -= length
	}
	shift := remaining + 4
	if shift < 0 {
		shift = 0
	}
	acc <<= uint(shift)
	return int32(acc)
}

// tag mirrors cell.go's ColorTag values by number, to keep this file
// free of a dependency on package main.
const (
	tagExecute       = 1
	tagDefine        = 3
	tagCompile       = 4
	tagCompileNumber = 6
	tagCompileMacro  = 7
	tagNumber        = 8
	tagVariable      = 12
)

func word(tag int32, name string) int32 { return pack(name) | tag }
func number(tag, n int32) int32         { return n<<5 | tag }

// fixture is one named, symbolic colorForth program, assembled into a
// single 256-cell block padded with zeros.
type fixture struct {
	name  string
	cells []int32
}

var fixtures = []fixture{
	{
		name: "literal_add",
		cells: []int32{
			number(tagNumber, 1),
			number(tagNumber, 2),
			word(tagExecute, "+"),
		},
	},
	{
		name: "square",
		cells: []int32{
			word(tagDefine, "sq"),
			word(tagCompile, "dup"),
			word(tagCompile, "*"),
			word(tagCompile, ";"),
			number(tagNumber, 3),
			word(tagExecute, "sq"),
		},
	},
	{
		name: "factorial",
		cells: []int32{
			word(tagDefine, "fact"),
			number(tagCompileNumber, 1),
			word(tagCompile, "swap"),
			word(tagCompile, "for"),
			word(tagCompile, "i"),
			word(tagCompile, "*"),
			word(tagCompile, "next"),
			word(tagCompile, ";"),
			number(tagNumber, 5),
			word(tagExecute, "fact"),
		},
	},
	{
		name: "abs_negative",
		cells: []int32{
			word(tagDefine, "abs"),
			word(tagCompile, "dup"),
			number(tagCompileNumber, 0),
			word(tagCompile, "lt"),
			word(tagCompileMacro, "if"),
			word(tagCompile, "negate"),
			word(tagCompileMacro, "then"),
			word(tagCompile, ";"),
			number(tagNumber, -7),
			word(tagExecute, "abs"),
		},
	},
	{
		name: "variable_store_fetch",
		cells: []int32{
			word(tagVariable, "x"),
			number(tagNumber, 5),
			word(tagExecute, "x"),
			word(tagExecute, "!"),
			word(tagExecute, "x"),
			word(tagExecute, "@"),
		},
	},
	{
		name: "macro_switch",
		cells: []int32{
			word(tagExecute, "macro"),
			word(tagDefine, "neg"),
			word(tagCompile, "negate"),
			word(tagCompile, ";"),
			word(tagExecute, "forth"),
			word(tagDefine, "f"),
			word(tagCompile, "neg"),
			word(tagCompile, ";"),
			number(tagNumber, 5),
			word(tagExecute, "f"),
		},
	},
}

var (
	outDir     string
	manifestGo string
	timeout    time.Duration
)

func parseFlags() {
	flag.StringVar(&outDir, "out", "testdata/blocks", "directory to write .block fixture files into")
	flag.StringVar(&manifestGo, "manifest", "testdata/blocks/manifest_generated.go", "generated Go file indexing the fixtures by name")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "overall deadline for generation")
	flag.Parse()
}

func main() {
	parseFlags()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)

	for _, fx := range fixtures {
		fx := fx
		eg.Go(func() error { return writeFixture(ctx, fx) })
	}

	manifestReady := make(chan struct{})
	var manifestErr error
	eg.Go(func() error {
		defer close(manifestReady)
		manifestErr = writeManifest(ctx)
		return manifestErr
	})

	eg.Go(func() (rerr error) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-manifestReady:
		}
		return manifestErr
	})

	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

// writeFixture renders one fixture's cells into a 256-cell block and
// writes it as little-endian int32s to outDir/<name>.block.
func writeFixture(ctx context.Context, fx fixture) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(fx.cells) > blockCells {
		return fmt.Errorf("fixture %s: %d cells exceeds one block", fx.name, len(fx.cells))
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(outDir, fx.name+".block")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	var block [blockCells]int32
	copy(block[:], fx.cells)
	for _, c := range block {
		if err := binary.Write(bw, binary.LittleEndian, c); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// writeManifest pipes a generated Go source file -- one constant per
// fixture name -- through goimports the same way the teacher's own
// generator formats its output, rather than hand-indenting generated
// source.
func writeManifest(ctx context.Context) (rerr error) {
	names := make([]string, len(fixtures))
	for i, fx := range fixtures {
		names[i] = fx.name
	}
	sort.Strings(names)

	if err := os.MkdirAll(filepath.Dir(manifestGo), 0o755); err != nil {
		return err
	}
	out, err := os.Create(manifestGo)
	if err != nil {
		return err
	}

	gofmt := exec.CommandContext(ctx, "goimports")
	src, err := gofmt.StdinPipe()
	if err != nil {
		out.Close()
		return err
	}
	gofmt.Stdout = out
	gofmt.Stderr = os.Stderr

	defer func() {
		if cerr := out.Close(); rerr == nil {
			rerr = cerr
		}
	}()

	done := make(chan error, 1)
	go func() { done <- gofmt.Run() }()

	fmt.Fprintln(src, "// Package blocks indexes the generated fixture files in this directory.")
	fmt.Fprintln(src, "package blocks")
	fmt.Fprintln(src)
	fmt.Fprintln(src, "// Names lists every fixture written by scripts/gen_block_fixtures.go,")
	fmt.Fprintln(src, "// each readable as \"<name>.block\" relative to this directory.")
	fmt.Fprintln(src, "var Names = []string{")
	for _, n := range names {
		fmt.Fprintf(src, "\t%q,\n", n)
	}
	fmt.Fprintln(src, "}")
	if err := src.Close(); err != nil {
		return err
	}

	if err := <-done; err != nil {
		return fmt.Errorf("goimports failed: %w", err)
	}
	return nil
}
