package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/jcorbin/tforth/internal/logio"
	"golang.org/x/term"
)

func main() {
	ctx := context.Background()

	var (
		timeout    time.Duration
		trace      bool
		dump       bool
		each       bool
		depthLimit int
	)
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.BoolVar(&dump, "dump", false, "dump the dictionary and stack to stderr after running")
	flag.BoolVar(&each, "each", false, "run each file in its own interpreter, concurrently")
	flag.IntVar(&depthLimit, "depth-limit", defaultDepthLimit, "limit word call nesting; 0 for no limit")
	flag.Parse()

	logger := logio.NewLogger(os.Stderr)

	var opts = []VMOption{
		WithDepthLimit(depthLimit),
	}
	if trace {
		opts = append(opts, WithLogf(log.Printf))
	}

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var dumpTo io.Writer
	if dump {
		dumpTo = os.Stderr
	}

	args := flag.Args()
	switch {
	case each && len(args) > 0:
		logger.ErrorIf(runEach(ctx, os.Stdout, dumpTo, args, opts...))
	case len(args) > 0:
		logger.ErrorIf(runFiles(ctx, os.Stdout, dumpTo, args, opts...))
	case term.IsTerminal(int(os.Stdin.Fd())):
		logger.ErrorIf(runInteractive(ctx, os.Stdout, dumpTo, opts...))
	default:
		opts = append(opts, WithNamedInput("<stdin>", os.Stdin))
		logger.ErrorIf(runVM(ctx, os.Stdout, dumpTo, opts...))
	}
	os.Exit(logger.ExitCode())
}

// runFiles runs all files, in order, through one interpreter.
func runFiles(ctx context.Context, out, dumpTo io.Writer, names []string, opts ...VMOption) error {
	files, err := openFiles(names)
	if err != nil {
		return err
	}
	readers := make([]io.Reader, len(files))
	for i, f := range files {
		readers[i] = f
	}
	return runVM(ctx, out, dumpTo, append(opts, WithInput(readers...))...)
}

func runVM(ctx context.Context, out, dumpTo io.Writer, opts ...VMOption) (rerr error) {
	vm := New(append(opts, WithOutput(out))...)
	defer func() {
		if cerr := vm.Close(); rerr == nil {
			rerr = cerr
		}
	}()
	err := vm.Run(ctx)
	if dumpTo != nil {
		vmDumper{vm: vm, out: dumpTo, userOnly: true}.dump()
	}
	return err
}

func openFiles(names []string) ([]*os.File, error) {
	files := make([]*os.File, 0, len(names))
	for _, name := range names {
		f, err := os.Open(name)
		if err != nil {
			for _, f := range files {
				f.Close()
			}
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}
