package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"
)

// runEach runs every named file in its own VM, all at once. Each VM's output
// is buffered, then written to out in argument order; a failing file cancels
// the rest, and its error is returned.
func runEach(ctx context.Context, out, dumpTo io.Writer, names []string, opts ...VMOption) error {
	outs := make([]bytes.Buffer, len(names))
	dumps := make([]bytes.Buffer, len(names))

	eg, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		eg.Go(func() error {
			f, err := os.Open(name)
			if err != nil {
				return err
			}
			fileOpts := append(opts[:len(opts):len(opts)],
				WithInput(f),
				logPrefixOption(name+": "))
			var fileDump io.Writer
			if dumpTo != nil {
				fmt.Fprintf(&dumps[i], "# %v\n", name)
				fileDump = &dumps[i]
			}
			return runVM(ctx, &outs[i], fileDump, fileOpts...)
		})
	}
	err := eg.Wait()

	for i := range names {
		if _, werr := outs[i].WriteTo(out); err == nil {
			err = werr
		}
		if dumpTo != nil {
			if _, werr := dumps[i].WriteTo(dumpTo); err == nil {
				err = werr
			}
		}
	}
	return err
}
