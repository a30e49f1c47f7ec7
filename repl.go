package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/jcorbin/tforth/internal/flushio"
	"github.com/peterh/liner"
)

const (
	historyFile   = ".tforth_history"
	promptMain    = "ok> "
	promptCompile = "..> "
)

// runInteractive reads source from the terminal a line at a time, with
// editing and history, feeding one VM until end of input or the first error.
func runInteractive(ctx context.Context, out, dumpTo io.Writer, opts ...VMOption) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if home, err := os.UserHomeDir(); err == nil {
		histPath := filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				ln.WriteHistory(f)
				f.Close()
			}
		}()
	}

	lout := &lineOutput{WriteFlusher: flushio.NewWriteFlusher(out)}
	var vm *VM
	lr := &linerReader{ln: ln, prompt: func() string {
		lout.endLine()
		if vm != nil && vm.mode == compileMode {
			return promptCompile
		}
		return promptMain
	}}

	vm = New(append(opts, WithNamedInput("<tty>", lr), WithOutput(lout))...)
	defer vm.Close()
	err := vm.Run(ctx)
	lout.endLine()
	if dumpTo != nil {
		vmDumper{vm: vm, out: dumpTo, userOnly: true}.dump()
	}
	return err
}

// linerReader is an io.Reader that prompts for a new line whenever the last
// one has been read. Aborted lines are dropped.
type linerReader struct {
	ln     *liner.State
	prompt func() string
	buf    []byte
}

func (lr *linerReader) Read(p []byte) (int, error) {
	for len(lr.buf) == 0 {
		line, err := lr.ln.Prompt(lr.prompt())
		if err == liner.ErrPromptAborted {
			continue
		} else if err != nil {
			return 0, err
		}
		if line != "" {
			lr.ln.AppendHistory(line)
		}
		lr.buf = append([]byte(line), '\n')
	}
	n := copy(p, lr.buf)
	lr.buf = lr.buf[n:]
	return n, nil
}

// lineOutput tracks whether output ended mid-line, so that prompts may start
// on a fresh one.
type lineOutput struct {
	flushio.WriteFlusher
	midLine bool
}

func (lo *lineOutput) Write(p []byte) (int, error) {
	if len(p) > 0 {
		lo.midLine = p[len(p)-1] != '\n'
	}
	return lo.WriteFlusher.Write(p)
}

func (lo *lineOutput) endLine() {
	if lo.midLine {
		lo.WriteFlusher.Write([]byte{'\n'})
		lo.midLine = false
	}
	lo.Flush()
}
