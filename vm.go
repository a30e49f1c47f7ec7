package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/tforth/internal/flushio"
	"github.com/jcorbin/tforth/internal/scan"
)

type mode uint8

const (
	interpretMode mode = iota
	compileMode
)

func (m mode) String() string {
	switch m {
	case interpretMode:
		return "interpret"
	case compileMode:
		return "compile"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// VM is the whole state of one interpreter: its dictionary, operand stack
// and mode, along with the token source it reads and the output it writes.
// A VM is not safe for concurrent use; independent VMs share nothing.
type VM struct {
	logging

	src     scan.Peeker
	out     flushio.WriteFlusher
	closers []io.Closer

	mode  mode
	dict  dictionary
	stack stack

	depth      int
	depthLimit int
}

// Close closes any input sources, in reverse order of being added.
func (vm *VM) Close() (err error) {
	for i := len(vm.closers) - 1; i >= 0; i-- {
		if cerr := vm.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	vm.closers = nil
	return err
}

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

// logf logs a line like "mark message"; marks are right aligned by
// repeating their first rune, so that nested output lines up.
func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
