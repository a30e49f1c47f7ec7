package main

import (
	"context"
	"io"

	"github.com/jcorbin/tforth/internal/panicerr"
	"github.com/jcorbin/tforth/internal/scan"
)

// New creates a VM with all primitive words defined, configured by the given
// options. Any sources given by WithInput are read in order.
func New(opts ...VMOption) *VM {
	var vm VM
	vm.depthLimit = defaultDepthLimit
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)
	if vm.src.Source == nil {
		inputOption(nil).apply(&vm)
	}
	vm.installPrimitives()
	return &vm
}

// Run interprets all input, returning the first error encountered, which
// ends the run. Output is flushed before returning.
func (vm *VM) Run(ctx context.Context) error {
	err := panicerr.Recover("VM", func() error {
		return vm.run(ctx)
	})
	if ferr := vm.out.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		vm.logf("#", "halt error: %v", err)
	}
	return err
}

// WithInput queues sources to read, after any already queued; readers that
// implement Name() string give their name to token locations.
func WithInput(rs ...io.Reader) VMOption { return inputOption(rs) }

// WithNamedInput queues one named source.
func WithNamedInput(name string, r io.Reader) VMOption {
	return inputOption{scan.NamedReader(name, r)}
}

// WithTokens replaces the token source outright, e.g. with an already
// tokenized stream.
func WithTokens(src scan.Source) VMOption { return tokensOption{src} }

// WithOutput sets where . cr .s and words write.
func WithOutput(w io.Writer) VMOption { return outputOption{w} }

// WithTee adds another output, written after any existing one.
func WithTee(w io.Writer) VMOption { return teeOption{w} }

// WithDepthLimit bounds word call nesting; 0 disables the limit.
func WithDepthLimit(limit int) VMOption { return depthLimitOption(limit) }

// WithLogf enables trace logging through logfn.
func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
