package main

import (
	"io"

	"github.com/jcorbin/tforth/internal/flushio"
	"github.com/jcorbin/tforth/internal/scan"
)

// VMOption configures a VM under New.
type VMOption interface{ apply(vm *VM) }

// VMOptions combines any number of options into one, skipping nils.
func VMOptions(opts ...VMOption) VMOption {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	if len(res) == 1 {
		return res[0]
	}
	return res
}

var defaultOptions = VMOptions(
	withOutput(nil),
)

type options []VMOption

func (opts options) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) {
	vm.logfn = logfn
}

// logPrefixOption prefixes any trace logging set up by prior options.
type logPrefixOption string

func (prefix logPrefixOption) apply(vm *VM) {
	if vm.logfn != nil {
		vm.logging.withLogPrefix(string(prefix))
	}
}

type inputOption []io.Reader
type tokensOption struct{ scan.Source }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type depthLimitOption int

func withOutput(w io.Writer) outputOption { return outputOption{w} }

func (rs inputOption) apply(vm *VM) {
	if sc, ok := vm.src.Source.(*scan.Scanner); ok {
		sc.Queue = append(sc.Queue, rs...)
		return
	}
	sc := scan.NewScanner(rs...)
	vm.src = scan.Peeker{Source: sc}
	vm.closers = append(vm.closers, sc)
}

func (src tokensOption) apply(vm *VM) {
	vm.src = scan.Peeker{Source: src.Source}
}

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.Tee(vm.out, flushio.NewWriteFlusher(o.Writer))
}

func (lim depthLimitOption) apply(vm *VM) {
	vm.depthLimit = int(lim)
}
