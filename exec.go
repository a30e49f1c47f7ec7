package main

import "fmt"

// defaultDepthLimit bounds how deeply words may call other words.
const defaultDepthLimit = 1024

// execute runs a word's code list, recursing into referenced words.
func (vm *VM) execute(ref wordRef) error {
	w := vm.dict.word(ref)
	if w == nil {
		return fmt.Errorf("%w: no word #%d", ErrUnknownWord, uint(ref))
	}

	if limit := vm.depthLimit; limit > 0 && vm.depth >= limit {
		return fmt.Errorf("%w: %q exceeds call depth %v", ErrStackOverflow, vm.dict.string(w.name), limit)
	}
	vm.depth++
	defer func() { vm.depth-- }()
	if vm.logfn != nil && vm.depth > 1 {
		defer vm.withLogPrefix("  ")()
	}

	for _, c := range w.code {
		switch c.kind {
		case primCell:
			if err := vm.callPrimitive(c.prim); err != nil {
				return err
			}
		case wordCell:
			vm.logf("x", "call %v", vm.dict.nameOf(c.word))
			if err := vm.execute(c.word); err != nil {
				return err
			}
		case litCell:
			vm.stack.push(intVal(c.lit))
		default:
			return fmt.Errorf("invalid cell kind %d in %q", c.kind, vm.dict.string(w.name))
		}
	}
	return nil
}
