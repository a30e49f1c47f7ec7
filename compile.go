package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jcorbin/tforth/internal/scan"
)

// endDefinitionToken always ends a definition when seen while compiling a
// word body, whatever ";" currently names in the dictionary.
const endDefinitionToken = ";"

// isImmediateMarker reports whether the token right after a new word's name
// marks that word immediate. Only that position is checked; "immediate"
// anywhere else is an ordinary word name.
func isImmediateMarker(tok scan.Token) bool {
	return tok.Kind == scan.Identifier && tok.Text == "immediate"
}

// run feeds every token from the source through step, until end of input or
// the first error.
func (vm *VM) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		tok, err := vm.src.Next()
		if err == io.EOF {
			return vm.endOfInput()
		} else if err != nil {
			return err
		}
		if err := vm.step(tok); err != nil {
			return tokenError{tok, err}
		}
	}
}

func (vm *VM) endOfInput() error {
	if vm.mode != compileMode {
		return nil
	}
	if name := vm.dict.nameOf(vm.dict.active); name != "" {
		return fmt.Errorf("%w: end of input inside the definition of %q", ErrTruncatedDefinition, name)
	}
	return fmt.Errorf("%w: end of input while expecting a word name", ErrTruncatedDefinition)
}

// step processes one token: interpreted tokens run now, compiled ones are
// appended to the active word unless they name an immediate word.
func (vm *VM) step(tok scan.Token) error {
	switch {
	case vm.mode == compileMode && vm.dict.active != 0:
		return vm.compileToken(tok)
	case vm.mode == compileMode:
		return vm.defineToken(tok)
	default:
		return vm.interpretToken(tok)
	}
}

func (vm *VM) compileToken(tok scan.Token) error {
	active := vm.dict.active
	switch tok.Kind {
	case scan.Integer:
		vm.logf("c", "%v += %v", vm.dict.nameOf(active), tok.Int)
		return vm.dict.compile(active, literalCell(tok.Int))

	case scan.Identifier:
		if tok.Text == endDefinitionToken {
			return vm.callPrimitive(primEnd)
		}
		ref := vm.dict.lookup(tok.Text, true)
		if ref == 0 {
			return ErrUnknownWord
		}
		if vm.dict.word(ref).immediate {
			vm.logf("c", "immediate %v", tok.Text)
			return vm.execute(ref)
		}
		vm.logf("c", "%v += %v", vm.dict.nameOf(active), tok.Text)
		return vm.dict.compile(active, wordRefCell(ref))

	default:
		return fmt.Errorf("unexpected %v token", tok.Kind)
	}
}

// defineToken starts a new word named by tok, which must be an identifier.
// An "immediate" token right after the name marks the new word immediate.
func (vm *VM) defineToken(tok scan.Token) error {
	if tok.Kind != scan.Identifier {
		return modeErrorf("cannot name a word with %v %v", tok.Kind, tok)
	}
	ref := vm.dict.define(tok.Text)
	vm.logf(":", "define %q -> #%d", tok.Text, uint(ref))

	next, err := vm.src.Peek()
	if err != nil {
		// end of input, and any read error, surface on the next read
		return nil
	}
	if isImmediateMarker(next) {
		vm.src.Next()
		vm.dict.markImmediate(ref)
		vm.logf(":", "immediate %q", tok.Text)
	}
	return nil
}

func (vm *VM) interpretToken(tok scan.Token) error {
	if vm.dict.active != 0 {
		vm.dict.finish()
	}
	switch tok.Kind {
	case scan.Integer:
		vm.logf("i", "push %v", tok.Int)
		vm.stack.push(intVal(tok.Int))
		return nil

	case scan.Identifier:
		ref := vm.dict.lookup(tok.Text, false)
		if ref == 0 {
			return ErrUnknownWord
		}
		vm.logf("i", "exec %v", tok.Text)
		return vm.execute(ref)

	default:
		return fmt.Errorf("unexpected %v token", tok.Kind)
	}
}
