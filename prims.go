package main

import (
	"fmt"
	"io"
	"strconv"
)

// primitive identifies a built-in operation.
type primitive uint8

const (
	// Name   Effect            Function
	primDefine  primitive = iota // :       ( -- )            enter compile mode; the next token names a new word
	primEnd                      // ;       ( -- )            leave compile mode, completing the active word
	primPrint                    // .       ( x -- )          write x
	primDup                      // dup     ( x -- x x )      copy the top
	primNewline                  // cr      ( -- )            write a line break
	primAdd                      // +       ( a b -- a+b )
	primSub                      // -       ( a b -- a-b )
	primMul                      // *       ( a b -- a*b )
	primDiv                      // /       ( a b -- a/b )    truncated integer division
	primMod                      // mod     ( a b -- a%b )    remainder of truncated division
	primDrop                     // drop    ( x -- )
	primSwap                     // swap    ( a b -- b a )
	primOver                     // over    ( a b -- a b a )
	primTick                     // '       ( -- xt )         read a word name, push a reference to it
	primExecute                  // execute ( xt -- )         run a referenced word
	primShowStack                // .s      ( -- )            write the stack without changing it
	primWords                    // words   ( -- )            write all visible word names, newest first

	primMax
)

type primDef struct {
	name      string
	immediate bool
	run       func(vm *VM) error
}

var primTable [primMax]primDef

func init() {
	primTable = [...]primDef{
		primDefine:    {":", false, (*VM).beginDefinition},
		primEnd:       {";", true, (*VM).endDefinition},
		primPrint:     {".", false, (*VM).print},
		primDup:       {"dup", false, (*VM).dup},
		primNewline:   {"cr", false, (*VM).newline},
		primAdd:       {"+", false, binaryOp(func(a, b int) (int, error) { return a + b, nil })},
		primSub:       {"-", false, binaryOp(func(a, b int) (int, error) { return a - b, nil })},
		primMul:       {"*", false, binaryOp(func(a, b int) (int, error) { return a * b, nil })},
		primDiv:       {"/", false, binaryOp(div)},
		primMod:       {"mod", false, binaryOp(mod)},
		primDrop:      {"drop", false, (*VM).drop},
		primSwap:      {"swap", false, (*VM).swap},
		primOver:      {"over", false, (*VM).over},
		primTick:      {"'", false, (*VM).tick},
		primExecute:   {"execute", false, (*VM).executeRef},
		primShowStack: {".s", false, (*VM).showStack},
		primWords:     {"words", false, (*VM).words},
	}
}

func (prim primitive) String() string {
	if prim < primMax {
		return primTable[prim].name
	}
	return fmt.Sprintf("primitive(%d)", uint8(prim))
}

// installPrimitives defines one wrapper word per primitive, holding a
// single primitive cell.
func (vm *VM) installPrimitives() {
	for prim := primitive(0); prim < primMax; prim++ {
		def := primTable[prim]
		ref := vm.dict.define(def.name)
		if def.immediate {
			vm.dict.markImmediate(ref)
		}
		vm.dict.compile(ref, primitiveCell(prim))
		vm.dict.finish()
	}
}

func (vm *VM) callPrimitive(prim primitive) error {
	if prim >= primMax {
		return fmt.Errorf("invalid primitive %d", uint8(prim))
	}
	if err := primTable[prim].run(vm); err != nil {
		return primError{prim, err}
	}
	return nil
}

//// Mode transitions

func (vm *VM) beginDefinition() error {
	if vm.dict.active != 0 {
		return modeErrorf("%v inside the definition of %q", primDefine, vm.dict.nameOf(vm.dict.active))
	}
	vm.mode = compileMode
	return nil
}

func (vm *VM) endDefinition() error {
	if vm.mode == interpretMode {
		return modeErrorf("%v without %v", primEnd, primDefine)
	}
	vm.logf(";", "end %q", vm.dict.nameOf(vm.dict.active))
	vm.dict.finish()
	vm.mode = interpretMode
	return nil
}

//// Output

func (vm *VM) print() error {
	v, err := vm.stack.pop()
	if err != nil {
		return err
	}
	return vm.writeString(vm.formatValue(v))
}

func (vm *VM) newline() error { return vm.writeString("\n") }

func (vm *VM) showStack() error {
	buf := make([]byte, 0, 16*len(vm.stack)+8)
	buf = append(buf, '<')
	buf = strconv.AppendInt(buf, int64(len(vm.stack)), 10)
	buf = append(buf, '>')
	for _, v := range vm.stack {
		buf = append(buf, ' ')
		buf = append(buf, vm.formatValue(v)...)
	}
	buf = append(buf, '\n')
	_, err := vm.out.Write(buf)
	return err
}

func (vm *VM) words() error {
	seen := make(map[uint]bool, len(vm.dict.words))
	sep := ""
	for i := len(vm.dict.words) - 1; i >= 0; i-- {
		w := &vm.dict.words[i]
		if seen[w.name] {
			continue
		}
		seen[w.name] = true
		if err := vm.writeString(sep + vm.dict.string(w.name)); err != nil {
			return err
		}
		sep = " "
	}
	return vm.writeString("\n")
}

func (vm *VM) writeString(s string) error {
	_, err := io.WriteString(vm.out, s)
	return err
}

func (vm *VM) formatValue(v Value) string {
	if v.isInt() {
		return v.String()
	}
	return "<" + vm.dict.nameOf(v.wordRef()) + ">"
}

//// Stack shuffling

func (vm *VM) dup() error {
	v, err := vm.stack.peek()
	if err == nil {
		vm.stack.push(v)
	}
	return err
}

func (vm *VM) drop() error {
	_, err := vm.stack.pop()
	return err
}

func (vm *VM) swap() error {
	if len(vm.stack) < 2 {
		return ErrStackUnderflow
	}
	i := len(vm.stack) - 1
	vm.stack[i-1], vm.stack[i] = vm.stack[i], vm.stack[i-1]
	return nil
}

func (vm *VM) over() error {
	if len(vm.stack) < 2 {
		return ErrStackUnderflow
	}
	vm.stack.push(vm.stack[len(vm.stack)-2])
	return nil
}

//// Arithmetic

func binaryOp(op func(a, b int) (int, error)) func(vm *VM) error {
	return func(vm *VM) error {
		a, b, err := vm.stack.pop2Int()
		if err != nil {
			return err
		}
		r, err := op(a, b)
		if err != nil {
			return err
		}
		vm.stack.push(intVal(r))
		return nil
	}
}

func div(a, b int) (int, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}

func mod(a, b int) (int, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a % b, nil
}

//// Word references

// tick reads the next token from input, which must name a word.
func (vm *VM) tick() error {
	tok, err := vm.src.Next()
	if err == io.EOF {
		return fmt.Errorf("%w: %v expects a word name, got end of input", ErrUnknownWord, primTick)
	} else if err != nil {
		return err
	}
	ref := vm.dict.lookup(tok.Text, true)
	if ref == 0 {
		return fmt.Errorf("%w: %v", ErrUnknownWord, tok)
	}
	vm.logf("'", "%q -> #%d", tok.Text, uint(ref))
	vm.stack.push(wordVal(ref))
	return nil
}

func (vm *VM) executeRef() error {
	v, err := vm.stack.pop()
	if err != nil {
		return err
	}
	if v.isInt() {
		return fmt.Errorf("%w: expected word reference, got %v", ErrTypeMismatch, v)
	}
	return vm.execute(v.wordRef())
}
