package main

import (
	"fmt"
	"strconv"
)

type valueKind uint8

const (
	intValue valueKind = iota
	wordValue
)

// Value is one operand stack entry: either an integer, or a reference to a
// dictionary word as pushed by ' .
type Value struct {
	kind valueKind
	n    int
	word wordRef
}

func intVal(n int) Value         { return Value{kind: intValue, n: n} }
func wordVal(ref wordRef) Value  { return Value{kind: wordValue, word: ref} }
func (v Value) isInt() bool      { return v.kind == intValue }
func (v Value) wordRef() wordRef { return v.word }

func (v Value) String() string {
	switch v.kind {
	case intValue:
		return strconv.Itoa(v.n)
	case wordValue:
		return fmt.Sprintf("<#%d>", uint(v.word))
	default:
		return fmt.Sprintf("<invalid value kind %d>", v.kind)
	}
}
