package main

import "fmt"

// stack is the operand stack, top at the end.
type stack []Value

func (s *stack) push(v Value) { *s = append(*s, v) }

func (s *stack) pop() (Value, error) {
	i := len(*s) - 1
	if i < 0 {
		return Value{}, ErrStackUnderflow
	}
	v := (*s)[i]
	*s = (*s)[:i]
	return v, nil
}

func (s stack) peek() (Value, error) {
	if len(s) == 0 {
		return Value{}, ErrStackUnderflow
	}
	return s[len(s)-1], nil
}

// popInt pops a value that must be an integer.
func (s *stack) popInt() (int, error) {
	v, err := s.pop()
	if err != nil {
		return 0, err
	}
	if !v.isInt() {
		return 0, fmt.Errorf("%w: expected integer, got %v", ErrTypeMismatch, v)
	}
	return v.n, nil
}

// pop2Int pops b then a, for an ( a b -- ... ) stack effect.
func (s *stack) pop2Int() (a, b int, err error) {
	if b, err = s.popInt(); err == nil {
		a, err = s.popInt()
	}
	return a, b, err
}

// ints returns integer payloads, for tests and dumps; word references read
// as their handle.
func (s stack) ints() []int {
	ns := make([]int, len(s))
	for i, v := range s {
		if v.isInt() {
			ns[i] = v.n
		} else {
			ns[i] = int(v.word)
		}
	}
	return ns
}
