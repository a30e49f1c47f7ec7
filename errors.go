package main

import (
	"errors"
	"fmt"

	"github.com/jcorbin/tforth/internal/scan"
)

// Every failure is one of these kinds; all of them end the run.
var (
	ErrStackUnderflow      = errors.New("stack underflow")
	ErrTypeMismatch        = errors.New("type mismatch")
	ErrUnknownWord         = errors.New("unknown word")
	ErrModeError           = errors.New("mode error")
	ErrTruncatedDefinition = errors.New("truncated definition")
	ErrDivisionByZero      = errors.New("division by zero")
	ErrStackOverflow       = errors.New("call stack overflow")
)

// tokenError places an error at the token being processed when it happened.
type tokenError struct {
	tok scan.Token
	err error
}

func (te tokenError) Error() string {
	return fmt.Sprintf("%v: %v: %v", te.tok.Loc, te.tok, te.err)
}

func (te tokenError) Unwrap() error { return te.err }

// primError names the primitive that failed.
type primError struct {
	prim primitive
	err  error
}

func (pe primError) Error() string { return fmt.Sprintf("%v: %v", pe.prim, pe.err) }
func (pe primError) Unwrap() error { return pe.err }

func modeErrorf(mess string, args ...interface{}) error {
	return fmt.Errorf("%w: "+mess, append([]interface{}{ErrModeError}, args...)...)
}
