package main

import (
	"testing"
)

func Test_primitives(t *testing.T) {
	vmTestCases{
		// binary integer operations on the stack
		vmTest("add").withStack(5, 3, 1).withInput(`+`).expectStack(5, 4),
		vmTest("sub").withStack(5, 3, 1).withInput(`-`).expectStack(5, 2),
		vmTest("mul").withStack(11, 5, 6).withInput(`*`).expectStack(11, 30),
		vmTest("div").withStack(7, 13, 3).withInput(`/`).expectStack(7, 4),
		vmTest("div truncates").withStack(-7, 2).withInput(`/`).expectStack(-3),
		vmTest("div by zero").withStack(7, 0).withInput(`/`).expectError(ErrDivisionByZero),
		vmTest("mod").withStack(13, 5).withInput(`mod`).expectStack(3),
		vmTest("mod negative").withStack(-7, 2).withInput(`mod`).expectStack(-1),
		vmTest("mod by zero").withStack(7, 0).withInput(`mod`).expectError(ErrDivisionByZero),
		vmTest("add underflow").withStack(1).withInput(`+`).expectError(ErrStackUnderflow),
		vmTest("add empty").withInput(`+`).expectError(ErrStackUnderflow),
		vmTest("add a word").withInput(`' dup 1 +`).expectError(ErrTypeMismatch),
		vmTest("mul by a word").withInput(`2 ' dup *`).expectError(ErrTypeMismatch),

		// stack shuffling
		vmTest("dup").withStack(1, 2).withInput(`dup`).expectStack(1, 2, 2),
		vmTest("dup twice").withStack(9).withInput(`dup dup`).expectStack(9, 9, 9),
		vmTest("dup empty").withInput(`dup`).expectError(ErrStackUnderflow),
		vmTest("dup a word").withInput(`' cr dup`).expectStackString(`'cr 'cr`),
		vmTest("drop").withStack(1, 2).withInput(`drop`).expectStack(1),
		vmTest("drop empty").withInput(`drop`).expectError(ErrStackUnderflow),
		vmTest("swap").withStack(1, 2, 3).withInput(`swap`).expectStack(1, 3, 2),
		vmTest("swap underflow").withStack(1).withInput(`swap`).expectError(ErrStackUnderflow).expectStack(1),
		vmTest("over").withStack(1, 2, 3).withInput(`over`).expectStack(1, 2, 3, 2),
		vmTest("over underflow").withStack(1).withInput(`over`).expectError(ErrStackUnderflow),

		// output
		vmTest("print").withStack(1, 42).withInput(`.`).expectOutput("42").expectStack(1),
		vmTest("print negative").withInput(`-5 .`).expectOutput("-5"),
		vmTest("print empty").withInput(`.`).expectError(ErrStackUnderflow).expectOutput(""),
		vmTest("print a word").withInput(`' dup .`).expectOutput("<dup>"),
		vmTest("cr").withInput(`1 . cr 2 . cr`).expectOutput("1\n2\n"),
		vmTest("show stack").withInput(`1 ' swap 3 .s`).expectOutput("<3> 1 <swap> 3\n").expectStackString(`1 'swap 3`),
		vmTest("show empty stack").withInput(`.s`).expectOutput("<0>\n"),
		vmTest("words").withInput(`: sq dup * ; : dup dup ; words`).expectOutput(
			"dup sq words .s execute ' over swap drop mod / * - + cr . ; :\n"),
		vmTest("test output").withInput(`1 . cr`).withTestOutput(),

		// word references
		vmTest("tick and execute").withInput(`: sq dup * ; 3 ' sq execute`).expectStack(9),
		vmTest("tick a shadowed name").withInput(`: two 2 ; ' two : two 3 ; execute two`).
			expectStack(2, 3),
		vmTest("tick inside a word").withInput(`: run ' execute ; 2 run dup`).expectStack(2, 2),
		vmTest("tick unknown").withInput(`' frob`).expectError(ErrUnknownWord),
		vmTest("tick at end of input").withInput(`'`).expectError(ErrUnknownWord),
		vmTest("execute an integer").withInput(`1 execute`).expectError(ErrTypeMismatch),
		vmTest("execute empty").withInput(`execute`).expectError(ErrStackUnderflow),
	}.run(t)
}
