/* Command tforth: a small threaded-code Forth.

Source is a sequence of whitespace separated tokens. Integers push
themselves; every other token names a word from the dictionary, which is run.

The dictionary starts out holding one word per primitive:

	:        ( -- )            begin a definition; the next token names it
	;        ( -- )            end the definition
	.        ( x -- )          print x
	cr       ( -- )            print a line break
	dup      ( x -- x x )
	drop     ( x -- )
	swap     ( a b -- b a )
	over     ( a b -- a b a )
	+ - * /  ( a b -- r )      integer arithmetic; / truncates
	mod      ( a b -- r )      remainder
	'        ( -- xt )         push a reference to the word named next
	execute  ( xt -- )         run a referenced word
	.s       ( -- )            print the whole stack
	words    ( -- )            print every visible word name

New words are built out of old ones:

	: square dup * ;
	5 square .        \ prints 25

Between ":" and ";" tokens are compiled into the new word rather than run:
integers become literals, names become calls to the word they name at that
moment. Words are never removed or changed; defining a name again shadows
the old word for everything compiled afterwards, while the new definition
itself still sees the old one:

	: square square . ;   \ print, after squaring with the old square

Writing "immediate" right after a new word's name makes that word run at
once whenever it is seen inside another definition, instead of being
compiled into it.

Any error (stack underflow, an unknown word, dividing by zero, and the like)
ends the run, reporting where in the source it happened.

Usage:

	tforth [flags] [file ...]

With no files, source is read from standard input, or from an interactive
line editor when standard input is a terminal. Flags:

	-trace         log each compile and execute step
	-dump          print the stack and dictionary afterwards
	-each          run each file in its own interpreter, concurrently
	-depth-limit N limit nested word calls (default 1024)
	-timeout D     stop after duration D
*/
package main
