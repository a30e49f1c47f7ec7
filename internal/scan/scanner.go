// Package scan splits source text into whitespace separated tokens,
// classified as integer literals or identifiers.
package scan

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Kind classifies a Token.
type Kind uint8

// Token kinds.
const (
	Identifier Kind = iota
	Integer
)

func (k Kind) String() string {
	switch k {
	case Identifier:
		return "identifier"
	case Integer:
		return "integer"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Token is one scanned unit of source; Int is only meaningful for Integer
// tokens.
type Token struct {
	Kind Kind
	Text string
	Int  int
	Loc  Location
}

func (tok Token) String() string { return strconv.Quote(tok.Text) }

// Source is a pull-based token stream; Next returns io.EOF at end of input.
type Source interface {
	Next() (Token, error)
}

// Scanner tokenizes an Input. Backslash starts a comment running to the end
// of the line, and a lone "(" starts a comment running through the next ")".
type Scanner struct {
	Input
}

// NewScanner returns a Scanner reading through each of the given sources in
// order.
func NewScanner(srcs ...io.Reader) *Scanner {
	return &Scanner{Input: Input{Queue: srcs}}
}

// Next scans the next token.
func (sc *Scanner) Next() (Token, error) {
	for {
		text, loc, err := sc.word()
		if err != nil {
			return Token{}, err
		}
		switch text {
		case `\`:
			if err := sc.skipPast('\n'); err != nil && err != io.EOF {
				return Token{}, err
			}
			continue
		case "(":
			if err := sc.skipPast(')'); err != nil {
				return Token{}, err
			}
			continue
		}
		return Classify(text, loc), nil
	}
}

// Classify builds a Token from text: base 10 text that fits an int is an
// Integer, anything else an Identifier.
func Classify(text string, loc Location) Token {
	tok := Token{Kind: Identifier, Text: text, Loc: loc}
	if n, err := strconv.ParseInt(text, 10, strconv.IntSize); err == nil {
		tok.Kind = Integer
		tok.Int = int(n)
	}
	return tok
}

func (sc *Scanner) word() (string, Location, error) {
	var sb strings.Builder
	for {
		r, _, err := sc.ReadRune()
		if err != nil {
			return "", Location{}, err
		}
		if !isSpace(r) {
			sb.WriteRune(r)
			break
		}
	}
	loc := sc.Location()
	for {
		r, _, err := sc.ReadRune()
		if err == io.EOF {
			break
		} else if err != nil {
			return "", loc, err
		} else if isSpace(r) {
			break
		}
		sb.WriteRune(r)
	}
	return sb.String(), loc, nil
}

func (sc *Scanner) skipPast(end rune) error {
	for {
		r, _, err := sc.ReadRune()
		if err != nil {
			return err
		}
		if r == end {
			return nil
		}
	}
}

func isSpace(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }

// Tokens is a Source over an in-memory token list, mostly for tests.
type Tokens []Token

// Next pops the first token.
func (toks *Tokens) Next() (Token, error) {
	if len(*toks) == 0 {
		return Token{}, io.EOF
	}
	tok := (*toks)[0]
	*toks = (*toks)[1:]
	return tok, nil
}

// Peeker adds one token of lookahead to a Source.
type Peeker struct {
	Source

	tok    Token
	err    error
	peeked bool
}

// Next returns any peeked token, or reads a new one.
func (p *Peeker) Next() (Token, error) {
	if p.peeked {
		p.peeked = false
		return p.tok, p.err
	}
	return p.Source.Next()
}

// Peek returns the next token without consuming it.
func (p *Peeker) Peek() (Token, error) {
	if !p.peeked {
		p.tok, p.err = p.Source.Next()
		p.peeked = true
	}
	return p.tok, p.err
}
