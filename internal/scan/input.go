package scan

import (
	"bufio"
	"fmt"
	"io"
)

// Location names a line within a named source.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string {
	if loc.Name == "" {
		return fmt.Sprintf("<input>:%v", loc.Line)
	}
	return fmt.Sprintf("%v:%v", loc.Name, loc.Line)
}

// Input reads runes sequentially through a Queue of sources, tracking the
// location of the rune last read.
type Input struct {
	Queue []io.Reader

	rr  io.RuneReader
	cl  io.Closer
	loc Location
	eol bool
}

// Location returns the position of the most recently read rune.
func (in *Input) Location() Location { return in.loc }

// ReadRune reads one rune from the current source, moving on to the next
// queued source when it is exhausted. Returns io.EOF once the queue is empty.
func (in *Input) ReadRune() (rune, int, error) {
	for {
		if in.rr == nil && !in.nextIn() {
			return 0, 0, io.EOF
		}
		if in.eol {
			in.eol = false
			in.loc.Line++
		}
		r, n, err := in.rr.ReadRune()
		if err == io.EOF {
			// sources are separated by an implicit line break, so that
			// tokens and line comments never span them
			if cerr := in.closeIn(); cerr != nil {
				return 0, 0, cerr
			}
			return '\n', 0, nil
		} else if err != nil {
			return 0, 0, err
		}
		if r == '\n' {
			in.eol = true
		}
		return r, n, nil
	}
}

// Close closes any current source, and any closable source still queued.
func (in *Input) Close() (err error) {
	err = in.closeIn()
	for _, r := range in.Queue {
		if cl, ok := r.(io.Closer); ok {
			if cerr := cl.Close(); err == nil {
				err = cerr
			}
		}
	}
	in.Queue = nil
	return err
}

func (in *Input) closeIn() (err error) {
	if in.cl != nil {
		err = in.cl.Close()
		in.cl = nil
	}
	in.rr = nil
	return err
}

func (in *Input) nextIn() bool {
	if len(in.Queue) == 0 {
		return false
	}
	r := in.Queue[0]
	in.Queue = in.Queue[1:]
	if rr, ok := r.(io.RuneReader); ok {
		in.rr = rr
	} else {
		in.rr = bufio.NewReader(r)
	}
	in.cl, _ = r.(io.Closer)
	in.loc = Location{Name: nameOf(r), Line: 1}
	in.eol = false
	return true
}

// NamedReader attaches a name to r, used for token locations.
func NamedReader(name string, r io.Reader) io.Reader {
	if cl, ok := r.(io.Closer); ok {
		return namedReadCloser{namedReader{r, name}, cl}
	}
	return namedReader{r, name}
}

type namedReader struct {
	io.Reader
	name string
}

type namedReadCloser struct {
	namedReader
	io.Closer
}

func (nr namedReader) Name() string { return nr.name }

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
