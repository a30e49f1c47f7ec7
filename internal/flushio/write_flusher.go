// Package flushio provides buffered output channels that know whether, and
// how, they need to be flushed.
package flushio

import (
	"bufio"
	"io"
	"io/ioutil"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// NewWriteFlusher returns w itself if it is already a WriteFlusher, a no-op
// flushing wrapper if w is discarded or in memory, and a bufio.Writer
// otherwise.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	switch impl := w.(type) {
	case nil:
		return Discard
	case WriteFlusher:
		return impl
	}
	if w == ioutil.Discard || isBuffer(w) {
		return nopFlusher{w}
	}
	return bufio.NewWriter(w)
}

// Discard is a WriteFlusher that throws away everything.
var Discard WriteFlusher = nopFlusher{ioutil.Discard}

// in memory buffers, like bytes.Buffer and strings.Builder, need no flushing
func isBuffer(w io.Writer) bool {
	_, is := w.(interface {
		io.Writer
		Len() int
		Grow(n int)
		Reset()
	})
	return is
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }
