package panicerr_test

import (
	"errors"
	"fmt"
	"runtime"
	"testing"

	"github.com/jcorbin/tforth/internal/panicerr"
	"github.com/stretchr/testify/assert"
)

func Test_Recover(t *testing.T) {
	errBoom := errors.New("boom")

	assert.NoError(t, panicerr.Recover("ok", func() error { return nil }))

	err := panicerr.Recover("plain", func() error { return errBoom })
	assert.Equal(t, errBoom, err, "returned errors pass through")
	assert.False(t, panicerr.IsPanic(err))

	err = panicerr.Recover("value", func() error { panic("oops") })
	assert.True(t, panicerr.IsPanic(err), "expected panic error")
	assert.EqualError(t, err, "value panicked: oops")
	assert.Contains(t, fmt.Sprintf("%+v", err), "Panic stack:")

	err = panicerr.Recover("error", func() error { panic(errBoom) })
	assert.True(t, errors.Is(err, errBoom), "panicked errors unwrap")

	err = panicerr.Recover("exit", func() error {
		runtime.Goexit()
		return nil
	})
	assert.True(t, panicerr.IsExit(err), "expected goexit error")
	assert.EqualError(t, err, "exit called runtime.Goexit")
}
