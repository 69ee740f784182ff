package lox

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestSimpleReporterInit(t *testing.T) {
	assert := assert.New(t)

	r := NewSimpleReporter(io.Discard)

	assert.False(r.HadError())
	assert.False(r.HadRuntimeError())
}

func TestSimpleReporterSendAnyError(t *testing.T) {
	assert := assert.New(t)
	err := errors.New("Test error")

	var out strings.Builder
	r := NewSimpleReporter(&out)
	r.Report(err)

	assert.Equal(fmt.Sprintf("%v\n", err), out.String())
	assert.True(r.HadError())
	assert.False(r.HadRuntimeError())
}

func TestSimpleReporterSendRuntimeError(t *testing.T) {
	assert := assert.New(t)
	err := NewRuntimeError(NewToken(MINUS, "-", nil, 1), "Operands must be numbers.")

	var out strings.Builder
	r := NewSimpleReporter(&out)
	r.Report(err)

	assert.Equal(fmt.Sprintf("%v\n", err), out.String())
	assert.False(r.HadError())
	assert.True(r.HadRuntimeError())
}

func TestSimpleReporterSendErrors(t *testing.T) {
	assert := assert.New(t)
	err1 := errors.New("Test error")
	err2 := NewRuntimeError(NewToken(MINUS, "-", nil, 1), "Operands must be numbers.")

	var out strings.Builder
	r := NewSimpleReporter(&out)
	r.Report(err1)
	r.Report(err2)

	assert.Equal(fmt.Sprintf("%v\n%v\n", err1, err2), out.String())
	assert.True(r.HadError())
	assert.True(r.HadRuntimeError())
}

func TestSimpleReporterReset(t *testing.T) {
	assert := assert.New(t)
	err1 := errors.New("Test error")
	err2 := NewRuntimeError(NewToken(MINUS, "-", nil, 1), "Operands must be numbers.")

	var out strings.Builder
	r := NewSimpleReporter(&out)
	r.Report(err1)
	r.Report(err2)

	r.Reset()
	assert.False(r.HadRuntimeError())
	assert.False(r.HadError())
}

func withoutColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestConsoleReporterSeverities(t *testing.T) {
	withoutColor(t)
	assert := assert.New(t)
	staticErr := newScanError(1, "Unexpected character.")
	runtimeErr := NewRuntimeError(NewToken(MINUS, "-", nil, 1), "Operands must be numbers.")

	var out strings.Builder
	r := NewConsoleReporter(&out, 0)
	r.Report(staticErr)
	r.Report(runtimeErr)

	assert.Equal(fmt.Sprintf("%v\n%v\n", staticErr, runtimeErr), out.String())
	assert.True(r.HadError())
	assert.True(r.HadRuntimeError())
}

func TestConsoleReporterCapsDiagnostics(t *testing.T) {
	withoutColor(t)
	assert := assert.New(t)

	var out strings.Builder
	r := NewConsoleReporter(&out, 2)
	for i := 0; i < 5; i++ {
		r.Report(newScanError(i+1, "Unexpected character."))
	}

	want := fmt.Sprintf("%v\n%v\nStopped after 2 errors.\n",
		newScanError(1, "Unexpected character."),
		newScanError(2, "Unexpected character."),
	)
	assert.Equal(want, out.String())
	assert.True(r.HadError())
}

func TestConsoleReporterReset(t *testing.T) {
	withoutColor(t)
	assert := assert.New(t)

	var out strings.Builder
	r := NewConsoleReporter(&out, 1)
	r.Report(newScanError(1, "Unexpected character."))
	r.Reset()
	assert.False(r.HadError())
	assert.False(r.HadRuntimeError())

	out.Reset()
	r.Report(newScanError(2, "Unexpected character."))
	want := fmt.Sprintf("%v\nStopped after 1 errors.\n",
		newScanError(2, "Unexpected character."))
	assert.Equal(want, out.String())
}
