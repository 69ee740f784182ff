package lox

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Reporter defines the interface for structure that can display errors to the
// user. A reporter is defined to separate errors reporting code from errors
// displaying code. Fully-featured languages have a complex setup for reporting
// errors to user.
type Reporter interface {
	Report(err error)
	HadError() bool
	HadRuntimeError() bool
	Reset()
}

// SimpleReporter writes errors as-is to the inner writer. Runtime errors are
// tracked separately from static ones since the driver maps them to different
// exit codes.
type SimpleReporter struct {
	writer        io.Writer
	hadErr        bool
	hadRuntimeErr bool
}

func NewSimpleReporter(writer io.Writer) Reporter {
	return &SimpleReporter{writer: writer}
}

func (reporter *SimpleReporter) Report(err error) {
	if _, ok := err.(*RuntimeError); ok {
		reporter.hadRuntimeErr = true
	} else {
		reporter.hadErr = true
	}
	fmt.Fprintln(reporter.writer, err)
}

func (reporter *SimpleReporter) HadError() bool {
	return reporter.hadErr
}

func (reporter *SimpleReporter) HadRuntimeError() bool {
	return reporter.hadRuntimeErr
}

func (reporter *SimpleReporter) Reset() {
	reporter.hadErr = false
	reporter.hadRuntimeErr = false
}

var (
	staticErrColor  = color.New(color.FgRed, color.Bold)
	runtimeErrColor = color.New(color.FgMagenta, color.Bold)
	noteColor       = color.New(color.FgYellow)
)

// ConsoleReporter colors errors by severity and stops printing after a fixed
// number of diagnostics so a corrupt script does not flood the terminal. The
// counters keep advancing past the cap, only the printing stops.
type ConsoleReporter struct {
	writer         io.Writer
	maxDiagnostics int
	reported       int
	hadErr         bool
	hadRuntimeErr  bool
}

// NewConsoleReporter returns a reporter printing at most maxDiagnostics
// errors. A non-positive maxDiagnostics disables the cap.
func NewConsoleReporter(writer io.Writer, maxDiagnostics int) Reporter {
	return &ConsoleReporter{writer: writer, maxDiagnostics: maxDiagnostics}
}

func (reporter *ConsoleReporter) Report(err error) {
	severity := staticErrColor
	if _, ok := err.(*RuntimeError); ok {
		reporter.hadRuntimeErr = true
		severity = runtimeErrColor
	} else {
		reporter.hadErr = true
	}

	reporter.reported++
	if reporter.maxDiagnostics > 0 {
		if reporter.reported > reporter.maxDiagnostics {
			return
		}
		if reporter.reported == reporter.maxDiagnostics {
			fmt.Fprintln(reporter.writer, severity.Sprint(err))
			noteColor.Fprintf(
				reporter.writer,
				"Stopped after %d errors.\n",
				reporter.maxDiagnostics,
			)
			return
		}
	}
	fmt.Fprintln(reporter.writer, severity.Sprint(err))
}

func (reporter *ConsoleReporter) HadError() bool {
	return reporter.hadErr
}

func (reporter *ConsoleReporter) HadRuntimeError() bool {
	return reporter.hadRuntimeErr
}

func (reporter *ConsoleReporter) Reset() {
	reporter.reported = 0
	reporter.hadErr = false
	reporter.hadRuntimeErr = false
}
