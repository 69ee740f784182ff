package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/boksimamba3/lox/internal/lox"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] script.lox",
	Short: "Run a Lox script",
	Long:  `Run sends the script through the scanner, parser, resolver, and interpreter`,
	Args:  cobra.ExactArgs(1),
	RunE:  runScript,
}

func runScript(cmd *cobra.Command, args []string) error {
	reporter, err := newReporter(cmd)
	if err != nil {
		return err
	}
	source, err := readSource(args[0])
	if err != nil {
		return err
	}

	interpreter := lox.NewInterpreter(os.Stdout, reporter, false)
	lox.Run(source, interpreter, reporter)
	if reporter.HadError() {
		return &exitError{65}
	}
	if reporter.HadRuntimeError() {
		return &exitError{70}
	}
	return nil
}
