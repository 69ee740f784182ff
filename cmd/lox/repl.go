package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/boksimamba3/lox/internal/lox"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Long:  `Repl reads one line at a time, echoing the value of bare expressions. Bindings persist across lines and errors do not end the session`,
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	reporter, err := newReporter(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}

	interpreter := lox.NewInterpreter(os.Stdout, reporter, true)
	s := bufio.NewScanner(os.Stdin)
	s.Split(bufio.ScanLines)
	for {
		fmt.Print(cfg.Repl.Prompt)
		if !s.Scan() {
			break
		}
		lox.Run(s.Text(), interpreter, reporter)
		reporter.Reset()
	}
	if err := s.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return &exitError{1}
	}
	return nil
}
