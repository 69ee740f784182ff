package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/boksimamba3/lox/internal/lox"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] script.lox",
	Short: "Parse a Lox source file",
	Long:  `Parse prints the syntax tree of a Lox source file in prefix notation, one top-level statement per line`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	reporter, err := newReporter(cmd)
	if err != nil {
		return err
	}
	source, err := readSource(args[0])
	if err != nil {
		return err
	}

	scanner := lox.NewScanner([]rune(source), reporter)
	tokens := scanner.Scan()
	parser := lox.NewParser(tokens, reporter)
	statements := parser.Parse()
	if reporter.HadError() {
		return &exitError{65}
	}

	printer := new(lox.AstPrinter)
	fmt.Fprint(os.Stdout, printer.PrintProgram(statements))
	return nil
}
