package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/boksimamba3/lox/internal/dump"
	"github.com/boksimamba3/lox/internal/lox"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] script.lox",
	Short: "Tokenize a Lox source file",
	Long:  `Tokenize breaks down a Lox source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

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

	switch format {
	case "pretty":
		err = dump.TokensPretty(os.Stdout, tokens)
	case "json":
		err = dump.TokensJSON(os.Stdout, tokens)
	case "msgpack":
		err = dump.TokensMsgpack(os.Stdout, tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if reporter.HadError() {
		return &exitError{65}
	}
	return nil
}
