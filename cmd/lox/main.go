package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/boksimamba3/lox/internal/lox"
)

var rootCmd = &cobra.Command{
	Use:   "lox",
	Short: "Interpreter for the Lox programming language",
	Long:  `A tree-walking interpreter for the Lox programming language with tooling for inspecting its scanner and parser output`,
}

// exitError carries the process status the driver maps a failed stage to:
// 65 for static errors, 70 for runtime errors, 1 for I/O. Any other error
// returned by a command exits with 64 (usage).
type exitError struct {
	code int
}

func (err *exitError) Error() string {
	return fmt.Sprintf("exit status %d", err.code)
}

func main() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)

	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of errors to show, 0 uses the configured default")
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(64)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// newReporter builds the stderr reporter from flags and the nearest config
// file, with flags taking precedence.
func newReporter(cmd *cobra.Command) (lox.Reporter, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, err
	}

	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	if colorMode == "" {
		colorMode = cfg.Output.Color
	}
	switch colorMode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stderr)
	default:
		return nil, fmt.Errorf("unknown color mode: %s", colorMode)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics == 0 {
		maxDiagnostics = cfg.Output.MaxDiagnostics
	}

	return lox.NewConsoleReporter(os.Stderr, maxDiagnostics), nil
}

func readSource(fpath string) (string, error) {
	bytes, err := os.ReadFile(fpath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return "", &exitError{1}
	}
	return string(bytes), nil
}
