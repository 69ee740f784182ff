package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// config holds the optional lox.toml settings. Everything has a working
// default so the file is never required.
type config struct {
	Output outputConfig `toml:"output"`
	Repl   replConfig   `toml:"repl"`
}

type outputConfig struct {
	Color          string `toml:"color"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

type replConfig struct {
	Prompt string `toml:"prompt"`
}

func defaultConfig() config {
	return config{
		Output: outputConfig{Color: "auto", MaxDiagnostics: 100},
		Repl:   replConfig{Prompt: "> "},
	}
}

// findLoxToml walks from startDir toward the filesystem root looking for the
// nearest lox.toml.
func findLoxToml(startDir string) (string, bool, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "lox.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadConfig(startDir string) (config, error) {
	cfg := defaultConfig()
	path, ok, err := findLoxToml(startDir)
	if err != nil || !ok {
		return cfg, err
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if cfg.Output.Color != "auto" && cfg.Output.Color != "on" && cfg.Output.Color != "off" {
		return cfg, fmt.Errorf("%s: unknown [output].color: %s", path, cfg.Output.Color)
	}
	return cfg, nil
}
