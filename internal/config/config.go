// Package config holds the YAML configuration of the bitvec command.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/bitvec/format"
)

// DEFAULT_PATH is the configuration file read when none is named.
const DEFAULT_PATH = "~/.config/bitvec/config.yaml"

// Config is the command configuration.
type Config struct {
	Verbose bool         `yaml:"verbose"`
	Format  FormatConfig `yaml:"format"`
	Eval    EvalConfig   `yaml:"eval"`
	Repl    ReplConfig   `yaml:"repl"`
	Cpu     CpuConfig    `yaml:"cpu"`
}

// FormatConfig selects how numbers are printed.
type FormatConfig struct {
	Default string `yaml:"default"` // Format spec, such as "%x" or "pad:n_". Empty for the default grouping.
}

// EvalConfig controls batch evaluation.
type EvalConfig struct {
	Workers int `yaml:"workers"` // Expressions evaluated at once.
}

// ReplConfig controls the interactive prompt.
type ReplConfig struct {
	Prompt       string `yaml:"prompt"`
	HistoryFile  string `yaml:"history_file"`
	HistoryLimit int    `yaml:"history_limit"`
}

// CpuConfig controls the toy CPU emulator.
type CpuConfig struct {
	Trace     bool `yaml:"trace"`      // Log every executed instruction.
	TickLimit int  `yaml:"tick_limit"` // Zero for no limit.
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Eval: EvalConfig{
			Workers: 4,
		},
		Repl: ReplConfig{
			Prompt:       "bitvec> ",
			HistoryFile:  "~/.cache/bitvec/history",
			HistoryLimit: 1000,
		},
		Cpu: CpuConfig{
			TickLimit: 1000000,
		},
	}
}

// ExpandHome replaces a leading ~ with the home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Load reads the configuration at path over the defaults. A missing file
// gives the defaults.
func Load(path string) (config *Config, err error) {
	config = Default()

	if path == "" {
		return
	}

	path = ExpandHome(path)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		err = nil
		return
	}
	if err != nil {
		err = &ErrConfigFile{Path: path, Err: err}
		return
	}

	err = config.Decode(bytes.NewReader(data))
	if err != nil {
		err = &ErrConfigFile{Path: path, Err: err}
		config = nil
	}

	return
}

// Decode reads YAML over the current values, then validates the result.
func (config *Config) Decode(r io.Reader) (err error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	err = decoder.Decode(config)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	if err != nil {
		return
	}

	return config.Validate()
}

// Encode writes the configuration as YAML.
func (config *Config) Encode(w io.Writer) (err error) {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	err = encoder.Encode(config)
	if err != nil {
		return
	}

	return encoder.Close()
}

// Validate checks the values of the configuration.
func (config *Config) Validate() (err error) {
	if config.Eval.Workers < 1 {
		return ErrWorkers
	}

	if config.Cpu.TickLimit < 0 {
		return ErrTickLimit
	}

	if config.Format.Default != "" {
		_, err = format.Parse(config.Format.Default)
	}

	return
}
