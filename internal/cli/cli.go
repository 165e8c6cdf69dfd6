// Package cli provides terminal output formatting for sqlcheck.
// It handles colored output, pass/fail banners, error formatting, and
// structured output for automated grading pipelines.
package cli

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// OutputMode determines how output is formatted.
type OutputMode int

const (
	// ModeTTY enables rich colored output for interactive terminals.
	ModeTTY OutputMode = iota
	// ModePlain outputs plain text without colors (for pipes/CI).
	ModePlain
	// ModeJSON outputs structured JSON for programmatic consumption.
	ModeJSON
)

// Config holds CLI output configuration.
// Configuration is auto-detected; users don't configure this directly.
type Config struct {
	Mode   OutputMode
	Writer io.Writer
}

// DetectConfig returns the auto-detected configuration for output written to w.
// Rules:
//   - If w is a terminal and NO_COLOR not set -> ModeTTY
//   - If w is not a terminal, NO_COLOR is set or TERM=dumb -> ModePlain
//   - Use ModeJSON explicitly via NewConfigWithMode
func DetectConfig(w io.Writer) *Config {
	mode := ModePlain

	if f, ok := w.(*os.File); ok && IsTerminal(f) {
		mode = ModeTTY
	}

	// Respect NO_COLOR environment variable (https://no-color.org/)
	if os.Getenv("NO_COLOR") != "" {
		mode = ModePlain
	}

	// Also respect TERM=dumb
	if os.Getenv("TERM") == "dumb" {
		mode = ModePlain
	}

	return &Config{
		Mode:   mode,
		Writer: w,
	}
}

// DefaultConfig returns the auto-detected configuration for stdout.
func DefaultConfig() *Config {
	return DetectConfig(os.Stdout)
}

// NewConfigWithMode creates a config writing to w with a specific output mode.
// Used for --json flag or testing.
func NewConfigWithMode(w io.Writer, mode OutputMode) *Config {
	return &Config{Mode: mode, Writer: w}
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// IsTTY returns true if running in interactive terminal mode.
func (c *Config) IsTTY() bool {
	return c.Mode == ModeTTY
}

// IsJSON returns true if running in JSON output mode.
func (c *Config) IsJSON() bool {
	return c.Mode == ModeJSON
}

// Global default config, initialized lazily.
var defaultCfg *Config

// Default returns the global default configuration.
func Default() *Config {
	if defaultCfg == nil {
		defaultCfg = DefaultConfig()
	}
	return defaultCfg
}

// SetDefault sets the global default configuration.
// Used by tests to pin the output mode.
func SetDefault(cfg *Config) {
	defaultCfg = cfg
}

// EnableColors returns true if colors should be used.
func EnableColors() bool {
	return Default().IsTTY()
}
