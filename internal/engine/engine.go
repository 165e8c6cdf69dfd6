// Package engine runs the external database engine that executes submissions.
//
// The engine contract is the one of the sqlite3 shell: it takes a database
// file as its argument, reads a query script from standard input, writes the
// results to standard output, and exits zero on success.
package engine

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"

	"github.com/hlop3z/sqlcheck/internal/alerr"
)

// DefaultBinary is the engine used when none is configured.
const DefaultBinary = "sqlite3"

// Runner executes a query script against a database file and returns
// everything the engine wrote to standard output.
type Runner interface {
	Run(ctx context.Context, database string, script io.Reader) ([]byte, error)
}

// CLI runs an engine binary as a subprocess.
type CLI struct {
	// Binary is a name looked up on PATH or a path to the executable.
	Binary string
	// Args are passed before the database path.
	Args []string
}

// NewCLI returns a runner for binary, or for DefaultBinary if binary is empty.
func NewCLI(binary string, args ...string) *CLI {
	if binary == "" {
		binary = DefaultBinary
	}
	return &CLI{Binary: binary, Args: args}
}

// Run starts the engine with the database as its last argument and script on
// standard input, and waits for it to exit. Output is buffered in full.
func (c *CLI) Run(ctx context.Context, database string, script io.Reader) ([]byte, error) {
	path, err := exec.LookPath(c.Binary)
	if err != nil {
		return nil, alerr.Wrap(alerr.ErrEngineNotFound, err, "database engine not found").
			WithEngine(c.Binary).
			WithHelp("install the sqlite3 shell or pass --engine <path>")
	}

	args := append(append([]string(nil), c.Args...), database)
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = script

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		e := alerr.Wrap(alerr.ErrEngineFailed, err, "database engine failed").
			WithEngine(c.Binary).
			WithPath(database)

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			e.With("exit_code", exitErr.ExitCode())
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			e.With("stderr", msg)
		}
		if ctx.Err() != nil {
			e.WithNote("the run was interrupted")
		}
		return nil, e
	}

	return stdout.Bytes(), nil
}

// Func adapts an ordinary function to the Runner interface.
type Func func(ctx context.Context, database string, script io.Reader) ([]byte, error)

// Run calls f.
func (f Func) Run(ctx context.Context, database string, script io.Reader) ([]byte, error) {
	return f(ctx, database, script)
}
