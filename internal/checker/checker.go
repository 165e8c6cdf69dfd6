// Package checker grades a SQL submission by running it through the database
// engine and comparing the output with a reference answer.
package checker

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/hlop3z/sqlcheck/internal/alerr"
	"github.com/hlop3z/sqlcheck/internal/engine"
)

// Options tune a single check.
type Options struct {
	// Sort compares whitespace-separated tokens in sorted order instead of
	// the raw text.
	Sort bool
}

// Checker grades submissions found through a Layout.
type Checker struct {
	layout Layout
	engine engine.Runner
	logger *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Checker for layout that runs submissions with runner.
func New(layout Layout, runner engine.Runner, opts ...Option) *Checker {
	c := &Checker{
		layout: layout,
		engine: runner,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Layout returns the fixture layout of the checker.
func (c *Checker) Layout() Layout {
	return c.layout
}

// Check runs the submission of test name and compares its output with the
// reference answer. A wrong answer is reported through the Result, not as an
// error; errors mean a fixture is missing or the engine could not run.
func (c *Checker) Check(ctx context.Context, name string, opts Options) (*Result, error) {
	submission := c.layout.SubmissionPath(name)
	database := c.layout.DatabasePath()
	reference := c.layout.ReferencePath(name)

	c.logger.Debug("resolved fixtures",
		"test", name,
		"submission", submission,
		"database", database,
		"reference", reference,
	)

	script, err := os.Open(submission)
	if err != nil {
		return nil, c.submissionError(name, submission, err)
	}
	defer script.Close()

	// The sqlite3 shell creates a missing database instead of failing.
	if _, err := os.Stat(database); err != nil {
		return nil, notFound(alerr.ErrDatabaseNotFound, "database fixture not found", database, err).
			WithTest(name)
	}

	start := time.Now()
	out, err := c.engine.Run(ctx, database, script)
	if err != nil {
		var ae *alerr.Error
		if errors.As(err, &ae) {
			ae.WithTest(name)
		}
		return nil, err
	}
	c.logger.Debug("engine finished",
		"test", name,
		"bytes", len(out),
		"elapsed", time.Since(start),
	)

	want, err := os.ReadFile(reference)
	if err != nil {
		return nil, notFound(alerr.ErrReferenceNotFound, "reference answer not found", reference, err).
			WithTest(name)
	}

	res := Compare(decodeText(out), decodeText(want), opts.Sort)
	res.Name = name

	c.logger.Debug("compared output", "test", name, "passed", res.Passed, "sorted", opts.Sort)
	return res, nil
}

func (c *Checker) submissionError(name, path string, err error) *alerr.Error {
	e := notFound(alerr.ErrSubmissionNotFound, "submission not found", path, err).WithTest(name)
	if !errors.Is(err, fs.ErrNotExist) {
		return e
	}
	if names, lerr := c.layout.Submissions(); lerr == nil {
		if hint := alerr.SuggestSimilar(name, names); hint != "" {
			e.WithHelp(hint)
		}
	}
	return e
}

// notFound builds a not-found error for path. Errors other than a missing
// file (permissions, a directory in the way) keep the same code and carry
// the cause.
func notFound(code alerr.Code, msg, path string, err error) *alerr.Error {
	if errors.Is(err, fs.ErrNotExist) {
		return alerr.New(code, msg).WithPath(path)
	}
	return alerr.Wrap(code, err, msg).WithPath(path)
}

// decodeText converts raw bytes to text with universal newlines: "\r\n" and
// lone "\r" both become "\n".
func decodeText(b []byte) string {
	s := string(b)
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
