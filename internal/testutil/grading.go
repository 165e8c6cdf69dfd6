package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/hlop3z/sqlcheck/internal/checker"
)

// GradingDir is a temporary base directory laid out like a grading install.
type GradingDir struct {
	t      *testing.T
	Layout checker.Layout
}

// NewGradingDir creates an empty grading directory with the default layout.
func NewGradingDir(t *testing.T) *GradingDir {
	t.Helper()
	return &GradingDir{t: t, Layout: checker.NewLayout(t.TempDir())}
}

// WriteSubmission writes <base>/<name>.sql.
func (g *GradingDir) WriteSubmission(name, query string) string {
	g.t.Helper()
	path := g.Layout.SubmissionPath(name)
	WriteFile(g.t, path, query)
	return path
}

// WriteReference writes the reference answer for name.
func (g *GradingDir) WriteReference(name, answer string) string {
	g.t.Helper()
	path := g.Layout.ReferencePath(name)
	WriteFile(g.t, path, answer)
	return path
}

// CreateDatabase creates the database fixture and runs stmts against it.
func (g *GradingDir) CreateDatabase(stmts ...string) string {
	g.t.Helper()
	path := g.Layout.DatabasePath()
	CreateSQLiteFixture(g.t, path, stmts...)
	return path
}

// TouchDatabase creates an empty database fixture file. Enough for fake
// engines that never read it.
func (g *GradingDir) TouchDatabase() string {
	g.t.Helper()
	path := g.Layout.DatabasePath()
	WriteFile(g.t, path, "")
	return path
}

// FakeEngine writes an executable shell script with the given body and
// returns its path. The script receives the database path as $1 and the
// submission on standard input. Skipped on Windows.
func FakeEngine(t *testing.T, body string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake engines are shell scripts")
	}

	path := filepath.Join(t.TempDir(), "engine.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("failed to write fake engine: %v", err)
	}
	return path
}

// EchoEngine returns a fake engine that prints the submission unchanged,
// so a submission's text doubles as its output.
func EchoEngine(t *testing.T) string {
	t.Helper()
	return FakeEngine(t, "cat")
}
