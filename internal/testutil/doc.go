// Package testutil provides test helpers for sqlcheck.
//
// This package includes:
//   - Grading directory builders (submissions, references, database fixture)
//   - SQLite fixture helpers backed by the pure-Go modernc.org/sqlite driver
//   - Fake engine scripts that stand in for the sqlite3 shell
//   - Error assertion helpers for checking error codes
//
// # Example Usage
//
//	func TestGrading(t *testing.T) {
//	    dir := testutil.NewGradingDir(t)
//	    dir.WriteSubmission("q1", "SELECT 1;")
//	    dir.WriteReference("q1", "1")
//	    dir.CreateDatabase("CREATE TABLE t (x INTEGER)")
//
//	    runner := engine.NewCLI(testutil.EchoEngine(t))
//	    c := checker.New(dir.Layout, runner)
//	    // ...
//	}
//
// Tests that need the real sqlite3 shell call RequireBinary(t, "sqlite3") and
// are skipped where it is not installed.
package testutil
