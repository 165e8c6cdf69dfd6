package testutil

import (
	"os/exec"
	"testing"
)

// SkipIfShort skips the test if running in short mode.
// Use this for tests that start real engine processes.
//
// Example:
//
//	func TestIntegration(t *testing.T) {
//	    testutil.SkipIfShort(t)
//	    // ... integration test code
//	}
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireBinary skips the test unless name is found on PATH, and returns its path.
func RequireBinary(t *testing.T, name string) string {
	t.Helper()

	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not found on PATH", name)
	}
	return path
}

// Must asserts that err is nil, or fails the test immediately.
// Useful for test setup code.
//
// Example:
//
//	testutil.Must(t, os.WriteFile(path, data, 0644))
func Must(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}
