package checker

import (
	"path/filepath"
	"strings"
)

// SubmissionExt is the file extension of submission queries.
const SubmissionExt = ".sql"

// ResolveTestName turns a command-line argument into a test name.
// An argument ending in ".sql" is treated as a file name: its directory and
// extension are dropped ("dir/q1.sql" -> "q1"). Anything else is returned verbatim.
func ResolveTestName(arg string) string {
	if !strings.HasSuffix(arg, SubmissionExt) {
		return arg
	}
	return strings.TrimSuffix(filepath.Base(arg), SubmissionExt)
}
