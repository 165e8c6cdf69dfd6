package checker

import (
	"fmt"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// UnifiedDiff renders a unified diff from expected to actual output for the
// named test. It returns "" when the texts are equal.
func UnifiedDiff(name, actual, expected string) string {
	if actual == expected {
		return ""
	}

	from := "expected/" + name + ReferenceExt
	to := "actual/" + name

	// Unterminated last lines make the diff print "\ No newline at end of file".
	expected += "\n"
	actual += "\n"

	edits := myers.ComputeEdits(span.URIFromPath(from), expected, actual)
	return fmt.Sprint(gotextdiff.ToUnified(from, to, expected, edits))
}
