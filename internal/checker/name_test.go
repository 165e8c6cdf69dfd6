package checker_test

import (
	"testing"

	"github.com/hlop3z/sqlcheck/internal/checker"
)

func TestResolveTestName(t *testing.T) {
	tests := map[string]string{
		"q1_sample":                 "q1_sample",
		"q1_sample.sql":             "q1_sample",
		"./q1_sample.sql":           "q1_sample",
		"homework/q1_sample.sql":    "q1_sample",
		"/abs/path/q2_not_the_same": "/abs/path/q2_not_the_same",
		"q3.v2.sql":                 "q3.v2",
		"q4.sql.bak":                "q4.sql.bak",
	}

	for arg, want := range tests {
		t.Run(arg, func(t *testing.T) {
			if got := checker.ResolveTestName(arg); got != want {
				t.Errorf("ResolveTestName(%q) = %q, want %q", arg, got, want)
			}
		})
	}
}
