package checker_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/hlop3z/sqlcheck/internal/checker"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		actual   string
		expected string
		sorted   bool
		passed   bool
		div      *checker.Divergence
	}{
		{
			name:     "identical",
			actual:   "a\nb",
			expected: "a\nb",
			passed:   true,
		},
		{
			name:     "surrounding whitespace ignored",
			actual:   "\n  a\nb\n\n",
			expected: "a\nb",
			passed:   true,
		},
		{
			name:     "information separators trimmed",
			actual:   "a\x1c",
			expected: "\x1fa",
			passed:   true,
		},
		{
			name:     "inner whitespace significant",
			actual:   "a|1\nb|2",
			expected: "a|1\nb |2",
			div:      &checker.Divergence{Line: 2, Actual: "b|2", Expected: "b |2"},
		},
		{
			name:     "differing line",
			actual:   "a\nb",
			expected: "a\nc",
			div:      &checker.Divergence{Line: 2, Actual: "b", Expected: "c"},
		},
		{
			name:     "actual has extra lines",
			actual:   "a\nb",
			expected: "a",
			div:      &checker.Divergence{Line: 2, Actual: "b", ExpectedMissing: true},
		},
		{
			name:     "actual is short",
			actual:   "a",
			expected: "a\nb",
			div:      &checker.Divergence{Line: 2, Expected: "b", ActualMissing: true},
		},
		{
			name:     "empty output",
			actual:   "",
			expected: "Fred Astaire",
			div:      &checker.Divergence{Line: 1, Expected: "Fred Astaire"},
		},
		{
			name:     "row order differs without sort",
			actual:   "b\na",
			expected: "a\nb",
			div:      &checker.Divergence{Line: 1, Actual: "b", Expected: "a"},
		},
		{
			name:     "row order ignored with sort",
			actual:   "b\na",
			expected: "a\nb",
			sorted:   true,
			passed:   true,
		},
		{
			name:     "sort compares tokens, not lines",
			actual:   "Lauren Bacall\nFred Astaire",
			expected: "Astaire Bacall\nFred Lauren",
			sorted:   true,
			passed:   true,
		},
		{
			name:     "sort still fails on different tokens",
			actual:   "b\na",
			expected: "a\nc",
			sorted:   true,
			div:      &checker.Divergence{Line: 1, Actual: "b", Expected: "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := checker.Compare(tt.actual, tt.expected, tt.sorted)

			if res.Passed != tt.passed {
				t.Errorf("Passed = %v, want %v", res.Passed, tt.passed)
			}
			if res.Sorted != tt.sorted {
				t.Errorf("Sorted = %v, want %v", res.Sorted, tt.sorted)
			}
			if diff := cmp.Diff(tt.div, res.Divergence); diff != "" {
				t.Errorf("Divergence mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFirstDivergence_PadsWithEmptyLines(t *testing.T) {
	if _, ok := checker.FirstDivergence("a\n", "a"); ok {
		t.Error("a trailing empty line should compare equal to a missing one")
	}
}

func TestDivergence_String(t *testing.T) {
	tests := []struct {
		d    checker.Divergence
		want string
	}{
		{checker.Divergence{Actual: "b", Expected: "c"}, "b << >> c"},
		{checker.Divergence{Actual: "b", ExpectedMissing: true}, `b << >> ""`},
		{checker.Divergence{Expected: "b", ActualMissing: true}, `"" << >> b`},
		{checker.Divergence{Actual: "", Expected: "x"}, `"" << >> x`},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"":                  "",
		"b a\nc":            "a\nb\nc",
		"  z\t y \n\n x  ":  "x\ny\nz",
		"Bardot|1934\nAa|1": "Aa|1\nBardot|1934",
		"b\nB\na":           "B\na\nb",
		"b\x1fa":            "a\nb",
		"c\x1cb\x1da\x1e":   "a\nb\nc",
		"y\u00a0x\u2028w":   "w\nx\ny",
	}
	for in, want := range tests {
		if got := checker.Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFirstDivergence(t *testing.T) {
	tests := []struct {
		name     string
		actual   string
		expected string
		want     checker.Divergence
		found    bool
	}{
		{"equal", "x\ny", "x\ny", checker.Divergence{}, false},
		{"first line", "x", "y", checker.Divergence{Line: 1, Actual: "x", Expected: "y"}, true},
		{"third line", "1\n2\n3", "1\n2\n4", checker.Divergence{Line: 3, Actual: "3", Expected: "4"}, true},
		{"expected runs out", "1\n2\n3", "1", checker.Divergence{Line: 2, Actual: "2", ExpectedMissing: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := checker.FirstDivergence(tt.actual, tt.expected)
			if found != tt.found {
				t.Fatalf("found = %v, want %v", found, tt.found)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("FirstDivergence() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
