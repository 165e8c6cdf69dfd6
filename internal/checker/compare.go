package checker

import (
	"sort"
	"strings"
	"unicode"
)

// Separator sits between the two sides of a divergence line.
const Separator = " << >> "

// emptyMarker stands in for an empty or missing line.
const emptyMarker = `""`

// Result is the outcome of grading one submission.
type Result struct {
	Name       string      `json:"name"`
	Passed     bool        `json:"passed"`
	Sorted     bool        `json:"sorted"`
	Actual     string      `json:"-"`
	Expected   string      `json:"-"`
	Divergence *Divergence `json:"divergence,omitempty"`
}

// Divergence is the first line at which actual and expected output differ.
// Line is 1-based. A side that ran out of lines is reported as missing and
// compares as an empty line.
type Divergence struct {
	Line            int    `json:"line"`
	Actual          string `json:"actual"`
	Expected        string `json:"expected"`
	ActualMissing   bool   `json:"actual_missing,omitempty"`
	ExpectedMissing bool   `json:"expected_missing,omitempty"`
}

// String renders the divergence as "<actual> << >> <expected>".
func (d Divergence) String() string {
	return marker(d.Actual) + Separator + marker(d.Expected)
}

func marker(line string) string {
	if line == "" {
		return emptyMarker
	}
	return line
}

// Normalize splits s on any run of whitespace, sorts the tokens and joins
// them with newlines. The split is by token, not by line: "b a\nc" becomes
// "a\nb\nc".
func Normalize(s string) string {
	tokens := strings.FieldsFunc(s, isSpace)
	sort.Strings(tokens)
	return strings.Join(tokens, "\n")
}

// isSpace reports whether r separates tokens. On top of unicode.IsSpace it
// counts the ASCII information separators U+001C..U+001F, which the engine's
// output and reference files may contain.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// Compare grades actual output against expected output. Both sides are
// trimmed of surrounding whitespace; when sorted is set they are also
// token-normalized before the equality test. The divergence of a failing
// result is always located on the trimmed, unsorted text.
func Compare(actual, expected string, sorted bool) *Result {
	actual = strings.TrimFunc(actual, isSpace)
	expected = strings.TrimFunc(expected, isSpace)

	res := &Result{
		Sorted:   sorted,
		Actual:   actual,
		Expected: expected,
	}

	a, e := actual, expected
	if sorted {
		a, e = Normalize(a), Normalize(e)
	}
	res.Passed = a == e

	if !res.Passed {
		if d, ok := FirstDivergence(actual, expected); ok {
			res.Divergence = &d
		}
	}
	return res
}

// FirstDivergence walks both texts line by line, padding the shorter one with
// empty lines, and returns the first index at which they differ. It reports
// false when every padded line matches.
func FirstDivergence(actual, expected string) (Divergence, bool) {
	a := strings.Split(actual, "\n")
	e := strings.Split(expected, "\n")

	for i := range max(len(a), len(e)) {
		av, aok := lineAt(a, i)
		ev, eok := lineAt(e, i)
		if av == ev {
			continue
		}
		return Divergence{
			Line:            i + 1,
			Actual:          av,
			Expected:        ev,
			ActualMissing:   !aok,
			ExpectedMissing: !eok,
		}, true
	}
	return Divergence{}, false
}

func lineAt(lines []string, i int) (string, bool) {
	if i < len(lines) {
		return lines[i], true
	}
	return "", false
}
