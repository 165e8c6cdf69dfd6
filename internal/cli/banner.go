package cli

import "strings"

// Banner lines are fixed width so pass and fail render the same shape.
var (
	passBanner = []string{
		"==============",
		"==== OK! =====",
		"==============",
	}
	failBanner = []string{
		"==============",
		"=== Fail :(===",
		"==============",
	}
)

// MismatchMessage follows the fail banner.
const MismatchMessage = "Query result does not match our solution."

// PassBanner renders the success banner.
func PassBanner() string {
	return renderBanner(passBanner, Passed)
}

// FailBanner renders the failure banner followed by MismatchMessage.
func FailBanner() string {
	return renderBanner(failBanner, Failed) + MismatchMessage + "\n"
}

func renderBanner(lines []string, style func(string) string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, line := range lines {
		b.WriteString("    ")
		b.WriteString(style(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}
