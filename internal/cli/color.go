package cli

import "github.com/charmbracelet/lipgloss"

// ANSI 10 and 9 are the bright green/red (SGR 92/91) of the classic grading banner.
var (
	// Message type styles
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleNote    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	styleHelp    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)

	// Error code style (e.g., E2001)
	styleCode = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	stylePipe     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	styleFilePath = lipgloss.NewStyle().Bold(true)

	// Banner styles
	stylePass = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleFail = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	// Table styles
	styleHeader = lipgloss.NewStyle().Bold(true)
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// render applies style when colors are enabled and returns s unchanged otherwise.
func render(style lipgloss.Style, s string) string {
	if !EnableColors() {
		return s
	}
	return style.Render(s)
}

// Error returns text styled as an error label.
func Error(s string) string { return render(styleError, s) }

// Warning returns text styled as a warning label.
func Warning(s string) string { return render(styleWarning, s) }

// Note returns text styled as a note label.
func Note(s string) string { return render(styleNote, s) }

// Help returns text styled as a help label.
func Help(s string) string { return render(styleHelp, s) }

// Code returns text styled as an error code.
func Code(s string) string { return render(styleCode, s) }

// FilePath returns text styled as a file path.
func FilePath(s string) string { return render(styleFilePath, s) }

// Passed returns text in the pass banner color.
func Passed(s string) string { return render(stylePass, s) }

// Failed returns text in the fail banner color.
func Failed(s string) string { return render(styleFail, s) }

// Header returns text styled as a table header.
func Header(s string) string { return render(styleHeader, s) }

// Dim returns text styled as dim/muted.
func Dim(s string) string { return render(styleDim, s) }

// Pipe returns a pipe character styled for diagnostic gutters.
func Pipe() string { return render(stylePipe, "|") }

// Arrow returns the "-->" location marker.
func Arrow() string { return render(stylePipe, "-->") }
