package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/hlop3z/sqlcheck/internal/alerr"
)

// FormatError formats an error for CLI display in Cargo/rustc style.
// If the error chain holds an *alerr.Error, its code, location and context are
// shown. Otherwise, it formats as a generic error.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var alerror *alerr.Error
	if errors.As(err, &alerror) {
		return formatCodedError(alerror)
	}

	return formatGenericError(err)
}

// WriteError writes err to cfg.Writer. In ModeJSON it is encoded as
// {"error": {...}}; otherwise it is rendered by FormatError, colored only when
// cfg is a terminal config. The global default is swapped for the duration of
// the call, so it is not safe for concurrent use.
func WriteError(cfg *Config, err error) error {
	if err == nil {
		return nil
	}
	if cfg.IsJSON() {
		enc := json.NewEncoder(cfg.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"error": newJSONError(err)})
	}

	prev := defaultCfg
	defaultCfg = cfg
	defer func() { defaultCfg = prev }()

	_, werr := io.WriteString(cfg.Writer, FormatError(err))
	return werr
}

// jsonError is the machine-readable form of an error.
type jsonError struct {
	Code    string         `json:"code,omitempty"`
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`
	Cause   string         `json:"cause,omitempty"`
}

func newJSONError(err error) jsonError {
	var alerror *alerr.Error
	if !errors.As(err, &alerror) {
		return jsonError{Message: err.Error()}
	}

	je := jsonError{
		Code:    string(alerror.GetCode()),
		Message: alerror.GetMessage(),
		Context: alerror.GetContext(),
	}
	if cause := alerror.GetCause(); cause != nil {
		je.Cause = cause.Error()
	}
	return je
}

// formatCodedError formats an *alerr.Error:
//
//	error[E2002]: reference answer not found
//	  --> /srv/grading/ref/q3.ref
//	   |
//	   | test: q3
//	help: did you mean 'q3_oldest'?
func formatCodedError(err *alerr.Error) string {
	var b strings.Builder

	ctx := err.GetContext()

	b.WriteString(Error("error"))
	b.WriteString("[")
	b.WriteString(Code(string(err.GetCode())))
	b.WriteString("]: ")
	b.WriteString(err.GetMessage())
	b.WriteString("\n")

	if loc := location(ctx); loc != "" {
		b.WriteString("  ")
		b.WriteString(Arrow())
		b.WriteString(" ")
		b.WriteString(FilePath(loc))
		b.WriteString("\n")
	}

	// Context details (excluding already shown items)
	excludeKeys := map[string]bool{
		"path": true, "file": true, "line": true,
		"notes": true, "helps": true,
	}

	var keys []string
	for k := range ctx {
		if !excludeKeys[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	if len(keys) > 0 {
		b.WriteString("   ")
		b.WriteString(Pipe())
		b.WriteString("\n")
		for _, k := range keys {
			b.WriteString("   ")
			b.WriteString(Pipe())
			b.WriteString(" ")
			b.WriteString(formatDetail(k, ctx[k]))
			b.WriteString("\n")
		}
	}

	for _, note := range err.Notes() {
		b.WriteString(Note("note"))
		b.WriteString(": ")
		b.WriteString(note)
		b.WriteString("\n")
	}

	for _, help := range err.Helps() {
		b.WriteString(Help("help"))
		b.WriteString(": ")
		b.WriteString(help)
		b.WriteString("\n")
	}

	if cause := err.GetCause(); cause != nil {
		b.WriteString("   ")
		b.WriteString(Pipe())
		b.WriteString("\n")
		b.WriteString(Note("cause"))
		b.WriteString(": ")
		b.WriteString(cause.Error())
		b.WriteString("\n")
	}

	return b.String()
}

// location picks the path to show after "-->". A config file location
// takes its line number along.
func location(ctx map[string]any) string {
	if file, _ := ctx["file"].(string); file != "" {
		if line, _ := ctx["line"].(int); line > 0 {
			return fmt.Sprintf("%s:%d", file, line)
		}
		return file
	}
	path, _ := ctx["path"].(string)
	return path
}

// formatDetail renders one context entry. Multi-line values such as engine
// stderr are indented under the gutter.
func formatDetail(key string, value any) string {
	s := strings.TrimRight(fmt.Sprintf("%v", value), "\n")
	if !strings.Contains(s, "\n") {
		return fmt.Sprintf("%s: %s", key, s)
	}
	gutter := "\n   " + Pipe() + "   "
	return key + ":" + gutter + strings.ReplaceAll(s, "\n", gutter)
}

// formatGenericError formats a non-alerr error.
func formatGenericError(err error) string {
	var b strings.Builder
	b.WriteString(Error("error"))
	b.WriteString(": ")
	b.WriteString(err.Error())
	b.WriteString("\n")
	return b.String()
}

// FormatWarning formats a warning message with optional notes.
func FormatWarning(msg string, notes ...string) string {
	var b strings.Builder
	b.WriteString(Warning("warning"))
	b.WriteString(": ")
	b.WriteString(msg)
	b.WriteString("\n")
	for _, note := range notes {
		b.WriteString(Note("note"))
		b.WriteString(": ")
		b.WriteString(note)
		b.WriteString("\n")
	}
	return b.String()
}
