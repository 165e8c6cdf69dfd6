package alerr

import (
	"errors"
	"strings"
	"testing"
)

// -----------------------------------------------------------------------------
// Constructor Tests
// -----------------------------------------------------------------------------

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    Code
		message string
	}{
		{
			name:    "argument error",
			code:    ErrMissingArgument,
			message: "missing test name",
		},
		{
			name:    "submission error",
			code:    ErrSubmissionNotFound,
			message: "submission not found",
		},
		{
			name:    "reference error",
			code:    ErrReferenceNotFound,
			message: "reference answer not found",
		},
		{
			name:    "engine error",
			code:    ErrEngineFailed,
			message: "engine exited with status 1",
		},
		{
			name:    "config error",
			code:    ErrConfigInvalid,
			message: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message)
			if err == nil {
				t.Fatal("expected non-nil error")
			}
			if err.GetCode() != tt.code {
				t.Errorf("code = %v, want %v", err.GetCode(), tt.code)
			}
			if err.GetMessage() != tt.message {
				t.Errorf("message = %v, want %v", err.GetMessage(), tt.message)
			}
			if err.GetCause() != nil {
				t.Error("expected nil cause for New()")
			}
			if err.GetStack() == "" {
				t.Error("expected stack trace to be captured")
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(ErrTooManyArguments, "expected 1 argument, got %d", 3)
	if err.GetMessage() != "expected 1 argument, got 3" {
		t.Errorf("message = %q", err.GetMessage())
	}
}

func TestWrap(t *testing.T) {
	t.Run("wrap existing error", func(t *testing.T) {
		cause := errors.New("exit status 1")
		err := Wrap(ErrEngineFailed, cause, "engine failed")

		if err.GetCode() != ErrEngineFailed {
			t.Errorf("code = %v, want %v", err.GetCode(), ErrEngineFailed)
		}
		if err.GetCause() != cause {
			t.Error("cause should be the wrapped error")
		}
		if err.GetMessage() != "engine failed" {
			t.Errorf("message = %v, want %v", err.GetMessage(), "engine failed")
		}
	})

	t.Run("wrap nil error behaves like New", func(t *testing.T) {
		err := Wrap(ErrDatabaseInvalid, nil, "database error")

		if err.GetCode() != ErrDatabaseInvalid {
			t.Errorf("code = %v, want %v", err.GetCode(), ErrDatabaseInvalid)
		}
		if err.GetCause() != nil {
			t.Error("cause should be nil when wrapping nil")
		}
	})
}

func TestWrapf(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrapf(ErrReferenceNotFound, cause, "failed to read %s for test %q", "ref/q3.ref", "q3")

	expected := `failed to read ref/q3.ref for test "q3"`
	if err.GetMessage() != expected {
		t.Errorf("message = %v, want %v", err.GetMessage(), expected)
	}
	if err.GetCause() != cause {
		t.Error("cause should be preserved")
	}
}

// -----------------------------------------------------------------------------
// Context Builder Tests
// -----------------------------------------------------------------------------

func TestWith(t *testing.T) {
	err := New(ErrEngineFailed, "engine failed").
		With("exit_code", 1).
		With("stderr", "Parse error near line 1").
		With("sorted", true)

	ctx := err.GetContext()
	if ctx["exit_code"] != 1 {
		t.Errorf("exit_code = %v, want %v", ctx["exit_code"], 1)
	}
	if ctx["stderr"] != "Parse error near line 1" {
		t.Errorf("stderr = %v", ctx["stderr"])
	}
	if ctx["sorted"] != true {
		t.Errorf("sorted = %v, want %v", ctx["sorted"], true)
	}
}

func TestWithTest(t *testing.T) {
	err := New(ErrReferenceNotFound, "reference answer not found").
		WithTest("q3")

	ctx := err.GetContext()
	if ctx["test"] != "q3" {
		t.Errorf("test = %v, want %v", ctx["test"], "q3")
	}
}

func TestWithPath(t *testing.T) {
	err := New(ErrSubmissionNotFound, "submission not found").
		WithPath("/srv/grading/q3.sql")

	ctx := err.GetContext()
	if ctx["path"] != "/srv/grading/q3.sql" {
		t.Errorf("path = %v, want %v", ctx["path"], "/srv/grading/q3.sql")
	}
}

func TestWithEngine(t *testing.T) {
	err := New(ErrEngineNotFound, "engine not found").
		WithEngine("sqlite3")

	ctx := err.GetContext()
	if ctx["engine"] != "sqlite3" {
		t.Errorf("engine = %v, want %v", ctx["engine"], "sqlite3")
	}
}

func TestWithFile(t *testing.T) {
	t.Run("with line number", func(t *testing.T) {
		err := New(ErrConfigInvalid, "bad value").
			WithFile("sqlcheck.yaml", 4)

		ctx := err.GetContext()
		if ctx["file"] != "sqlcheck.yaml" {
			t.Errorf("file = %v, want %v", ctx["file"], "sqlcheck.yaml")
		}
		if ctx["line"] != 4 {
			t.Errorf("line = %v, want %v", ctx["line"], 4)
		}
	})

	t.Run("without line number", func(t *testing.T) {
		err := New(ErrConfigInvalid, "bad file").
			WithFile("sqlcheck.yaml", 0)

		ctx := err.GetContext()
		if ctx["file"] != "sqlcheck.yaml" {
			t.Errorf("file = %v, want %v", ctx["file"], "sqlcheck.yaml")
		}
		if _, exists := ctx["line"]; exists {
			t.Error("line should not be set when 0")
		}
	})
}

func TestWithNoteAndHelp(t *testing.T) {
	err := New(ErrSubmissionNotFound, "submission not found").
		WithNote("first note").
		WithNote("second note").
		WithHelp("did you mean 'q3'?")

	if got := err.Notes(); len(got) != 2 || got[0] != "first note" || got[1] != "second note" {
		t.Errorf("Notes() = %v, want [first note second note]", got)
	}
	if got := err.Helps(); len(got) != 1 || got[0] != "did you mean 'q3'?" {
		t.Errorf("Helps() = %v, want [did you mean 'q3'?]", got)
	}
}

// -----------------------------------------------------------------------------
// Error Output Format Tests
// -----------------------------------------------------------------------------

func TestErrorFormat(t *testing.T) {
	t.Run("basic error format", func(t *testing.T) {
		err := New(ErrReferenceNotFound, "reference answer not found")
		errStr := err.Error()

		if !strings.HasPrefix(errStr, "[E2002]") {
			t.Errorf("error should start with code, got: %s", errStr)
		}
		if !strings.Contains(errStr, "reference answer not found") {
			t.Errorf("error should contain message, got: %s", errStr)
		}
	})

	t.Run("error with context", func(t *testing.T) {
		err := New(ErrReferenceNotFound, "reference answer not found").
			WithTest("q3").
			WithPath("ref/q3.ref")

		errStr := err.Error()

		if !strings.Contains(errStr, "test: q3") {
			t.Errorf("error should contain test context, got: %s", errStr)
		}
		if !strings.Contains(errStr, "path: ref/q3.ref") {
			t.Errorf("error should contain path context, got: %s", errStr)
		}
	})

	t.Run("error with cause", func(t *testing.T) {
		cause := errors.New("exit status 1")
		err := Wrap(ErrEngineFailed, cause, "engine failed")

		errStr := err.Error()
		if !strings.Contains(errStr, "cause: exit status 1") {
			t.Errorf("error should contain cause, got: %s", errStr)
		}
	})

	t.Run("context keys are sorted", func(t *testing.T) {
		err := New(ErrEngineFailed, "test").
			With("zebra", 1).
			With("alpha", 2).
			With("middle", 3)

		errStr := err.Error()
		alphaIdx := strings.Index(errStr, "alpha:")
		middleIdx := strings.Index(errStr, "middle:")
		zebraIdx := strings.Index(errStr, "zebra:")

		if alphaIdx == -1 || middleIdx == -1 || zebraIdx == -1 {
			t.Fatalf("expected all keys to be present, got: %s", errStr)
		}
		if !(alphaIdx < middleIdx && middleIdx < zebraIdx) {
			t.Errorf("context keys should be sorted alphabetically, got: %s", errStr)
		}
	})
}

// -----------------------------------------------------------------------------
// Is() and errors.Is() Tests
// -----------------------------------------------------------------------------

func TestIs(t *testing.T) {
	t.Run("same code matches", func(t *testing.T) {
		err1 := New(ErrSubmissionNotFound, "first error")
		err2 := New(ErrSubmissionNotFound, "second error with same code")

		if !err1.Is(err2) {
			t.Error("errors with same code should match")
		}
	})

	t.Run("different codes do not match", func(t *testing.T) {
		err1 := New(ErrSubmissionNotFound, "submission error")
		err2 := New(ErrEngineFailed, "engine error")

		if err1.Is(err2) {
			t.Error("errors with different codes should not match")
		}
	})

	t.Run("nil target does not match", func(t *testing.T) {
		err := New(ErrSubmissionNotFound, "error")
		if err.Is(nil) {
			t.Error("error should not match nil")
		}
	})

	t.Run("non-alerr error does not match", func(t *testing.T) {
		err := New(ErrSubmissionNotFound, "sqlcheck error")
		stdErr := errors.New("standard error")

		if err.Is(stdErr) {
			t.Error("sqlcheck error should not match standard error")
		}
	})
}

func TestErrorsIsCompatibility(t *testing.T) {
	t.Run("errors.Is finds wrapped error", func(t *testing.T) {
		cause := errors.New("original error")
		wrapped := Wrap(ErrEngineFailed, cause, "wrapped")

		if !errors.Is(wrapped, cause) {
			t.Error("errors.Is should find the wrapped cause")
		}
	})

	t.Run("errors.Is works with code matching", func(t *testing.T) {
		err1 := New(ErrDatabaseNotFound, "error 1")
		err2 := New(ErrDatabaseNotFound, "error 2")

		if !errors.Is(err1, err2) {
			t.Error("errors.Is should match errors with same code")
		}
	})
}

// -----------------------------------------------------------------------------
// GetErrorCode Tests
// -----------------------------------------------------------------------------

func TestGetErrorCode(t *testing.T) {
	t.Run("extract code from alerr.Error", func(t *testing.T) {
		err := New(ErrTooManyArguments, "too many")
		code := GetErrorCode(err)

		if code != ErrTooManyArguments {
			t.Errorf("code = %v, want %v", code, ErrTooManyArguments)
		}
	})

	t.Run("extract code from wrapped error chain", func(t *testing.T) {
		inner := New(ErrEngineNotFound, "inner")
		outer := Wrap(ErrEngineFailed, inner, "outer")

		// GetErrorCode should find the outermost alerr code
		code := GetErrorCode(outer)
		if code != ErrEngineFailed {
			t.Errorf("code = %v, want %v", code, ErrEngineFailed)
		}
	})

	t.Run("return empty for nil error", func(t *testing.T) {
		code := GetErrorCode(nil)
		if code != "" {
			t.Errorf("code = %v, want empty string", code)
		}
	})

	t.Run("return empty for non-alerr error", func(t *testing.T) {
		stdErr := errors.New("standard error")
		code := GetErrorCode(stdErr)

		if code != "" {
			t.Errorf("code = %v, want empty string", code)
		}
	})
}

func TestIsCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{
			name: "matching code",
			err:  New(ErrSubmissionNotFound, "test"),
			code: ErrSubmissionNotFound,
			want: true,
		},
		{
			name: "non-matching code",
			err:  New(ErrSubmissionNotFound, "test"),
			code: ErrEngineFailed,
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			code: ErrSubmissionNotFound,
			want: false,
		},
		{
			name: "standard error",
			err:  errors.New("standard"),
			code: ErrSubmissionNotFound,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Is(tt.err, tt.code)
			if got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "alerr error has code",
			err:  New(ErrSubmissionNotFound, "test"),
			want: true,
		},
		{
			name: "standard error has no code",
			err:  errors.New("standard"),
			want: false,
		},
		{
			name: "nil error has no code",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HasCode(tt.err)
			if got != tt.want {
				t.Errorf("HasCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// Error Code Categories Tests
// -----------------------------------------------------------------------------

func TestErrorCodeCategories(t *testing.T) {
	// Verify error codes follow the expected format E{category}xxx
	argumentErrors := []Code{ErrMissingArgument, ErrTooManyArguments}
	for _, code := range argumentErrors {
		if !strings.HasPrefix(string(code), "E1") {
			t.Errorf("argument error %v should start with E1", code)
		}
	}

	notFoundErrors := []Code{ErrSubmissionNotFound, ErrReferenceNotFound, ErrDatabaseNotFound, ErrDatabaseInvalid}
	for _, code := range notFoundErrors {
		if !strings.HasPrefix(string(code), "E2") {
			t.Errorf("not-found error %v should start with E2", code)
		}
	}

	executionErrors := []Code{ErrEngineNotFound, ErrEngineFailed}
	for _, code := range executionErrors {
		if !strings.HasPrefix(string(code), "E3") {
			t.Errorf("execution error %v should start with E3", code)
		}
	}

	if !strings.HasPrefix(string(ErrConfigInvalid), "E4") {
		t.Errorf("config error %v should start with E4", ErrConfigInvalid)
	}
}

func TestCategoryHelpers(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantNotFound  bool
		wantExecution bool
	}{
		{"submission", New(ErrSubmissionNotFound, "x"), true, false},
		{"reference", New(ErrReferenceNotFound, "x"), true, false},
		{"database", New(ErrDatabaseNotFound, "x"), true, false},
		{"engine missing", New(ErrEngineNotFound, "x"), false, true},
		{"engine failed", New(ErrEngineFailed, "x"), false, true},
		{"argument", New(ErrMissingArgument, "x"), false, false},
		{"plain error", errors.New("x"), false, false},
		{"nil", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.wantNotFound {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.wantNotFound)
			}
			if got := IsExecution(tt.err); got != tt.wantExecution {
				t.Errorf("IsExecution() = %v, want %v", got, tt.wantExecution)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// Method Chaining Tests
// -----------------------------------------------------------------------------

func TestMethodChaining(t *testing.T) {
	// Verify that all context methods return the error for chaining
	err := New(ErrEngineFailed, "test").
		With("key", "value").
		WithTest("q1").
		WithPath("q1.sql").
		WithEngine("sqlite3").
		WithFile("sqlcheck.yaml", 10)

	ctx := err.GetContext()
	if len(ctx) != 6 { // key, test, path, engine, file, line
		t.Errorf("expected 6 context entries, got %d", len(ctx))
	}
}

// -----------------------------------------------------------------------------
// Unwrap Tests
// -----------------------------------------------------------------------------

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrEngineFailed, cause, "wrapper")

	unwrapped := err.Unwrap()
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
}
