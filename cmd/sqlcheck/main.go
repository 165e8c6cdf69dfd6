// Package main provides the CLI for sqlcheck, a grader for SQL homework.
// A submission is run through the sqlite3 shell against the course database
// and its output is compared with a reference answer.
//
// Usage:
//
//	sqlcheck q1_sample             # Grade q1_sample.sql
//	sqlcheck path/to/q1_sample.sql # Same, by file name
//	sqlcheck q1_sample --diff      # Also print a unified diff on mismatch
//	sqlcheck inspect               # Show the tables of the database fixture
//	sqlcheck watch q1_sample       # Re-grade on every save
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hlop3z/sqlcheck/internal/alerr"
	"github.com/hlop3z/sqlcheck/internal/cli"
)

// version is set via ldflags during build: -ldflags="-X main.version=v1.0.0"
var version = "dev"

// errMismatch is returned when a check fails and --fail-exit is set.
// It carries no message; the banner has already been printed.
var errMismatch = errors.New("query result mismatch")

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	baseDir    string
	configFile string
	engine     string
	sort       bool
	diff       bool
	jsonOutput bool
	failExit   bool
	verbose    bool

	stderr io.Writer
}

func newRootCmd(opts *rootOptions, stdout io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sqlcheck <test_name_or_path.sql>",
		Short: "Grade a SQL submission against its reference answer",
		Long: `sqlcheck runs <name>.sql through the database engine against the course
database and compares the output with the reference answer ref/<name>.ref.
Fixtures are looked up next to the sqlcheck binary unless --base-dir is set.`,
		Version:       version,
		Args:          exactlyOneTest,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args[0])
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(opts.stderr)

	opts.addFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		inspectCmd(opts),
		watchCmd(opts),
	)

	return rootCmd
}

// addFlags registers the global flags on fs.
func (o *rootOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.baseDir, "base-dir", "", "Directory holding the fixtures (default: directory of the executable)")
	fs.StringVarP(&o.configFile, "config", "c", "", "Path to config file (default: <base-dir>/"+defaultConfigFile+")")
	fs.StringVar(&o.engine, "engine", "", "Database engine binary (default: sqlite3)")
	fs.BoolVar(&o.sort, "sort", false, "Compare sorted whitespace-separated tokens instead of raw text")
	fs.BoolVar(&o.diff, "diff", false, "Print a unified diff on mismatch")
	fs.BoolVar(&o.jsonOutput, "json", false, "Output as JSON")
	fs.BoolVar(&o.failExit, "fail-exit", false, "Exit with status 1 when the result does not match")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Log diagnostics to stderr")
}

// errorConfig returns the output config errors are written with. It follows
// stderr rather than stdout, and --json switches errors to JSON as well.
func (o *rootOptions) errorConfig() *cli.Config {
	if o.jsonOutput {
		return cli.NewConfigWithMode(o.stderr, cli.ModeJSON)
	}
	return cli.DetectConfig(o.stderr)
}

// exactlyOneTest validates the positional test name argument.
func exactlyOneTest(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return alerr.New(alerr.ErrMissingArgument, "missing test name").
			WithHelp("usage: " + cmd.UseLine())
	case len(args) > 1:
		return alerr.Newf(alerr.ErrTooManyArguments, "expected one test name, got %d", len(args)).
			With("args", args).
			WithHelp("usage: " + cmd.UseLine())
	}
	return nil
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &rootOptions{stderr: stderr}
	rootCmd := newRootCmd(opts, stdout)
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errMismatch) {
			_ = cli.WriteError(opts.errorConfig(), err)
		}
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
