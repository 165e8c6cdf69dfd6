package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hlop3z/sqlcheck/internal/checker"
	"github.com/hlop3z/sqlcheck/internal/cli"
)

// runCheck grades one submission and prints the verdict.
func runCheck(cmd *cobra.Command, opts *rootOptions, arg string) error {
	s, err := opts.setup(cmd)
	if err != nil {
		return err
	}

	res, err := s.check(cmd, arg)
	if err != nil {
		return err
	}

	if err := printResult(cmd.OutOrStdout(), res, opts); err != nil {
		return err
	}

	if !res.Passed && s.cfg.FailExit {
		return errMismatch
	}
	return nil
}

// check resolves arg to a test name and grades it.
func (s *session) check(cmd *cobra.Command, arg string) (*checker.Result, error) {
	name := checker.ResolveTestName(arg)
	return s.checker.Check(cmd.Context(), name, checker.Options{Sort: s.cfg.Sort})
}

// jsonResult is the --json shape of a check.
type jsonResult struct {
	*checker.Result
	Diff string `json:"diff,omitempty"`
}

// printResult writes the banner and, on mismatch, the first divergent line.
func printResult(w io.Writer, res *checker.Result, opts *rootOptions) error {
	var diff string
	if opts.diff && !res.Passed {
		diff = checker.UnifiedDiff(res.Name, res.Actual, res.Expected)
	}

	if opts.jsonOutput {
		return outputJSON(w, jsonResult{Result: res, Diff: diff})
	}

	if res.Passed {
		fmt.Fprint(w, cli.PassBanner())
		return nil
	}

	fmt.Fprint(w, cli.FailBanner())
	if res.Divergence != nil {
		fmt.Fprintln(w, res.Divergence.String())
	}
	if diff != "" {
		fmt.Fprintln(w)
		fmt.Fprint(w, diff)
	}
	return nil
}

// outputJSON writes v as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
