package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/hlop3z/sqlcheck/internal/alerr"
	"github.com/hlop3z/sqlcheck/internal/checker"
	"github.com/hlop3z/sqlcheck/internal/cli"
	"github.com/hlop3z/sqlcheck/internal/fixture"
)

// submissionStatus pairs a submission with the presence of its reference.
type submissionStatus struct {
	Name      string `json:"name"`
	Reference bool   `json:"reference"`
}

// inspectCmd shows the database fixture and the submissions in the base directory.
func inspectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Show the database fixture and available submissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			layout := s.cfg.Layout()

			summary, err := fixture.Inspect(cmd.Context(), layout.DatabasePath())
			if err != nil {
				return err
			}

			subs, err := submissions(layout)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if opts.jsonOutput {
				return outputJSON(w, map[string]any{
					"database":    summary,
					"submissions": subs,
				})
			}

			printSummary(w, summary)
			printSubmissions(w, subs)
			return nil
		},
	}
}

func submissions(layout checker.Layout) ([]submissionStatus, error) {
	names, err := layout.Submissions()
	if err != nil {
		return nil, err
	}

	subs := make([]submissionStatus, 0, len(names))
	for _, name := range names {
		_, statErr := os.Stat(layout.ReferencePath(name))
		subs = append(subs, submissionStatus{Name: name, Reference: statErr == nil})
	}
	return subs, nil
}

func printSummary(w io.Writer, summary *fixture.Summary) {
	fmt.Fprintln(w, cli.FormatKeyValue("database", cli.FilePath(summary.Path)))
	fmt.Fprintln(w, cli.FormatKeyValue("size", humanize.IBytes(uint64(summary.Size))))
	fmt.Fprintln(w, cli.FormatKeyValue("tables", cli.FormatCount(len(summary.Tables), "table", "tables")))
	fmt.Fprintln(w)

	if len(summary.Tables) == 0 {
		fmt.Fprintln(w, cli.Dim("no tables"))
		fmt.Fprintln(w)
		return
	}

	table := cli.NewTable("TABLE", "ROWS")
	for _, t := range summary.Tables {
		table.AddRow(t.Name, humanize.Comma(t.Rows))
	}
	table.AddRow(cli.Header("total"), humanize.Comma(summary.TotalRows()))
	fmt.Fprintln(w, table.String())
}

func printSubmissions(w io.Writer, subs []submissionStatus) {
	if len(subs) == 0 {
		fmt.Fprintln(w, cli.Dim("no submissions"))
		return
	}

	table := cli.NewTable("SUBMISSION", "REFERENCE")
	missing := 0
	for _, s := range subs {
		status := cli.Passed("found")
		if !s.Reference {
			status = cli.Failed("missing")
			missing++
		}
		table.AddRow(s.Name, status)
	}
	fmt.Fprintln(w, table.String())

	if missing > 0 {
		fmt.Fprint(w, cli.FormatWarning(
			cli.FormatCount(missing, "submission", "submissions")+" without a reference answer",
			"checking them fails with "+string(alerr.ErrReferenceNotFound),
		))
	}
}
