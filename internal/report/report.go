// Package report prints the run summary to the terminal.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gitglance/gitglance/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"
)

var (
	addColor = color.New(color.FgGreen) // added lines
	delColor = color.New(color.FgRed)   // deleted lines
)

// PrintSummary renders the published metric set as a two-column table
// sized to the terminal.
func PrintSummary(w io.Writer, summary schema.Summary, useColors bool, width int) error {
	locAdd := "+" + humanize.Comma(int64(summary.Additions))
	locDel := "-" + humanize.Comma(int64(summary.Deletions))
	if useColors {
		locAdd = addColor.Sprint(locAdd)
		locDel = delColor.Sprint(locDel)
	}

	maxValue := width - valueReserve
	rows := [][]string{
		{"Age", truncate(summary.Age, maxValue)},
		{"Stars", humanize.Comma(int64(summary.Stars))},
		{"Repositories", humanize.Comma(int64(summary.Repos))},
		{"Commits", humanize.Comma(int64(summary.Commits))},
		{"Lines of code", humanize.Comma(int64(summary.NetLOC))},
		{"Lines added", locAdd},
		{"Lines deleted", locDel},
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Value"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// valueReserve is the table overhead around the value column: the
// metric column, borders and padding.
const valueReserve = 24

// truncate shortens s to max runes with an ellipsis. Only the age
// string can realistically overflow.
func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// PrintCacheSummary renders the metrics derivable from the snapshot
// alone, for offline use.
func PrintCacheSummary(w io.Writer, repos, commits, net, adds, dels int) error {
	rows := [][]string{
		{"Cached repositories", humanize.Comma(int64(repos))},
		{"Commits", humanize.Comma(int64(commits))},
		{"Lines of code", humanize.Comma(int64(net))},
		{"Lines added", "+" + humanize.Comma(int64(adds))},
		{"Lines deleted", "-" + humanize.Comma(int64(dels))},
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Value"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// TerminalWidth returns the override when set, the detected terminal
// width otherwise, and a conservative default when detection fails
// (narrow terminals, CI).
func TerminalWidth(override int) int {
	if override > 0 {
		return override
	}
	detected, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detected <= 0 {
		return 80
	}
	return detected
}

// Progress prints a one-line progress note for the update run.
func Progress(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format+"\n", args...)
}
