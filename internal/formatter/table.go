package formatter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alevsk/argocd-migrate/internal/scanner"
	"github.com/alevsk/argocd-migrate/internal/types"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// newTable returns a table writer with the house style
func newTable(title string) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(nil) // Don't write to stdout directly
	tw.SetStyle(table.StyleLight)
	tw.Style().Options.SeparateColumns = true
	tw.SetTitle(title)
	return tw
}

// scanTable lists discovered files
func scanTable(result *scanner.Result) table.Writer {
	tw := newTable(fmt.Sprintf("Found %d YAML files", result.Count()))
	tw.AppendHeader(table.Row{"FILE PATH"})
	for _, f := range result.Files {
		tw.AppendRow(table.Row{f})
	}
	return tw
}

// failedTable lists every error of every failed file, one row per error
func failedTable(summary *types.BatchSummary) table.Writer {
	tw := newTable("FAILED FILES")
	tw.AppendHeader(table.Row{"FILE", "FIELD", "ERROR"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "FILE", AutoMerge: true},
		{Name: "ERROR", WidthMax: 80},
	})

	for _, r := range summary.Results {
		if r.Status != types.StatusFailed {
			continue
		}
		for _, e := range r.Errors {
			field := ""
			if e.Field != nil {
				field = *e.Field
			}
			tw.AppendRow(table.Row{r.FilePath, field, e.Message})
		}
	}
	return tw
}

// FormatBatchSummary renders the human readable summary of a batch run.
// When showDetails is set, a table of failures follows the counts.
func FormatBatchSummary(summary *types.BatchSummary, showDetails bool) string {
	var b strings.Builder

	b.WriteString("\n" + text.Bold.Sprint("Batch Summary:") + "\n")
	fmt.Fprintf(&b, "  Total: %d\n", summary.Total)
	if summary.Successful > 0 {
		b.WriteString("  " + text.FgGreen.Sprintf("Successful: %d", summary.Successful) + "\n")
	}
	if summary.Failed > 0 {
		b.WriteString("  " + text.FgRed.Sprintf("Failed: %d", summary.Failed) + "\n")
	}
	if summary.Skipped > 0 {
		b.WriteString("  " + text.FgYellow.Sprintf("Skipped: %d", summary.Skipped) + "\n")
	}

	rate := summary.SuccessRate()
	b.WriteString("  " + rateColor(rate).Sprintf("Success Rate: %.1f%%", rate) + "\n")

	if showDetails && summary.Failed > 0 {
		b.WriteString("\n" + failedTable(summary).Render() + "\n")
	}
	return b.String()
}

func rateColor(rate float64) text.Color {
	switch {
	case rate >= 80:
		return text.FgGreen
	case rate >= 50:
		return text.FgYellow
	default:
		return text.FgRed
	}
}

// FormatResultLine renders the one line status of a processed file
func FormatResultLine(r types.ParseResult) string {
	name := filepath.Base(r.FilePath)
	switch r.Status {
	case types.StatusSuccess:
		app := ""
		if r.ApplicationName != nil {
			app = *r.ApplicationName
		}
		return fmt.Sprintf("%s %s: %s", text.FgGreen.Sprint("✓"), name, app)
	case types.StatusFailed:
		msg := "Unknown error"
		if len(r.Errors) > 0 {
			msg = r.Errors[0].Message
		}
		return fmt.Sprintf("%s %s: %s", text.FgRed.Sprint("✗"), name, msg)
	default:
		return fmt.Sprintf("%s %s: Skipped", text.FgYellow.Sprint("⊘"), name)
	}
}

// FormatErrors renders the error list of a single failed file
func FormatErrors(r types.ParseResult) string {
	var b strings.Builder
	b.WriteString(text.FgRed.Sprint("Errors:") + "\n")
	for _, e := range r.Errors {
		if e.Field != nil {
			fmt.Fprintf(&b, "  • %s: %s\n", *e.Field, e.Message)
		} else {
			fmt.Fprintf(&b, "  • %s\n", e.Message)
		}
	}
	return b.String()
}
