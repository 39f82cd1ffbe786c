// Package formatter renders scan and batch results for the command line,
// either as JSON for automation or as text and tables for people.
package formatter

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/alevsk/argocd-migrate/internal/scanner"
	"github.com/alevsk/argocd-migrate/internal/types"
)

// FormatScan renders a scan result. JSON output is a single line array of
// paths; human output depends on verbosity.
func FormatScan(result *scanner.Result, t Type, v Verbosity) (string, error) {
	if t == TypeJSON {
		bytes, err := json.Marshal(result.JSONArray())
		if err != nil {
			return "", fmt.Errorf("error formatting as JSON: %w", err)
		}
		return string(bytes) + "\n", nil
	}

	switch v {
	case VerbosityQuiet:
		return "", nil
	case VerbosityVerbose:
		if result.Count() == 0 {
			return "Found 0 YAML files\n", nil
		}
		return scanTable(result).Render() + "\n", nil
	default:
		return fmt.Sprintf("Found %d YAML files\n", result.Count()), nil
	}
}

// BatchReport is the machine readable form of a batch run
type BatchReport struct {
	Success bool                `json:"success"`
	Summary BatchReportSummary  `json:"summary"`
	Results []types.ParseResult `json:"results"`
}

// BatchReportSummary carries the counts of a batch run
type BatchReportSummary struct {
	Total       int     `json:"total"`
	Successful  int     `json:"successful"`
	Failed      int     `json:"failed"`
	Skipped     int     `json:"skipped"`
	SuccessRate float64 `json:"success_rate"`
}

// NewBatchReport builds the JSON report for summary
func NewBatchReport(summary *types.BatchSummary) *BatchReport {
	results := make([]types.ParseResult, 0, len(summary.Results))
	for _, r := range summary.Results {
		if r.Errors == nil {
			r.Errors = []types.ValidationError{}
		}
		results = append(results, r)
	}

	return &BatchReport{
		Success: summary.Failed == 0,
		Summary: BatchReportSummary{
			Total:       summary.Total,
			Successful:  summary.Successful,
			Failed:      summary.Failed,
			Skipped:     summary.Skipped,
			SuccessRate: math.Round(summary.SuccessRate()*10) / 10,
		},
		Results: results,
	}
}

// FormatBatchJSON renders summary as indented JSON
func FormatBatchJSON(summary *types.BatchSummary) (string, error) {
	bytes, err := json.MarshalIndent(NewBatchReport(summary), "", "  ")
	if err != nil {
		return "", fmt.Errorf("error formatting as JSON: %w", err)
	}
	return string(bytes) + "\n", nil
}
