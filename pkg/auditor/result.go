package auditor

import (
	"fmt"

	"github.com/migranta/oraudit/pkg/types"
)

// AuditResult contains every finding from one audit run, in catalog order.
type AuditResult struct {
	// Findings holds one entry per rule, whether or not it triggered.
	Findings []types.Finding
	// Summary provides aggregate statistics.
	Summary Summary
}

// Summary provides aggregate statistics about an audit run.
type Summary struct {
	// Total number of rules evaluated.
	Total int
	// Triggered is the count of rules whose query returned rows.
	Triggered int
	// Errors is the count of triggered Error-severity rules.
	Errors int
	// Warnings is the count of triggered Warning-severity rules.
	Warnings int
	// Inconclusive is the count of rules whose query could not be run.
	Inconclusive int
	// Passed is the count of rules that ran and returned no rows.
	Passed int
}

func calculateSummary(findings []types.Finding) Summary {
	var summary Summary
	for _, f := range findings {
		summary.Total++
		switch {
		case f.Inconclusive():
			summary.Inconclusive++
		case f.Triggered:
			summary.Triggered++
			if f.Severity() == types.Severity_ERROR {
				summary.Errors++
			} else {
				summary.Warnings++
			}
		default:
			summary.Passed++
		}
	}
	return summary
}

// HasErrors returns true if any Error-severity rule triggered. A run with
// errors should fail the calling pipeline.
func (r *AuditResult) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings returns true if any Warning-severity rule triggered.
func (r *AuditResult) HasWarnings() bool {
	return r.Summary.Warnings > 0
}

// IsClean returns true if every rule ran and none triggered.
func (r *AuditResult) IsClean() bool {
	return r.Summary.Triggered == 0 && r.Summary.Inconclusive == 0
}

// Triggered returns the findings whose rules fired, in catalog order.
func (r *AuditResult) Triggered() []types.Finding {
	filtered := make([]types.Finding, 0)
	for _, f := range r.Findings {
		if f.Triggered {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

// Inconclusive returns the findings whose queries could not be run, in
// catalog order.
func (r *AuditResult) Inconclusive() []types.Finding {
	filtered := make([]types.Finding, 0)
	for _, f := range r.Findings {
		if f.Inconclusive() {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

// String returns a human-readable one-line summary of the audit.
func (r *AuditResult) String() string {
	return fmt.Sprintf("Audit Results: %d checks (%d errors, %d warnings, %d passed, %d inconclusive)",
		r.Summary.Total, r.Summary.Errors, r.Summary.Warnings, r.Summary.Passed, r.Summary.Inconclusive)
}
