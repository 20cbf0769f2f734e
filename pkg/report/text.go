package report

import (
	"fmt"
	"io"

	"github.com/migranta/oraudit/pkg/types"
)

func renderText(w io.Writer, findings []types.Finding, _ Meta) error {
	triggered := 0
	for _, f := range findings {
		if !f.Triggered {
			continue
		}
		triggered++
		fmt.Fprintf(w, "Check: %s\n", f.Rule.Name)
		if f.Rule.Description != "" {
			fmt.Fprintln(w, f.Rule.Description)
		}
		fmt.Fprintln(w, f.Rule.WarningMessage)
		fmt.Fprintln(w, "Result:")
		for _, row := range f.Result.Rows {
			fmt.Fprintf(w, "  - %s\n", joinRow(row))
		}
		fmt.Fprintln(w)
	}

	if triggered == 0 {
		fmt.Fprintln(w, "No compatibility issues found.")
	}

	inconclusive := inconclusiveOf(findings)
	if len(inconclusive) > 0 {
		fmt.Fprintln(w, "Inconclusive checks (queries could not be run):")
		for _, f := range inconclusive {
			fmt.Fprintf(w, "  - %s: %v\n", f.Rule.Name, f.Err)
		}
	}
	return nil
}

func inconclusiveOf(findings []types.Finding) []types.Finding {
	var out []types.Finding
	for _, f := range findings {
		if f.Inconclusive() {
			out = append(out, f)
		}
	}
	return out
}
