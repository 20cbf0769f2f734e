// Package report renders audit findings as plain text or as a
// self-contained HTML page. Rendering is a pure function of the findings
// and run metadata; it never touches the database.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/migranta/oraudit/pkg/types"
	"github.com/pkg/errors"
)

// Format identifies a report output format.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// ParseFormat normalizes a user-supplied format name. Matching is
// case-insensitive; anything other than text or html is an error.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return FormatText, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", errors.Errorf("unsupported report format %q (expected text or html)", s)
	}
}

// Meta carries run information shown in report headers.
type Meta struct {
	// Target names the audited database, typically host:port/service.
	Target string
	// GeneratedAt is the report timestamp.
	GeneratedAt time.Time
}

// Render writes the findings to w in the requested format. Findings are
// rendered in the order given, so callers pass them in catalog order.
func Render(w io.Writer, findings []types.Finding, format Format, meta Meta) error {
	switch format {
	case FormatText:
		return renderText(w, findings, meta)
	case FormatHTML:
		return renderHTML(w, findings, meta)
	default:
		return errors.Errorf("unsupported report format %q (expected text or html)", format)
	}
}

// formatValue renders a single column value. Database NULLs arrive as
// untyped nils and are spelled out so they survive a text report.
func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}

func joinRow(row []any) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = formatValue(v)
	}
	return strings.Join(parts, ", ")
}
