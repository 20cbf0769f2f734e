package types

import (
	"encoding/json"
	"strings"
)

// Severity represents how a triggered rule affects the audit outcome.
type Severity int32

const (
	Severity_SEVERITY_UNSPECIFIED Severity = 0
	Severity_WARNING              Severity = 1
	Severity_ERROR                Severity = 2
)

func (s Severity) String() string {
	switch s {
	case Severity_WARNING:
		return "Warning"
	case Severity_ERROR:
		return "Error"
	default:
		return "Unspecified"
	}
}

// UnmarshalYAML implements yaml.Unmarshaler for Severity
func (s *Severity) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v string
	if err := unmarshal(&v); err != nil {
		return err
	}
	*s = parseSeverity(v)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler for Severity
func (s *Severity) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = parseSeverity(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Severity
func (s Severity) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// MarshalJSON implements json.Marshaler for Severity
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func parseSeverity(v string) Severity {
	switch strings.ToUpper(v) {
	case "WARNING":
		return Severity_WARNING
	case "ERROR":
		return Severity_ERROR
	default:
		return Severity_SEVERITY_UNSPECIFIED
	}
}

// Rule is one named compatibility check: a catalog query plus the warning
// shown when the query returns rows.
type Rule struct {
	Name           string   `yaml:"name"               json:"name"`
	Description    string   `yaml:"description"        json:"description"`
	Query          string   `yaml:"query"              json:"query"`
	WarningMessage string   `yaml:"warning_message"    json:"warning_message"`
	Severity       Severity `yaml:"severity,omitempty" json:"severity,omitempty"`
}

// EffectiveSeverity returns the rule's explicit severity when set.
// Older configs encode severity only as the leading word of the warning
// message, so that is kept as a fallback; anything unrecognized counts
// as a warning.
func (r Rule) EffectiveSeverity() Severity {
	if r.Severity != Severity_SEVERITY_UNSPECIFIED {
		return r.Severity
	}
	first, _, _ := strings.Cut(strings.TrimSpace(r.WarningMessage), " ")
	if strings.EqualFold(strings.Trim(first, ":!.,"), "error") {
		return Severity_ERROR
	}
	return Severity_WARNING
}

// QueryResult is the full result set of one rule's query, in the column
// and row order the database returned.
type QueryResult struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// RowCount returns the number of rows in the result.
func (r QueryResult) RowCount() int {
	return len(r.Rows)
}

// Empty reports whether the query returned no rows.
func (r QueryResult) Empty() bool {
	return len(r.Rows) == 0
}

// Finding is the outcome of evaluating one rule against the live database.
type Finding struct {
	Rule      Rule        `json:"rule"`
	Result    QueryResult `json:"result"`
	Triggered bool        `json:"triggered"`

	// Err is set when the rule's query could not be executed. Such a
	// finding is inconclusive: it is reported separately and never
	// counts as triggered.
	Err error `json:"-"`
}

// Inconclusive reports whether the rule's query failed to execute.
func (f Finding) Inconclusive() bool {
	return f.Err != nil
}

// Severity returns the effective severity of the finding's rule.
func (f Finding) Severity() Severity {
	return f.Rule.EffectiveSeverity()
}
