package auditor

import "time"

// AuditOption customizes a single Audit run.
type AuditOption func(*auditOptions)

type auditOptions struct {
	workers     int
	ruleTimeout time.Duration
}

// WithWorkers runs rule queries on up to n goroutines. Findings are always
// returned in catalog order regardless of completion order. Values below 2
// keep the default sequential execution.
func WithWorkers(n int) AuditOption {
	return func(o *auditOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithRuleTimeout bounds each rule's query individually. A rule that runs
// past the timeout is reported inconclusive and the run continues.
func WithRuleTimeout(d time.Duration) AuditOption {
	return func(o *auditOptions) {
		o.ruleTimeout = d
	}
}
