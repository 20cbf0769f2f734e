// Package auditor provides the high-level API for running a migration
// compatibility audit against a live database.
//
// # Quick Start
//
//	// Open the connection to audit
//	db, err := executor.Open(ctx, executor.ConnectParams{...})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	// Run the built-in catalog
//	a := auditor.New(db)
//	result, err := a.Audit(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Inspect findings
//	for _, f := range result.Triggered() {
//	    fmt.Printf("[%s] %s\n", f.Severity(), f.Rule.Name)
//	}
//
// # Using a Custom Catalog
//
//	a := auditor.New(db)
//	if err := a.WithConfig("config_oracle.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//	result, err := a.Audit(ctx)
package auditor

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/migranta/oraudit/pkg/config"
	"github.com/migranta/oraudit/pkg/executor"
	"github.com/migranta/oraudit/pkg/types"
	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"
)

// Auditor runs every rule in its configuration against one database.
//
// Auditor is safe for concurrent use by multiple goroutines.
type Auditor struct {
	config   *config.Config
	db       *sql.DB
	viewType string
}

// New creates an Auditor over an open connection, using the built-in
// default catalog. Use WithConfig or WithConfigObject to replace it.
func New(db *sql.DB) *Auditor {
	return &Auditor{
		config:   config.Default(),
		db:       db,
		viewType: executor.ViewTypeDBA,
	}
}

// WithConfig loads the rule catalog from a YAML or JSON file.
// This replaces the current configuration.
func (a *Auditor) WithConfig(filename string) error {
	cfg, err := config.LoadFromFile(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to load config from %s", filename)
	}
	a.config = cfg
	return nil
}

// WithConfigObject sets a configuration object directly and returns the
// Auditor for method chaining.
func (a *Auditor) WithConfigObject(cfg *config.Config) *Auditor {
	a.config = cfg
	return a
}

// WithViews selects the dictionary view family rule queries run against
// (executor.ViewTypeDBA or executor.ViewTypeAll).
func (a *Auditor) WithViews(viewType string) *Auditor {
	a.viewType = viewType
	return a
}

// Evaluate classifies one rule's query result. A rule is triggered when its
// query returned any rows; thresholds live in the queries themselves, so no
// rule needs special-case logic here.
func Evaluate(rule types.Rule, result types.QueryResult) types.Finding {
	return types.Finding{
		Rule:      rule,
		Result:    result,
		Triggered: result.RowCount() > 0,
	}
}

// Audit runs every configured rule in catalog order. A rule whose query
// fails is recorded as inconclusive and the remaining rules still run, so
// one missing view or privilege does not block the rest of the report.
//
// With WithWorkers(n) rules execute on up to n goroutines; findings are
// still returned in catalog order. The returned error is non-nil only when
// the context is cancelled between rules, and partial findings accompany it.
func (a *Auditor) Audit(ctx context.Context, opts ...AuditOption) (*AuditResult, error) {
	options := &auditOptions{workers: 1}
	for _, opt := range opts {
		opt(options)
	}

	exec := executor.NewWithViews(a.db, a.config.OwnerExcludeList, a.viewType)
	rules := a.config.Validations
	findings := make([]types.Finding, len(rules))

	if options.workers > 1 {
		p := pool.New().WithMaxGoroutines(options.workers)
		for i, rule := range rules {
			p.Go(func() {
				findings[i] = a.runRule(ctx, exec, rule, options.ruleTimeout)
			})
		}
		p.Wait()
	} else {
		for i, rule := range rules {
			select {
			case <-ctx.Done():
				return &AuditResult{
					Findings: findings[:i],
					Summary:  calculateSummary(findings[:i]),
				}, ctx.Err()
			default:
			}
			findings[i] = a.runRule(ctx, exec, rule, options.ruleTimeout)
		}
	}

	return &AuditResult{
		Findings: findings,
		Summary:  calculateSummary(findings),
	}, nil
}

func (a *Auditor) runRule(ctx context.Context, exec *executor.Executor, rule types.Rule, timeout time.Duration) types.Finding {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result, err := exec.Run(ctx, rule)
	if err != nil {
		slog.Warn("Rule query failed, marking inconclusive", "rule", rule.Name, "error", err)
		return types.Finding{Rule: rule, Err: err}
	}
	return Evaluate(rule, result)
}
