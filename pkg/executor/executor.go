package executor

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/migranta/oraudit/pkg/types"
)

// Placeholder is the literal token in rule queries that expands to the
// quoted owner exclusion list.
const Placeholder = "{owner_exclude_list}"

// Dictionary view families a rule query may run against.
const (
	ViewTypeDBA = "dba"
	ViewTypeAll = "all"
)

// RuleError reports that a single rule's query failed at the database.
// The audit treats the rule as inconclusive and keeps going.
type RuleError struct {
	Rule string
	Err  error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %q: %v", e.Rule, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// QuoteOwnerList renders owner names as a SQL literal list: 'SYS','SYSTEM'.
// Embedded single quotes are doubled. An empty list renders as '' so that
// NOT IN ({owner_exclude_list}) stays valid SQL.
func QuoteOwnerList(owners []string) string {
	if len(owners) == 0 {
		return "''"
	}
	quoted := make([]string, len(owners))
	for i, owner := range owners {
		quoted[i] = "'" + strings.ReplaceAll(owner, "'", "''") + "'"
	}
	return strings.Join(quoted, ",")
}

// ExpandQuery substitutes the owner exclusion list into a rule query.
// Queries without the placeholder pass through unchanged.
func ExpandQuery(query string, owners []string) string {
	if !strings.Contains(query, Placeholder) {
		return query
	}
	return strings.ReplaceAll(query, Placeholder, QuoteOwnerList(owners))
}

// Executor runs rule queries over one database connection.
//
// Executor is safe for concurrent use; database/sql serializes access to the
// underlying connections.
type Executor struct {
	db       *sql.DB
	owners   []string
	viewType string
}

// New creates an executor that queries the dba_ dictionary views.
func New(db *sql.DB, owners []string) *Executor {
	return NewWithViews(db, owners, ViewTypeDBA)
}

// NewWithViews creates an executor bound to the given dictionary view
// family. ViewTypeAll audits without the SELECT ANY DICTIONARY privilege,
// at the cost of only seeing objects the connecting user can reach.
func NewWithViews(db *sql.DB, owners []string, viewType string) *Executor {
	return &Executor{
		db:       db,
		owners:   owners,
		viewType: viewType,
	}
}

// Run executes one rule's query and returns the full result set, columns
// and rows in database order. Any failure, including context expiry, is
// wrapped in a *RuleError naming the rule.
func (e *Executor) Run(ctx context.Context, rule types.Rule) (types.QueryResult, error) {
	query := ExpandQuery(rule.Query, e.owners)
	if e.viewType == ViewTypeAll {
		query = rewriteDictionaryViews(query)
	}

	start := time.Now()
	slog.Debug("Executing rule query", "rule", rule.Name, "query", query)

	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return types.QueryResult{}, &RuleError{Rule: rule.Name, Err: err}
	}
	defer func() {
		_ = rows.Close()
	}()

	columns, err := rows.Columns()
	if err != nil {
		return types.QueryResult{}, &RuleError{Rule: rule.Name, Err: err}
	}

	result := types.QueryResult{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		scanArgs := make([]any, len(columns))
		for i := range values {
			scanArgs[i] = &values[i]
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return types.QueryResult{}, &RuleError{Rule: rule.Name, Err: err}
		}
		for i, v := range values {
			// Oracle drivers hand string columns back as raw bytes.
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return types.QueryResult{}, &RuleError{Rule: rule.Name, Err: err}
	}

	slog.Debug("Rule query completed",
		"rule", rule.Name,
		"duration_ms", time.Since(start).Milliseconds(),
		"row_count", result.RowCount(),
	)

	return result, nil
}

// rewriteDictionaryViews swaps dba_ dictionary views for their all_
// counterparts. Catalog queries name views in lowercase, but user-supplied
// configs may not.
func rewriteDictionaryViews(query string) string {
	query = strings.ReplaceAll(query, "dba_", "all_")
	return strings.ReplaceAll(query, "DBA_", "ALL_")
}
