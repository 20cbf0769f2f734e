package executor

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/migranta/oraudit/pkg/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteOwnerList(t *testing.T) {
	tests := []struct {
		name   string
		owners []string
		want   string
	}{
		{name: "empty", owners: nil, want: "''"},
		{name: "single", owners: []string{"SYS"}, want: "'SYS'"},
		{name: "two owners no space", owners: []string{"SYS", "SYSTEM"}, want: "'SYS','SYSTEM'"},
		{name: "embedded quote doubled", owners: []string{"O'BRIEN"}, want: "'O''BRIEN'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QuoteOwnerList(tt.owners))
		})
	}
}

func TestExpandQuery(t *testing.T) {
	owners := []string{"SYS", "SYSTEM"}

	t.Run("placeholder substituted verbatim", func(t *testing.T) {
		got := ExpandQuery("SELECT owner FROM dba_tables WHERE owner NOT IN ({owner_exclude_list})", owners)
		assert.Equal(t, "SELECT owner FROM dba_tables WHERE owner NOT IN ('SYS','SYSTEM')", got)
	})

	t.Run("no placeholder passes through unchanged", func(t *testing.T) {
		query := "SELECT value FROM nls_database_parameters WHERE parameter = 'NLS_CHARACTERSET'"
		assert.Equal(t, query, ExpandQuery(query, owners))
	})

	t.Run("every occurrence substituted", func(t *testing.T) {
		got := ExpandQuery("({owner_exclude_list}) AND ({owner_exclude_list})", []string{"SYS"})
		assert.Equal(t, "('SYS') AND ('SYS')", got)
	})
}

func newMockExecutor(t *testing.T, owners []string) (*Executor, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db, owners), mock
}

func TestRunReturnsRowsInOrder(t *testing.T) {
	exec, mock := newMockExecutor(t, []string{"SYS", "SYSTEM"})

	mock.ExpectQuery("SELECT owner, table_name FROM dba_tables WHERE owner NOT IN ('SYS','SYSTEM')").
		WillReturnRows(sqlmock.NewRows([]string{"OWNER", "TABLE_NAME"}).
			AddRow("SCOTT", "EMP").
			AddRow("SCOTT", "DEPT").
			AddRow("HR", "JOBS"))

	rule := types.Rule{
		Name:  "Tables without Primary Keys",
		Query: "SELECT owner, table_name FROM dba_tables WHERE owner NOT IN ({owner_exclude_list})",
	}

	result, err := exec.Run(context.Background(), rule)
	require.NoError(t, err)

	assert.Equal(t, []string{"OWNER", "TABLE_NAME"}, result.Columns)
	require.Equal(t, 3, result.RowCount())
	assert.Equal(t, []any{"SCOTT", "EMP"}, result.Rows[0])
	assert.Equal(t, []any{"SCOTT", "DEPT"}, result.Rows[1])
	assert.Equal(t, []any{"HR", "JOBS"}, result.Rows[2])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunConvertsByteSlicesToStrings(t *testing.T) {
	exec, mock := newMockExecutor(t, nil)

	mock.ExpectQuery("SELECT value AS character_set FROM nls_database_parameters").
		WillReturnRows(sqlmock.NewRows([]string{"CHARACTER_SET"}).
			AddRow([]byte("WE8DEC")))

	rule := types.Rule{
		Name:  "Unsupported Character Set",
		Query: "SELECT value AS character_set FROM nls_database_parameters",
	}

	result, err := exec.Run(context.Background(), rule)
	require.NoError(t, err)
	require.Equal(t, 1, result.RowCount())
	assert.Equal(t, "WE8DEC", result.Rows[0][0])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunEmptyResultIsNotAnError(t *testing.T) {
	exec, mock := newMockExecutor(t, []string{"SYS"})

	mock.ExpectQuery("SELECT owner FROM dba_tables WHERE owner NOT IN ('SYS')").
		WillReturnRows(sqlmock.NewRows([]string{"OWNER"}))

	rule := types.Rule{
		Name:  "Temporary Tables",
		Query: "SELECT owner FROM dba_tables WHERE owner NOT IN ({owner_exclude_list})",
	}

	result, err := exec.Run(context.Background(), rule)
	require.NoError(t, err)
	assert.True(t, result.Empty())
	assert.Equal(t, []string{"OWNER"}, result.Columns)
}

func TestRunWrapsQueryFailureInRuleError(t *testing.T) {
	exec, mock := newMockExecutor(t, nil)

	mock.ExpectQuery("SELECT owner FROM dba_logstdby_unsupported").
		WillReturnError(assert.AnError)

	rule := types.Rule{
		Name:  "Logminer Limitations",
		Query: "SELECT owner FROM dba_logstdby_unsupported",
	}

	_, err := exec.Run(context.Background(), rule)
	require.Error(t, err)

	var ruleErr *RuleError
	require.True(t, errors.As(err, &ruleErr))
	assert.Equal(t, "Logminer Limitations", ruleErr.Rule)
	assert.True(t, errors.Is(err, assert.AnError))
	assert.Contains(t, err.Error(), "Logminer Limitations")
}

func TestRunRewritesViewsForAllViewType(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	exec := NewWithViews(db, []string{"SYS"}, ViewTypeAll)

	mock.ExpectQuery("SELECT owner FROM all_tables WHERE owner NOT IN ('SYS')").
		WillReturnRows(sqlmock.NewRows([]string{"OWNER"}))

	rule := types.Rule{
		Name:  "Temporary Tables",
		Query: "SELECT owner FROM dba_tables WHERE owner NOT IN ({owner_exclude_list})",
	}

	_, err = exec.Run(context.Background(), rule)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
