package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/migranta/oraudit/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFileYAML(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", `
owner_exclude_list:
  - SYS
  - SYSTEM
validations:
  - name: Temporary Tables
    description: Finds temporary tables.
    query: SELECT owner, table_name FROM dba_tables WHERE owner NOT IN ({owner_exclude_list}) AND temporary = 'Y'
    warning_message: "Warning: temporary tables found."
  - name: Too Many Tables
    description: Counts tables.
    query: SELECT COUNT(*) AS table_count FROM dba_tables HAVING COUNT(*) > 10000
    warning_message: "Error: too many tables."
    severity: Error
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"SYS", "SYSTEM"}, cfg.OwnerExcludeList)
	require.Len(t, cfg.Validations, 2)
	assert.Equal(t, "Temporary Tables", cfg.Validations[0].Name)
	assert.Equal(t, types.Severity_SEVERITY_UNSPECIFIED, cfg.Validations[0].Severity)
	assert.Equal(t, types.Severity_WARNING, cfg.Validations[0].EffectiveSeverity())
	assert.Equal(t, types.Severity_ERROR, cfg.Validations[1].Severity)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromFileJSONFallback(t *testing.T) {
	path := writeTempConfig(t, "config.json", `{
  "owner_exclude_list": ["SYS"],
  "validations": [
    {
      "name": "Lob Data Types",
      "description": "Finds LOB columns.",
      "query": "SELECT owner FROM dba_tab_columns",
      "warning_message": "Warning: LOBs found."
    }
  ]
}`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, cfg.Validations, 1)
	assert.Equal(t, "Lob Data Types", cfg.Validations[0].Name)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile("nonexistent.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent.yaml")
}

func TestLoadFromFileMalformed(t *testing.T) {
	path := writeTempConfig(t, "broken.yaml", "{[not yaml, not json")
	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
}

func TestLoadFromFileMissingExcludeListUsesDefaults(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", `
validations:
  - name: Temporary Tables
    description: Finds temporary tables.
    query: SELECT owner FROM dba_tables
    warning_message: "Warning: temporary tables found."
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Contains(t, cfg.OwnerExcludeList, "SYS")
	assert.Contains(t, cfg.OwnerExcludeList, "RDSADMIN")
}

func TestDefaultCatalogNamesAndOrder(t *testing.T) {
	want := []string{
		"Unsupported Columns",
		"Lob Data Types",
		"Tables without Primary Keys",
		"Temporary Tables",
		"Logminer Limitations",
		"LOBs greater than 100mb",
		"Unsupported Character Set",
		"Unsupported Table Names",
		"Unsupported Column Names",
		"Too Many Tables",
		"Index-Organized Tables",
	}

	cfg := Default()
	require.Len(t, cfg.Validations, len(want))
	for i, name := range want {
		assert.Equal(t, name, cfg.Validations[i].Name, "rule %d", i)
	}
	require.NoError(t, cfg.Validate())
}

func TestDefaultReturnsIndependentCopy(t *testing.T) {
	a := Default()
	a.Validations[0].Name = "mutated"
	a.OwnerExcludeList[0] = "mutated"

	b := Default()
	assert.Equal(t, "Unsupported Columns", b.Validations[0].Name)
	assert.Equal(t, "SYS", b.OwnerExcludeList[0])
}

func TestDefaultCatalogContent(t *testing.T) {
	cfg := Default()

	byName := make(map[string]types.Rule, len(cfg.Validations))
	for _, rule := range cfg.Validations {
		byName[rule.Name] = rule
	}

	// The character-set check runs against nls_database_parameters and has
	// no owner scope.
	charset := byName["Unsupported Character Set"]
	assert.NotContains(t, charset.Query, "{owner_exclude_list}")
	assert.Contains(t, charset.Query, "AL32UTF8")

	for _, rule := range cfg.Validations {
		if rule.Name == "Unsupported Character Set" {
			continue
		}
		assert.Contains(t, rule.Query, "{owner_exclude_list}", "rule %q should be owner scoped", rule.Name)
	}

	tooMany := byName["Too Many Tables"]
	assert.Contains(t, tooMany.WarningMessage, "exceeds the limit of 10,000")
	assert.Contains(t, tooMany.Query, "HAVING COUNT(*) > 10000")

	lobs := byName["LOBs greater than 100mb"]
	assert.Contains(t, lobs.Query, "104857600")

	names := byName["Unsupported Table Names"]
	assert.Contains(t, names.Query, "LENGTH(table_name) > 30")
}

func TestDefaultCatalogSeverityMatchesMessagePrefix(t *testing.T) {
	for _, rule := range Default().Validations {
		prefix := "Warning"
		if rule.Severity == types.Severity_ERROR {
			prefix = "Error"
		}
		if !strings.HasPrefix(rule.WarningMessage, prefix) {
			t.Errorf("rule %q: severity %s does not match message %q", rule.Name, rule.Severity, rule.WarningMessage)
		}
		assert.Equal(t, rule.Severity, rule.EffectiveSeverity(), "rule %q", rule.Name)
	}
}

func TestDefaultOwnerExcludeList(t *testing.T) {
	cfg := Default()
	assert.Contains(t, cfg.OwnerExcludeList, "SYS")
	assert.Contains(t, cfg.OwnerExcludeList, "SYSTEM")
	assert.Contains(t, cfg.OwnerExcludeList, "XS$NULL")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "no validations",
			cfg:     Config{},
			wantErr: "no validations",
		},
		{
			name: "missing name",
			cfg: Config{Validations: []types.Rule{
				{Query: "SELECT 1 FROM dual", WarningMessage: "Warning: x"},
			}},
			wantErr: "has no name",
		},
		{
			name: "missing query",
			cfg: Config{Validations: []types.Rule{
				{Name: "Broken", WarningMessage: "Warning: x"},
			}},
			wantErr: `"Broken" has no query`,
		},
		{
			name: "missing warning message",
			cfg: Config{Validations: []types.Rule{
				{Name: "Broken", Query: "SELECT 1 FROM dual"},
			}},
			wantErr: "has no warning message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
