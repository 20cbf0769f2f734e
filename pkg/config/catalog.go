package config

import "github.com/migranta/oraudit/pkg/types"

// defaultOwnerExcludeList skips the Oracle-maintained schemas that a
// migration never replicates.
var defaultOwnerExcludeList = []string{
	"SYS", "SYSTEM", "DBSNMP", "OUTLN", "APPQOSSYS", "AUDSYS", "CTXSYS",
	"DBSFWUSER", "DVF", "DVSYS", "GGSYS", "GSMADMIN_INTERNAL", "LBACSYS",
	"MDSYS", "OJVMSYS", "OLAPSYS", "ORDDATA", "ORDPLUGINS", "ORDSYS",
	"REMOTE_SCHEDULER_AGENT", "SI_INFORMTN_SCHEMA", "SYS$UMF", "SYSBACKUP",
	"SYSDG", "SYSKM", "SYSRAC", "WMSYS", "XDB", "XS$NULL", "RDSADMIN",
}

// defaultValidations is the built-in compatibility catalog, evaluated in
// order. Query text and threshold constants are load-bearing: the migration
// service rejects exactly what these queries surface, so edit with care.
var defaultValidations = []types.Rule{
	{
		Name:        "Unsupported Columns",
		Description: "Finds columns whose data types the migration service cannot replicate.",
		Query: `SELECT owner, table_name, column_name, data_type
FROM dba_tab_columns
WHERE owner NOT IN ({owner_exclude_list})
  AND data_type IN ('ANYDATA', 'BFILE', 'LONG', 'LONG RAW', 'SDO_GEOMETRY', 'UROWID', 'XMLTYPE')
ORDER BY owner, table_name, column_name`,
		WarningMessage: "Error: The following columns use data types that the migration service does not support. Tables containing them cannot be replicated.",
		Severity:       types.Severity_ERROR,
	},
	{
		Name:        "Lob Data Types",
		Description: "Finds columns that store large objects.",
		Query: `SELECT owner, table_name, column_name, data_type
FROM dba_tab_columns
WHERE owner NOT IN ({owner_exclude_list})
  AND data_type IN ('BLOB', 'CLOB', 'NCLOB')
ORDER BY owner, table_name, column_name`,
		WarningMessage: "Warning: The following columns use LOB data types. Configure a LOB mode and maximum LOB size that fit this data before migrating.",
		Severity:       types.Severity_WARNING,
	},
	{
		Name:        "Tables without Primary Keys",
		Description: "Finds tables that have no primary key constraint.",
		Query: `SELECT t.owner, t.table_name
FROM dba_tables t
WHERE t.owner NOT IN ({owner_exclude_list})
  AND NOT EXISTS (
    SELECT 1
    FROM dba_constraints c
    WHERE c.owner = t.owner
      AND c.table_name = t.table_name
      AND c.constraint_type = 'P'
  )
ORDER BY t.owner, t.table_name`,
		WarningMessage: "Warning: The following tables have no primary key. Ongoing replication cannot reliably apply updates and deletes to them.",
		Severity:       types.Severity_WARNING,
	},
	{
		Name:        "Temporary Tables",
		Description: "Finds global temporary tables, whose contents are session scoped.",
		Query: `SELECT owner, table_name
FROM dba_tables
WHERE owner NOT IN ({owner_exclude_list})
  AND temporary = 'Y'
ORDER BY owner, table_name`,
		WarningMessage: "Warning: The following temporary tables were found. Their contents are not replicated.",
		Severity:       types.Severity_WARNING,
	},
	{
		Name:        "Logminer Limitations",
		Description: "Finds tables that LogMiner cannot capture changes from.",
		Query: `SELECT DISTINCT owner, table_name
FROM dba_logstdby_unsupported
WHERE owner NOT IN ({owner_exclude_list})
ORDER BY owner, table_name`,
		WarningMessage: "Error: LogMiner cannot process changes to the following tables, so ongoing replication would silently miss them.",
		Severity:       types.Severity_ERROR,
	},
	{
		Name:        "LOBs greater than 100mb",
		Description: "Finds LOB columns whose average stored size exceeds 100 MB.",
		Query: `SELECT l.owner, l.table_name, l.column_name, ROUND(s.bytes / t.num_rows) AS avg_lob_bytes
FROM dba_lobs l
JOIN dba_segments s
  ON s.owner = l.owner
 AND s.segment_name = l.segment_name
JOIN dba_tables t
  ON t.owner = l.owner
 AND t.table_name = l.table_name
WHERE l.owner NOT IN ({owner_exclude_list})
  AND t.num_rows > 0
  AND s.bytes / t.num_rows > 104857600
ORDER BY l.owner, l.table_name, l.column_name`,
		WarningMessage: "Warning: The average LOB size in the following columns exceeds 100 MB. Rows above the task's maximum LOB size are truncated during migration.",
		Severity:       types.Severity_WARNING,
	},
	{
		Name:        "Unsupported Character Set",
		Description: "Checks that the database character set is one the migration service supports.",
		Query: `SELECT value AS character_set
FROM nls_database_parameters
WHERE parameter = 'NLS_CHARACTERSET'
  AND value NOT IN ('AL16UTF16', 'AL32UTF8', 'IN8ISCII', 'JA16SJIS', 'US7ASCII', 'UTF8', 'WE8ISO8859P1', 'WE8ISO8859P9', 'WE8ISO8859P15', 'WE8MSWIN1252', 'ZHT16BIG5')`,
		WarningMessage: "Error: The database character set is not supported by the migration service.",
		Severity:       types.Severity_ERROR,
	},
	{
		Name:        "Unsupported Table Names",
		Description: "Finds table names longer than 30 characters.",
		Query: `SELECT owner, table_name
FROM dba_tables
WHERE owner NOT IN ({owner_exclude_list})
  AND LENGTH(table_name) > 30
ORDER BY owner, table_name`,
		WarningMessage: "Error: The following table names exceed 30 characters and cannot be replicated.",
		Severity:       types.Severity_ERROR,
	},
	{
		Name:        "Unsupported Column Names",
		Description: "Finds column names longer than 30 characters.",
		Query: `SELECT owner, table_name, column_name
FROM dba_tab_columns
WHERE owner NOT IN ({owner_exclude_list})
  AND LENGTH(column_name) > 30
ORDER BY owner, table_name, column_name`,
		WarningMessage: "Error: The following column names exceed 30 characters and cannot be replicated.",
		Severity:       types.Severity_ERROR,
	},
	{
		Name:        "Too Many Tables",
		Description: "Checks that the number of tables fits in a single migration task.",
		Query: `SELECT COUNT(*) AS table_count
FROM dba_tables
WHERE owner NOT IN ({owner_exclude_list})
HAVING COUNT(*) > 10000`,
		WarningMessage: "Error: The number of tables in the database exceeds the limit of 10,000 for a single migration task.",
		Severity:       types.Severity_ERROR,
	},
	{
		Name:        "Index-Organized Tables",
		Description: "Finds index-organized tables.",
		Query: `SELECT owner, table_name, iot_type
FROM dba_tables
WHERE owner NOT IN ({owner_exclude_list})
  AND iot_type IS NOT NULL
ORDER BY owner, table_name`,
		WarningMessage: "Error: The following index-organized tables are not supported by the migration service.",
		Severity:       types.Severity_ERROR,
	},
}
