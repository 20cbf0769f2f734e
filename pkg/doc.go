// Package pkg provides Oracle migration compatibility auditing for Go applications.
//
// oraudit runs a catalog of read-only compatibility checks against an Oracle
// database ahead of a Database Migration Service migration and reports
// everything that would block or degrade the migration.
//
// # Package Structure
//
// The pkg directory contains several specialized packages:
//
//   - auditor: High-level API for running an audit (recommended starting point)
//   - executor: Query expansion and execution against one connection
//   - types: Core type definitions (rules, findings, severities)
//   - config: Catalog loading and the built-in default catalog
//   - report: Text and HTML report rendering
//   - secret: Password resolution against GCP Secret Manager and Vault
//   - logger: Logging abstraction layer
//
// # Getting Started
//
// For most use cases, start with the auditor package:
//
//	import (
//	    "github.com/migranta/oraudit/pkg/auditor"
//	    "github.com/migranta/oraudit/pkg/executor"
//	)
//
//	func main() {
//	    db, err := executor.Open(ctx, executor.ConnectParams{
//	        User: "auditor", Password: pw,
//	        Host: "db.example.com", Port: 1521, Service: "ORCL",
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer db.Close()
//
//	    result, err := auditor.New(db).Audit(ctx)
//	    // Process result.Findings...
//	}
//
// # The Rule Catalog
//
// Every check is data, not code: a name, a description, a SQL query over
// the Oracle data dictionary and a warning message. A check is triggered
// when its query returns rows. The built-in catalog covers unsupported
// column types, LOB usage and size, missing primary keys, temporary and
// index-organized tables, LogMiner limitations, database character sets,
// identifier lengths and total table count.
//
// Queries may contain the literal placeholder {owner_exclude_list}, which
// expands to a quoted list of schemas to skip (SYS, SYSTEM and the other
// Oracle-maintained accounts by default).
//
// # Configuration
//
// Catalogs load from YAML or JSON files, or can be built programmatically:
//
//	a := auditor.New(db)
//	if err := a.WithConfig("config_oracle.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// All public APIs are safe for concurrent use by multiple goroutines.
// Auditor instances can be reused across multiple audit runs.
//
// # Error Handling
//
// Audit runs distinguish between:
//   - Findings (triggered rules, returned in AuditResult)
//   - Inconclusive rules (their query failed; recorded, run continues)
//   - System errors (returned as error from Audit)
//
// A single rule failure never aborts the audit, so a missing privilege on
// one dictionary view still yields a report for everything else.
//
// # Documentation
//
// Complete documentation and examples:
//   - Package documentation: https://pkg.go.dev/github.com/migranta/oraudit/pkg
//   - Examples: examples/library-usage/
//   - Main README: README.md
package pkg
