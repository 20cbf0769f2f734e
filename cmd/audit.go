package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/migranta/oraudit/pkg/auditor"
	"github.com/migranta/oraudit/pkg/config"
	"github.com/migranta/oraudit/pkg/executor"
	"github.com/migranta/oraudit/pkg/logger"
	"github.com/migranta/oraudit/pkg/report"
	"github.com/migranta/oraudit/pkg/secret"
	"github.com/migranta/oraudit/pkg/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run compatibility checks against an Oracle database",
	Long: `Audit connects to an Oracle database, runs every rule in the catalog
and prints a report of the findings.

The exit code is 0 when no Error-severity rule triggered and nonzero
otherwise, so the command slots directly into migration pipelines.`,
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	// Connection flags
	auditCmd.Flags().StringP("user", "u", "", "database user")
	auditCmd.Flags().StringP("password", "p", "", "password, or gcp-secret:NAME / vault:PATH#FIELD reference")
	auditCmd.Flags().String("host", "", "database host")
	auditCmd.Flags().Int("port", 1521, "database listener port")
	auditCmd.Flags().StringP("service", "s", "", "database service name")
	auditCmd.Flags().String("protocol", "tcp", "connection protocol (tcp, tcps)")

	// Audit flags
	auditCmd.Flags().String("view-type", executor.ViewTypeDBA, "dictionary views to query (dba, all)")
	auditCmd.Flags().StringP("format", "f", "text", "report format (text, html)")
	auditCmd.Flags().StringP("output", "o", "", "write the report to a file instead of stdout")
	auditCmd.Flags().Int("workers", 1, "number of rules to run in parallel")
	auditCmd.Flags().Duration("rule-timeout", 0, "per-rule query timeout (0 disables)")
	auditCmd.Flags().Bool("fail-on-warning", false, "exit with non-zero code if warnings are found")

	// Bind flags to viper
	_ = viper.BindPFlag("user", auditCmd.Flags().Lookup("user"))
	_ = viper.BindPFlag("password", auditCmd.Flags().Lookup("password"))
	_ = viper.BindPFlag("host", auditCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("port", auditCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("service", auditCmd.Flags().Lookup("service"))
	_ = viper.BindPFlag("protocol", auditCmd.Flags().Lookup("protocol"))
	_ = viper.BindPFlag("view-type", auditCmd.Flags().Lookup("view-type"))
	_ = viper.BindPFlag("format", auditCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("output", auditCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("workers", auditCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("rule-timeout", auditCmd.Flags().Lookup("rule-timeout"))
	_ = viper.BindPFlag("fail-on-warning", auditCmd.Flags().Lookup("fail-on-warning"))
}

func runAudit(cmd *cobra.Command, _ []string) error {
	// Initialize logger
	logLevel := slog.LevelInfo
	if viper.GetBool("debug") {
		logLevel = slog.LevelDebug
	} else if viper.GetBool("verbose") {
		logLevel = slog.LevelInfo
	}
	slog.SetDefault(logger.NewWithLevel(logLevel).GetSlogLogger())

	// Connection parameters may come from flags, ORAUDIT_* env or the
	// settings file, so required checks happen here instead of cobra.
	for _, required := range []string{"user", "host", "service"} {
		if viper.GetString(required) == "" {
			return errors.Errorf("required flag --%s not set", required)
		}
	}

	format, err := report.ParseFormat(viper.GetString("format"))
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	// Resolve the password, which may reference a secret store
	password, err := secret.Resolve(ctx, viper.GetString("password"))
	if err != nil {
		return errors.Wrap(err, "failed to resolve password")
	}

	// Load the rule catalog
	cfg, err := loadCatalog()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid rule catalog")
	}
	slog.Debug("Catalog loaded", "rules", len(cfg.Validations))

	params := executor.ConnectParams{
		User:     viper.GetString("user"),
		Password: password,
		Host:     viper.GetString("host"),
		Port:     viper.GetInt("port"),
		Service:  viper.GetString("service"),
		Protocol: viper.GetString("protocol"),
	}
	db, err := executor.Open(ctx, params)
	if err != nil {
		return err
	}
	defer db.Close()

	workers := viper.GetInt("workers")
	if workers > 1 {
		db.SetMaxOpenConns(workers)
	}

	a := auditor.New(db).
		WithConfigObject(cfg).
		WithViews(viper.GetString("view-type"))

	var opts []auditor.AuditOption
	if workers > 1 {
		opts = append(opts, auditor.WithWorkers(workers))
	}
	if timeout := viper.GetDuration("rule-timeout"); timeout > 0 {
		opts = append(opts, auditor.WithRuleTimeout(timeout))
	}

	result, err := a.Audit(ctx, opts...)
	if err != nil {
		return errors.Wrap(err, "audit aborted")
	}

	meta := report.Meta{
		Target:      fmt.Sprintf("%s:%d/%s", params.Host, params.Port, params.Service),
		GeneratedAt: time.Now(),
	}
	if err := writeReport(result.Findings, format, meta); err != nil {
		return err
	}

	slog.Info("Audit complete",
		"checks", result.Summary.Total,
		"errors", result.Summary.Errors,
		"warnings", result.Summary.Warnings,
		"inconclusive", result.Summary.Inconclusive)

	if shouldFail(result, viper.GetBool("fail-on-warning")) {
		os.Exit(1)
	}
	return nil
}

// loadCatalog returns the catalog named by --config, or the built-in one.
func loadCatalog() (*config.Config, error) {
	if cfgFile != "" {
		slog.Debug("Loading rule catalog", "file", cfgFile)
		return config.LoadFromFile(cfgFile)
	}
	return config.Default(), nil
}

func writeReport(findings []types.Finding, format report.Format, meta report.Meta) error {
	if path := viper.GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrapf(err, "failed to create report file: %s", path)
		}
		defer f.Close()
		slog.Info("Writing report", "file", path, "format", format)
		return report.Render(f, findings, format, meta)
	}
	return report.Render(os.Stdout, findings, format, meta)
}

// shouldFail decides the process exit status. Error findings always fail
// the run; warnings only with --fail-on-warning. Inconclusive rules never
// fail a run on their own.
func shouldFail(result *auditor.AuditResult, failOnWarning bool) bool {
	if result.HasErrors() {
		return true
	}
	return failOnWarning && result.HasWarnings()
}
