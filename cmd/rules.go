package cmd

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rules in the effective catalog",
	Long: `Rules prints the catalog an audit run would execute, without
connecting to any database. Use --config to inspect a custom catalog.`,
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(_ *cobra.Command, _ []string) error {
	cfg, err := loadCatalog()
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Name", "Severity", "Description"})
	for i, rule := range cfg.Validations {
		t.AppendRow(table.Row{i + 1, rule.Name, rule.EffectiveSeverity().String(), rule.Description})
	}
	t.Render()
	return nil
}
