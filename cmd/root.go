package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "oraudit",
	Short: "Oracle compatibility auditor for DMS migrations",
	Long: `oraudit runs a read-only set of compatibility checks against an Oracle
database that is about to be migrated with a Database Migration Service.

Each check is a plain SQL query over the data dictionary; any returned
rows become a finding in the report. The tool never modifies the
database it audits.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "rule catalog file (default is the built-in catalog)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable verbose output")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

// initConfig reads in the optional settings file and ENV variables if set.
// Connection settings may come from ORAUDIT_* variables (ORAUDIT_PASSWORD,
// ORAUDIT_HOST, ...) so credentials can stay out of shell history.
func initConfig() {
	// Find home directory.
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	// Search settings in home directory and CWD with name ".oraudit" (without extension).
	viper.AddConfigPath(home)
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.SetConfigName(".oraudit")

	viper.SetEnvPrefix("ORAUDIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// A missing settings file is fine; flags and env cover everything.
	_ = viper.ReadInConfig()
}
