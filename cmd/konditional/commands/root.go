package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	format string
	quiet  bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "konditional",
	Short: "Inspect and evaluate konditional snapshot files",
	Long: `konditional is a command-line tool for working with konditional
snapshot files outside of a running host process.

It loads a snapshot JSON file, decodes it against a schema derived from
the payload itself, and can print or evaluate the flags it contains.

Examples:
  konditional show --snapshot snap.json
  konditional evaluate --snapshot snap.json --flag feature::web::dark_mode --user u1
  konditional evaluate --snapshot snap.json --flag feature::web::dark_mode --user u1 --format json`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&format, "format", "table", "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress output")
	bindConfigDefaults(rootCmd)
}
