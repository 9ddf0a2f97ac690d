package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	showSnapshotPath string
	showActiveOnly   bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "List the flags declared in a snapshot file",
	Long: `Show decodes a snapshot file and lists every flag it declares.

Examples:
  konditional show --snapshot snap.json
  konditional show --snapshot snap.json --format json
  konditional show --snapshot snap.json --active-only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := loadSnapshot(showSnapshotPath)
		if err != nil {
			return err
		}

		defs := container.Current().SortedFlags()
		rows := make([]flagSummary, 0, len(defs))
		for _, def := range defs {
			if showActiveOnly && !def.Active {
				continue
			}
			rows = append(rows, flagSummary{
				Key:     def.ID.Render(),
				Active:  def.Active,
				Default: renderValue(def.Default),
				Rules:   len(def.Rules),
			})
		}

		if quiet {
			return nil
		}
		if len(rows) == 0 {
			fmt.Println("No flags found")
			return nil
		}
		return printFlagSummaries(rows, resolvedFormat())
	},
}

func init() {
	showCmd.Flags().StringVar(&showSnapshotPath, "snapshot", "", "path to a snapshot JSON file (required)")
	showCmd.Flags().BoolVar(&showActiveOnly, "active-only", false, "show only active flags")
	_ = showCmd.MarkFlagRequired("snapshot")

	rootCmd.AddCommand(showCmd)
}
