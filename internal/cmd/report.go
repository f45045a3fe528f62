package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"flowgen/internal/report"
)

// reportCmd represents the flowgen report command
var reportCmd = &cobra.Command{
	Use:   "report <records.json>",
	Short: "Render extracted markup records as a tree or JSON",
	Long: `Render structured metadata records extracted from declarative markup.

The companion markup scanners emit records (id, type, attributes, children)
as JSON. This command renders them as an indented tree for reading, or as
normalized JSON for further processing.

Examples:
  flowgen report validators.json
  flowgen report controls.json --json`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

var reportJSON bool // --json

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "Emit normalized JSON instead of an indented tree")
}

func runReport(cmd *cobra.Command, args []string) error {
	records, err := report.Load(args[0])
	if err != nil {
		return err
	}

	if reportJSON {
		out, err := report.RenderJSON(records)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), report.RenderTree(records))
	return nil
}
