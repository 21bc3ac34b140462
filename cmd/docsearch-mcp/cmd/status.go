package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aman-cerp/docsearch-mcp/internal/ui"
)

// newStatusCmd creates the status command, the CLI counterpart of the
// list_libraries MCP tool.
func newStatusCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show configured libraries and their availability",
		Long: `Status lists every library in the configuration file and reports
whether it has permanently failed initialization. A library that has
not yet been queried reports available, since initialization is lazy.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runStatus(cmd *cobra.Command, jsonOutput bool) error {
	_, manager, err := loadManager()
	if err != nil {
		return err
	}

	statuses := manager.Statuses()
	out := cmd.OutOrStdout()

	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	st := styles()
	fmt.Fprintln(out, ui.Header(st, fmt.Sprintf("Configured documentation libraries (%d)", len(statuses))))
	for _, s := range statuses {
		fmt.Fprintln(out, ui.StatusLine(st, s.ID, s.Available, s.Error))
	}
	return nil
}
