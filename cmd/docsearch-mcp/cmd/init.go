package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aman-cerp/docsearch-mcp/configs"
)

// newInitCmd creates the init command, which writes the example library
// configuration to --config if no file exists there yet.
func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an example configuration file",
		Long:  `Init writes the bundled example library configuration to --config (default ./docsearch.yaml), unless a file already exists there.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd)
		},
	}

	return cmd
}

func runInit(cmd *cobra.Command) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("init: %s already exists", configPath)
	}

	if err := os.WriteFile(configPath, []byte(configs.ExampleConfig), 0o644); err != nil {
		return fmt.Errorf("init: write %s: %w", configPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote example configuration to %s\n", configPath)
	return nil
}
