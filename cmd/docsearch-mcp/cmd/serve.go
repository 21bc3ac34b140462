package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aman-cerp/docsearch-mcp/internal/mcpserver"
)

// newServeCmd creates the serve command, which runs the MCP stdio server.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP stdio server",
		Long: `Run the documentation-search MCP server over stdio, exposing
list_libraries, search_docs, and get_document to a connected MCP client.

Per-library initialization happens lazily, on a client's first request
for that library; serve itself does no network access at startup.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, manager, err := loadManager()
			if err != nil {
				return err
			}

			server := mcpserver.New(manager)
			if err := server.Serve(cmd.Context()); err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		},
	}

	return cmd
}
