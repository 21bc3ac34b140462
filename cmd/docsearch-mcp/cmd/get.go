package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	docerrors "github.com/aman-cerp/docsearch-mcp/internal/errors"
	"github.com/aman-cerp/docsearch-mcp/internal/fetch"
)

func newGetCmd() *cobra.Command {
	var library string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a full indexed document by its numeric id",
		Long: `Get prints a document's full content, chunk by chunk, the same way the
get_document MCP tool does. The id is the one returned alongside a
search result.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, library, args[0])
		},
	}

	cmd.Flags().StringVarP(&library, "library", "L", "", "Configured library id the document belongs to (required)")

	return cmd
}

func runGet(cmd *cobra.Command, library, rawID string) error {
	if library == "" {
		return fmt.Errorf("get: --library is required")
	}

	id64, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		return docerrors.InvalidDocumentId(rawID)
	}

	_, manager, err := loadManager()
	if err != nil {
		return err
	}

	repo, err := manager.Get(cmd.Context(), library)
	if err != nil {
		return err
	}

	doc, ok := repo.ByID(uint32(id64))
	if !ok {
		return docerrors.DocumentNotFound(library, rawID)
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderDocumentText(doc))
	return nil
}

// renderDocumentText joins a document's chunks into one printable string,
// the way a terminal needs it. The get_document MCP tool itself returns
// one text fragment per chunk (spec.md §6); this single-string rendering
// matches internal/mcpserver's doc:// resource, not that tool's wire shape.
func renderDocumentText(doc fetch.Document) string {
	fragments := make([]string, 0, len(doc.Chunks)+1)
	fragments = append(fragments, fmt.Sprintf("# %s\n* Document ID: %d", doc.Title, doc.ID))
	for _, c := range doc.Chunks {
		fragments = append(fragments, c.RawText)
	}
	return strings.Join(fragments, "\n\n")
}
