package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aman-cerp/docsearch-mcp/internal/llmsindex"
	"github.com/aman-cerp/docsearch-mcp/internal/rank"
	"github.com/aman-cerp/docsearch-mcp/internal/ui"
)

// searchOptions holds CLI flags for search, mirroring the search_docs MCP
// tool's parameters.
type searchOptions struct {
	library   string
	mode      string
	maxTokens int
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <keyword>...",
		Short: "Search a configured library's indexed documentation",
		Long: `Search runs the same BM25 keyword search and result assembly as the
search_docs MCP tool, against one configured library, and prints the
assembled result to stdout.

Examples:
  docsearch-mcp search --library nextjs routing middleware
  docsearch-mcp search --library nextjs --mode precise "server actions"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.library, "library", "L", "", "Configured library id to search (required)")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "balanced", "Search mode: broad, balanced, or precise")
	cmd.Flags().IntVarP(&opts.maxTokens, "max-tokens", "t", 25000, "Token budget for the response")

	return cmd
}

func runSearch(cmd *cobra.Command, keywords []string, opts searchOptions) error {
	if strings.TrimSpace(opts.library) == "" {
		return fmt.Errorf("search: --library is required")
	}

	_, manager, err := loadManager()
	if err != nil {
		return err
	}

	repo, err := manager.Get(cmd.Context(), opts.library)
	if err != nil {
		return err
	}

	mode := parseMode(opts.mode)

	var blocks []string
	for _, version := range []llmsindex.Version{llmsindex.VersionV1, llmsindex.VersionV2} {
		if out := repo.Search(version, keywords, mode, opts.maxTokens); out != "" {
			blocks = append(blocks, out)
		}
	}

	st := styles()
	out := cmd.OutOrStdout()
	if len(blocks) == 0 {
		fmt.Fprintln(out, ui.Header(st, "No matching documentation found."))
		return nil
	}

	fmt.Fprintln(out, strings.Join(blocks, "\n\n"))
	return nil
}

func parseMode(raw string) rank.Mode {
	switch rank.Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case rank.ModeBroad:
		return rank.ModeBroad
	case rank.ModePrecise:
		return rank.ModePrecise
	default:
		return rank.ModeBalanced
	}
}
