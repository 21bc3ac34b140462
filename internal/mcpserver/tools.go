package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	docerrors "github.com/aman-cerp/docsearch-mcp/internal/errors"
	"github.com/aman-cerp/docsearch-mcp/internal/fetch"
	"github.com/aman-cerp/docsearch-mcp/internal/llmsindex"
	"github.com/aman-cerp/docsearch-mcp/internal/rank"
	"github.com/aman-cerp/docsearch-mcp/internal/ui"
)

// Empty is the output type for tools whose entire response is carried in
// CallToolResult.Content rather than structured output.
type Empty struct{}

// ListLibrariesInput has no parameters.
type ListLibrariesInput struct{}

// SearchDocsInput is the search_docs tool's input schema.
type SearchDocsInput struct {
	LibraryID  string   `json:"libraryId" jsonschema:"the configured library id to search"`
	Keywords   []string `json:"keywords" jsonschema:"keywords to search for"`
	SearchMode string   `json:"searchMode,omitempty" jsonschema:"broad, balanced, or precise; default balanced"`
	MaxTokens  int      `json:"maxTokens,omitempty" jsonschema:"token budget for the response, 500-50000; default 25000"`
}

// GetDocumentInput is the get_document tool's input schema.
type GetDocumentInput struct {
	LibraryID string `json:"libraryId" jsonschema:"the configured library id the document belongs to"`
	ID        string `json:"id" jsonschema:"the document's numeric id, as returned by search_docs"`
}

type libraryStatusPayload struct {
	ID        string `json:"id"`
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

func (s *Server) handleListLibraries(_ context.Context, _ *mcp.CallToolRequest, _ ListLibrariesInput) (*mcp.CallToolResult, Empty, error) {
	statuses := s.manager.Statuses()

	payload := make([]libraryStatusPayload, len(statuses))
	lines := make([]string, len(statuses))
	available := 0
	for i, st := range statuses {
		payload[i] = libraryStatusPayload{ID: st.ID, Available: st.Available, Error: st.Error}
		lines[i] = ui.StatusLine(s.styles, st.ID, st.Available, st.Error)
		if st.Available {
			available++
		}
	}

	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errorResult(docerrors.Transient(err)), Empty{}, nil
	}

	preamble := ui.Header(s.styles, fmt.Sprintf("Configured documentation libraries (%d)", len(statuses)))
	text := preamble + "\n" + strings.Join(lines, "\n") + "\n\n" + string(encoded)

	return textResult(text), Empty{}, nil
}

func (s *Server) handleSearchDocs(ctx context.Context, _ *mcp.CallToolRequest, input SearchDocsInput) (*mcp.CallToolResult, Empty, error) {
	if strings.TrimSpace(input.LibraryID) == "" {
		return errorResult(invalidParams("libraryId is required")), Empty{}, nil
	}
	if len(input.Keywords) == 0 {
		return errorResult(invalidParams("keywords must contain at least one term")), Empty{}, nil
	}

	maxTokens := input.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}
	if maxTokens < MinMaxTokens || maxTokens > MaxMaxTokens {
		return errorResult(invalidParams(fmt.Sprintf("maxTokens must be between %d and %d", MinMaxTokens, MaxMaxTokens))), Empty{}, nil
	}

	mode := resolveMode(input.SearchMode)

	repo, err := s.manager.Get(ctx, input.LibraryID)
	if err != nil {
		return errorResult(err), Empty{}, nil
	}
	s.registerDocumentResources(input.LibraryID, repo)

	var blocks []string
	for _, version := range searchPartitions() {
		if out := repo.Search(version, input.Keywords, mode, maxTokens); out != "" {
			blocks = append(blocks, out)
		}
	}

	if len(blocks) == 0 {
		return textResult("No matching documentation found."), Empty{}, nil
	}

	return textResult(strings.Join(blocks, "\n\n")), Empty{}, nil
}

func (s *Server) handleGetDocument(ctx context.Context, _ *mcp.CallToolRequest, input GetDocumentInput) (*mcp.CallToolResult, Empty, error) {
	if strings.TrimSpace(input.LibraryID) == "" {
		return errorResult(invalidParams("libraryId is required")), Empty{}, nil
	}

	id64, parseErr := strconv.ParseUint(input.ID, 10, 32)
	if parseErr != nil {
		return errorResult(docerrors.InvalidDocumentId(input.ID)), Empty{}, nil
	}

	repo, err := s.manager.Get(ctx, input.LibraryID)
	if err != nil {
		return errorResult(err), Empty{}, nil
	}
	s.registerDocumentResources(input.LibraryID, repo)

	doc, ok := repo.ByID(uint32(id64))
	if !ok {
		return errorResult(docerrors.DocumentNotFound(input.LibraryID, input.ID)), Empty{}, nil
	}

	return &mcp.CallToolResult{Content: documentChunkContents(doc)}, Empty{}, nil
}

// searchPartitions lists every version partition; the tool input has no
// version filter, so both v1 and v2 partitions are searched and their
// outputs concatenated.
func searchPartitions() []llmsindex.Version {
	return []llmsindex.Version{llmsindex.VersionV1, llmsindex.VersionV2}
}

func resolveMode(raw string) rank.Mode {
	switch rank.Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case rank.ModeBroad:
		return rank.ModeBroad
	case rank.ModePrecise:
		return rank.ModePrecise
	default:
		return rank.ModeBalanced
	}
}

func invalidParams(msg string) error {
	return docerrors.Transient(fmt.Errorf("invalid parameters: %s", msg))
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func renderDocument(doc fetch.Document) string {
	fragments := make([]string, 0, len(doc.Chunks)+1)
	fragments = append(fragments, fmt.Sprintf("# %s\n* Document ID: %d", doc.Title, doc.ID))
	for _, c := range doc.Chunks {
		fragments = append(fragments, c.RawText)
	}
	return strings.Join(fragments, "\n\n")
}

// documentChunkContents renders doc as get_document's on-the-wire shape:
// one text fragment per chunk of the resolved document (spec.md §6), plus
// a leading header fragment, rather than a single joined string.
func documentChunkContents(doc fetch.Document) []mcp.Content {
	content := make([]mcp.Content, 0, len(doc.Chunks)+1)
	content = append(content, &mcp.TextContent{
		Text: fmt.Sprintf("# %s\n* Document ID: %d", doc.Title, doc.ID),
	})
	for _, c := range doc.Chunks {
		content = append(content, &mcp.TextContent{Text: c.RawText})
	}
	return content
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}
