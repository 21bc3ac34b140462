// Package mcpserver is the MCP tool adapter: three tools (list_libraries,
// search_docs, get_document) plus a doc://{lib}/{id} resource, wired to
// internal/reposvc and internal/docrepo.
//
// Every handler returns its error as an isError text CallToolResult rather
// than a Go error value: errors must come back as text with an isError
// flag, never as a transport-level JSON-RPC exception, so returning a Go
// error from a handler (which the SDK turns into a protocol error) is
// deliberately avoided throughout.
package mcpserver

import (
	"context"
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/aman-cerp/docsearch-mcp/internal/docrepo"
	"github.com/aman-cerp/docsearch-mcp/internal/reposvc"
	"github.com/aman-cerp/docsearch-mcp/internal/ui"
	"github.com/aman-cerp/docsearch-mcp/pkg/version"
)

// Defaults applied when a caller omits searchMode/maxTokens, and the
// bounds outside which a maxTokens value is rejected with an error.
const (
	DefaultSearchMode = "balanced"
	DefaultMaxTokens  = 25000
	MinMaxTokens      = 500
	MaxMaxTokens      = 50000
)

// Server is the MCP stdio server exposing the three documentation-search
// tools over a Manager.
type Server struct {
	mcp     *mcp.Server
	manager *reposvc.Manager
	styles  ui.Styles

	mu                  sync.Mutex
	registeredResources map[string]struct{}
}

// New builds a Server wired to manager. Tools are registered immediately;
// Serve starts the stdio transport loop.
func New(manager *reposvc.Manager) *Server {
	s := &Server{
		manager:             manager,
		styles:              ui.NoColorStyles(),
		registeredResources: make(map[string]struct{}),
	}

	s.mcp = mcp.NewServer(&mcp.Implementation{
		Name:    "docsearch-mcp",
		Version: version.Version,
	}, nil)

	s.registerTools()
	return s
}

// Serve runs the server over stdio until ctx is canceled or the transport
// closes.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_libraries",
		Description: "List every configured documentation library and whether it is currently available for search.",
	}, s.handleListLibraries)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_docs",
		Description: "Keyword search across a library's indexed documentation, returning ranked passages bounded by a token budget.",
	}, s.handleSearchDocs)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_document",
		Description: "Fetch a full indexed document by its numeric id, as one text fragment per chunk.",
	}, s.handleGetDocument)
}

// registerDocumentResources exposes every document in repo as
// a doc://{libraryID}/{id} MCP resource, the first time a library's
// repository becomes available.
func (s *Server) registerDocumentResources(libraryID string, repo *docrepo.Repository) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, done := s.registeredResources[libraryID]; done {
		return
	}
	s.registeredResources[libraryID] = struct{}{}

	for _, doc := range repo.Documents() {
		uri := fmt.Sprintf("doc://%s/%d", libraryID, doc.ID)
		docID := doc.ID
		title := doc.Title
		s.mcp.AddResource(&mcp.Resource{
			Name:        title,
			URI:         uri,
			Description: fmt.Sprintf("%s (library %s, id %d)", title, libraryID, docID),
			MIMEType:    "text/markdown",
		}, func(_ context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
			text := renderDocument(doc)
			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{
					{URI: uri, MIMEType: "text/markdown", Text: text},
				},
			}, nil
		})
	}
}
