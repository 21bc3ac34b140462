// Package chunk implements the markdown splitter: metadata extraction,
// goldmark AST walking, and context-aware chunk emission, one chunk per
// section under its nearest headings.
package chunk

// Metadata is the leading block parsed from a document, or its defaults.
type Metadata struct {
	Title       string
	Description string
	Keywords    []string
}

// EnhancedChunk is the splitter's output unit: one section's content
// together with the heading path that introduces it.
type EnhancedChunk struct {
	Content         string
	HeaderStack     []string
	EstimatedTokens int
}

const (
	// MaxHeadingDepth bounds which heading levels participate in the
	// header-stack algorithm; deeper headings do not reset the stack.
	MaxHeadingDepth = 4
	// DefaultTitle is used when no metadata block supplies one.
	DefaultTitle = "No Title"
)
