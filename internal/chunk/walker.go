package chunk

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/aman-cerp/docsearch-mcp/internal/tokencost"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Split extracts the leading metadata block (if any) and walks the
// remaining markdown body's AST, emitting EnhancedChunks.
func Split(markdown string) (Metadata, []EnhancedChunk) {
	meta, body := ExtractMetadata(markdown)

	source := []byte(body)
	reader := text.NewReader(source)
	doc := md.Parser().Parse(reader)

	w := &walker{source: source, headerStack: []string{meta.Title}}
	w.walk(doc)
	w.flush()

	return meta, w.chunks
}

type frame struct {
	node ast.Node
}

type walker struct {
	source      []byte
	headerStack []string
	buffer      []string
	chunks      []EnhancedChunk
}

// walk traverses the AST in document order using an explicit stack rather
// than recursion, dispatching each node to its handler. Nodes whose full
// text is consumed at the point of encounter (heading, list item, link,
// inline code) are not pushed onto the stack a second time as children.
func (w *walker) walk(doc ast.Node) {
	stack := w.pushChildren(nil, doc)
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		skipChildren := w.visit(f.node)
		if !skipChildren {
			stack = w.pushChildren(stack, f.node)
		}
	}
}

func (w *walker) pushChildren(stack []frame, n ast.Node) []frame {
	if !n.HasChildren() {
		return stack
	}
	child := n.LastChild()
	for child != nil {
		stack = append(stack, frame{node: child})
		child = child.PreviousSibling()
	}
	return stack
}

// visit dispatches n to its per-type handler and returns whether n's
// children have already been fully consumed (and must not be walked again).
func (w *walker) visit(n ast.Node) bool {
	switch node := n.(type) {
	case *ast.Heading:
		w.handleHeading(node)
		return true

	case *ast.Paragraph:
		w.append("\n")
		return false

	case *ast.Text:
		value := string(node.Segment.Value(w.source))
		// goldmark may split one run of text into adjacent Text nodes; glue
		// a continuation onto the previous fragment so flush's space-join
		// does not insert a gap inside the run.
		if prev, ok := node.PreviousSibling().(*ast.Text); ok && !prev.SoftLineBreak() && !prev.HardLineBreak() && len(w.buffer) > 0 {
			w.buffer[len(w.buffer)-1] += value
			return false
		}
		w.append(value)
		return false

	case *ast.CodeSpan:
		w.append("`" + w.extractText(node) + "`")
		return true

	case *ast.FencedCodeBlock:
		w.append(w.renderFencedCode(node))
		return true

	case *ast.CodeBlock:
		w.append(w.renderCodeBlock(node))
		return true

	case *ast.ListItem:
		w.append("\n\n* " + w.extractText(node) + "\n")
		return true

	case *ast.Link:
		w.append(w.extractText(node))
		return true

	case *ast.AutoLink:
		w.append(w.extractText(node))
		return true

	case *extast.Table:
		w.append(w.renderTable(node))
		return true

	default:
		return false
	}
}

func (w *walker) append(value string) {
	if value == "" {
		return
	}
	w.buffer = append(w.buffer, value)
}

// handleHeading is the central header-stack algorithm: it flushes the
// chunk accumulated under the previous heading and pushes/pops the stack
// to match the new heading's level.
func (w *walker) handleHeading(h *ast.Heading) {
	d := h.Level
	cleanText := w.extractText(h)

	if d > MaxHeadingDepth {
		w.append("\n\n" + strings.Repeat("#", d) + " " + cleanText + "\n")
		return
	}

	w.flush()

	for len(w.headerStack) >= d {
		w.headerStack = w.headerStack[:len(w.headerStack)-1]
	}
	for len(w.headerStack) < d-1 {
		w.headerStack = append(w.headerStack, "")
	}
	w.headerStack = append(w.headerStack, cleanText)

	w.append("\n\n" + strings.Repeat("#", d) + " " + cleanText + "\n")
}

// flush joins the buffered fragments, drops an empty result, and otherwise
// emits a new EnhancedChunk snapshotting the current header stack.
func (w *walker) flush() {
	defer func() { w.buffer = nil }()

	content := strings.TrimSpace(strings.Join(w.buffer, " "))
	if content == "" {
		return
	}

	stack := make([]string, len(w.headerStack))
	copy(stack, w.headerStack)

	w.chunks = append(w.chunks, EnhancedChunk{
		Content:         content,
		HeaderStack:     stack,
		EstimatedTokens: tokencost.Estimate(content),
	})
}

// extractText collects the literal text of every ast.Text/ast.String
// descendant of n, in document order, dropping markup (link URLs, emphasis
// markers, image syntax).
func (w *walker) extractText(n ast.Node) string {
	var buf strings.Builder
	var walk func(node ast.Node)
	walk = func(node ast.Node) {
		switch tn := node.(type) {
		case *ast.Text:
			buf.Write(tn.Segment.Value(w.source))
			if tn.SoftLineBreak() || tn.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(tn.Value)
		case *ast.CodeSpan:
			buf.WriteString("`")
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				walk(c)
			}
			buf.WriteString("`")
			return
		}
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}

func (w *walker) renderFencedCode(n *ast.FencedCodeBlock) string {
	lang := string(n.Language(w.source))
	var buf strings.Builder
	for i := 0; i < n.Lines().Len(); i++ {
		seg := n.Lines().At(i)
		buf.Write(seg.Value(w.source))
	}
	return "\n```" + lang + "\n" + strings.TrimRight(buf.String(), "\n") + "\n```\n"
}

func (w *walker) renderCodeBlock(n *ast.CodeBlock) string {
	var buf strings.Builder
	for i := 0; i < n.Lines().Len(); i++ {
		seg := n.Lines().At(i)
		buf.Write(seg.Value(w.source))
	}
	return "\n```\n" + strings.TrimRight(buf.String(), "\n") + "\n```\n"
}

// renderTable formats a GFM table as a pipe table. Alignment is read off
// the Table node itself (goldmark records it there, not per cell).
func (w *walker) renderTable(t *extast.Table) string {
	var rows [][]string
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, w.extractText(cell))
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString("\n")
	for i, row := range rows {
		buf.WriteString("| " + strings.Join(row, " | ") + " |\n")
		if i == 0 {
			seps := make([]string, len(row))
			for j := range row {
				switch {
				case j < len(t.Alignments) && t.Alignments[j] == extast.AlignLeft:
					seps[j] = ":---"
				case j < len(t.Alignments) && t.Alignments[j] == extast.AlignRight:
					seps[j] = "---:"
				case j < len(t.Alignments) && t.Alignments[j] == extast.AlignCenter:
					seps[j] = ":---:"
				default:
					seps[j] = "---"
				}
			}
			buf.WriteString("| " + strings.Join(seps, " | ") + " |\n")
		}
	}
	return buf.String()
}
