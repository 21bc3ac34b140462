package assemble

import (
	"regexp"
	"sort"
	"strings"

	"github.com/aman-cerp/docsearch-mcp/internal/fetch"
	"github.com/aman-cerp/docsearch-mcp/internal/tokencost"
)

// TruncationSentinel is appended whenever a document's chunks are cut off
// before all of them fit the remaining budget.
const TruncationSentinel = "\n\n... (there is more content...)"

// minBoundarySearchTokens is the floor below which a partial cut is not
// attempted at all; too little room left makes a semantic-boundary search
// pointless.
const minBoundarySearchTokens = 100

var (
	paragraphBreakRe = regexp.MustCompile(`\n\n`)
	sentenceEndRe    = regexp.MustCompile(`[.!?]\s+`)
	listItemRe       = regexp.MustCompile(`\n-\s+`)
	fencedCodeEndRe  = regexp.MustCompile("```\n")
)

// TruncateResult is the output of Truncate: the assembled text and the
// token cost actually spent (including the sentinel, when present).
type TruncateResult struct {
	Text            string
	EstimatedTokens int
}

// Truncate accumulates chunks in order while they fit remainingTokens, then
// attempts one partial cut of the first chunk that doesn't fit at a
// semantic boundary. Selected text is always drawn from RawText rather
// than the metadata-prefixed Text field, for both boundary search and
// output, so truncation never cuts mid-metadata-block.
func Truncate(chunks []fetch.DocumentChunk, remainingTokens int) TruncateResult {
	if remainingTokens <= 0 || len(chunks) == 0 {
		return TruncateResult{}
	}

	var pieces []string
	spent := 0
	selectedCount := 0

	for i, c := range chunks {
		if c.EstimatedTokens <= remainingTokens-spent {
			pieces = append(pieces, c.RawText)
			spent += c.EstimatedTokens
			selectedCount++
			continue
		}

		if remaining := remainingTokens - spent; remaining >= minBoundarySearchTokens {
			// A partial cut still omits the rest of this chunk, so it is not
			// counted in selectedCount and the sentinel is appended below.
			if partial, tokens, ok := partialCut(c.RawText, remaining); ok {
				pieces = append(pieces, partial)
				spent += tokens
			}
		}
		_ = i
		break
	}

	if len(pieces) == 0 {
		return TruncateResult{}
	}

	text := strings.Join(pieces, "\n\n")
	if selectedCount < len(chunks) {
		text += TruncationSentinel
		spent += tokencost.Estimate(TruncationSentinel)
	}

	return TruncateResult{Text: text, EstimatedTokens: spent}
}

// partialCut finds the semantic boundary in text closest to (but not past)
// remaining tokens, returning the prefix up to that boundary.
func partialCut(text string, remaining int) (string, int, bool) {
	boundaries := semanticBoundaries(text)
	if len(boundaries) == 0 {
		return "", 0, false
	}

	for i := len(boundaries) - 1; i >= 0; i-- {
		prefix := text[:boundaries[i]]
		if prefix == "" {
			continue
		}
		if est := tokencost.Estimate(prefix); est <= remaining {
			return prefix, est, true
		}
	}
	return "", 0, false
}

// semanticBoundaries returns sorted, deduped byte offsets in text
// immediately after a paragraph break, sentence terminator, list item
// marker, or the end of a fenced code block.
func semanticBoundaries(text string) []int {
	set := make(map[int]struct{})
	for _, re := range []*regexp.Regexp{paragraphBreakRe, sentenceEndRe, listItemRe, fencedCodeEndRe} {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			set[loc[1]] = struct{}{}
		}
	}

	out := make([]int, 0, len(set))
	for offset := range set {
		out = append(out, offset)
	}
	sort.Ints(out)
	return out
}
