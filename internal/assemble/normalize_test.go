package assemble

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aman-cerp/docsearch-mcp/internal/fetch"
	"github.com/aman-cerp/docsearch-mcp/internal/rank"
)

func sampleDocument(id uint32, title string, texts ...string) fetch.Document {
	chunks := make([]fetch.DocumentChunk, len(texts))
	for i, text := range texts {
		chunks[i] = fetch.DocumentChunk{
			ID:              id,
			ChunkID:         fetch.ChunkID(id, i),
			OriginTitle:     title,
			RawText:         text,
			EstimatedTokens: len(strings.Fields(text)),
		}
	}
	return fetch.Document{ID: id, Title: title, Chunks: chunks}
}

func TestNormalize_PrependsDocumentHeader(t *testing.T) {
	doc := sampleDocument(0, "Widget Guide", "intro text", "body text")
	lookup := func(id uint32) (fetch.Document, bool) {
		if id == 0 {
			return doc, true
		}
		return fetch.Document{}, false
	}

	results := []rank.Result{{ID: 0, ChunkID: fetch.ChunkID(0, 0), Score: 1}}
	out := Normalize(results, 1000, lookup)

	assert.True(t, strings.HasPrefix(out, "# Original Document Title: Widget Guide\n* Original Document ID: 0"))
}

func TestNormalize_GroupsByDocumentInFirstAppearanceOrder(t *testing.T) {
	docA := sampleDocument(1, "Doc A", "a chunk zero", "a chunk one")
	docB := sampleDocument(2, "Doc B", "b chunk zero")
	lookup := func(id uint32) (fetch.Document, bool) {
		switch id {
		case 1:
			return docA, true
		case 2:
			return docB, true
		}
		return fetch.Document{}, false
	}

	results := []rank.Result{
		{ID: 2, ChunkID: fetch.ChunkID(2, 0), Score: 5},
		{ID: 1, ChunkID: fetch.ChunkID(1, 0), Score: 10},
	}
	out := Normalize(results, 1000, lookup)

	docBIdx := strings.Index(out, "Doc B")
	docAIdx := strings.Index(out, "Doc A")
	require.GreaterOrEqual(t, docBIdx, 0)
	require.GreaterOrEqual(t, docAIdx, 0)
	assert.Less(t, docBIdx, docAIdx)
}

func TestNormalize_WidensWithNeighboringChunk(t *testing.T) {
	doc := sampleDocument(0, "Doc", "chunk zero", "chunk one", "chunk two")
	lookup := func(id uint32) (fetch.Document, bool) { return doc, true }

	results := []rank.Result{{ID: 0, ChunkID: fetch.ChunkID(0, 1), Score: 1}}
	out := Normalize(results, 1000, lookup)

	assert.Contains(t, out, "chunk zero")
	assert.Contains(t, out, "chunk one")
	assert.Contains(t, out, "chunk two")
}

func TestNormalize_UnknownDocumentIsSkipped(t *testing.T) {
	lookup := func(id uint32) (fetch.Document, bool) { return fetch.Document{}, false }
	results := []rank.Result{{ID: 99, ChunkID: fetch.ChunkID(99, 0), Score: 1}}
	out := Normalize(results, 1000, lookup)
	assert.Equal(t, "", out)
}

func TestNormalize_EmptyResultsReturnsEmptyString(t *testing.T) {
	out := Normalize(nil, 1000, func(uint32) (fetch.Document, bool) { return fetch.Document{}, false })
	assert.Equal(t, "", out)
}

func TestNormalize_ZeroBudgetReturnsEmptyString(t *testing.T) {
	doc := sampleDocument(0, "Doc", "text")
	lookup := func(id uint32) (fetch.Document, bool) { return doc, true }
	results := []rank.Result{{ID: 0, ChunkID: fetch.ChunkID(0, 0), Score: 1}}
	assert.Equal(t, "", Normalize(results, 0, lookup))
}
