package assemble

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aman-cerp/docsearch-mcp/internal/fetch"
	"github.com/aman-cerp/docsearch-mcp/internal/rank"
	"github.com/aman-cerp/docsearch-mcp/internal/tokencost"
)

// DocumentLookup resolves a document id to its fetched Document. Search
// results only carry ids; the assembler needs the full chunk list and
// title to build the final text.
type DocumentLookup func(id uint32) (fetch.Document, bool)

// windowSize is the number of neighboring chunks pulled in on each side of
// a matched chunk, to give surrounding context around the hit.
const windowSize = 1

// Normalize groups ranked results by document (preserving first-appearance
// order), widens each group's chunk set with ChunksForIds, truncates each
// document's block to fit the remaining token budget, and joins the
// resulting blocks with a blank line. Per the resolved open question, the
// per-document header's token cost is subtracted from the budget only
// after that document's chunks have been selected, so a single document's
// selection may slightly overshoot maxTokens before the next document's
// budget is reduced.
func Normalize(results []rank.Result, maxTokens int, lookup DocumentLookup) string {
	if len(results) == 0 || maxTokens <= 0 {
		return ""
	}

	order, chunksByDoc := groupByDocument(results)

	var blocks []string
	remaining := maxTokens

	for _, docID := range order {
		if remaining <= 0 {
			break
		}

		doc, ok := lookup(docID)
		if !ok || len(doc.Chunks) == 0 {
			continue
		}

		widened := ChunksForIds(docID, len(doc.Chunks), chunksByDoc[docID], windowSize)
		if len(widened) == 0 {
			continue
		}

		chunks := resolveChunks(doc, widened)
		if len(chunks) == 0 {
			continue
		}

		result := Truncate(chunks, remaining)
		if result.Text == "" {
			continue
		}

		header := fmt.Sprintf("# Original Document Title: %s\n* Original Document ID: %d", doc.Title, docID)
		blocks = append(blocks, header+"\n\n"+result.Text)

		remaining -= result.EstimatedTokens
		remaining -= tokencost.Estimate(header)
	}

	return strings.Join(blocks, "\n\n")
}

// groupByDocument returns document ids in first-appearance order and, for
// each, its result chunk ids deduped and sorted ascending.
func groupByDocument(results []rank.Result) ([]uint32, map[uint32][]uint32) {
	order := make([]uint32, 0)
	seenDoc := make(map[uint32]struct{})
	chunkSets := make(map[uint32]map[uint32]struct{})

	for _, r := range results {
		if _, ok := seenDoc[r.ID]; !ok {
			seenDoc[r.ID] = struct{}{}
			order = append(order, r.ID)
			chunkSets[r.ID] = make(map[uint32]struct{})
		}
		chunkSets[r.ID][r.ChunkID] = struct{}{}
	}

	chunksByDoc := make(map[uint32][]uint32, len(chunkSets))
	for docID, set := range chunkSets {
		ids := make([]uint32, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		chunksByDoc[docID] = ids
	}

	return order, chunksByDoc
}

// resolveChunks maps external chunkIds back to the document's dense chunk
// slice, preserving chunkId order.
func resolveChunks(doc fetch.Document, chunkIDs []uint32) []fetch.DocumentChunk {
	byChunkID := make(map[uint32]fetch.DocumentChunk, len(doc.Chunks))
	for _, c := range doc.Chunks {
		byChunkID[c.ChunkID] = c
	}

	out := make([]fetch.DocumentChunk, 0, len(chunkIDs))
	for _, cid := range chunkIDs {
		if c, ok := byChunkID[cid]; ok {
			out = append(out, c)
		}
	}
	return out
}
