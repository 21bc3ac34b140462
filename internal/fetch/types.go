package fetch

import (
	"strings"

	"github.com/aman-cerp/docsearch-mcp/internal/llmsindex"
)

// Document is an indexed document: a fetched, parsed markdown file assigned
// a stable numeric id within its library.
type Document struct {
	ID       uint32
	Link     string
	Title    string
	Version  llmsindex.Version
	Category llmsindex.Category
	Keywords map[string]struct{}
	Chunks   []DocumentChunk
}

// DocumentChunk is the indexed form of a splitter EnhancedChunk, carrying
// the composite chunkId and both the raw and metadata-prefixed text.
type DocumentChunk struct {
	ID              uint32
	ChunkID         uint32
	OriginTitle     string
	Text            string
	RawText         string
	WordCount       int
	EstimatedTokens int
	HeaderStack     []string
}

// ChunkID composes a document id and positional index into the external
// identifier used throughout search results and by-id lookups.
func ChunkID(docID uint32, positionalIndex int) uint32 {
	return docID*1000 + uint32(positionalIndex)
}

// ExpandKeywords builds the {as-is, lowercased, uppercased} keyword set
// a document's metadata keywords expand into, so a search matches
// regardless of the query's casing.
func ExpandKeywords(keywords []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keywords)*3)
	for _, k := range keywords {
		if k == "" {
			continue
		}
		set[k] = struct{}{}
		set[strings.ToLower(k)] = struct{}{}
		set[strings.ToUpper(k)] = struct{}{}
	}
	return set
}
