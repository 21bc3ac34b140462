// Package fetch concurrently fetches and parses the markdown documents
// referenced by a parsed llms.txt index.
package fetch

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/aman-cerp/docsearch-mcp/internal/chunk"
	"github.com/aman-cerp/docsearch-mcp/internal/llmsindex"
)

// Load fetches and parses each unique link among rawDocs, in parallel under
// a bounded worker pool (a buffered-channel semaphore plus a
// sync.WaitGroup). Ids are assigned 0..N-1 contiguously, in the order each
// link first appears in rawDocs, over only the documents that load
// successfully. A single document's fetch or parse failure is logged and
// that document is skipped; Load never aborts the whole load.
func Load(ctx context.Context, rawDocs []llmsindex.RawDocument, client *Client, concurrency int) []Document {
	if concurrency <= 0 {
		concurrency = 4
	}

	type entry struct {
		raw llmsindex.RawDocument
		idx int
	}

	byLink := make(map[string]int)
	var unique []entry
	for _, raw := range rawDocs {
		if _, seen := byLink[raw.Link]; seen {
			continue
		}
		byLink[raw.Link] = len(unique)
		unique = append(unique, entry{raw: raw, idx: len(unique)})
	}

	results := make([]*pendingDocument, len(unique))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for _, e := range unique {
		wg.Add(1)
		go func(e entry) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			doc, err := loadOne(ctx, client, e.raw)
			if err != nil {
				slog.Warn("fetch: failed to load document", "link", e.raw.Link, "error", err)
				return
			}
			results[e.idx] = doc
		}(e)
	}
	wg.Wait()

	// Ids are assigned contiguously over the documents that actually loaded,
	// in the order their links first appeared, so a failed fetch never
	// leaves a gap in the id space.
	docs := make([]Document, 0, len(results))
	var nextID uint32
	for _, p := range results {
		if p == nil {
			continue
		}
		docs = append(docs, p.toDocument(nextID))
		nextID++
	}
	return docs
}

// pendingDocument holds a successfully fetched and parsed document before
// its final contiguous id is known.
type pendingDocument struct {
	link     string
	title    string
	version  llmsindex.Version
	category llmsindex.Category
	meta     chunk.Metadata
	enhanced []chunk.EnhancedChunk
}

func (p *pendingDocument) toDocument(id uint32) Document {
	chunks := make([]DocumentChunk, 0, len(p.enhanced))
	for i, ec := range p.enhanced {
		chunks = append(chunks, buildDocumentChunk(id, i, p.title, p.meta, ec))
	}
	return Document{
		ID:       id,
		Link:     p.link,
		Title:    p.title,
		Version:  p.version,
		Category: p.category,
		Keywords: ExpandKeywords(p.meta.Keywords),
		Chunks:   chunks,
	}
}

func loadOne(ctx context.Context, client *Client, raw llmsindex.RawDocument) (*pendingDocument, error) {
	body, err := client.Get(ctx, raw.Link)
	if err != nil {
		return nil, err
	}

	meta, enhanced := chunk.Split(body)

	title := meta.Title
	if title == chunk.DefaultTitle && raw.Title != "" {
		title = raw.Title
	}

	return &pendingDocument{
		link:     raw.Link,
		title:    title,
		version:  raw.Version,
		category: raw.Category,
		meta:     meta,
		enhanced: enhanced,
	}, nil
}

func buildDocumentChunk(docID uint32, positionalIndex int, title string, meta chunk.Metadata, ec chunk.EnhancedChunk) DocumentChunk {
	rawText := ec.Content
	text := metadataBlock(meta, ec.HeaderStack) + rawText

	return DocumentChunk{
		ID:              docID,
		ChunkID:         ChunkID(docID, positionalIndex),
		OriginTitle:     title,
		Text:            text,
		RawText:         rawText,
		WordCount:       wordCount(rawText),
		EstimatedTokens: ec.EstimatedTokens,
		HeaderStack:     ec.HeaderStack,
	}
}

func metadataBlock(meta chunk.Metadata, headerStack []string) string {
	block := "Keywords: " + joinNonEmpty(meta.Keywords, ", ") + "\n"
	block += "Path: " + joinNonEmpty(headerStack, " > ") + "\n\n"
	return block
}

func joinNonEmpty(parts []string, sep string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

func wordCount(text string) int {
	count := 0
	inWord := false
	for _, r := range text {
		isSpace := r == ' ' || r == '\t' || r == '\n' || r == '\r'
		if isSpace {
			inWord = false
			continue
		}
		if !inWord {
			count++
			inWord = true
		}
	}
	return count
}
