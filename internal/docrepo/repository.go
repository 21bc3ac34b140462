// Package docrepo implements the per-library Repository: the owner of a
// library's documents and chunks, exposing search and by-id lookup over a
// pair of BM25 indices (one per document-version partition).
package docrepo

import (
	"sort"

	"github.com/aman-cerp/docsearch-mcp/internal/assemble"
	"github.com/aman-cerp/docsearch-mcp/internal/fetch"
	"github.com/aman-cerp/docsearch-mcp/internal/llmsindex"
	"github.com/aman-cerp/docsearch-mcp/internal/rank"
	"github.com/aman-cerp/docsearch-mcp/internal/synonyms"
)

// DefaultMode is used when a caller does not specify a search mode.
const DefaultMode = rank.ModeBalanced

// Repository owns one library's indexed documents. It is built once and is
// immutable thereafter; queries are safe to run concurrently without
// external locking once constructed.
type Repository struct {
	documents map[uint32]fetch.Document

	partitions map[llmsindex.Version]*partition
}

type partition struct {
	index       *rank.Index
	allKeywords []string
	categoryOf  rank.CategoryOf
}

// New partitions documents into v1/v2 sets and builds one BM25 index per
// partition. A document with no recognized version belongs to neither
// partition: it is in neither keyword set and neither BM25 index, so
// Search never returns it (ByID still finds it).
func New(documents []fetch.Document) *Repository {
	byID := make(map[uint32]fetch.Document, len(documents))
	for _, d := range documents {
		byID[d.ID] = d
	}

	r := &Repository{
		documents:  byID,
		partitions: make(map[llmsindex.Version]*partition, 2),
	}

	for _, version := range []llmsindex.Version{llmsindex.VersionV1, llmsindex.VersionV2} {
		r.partitions[version] = buildPartition(documents, version, byID)
	}

	return r
}

func buildPartition(documents []fetch.Document, version llmsindex.Version, byID map[uint32]fetch.Document) *partition {
	var rankDocs []rank.Document
	keywordSet := make(map[string]struct{})

	for _, d := range documents {
		if d.Version != version {
			continue
		}
		for _, c := range d.Chunks {
			rankDocs = append(rankDocs, rank.Document{ID: c.ID, ChunkID: c.ChunkID, Text: c.Text})
		}
		for k := range d.Keywords {
			keywordSet[k] = struct{}{}
		}
	}

	keywords := make([]string, 0, len(keywordSet))
	for k := range keywordSet {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)

	return &partition{
		index:       rank.NewIndex(rankDocs),
		allKeywords: keywords,
		categoryOf: func(docID uint32) llmsindex.Category {
			return byID[docID].Category
		},
	}
}

// AllKeywords returns the sorted, deduped keyword vocabulary of the
// requested partition only: each partition's keywords come from that same
// partition's documents, never the other one.
func (r *Repository) AllKeywords(version llmsindex.Version) []string {
	p, ok := r.partitions[version]
	if !ok {
		return nil
	}
	out := make([]string, len(p.allKeywords))
	copy(out, p.allKeywords)
	return out
}

// Search expands keywords through the synonym dictionary, scores the
// version partition's BM25 index, reweights by category, and assembles the
// token-budgeted result string.
func (r *Repository) Search(version llmsindex.Version, keywords []string, mode rank.Mode, maxTokens int) string {
	p, ok := r.partitions[version]
	if !ok {
		return ""
	}

	expanded := synonyms.Convert(keywords)
	var query []string
	for _, term := range expanded {
		query = append(query, rank.Tokenize(term)...)
	}

	scored := p.index.Score(query, mode)
	if len(scored) == 0 {
		return ""
	}

	reweighted := rank.Reweight(scored, p.categoryOf)

	return assemble.Normalize(reweighted, maxTokens, r.lookup)
}

// ByID returns the document with the given id, or false if out of range.
func (r *Repository) ByID(id uint32) (fetch.Document, bool) {
	doc, ok := r.documents[id]
	return doc, ok
}

// Documents returns every indexed document, sorted by id, for exposing
// each one as an individually addressable resource.
func (r *Repository) Documents() []fetch.Document {
	out := make([]fetch.Document, 0, len(r.documents))
	for _, d := range r.documents {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Repository) lookup(id uint32) (fetch.Document, bool) {
	return r.ByID(id)
}
