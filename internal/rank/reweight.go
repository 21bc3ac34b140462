package rank

import (
	"sort"

	"github.com/aman-cerp/docsearch-mcp/internal/llmsindex"
)

// categoryWeight is the scalar multiplier applied to a result's score
// based on the category of its owning document.
var categoryWeight = map[llmsindex.Category]float64{
	llmsindex.CategoryGuides:    1.2,
	llmsindex.CategoryReference: 1.0,
	llmsindex.CategorySDK:       1.0,
	llmsindex.CategoryResources: 0.8,
	llmsindex.CategoryBlog:      0.7,
	llmsindex.CategoryCodes:     0.5,
	llmsindex.CategoryLegacy:    0.4,
	llmsindex.CategoryUnknown:   1.0,
}

// CategoryOf resolves a result's owning document to its category.
type CategoryOf func(docID uint32) llmsindex.Category

// Reweight multiplies each result's score by its document's category
// weight and re-sorts descending by the new score.
func Reweight(results []Result, categoryOf CategoryOf) []Result {
	out := make([]Result, len(results))
	for i, r := range results {
		weight, ok := categoryWeight[categoryOf(r.ID)]
		if !ok {
			weight = categoryWeight[llmsindex.CategoryUnknown]
		}
		out[i] = Result{ID: r.ID, ChunkID: r.ChunkID, Score: r.Score * weight}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ChunkID < out[j].ChunkID
	})
	return out
}
