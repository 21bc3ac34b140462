package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocs() []Document {
	return []Document{
		{ID: 0, ChunkID: 0, Text: "installing the widget sdk is easy"},
		{ID: 0, ChunkID: 1, Text: "configuring authentication tokens for the widget"},
		{ID: 1, ChunkID: 1000, Text: "unrelated content about cooking recipes"},
	}
}

func TestScore_RanksMatchingChunksAboveUnrelated(t *testing.T) {
	idx := NewIndex(sampleDocs())
	results := idx.Score(Tokenize("widget sdk install"), ModeBalanced)
	require.NotEmpty(t, results)
	assert.Equal(t, uint32(0), results[0].ChunkID)
}

func TestScore_FiltersBelowMinScoreRatio(t *testing.T) {
	idx := NewIndex(sampleDocs())
	results := idx.Score(Tokenize("widget"), ModePrecise)
	maxScore := results[0].Score
	minScore := maxScore * ParamsFor(ModePrecise).MinScoreRatio
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Score, minScore)
	}
}

func TestScore_SortedDescendingWithChunkIDTieBreak(t *testing.T) {
	docs := []Document{
		{ID: 0, ChunkID: 5, Text: "widget widget widget"},
		{ID: 0, ChunkID: 2, Text: "widget widget widget"},
	}
	idx := NewIndex(docs)
	results := idx.Score(Tokenize("widget"), ModeBalanced)
	require.Len(t, results, 2)
	assert.Equal(t, uint32(2), results[0].ChunkID)
	assert.Equal(t, uint32(5), results[1].ChunkID)
}

func TestScore_EmptyQueryReturnsNil(t *testing.T) {
	idx := NewIndex(sampleDocs())
	assert.Nil(t, idx.Score(nil, ModeBalanced))
}

func TestScore_EmptyCorpusReturnsNil(t *testing.T) {
	idx := NewIndex(nil)
	assert.Nil(t, idx.Score(Tokenize("anything"), ModeBalanced))
}

func TestScore_NoMatchingTermsReturnsNil(t *testing.T) {
	idx := NewIndex(sampleDocs())
	assert.Nil(t, idx.Score(Tokenize("xyzzyxyzzy"), ModeBalanced))
}

func TestTokenize_LowercasesAndSplitsOnPunctuation(t *testing.T) {
	assert.Equal(t, []string{"hello", "world_2"}, Tokenize("Hello, world_2!"))
}

func TestParamsFor_DefaultsToBalancedForUnknownMode(t *testing.T) {
	assert.Equal(t, ParamsFor(ModeBalanced), ParamsFor(Mode("nonsense")))
}

func TestParamsFor_MatchesSpecTable(t *testing.T) {
	assert.Equal(t, Params{K1: 1.0, B: 0.5, MinScoreRatio: 0.1}, ParamsFor(ModeBroad))
	assert.Equal(t, Params{K1: 1.2, B: 0.75, MinScoreRatio: 0.5}, ParamsFor(ModeBalanced))
	assert.Equal(t, Params{K1: 1.5, B: 0.9, MinScoreRatio: 1.0}, ParamsFor(ModePrecise))
}
