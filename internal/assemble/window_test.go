package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunksForIds_SingleIndexExpandsBothSides(t *testing.T) {
	out := ChunksForIds(0, 10, []uint32{5}, 1)
	assert.Equal(t, []uint32{4, 5, 6}, out)
}

func TestChunksForIds_ClampsAtDocumentBoundaries(t *testing.T) {
	out := ChunksForIds(0, 3, []uint32{0}, 1)
	assert.Equal(t, []uint32{0, 1}, out)

	out = ChunksForIds(0, 3, []uint32{2}, 1)
	assert.Equal(t, []uint32{1, 2}, out)
}

func TestChunksForIds_MergesOverlappingWindows(t *testing.T) {
	out := ChunksForIds(0, 10, []uint32{2, 3}, 1)
	assert.Equal(t, []uint32{1, 2, 3, 4}, out)
}

func TestChunksForIds_SeparatesDistantGroups(t *testing.T) {
	out := ChunksForIds(0, 10, []uint32{1, 8}, 1)
	assert.Equal(t, []uint32{0, 1, 2, 7, 8, 9}, out)
}

func TestChunksForIds_ExternalIdsUseDocIDOffset(t *testing.T) {
	out := ChunksForIds(3, 5, []uint32{3002}, 1)
	assert.Equal(t, []uint32{3001, 3002, 3003}, out)
}

func TestChunksForIds_OutOfRangeIdsAreIgnored(t *testing.T) {
	out := ChunksForIds(0, 3, []uint32{999}, 1)
	assert.Nil(t, out)
}

func TestChunksForIds_ZeroChunksReturnsNil(t *testing.T) {
	out := ChunksForIds(0, 0, []uint32{0}, 1)
	assert.Nil(t, out)
}

func TestChunksForIds_DedupesInput(t *testing.T) {
	out := ChunksForIds(0, 10, []uint32{5, 5, 5}, 0)
	assert.Equal(t, []uint32{5}, out)
}
