package urlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAbsolute(t *testing.T) {
	assert.True(t, IsAbsolute("https://docs.example.com/guides/widget"))
	assert.True(t, IsAbsolute("http://docs.example.com"))
	assert.False(t, IsAbsolute("/providers/openai"))
	assert.False(t, IsAbsolute("ftp://example.com/file"))
	assert.False(t, IsAbsolute("not a url at all"))
}

func TestExtractBase(t *testing.T) {
	base, err := ExtractBase("https://ai-sdk.dev/llms.txt")
	require.NoError(t, err)
	assert.Equal(t, "https://ai-sdk.dev", base)

	_, err = ExtractBase("/relative/path")
	assert.Error(t, err)
}

func TestResolve_RelativePath(t *testing.T) {
	got, err := Resolve("/providers/openai", "https://ai-sdk.dev/llms.txt")
	require.NoError(t, err)
	assert.Equal(t, "https://ai-sdk.dev/providers/openai", got)
}

func TestResolve_AbsoluteUnchanged(t *testing.T) {
	got, err := Resolve("https://other.example.com/x", "https://ai-sdk.dev/llms.txt")
	require.NoError(t, err)
	assert.Equal(t, "https://other.example.com/x", got)
}

func TestResolve_EmptyReturnsBase(t *testing.T) {
	got, err := Resolve("", "https://ai-sdk.dev/llms.txt")
	require.NoError(t, err)
	assert.Equal(t, "https://ai-sdk.dev/llms.txt", got)
}

func TestResolve_DotSegments(t *testing.T) {
	got, err := Resolve("../guides/widget", "https://docs.example.com/v1/api/index")
	require.NoError(t, err)
	assert.Equal(t, "https://docs.example.com/v1/guides/widget", got)
}

func TestResolve_Idempotent(t *testing.T) {
	base := "https://ai-sdk.dev/llms.txt"
	for _, x := range []string{"/providers/openai", "https://other.example.com/x", "rel/path"} {
		once, err := Resolve(x, base)
		require.NoError(t, err)
		twice, err := Resolve(once, base)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestResolve_InvalidBaseFails(t *testing.T) {
	_, err := Resolve("rel", "http://foo.com:invalidport")
	assert.Error(t, err)
}
