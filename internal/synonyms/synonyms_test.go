package synonyms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup_KnownTerm(t *testing.T) {
	syns := Lookup("install")
	assert.Contains(t, syns, "installation")
	assert.Contains(t, syns, "quickstart")
}

func TestLookup_CaseInsensitive(t *testing.T) {
	assert.Equal(t, Lookup("install"), Lookup("INSTALL"))
	assert.Equal(t, Lookup("Auth"), Lookup("auth"))
}

func TestLookup_UnknownTerm(t *testing.T) {
	assert.Nil(t, Lookup("xyzzy-not-a-term"))
}

func TestLookup_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, Lookup("config"), Lookup("  config  "))
}

func TestLookup_HangulPassesThroughUnchanged(t *testing.T) {
	assert.Nil(t, Lookup("설치"))
}

func TestConvert_ExpandsKnownTerms(t *testing.T) {
	out := Convert([]string{"install"})
	assert.Equal(t, Dictionary["install"], out)
}

func TestConvert_PassesThroughUnknownTerms(t *testing.T) {
	out := Convert([]string{"xyzzy-not-a-term"})
	assert.Equal(t, []string{"xyzzy-not-a-term"}, out)
}

func TestConvert_PreservesOrderAcrossMixedTerms(t *testing.T) {
	out := Convert([]string{"xyzzy-not-a-term", "auth"})
	assert.Equal(t, "xyzzy-not-a-term", out[0])
	assert.Equal(t, Dictionary["auth"], out[1:])
}

func TestConvert_EmptyInput(t *testing.T) {
	out := Convert(nil)
	assert.Empty(t, out)
}

func TestConvert_DoesNotDeduplicate(t *testing.T) {
	out := Convert([]string{"install", "installation"})
	assert.Equal(t, len(Dictionary["install"])+len(Dictionary["installation"]), len(out))
}
