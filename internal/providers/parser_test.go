package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProviderList(t *testing.T) {
	refs := ParseProviderList("mock|openai:key1| Anthropic ")
	require.Len(t, refs, 3)
	assert.Equal(t, ProviderRef{Raw: "openai:key1", Name: "openai", KeyAlias: "key1"}, refs[1])
	assert.Equal(t, "anthropic", refs[2].Name)
}

func TestParseProviderListEmptyDefaultsToMock(t *testing.T) {
	refs := ParseProviderList(" | ")
	require.Len(t, refs, 1)
	assert.Equal(t, "mock", refs[0].Name)
}
