package partyrock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveModel(t *testing.T) {
	cases := map[string]string{
		"":                  "bedrock-anthropic.claude-3-5-haiku",
		"claude-3-5-haiku":  "bedrock-anthropic.claude-3-5-haiku",
		"claude-3-5-sonnet": "bedrock-anthropic.claude-3-5-sonnet-v2-0",
		"nova-lite-v1-0":    "bedrock-amazon.nova-lite-v1-0",
		"nova-pro-v1-0":     "bedrock-amazon.nova-pro-v1-0",
		"llama3-1-7b":       "bedrock-meta.llama3-1-8b-instruct-v1",
		"llama3-1-70b":      "bedrock-meta.llama3-1-70b-instruct-v1",
		"mistral-small":     "bedrock-mistral.mistral-small-2402-v1-0",
		"mistral-large":     "bedrock-mistral.mistral-large-2407-v1-0",

		"bedrock-meta.llama3-1-70b-instruct-v1": "bedrock-meta.llama3-1-70b-instruct-v1",
	}

	for name, expected := range cases {
		id, ok := ResolveModel(name)
		assert.True(t, ok, name)
		assert.Equal(t, expected, id, name)
	}

	for _, name := range []string{"gpt-4", "claude", "CLAUDE-3-5-HAIKU", " claude-3-5-haiku"} {
		id, ok := ResolveModel(name)
		assert.False(t, ok, name)
		assert.Empty(t, id, name)
	}
}

func TestModels(t *testing.T) {
	aliases := Models()
	assert.Len(t, aliases, 8)
	assert.Equal(t, "claude-3-5-haiku", aliases[0])

	for _, alias := range aliases {
		_, ok := ResolveModel(alias)
		assert.True(t, ok, alias)
	}
}

func TestVendor(t *testing.T) {
	assert.Equal(t, "anthropic", Vendor("bedrock-anthropic.claude-3-5-haiku"))
	assert.Equal(t, "amazon", Vendor("bedrock-amazon.nova-pro-v1-0"))
	assert.Equal(t, "", Vendor("no-vendor"))
}
