package partyrock

import (
	"sort"
	"strings"
)

const DefaultModel = "claude-3-5-haiku"

var models = map[string]string{
	"claude-3-5-haiku":  "bedrock-anthropic.claude-3-5-haiku",
	"claude-3-5-sonnet": "bedrock-anthropic.claude-3-5-sonnet-v2-0",
	"nova-lite-v1-0":    "bedrock-amazon.nova-lite-v1-0",
	"nova-pro-v1-0":     "bedrock-amazon.nova-pro-v1-0",
	"llama3-1-7b":       "bedrock-meta.llama3-1-8b-instruct-v1",
	"llama3-1-70b":      "bedrock-meta.llama3-1-70b-instruct-v1",
	"mistral-small":     "bedrock-mistral.mistral-small-2402-v1-0",
	"mistral-large":     "bedrock-mistral.mistral-large-2407-v1-0",
}

// ResolveModel maps a public alias to the PartyRock model identifier. An empty
// name resolves to DefaultModel and a backend identifier resolves to itself.
func ResolveModel(name string) (string, bool) {
	if len(name) == 0 {
		name = DefaultModel
	}

	if id, ok := models[name]; ok {
		return id, true
	}

	for _, id := range models {
		if id == name {
			return id, true
		}
	}

	return "", false
}

// Models returns the supported aliases in lexical order.
func Models() []string {
	aliases := make([]string, 0, len(models))
	for alias := range models {
		aliases = append(aliases, alias)
	}

	sort.Strings(aliases)
	return aliases
}

// Vendor returns the model vendor encoded in a PartyRock identifier, e.g.
// "anthropic" for "bedrock-anthropic.claude-3-5-haiku".
func Vendor(id string) string {
	vendor, _, found := strings.Cut(id, ".")
	if !found {
		return ""
	}

	return strings.TrimPrefix(vendor, "bedrock-")
}
