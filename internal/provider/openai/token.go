package openai

import (
	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
	goopenai "github.com/sashabaranov/go-openai"
)

// Per-message overhead used by OpenAI's chat format.
const (
	tokensPerMessage = 3
	tokensPerReply   = 3
)

type encoder interface {
	Encode(text string, allowedSpecial []string, disallowedSpecial []string) []int
}

// TokenCounter estimates token usage for backends that do not report it.
type TokenCounter struct {
	encoder encoder
}

func NewTokenCounter() (*TokenCounter, error) {
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	e, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, err
	}

	return &TokenCounter{
		encoder: e,
	}, nil
}

func (tc *TokenCounter) Count(input string) int {
	if len(input) == 0 {
		return 0
	}

	return len(tc.encoder.Encode(input, nil, nil))
}

// CountMessages counts prompt tokens the way OpenAI bills chat messages.
func (tc *TokenCounter) CountMessages(messages []goopenai.ChatCompletionMessage) int {
	result := tokensPerReply
	for _, msg := range messages {
		result += tokensPerMessage + tc.Count(msg.Role) + tc.Count(msg.Content)
		for _, part := range msg.MultiContent {
			result += tc.Count(part.Text)
		}
	}

	return result
}

func (tc *TokenCounter) EstimateUsage(messages []goopenai.ChatCompletionMessage, completion string) *Usage {
	prompt := tc.CountMessages(messages)
	completionTks := tc.Count(completion)

	return &Usage{
		PromptTokens:     prompt,
		CompletionTokens: completionTks,
		TotalTokens:      prompt + completionTks,
	}
}
