package partyrock

import (
	internal_errors "github.com/bricks-cloud/partyrock/internal/errors"
	goopenai "github.com/sashabaranov/go-openai"
)

const (
	apiVersion        = 3
	widgetContextType = "chat-widget"
	systemPromptLead  = "Here is the system prompt to use: "
)

type ContentBlock struct {
	Text string `json:"text"`
}

type Message struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

type Context struct {
	Type  string `json:"type"`
	AppId string `json:"appId"`
}

type Options struct {
	Temperature float64 `json:"temperature"`
}

type Request struct {
	Messages   []Message `json:"messages"`
	ModelName  string    `json:"modelName"`
	Context    Context   `json:"context"`
	Options    Options   `json:"options"`
	ApiVersion int       `json:"apiVersion"`
}

// Translator converts OpenAI chat completion requests into PartyRock requests.
type Translator struct {
	// SystemAsUser rewrites system messages into user messages carrying the
	// system prompt, for apps that reject the system role.
	SystemAsUser bool
}

func (t Translator) Translate(r *goopenai.ChatCompletionRequest, appId string) (*Request, error) {
	id, ok := ResolveModel(r.Model)
	if !ok {
		return nil, internal_errors.NewModelError(r.Model)
	}

	messages := make([]Message, 0, len(r.Messages))
	for _, m := range r.Messages {
		messages = append(messages, t.translateMessage(m))
	}

	return &Request{
		Messages:  messages,
		ModelName: id,
		Context: Context{
			Type:  widgetContextType,
			AppId: appId,
		},
		Options: Options{
			Temperature: 0,
		},
		ApiVersion: apiVersion,
	}, nil
}

func (t Translator) translateMessage(m goopenai.ChatCompletionMessage) Message {
	blocks := contentBlocks(m)

	if t.SystemAsUser && m.Role == goopenai.ChatMessageRoleSystem {
		for i := range blocks {
			blocks[i].Text = systemPromptLead + blocks[i].Text
		}

		return Message{
			Role:    goopenai.ChatMessageRoleUser,
			Content: blocks,
		}
	}

	return Message{
		Role:    m.Role,
		Content: blocks,
	}
}

func contentBlocks(m goopenai.ChatCompletionMessage) []ContentBlock {
	blocks := []ContentBlock{}
	for _, part := range m.MultiContent {
		if part.Type == goopenai.ChatMessagePartTypeText {
			blocks = append(blocks, ContentBlock{Text: part.Text})
		}
	}

	if len(blocks) == 0 {
		blocks = append(blocks, ContentBlock{Text: m.Content})
	}

	return blocks
}
