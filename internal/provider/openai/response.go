package openai

const (
	ObjectChatCompletion      = "chat.completion"
	ObjectChatCompletionChunk = "chat.completion.chunk"

	RoleAssistant    = "assistant"
	FinishReasonStop = "stop"
)

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type ResponseMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Choice struct {
	Message      ResponseMessage `json:"message"`
	FinishReason string          `json:"finish_reason"`
	Index        int             `json:"index"`
}

type ChatCompletionResponse struct {
	Id      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`
}

type Delta struct {
	Content string `json:"content"`
}

// StreamChoice leaves FinishReason nil on content chunks so it is sent as null.
type StreamChoice struct {
	Delta        Delta   `json:"delta"`
	Index        int     `json:"index"`
	FinishReason *string `json:"finish_reason"`
}

type ChatCompletionChunk struct {
	Id      string         `json:"id"`
	Object  string         `json:"object"`
	Created int64          `json:"created"`
	Model   string         `json:"model"`
	Choices []StreamChoice `json:"choices"`
}

func NewChatCompletionResponse(id, model, content string, created int64) *ChatCompletionResponse {
	return &ChatCompletionResponse{
		Id:      id,
		Object:  ObjectChatCompletion,
		Created: created,
		Model:   model,
		Choices: []Choice{
			{
				Message: ResponseMessage{
					Role:    RoleAssistant,
					Content: content,
				},
				FinishReason: FinishReasonStop,
				Index:        0,
			},
		},
	}
}

func NewContentChunk(id, model, content string, created int64) *ChatCompletionChunk {
	return &ChatCompletionChunk{
		Id:      id,
		Object:  ObjectChatCompletionChunk,
		Created: created,
		Model:   model,
		Choices: []StreamChoice{
			{
				Delta: Delta{Content: content},
			},
		},
	}
}

func NewStopChunk(id, model string, created int64) *ChatCompletionChunk {
	reason := FinishReasonStop

	return &ChatCompletionChunk{
		Id:      id,
		Object:  ObjectChatCompletionChunk,
		Created: created,
		Model:   model,
		Choices: []StreamChoice{
			{
				Delta:        Delta{Content: ""},
				FinishReason: &reason,
			},
		},
	}
}
