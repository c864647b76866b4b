package conversation

import "context"

const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one turn of model context.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LLMRequest describes one completion call. System text is passed
// separately from the message history.
type LLMRequest struct {
	System      string
	Messages    []ChatMessage
	MaxTokens   int
	Temperature float32
}

// LLMResponse carries the model's reply text.
type LLMResponse struct {
	Text string
}

// LLMClient is the injected model capability. The composer and turn loop
// only depend on this interface, so a deterministic stub can stand in for
// the network during tests.
type LLMClient interface {
	Complete(ctx context.Context, req LLMRequest) (LLMResponse, error)
}
