package conversation

import "strings"

// Canned replies used when no model is configured. Selected by how many user
// messages the session has seen, clamping at the last one.
var fallbackReplies = []string{
	"That's great to hear! Tell me more about your pharmacy.",
	"I understand. {company_name} specializes in helping high-volume pharmacies like yours.",
	"Perfect! I'd love to follow up with you. Would you prefer email or a phone call?",
	"Thank you for that information. Our team will be in touch soon!",
	"I appreciate you sharing that with me. Is there anything else I can help you with today?",
}

// FallbackResponder answers turns without a model: a fixed reply sequence
// keyed off the number of user messages so far. It records history the same
// way the model-backed service does, but performs no extraction and no stage
// transitions.
type FallbackResponder struct {
	companyName string
}

// NewFallbackResponder creates a responder for demo sessions without an
// OpenAI key.
func NewFallbackResponder(companyName string) *FallbackResponder {
	return &FallbackResponder{companyName: companyName}
}

// Respond handles one turn with a canned reply.
func (f *FallbackResponder) Respond(state *State, userMessage string) string {
	state.AppendUser(userMessage)

	userCount := 0
	for _, m := range state.Messages {
		if strings.HasPrefix(m, userPrefix) {
			userCount++
		}
	}

	idx := userCount - 1
	if idx >= len(fallbackReplies) {
		idx = len(fallbackReplies) - 1
	}
	reply := strings.ReplaceAll(fallbackReplies[idx], "{company_name}", f.companyName)

	state.AppendBot(reply)
	return reply
}
