package conversation

import (
	"strings"
	"testing"
)

func TestFallbackResponderSequence(t *testing.T) {
	f := NewFallbackResponder("Pharmesol")
	state := NewState("+1-555-999-0000", nil)

	first := f.Respond(state, "hi")
	if first != fallbackReplies[0] {
		t.Errorf("unexpected first reply %q", first)
	}

	second := f.Respond(state, "we fill a lot of prescriptions")
	if !strings.Contains(second, "Pharmesol") {
		t.Errorf("expected company name in second reply, got %q", second)
	}
	if strings.Contains(second, "{company_name}") {
		t.Errorf("placeholder left unrendered: %q", second)
	}
}

func TestFallbackResponderClampsAtLastReply(t *testing.T) {
	f := NewFallbackResponder("Pharmesol")
	state := NewState("+1-555-999-0000", nil)

	var last string
	for i := 0; i < len(fallbackReplies)+3; i++ {
		last = f.Respond(state, "another message")
	}
	if last != fallbackReplies[len(fallbackReplies)-1] {
		t.Errorf("expected clamped final reply, got %q", last)
	}
}

func TestFallbackResponderRecordsHistory(t *testing.T) {
	f := NewFallbackResponder("Pharmesol")
	state := NewState("+1-555-999-0000", nil)

	f.Respond(state, "hello")
	if len(state.Messages) != 2 {
		t.Fatalf("expected user + bot entries, got %d", len(state.Messages))
	}
	if !strings.HasPrefix(state.Messages[0], "User: ") || !strings.HasPrefix(state.Messages[1], "Bot: ") {
		t.Errorf("unexpected history tags: %v", state.Messages)
	}
}
