// Package conversation drives the outreach dialogue: per-session state,
// template-backed response composition, and the LLM-assisted turn loop.
package conversation

import (
	"strings"

	"github.com/pharmesol/outreach-ai/internal/directory"
	"github.com/pharmesol/outreach-ai/internal/leads"
)

// Conversation stages. Leads move greeting → collecting_info → general_chat;
// known pharmacies skip the collection phase. Transitions are monotonic:
// lead fields are only ever filled, so collecting_info never comes back.
const (
	StageGreeting       = "greeting"
	StageCollectingInfo = "collecting_info"
	StageGeneralChat    = "general_chat"
)

const (
	userPrefix = "User: "
	botPrefix  = "Bot: "
)

// historyWindow caps how many trailing history entries are replayed to the
// model each turn.
const historyWindow = 6

// State holds everything known about one conversation session. Exactly one
// of Pharmacy or Lead is set once initialized. Single-threaded turn
// processing; not safe for concurrent mutation.
type State struct {
	CallerPhone string
	Pharmacy    *directory.Pharmacy
	Lead        *leads.Lead
	Messages    []string
	Stage       string
}

// NewState initializes a conversation for the caller. A recognized pharmacy
// makes this a returning-customer session; otherwise an empty lead is
// created with only the phone set.
func NewState(callerPhone string, pharmacy *directory.Pharmacy) *State {
	s := &State{
		CallerPhone: callerPhone,
		Stage:       StageGreeting,
	}
	if pharmacy != nil {
		s.Pharmacy = pharmacy
	} else {
		s.Lead = leads.New(callerPhone)
	}
	return s
}

// IsReturningCustomer reports whether the caller matched a directory record.
func (s *State) IsReturningCustomer() bool {
	return s.Pharmacy != nil
}

// CallerName resolves the name to address the caller by: pharmacy name,
// then lead contact person, then a generic fallback.
func (s *State) CallerName() string {
	if s.Pharmacy != nil {
		return s.Pharmacy.Name
	}
	if s.Lead != nil && s.Lead.ContactPerson != nil && *s.Lead.ContactPerson != "" {
		return *s.Lead.ContactPerson
	}
	return "there"
}

// AppendUser records an inbound message in the history log.
func (s *State) AppendUser(text string) {
	s.Messages = append(s.Messages, userPrefix+text)
}

// AppendBot records an outbound reply in the history log.
func (s *State) AppendBot(text string) {
	s.Messages = append(s.Messages, botPrefix+text)
}

// RecentMessages converts the last historyWindow history entries into role
// ChatMessages for the model.
func (s *State) RecentMessages() []ChatMessage {
	start := len(s.Messages) - historyWindow
	if start < 0 {
		start = 0
	}

	var msgs []ChatMessage
	for _, entry := range s.Messages[start:] {
		switch {
		case strings.HasPrefix(entry, userPrefix):
			msgs = append(msgs, ChatMessage{Role: ChatRoleUser, Content: entry[len(userPrefix):]})
		case strings.HasPrefix(entry, botPrefix):
			msgs = append(msgs, ChatMessage{Role: ChatRoleAssistant, Content: entry[len(botPrefix):]})
		}
	}
	return msgs
}
