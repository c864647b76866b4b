package conversation

import (
	"context"

	"github.com/pharmesol/outreach-ai/internal/observability/metrics"
	"github.com/pharmesol/outreach-ai/pkg/logging"
)

const (
	replyMaxTokens   = 200
	replyTemperature = 0.7

	pathReturning = "returning"
	pathLead      = "lead"
)

// Service runs the dialogue turn loop: one inbound message is fully handled
// (extraction attempt, reply generation, history append) before the next is
// accepted. Turns are strictly sequential per session.
type Service struct {
	llm          LLMClient
	composer     *Composer
	extractor    *Extractor
	companyPhone string
	logger       *logging.Logger
	metrics      *metrics.ConversationMetrics
}

// NewService wires the turn loop. The metrics argument may be nil.
func NewService(llm LLMClient, composer *Composer, extractor *Extractor, companyPhone string, logger *logging.Logger, m *metrics.ConversationMetrics) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		llm:          llm,
		composer:     composer,
		extractor:    extractor,
		companyPhone: companyPhone,
		logger:       logger,
		metrics:      m,
	}
}

// Greeting produces the session-opening message for the caller.
func (s *Service) Greeting(state *State) (string, error) {
	return s.composer.Greeting(state)
}

// ProcessMessage handles one turn. A model failure on the reply path never
// reaches the caller: the fixed apology is returned and recorded in history
// instead, and the conversation continues. The returned error covers only
// configuration defects (missing or malformed templates).
func (s *Service) ProcessMessage(ctx context.Context, state *State, userMessage string) (string, error) {
	// Window the history before appending so the model sees up to six
	// trailing turns plus the new message exactly once.
	history := state.RecentMessages()
	state.AppendUser(userMessage)

	var reply string
	var err error
	if state.IsReturningCustomer() {
		s.metrics.ObserveTurn(pathReturning)
		reply, err = s.handleReturningCustomer(ctx, state, history, userMessage)
	} else {
		s.metrics.ObserveTurn(pathLead)
		reply, err = s.handleLead(ctx, state, history, userMessage)
	}
	if err != nil {
		return "", err
	}

	state.AppendBot(reply)
	return reply, nil
}

func (s *Service) handleReturningCustomer(ctx context.Context, state *State, history []ChatMessage, userMessage string) (string, error) {
	state.Stage = StageGeneralChat

	system, err := s.composer.ReturningSystemPrompt(state.Pharmacy)
	if err != nil {
		return "", err
	}
	return s.generateOrApologize(ctx, system, history, userMessage)
}

func (s *Service) handleLead(ctx context.Context, state *State, history []ChatMessage, userMessage string) (string, error) {
	lead := state.Lead

	missing, err := s.composer.MissingInfoPrompt(lead)
	if err != nil {
		return "", err
	}

	if missing != "" {
		state.Stage = StageCollectingInfo

		if ok := s.extractor.ExtractInto(ctx, lead, userMessage); ok {
			s.metrics.ObserveModelCall("extract", "ok")
		} else {
			s.metrics.ObserveModelCall("extract", "error")
			s.metrics.ObserveExtractionSkip()
		}

		missing, err = s.composer.MissingInfoPrompt(lead)
		if err != nil {
			return "", err
		}
		if missing != "" {
			return "Thanks for that information! " + missing, nil
		}
	}

	// Enough information collected; switch permanently to open-ended chat.
	state.Stage = StageGeneralChat

	assessment, err := s.composer.LeadAssessment(lead)
	if err != nil {
		return "", err
	}
	system, err := s.composer.LeadSystemPrompt(lead, assessment)
	if err != nil {
		return "", err
	}
	return s.generateOrApologize(ctx, system, history, userMessage)
}

// generateOrApologize runs one reply generation call. On failure it logs,
// counts, and substitutes the fixed apology; no retry.
func (s *Service) generateOrApologize(ctx context.Context, system string, history []ChatMessage, userMessage string) (string, error) {
	messages := append(history, ChatMessage{Role: ChatRoleUser, Content: userMessage})

	resp, err := s.llm.Complete(ctx, LLMRequest{
		System:      system,
		Messages:    messages,
		MaxTokens:   replyMaxTokens,
		Temperature: replyTemperature,
	})
	if err != nil {
		s.metrics.ObserveModelCall("reply", "error")
		s.logger.Error("reply generation failed", "error", (&ModelCallError{Err: err}).Error())
		return s.composer.Apology(s.companyPhone)
	}

	s.metrics.ObserveModelCall("reply", "ok")
	return resp.Text, nil
}

// SuggestFollowUpActions lists the follow-up actions appropriate for the
// final conversation state, for operator display.
func (s *Service) SuggestFollowUpActions(state *State) []string {
	var actions []string

	switch {
	case state.IsReturningCustomer():
		if state.Pharmacy.Email != "" {
			actions = append(actions, "Send follow-up email to "+state.Pharmacy.Email)
		}
		actions = append(actions, "Schedule callback to "+state.Pharmacy.Phone)
	case state.Lead != nil && state.Lead.IsComplete():
		actions = append(actions,
			"Send lead information to sales team",
			"Create CRM entry for new lead",
			"Schedule callback to "+state.Lead.Phone,
		)
	}

	return actions
}
