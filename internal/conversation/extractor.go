package conversation

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pharmesol/outreach-ai/internal/leads"
	"github.com/pharmesol/outreach-ai/pkg/logging"
)

const (
	extractionMaxTokens   = 200
	extractionTemperature = 0.1
)

// Extractor attempts structured lead-field extraction from inbound messages
// via the model. Extraction is best-effort: any failure leaves the lead
// untouched for that turn and is never surfaced to the caller.
type Extractor struct {
	llm      LLMClient
	composer *Composer
	logger   *logging.Logger
}

// NewExtractor creates an extractor over the given model client.
func NewExtractor(llm LLMClient, composer *Composer, logger *logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.Default()
	}
	return &Extractor{
		llm:      llm,
		composer: composer,
		logger:   logger,
	}
}

// extractedFields mirrors the JSON object the extraction prompt requests.
// Volume stays untyped because models return it as a number or a string.
type extractedFields struct {
	PharmacyName      string `json:"pharmacy_name"`
	ContactPerson     string `json:"contact_person"`
	City              string `json:"city"`
	State             string `json:"state"`
	EstimatedRxVolume any    `json:"estimated_rx_volume"`
	PreferredContact  string `json:"preferred_contact"`
}

// ExtractInto asks the model for lead fields in the message and merges any
// it finds into the lead. Absent or unparseable keys leave the
// corresponding field untouched. Returns false when extraction was skipped
// because of a model or parse failure.
func (e *Extractor) ExtractInto(ctx context.Context, lead *leads.Lead, message string) bool {
	prompt, err := e.composer.ExtractionPrompt(message)
	if err != nil {
		e.logger.Warn("extraction prompt unavailable, skipping extraction", "error", err)
		return false
	}

	resp, err := e.llm.Complete(ctx, LLMRequest{
		Messages:    []ChatMessage{{Role: ChatRoleUser, Content: prompt}},
		MaxTokens:   extractionMaxTokens,
		Temperature: extractionTemperature,
	})
	if err != nil {
		e.logger.Warn("extraction call failed, skipping extraction", "error", err)
		return false
	}

	var fields extractedFields
	if err := json.Unmarshal([]byte(jsonObjectIn(resp.Text)), &fields); err != nil {
		e.logger.Warn("extraction returned unparseable JSON, skipping", "error", err)
		return false
	}

	lead.SetName(strings.TrimSpace(fields.PharmacyName))
	lead.SetContactPerson(strings.TrimSpace(fields.ContactPerson))
	lead.SetCity(strings.TrimSpace(fields.City))
	lead.SetState(strings.TrimSpace(fields.State))
	lead.SetPreferredContact(strings.TrimSpace(fields.PreferredContact))
	if volume, ok := coerceVolume(fields.EstimatedRxVolume); ok {
		lead.SetEstimatedRxVolume(volume)
	}

	return true
}

// jsonObjectIn trims model chatter around the JSON object, such as
// markdown code fences.
func jsonObjectIn(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return text
	}
	return text[start : end+1]
}

func coerceVolume(v any) (int, bool) {
	switch value := v.(type) {
	case float64:
		return int(value), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
