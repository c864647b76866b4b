package conversation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pharmesol/outreach-ai/internal/directory"
	"github.com/pharmesol/outreach-ai/internal/leads"
	"github.com/pharmesol/outreach-ai/internal/prompts"
)

// Template keys the composer reads.
const (
	keyReturningGreeting = "responses/returning_customer_greeting"
	keyNewLeadGreeting   = "responses/new_lead_greeting"
	keyApology           = "responses/apology"
	keyReturningSystem   = "system/returning_customer_system"
	keyNewLeadSystem     = "system/new_lead_system"
	keyExtraction        = "extraction/lead_information"

	keyQuestionName     = "questions/pharmacy_name"
	keyQuestionContact  = "questions/contact_person"
	keyQuestionLocation = "questions/location"
	keyQuestionVolume   = "questions/rx_volume"
)

// VolumeBracket classifies a lead's estimated monthly prescription volume.
type VolumeBracket int

const (
	BracketUnknown VolumeBracket = iota
	BracketLow
	BracketMedium
	BracketHigh
)

// BracketFor computes the bracket from an optional volume. High is
// inclusive at 100 — unlike the pharmacy high-volume flag, which is strict.
func BracketFor(volume *int) VolumeBracket {
	switch {
	case volume == nil:
		return BracketUnknown
	case *volume >= 100:
		return BracketHigh
	case *volume >= 50:
		return BracketMedium
	default:
		return BracketLow
	}
}

// assessmentKeys maps each bracket to its template. Keeping the dispatch in
// one table avoids stringly-typed branching in the methods below.
var assessmentKeys = map[VolumeBracket]string{
	BracketUnknown: "assessments/unknown_volume",
	BracketLow:     "assessments/low_volume",
	BracketMedium:  "assessments/medium_volume",
	BracketHigh:    "assessments/high_volume",
}

// unknownField is the literal rendered for unset lead fields in
// model-facing prompts.
const unknownField = "Unknown"

// Composer turns conversation state and entity data into user-facing and
// model-facing text, entirely through the template store. All methods are
// pure functions of their inputs plus the store's cache.
type Composer struct {
	store       *prompts.Store
	companyName string
}

// NewComposer creates a composer bound to one template store and company
// display name.
func NewComposer(store *prompts.Store, companyName string) *Composer {
	return &Composer{
		store:       store,
		companyName: companyName,
	}
}

func (c *Composer) render(key string, vars map[string]string) (string, error) {
	text, err := c.store.Get(key)
	if err != nil {
		return "", err
	}
	return prompts.Render(text, vars)
}

// Greeting produces the opening message for a session.
func (c *Composer) Greeting(state *State) (string, error) {
	if state.IsReturningCustomer() {
		return c.returningGreeting(state.Pharmacy)
	}
	return c.render(keyNewLeadGreeting, map[string]string{
		"company_name": c.companyName,
	})
}

func (c *Composer) returningGreeting(pharmacy *directory.Pharmacy) (string, error) {
	var topDrugs string
	if len(pharmacy.Prescriptions) > 0 {
		top := directory.TopDrugs(pharmacy, 3)
		names := make([]string, len(top))
		for i, rx := range top {
			names[i] = fmt.Sprintf("%s (%d)", rx.Drug, rx.Count)
		}
		topDrugs = "\nTop medications: " + strings.Join(names, ", ")
	}

	var highVolumeNote string
	if pharmacy.IsHighVolume() {
		highVolumeNote = fmt.Sprintf("\nHigh-volume pharmacy - perfect fit for %s!", c.companyName)
	}

	return c.render(keyReturningGreeting, map[string]string{
		"pharmacy_name":    pharmacy.Name,
		"location":         pharmacy.Location(),
		"total_rx_volume":  strconv.Itoa(pharmacy.TotalRxVolume()),
		"top_drugs":        topDrugs,
		"high_volume_note": highVolumeNote,
		"company_name":     c.companyName,
	})
}

// MissingInfoPrompt collects one question per unmet check, in fixed order:
// pharmacy name, contact person, city+state, estimated volume. An empty
// result means the lead is sufficiently informed. Multiple pending
// questions join into the compound "Also, ... And ..." form; awkward, but
// kept for compatibility with the SMS transcripts downstream systems parse.
func (c *Composer) MissingInfoPrompt(lead *leads.Lead) (string, error) {
	checks := []struct {
		met bool
		key string
	}{
		{lead.Name != nil && *lead.Name != "", keyQuestionName},
		{lead.ContactPerson != nil && *lead.ContactPerson != "", keyQuestionContact},
		{lead.City != nil && *lead.City != "" && lead.State != nil && *lead.State != "", keyQuestionLocation},
		{lead.EstimatedRxVolume != nil, keyQuestionVolume},
	}

	var questions []string
	for _, check := range checks {
		if check.met {
			continue
		}
		q, err := c.store.Get(check.key)
		if err != nil {
			return "", err
		}
		questions = append(questions, q)
	}

	switch len(questions) {
	case 0:
		return "", nil
	case 1:
		return questions[0], nil
	default:
		return "Also, " + strings.Join(questions, " And "), nil
	}
}

// LeadAssessment renders the value-proposition line for the lead's volume
// bracket.
func (c *Composer) LeadAssessment(lead *leads.Lead) (string, error) {
	vars := map[string]string{
		"company_name": c.companyName,
	}
	if lead.EstimatedRxVolume != nil {
		vars["volume"] = strconv.Itoa(*lead.EstimatedRxVolume)
	}
	return c.render(assessmentKeys[BracketFor(lead.EstimatedRxVolume)], vars)
}

// ReturningSystemPrompt builds the model system context for a recognized
// pharmacy.
func (c *Composer) ReturningSystemPrompt(pharmacy *directory.Pharmacy) (string, error) {
	volumeNote := "There is room to grow their prescription volume."
	if pharmacy.IsHighVolume() {
		volumeNote = "This is a high-volume pharmacy - a perfect fit for our services."
	}

	return c.render(keyReturningSystem, map[string]string{
		"company_name":    c.companyName,
		"pharmacy_name":   pharmacy.Name,
		"location":        pharmacy.Location(),
		"total_rx_volume": strconv.Itoa(pharmacy.TotalRxVolume()),
		"volume_note":     volumeNote,
	})
}

// LeadSystemPrompt builds the model system context for a lead. Unset fields
// render as the literal "Unknown".
func (c *Composer) LeadSystemPrompt(lead *leads.Lead, assessment string) (string, error) {
	volume := unknownField
	if lead.EstimatedRxVolume != nil {
		volume = strconv.Itoa(*lead.EstimatedRxVolume)
	}

	location := unknownField
	if lead.City != nil || lead.State != nil {
		location = fmt.Sprintf("%s, %s",
			leads.StringOr(lead.City, unknownField),
			leads.StringOr(lead.State, unknownField))
	}

	return c.render(keyNewLeadSystem, map[string]string{
		"company_name":        c.companyName,
		"pharmacy_name":       leads.StringOr(lead.Name, unknownField),
		"contact_person":      leads.StringOr(lead.ContactPerson, unknownField),
		"location":            location,
		"estimated_rx_volume": volume,
		"preferred_contact":   leads.StringOr(lead.PreferredContact, unknownField),
		"assessment":          assessment,
	})
}

// Apology renders the fixed failure reply pointing the caller at a phone
// number.
func (c *Composer) Apology(companyPhone string) (string, error) {
	return c.render(keyApology, map[string]string{
		"company_phone": companyPhone,
	})
}

// ExtractionPrompt renders the structured-extraction instruction for one
// inbound message.
func (c *Composer) ExtractionPrompt(userMessage string) (string, error) {
	return c.render(keyExtraction, map[string]string{
		"user_message": userMessage,
	})
}
