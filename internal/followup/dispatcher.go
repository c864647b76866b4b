package followup

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pharmesol/outreach-ai/internal/conversation"
	"github.com/pharmesol/outreach-ai/internal/directory"
	"github.com/pharmesol/outreach-ai/internal/leads"
	"github.com/pharmesol/outreach-ai/internal/observability/metrics"
	"github.com/pharmesol/outreach-ai/internal/prompts"
	"github.com/pharmesol/outreach-ai/pkg/logging"
)

const (
	defaultCallbackWindow = "tomorrow between 9 AM - 5 PM EST"
	idTimestampLayout     = "20060102-150405"
	notProvided           = "Not provided"
)

// CompanyIdentity carries the display values interpolated into outbound
// email templates.
type CompanyIdentity struct {
	Name  string
	Email string
	Phone string
}

// Dispatcher executes follow-up actions from final conversation state.
// Callback scheduling and CRM entries are stand-ins that log and return
// identifiers; email goes through the injected sender.
type Dispatcher struct {
	email   EmailSender
	store   *prompts.Store
	company CompanyIdentity
	logger  *logging.Logger
	metrics *metrics.ConversationMetrics
	now     func() time.Time
}

// NewDispatcher wires a follow-up dispatcher. The metrics argument may be nil.
func NewDispatcher(email EmailSender, store *prompts.Store, company CompanyIdentity, logger *logging.Logger, m *metrics.ConversationMetrics) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	return &Dispatcher{
		email:   email,
		store:   store,
		company: company,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// PharmacyWelcomeEmail sends the post-conversation welcome email to a
// returning customer. Returns false without error when the pharmacy has no
// email on file.
func (d *Dispatcher) PharmacyWelcomeEmail(ctx context.Context, pharmacy *directory.Pharmacy) (bool, error) {
	if pharmacy.Email == "" {
		d.logger.Warn("no email address on file, skipping welcome email", "pharmacy", pharmacy.Name)
		return false, nil
	}

	volumeMessage := "We're excited to help you grow your prescription volume."
	if pharmacy.IsHighVolume() {
		volumeMessage = "As a high-volume pharmacy, you're exactly who we love working with!"
	}

	subject, err := d.render("system/welcome_email_subject", map[string]string{
		"pharmacy_name": pharmacy.Name,
	})
	if err != nil {
		return false, err
	}
	content, err := d.render("system/welcome_email_content", map[string]string{
		"pharmacy_name":   pharmacy.Name,
		"company_name":    d.company.Name,
		"location":        pharmacy.Location(),
		"total_rx_volume": strconv.Itoa(pharmacy.TotalRxVolume()),
		"volume_message":  volumeMessage,
	})
	if err != nil {
		return false, err
	}

	if err := d.email.Send(ctx, EmailMessage{
		To:      pharmacy.Email,
		ToName:  pharmacy.Name,
		Subject: subject,
		Body:    content,
	}); err != nil {
		return false, err
	}

	d.metrics.ObserveFollowUpAction("welcome_email")
	return true, nil
}

// LeadNotificationEmail sends the internal lead summary to the sales inbox.
func (d *Dispatcher) LeadNotificationEmail(ctx context.Context, lead *leads.Lead) error {
	salesInbox := fmt.Sprintf("leads@%s.com", strings.ToLower(d.company.Name))

	followUpNeeded := "Yes - missing information"
	if lead.IsComplete() {
		followUpNeeded = "No"
	}

	volume := notProvided
	if lead.EstimatedRxVolume != nil {
		volume = strconv.Itoa(*lead.EstimatedRxVolume)
	}

	subject, err := d.render("system/lead_notification_subject", map[string]string{
		"pharmacy_name": leads.StringOr(lead.Name, "Unknown Pharmacy"),
	})
	if err != nil {
		return err
	}
	content, err := d.render("system/lead_notification_content", map[string]string{
		"pharmacy_name":  leads.StringOr(lead.Name, notProvided),
		"contact_person": leads.StringOr(lead.ContactPerson, notProvided),
		"phone":          lead.Phone,
		"location": fmt.Sprintf("%s, %s",
			leads.StringOr(lead.City, "Unknown"),
			leads.StringOr(lead.State, "Unknown")),
		"estimated_rx_volume": volume,
		"preferred_contact":   leads.StringOr(lead.PreferredContact, "Not specified"),
		"follow_up_needed":    followUpNeeded,
	})
	if err != nil {
		return err
	}

	if err := d.email.Send(ctx, EmailMessage{
		To:      salesInbox,
		Subject: subject,
		Body:    content,
	}); err != nil {
		return err
	}

	d.metrics.ObserveFollowUpAction("lead_notification")
	return nil
}

// ScheduleCallback books a callback stand-in and returns a confirmation
// line with its identifier.
func (d *Dispatcher) ScheduleCallback(phone, preferredTime, notes string) string {
	callbackTime := preferredTime
	if callbackTime == "" {
		callbackTime = defaultCallbackWindow
	}
	callbackID := "CB-" + d.now().Format(idTimestampLayout)

	d.logger.Info("callback scheduled",
		"callback_id", callbackID,
		"phone", phone,
		"scheduled_for", callbackTime,
		"notes", notes,
	)
	d.metrics.ObserveFollowUpAction("callback")

	return fmt.Sprintf("Callback scheduled for %s (ID: %s)", callbackTime, callbackID)
}

// CreateCRMEntry records a CRM entry stand-in for the lead and returns its
// identifier.
func (d *Dispatcher) CreateCRMEntry(lead *leads.Lead) string {
	entryID := "CRM-" + d.now().Format(idTimestampLayout)

	status := "Needs Follow-up"
	if lead.IsComplete() {
		status = "Qualified"
	}

	d.logger.Info("crm entry created",
		"entry_id", entryID,
		"lead", leads.StringOr(lead.Name, "Unknown Pharmacy"),
		"phone", lead.Phone,
		"status", status,
	)
	d.metrics.ObserveFollowUpAction("crm_entry")

	return entryID
}

// Run executes the follow-up actions keyed off final conversation state and
// returns descriptions of what was performed. Incomplete leads trigger
// nothing.
func (d *Dispatcher) Run(ctx context.Context, state *conversation.State) ([]string, error) {
	var executed []string

	switch {
	case state.IsReturningCustomer():
		pharmacy := state.Pharmacy
		sent, err := d.PharmacyWelcomeEmail(ctx, pharmacy)
		if err != nil {
			return executed, err
		}
		if sent {
			executed = append(executed, "Sent welcome email to "+pharmacy.Email)
		}
		confirmation := d.ScheduleCallback(pharmacy.Phone, "",
			fmt.Sprintf("Follow-up call for %s - discussed support needs", pharmacy.Name))
		executed = append(executed, confirmation)

	case state.Lead != nil && state.Lead.IsComplete():
		lead := state.Lead
		if err := d.LeadNotificationEmail(ctx, lead); err != nil {
			return executed, err
		}
		executed = append(executed, "Sent lead notification to sales team")

		entryID := d.CreateCRMEntry(lead)
		executed = append(executed, "Created CRM entry "+entryID)

		confirmation := d.ScheduleCallback(lead.Phone, "",
			"New lead follow-up: "+leads.StringOr(lead.Name, "Unknown pharmacy"))
		executed = append(executed, confirmation)
	}

	return executed, nil
}

func (d *Dispatcher) render(key string, vars map[string]string) (string, error) {
	text, err := d.store.Get(key)
	if err != nil {
		return "", err
	}
	return prompts.Render(text, vars)
}
