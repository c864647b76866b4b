package followup

import (
	"context"
	"testing"
)

func TestNewSendGridSenderWithoutAPIKey(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{}, nil)
	if sender != nil {
		t.Error("expected nil sender when no API key is configured")
	}
}

func TestNewSendGridSenderDefaults(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "SG.test-key",
		FromEmail: "outreach@pharmesol.com",
	}, nil)
	if sender == nil {
		t.Fatal("expected sender with API key")
	}
	if sender.fromName != "Pharmesol Team" {
		t.Errorf("unexpected default from name %q", sender.fromName)
	}
}

func TestSendGridSenderNilClient(t *testing.T) {
	sender := &SendGridSender{}
	err := sender.Send(context.Background(), EmailMessage{To: "a@b.com"})
	if err == nil {
		t.Fatal("expected error from unconfigured client")
	}
}

func TestStubEmailSender(t *testing.T) {
	sender := NewStubEmailSender(nil)
	err := sender.Send(context.Background(), EmailMessage{
		To:      "owner@centralrx.com",
		Subject: "hello",
		Body:    "body",
	})
	if err != nil {
		t.Errorf("stub sender should always succeed: %v", err)
	}
}
