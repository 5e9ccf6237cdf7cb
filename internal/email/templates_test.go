package email

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestRenderInquiry(t *testing.T) {
	subject, body, err := renderInquiry(InquiryNotification{
		InquiryID:  "3f1c",
		ReceivedAt: time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC),
		Name:       "Omar",
		Email:      "omar@example.com",
		Phone:      "+971501234567",
		Service:    "renovation",
		Message:    "Kitchen <b>renovation</b>",
		FileName:   "plan.pdf",
		Language:   "ar",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if subject != "New renovation inquiry from Omar" {
		t.Fatalf("unexpected subject %q", subject)
	}
	for _, want := range []string{"Omar", "omar@example.com", "plan.pdf", "4 Mar 2026 09:30 UTC", "mailto:omar@example.com", "Reference 3f1c"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %q", want)
		}
	}
	if strings.Contains(body, "<b>renovation</b>") {
		t.Fatal("expected message markup to be escaped")
	}
	if strings.Contains(body, "Company") {
		t.Fatal("expected empty company row to be omitted")
	}
}

func TestRenderInquiry_ProjectTypeSubject(t *testing.T) {
	subject, _, err := renderInquiry(InquiryNotification{Name: "Lina", ProjectType: "commercial"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if subject != "New commercial inquiry from Lina" {
		t.Fatalf("unexpected subject %q", subject)
	}

	subject, _, _ = renderInquiry(InquiryNotification{Name: "Lina"})
	if subject != "New inquiry from Lina" {
		t.Fatalf("unexpected subject %q", subject)
	}
}

type smtpTestConfig struct{ host string }

func (c smtpTestConfig) GetSMTPHost() string         { return c.host }
func (c smtpTestConfig) GetSMTPPort() int            { return 587 }
func (c smtpTestConfig) GetSMTPUsername() string     { return "" }
func (c smtpTestConfig) GetSMTPPassword() string     { return "" }
func (c smtpTestConfig) GetEmailFromName() string    { return "BuildCare" }
func (c smtpTestConfig) GetEmailFromAddress() string { return "noreply@buildcare.example" }
func (c smtpTestConfig) IsSMTPEnabled() bool         { return c.host != "" }

func TestNewSender_NoopWithoutHost(t *testing.T) {
	sender := NewSender(smtpTestConfig{})
	if _, ok := sender.(NoopSender); !ok {
		t.Fatalf("expected NoopSender, got %T", sender)
	}
	if err := sender.SendInquiryNotification(context.Background(), "staff@example.com", InquiryNotification{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := NewSender(smtpTestConfig{host: "smtp.example.com"}).(*SMTPSender); !ok {
		t.Fatal("expected SMTPSender when a host is configured")
	}
}
