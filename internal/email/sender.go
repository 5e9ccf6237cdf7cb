package email

import (
	"context"
	"time"
)

// InquiryNotification is what staff are told about a new inquiry.
type InquiryNotification struct {
	InquiryID   string
	ReceivedAt  time.Time
	Name        string
	Email       string
	Phone       string
	Company     string
	Service     string
	ProjectType string
	Message     string
	FileName    string
	Language    string
}

type Sender interface {
	SendInquiryNotification(ctx context.Context, toEmail string, n InquiryNotification) error
}

// NoopSender drops every message. It is used when SMTP is not configured.
type NoopSender struct{}

func (NoopSender) SendInquiryNotification(ctx context.Context, toEmail string, n InquiryNotification) error {
	return nil
}
