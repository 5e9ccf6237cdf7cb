// Package notification tells staff about new inquiries in response to
// domain events. The intake never learns about email providers or queues.
package notification

import (
	"context"

	"buildcare_site/internal/email"
	"buildcare_site/internal/events"
	"buildcare_site/internal/scheduler"
	"buildcare_site/platform/config"
	"buildcare_site/platform/logger"
)

// Module handles all notification-related event subscriptions.
type Module struct {
	sender   email.Sender
	notifier scheduler.InquiryNotifier
	cfg      config.NotificationConfig
	log      *logger.Logger
}

// New creates the notification module. Without a notifier every email is
// sent inline from the event handler.
func New(sender email.Sender, cfg config.NotificationConfig, log *logger.Logger) *Module {
	return &Module{
		sender: sender,
		cfg:    cfg,
		log:    log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "notification" }

// SetInquiryNotifier routes notifications through the task queue.
func (m *Module) SetInquiryNotifier(n scheduler.InquiryNotifier) { m.notifier = n }

// RegisterHandlers subscribes the module to the events it reacts to.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.InquiryReceived{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.InquiryReceived:
		return m.handleInquiryReceived(ctx, e)
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

func (m *Module) handleInquiryReceived(ctx context.Context, e events.InquiryReceived) error {
	log := m.log.WithContext(ctx).With("inquiryId", e.InquiryID.String())
	if len(e.Stored) == 0 {
		log.Warn("inquiry was not stored, staff notification is the only copy")
	}

	payload := scheduler.InquiryNotifyPayload{
		InquiryID:   e.InquiryID.String(),
		ReceivedAt:  e.ReceivedAt,
		Name:        e.Name,
		Email:       e.Email,
		Phone:       e.Phone,
		Company:     e.Company,
		Service:     e.Service,
		ProjectType: e.ProjectType,
		Message:     e.Message,
		FileName:    e.FileName,
		Language:    e.Language,
	}

	if m.notifier != nil {
		err := m.notifier.EnqueueInquiryNotification(ctx, payload)
		if err == nil {
			log.Debug("inquiry notification queued")
			return nil
		}
		log.Warn("inquiry notification enqueue failed, sending inline", "error", err)
	}

	to := m.cfg.GetStaffNotifyEmail()
	if to == "" {
		log.Debug("staff notify email not configured, skipping notification")
		return nil
	}

	if err := m.sender.SendInquiryNotification(ctx, to, scheduler.NotificationFromPayload(payload)); err != nil {
		log.Error("inquiry notification failed", "error", err)
		return err
	}
	return nil
}
