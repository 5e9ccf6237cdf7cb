// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"buildcare_site/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Inquiry Domain Events
// =============================================================================

// InquiryReceived is published once an inquiry passed validation and the
// storage sinks were attempted. Delivery does not depend on storage success,
// so handlers double as a secondary capture channel.
type InquiryReceived struct {
	BaseEvent
	InquiryID   uuid.UUID `json:"inquiryId"`
	ReceivedAt  time.Time `json:"receivedAt"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Company     string    `json:"company,omitempty"`
	Service     string    `json:"service,omitempty"`
	ProjectType string    `json:"projectType,omitempty"`
	Message     string    `json:"message"`
	FileName    string    `json:"fileName,omitempty"`
	Language    string    `json:"language"`
	Stored      []string  `json:"stored"`
}

func (e InquiryReceived) EventName() string { return "inquiry.received" }
