// Package form is the client side of the contact forms: it holds what a
// visitor typed, validates it, hands it to a Transport and tracks the
// outcome.
package form

import (
	"context"
	"errors"
	"sync"
	"time"

	"buildcare_site/internal/inquiry/domain"
)

// DefaultAckDelay is how long an overlay acknowledgment stays visible.
const DefaultAckDelay = 2500 * time.Millisecond

// MsgNetworkFailure is shown when the endpoint gave no reason of its own.
const MsgNetworkFailure = "Something went wrong. Please try again."

var (
	// ErrSubmitInFlight is returned by Submit while a submission is running.
	ErrSubmitInFlight = errors.New("form: submission already in flight")
	// ErrInvalid is returned by Submit when a field fails validation. The
	// messages are available from Errors.
	ErrInvalid = errors.New("form: invalid fields")
)

// Status is the lifecycle of one form instance.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

// Failure tells a server-reported rejection from everything else.
type Failure int

const (
	FailureNone Failure = iota
	FailureServer
	FailureNetwork
)

// Outcome is the result of the last submission.
type Outcome struct {
	Status  Status
	Failure Failure
	Message string
	// Visible is false once an overlay acknowledgment has dismissed itself.
	Visible bool
}

// Options configure a Form.
type Options struct {
	Variant   domain.Variant
	Validator *domain.Validator
	Transport Transport
	// Language is sent with the request so server-side messages and logs
	// carry the visitor's language.
	Language string
	// Overlay makes a success acknowledgment dismiss itself after AckDelay.
	// Inline acknowledgments stay until the next submission.
	Overlay  bool
	AckDelay time.Duration
	// OnChange is called after every status change, outside the form lock.
	OnChange func(Outcome)
}

// Form holds one inquiry being filled in.
type Form struct {
	variant   domain.Variant
	validator *domain.Validator
	transport Transport
	language  string
	overlay   bool
	ackDelay  time.Duration
	onChange  func(Outcome)
	afterFunc func(time.Duration, func()) *time.Timer

	mu         sync.Mutex
	fields     domain.Fields
	errors     domain.FieldErrors
	attachment *Attachment
	outcome    Outcome
	dismiss    *time.Timer
}

// New creates an idle, empty form.
func New(opts Options) *Form {
	delay := opts.AckDelay
	if delay <= 0 {
		delay = DefaultAckDelay
	}
	variant := opts.Variant
	if variant == "" {
		variant = domain.VariantService
	}
	return &Form{
		variant:   variant,
		validator: opts.Validator,
		transport: opts.Transport,
		language:  opts.Language,
		overlay:   opts.Overlay,
		ackDelay:  delay,
		onChange:  opts.OnChange,
		afterFunc: time.AfterFunc,
		errors:    domain.FieldErrors{},
		outcome:   Outcome{Status: StatusIdle},
	}
}

// Set stores a field value and clears that field's error only.
func (f *Form) Set(field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = f.fields.With(field, value)
	f.errors.Clear(field)
}

// Attach sets or, with nil, removes the attachment.
func (f *Form) Attach(a *Attachment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attachment = a
	f.errors.Clear(domain.FieldFile)
}

// Fields returns the current values.
func (f *Form) Fields() domain.Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Errors returns a copy of the current field errors.
func (f *Form) Errors() domain.FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors.Clone()
}

// Outcome returns the state of the last submission.
func (f *Form) Outcome() Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.outcome
}

// Submit validates the fields and, when they pass, sends them. Invalid
// fields return ErrInvalid without touching the network. A second call
// while one is running returns ErrSubmitInFlight.
func (f *Form) Submit(ctx context.Context) (Outcome, error) {
	f.mu.Lock()
	if f.outcome.Status == StatusSubmitting {
		f.mu.Unlock()
		return Outcome{}, ErrSubmitInFlight
	}

	if errs := f.validator.Validate(f.fields, f.variant); !errs.OK() {
		f.errors = errs
		f.mu.Unlock()
		return f.Outcome(), ErrInvalid
	}

	f.stopDismissLocked()
	req := Request{
		Variant:    f.variant,
		Fields:     f.fields,
		Attachment: f.attachment,
		Language:   f.language,
	}
	submitting := Outcome{Status: StatusSubmitting}
	f.outcome = submitting
	f.mu.Unlock()
	f.notify(submitting)

	reply, err := f.transport.Send(ctx, req)

	f.mu.Lock()
	var outcome Outcome
	if err != nil {
		outcome = failureOutcome(err)
		var serverErr *ServerError
		if errors.As(err, &serverErr) && len(serverErr.Fields) > 0 {
			f.errors = serverErr.Fields.Clone()
		}
	} else {
		outcome = Outcome{Status: StatusSuccess, Message: reply.Message, Visible: true}
		f.fields = domain.Fields{}
		f.attachment = nil
		f.errors = domain.FieldErrors{}
		if f.overlay {
			f.dismiss = f.afterFunc(f.ackDelay, f.dismissAck)
		}
	}
	f.outcome = outcome
	f.mu.Unlock()
	f.notify(outcome)

	return outcome, nil
}

// Close cancels a pending acknowledgment dismissal.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopDismissLocked()
}

func (f *Form) dismissAck() {
	f.mu.Lock()
	if f.outcome.Status != StatusSuccess || !f.outcome.Visible {
		f.mu.Unlock()
		return
	}
	f.outcome.Visible = false
	f.dismiss = nil
	outcome := f.outcome
	f.mu.Unlock()
	f.notify(outcome)
}

func (f *Form) stopDismissLocked() {
	if f.dismiss != nil {
		f.dismiss.Stop()
		f.dismiss = nil
	}
}

func (f *Form) notify(o Outcome) {
	if f.onChange != nil {
		f.onChange(o)
	}
}

func failureOutcome(err error) Outcome {
	var serverErr *ServerError
	if errors.As(err, &serverErr) && serverErr.Message != "" {
		return Outcome{Status: StatusError, Failure: FailureServer, Message: serverErr.Message, Visible: true}
	}
	return Outcome{Status: StatusError, Failure: FailureNetwork, Message: MsgNetworkFailure, Visible: true}
}
