package form

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"buildcare_site/internal/inquiry/domain"
)

type testOptions struct{}

func (testOptions) Has(id string) bool            { return id == "renovation" }
func (testOptions) HasProjectType(id string) bool { return id == "commercial" }

type fakeTransport struct {
	mu      sync.Mutex
	calls   []Request
	reply   Reply
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeTransport) Send(ctx context.Context, req Request) (Reply, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.reply, f.err
}

func (f *fakeTransport) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestForm(tr Transport, overlay bool) *Form {
	return New(Options{
		Variant:   domain.VariantService,
		Validator: domain.NewValidator(testOptions{}),
		Transport: tr,
		Language:  "en",
		Overlay:   overlay,
	})
}

func fillValid(f *Form) {
	f.Set(domain.FieldName, "Omar")
	f.Set(domain.FieldEmail, "omar@example.com")
	f.Set(domain.FieldPhone, "+971 50 123 4567")
	f.Set(domain.FieldService, "renovation")
	f.Set(domain.FieldMessage, "Kitchen renovation next month")
}

func TestSubmit_InvalidFieldsSkipTransport(t *testing.T) {
	tr := &fakeTransport{}
	f := newTestForm(tr, false)
	f.Set(domain.FieldEmail, "not-an-email")

	_, err := f.Submit(context.Background())
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if tr.callCount() != 0 {
		t.Fatalf("expected no transport call, got %d", tr.callCount())
	}

	errs := f.Errors()
	if errs[domain.FieldEmail] != domain.MsgEmailInvalid {
		t.Fatalf("expected email error, got %q", errs[domain.FieldEmail])
	}
	if errs[domain.FieldName] != domain.MsgNameRequired {
		t.Fatalf("expected name error, got %q", errs[domain.FieldName])
	}
	if f.Outcome().Status != StatusIdle {
		t.Fatalf("expected status to stay idle, got %s", f.Outcome().Status)
	}
}

func TestSet_ClearsOnlyThatFieldError(t *testing.T) {
	f := newTestForm(&fakeTransport{}, false)
	_, _ = f.Submit(context.Background())

	before := f.Errors()
	if len(before) != 5 {
		t.Fatalf("expected five errors on an empty form, got %v", before)
	}

	f.Set(domain.FieldName, "x")
	after := f.Errors()
	if _, ok := after[domain.FieldName]; ok {
		t.Fatal("expected name error cleared")
	}
	if len(after) != 4 {
		t.Fatalf("expected other errors untouched, got %v", after)
	}
}

func TestSubmit_SuccessResetsFields(t *testing.T) {
	tr := &fakeTransport{reply: Reply{Message: "Thank you! We will get back to you soon."}}
	f := newTestForm(tr, false)
	fillValid(f)
	f.Attach(&Attachment{FileName: "plan.pdf", Data: []byte("%PDF")})

	outcome, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != StatusSuccess || !outcome.Visible {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if outcome.Message != "Thank you! We will get back to you soon." {
		t.Fatalf("unexpected message %q", outcome.Message)
	}
	if f.Fields() != (domain.Fields{}) {
		t.Fatalf("expected empty fields, got %+v", f.Fields())
	}

	sent := tr.calls[0]
	if sent.Fields.Name != "Omar" || sent.Attachment == nil || sent.Language != "en" {
		t.Fatalf("unexpected request %+v", sent)
	}
}

func TestSubmit_OverlayAckDismisses(t *testing.T) {
	f := newTestForm(&fakeTransport{}, true)
	var scheduled func()
	var delay time.Duration
	f.afterFunc = func(d time.Duration, fn func()) *time.Timer {
		delay = d
		scheduled = fn
		return time.NewTimer(time.Hour)
	}
	var changes []Outcome
	f.onChange = func(o Outcome) { changes = append(changes, o) }
	fillValid(f)

	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delay != DefaultAckDelay || scheduled == nil {
		t.Fatalf("expected dismissal scheduled after %v, got %v", DefaultAckDelay, delay)
	}

	scheduled()
	got := f.Outcome()
	if got.Status != StatusSuccess || got.Visible {
		t.Fatalf("expected dismissed success, got %+v", got)
	}

	want := []Status{StatusSubmitting, StatusSuccess, StatusSuccess}
	if len(changes) != len(want) {
		t.Fatalf("expected %d changes, got %+v", len(want), changes)
	}
	for i, status := range want {
		if changes[i].Status != status {
			t.Fatalf("change %d: expected %s, got %s", i, status, changes[i].Status)
		}
	}
}

func TestSubmit_InlineAckPersists(t *testing.T) {
	f := newTestForm(&fakeTransport{}, false)
	f.afterFunc = func(time.Duration, func()) *time.Timer {
		t.Fatal("inline acknowledgment must not schedule a dismissal")
		return nil
	}
	fillValid(f)

	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.Outcome().Visible {
		t.Fatal("expected inline acknowledgment to stay visible")
	}
}

func TestClose_StopsPendingDismissal(t *testing.T) {
	f := newTestForm(&fakeTransport{}, true)
	f.ackDelay = 10 * time.Millisecond
	fillValid(f)

	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.Close()
	time.Sleep(50 * time.Millisecond)

	if !f.Outcome().Visible {
		t.Fatal("expected acknowledgment to stay after Close")
	}
}

func TestSubmit_FailureKeepsFields(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantFailure Failure
		wantMessage string
	}{
		{
			name:        "server reason",
			err:         &ServerError{StatusCode: 400, Message: "Invalid attachment"},
			wantFailure: FailureServer,
			wantMessage: "Invalid attachment",
		},
		{
			name:        "network",
			err:         errors.New("dial tcp: connection refused"),
			wantFailure: FailureNetwork,
			wantMessage: MsgNetworkFailure,
		},
		{
			name:        "server without reason",
			err:         &ServerError{StatusCode: 502},
			wantFailure: FailureNetwork,
			wantMessage: MsgNetworkFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestForm(&fakeTransport{err: tt.err}, false)
			fillValid(f)
			before := f.Fields()

			outcome, err := f.Submit(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if outcome.Status != StatusError || outcome.Failure != tt.wantFailure {
				t.Fatalf("unexpected outcome %+v", outcome)
			}
			if outcome.Message != tt.wantMessage {
				t.Fatalf("expected %q, got %q", tt.wantMessage, outcome.Message)
			}
			if f.Fields() != before {
				t.Fatalf("expected fields preserved, got %+v", f.Fields())
			}
		})
	}
}

func TestSubmit_ServerFieldErrorsAreShown(t *testing.T) {
	tr := &fakeTransport{err: &ServerError{
		StatusCode: 400,
		Message:    "Invalid submission",
		Fields:     domain.FieldErrors{domain.FieldPhone: domain.MsgPhoneInvalid},
	}}
	f := newTestForm(tr, false)
	fillValid(f)

	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Errors()[domain.FieldPhone] != domain.MsgPhoneInvalid {
		t.Fatalf("expected server field error, got %v", f.Errors())
	}
}

func TestSubmit_OneInFlight(t *testing.T) {
	tr := &fakeTransport{started: make(chan struct{}), release: make(chan struct{})}
	f := newTestForm(tr, false)
	fillValid(f)

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()
	<-tr.started

	if f.Outcome().Status != StatusSubmitting {
		t.Fatalf("expected submitting, got %s", f.Outcome().Status)
	}
	if _, err := f.Submit(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight, got %v", err)
	}

	close(tr.release)
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.callCount() != 1 {
		t.Fatalf("expected exactly one send, got %d", tr.callCount())
	}
}
