package httpkit

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"buildcare_site/platform/apperr"

	"github.com/gin-gonic/gin"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "validation", err: apperr.Validation("Invalid submission"), wantStatus: http.StatusBadRequest, wantError: "Invalid submission"},
		{name: "wrapped not found", err: fmt.Errorf("lookup: %w", apperr.NotFound("Service not found")), wantStatus: http.StatusNotFound, wantError: "Service not found"},
		{name: "unauthorized", err: apperr.Unauthorized("invalid credentials"), wantStatus: http.StatusUnauthorized, wantError: "invalid credentials"},
		{name: "unavailable", err: apperr.Unavailable("index disabled"), wantStatus: http.StatusServiceUnavailable, wantError: "index disabled"},
		{name: "internal kind hides message", err: apperr.Internal("disk /var/data full"), wantStatus: http.StatusInternalServerError, wantError: MsgInternalError},
		{name: "plain error hides message", err: errors.New("dial tcp 10.0.0.5:5432"), wantStatus: http.StatusInternalServerError, wantError: MsgInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			if !HandleError(c, tt.err) {
				t.Fatal("expected error to be handled")
			}
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if body := decodeError(t, rec); body.Error != tt.wantError {
				t.Fatalf("expected error %q, got %q", tt.wantError, body.Error)
			}
		})
	}
}

func TestHandleError_NilIsNotHandled(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	if HandleError(c, nil) {
		t.Fatal("nil error must not be handled")
	}
}

func TestHandleError_KeepsDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	err := apperr.Validation("Invalid submission").WithDetails(map[string]string{"email": "invalid"})
	HandleError(c, err)

	body := decodeError(t, rec)
	details, ok := body.Details.(map[string]interface{})
	if !ok || details["email"] != "invalid" {
		t.Fatalf("expected field details, got %#v", body.Details)
	}
}
