package httpkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"buildcare_site/platform/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type jwtTestConfig struct{ secret string }

func (c jwtTestConfig) GetJWTAccessSecret() string { return c.secret }

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		id, _ := c.Request.Context().Value(logger.RequestIDKey).(string)
		c.String(http.StatusOK, id)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(HeaderRequestID)
	if generated == "" {
		t.Fatal("expected a generated request id header")
	}
	if rec.Body.String() != generated {
		t.Fatalf("expected context id %q to match header %q", rec.Body.String(), generated)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "client-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get(HeaderRequestID); got != "client-123" {
		t.Fatalf("expected caller id to be kept, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, strings.Repeat("x", 65))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get(HeaderRequestID); got == strings.Repeat("x", 65) {
		t.Fatal("expected oversized caller id to be replaced")
	}
}

func TestRecovery_ReturnsGenericBody(t *testing.T) {
	router := gin.New()
	router.Use(Recovery(logger.Discard()))
	router.GET("/", func(c *gin.Context) {
		panic("database password leaked")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("panic text leaked into response: %s", rec.Body.String())
	}
}

func TestSecurityHeaders(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeaders())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing nosniff header")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing frame options header")
	}
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS must not be sent over plain HTTP")
	}
}

func TestRateLimit_BlocksAfterBurst(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Every(time.Hour), 2, logger.Discard())
	router := gin.New()
	router.Use(limiter.RateLimit())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "198.51.100.9:4000"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, other)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected a separate budget per IP, got %d", rec.Code)
	}
}

func TestPerMinuteLimiter_ZeroMeansUnlimited(t *testing.T) {
	limiter := NewPerMinuteLimiter(0, 1, nil)
	for i := 0; i < 50; i++ {
		if !limiter.Allow("203.0.113.7") {
			t.Fatalf("request %d was limited", i)
		}
	}
}

func TestAuthRequired_AndRequireRole(t *testing.T) {
	cfg := jwtTestConfig{secret: "test-secret"}
	now := time.Now()

	adminToken, _, err := IssueAccessToken(cfg, "admin", []string{RoleAdmin}, time.Hour, now)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	viewerToken, _, err := IssueAccessToken(cfg, "viewer", []string{"viewer"}, time.Hour, now)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	expiredToken, _, err := IssueAccessToken(cfg, "admin", []string{RoleAdmin}, time.Hour, now.Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	foreignToken, _, err := IssueAccessToken(jwtTestConfig{secret: "other"}, "admin", []string{RoleAdmin}, time.Hour, now)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	router := gin.New()
	router.GET("/admin", AuthRequired(cfg), RequireRole(RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextSubjectKey))
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "no header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expiredToken, want: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + foreignToken, want: http.StatusUnauthorized},
		{name: "missing role", header: "Bearer " + viewerToken, want: http.StatusForbidden},
		{name: "admin", header: "Bearer " + adminToken, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d (%s)", tt.want, rec.Code, rec.Body.String())
			}
			if tt.want == http.StatusOK && rec.Body.String() != "admin" {
				t.Fatalf("expected subject admin, got %q", rec.Body.String())
			}
		})
	}
}

func TestParseAccessClaims_RejectsOtherTokenTypes(t *testing.T) {
	cfg := jwtTestConfig{secret: "test-secret"}
	token, _, err := IssueAccessToken(cfg, "admin", nil, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	claims, err := ParseAccessClaims(token, cfg)
	if err != nil {
		t.Fatalf("ParseAccessClaims: %v", err)
	}
	if roles := extractRoles(claims["roles"]); len(roles) != 0 {
		t.Fatalf("expected no roles, got %v", roles)
	}

	if _, err := ParseAccessClaims("not-a-token", cfg); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}
