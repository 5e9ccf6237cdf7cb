package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	catalog "buildcare_site/internal/catalog/domain"
	"buildcare_site/internal/content/domain"
	"buildcare_site/internal/content/transport"
	"buildcare_site/platform/validator"

	"github.com/gin-gonic/gin"
)

type testLanguageConfig struct {
	defaultLang string
}

func (c testLanguageConfig) GetDefaultLanguage() string             { return c.defaultLang }
func (testLanguageConfig) GetLanguageCookieSecure() bool            { return false }
func (testLanguageConfig) GetLanguageCookieSameSite() http.SameSite { return http.SameSiteLaxMode }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c := catalog.MustLoadEmbedded()
	bundle, err := domain.LoadEmbedded(c)
	if err != nil {
		t.Fatalf("load locales: %v", err)
	}
	cfg := testLanguageConfig{defaultLang: "en"}
	h := New(domain.NewResolver(bundle, c), validator.New(), cfg)

	r := gin.New()
	r.Use(Negotiate(cfg))
	r.GET("/content", h.GetContent)
	r.GET("/content/text/:key", h.GetText)
	r.POST("/language", h.SetLanguage)
	return r
}

func TestNegotiate_Precedence(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		name   string
		query  string
		cookie string
		accept string
		want   string
	}{
		{name: "default", want: "en"},
		{name: "accept language", accept: "ar-AE,ar;q=0.9", want: "ar"},
		{name: "cookie beats header", cookie: "en", accept: "ar", want: "en"},
		{name: "query beats cookie", query: "ar", cookie: "en", want: "ar"},
		{name: "invalid query ignored", query: "fr", cookie: "ar", want: "ar"},
		{name: "invalid cookie ignored", cookie: "xx", accept: "ar", want: "ar"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			target := "/content"
			if tc.query != "" {
				target += "?lang=" + tc.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tc.cookie})
			}
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			var resp transport.ContentResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Lang != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, resp.Lang)
			}
		})
	}
}

func TestNegotiate_QueryPersistsCookie(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/content?lang=ar", nil))

	if !strings.Contains(rec.Header().Get("Set-Cookie"), LangCookieName+"=ar") {
		t.Fatalf("expected language cookie, got %q", rec.Header().Get("Set-Cookie"))
	}
}

func TestGetText_ArabicContact(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/content/text/nav.contact?lang=ar", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp transport.TextResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Dir != "rtl" || resp.Value != "اتصل بنا" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestGetText_UnknownKey(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/content/text/nav.nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSetLanguage_ToggleAndExplicit(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/language", nil)
	req.AddCookie(&http.Cookie{Name: LangCookieName, Value: "ar"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var resp transport.LanguageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Lang != "en" || resp.Dir != "ltr" {
		t.Fatalf("expected toggle to en, got %+v", resp)
	}

	req = httptest.NewRequest(http.MethodPost, "/language", bytes.NewBufferString(`{"lang":"ar"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Lang != "ar" || resp.Dir != "rtl" {
		t.Fatalf("expected ar, got %+v", resp)
	}
	if !strings.Contains(rec.Header().Get("Set-Cookie"), LangCookieName+"=ar") {
		t.Fatalf("expected cookie to be set, got %q", rec.Header().Get("Set-Cookie"))
	}
}

func TestSetLanguage_RejectsUnsupported(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/language", bytes.NewBufferString(`{"lang":"fr"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
