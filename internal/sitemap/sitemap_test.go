package sitemap

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	catalogdomain "buildcare_site/internal/catalog/domain"
	catalog "buildcare_site/internal/catalog/service"
	content "buildcare_site/internal/content/domain"
	contenthandler "buildcare_site/internal/content/handler"
	apphttp "buildcare_site/internal/http"
	"buildcare_site/platform/logger"

	"github.com/gin-gonic/gin"
)

type testConfig struct{}

func (testConfig) GetSiteName() string                      { return "BuildCare" }
func (testConfig) GetSiteBaseURL() string                   { return "https://buildcare.example/" }
func (testConfig) GetDefaultLanguage() string               { return "en" }
func (testConfig) GetLanguageCookieSecure() bool            { return false }
func (testConfig) GetLanguageCookieSameSite() http.SameSite { return http.SameSiteLaxMode }

func newTestEngine(t *testing.T) (*gin.Engine, *catalogdomain.Catalog) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c := catalogdomain.MustLoadEmbedded()
	bundle, err := content.LoadEmbedded(c)
	if err != nil {
		t.Fatalf("load locales: %v", err)
	}
	resolver := content.NewResolver(bundle, c)

	engine := gin.New()
	engine.Use(contenthandler.Negotiate(testConfig{}))
	v1 := engine.Group("/api/v1")
	NewModule(catalog.New(c, resolver, logger.Discard()), resolver, testConfig{}).RegisterRoutes(&apphttp.RouterContext{
		Engine: engine,
		V1:     v1,
	})
	return engine, c
}

func serve(r *gin.Engine, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestSitemap_ListsPagesAndServices(t *testing.T) {
	r, c := newTestEngine(t)

	rec := serve(r, "/sitemap.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
		t.Fatalf("unexpected content type %q", ct)
	}

	var doc struct {
		URLs []struct {
			Loc        string `xml:"loc"`
			ChangeFreq string `xml:"changefreq"`
			Priority   string `xml:"priority"`
		} `xml:"url"`
	}
	if err := xml.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode sitemap: %v", err)
	}

	locs := map[string]string{}
	for _, u := range doc.URLs {
		locs[u.Loc] = u.Priority
		if u.ChangeFreq == "" {
			t.Errorf("missing changefreq for %s", u.Loc)
		}
	}

	for _, path := range []string{"/", "/about", "/contact", "/services", "/projects"} {
		if _, ok := locs["https://buildcare.example"+path]; !ok {
			t.Errorf("missing page %s", path)
		}
	}
	for _, id := range c.IDs() {
		if locs["https://buildcare.example/services/"+id] != "0.8" {
			t.Errorf("missing or misprioritized service page %s", id)
		}
	}
	if want := 5 + len(c.IDs()); len(doc.URLs) != want {
		t.Fatalf("expected %d urls, got %d", want, len(doc.URLs))
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`hreflang="ar"`)) {
		t.Fatal("expected Arabic alternates")
	}
}

func TestRobots_PointsAtSitemap(t *testing.T) {
	r, _ := newTestEngine(t)

	body := serve(r, "/robots.txt").Body.String()
	if !strings.Contains(body, "Sitemap: https://buildcare.example/sitemap.xml") {
		t.Fatalf("unexpected robots.txt:\n%s", body)
	}
	if !strings.Contains(body, "Disallow: /api/") {
		t.Fatalf("expected the API to be disallowed:\n%s", body)
	}
}

func TestManifest_FollowsLanguage(t *testing.T) {
	r, _ := newTestEngine(t)

	tests := []struct {
		target  string
		wantDir string
	}{
		{target: "/manifest.webmanifest", wantDir: "ltr"},
		{target: "/manifest.webmanifest?lang=ar", wantDir: "rtl"},
	}
	for _, tt := range tests {
		rec := serve(r, tt.target)
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/manifest+json") {
			t.Fatalf("%s: unexpected content type %q", tt.target, ct)
		}
		var m Manifest
		if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
			t.Fatalf("%s: decode: %v", tt.target, err)
		}
		if m.Dir != tt.wantDir || m.Name == "" || len(m.Icons) == 0 {
			t.Fatalf("%s: unexpected manifest %+v", tt.target, m)
		}
	}
}

func TestContactCard_Localized(t *testing.T) {
	r, _ := newTestEngine(t)

	var en, ar ContactCard
	for lang, out := range map[string]*ContactCard{"en": &en, "ar": &ar} {
		rec := serve(r, "/api/v1/contact-card?lang="+lang)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", lang, rec.Code)
		}
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("%s: decode: %v", lang, err)
		}
	}

	if en.Name != "BuildCare Contracting" || en.Dir != "ltr" {
		t.Fatalf("unexpected English card %+v", en)
	}
	if ar.Dir != "rtl" || ar.Name == en.Name {
		t.Fatalf("unexpected Arabic card %+v", ar)
	}
	if ar.ContactURL != "https://buildcare.example/contact?lang=ar" {
		t.Fatalf("unexpected contact url %q", ar.ContactURL)
	}
}

func TestContactQR_IsPNG(t *testing.T) {
	r, _ := newTestEngine(t)

	rec := serve(r, "/api/v1/contact-card/qr.png")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if img.Bounds().Dx() != qrSize {
		t.Fatalf("expected %dpx image, got %d", qrSize, img.Bounds().Dx())
	}
}
