// Package sitemap serves the descriptive surfaces crawlers and browsers ask
// for: the sitemap, robots.txt, the web app manifest and the contact card.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	catalog "buildcare_site/internal/catalog/service"
	content "buildcare_site/internal/content/domain"
	"buildcare_site/platform/config"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	themeColor      = "#1f3a5f"
	backgroundColor = "#ffffff"
	qrSize          = 256

	// QRPath is where the contact card QR code is served.
	QRPath = "/api/v1/contact-card/qr.png"
)

// Config is what the site surfaces need from the application config.
type Config interface {
	config.SiteConfig
}

type page struct {
	path       string
	changeFreq string
	priority   float64
}

var staticPages = []page{
	{path: "/", changeFreq: "weekly", priority: 1.0},
	{path: "/about", changeFreq: "monthly", priority: 0.6},
	{path: "/contact", changeFreq: "yearly", priority: 0.7},
	{path: "/services", changeFreq: "weekly", priority: 0.9},
	{path: "/projects", changeFreq: "monthly", priority: 0.7},
}

// Service builds the site surfaces from the catalog and the dictionaries.
type Service struct {
	catalog  *catalog.Service
	resolver *content.Resolver
	cfg      Config
}

// NewService creates the site surfaces service.
func NewService(c *catalog.Service, resolver *content.Resolver, cfg Config) *Service {
	return &Service{catalog: c, resolver: resolver, cfg: cfg}
}

// Sitemap renders sitemap.xml: the fixed pages, then one page per service.
func (s *Service) Sitemap() ([]byte, error) {
	pages := append([]page(nil), staticPages...)
	for _, entry := range s.catalog.Paths().Paths {
		pages = append(pages, page{path: entry.Path, changeFreq: "monthly", priority: 0.8})
	}

	set := urlSet{XMLNS: sitemapNS, XHTML: xhtmlNS, URLs: make([]urlEntry, 0, len(pages))}
	for _, p := range pages {
		entry := urlEntry{
			Loc:        s.absolute(p.path),
			ChangeFreq: p.changeFreq,
			Priority:   fmt.Sprintf("%.1f", p.priority),
		}
		for _, lang := range content.Supported {
			entry.Alternates = append(entry.Alternates, alternate{
				Rel:      "alternate",
				Hreflang: string(lang),
				Href:     s.localized(p.path, lang),
			})
		}
		set.URLs = append(set.URLs, entry)
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// Robots renders robots.txt. The API and admin surfaces are not for crawlers.
func (s *Service) Robots() string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("\n")
	b.WriteString("Sitemap: " + s.absolute("/sitemap.xml") + "\n")
	return b.String()
}

// Manifest builds the web app manifest in lang.
func (s *Service) Manifest(lang content.Language) Manifest {
	name := s.text(lang, "company.name", s.cfg.GetSiteName())
	return Manifest{
		Name:            name,
		ShortName:       s.cfg.GetSiteName(),
		Description:     s.text(lang, "hero.subtitle", ""),
		StartURL:        s.localized("/", lang),
		Display:         "standalone",
		BackgroundColor: backgroundColor,
		ThemeColor:      themeColor,
		Lang:            string(lang),
		Dir:             string(content.Direction(lang)),
		Icons: []ManifestIcon{
			{Src: "/icons/icon-192.png", Sizes: "192x192", Type: "image/png"},
			{Src: "/icons/icon-512.png", Sizes: "512x512", Type: "image/png"},
		},
	}
}

// ContactCard returns the company contact block in lang.
func (s *Service) ContactCard(lang content.Language) (ContactCard, error) {
	company, err := s.resolver.Section(lang, "company")
	if err != nil {
		return ContactCard{}, err
	}
	return ContactCard{
		Lang:       string(lang),
		Dir:        string(content.Direction(lang)),
		Name:       company["name"],
		Phone:      company["phone"],
		Email:      company["email"],
		Address:    company["address"],
		Hours:      company["hours"],
		ContactURL: s.localized("/contact", lang),
		QRCodeURL:  QRPath + "?lang=" + string(lang),
	}, nil
}

// ContactQR renders a PNG QR code of the contact page URL in lang.
func (s *Service) ContactQR(lang content.Language) ([]byte, error) {
	png, err := qrcode.Encode(s.localized("/contact", lang), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}

func (s *Service) absolute(path string) string {
	return strings.TrimRight(s.cfg.GetSiteBaseURL(), "/") + path
}

// localized is the page URL with the language query the site understands.
func (s *Service) localized(path string, lang content.Language) string {
	return s.absolute(path) + "?" + url.Values{"lang": {string(lang)}}.Encode()
}

func (s *Service) text(lang content.Language, key, fallback string) string {
	value, err := s.resolver.Text(lang, key)
	if err != nil || value == "" {
		return fallback
	}
	return value
}
