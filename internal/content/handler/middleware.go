package handler

import (
	"net/http"
	"strings"
	"time"

	"buildcare_site/internal/content/domain"
	"buildcare_site/platform/config"

	"github.com/gin-gonic/gin"
)

const (
	// LangParam is the query parameter that selects a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "site_lang"

	langCookieMaxAge = 365 * 24 * time.Hour
)

// Negotiate resolves the request language from the lang query parameter,
// then the site_lang cookie, then Accept-Language, then the configured
// default, and stores it on the request context. A valid lang parameter is
// persisted as the cookie.
func Negotiate(cfg config.LanguageConfig) gin.HandlerFunc {
	fallback := domain.Default
	if lang, ok := domain.Parse(cfg.GetDefaultLanguage()); ok {
		fallback = lang
	}

	return func(c *gin.Context) {
		lang, persist := resolve(c.Request, fallback)
		if persist {
			SetLanguageCookie(c, cfg, lang)
		}
		c.Set(LangParam, lang)
		c.Request = c.Request.WithContext(domain.WithLanguage(c.Request.Context(), lang))
		c.Header("Content-Language", string(lang))
		c.Next()
	}
}

func resolve(r *http.Request, fallback domain.Language) (domain.Language, bool) {
	if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
		if lang, ok := domain.Parse(value); ok {
			return lang, true
		}
	}

	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if lang, ok := domain.Parse(cookie.Value); ok {
			return lang, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		return domain.Match(accept), false
	}

	return fallback, false
}

// SetLanguageCookie persists lang on the response.
func SetLanguageCookie(c *gin.Context, cfg config.LanguageConfig, lang domain.Language) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     LangCookieName,
		Value:    string(lang),
		Path:     "/",
		MaxAge:   int(langCookieMaxAge.Seconds()),
		Secure:   cfg.GetLanguageCookieSecure(),
		HttpOnly: false,
		SameSite: cfg.GetLanguageCookieSameSite(),
	})
}

// RequestLanguage returns the language Negotiate chose for this request.
func RequestLanguage(c *gin.Context) domain.Language {
	return domain.FromContext(c.Request.Context())
}
