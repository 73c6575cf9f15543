package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultVisitorCookieName names the cookie that keys a visitor's view state.
	DefaultVisitorCookieName = "view_id"
	// DefaultVisitorCookieMaxAge bounds how long the browser keeps the cookie.
	DefaultVisitorCookieMaxAge = 30 * 24 * time.Hour
)

// VisitorConfig holds configuration for the visitor middleware.
type VisitorConfig struct {
	// CookieName is the name of the visitor cookie (default: "view_id")
	CookieName string
	// CookieDomain is the domain for the visitor cookie
	CookieDomain string
	// MaxAge is the cookie lifetime (default: 30 days)
	MaxAge time.Duration
	// NewID generates visitor ids (default: uuid.NewString)
	NewID func() string
}

// VisitorSession returns a middleware that makes sure every request carries a
// visitor id. A missing or malformed cookie is replaced with a fresh id.
func VisitorSession(cfg VisitorConfig) func(http.Handler) http.Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultVisitorCookieName
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = DefaultVisitorCookieMaxAge
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := visitorFromCookie(r, cfg.CookieName)
			if id == "" {
				id = cfg.NewID()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    id,
					Path:     "/",
					Domain:   cfg.CookieDomain,
					HttpOnly: true,
					Secure:   r.TLS != nil || isForwardedHTTPS(r),
					SameSite: http.SameSiteLaxMode,
					MaxAge:   int(cfg.MaxAge.Seconds()),
				})
			}
			next.ServeHTTP(w, r.WithContext(SetVisitorInContext(r.Context(), id)))
		})
	}
}

func visitorFromCookie(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Value))
	if err != nil {
		return ""
	}
	return id.String()
}
