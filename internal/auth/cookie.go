package auth

import (
	"net/http"
	"strings"
	"time"
)

// CookieName is the session cookie the token travels in.
const CookieName = "session"

// CookieWriter sets and clears the session cookie with the agreed attributes:
// HTTP-only, SameSite Lax, path-wide, 2-hour max age.
type CookieWriter struct {
	forceSecure bool
}

// NewCookieWriter creates a cookie writer. With forceSecure the Secure flag is
// always set; otherwise it follows the request scheme (TLS or
// X-Forwarded-Proto behind a proxy).
func NewCookieWriter(forceSecure bool) *CookieWriter {
	return &CookieWriter{forceSecure: forceSecure}
}

func (c *CookieWriter) secure(r *http.Request) bool {
	if c.forceSecure {
		return true
	}
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")), "https")
}

// SetSession writes the session cookie.
func (c *CookieWriter) SetSession(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionTTL / time.Second),
		HttpOnly: true,
		Secure:   c.secure(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSession expires the session cookie. Idempotent.
func (c *CookieWriter) ClearSession(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure(r),
		SameSite: http.SameSiteLaxMode,
	})
}
