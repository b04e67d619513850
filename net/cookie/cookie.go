// Package cookie manages the session token cookie. The cookie max-age is
// deliberately longer than the token validity: presence of the cookie is
// never proof of a session, the token inside is always re-verified.
package cookie

import (
	"net/http"
	"strings"
)

const (
	// SessionTokenName is the cookie carrying the signed session token.
	SessionTokenName = "jwt"

	// SessionTokenMaxAge is the client-side cookie lifetime in seconds (2 days).
	SessionTokenMaxAge = 60 * 60 * 24 * 2
)

// formatDomain formats the domain.
func formatDomain(domain string) string {
	if domain != "localhost" && !strings.HasPrefix(domain, ".") {
		return "." + domain
	}
	return domain
}

// sameSitePolicy returns the cookie attributes for the run mode. Production
// serves the API and the browser client from different origins over TLS, so
// the cookie must be Secure with SameSite=None; development stays strict.
func sameSitePolicy(production bool) (http.SameSite, bool) {
	if production {
		return http.SameSiteNoneMode, true
	}
	return http.SameSiteStrictMode, false
}

// SetSessionToken sets the session token cookie.
func SetSessionToken(w http.ResponseWriter, token string, production bool, domain ...string) {
	sameSite, secure := sameSitePolicy(production)

	c := &http.Cookie{
		Name:     SessionTokenName,
		Value:    token,
		MaxAge:   SessionTokenMaxAge,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		SameSite: sameSite,
	}

	if len(domain) > 0 && domain[0] != "" {
		c.Domain = formatDomain(domain[0])
	}

	http.SetCookie(w, c)
}

// GetSessionToken gets the session token from the request cookie.
func GetSessionToken(r *http.Request) (string, error) {
	c, err := r.Cookie(SessionTokenName)
	if err != nil {
		return "", err
	}
	return c.Value, nil
}

// ClearSessionToken clears the session token cookie. This only discards the
// client copy; an already-captured token stays valid until it expires.
func ClearSessionToken(w http.ResponseWriter, production bool) {
	sameSite, secure := sameSitePolicy(production)

	http.SetCookie(w, &http.Cookie{
		Name:     SessionTokenName,
		Value:    "",
		MaxAge:   -1,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		SameSite: sameSite,
	})
}
