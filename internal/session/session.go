// internal/session/session.go
//
// Contact – Visitor session cookie.
//
// Context
//   Each visitor's form state lives server-side in a Store, keyed by an
//   opaque random identifier carried in the “contact_session” cookie.  The
//   cookie holds no form data, only the key, so it needs no signing: a
//   forged or stale id simply maps to a fresh, empty form.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package session

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
)

const (
	CookieName = "contact_session"
	idBytes    = 18 // 24 base64url characters
)

// Cookies issues and reads the session cookie.
type Cookies struct {
	Secure bool // Set the Secure attribute even on plain-HTTP requests.
}

// ID returns the visitor's session id, issuing a new cookie on w when the
// request carries none or a malformed one.
func (c Cookies) ID(w http.ResponseWriter, r *http.Request) (string, error) {
	if ck, err := r.Cookie(CookieName); err == nil && validID(ck.Value) {
		return ck.Value, nil
	}

	id, err := newID()
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure || r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}

// Clear expires the session cookie.
func (c Cookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func newID() (string, error) {
	b := make([]byte, idBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// validID accepts only ids this package could have issued.
func validID(s string) bool {
	b, err := base64.RawURLEncoding.DecodeString(s)
	return err == nil && len(b) == idBytes
}
