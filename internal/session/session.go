// Package session holds the login state for one browser. The state lives in
// two non-HttpOnly cookies: authToken carries the bearer token that gates
// protected routes, user carries the JSON profile returned by login. Both are
// written together on login success and cleared together on logout or when
// the token is detected invalid.
package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var nowFunc = time.Now

const (
	TokenCookie = "authToken"
	UserCookie  = "user"
)

type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type Session struct {
	Token string
	User  User
}

// Valid reports whether the session gates access. Presence of a token is the
// contract; the only local check is an expired exp claim on tokens that parse
// as JWTs, which counts as detected invalidity and forces a new login.
func (s Session) Valid() bool {
	if s.Token == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		// Not a JWT we can inspect; presence alone gates access.
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.After(nowFunc())
}

// Write stores the session cookies. Called once, on login success.
func Write(w http.ResponseWriter, s Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    s.Token,
		Path:     "/",
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	profile, err := json.Marshal(s.User)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     UserCookie,
		Value:    encodeCookieValue(profile),
		Path:     "/",
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// Clear tears the session down on logout or detected invalidity.
func Clear(w http.ResponseWriter) {
	for _, name := range []string{TokenCookie, UserCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Secure:   true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}

// Cookie values cannot hold raw JSON (quotes, commas), so the profile is
// base64url-wrapped.
func encodeCookieValue(raw []byte) string {
	return base64.RawURLEncoding.EncodeToString(raw)
}

func decodeCookieValue(value string) ([]byte, bool) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, false
	}
	return raw, true
}

// FromRequest rebuilds the session from the request cookies. A missing token
// cookie means no session; a missing or garbled user cookie only loses the
// profile, not the session.
func FromRequest(r *http.Request) (Session, bool) {
	tokenCookie, err := r.Cookie(TokenCookie)
	if err != nil || tokenCookie.Value == "" {
		return Session{}, false
	}
	sess := Session{Token: tokenCookie.Value}

	if userCookie, err := r.Cookie(UserCookie); err == nil {
		if raw, ok := decodeCookieValue(userCookie.Value); ok {
			_ = json.Unmarshal(raw, &sess.User)
		}
	}
	return sess, true
}
