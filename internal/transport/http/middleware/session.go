package middleware

import (
	"context"
	"net/http"

	"hrmadmin/internal/requestctx"
	"hrmadmin/internal/session"
)

// RequireSession gates protected routes on the authToken cookie. Presence is
// the contract; the one local check is an expired token, which is torn down
// before redirecting so the browser does not loop on a dead cookie. A logged
// in user landing on /login is bounced back to the app.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromRequest(r)
		isLogin := r.URL.Path == "/login"

		if !ok || !sess.Valid() {
			if ok {
				// Detected invalidity: expired token still in the cookie.
				session.Clear(w)
			}
			if isLogin {
				next.ServeHTTP(w, r)
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if isLogin {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		ctx := requestctx.WithSession(r.Context(), sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSession exposes the request's session to handlers.
func GetSession(ctx context.Context) (session.Session, bool) {
	return requestctx.GetSession(ctx)
}
