package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hrmadmin/internal/session"
)

func gatedHandler(t *testing.T, wantSession bool) http.Handler {
	t.Helper()
	return RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := GetSession(r.Context())
		if wantSession && !ok {
			t.Fatal("expected session in context")
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestMissingCookieRedirectsToLogin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/employees", nil)
	rec := httptest.NewRecorder()

	gatedHandler(t, false).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("unexpected location: %s", loc)
	}
}

func TestPresentTokenGatesAccess(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/employees", nil)
	req.AddCookie(&http.Cookie{Name: session.TokenCookie, Value: "opaque-token"})
	rec := httptest.NewRecorder()

	gatedHandler(t, true).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got %d", rec.Code)
	}
}

func TestExpiredTokenIsTornDown(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/employees", nil)
	req.AddCookie(&http.Cookie{Name: session.TokenCookie, Value: signed})
	rec := httptest.NewRecorder()

	gatedHandler(t, false).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.TokenCookie && c.MaxAge == -1 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expired token cookie must be cleared")
	}
}

func TestLoginPageBouncesAuthenticatedUsers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: session.TokenCookie, Value: "opaque-token"})
	rec := httptest.NewRecorder()

	gatedHandler(t, false).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("unexpected location: %s", loc)
	}
}

func TestLoginPageRendersForAnonymousUsers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec := httptest.NewRecorder()

	gatedHandler(t, false).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got %d", rec.Code)
	}
}
