package authhandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"hrmadmin/internal/domain/auth"
	"hrmadmin/internal/platform/apiclient"
	"hrmadmin/internal/session"
	"hrmadmin/internal/transport/http/web"
)

type loginService interface {
	Login(ctx context.Context, creds auth.Credentials) (session.Session, error)
	Logout(ctx context.Context) error
}

type Handler struct {
	Auth     loginService
	Renderer *web.Renderer
}

func NewHandler(authService loginService, renderer *web.Renderer) *Handler {
	return &Handler{Auth: authService, Renderer: renderer}
}

type loginPage struct {
	Email string
	Error string
}

func (h *Handler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, http.StatusOK, "login.html", loginPage{})
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Renderer.Render(w, http.StatusBadRequest, "login.html", loginPage{Error: "invalid form submission"})
		return
	}
	creds := auth.Credentials{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if creds.Email == "" || creds.Password == "" {
		h.Renderer.Render(w, http.StatusBadRequest, "login.html", loginPage{
			Email: creds.Email,
			Error: "email and password are required",
		})
		return
	}

	sess, err := h.Auth.Login(r.Context(), creds)
	if err != nil {
		status := http.StatusUnauthorized
		message := "invalid credentials"
		var apiErr *apiclient.Error
		if errors.As(err, &apiErr) && apiErr.Transient() {
			status = http.StatusBadGateway
			message = "sign-in is unavailable right now, try again"
		}
		slog.Warn("login failed", "email", creds.Email, "err", err)
		h.Renderer.Render(w, status, "login.html", loginPage{Email: creds.Email, Error: message})
		return
	}

	session.Write(w, sess)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout clears the session cookies even when the remote revocation
// call fails; the browser side of the logout must always succeed.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Logout(r.Context()); err != nil {
		slog.Warn("remote logout failed", "err", err)
	}
	session.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
