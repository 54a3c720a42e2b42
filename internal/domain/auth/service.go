// Package auth wraps the remote authentication endpoints. The resulting
// token and user profile are handed to the session layer; nothing here is
// verified locally beyond what the session's expiry inspection does.
package auth

import (
	"context"
	"net/http"

	"hrmadmin/internal/platform/apiclient"
	"hrmadmin/internal/session"
)

const (
	loginPath  = "/api/auth/login"
	logoutPath = "/api/auth/logout"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResult struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

type Service struct {
	client *apiclient.Client
}

func NewService(client *apiclient.Client) *Service {
	return &Service{client: client}
}

// Login exchanges credentials for a session. The call itself never carries a
// bearer token.
func (s *Service) Login(ctx context.Context, creds Credentials) (session.Session, error) {
	var result loginResult
	if _, err := s.client.Do(ctx, http.MethodPost, loginPath, creds, &result); err != nil {
		return session.Session{}, err
	}
	return session.Session{Token: result.Token, User: result.User}, nil
}

// Logout tells the remote API to drop the token. Callers clear the session
// cookies regardless of the outcome.
func (s *Service) Logout(ctx context.Context) error {
	_, err := s.client.Do(ctx, http.MethodPost, logoutPath, nil, nil)
	return err
}
