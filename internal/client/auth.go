package client

import (
	"context"
	"sync"

	"github.com/sarif-mia/agency-website-sub000/internal/model"
)

// session holds the token issued by the last successful login or registration.
type session struct {
	mu    sync.RWMutex
	token string
}

func (s *session) get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *session) set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

type AuthAPI struct{ c *Client }

// Register creates an account. On success the issued token is attached to
// every later call as "Authorization: Token <key>".
func (a *AuthAPI) Register(ctx context.Context, req model.RegisterRequest) (*Result, error) {
	return a.authenticate(ctx, "/auth/register/", req)
}

// Login exchanges credentials for a token, stored like Register does.
func (a *AuthAPI) Login(ctx context.Context, req model.LoginRequest) (*Result, error) {
	return a.authenticate(ctx, "/auth/login/", req)
}

// Logout forgets the stored token.
func (a *AuthAPI) Logout() {
	a.c.session.set("")
}

// Token returns the stored token, if any.
func (a *AuthAPI) Token() string {
	return a.c.session.get()
}

// SetToken restores a token obtained earlier.
func (a *AuthAPI) SetToken(token string) {
	a.c.session.set(token)
}

func (a *AuthAPI) authenticate(ctx context.Context, endpoint string, body any) (*Result, error) {
	res, err := a.c.post(ctx, endpoint, body, actionShape)
	if err != nil || !res.OK() {
		return res, err
	}
	var auth model.AuthResponse
	if err := res.Decode(&auth); err == nil && auth.Token != "" {
		a.c.session.set(auth.Token)
	}
	return res, nil
}
