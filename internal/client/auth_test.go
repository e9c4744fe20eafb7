package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sarif-mia/agency-website-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newAuthBackend(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var mu sync.Mutex
	seen := []string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Header.Get("Authorization"))
		mu.Unlock()
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/login/":
			_, _ = io.WriteString(w, `{"success":true,"message":"Login successful! Welcome back.","user":{"id":3,"email":"a@b.com","first_name":"A","last_name":"B"},"token":"tok-123"}`)
		case "/api/auth/register/":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"success":false,"message":"Registration failed. Please check your input.","errors":{"email":["taken"]}}`)
		default:
			_, _ = io.WriteString(w, `[]`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func TestAuthLogin_StoresAndAttachesToken(t *testing.T) {
	srv, seen := newAuthBackend(t)
	c := New(srv.URL+"/api", WithLogger(zaptest.NewLogger(t).Sugar()))
	ctx := context.Background()

	res, err := c.Auth.Login(ctx, model.LoginRequest{Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)

	var auth model.AuthResponse
	require.NoError(t, res.Decode(&auth))
	assert.True(t, auth.Success)
	assert.Equal(t, 3, auth.User.ID)
	assert.Equal(t, "tok-123", c.Auth.Token())

	_, err = c.Meeting.GetRequests(ctx)
	require.NoError(t, err)

	c.Auth.Logout()
	assert.Empty(t, c.Auth.Token())
	_, err = c.Meeting.GetRequests(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Token tok-123", ""}, *seen)
}

func TestAuthRegister_FailureKeepsNoToken(t *testing.T) {
	srv, _ := newAuthBackend(t)
	c := New(srv.URL+"/api", WithLogger(zaptest.NewLogger(t).Sugar()))

	res, err := c.Auth.Register(context.Background(), model.RegisterRequest{Email: "a@b.com"})
	assert.Nil(t, res)
	require.Error(t, err)
	assert.Equal(t, "Registration failed. Please check your input.", err.Error())
	assert.Empty(t, c.Auth.Token())
}

func TestAuthLogin_UnreachableKeepsToken(t *testing.T) {
	c := unreachableClient(t)
	c.Auth.SetToken("restored")

	res, err := c.Auth.Login(context.Background(), model.LoginRequest{Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)
	assert.True(t, res.Degraded())
	assert.Equal(t, "restored", c.Auth.Token())
}

func TestCallerAuthorizationHeaderWins(t *testing.T) {
	b := newBackend(t, http.StatusOK, `{}`)
	c := b.client(t)
	c.Auth.SetToken("session")

	_, err := c.Call(context.Background(), "/meetings/", &RequestOptions{Headers: map[string]string{"Authorization": "Bearer explicit"}})
	require.NoError(t, err)
	assert.Equal(t, "Bearer explicit", b.last(t).Header.Get("Authorization"))
}
