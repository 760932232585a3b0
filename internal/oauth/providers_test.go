package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xwingdb/squad-api/internal/config"
	"golang.org/x/oauth2"
)

func TestNewRegistry_OnlyConfiguredProviders(t *testing.T) {
	r := NewRegistry(&config.Config{BaseURL: "http://localhost:8080"})
	require.Empty(t, r.Names())

	_, err := r.Get("google")
	require.ErrorIs(t, err, ErrUnknownProvider)

	r = NewRegistry(&config.Config{
		BaseURL:        "http://localhost:8080",
		GoogleKey:      "gk",
		GoogleSecret:   "gs",
		FacebookKey:    "fk",
		FacebookSecret: "fs",
	})
	require.Equal(t, []string{"google", "facebook"}, r.Names())

	google, err := r.Get("google")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080/auth/google/callback", google.Config.RedirectURL)
}

func TestProvider_AuthCodeURLCarriesState(t *testing.T) {
	r := NewRegistry(&config.Config{
		BaseURL:      "http://localhost:8080",
		GoogleKey:    "gk",
		GoogleSecret: "gs",
	})
	google, err := r.Get("google")
	require.NoError(t, err)

	url := google.AuthCodeURL("nonce-123")
	require.Contains(t, url, "state=nonce-123")
	require.Contains(t, url, "client_id=gk")
}

func TestProvider_FetchUserInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "Bearer token-abc", req.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "12345", "name": "Wedge Antilles", "email": "wedge@example.com"}`))
	}))
	defer server.Close()

	p := &Provider{
		Name:        "google",
		Config:      &oauth2.Config{},
		UserInfoURL: server.URL,
	}

	info, err := p.FetchUserInfo(context.Background(), &oauth2.Token{AccessToken: "token-abc", TokenType: "Bearer"})
	require.NoError(t, err)
	require.Equal(t, "12345", info.ID)
	require.Equal(t, "Wedge Antilles", info.Name)
	require.Equal(t, "wedge@example.com", info.Email)
}

func TestProvider_FetchUserInfo_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer server.Close()

	p := &Provider{
		Name:        "google",
		Config:      &oauth2.Config{},
		UserInfoURL: server.URL,
	}

	_, err := p.FetchUserInfo(context.Background(), &oauth2.Token{AccessToken: "bad", TokenType: "Bearer"})
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "401"))
}

func TestProvider_FetchUserInfo_MissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name": "Nobody"}`))
	}))
	defer server.Close()

	p := &Provider{
		Name:        "facebook",
		Config:      &oauth2.Config{},
		UserInfoURL: server.URL,
	}

	_, err := p.FetchUserInfo(context.Background(), &oauth2.Token{AccessToken: "t", TokenType: "Bearer"})
	require.Error(t, err)
}
