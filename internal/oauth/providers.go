package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xwingdb/squad-api/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"
)

// ErrUnknownProvider is returned when a request names a provider that is not
// configured.
var ErrUnknownProvider = errors.New("unknown OAuth provider")

const userInfoTimeout = 10 * time.Second

// UserInfo is the subset of provider profile fields the system persists.
type UserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Provider wraps one configured OAuth provider: the code-flow config plus
// the userinfo endpoint used to read the external identity after exchange.
type Provider struct {
	Name        string
	Config      *oauth2.Config
	UserInfoURL string
}

// AuthCodeURL builds the provider consent URL for the given state nonce.
func (p *Provider) AuthCodeURL(state string) string {
	return p.Config.AuthCodeURL(state)
}

// Exchange trades an authorization code for a token.
func (p *Provider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := p.Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code with %s: %w", p.Name, err)
	}
	return token, nil
}

// FetchUserInfo reads the provider's userinfo endpoint with the token and
// returns the external identity.
func (p *Provider) FetchUserInfo(ctx context.Context, token *oauth2.Token) (*UserInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, userInfoTimeout)
	defer cancel()

	client := p.Config.Client(ctx, token)
	resp, err := client.Get(p.UserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s profile: %w", p.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s profile request returned %d: %s", p.Name, resp.StatusCode, body)
	}

	var info UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode %s profile: %w", p.Name, err)
	}
	if info.ID == "" {
		return nil, fmt.Errorf("%s profile is missing an id", p.Name)
	}
	return &info, nil
}

// Registry holds the configured providers keyed by name.
type Registry struct {
	providers map[string]*Provider
	names     []string
}

// NewRegistry builds the provider registry from configuration. Providers
// with missing credentials are left out, matching an unset env.
func NewRegistry(cfg *config.Config) *Registry {
	r := &Registry{providers: map[string]*Provider{}}

	if cfg.GoogleKey != "" && cfg.GoogleSecret != "" {
		r.add(&Provider{
			Name: "google",
			Config: &oauth2.Config{
				ClientID:     cfg.GoogleKey,
				ClientSecret: cfg.GoogleSecret,
				Endpoint:     google.Endpoint,
				Scopes:       []string{"openid", "profile", "email"},
				RedirectURL:  fmt.Sprintf("%s/auth/google/callback", cfg.BaseURL),
			},
			UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		})
	}

	if cfg.FacebookKey != "" && cfg.FacebookSecret != "" {
		r.add(&Provider{
			Name: "facebook",
			Config: &oauth2.Config{
				ClientID:     cfg.FacebookKey,
				ClientSecret: cfg.FacebookSecret,
				Endpoint:     facebook.Endpoint,
				Scopes:       []string{"email"},
				RedirectURL:  fmt.Sprintf("%s/auth/facebook/callback", cfg.BaseURL),
			},
			UserInfoURL: "https://graph.facebook.com/me?fields=id,name,email",
		})
	}

	return r
}

func (r *Registry) add(p *Provider) {
	r.providers[p.Name] = p
	r.names = append(r.names, p.Name)
}

// Get returns the named provider.
func (r *Registry) Get(name string) (*Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, ErrUnknownProvider
	}
	return p, nil
}

// Names lists the configured provider names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}
