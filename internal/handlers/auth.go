package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xwingdb/squad-api/internal/constants"
	apierrors "github.com/xwingdb/squad-api/internal/errors"
	"github.com/xwingdb/squad-api/internal/oauth"
	"github.com/xwingdb/squad-api/internal/repository"
	"github.com/xwingdb/squad-api/internal/services"
)

// AuthHandler drives the OAuth login flow: redirect out to the provider,
// accept the callback, and bind the resulting identity to the session.
type AuthHandler struct {
	authService *services.AuthService
	providers   *oauth.Registry
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, providers *oauth.Registry) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		providers:   providers,
	}
}

// Login redirects the browser to the provider's consent page with a fresh
// state nonce stored in the session.
func (h *AuthHandler) Login(c *gin.Context) {
	provider, err := h.providers.Get(c.Param("provider"))
	if err != nil {
		apierrors.BadRequest(c, "Unknown authentication provider")
		return
	}

	state := uuid.NewString()
	session := sessions.Default(c)
	session.Set(constants.SessionKeyOAuthState, state)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.Redirect(http.StatusFound, provider.AuthCodeURL(state))
}

// Callback completes the code flow: verify state, exchange the code, read
// the provider profile, get-or-create the user, and set the session.
func (h *AuthHandler) Callback(c *gin.Context) {
	provider, err := h.providers.Get(c.Param("provider"))
	if err != nil {
		apierrors.Forbidden(c, "Authentication failed")
		return
	}

	session := sessions.Default(c)
	expectedState, _ := session.Get(constants.SessionKeyOAuthState).(string)
	session.Delete(constants.SessionKeyOAuthState)

	state := c.Query("state")
	if state == "" {
		state = c.PostForm("state")
	}
	if expectedState == "" || state != expectedState {
		_ = session.Save()
		apierrors.Forbidden(c, "Authentication failed")
		return
	}

	code := c.Query("code")
	if code == "" {
		code = c.PostForm("code")
	}
	if code == "" {
		apierrors.Forbidden(c, "Authentication failed")
		return
	}

	token, err := provider.Exchange(c.Request.Context(), code)
	if err != nil {
		apierrors.Forbidden(c, "Authentication failed")
		return
	}

	info, err := provider.FetchUserInfo(c.Request.Context(), token)
	if err != nil {
		apierrors.Forbidden(c, "Authentication failed")
		return
	}

	user, err := h.authService.RegisterIdentity(provider.Name, info.ID, repository.Profile{
		Name:  info.Name,
		Email: info.Email,
	})
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	session.Set(constants.SessionKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(authSuccessPage))
}

// Failure is where providers land users whose handshake did not complete.
func (h *AuthHandler) Failure(c *gin.Context) {
	apierrors.Forbidden(c, "Authentication failed")
}

// Logout drops the session identity.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(constants.SessionKeyUserID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}
	c.String(http.StatusOK, "Logged out; reauthenticate with OAuth")
}

// Methods lists the configured authentication providers.
func (h *AuthHandler) Methods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"methods": h.providers.Names()})
}

// Index is a minimal landing page with a login link per provider.
func (h *AuthHandler) Index(c *gin.Context) {
	page := "<html><body><h1>Squad Database</h1><ul>"
	for _, name := range h.providers.Names() {
		page += fmt.Sprintf(`<li><a href="/auth/%s">Sign in with %s</a></li>`, name, name)
	}
	page += "</ul></body></html>"
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

const authSuccessPage = `<html><body><h1>Authentication successful</h1><p>You may close this window.</p></body></html>`
