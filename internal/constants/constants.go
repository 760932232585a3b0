package constants

// Session and context keys shared between middleware and handlers.
const (
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "squad_session"

	// SessionKeyUserID is the session key holding the authenticated user's ID.
	SessionKeyUserID = "u"

	// SessionKeyOAuthState is the session key holding the OAuth state nonce
	// between the redirect and the callback.
	SessionKeyOAuthState = "oauth_state"

	// ContextKeyUser is the gin context key holding the resolved models.User.
	ContextKeyUser = "user"
)

// SessionMaxAge is the session cookie lifetime in seconds (7 days).
const SessionMaxAge = 86400 * 7
