package middleware

import (
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/xwingdb/squad-api/internal/constants"
	apierrors "github.com/xwingdb/squad-api/internal/errors"
	"github.com/xwingdb/squad-api/internal/models"
	"github.com/xwingdb/squad-api/internal/services"
)

// RequireAuth resolves the session to a full user identity before any
// ownership-scoped handler runs. No session means 403; a session pointing at
// a user record that no longer exists also means 403, and the stale session
// is cleared so the client re-authenticates.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		userID, _ := session.Get(constants.SessionKeyUserID).(string)

		user, err := authService.ResolveUser(userID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUnauthenticated):
				apierrors.Forbidden(c, err.Error())
			case errors.Is(err, services.ErrInvalidSession):
				session.Delete(constants.SessionKeyUserID)
				_ = session.Save()
				apierrors.Forbidden(c, err.Error())
			default:
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// GetUser retrieves the authenticated user from context
func GetUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
