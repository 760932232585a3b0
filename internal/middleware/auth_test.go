package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xwingdb/squad-api/internal/constants"
	"github.com/xwingdb/squad-api/internal/models"
	"github.com/xwingdb/squad-api/internal/repository"
	"github.com/xwingdb/squad-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Squad{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	authService := services.NewAuthService(repository.NewUserRepository(db))

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Test-only login endpoint to mint a session cookie for an arbitrary id.
	r.GET("/test/login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(constants.SessionKeyUserID, c.Query("id"))
		require.NoError(t, session.Save())
		c.Status(http.StatusOK)
	})

	r.GET("/protected", RequireAuth(authService), func(c *gin.Context) {
		user, ok := GetUser(c)
		require.True(t, ok)
		c.String(http.StatusOK, user.ID)
	})

	return r, db
}

func loginCookies(t *testing.T, r *gin.Engine, userID string) []*http.Cookie {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/test/login?id="+userID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestRequireAuth_NoSession(t *testing.T) {
	r, _ := setupAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "authentication via OAuth required")
}

func TestRequireAuth_StaleSession(t *testing.T) {
	r, _ := setupAuthRouter(t)

	cookies := loginCookies(t, r, "user-google-ghost")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "re-authenticate with OAuth")
}

func TestRequireAuth_ValidSession(t *testing.T) {
	r, db := setupAuthRouter(t)

	user := &models.User{
		ID:         models.UserID("google", "1"),
		Type:       models.TypeUser,
		Provider:   "google",
		ExternalID: "1",
	}
	require.NoError(t, db.Create(user).Error)

	cookies := loginCookies(t, r, user.ID)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, user.ID, w.Body.String())
}
