package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"restaurant_backend/internal/auth"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"
	"restaurant_backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthRouter(t *testing.T, db *gorm.DB, tokens *auth.TokenManager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := repositories.NewUserRepository()
	r := gin.New()
	r.Use(RequestIDMiddleware(), DBMiddleware(db))
	r.GET("/private", AuthMiddleware(tokens, users), func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c))
	})
	r.GET("/public", OptionalAuthMiddleware(tokens, users), func(c *gin.Context) {
		c.String(http.StatusOK, "anon:"+GetUserID(c))
	})
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	db := testutil.NewTestDB(t)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	r := newAuthRouter(t, db, tokens)

	user := testutil.CreateUser(t, db, "alice")
	token, _, err := tokens.GenerateToken(user.ID, string(user.Role))
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		w := get(r, "/private", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := get(r, "/private", "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
	})

	t.Run("valid header", func(t *testing.T) {
		w := get(r, "/private", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, user.ID, w.Body.String())
	})

	t.Run("token query parameter", func(t *testing.T) {
		w := get(r, "/private?token="+token, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("deleted user", func(t *testing.T) {
		ghost := testutil.CreateUser(t, db, "ghost")
		ghostToken, _, err := tokens.GenerateToken(ghost.ID, string(ghost.Role))
		require.NoError(t, err)
		require.NoError(t, db.Unscoped().Delete(ghost).Error)

		w := get(r, "/private", ghostToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("suspended user", func(t *testing.T) {
		banned := testutil.CreateUser(t, db, "banned")
		require.NoError(t, db.Model(banned).Update("status", models.UserStatusSuspended).Error)
		bannedToken, _, err := tokens.GenerateToken(banned.ID, string(banned.Role))
		require.NoError(t, err)

		w := get(r, "/private", bannedToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "ACCOUNT_SUSPENDED")
	})
}

func TestOptionalAuthMiddleware(t *testing.T) {
	db := testutil.NewTestDB(t)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	r := newAuthRouter(t, db, tokens)

	w := get(r, "/public", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anon:", w.Body.String())

	user := testutil.CreateUser(t, db, "bob")
	token, _, err := tokens.GenerateToken(user.ID, string(user.Role))
	require.NoError(t, err)

	w = get(r, "/public", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anon:"+user.ID, w.Body.String())

	w = get(r, "/public", "broken")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
