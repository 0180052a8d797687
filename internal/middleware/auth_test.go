package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-gin-comedy-tickets/internal/middleware"
	"go-gin-comedy-tickets/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-test-secret"

// setupAuthRouter /whoami 回傳目前身分
func setupAuthRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.OptionalAuth(secret))
	handlers := append(extra, func(c *gin.Context) {
		actor := middleware.ActorFromContext(c)
		if actor == nil {
			c.JSON(http.StatusOK, gin.H{"guest": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": actor.UserID, "role": actor.Role})
	})
	router.GET("/whoami", handlers...)
	return router
}

func request(t *testing.T, router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func bearer(t *testing.T, userID int, role model.Role) string {
	t.Helper()
	token, err := middleware.NewAccessToken(secret, userID, role, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAccessToken(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		token, err := middleware.NewAccessToken(secret, 42, model.RoleComedianVerified, time.Minute)
		require.NoError(t, err)

		actor, err := middleware.ParseAccessToken(secret, token)

		require.NoError(t, err)
		assert.Equal(t, 42, actor.UserID)
		assert.Equal(t, model.RoleComedianVerified, actor.Role)
	})

	t.Run("Failed - wrong secret", func(t *testing.T) {
		token, err := middleware.NewAccessToken("other", 42, model.RoleAudience, time.Minute)
		require.NoError(t, err)

		_, err = middleware.ParseAccessToken(secret, token)
		assert.Error(t, err)
	})

	t.Run("Failed - expired", func(t *testing.T) {
		token, err := middleware.NewAccessToken(secret, 42, model.RoleAudience, -time.Minute)
		require.NoError(t, err)

		_, err = middleware.ParseAccessToken(secret, token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("Failed - unknown role", func(t *testing.T) {
		token, err := middleware.NewAccessToken(secret, 42, model.Role("SUPERUSER"), time.Minute)
		require.NoError(t, err)

		_, err = middleware.ParseAccessToken(secret, token)
		assert.Error(t, err)
	})

	t.Run("Failed - none algorithm", func(t *testing.T) {
		claims := middleware.Claims{
			Role:             model.RoleAdmin,
			RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = middleware.ParseAccessToken(secret, token)
		assert.Error(t, err)
	})
}

func TestOptionalAuth(t *testing.T) {
	router := setupAuthRouter()

	t.Run("Guest without header", func(t *testing.T) {
		w := request(t, router, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"guest":true`)
	})

	t.Run("Actor from token", func(t *testing.T) {
		w := request(t, router, bearer(t, 7, model.RoleOrganizerVerified))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":7`)
		assert.Contains(t, w.Body.String(), `"role":"ORGANIZER_VERIFIED"`)
	})

	t.Run("Failed - bad header format", func(t *testing.T) {
		w := request(t, router, "Token abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Failed - invalid token", func(t *testing.T) {
		w := request(t, router, "Bearer abc.def.ghi")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid token")
	})
}

func TestRequireAuth(t *testing.T) {
	router := setupAuthRouter(middleware.RequireAuth())

	assert.Equal(t, http.StatusUnauthorized, request(t, router, "").Code)
	assert.Equal(t, http.StatusOK, request(t, router, bearer(t, 3, model.RoleAudience)).Code)
}

func TestRequireAdmin(t *testing.T) {
	router := setupAuthRouter(middleware.RequireAdmin())

	t.Run("Failed - guest", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, request(t, router, "").Code)
	})

	t.Run("Failed - organizer", func(t *testing.T) {
		w := request(t, router, bearer(t, 3, model.RoleOrganizerVerified))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "admin access required")
	})

	t.Run("Success", func(t *testing.T) {
		w := request(t, router, bearer(t, 1, model.RoleAdmin))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
