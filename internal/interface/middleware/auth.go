package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/astrocat-app/astrocat/pkg/helpers"
	"github.com/astrocat-app/astrocat/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth validates the access token cookie and ensures an active session
// exists in Redis. It sets userID in the Gin context on success; requests
// without a valid identity are rejected with 401.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := resolveIdentity(c, rdb, jwt)
		if !ok {
			response.AbortError(c, http.StatusUnauthorized, "authentication required", nil)
			return
		}
		c.Set(CtxUserIDKey, uid)
		c.Next()
	}
}

// OptionalAuth resolves the identity when a valid token is present and
// otherwise lets the request through as anonymous. Read endpoints use it to
// apply per-viewer visibility.
func OptionalAuth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid, ok := resolveIdentity(c, rdb, jwt); ok {
			c.Set(CtxUserIDKey, uid)
		}
		c.Next()
	}
}

func resolveIdentity(c *gin.Context, rdb *redis.Client, jwt *helpers.JWTManager) (string, bool) {
	token, err := c.Cookie("access_token")
	if err != nil || token == "" {
		return "", false
	}
	claims, err := jwt.ParseAccessToken(token)
	if err != nil {
		return "", false
	}
	if rdb != nil {
		data, err := rdb.HGetAll(c.Request.Context(), "user:session:"+claims.UserID).Result()
		if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return "", false
		}
	}
	return claims.UserID, true
}
