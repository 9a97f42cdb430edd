package middleware

import (
	"net/http"

	"velora-be/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	UserIDKey  = "userID"
	IsAdminKey = "isAdmin"
)

// Auth parses the bearer token issued by the external identity provider
// and stores the subject and admin flag on the gin context. Requests
// without a valid token pass through unauthenticated; RequireAuth and
// RequireAdmin enforce presence where needed.
func Auth(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		tokenStr := auth.ExtractAccessToken(c.Request)
		if tokenStr == "" {
			c.Next()
			return
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			return key, nil
		})
		if err != nil || !token.Valid {
			c.Next()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, ok := claims["sub"].(string); ok && sub != "" {
				c.Set(UserIDKey, sub)
			}
			if isAdmin, ok := claims["is_admin"].(bool); ok {
				c.Set(IsAdminKey, isAdmin)
			}
		}

		c.Next()
	}
}

// RequireAuth rejects requests that carry no authenticated user.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects requests from non-admin users.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func IsAdmin(c *gin.Context) bool {
	v, ok := c.Get(IsAdminKey)
	if !ok {
		return false
	}
	isAdmin, _ := v.(bool)
	return isAdmin
}
