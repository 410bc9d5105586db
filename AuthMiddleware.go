package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// AuthMiddleware verifies the bearer token and attaches the Principal.
func AuthMiddleware(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			jsonError(c, http.StatusUnauthorized, "missing Authorization header")
			c.Abort()
			return
		}

		// Expect: "Bearer token"
		if !strings.HasPrefix(authHeader, "Bearer ") {
			jsonError(c, http.StatusUnauthorized, "invalid token format")
			c.Abort()
			return
		}

		principal, err := tokens.Verify(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			jsonError(c, http.StatusUnauthorized, "token is not valid")
			c.Abort()
			return
		}

		c.Set(principalKey, principal)

		c.Next()
	}
}

// RequireRole gates a route on the principal's role before the handler runs.
func RequireRole(allowed ...Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := currentPrincipal(c)
		for _, r := range allowed {
			if p.Role == r {
				c.Next()
				return
			}
		}
		jsonError(c, http.StatusForbidden, "access denied")
		c.Abort()
	}
}
