package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gmod-tts/internal/auth"
)

// BearerAuth rejects requests whose bearer credential the authenticator
// does not accept. With no secret configured every request passes.
func BearerAuth(a *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.Enabled() {
			c.Next()
			return
		}

		// Extract token from "Bearer <token>"
		credential := ""
		scheme, rest, found := strings.Cut(c.GetHeader("Authorization"), " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			credential = rest
		}

		if err := a.Check(credential); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
