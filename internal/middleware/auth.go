package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/insurai/authcore/internal/token"
)

// claimsKey is the gin context key the session claims are stored under.
const claimsKey = "session_claims"

// SessionAuth gates requests behind a bearer session token. Verification is a
// pure function of the token and the current time; no storage is touched. On
// success the claims are attached to the request context.
func SessionAuth(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := extractBearerToken(c.GetHeader("Authorization"))
		if bearer == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing or invalid authorization token",
			})
			return
		}

		claims, err := issuer.Verify(bearer)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired session",
			})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFromContext returns the session claims the gate attached, if any.
func ClaimsFromContext(c *gin.Context) (*token.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*token.Claims)
	return claims, ok
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
