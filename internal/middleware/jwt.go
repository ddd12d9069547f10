package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"HeadsUpPoker/internal/session"
)

// JWTAuth resolves the join token into a seat binding and stores it on
// the context. The token arrives as a Bearer header, or as a ?token=
// query parameter since browser websocket clients cannot set headers.
func JWTAuth(sessions *session.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		b, err := sessions.Resolve(c.Request.Context(), tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("session_id", b.ID)
		c.Set("table_id", b.TableID)
		c.Set("seat", b.Seat)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
