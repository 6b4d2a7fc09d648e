package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ReadOnlyMessage is returned for every blocked write.
const ReadOnlyMessage = "This library is read-only"

// ReadOnly blocks write operations when enabled. GET, HEAD and OPTIONS are
// always allowed.
func ReadOnly(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		accept := c.GetHeader("Accept")
		if strings.Contains(accept, "application/json") || strings.Contains(c.ContentType(), "application/json") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"detail":    ReadOnlyMessage,
				"read_only": true,
			})
			return
		}

		c.String(http.StatusForbidden, ReadOnlyMessage)
		c.Abort()
	}
}
