package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ifuryst/lol"

	"github.com/sofrahq/sofra/internal/common/cnst"
)

// CORS creates a CORS middleware restricted to the configured origins.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	origins := lol.UniqSlice(allowedOrigins)

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			c.Next()
			return
		}

		for _, allowed := range origins {
			if origin == allowed || allowed == "*" {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, "+cnst.XLang)
				c.Header("Access-Control-Allow-Credentials", "true")
				break
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
