package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/sofrahq/sofra/internal/common/cnst"
	"github.com/sofrahq/sofra/internal/i18n"
)

// Lang resolves the response language from the request headers and makes
// it available to the i18n helpers downstream.
func Lang() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(cnst.XLang, i18n.GetLanguageFromRequest(c.Request))
		c.Next()
	}
}
