package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sofrahq/sofra/internal/apiserver/database"
	"github.com/sofrahq/sofra/internal/apiserver/guard"
	"github.com/sofrahq/sofra/internal/auth/session"
	"github.com/sofrahq/sofra/internal/common/cnst"
	"github.com/sofrahq/sofra/internal/i18n"
)

// tokenFromRequest pulls the opaque session token from the session
// cookie, falling back to a Bearer header for non-browser clients.
func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(cnst.SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// SessionAuth resolves the session token and loads the acting user before
// any handler runs. The user is re-read from the database on every
// request so sessions of deleted accounts die immediately.
func SessionAuth(store session.Store, db database.Database, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			i18n.RespondWithError(c, i18n.ErrUnauthorized)
			c.Abort()
			return
		}

		sess, err := store.Get(c.Request.Context(), token)
		if err != nil {
			logger.Debug("session lookup failed", zap.Error(err))
			i18n.RespondWithError(c, i18n.ErrUnauthorized)
			c.Abort()
			return
		}

		user, err := db.GetUserByID(c.Request.Context(), sess.UserID)
		if err != nil {
			// the account is gone, the session goes with it
			_ = store.Delete(c.Request.Context(), token)
			logger.Warn("session for unknown user revoked",
				zap.Uint("user_id", sess.UserID))
			i18n.RespondWithError(c, i18n.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(cnst.CtxPrincipal, guard.Principal{
			UserID:   user.ID,
			Username: user.Username,
			Role:     user.Role,
		})
		c.Set(cnst.CtxSessionToken, token)
		c.Next()
	}
}

// PrincipalFrom returns the authenticated principal stored by SessionAuth.
func PrincipalFrom(c *gin.Context) (guard.Principal, bool) {
	v, exists := c.Get(cnst.CtxPrincipal)
	if !exists {
		return guard.Principal{}, false
	}
	p, ok := v.(guard.Principal)
	return p, ok
}

// RequireSuperAdmin rejects any principal that is not a super admin.
// Must run after SessionAuth.
func RequireSuperAdmin(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			i18n.RespondWithError(c, i18n.ErrUnauthorized)
			c.Abort()
			return
		}

		if !p.IsSuperAdmin() {
			logger.Warn("super admin route denied",
				zap.Uint("user_id", p.UserID),
				zap.String("path", c.Request.URL.Path))
			i18n.RespondWithError(c, i18n.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
