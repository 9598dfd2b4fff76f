package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sofrahq/sofra/internal/apiserver/database"
	"github.com/sofrahq/sofra/internal/auth/session"
	"github.com/sofrahq/sofra/internal/common/cnst"
	"github.com/sofrahq/sofra/internal/common/dto"
	"github.com/sofrahq/sofra/internal/i18n"
	"github.com/sofrahq/sofra/pkg/metrics"
)

// Auth handles login, logout and current-user endpoints.
type Auth struct {
	db      database.Database
	store   session.Store
	metrics *metrics.Metrics
	logger  *zap.Logger
	ttl     time.Duration
}

// NewAuth creates a new authentication handler
func NewAuth(db database.Database, store session.Store, m *metrics.Metrics, logger *zap.Logger, ttl time.Duration) *Auth {
	return &Auth{
		db:      db,
		store:   store,
		metrics: m,
		logger:  logger.Named("apiserver.handler.auth"),
		ttl:     ttl,
	}
}

// Login verifies credentials, mints a session and sets the session cookie.
func (h *Auth) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.db.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		// unknown user and wrong password answer identically
		h.logger.Warn("login failed", zap.String("username", req.Username))
		h.metrics.LoginAttempt(false)
		i18n.RespondWithError(c, i18n.ErrorInvalidCredentials)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		h.logger.Warn("login failed", zap.String("username", req.Username))
		h.metrics.LoginAttempt(false)
		i18n.RespondWithError(c, i18n.ErrorInvalidCredentials)
		return
	}

	sess, err := h.store.Create(c.Request.Context(), user.ID, user.Username, string(user.Role))
	if err != nil {
		h.logger.Error("failed to create session", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to create session"))
		return
	}

	if err := appendActivity(c.Request.Context(), h.db, principalFor(user), cnst.ActionLogin, cnst.EntityUser, user.ID, nil, map[string]any{
		"name": user.Username,
	}); err != nil {
		h.logger.Warn("failed to append login activity", zap.Error(err))
	}

	h.metrics.LoginAttempt(true)
	h.logger.Info("user logged in",
		zap.Uint("user_id", user.ID),
		zap.String("username", user.Username))

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cnst.SessionCookie, sess.Token, int(h.ttl.Seconds()), "/", "", false, true)
	i18n.Success(i18n.SuccessLogin).With("user", user).Send(c)
}

// Logout revokes the current session and clears the cookie.
func (h *Auth) Logout(c *gin.Context) {
	if token := c.GetString(cnst.CtxSessionToken); token != "" {
		if err := h.store.Delete(c.Request.Context(), token); err != nil {
			h.logger.Warn("failed to delete session", zap.Error(err))
		}
	}

	c.SetCookie(cnst.SessionCookie, "", -1, "/", "", false, true)
	i18n.Success(i18n.SuccessLogout).Send(c)
}

// Me returns the full record of the authenticated user.
func (h *Auth) Me(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), p.UserID)
	if err != nil {
		h.logger.Error("failed to load current user",
			zap.Uint("user_id", p.UserID),
			zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to load user"))
		return
	}

	i18n.Success(i18n.SuccessUserInfo).With("user", user).Send(c)
}

// ChangePassword verifies the old password and stores a new hash.
func (h *Auth) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), p.UserID)
	if err != nil {
		h.logger.Error("failed to load current user", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to load user"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		h.logger.Warn("password change with wrong old password",
			zap.Uint("user_id", user.ID))
		i18n.RespondWithError(c, i18n.ErrorInvalidOldPassword)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to hash password"))
		return
	}

	user.Password = string(hashed)
	if err := h.db.UpdateUser(c.Request.Context(), user); err != nil {
		h.logger.Error("failed to update password", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to update password"))
		return
	}

	if err := appendActivity(c.Request.Context(), h.db, p, cnst.ActionUpdate, cnst.EntityUser, user.ID, nil, map[string]any{
		"name":  user.Username,
		"field": "password",
	}); err != nil {
		h.logger.Warn("failed to append password change activity", zap.Error(err))
	}

	h.logger.Info("password changed", zap.Uint("user_id", user.ID))
	i18n.Success(i18n.SuccessPasswordChanged).Send(c)
}
