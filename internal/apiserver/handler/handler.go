package handler

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/sofrahq/sofra/internal/apiserver/database"
	"github.com/sofrahq/sofra/internal/apiserver/guard"
	"github.com/sofrahq/sofra/internal/apiserver/middleware"
	"github.com/sofrahq/sofra/internal/common/cnst"
	"github.com/sofrahq/sofra/internal/i18n"
)

// requirePrincipal fetches the authenticated principal set by the session
// middleware, responding 401 when it is missing.
func requirePrincipal(c *gin.Context) (guard.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		i18n.RespondWithError(c, i18n.ErrUnauthorized)
		return guard.Principal{}, false
	}
	return p, true
}

// pathID parses a numeric path parameter, responding 400 when it is not a
// positive integer.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		i18n.RespondWithError(c, i18n.ErrBadRequest.WithParam("Reason", "Invalid "+name+" parameter"))
		return 0, false
	}
	return uint(id), true
}

// bindJSON binds the request body, turning binding failures into the
// structured validation response.
func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			i18n.RespondWithValidationError(c, err)
		} else {
			i18n.RespondWithError(c, i18n.ErrBadRequest.WithParam("Reason", err.Error()))
		}
		return false
	}
	return true
}

// appendActivity writes one audit row for the acting principal. When the
// context carries a transaction the row joins it, so mutations and their
// audit trail commit or roll back together.
func appendActivity(ctx context.Context, db database.Database, p guard.Principal, action cnst.ActionType, entity cnst.EntityType, entityID uint, restaurantID *uint, details map[string]any) error {
	payload, err := json.Marshal(details)
	if err != nil {
		payload = []byte("{}")
	}

	uid := p.UserID
	return db.CreateActivityLog(ctx, &database.ActivityLog{
		UserID:       &uid,
		Action:       action.String(),
		EntityType:   entity.String(),
		EntityID:     entityID,
		RestaurantID: restaurantID,
		Details:      string(payload),
	})
}

// principalFor adapts a user record to the principal shape used by the
// guard and the audit trail.
func principalFor(user *database.User) guard.Principal {
	return guard.Principal{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
}
