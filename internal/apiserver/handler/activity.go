package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/sofrahq/sofra/internal/apiserver/database"
	"github.com/sofrahq/sofra/internal/apiserver/guard"
	"github.com/sofrahq/sofra/internal/common/dto"
	"github.com/sofrahq/sofra/internal/i18n"
)

const defaultActivityLimit = 50

// Activity serves the audit feed. The feed is read-only; entries are
// written by the mutating handlers.
type Activity struct {
	db     database.Database
	guard  *guard.Guard
	logger *zap.Logger
}

// NewActivity creates a new activity feed handler
func NewActivity(db database.Database, g *guard.Guard, logger *zap.Logger) *Activity {
	return &Activity{
		db:     db,
		guard:  g,
		logger: logger.Named("apiserver.handler.activity"),
	}
}

// ListGlobal returns the newest entries across all restaurants.
func (h *Activity) ListGlobal(c *gin.Context) {
	limit, ok := activityLimit(c)
	if !ok {
		return
	}

	entries, err := h.db.ListActivityLogs(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list activity", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to list activity"))
		return
	}

	i18n.Success(i18n.SuccessActivityList).WithPayload(summarize(entries)).Send(c)
}

// ListByRestaurant returns the newest entries for one restaurant,
// subject to ownership.
func (h *Activity) ListByRestaurant(c *gin.Context) {
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return
	}
	limit, ok := activityLimit(c)
	if !ok {
		return
	}
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	if _, err := h.guard.CheckRestaurant(c.Request.Context(), p, restaurantID); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	entries, err := h.db.ListActivityLogsByRestaurantID(c.Request.Context(), restaurantID, limit)
	if err != nil {
		h.logger.Error("failed to list activity", zap.Uint("restaurant_id", restaurantID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to list activity"))
		return
	}

	i18n.Success(i18n.SuccessActivityList).WithPayload(summarize(entries)).Send(c)
}

func activityLimit(c *gin.Context) (int, bool) {
	raw := c.DefaultQuery("limit", strconv.Itoa(defaultActivityLimit))
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		i18n.RespondWithError(c, i18n.ErrBadRequest.WithParam("Reason", "Invalid limit parameter"))
		return 0, false
	}
	return limit, true
}

// summarize attaches a human-readable line to each entry, pulled out of
// the free-form details JSON.
func summarize(entries []*database.ActivityLog) []dto.ActivityEntry {
	out := make([]dto.ActivityEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ActivityEntry{
			ID:           e.ID,
			UserID:       e.UserID,
			Action:       e.Action,
			EntityType:   e.EntityType,
			EntityID:     e.EntityID,
			RestaurantID: e.RestaurantID,
			Details:      e.Details,
			Summary:      summaryLine(e),
			CreatedAt:    e.CreatedAt,
		})
	}
	return out
}

func summaryLine(e *database.ActivityLog) string {
	entity := strings.ReplaceAll(e.EntityType, "_", " ")
	for _, path := range []string{"name", "label", "platform"} {
		if v := gjson.Get(e.Details, path); v.Exists() && v.String() != "" {
			return fmt.Sprintf("%s %s %q", e.Action, entity, v.String())
		}
	}
	return fmt.Sprintf("%s %s #%d", e.Action, entity, e.EntityID)
}
