package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sofrahq/sofra/internal/apiserver/cache"
	"github.com/sofrahq/sofra/internal/apiserver/database"
	"github.com/sofrahq/sofra/internal/apiserver/guard"
	"github.com/sofrahq/sofra/internal/common/cnst"
	"github.com/sofrahq/sofra/internal/common/dto"
	"github.com/sofrahq/sofra/internal/i18n"
)

// Social handles the outbound social media links shown on a menu page.
type Social struct {
	db     database.Database
	guard  *guard.Guard
	cache  *cache.MenuCache
	logger *zap.Logger
}

// NewSocial creates a new social media link handler
func NewSocial(db database.Database, g *guard.Guard, mc *cache.MenuCache, logger *zap.Logger) *Social {
	return &Social{
		db:     db,
		guard:  g,
		cache:  mc,
		logger: logger.Named("apiserver.handler.social"),
	}
}

// List returns the restaurant's social links.
func (h *Social) List(c *gin.Context) {
	restaurantID, ok := pathID(c, "id")
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

	links, err := h.db.ListSocialMediaLinksByRestaurantID(c.Request.Context(), restaurantID)
	if err != nil {
		h.logger.Error("failed to list social links", zap.Uint("restaurant_id", restaurantID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to list social links"))
		return
	}

	i18n.Success(i18n.SuccessSocialLinkList).WithPayload(links).Send(c)
}

// Create adds a social link to the restaurant.
func (h *Social) Create(c *gin.Context) {
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateSocialMediaLinkRequest
	if !bindJSON(c, &req) {
		return
	}
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	rest, err := h.guard.CheckRestaurant(c.Request.Context(), p, restaurantID)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	link := &database.SocialMediaLink{
		Platform:     req.Platform,
		URL:          req.URL,
		RestaurantID: rest.ID,
	}

	err = h.db.Transaction(c.Request.Context(), func(ctx context.Context) error {
		if err := h.db.CreateSocialMediaLink(ctx, link); err != nil {
			return err
		}
		return appendActivity(ctx, h.db, p, cnst.ActionCreate, cnst.EntitySocialLink, link.ID, &rest.ID, map[string]any{
			"platform": link.Platform,
		})
	})
	if err != nil {
		h.logger.Error("failed to create social link", zap.Uint("restaurant_id", rest.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to create social link"))
		return
	}

	h.cache.Invalidate(c.Request.Context(), rest.ID)
	i18n.Created(i18n.SuccessSocialLinkCreated).With("socialMediaLink", link).Send(c)
}

// Update edits a social link.
func (h *Social) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateSocialMediaLinkRequest
	if !bindJSON(c, &req) {
		return
	}
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	link, err := h.guard.CheckSocialMediaLink(c.Request.Context(), p, id)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	if req.Platform != nil {
		link.Platform = *req.Platform
	}
	if req.URL != nil {
		link.URL = *req.URL
	}

	err = h.db.Transaction(c.Request.Context(), func(ctx context.Context) error {
		if err := h.db.UpdateSocialMediaLink(ctx, link); err != nil {
			return err
		}
		return appendActivity(ctx, h.db, p, cnst.ActionUpdate, cnst.EntitySocialLink, link.ID, &link.RestaurantID, map[string]any{
			"platform": link.Platform,
		})
	})
	if err != nil {
		h.logger.Error("failed to update social link", zap.Uint("link_id", link.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to update social link"))
		return
	}

	h.cache.Invalidate(c.Request.Context(), link.RestaurantID)
	i18n.Success(i18n.SuccessSocialLinkUpdated).With("socialMediaLink", link).Send(c)
}

// Delete removes a social link.
func (h *Social) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	link, err := h.guard.CheckSocialMediaLink(c.Request.Context(), p, id)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	err = h.db.Transaction(c.Request.Context(), func(ctx context.Context) error {
		if err := h.db.DeleteSocialMediaLink(ctx, link.ID); err != nil {
			return err
		}
		return appendActivity(ctx, h.db, p, cnst.ActionDelete, cnst.EntitySocialLink, link.ID, &link.RestaurantID, map[string]any{
			"platform": link.Platform,
		})
	})
	if err != nil {
		h.logger.Error("failed to delete social link", zap.Uint("link_id", link.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to delete social link"))
		return
	}

	h.cache.Invalidate(c.Request.Context(), link.RestaurantID)
	i18n.Success(i18n.SuccessSocialLinkDeleted).Send(c)
}
