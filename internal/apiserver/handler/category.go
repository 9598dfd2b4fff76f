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

// Category handles menu category management under a restaurant.
type Category struct {
	db     database.Database
	guard  *guard.Guard
	cache  *cache.MenuCache
	logger *zap.Logger
}

// NewCategory creates a new category handler
func NewCategory(db database.Database, g *guard.Guard, mc *cache.MenuCache, logger *zap.Logger) *Category {
	return &Category{
		db:     db,
		guard:  g,
		cache:  mc,
		logger: logger.Named("apiserver.handler.category"),
	}
}

// List returns the restaurant's categories ordered for display.
func (h *Category) List(c *gin.Context) {
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

	categories, err := h.db.ListCategoriesByRestaurantID(c.Request.Context(), restaurantID)
	if err != nil {
		h.logger.Error("failed to list categories", zap.Uint("restaurant_id", restaurantID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to list categories"))
		return
	}

	i18n.Success(i18n.SuccessCategoryList).WithPayload(categories).Send(c)
}

// Create adds a category to the restaurant.
func (h *Category) Create(c *gin.Context) {
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateCategoryRequest
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

	category := &database.Category{
		Name:         req.Name,
		Description:  req.Description,
		Icon:         req.Icon,
		DisplayOrder: req.DisplayOrder,
		RestaurantID: rest.ID,
	}

	err = h.db.Transaction(c.Request.Context(), func(ctx context.Context) error {
		if err := h.db.CreateCategory(ctx, category); err != nil {
			return err
		}
		return appendActivity(ctx, h.db, p, cnst.ActionCreate, cnst.EntityCategory, category.ID, &rest.ID, map[string]any{
			"name": category.Name,
		})
	})
	if err != nil {
		h.logger.Error("failed to create category", zap.Uint("restaurant_id", rest.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to create category"))
		return
	}

	h.cache.Invalidate(c.Request.Context(), rest.ID)
	i18n.Created(i18n.SuccessCategoryCreated).With("category", category).Send(c)
}

// Update edits a category.
func (h *Category) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	category, err := h.guard.CheckCategory(c.Request.Context(), p, id)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.DisplayOrder != nil {
		category.DisplayOrder = *req.DisplayOrder
	}

	err = h.db.Transaction(c.Request.Context(), func(ctx context.Context) error {
		if err := h.db.UpdateCategory(ctx, category); err != nil {
			return err
		}
		return appendActivity(ctx, h.db, p, cnst.ActionUpdate, cnst.EntityCategory, category.ID, &category.RestaurantID, map[string]any{
			"name": category.Name,
		})
	})
	if err != nil {
		h.logger.Error("failed to update category", zap.Uint("category_id", category.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to update category"))
		return
	}

	h.cache.Invalidate(c.Request.Context(), category.RestaurantID)
	i18n.Success(i18n.SuccessCategoryUpdated).With("category", category).Send(c)
}

// Delete removes a category and the items filed under it.
func (h *Category) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	category, err := h.guard.CheckCategory(c.Request.Context(), p, id)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	err = h.db.Transaction(c.Request.Context(), func(ctx context.Context) error {
		if err := h.db.DeleteCategory(ctx, category.ID); err != nil {
			return err
		}
		return appendActivity(ctx, h.db, p, cnst.ActionDelete, cnst.EntityCategory, category.ID, &category.RestaurantID, map[string]any{
			"name": category.Name,
		})
	})
	if err != nil {
		h.logger.Error("failed to delete category", zap.Uint("category_id", category.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to delete category"))
		return
	}

	h.cache.Invalidate(c.Request.Context(), category.RestaurantID)
	i18n.Success(i18n.SuccessCategoryDeleted).Send(c)
}
