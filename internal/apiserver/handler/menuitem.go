package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sofrahq/sofra/internal/apiserver/cache"
	"github.com/sofrahq/sofra/internal/apiserver/database"
	"github.com/sofrahq/sofra/internal/apiserver/guard"
	"github.com/sofrahq/sofra/internal/common/cnst"
	"github.com/sofrahq/sofra/internal/common/dto"
	"github.com/sofrahq/sofra/internal/i18n"
)

// MenuItem handles dishes. Every item lives in a category of the same
// restaurant; a reference to a missing or foreign category is answered
// identically so nothing leaks about other tenants.
type MenuItem struct {
	db     database.Database
	guard  *guard.Guard
	cache  *cache.MenuCache
	logger *zap.Logger
}

// NewMenuItem creates a new menu item handler
func NewMenuItem(db database.Database, g *guard.Guard, mc *cache.MenuCache, logger *zap.Logger) *MenuItem {
	return &MenuItem{
		db:     db,
		guard:  g,
		cache:  mc,
		logger: logger.Named("apiserver.handler.menuitem"),
	}
}

// ListByRestaurant returns every item of the restaurant in creation order.
func (h *MenuItem) ListByRestaurant(c *gin.Context) {
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

	items, err := h.db.ListMenuItemsByRestaurantID(c.Request.Context(), restaurantID)
	if err != nil {
		h.logger.Error("failed to list menu items", zap.Uint("restaurant_id", restaurantID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to list menu items"))
		return
	}

	i18n.Success(i18n.SuccessMenuItemList).WithPayload(items).Send(c)
}

// ListByCategory returns the items of one category in creation order.
func (h *MenuItem) ListByCategory(c *gin.Context) {
	categoryID, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	category, err := h.guard.CheckCategory(c.Request.Context(), p, categoryID)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	items, err := h.db.ListMenuItemsByCategoryID(c.Request.Context(), category.ID)
	if err != nil {
		h.logger.Error("failed to list menu items", zap.Uint("category_id", category.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to list menu items"))
		return
	}

	i18n.Success(i18n.SuccessMenuItemList).WithPayload(items).Send(c)
}

// Create adds an item to the restaurant, filed under one of its own
// categories.
func (h *MenuItem) Create(c *gin.Context) {
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateMenuItemRequest
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

	if !h.categoryBelongs(c, req.CategoryID, rest.ID) {
		return
	}

	item := &database.MenuItem{
		Name:         req.Name,
		Description:  req.Description,
		Price:        *req.Price,
		Image:        req.Image,
		Featured:     req.Featured,
		CategoryID:   req.CategoryID,
		RestaurantID: rest.ID,
	}
	if req.DiscountPrice != nil && *req.DiscountPrice > 0 {
		item.DiscountPrice = req.DiscountPrice
	}

	err = h.db.Transaction(c.Request.Context(), func(ctx context.Context) error {
		if err := h.db.CreateMenuItem(ctx, item); err != nil {
			return err
		}
		return appendActivity(ctx, h.db, p, cnst.ActionCreate, cnst.EntityMenuItem, item.ID, &rest.ID, map[string]any{
			"name": item.Name,
		})
	})
	if err != nil {
		h.logger.Error("failed to create menu item", zap.Uint("restaurant_id", rest.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to create menu item"))
		return
	}

	h.cache.Invalidate(c.Request.Context(), rest.ID)
	i18n.Created(i18n.SuccessMenuItemCreated).With("menuItem", item).Send(c)
}

// Update edits an item. A zero discountPrice clears the discount; moving
// the item keeps it within the same restaurant.
func (h *MenuItem) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateMenuItemRequest
	if !bindJSON(c, &req) {
		return
	}
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	item, err := h.guard.CheckMenuItem(c.Request.Context(), p, id)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	if req.CategoryID != nil && *req.CategoryID != item.CategoryID {
		if !h.categoryBelongs(c, *req.CategoryID, item.RestaurantID) {
			return
		}
		item.CategoryID = *req.CategoryID
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.DiscountPrice != nil {
		if *req.DiscountPrice > 0 {
			item.DiscountPrice = req.DiscountPrice
		} else {
			item.DiscountPrice = nil
		}
	}
	if req.Image != nil {
		item.Image = *req.Image
	}
	if req.Featured != nil {
		item.Featured = *req.Featured
	}

	err = h.db.Transaction(c.Request.Context(), func(ctx context.Context) error {
		if err := h.db.UpdateMenuItem(ctx, item); err != nil {
			return err
		}
		return appendActivity(ctx, h.db, p, cnst.ActionUpdate, cnst.EntityMenuItem, item.ID, &item.RestaurantID, map[string]any{
			"name": item.Name,
		})
	})
	if err != nil {
		h.logger.Error("failed to update menu item", zap.Uint("menu_item_id", item.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to update menu item"))
		return
	}

	h.cache.Invalidate(c.Request.Context(), item.RestaurantID)
	i18n.Success(i18n.SuccessMenuItemUpdated).With("menuItem", item).Send(c)
}

// Delete removes an item.
func (h *MenuItem) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	item, err := h.guard.CheckMenuItem(c.Request.Context(), p, id)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	err = h.db.Transaction(c.Request.Context(), func(ctx context.Context) error {
		if err := h.db.DeleteMenuItem(ctx, item.ID); err != nil {
			return err
		}
		return appendActivity(ctx, h.db, p, cnst.ActionDelete, cnst.EntityMenuItem, item.ID, &item.RestaurantID, map[string]any{
			"name": item.Name,
		})
	})
	if err != nil {
		h.logger.Error("failed to delete menu item", zap.Uint("menu_item_id", item.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to delete menu item"))
		return
	}

	h.cache.Invalidate(c.Request.Context(), item.RestaurantID)
	i18n.Success(i18n.SuccessMenuItemDeleted).Send(c)
}

// categoryBelongs confirms the referenced category exists inside the
// restaurant. Missing and foreign categories answer the same way.
func (h *MenuItem) categoryBelongs(c *gin.Context, categoryID, restaurantID uint) bool {
	category, err := h.db.GetCategoryByID(c.Request.Context(), categoryID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			i18n.RespondWithError(c, i18n.ErrorCategoryMismatch)
			return false
		}
		h.logger.Error("failed to load category", zap.Uint("category_id", categoryID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to load category"))
		return false
	}
	if category.RestaurantID != restaurantID {
		i18n.RespondWithError(c, i18n.ErrorCategoryMismatch)
		return false
	}
	return true
}
