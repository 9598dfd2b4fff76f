package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ifuryst/lol"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sofrahq/sofra/internal/apiserver/cache"
	"github.com/sofrahq/sofra/internal/apiserver/database"
	"github.com/sofrahq/sofra/internal/apiserver/guard"
	"github.com/sofrahq/sofra/internal/auth/preview"
	"github.com/sofrahq/sofra/internal/common/cnst"
	"github.com/sofrahq/sofra/internal/common/dto"
	"github.com/sofrahq/sofra/internal/i18n"
	"github.com/sofrahq/sofra/pkg/metrics"
	"github.com/sofrahq/sofra/pkg/utils"
)

// Restaurant handles tenant lifecycle: provisioning, profile updates,
// deletion and preview token minting.
type Restaurant struct {
	db      database.Database
	guard   *guard.Guard
	preview *preview.Service
	cache   *cache.MenuCache
	metrics *metrics.Metrics
	baseURL string
	logger  *zap.Logger
}

// NewRestaurant creates a new restaurant handler
func NewRestaurant(db database.Database, g *guard.Guard, pv *preview.Service, mc *cache.MenuCache, m *metrics.Metrics, baseURL string, logger *zap.Logger) *Restaurant {
	return &Restaurant{
		db:      db,
		guard:   g,
		preview: pv,
		cache:   mc,
		metrics: m,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.Named("apiserver.handler.restaurant"),
	}
}

// List returns the restaurants visible to the caller: all of them for a
// super admin, the caller's own for a restaurant admin.
func (h *Restaurant) List(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var (
		restaurants []*database.Restaurant
		err         error
	)
	if p.IsSuperAdmin() {
		restaurants, err = h.db.ListRestaurants(c.Request.Context())
	} else {
		restaurants, err = h.db.ListRestaurantsByAdminID(c.Request.Context(), p.UserID)
	}
	if err != nil {
		h.logger.Error("failed to list restaurants", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to list restaurants"))
		return
	}

	i18n.Success(i18n.SuccessRestaurantList).WithPayload(restaurants).Send(c)
}

// Get returns one restaurant, subject to ownership.
func (h *Restaurant) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	rest, err := h.guard.CheckRestaurant(c.Request.Context(), p, id)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	i18n.Success(i18n.SuccessRestaurantInfo).With("restaurant", rest).Send(c)
}

// Create provisions a restaurant together with its admin binding. Super
// admins either embed a brand new admin account or name an existing one;
// any other caller becomes the admin themselves. The admin resolution,
// the restaurant row and the audit entries commit as one transaction.
func (h *Restaurant) Create(c *gin.Context) {
	var req dto.CreateRestaurantRequest
	if !bindJSON(c, &req) {
		return
	}
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	status := database.StatusSetup
	if req.Status != "" {
		status = database.RestaurantStatus(req.Status)
	}
	rtl := true
	if req.RTL != nil {
		rtl = *req.RTL
	}

	rest := &database.Restaurant{
		Name:           req.Name,
		Description:    req.Description,
		Logo:           req.Logo,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		Status:         status,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		RTL:            rtl,
	}

	var newAdmin *database.User
	if p.IsSuperAdmin() {
		switch {
		case req.Admin != nil:
			hashed, err := bcrypt.GenerateFromPassword([]byte(req.Admin.Password), bcrypt.DefaultCost)
			if err != nil {
				i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to hash password"))
				return
			}
			newAdmin = &database.User{
				Username: req.Admin.Username,
				Password: string(hashed),
				Name:     req.Admin.Name,
				Email:    req.Admin.Email,
				Role:     database.RoleRestaurantAdmin,
			}
		case req.AdminID != 0:
			admin, err := h.db.GetUserByID(c.Request.Context(), req.AdminID)
			if err != nil {
				if errors.Is(err, database.ErrNotFound) {
					i18n.RespondWithError(c, i18n.ErrorAdminNotFound)
					return
				}
				h.logger.Error("failed to load admin candidate", zap.Error(err))
				i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to load admin"))
				return
			}
			if admin.Role != database.RoleRestaurantAdmin {
				i18n.RespondWithError(c, i18n.ErrorInvalidRole)
				return
			}
			rest.AdminID = admin.ID
		default:
			i18n.RespondWithError(c, i18n.ErrBadRequest.WithParam("Reason", "Either admin or adminId is required"))
			return
		}
	} else {
		// everyone else can only provision for themselves
		rest.AdminID = p.UserID
	}

	if rest.AdminID != 0 {
		if _, err := h.db.GetRestaurantByAdminID(c.Request.Context(), rest.AdminID); err == nil {
			i18n.RespondWithError(c, i18n.ErrorAdminAlreadyAssigned)
			return
		} else if !errors.Is(err, database.ErrNotFound) {
			h.logger.Error("failed to check admin assignment", zap.Error(err))
			i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to check admin"))
			return
		}
	}

	slug, err := h.mintSlug(c.Request.Context(), req.Name)
	if err != nil {
		h.logger.Error("failed to mint slug", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to generate slug"))
		return
	}
	rest.Slug = slug

	err = h.db.Transaction(c.Request.Context(), func(ctx context.Context) error {
		if newAdmin != nil {
			if err := h.db.CreateUser(ctx, newAdmin); err != nil {
				return err
			}
			rest.AdminID = newAdmin.ID
			if err := appendActivity(ctx, h.db, p, cnst.ActionCreate, cnst.EntityUser, newAdmin.ID, nil, map[string]any{
				"name": newAdmin.Username,
				"role": string(newAdmin.Role),
			}); err != nil {
				return err
			}
		}
		if err := h.db.CreateRestaurant(ctx, rest); err != nil {
			return err
		}
		return appendActivity(ctx, h.db, p, cnst.ActionCreate, cnst.EntityRestaurant, rest.ID, &rest.ID, map[string]any{
			"name": rest.Name,
			"slug": rest.Slug,
		})
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicated) {
			// lost a race on username, slug or admin binding
			i18n.RespondWithError(c, i18n.ErrorDuplicateEntity)
			return
		}
		h.logger.Error("failed to provision restaurant", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to create restaurant"))
		return
	}

	h.metrics.RestaurantProvisioned()
	h.logger.Info("restaurant provisioned",
		zap.Uint("restaurant_id", rest.ID),
		zap.String("slug", rest.Slug),
		zap.Uint("admin_id", rest.AdminID))

	resp := i18n.Created(i18n.SuccessRestaurantCreated).With("restaurant", rest)
	if newAdmin != nil {
		resp = resp.With("admin", newAdmin)
	}
	resp.Send(c)
}

// Update applies a partial profile update. The slug is minted once at
// creation and survives renames so printed QR codes stay valid.
func (h *Restaurant) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateRestaurantRequest
	if !bindJSON(c, &req) {
		return
	}
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	rest, err := h.guard.CheckRestaurant(c.Request.Context(), p, id)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	if req.Name != nil {
		rest.Name = *req.Name
	}
	if req.Description != nil {
		rest.Description = *req.Description
	}
	if req.Logo != nil {
		rest.Logo = *req.Logo
	}
	if req.Phone != nil {
		rest.Phone = *req.Phone
	}
	if req.Email != nil {
		rest.Email = *req.Email
	}
	if req.Address != nil {
		rest.Address = *req.Address
	}
	if req.Status != nil {
		rest.Status = database.RestaurantStatus(*req.Status)
	}
	if req.PrimaryColor != nil {
		rest.PrimaryColor = *req.PrimaryColor
	}
	if req.SecondaryColor != nil {
		rest.SecondaryColor = *req.SecondaryColor
	}
	if req.RTL != nil {
		rest.RTL = *req.RTL
	}

	// reassignment is a super admin move; others cannot hand off a tenant
	if req.AdminID != nil && p.IsSuperAdmin() && *req.AdminID != rest.AdminID {
		admin, err := h.db.GetUserByID(c.Request.Context(), *req.AdminID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				i18n.RespondWithError(c, i18n.ErrorAdminNotFound)
				return
			}
			h.logger.Error("failed to load admin candidate", zap.Error(err))
			i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to load admin"))
			return
		}
		if admin.Role != database.RoleRestaurantAdmin {
			i18n.RespondWithError(c, i18n.ErrorInvalidRole)
			return
		}
		if _, err := h.db.GetRestaurantByAdminID(c.Request.Context(), admin.ID); err == nil {
			i18n.RespondWithError(c, i18n.ErrorAdminAlreadyAssigned)
			return
		} else if !errors.Is(err, database.ErrNotFound) {
			h.logger.Error("failed to check admin assignment", zap.Error(err))
			i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to check admin"))
			return
		}
		rest.AdminID = admin.ID
	}

	err = h.db.Transaction(c.Request.Context(), func(ctx context.Context) error {
		if err := h.db.UpdateRestaurant(ctx, rest); err != nil {
			return err
		}
		return appendActivity(ctx, h.db, p, cnst.ActionUpdate, cnst.EntityRestaurant, rest.ID, &rest.ID, map[string]any{
			"name": rest.Name,
		})
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicated) {
			i18n.RespondWithError(c, i18n.ErrorAdminAlreadyAssigned)
			return
		}
		h.logger.Error("failed to update restaurant", zap.Uint("restaurant_id", rest.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to update restaurant"))
		return
	}

	// branding and status changes must show up on the public page at once
	h.cache.Invalidate(c.Request.Context(), rest.ID)
	i18n.Success(i18n.SuccessRestaurantUpdated).With("restaurant", rest).Send(c)
}

// Delete removes the restaurant and everything under it.
func (h *Restaurant) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	rest, err := h.guard.CheckRestaurant(c.Request.Context(), p, id)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	err = h.db.Transaction(c.Request.Context(), func(ctx context.Context) error {
		if err := h.db.DeleteRestaurant(ctx, rest.ID); err != nil {
			return err
		}
		return appendActivity(ctx, h.db, p, cnst.ActionDelete, cnst.EntityRestaurant, rest.ID, &rest.ID, map[string]any{
			"name": rest.Name,
			"slug": rest.Slug,
		})
	})
	if err != nil {
		h.logger.Error("failed to delete restaurant", zap.Uint("restaurant_id", rest.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to delete restaurant"))
		return
	}

	h.cache.Invalidate(c.Request.Context(), rest.ID)
	h.logger.Info("restaurant deleted",
		zap.Uint("restaurant_id", rest.ID),
		zap.String("slug", rest.Slug))
	i18n.Success(i18n.SuccessRestaurantDeleted).Send(c)
}

// PreviewToken mints a short-lived signed link so the menu can be checked
// before the restaurant goes active.
func (h *Restaurant) PreviewToken(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	rest, err := h.guard.CheckRestaurant(c.Request.Context(), p, id)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	token, expiresAt, err := h.preview.GenerateToken(rest.ID, rest.Slug)
	if err != nil {
		h.logger.Error("failed to mint preview token", zap.Uint("restaurant_id", rest.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to generate preview token"))
		return
	}

	i18n.Success(i18n.SuccessPreviewToken).WithPayload(dto.PreviewTokenResponse{
		Token:     token,
		URL:       h.baseURL + "/menus/" + rest.Slug + "?preview=" + token,
		ExpiresAt: expiresAt,
	}).Send(c)
}

// mintSlug derives a URL slug from the display name, suffixing a short
// random tail when the plain form is taken.
func (h *Restaurant) mintSlug(ctx context.Context, name string) (string, error) {
	slug := utils.Slugify(name)
	_, err := h.db.GetRestaurantBySlug(ctx, slug)
	if errors.Is(err, database.ErrNotFound) {
		return slug, nil
	}
	if err != nil {
		return "", err
	}
	return slug + "-" + strings.ToLower(lol.RandomString(4)), nil
}
