package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sofrahq/sofra/internal/apiserver/database"
	"github.com/sofrahq/sofra/internal/apiserver/guard"
	"github.com/sofrahq/sofra/internal/common/cnst"
	"github.com/sofrahq/sofra/internal/common/dto"
	"github.com/sofrahq/sofra/internal/i18n"
	"github.com/sofrahq/sofra/pkg/metrics"
	"github.com/sofrahq/sofra/pkg/qr"
)

// QRCode handles printable QR code labels and their rendered images.
// Images are generated on demand from the restaurant's public menu URL,
// so a rename or re-theme never invalidates printed codes.
type QRCode struct {
	db      database.Database
	guard   *guard.Guard
	qr      qr.Generator
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewQRCode creates a new QR code handler
func NewQRCode(db database.Database, g *guard.Guard, generator qr.Generator, m *metrics.Metrics, logger *zap.Logger) *QRCode {
	return &QRCode{
		db:      db,
		guard:   g,
		qr:      generator,
		metrics: m,
		logger:  logger.Named("apiserver.handler.qrcode"),
	}
}

// List returns the restaurant's QR code labels.
func (h *QRCode) List(c *gin.Context) {
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

	codes, err := h.db.ListQRCodesByRestaurantID(c.Request.Context(), restaurantID)
	if err != nil {
		h.logger.Error("failed to list QR codes", zap.Uint("restaurant_id", restaurantID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to list QR codes"))
		return
	}

	i18n.Success(i18n.SuccessQRCodeList).WithPayload(codes).Send(c)
}

// Create registers a QR code label for the restaurant.
func (h *QRCode) Create(c *gin.Context) {
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateQRCodeRequest
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

	code := &database.QRCode{
		Label:        req.Label,
		RestaurantID: rest.ID,
	}

	err = h.db.Transaction(c.Request.Context(), func(ctx context.Context) error {
		if err := h.db.CreateQRCode(ctx, code); err != nil {
			return err
		}
		return appendActivity(ctx, h.db, p, cnst.ActionCreate, cnst.EntityQRCode, code.ID, &rest.ID, map[string]any{
			"label": code.Label,
		})
	})
	if err != nil {
		h.logger.Error("failed to create QR code", zap.Uint("restaurant_id", rest.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to create QR code"))
		return
	}

	i18n.Created(i18n.SuccessQRCodeCreated).With("qrCode", code).Send(c)
}

// Delete removes a QR code label.
func (h *QRCode) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	code, err := h.guard.CheckQRCode(c.Request.Context(), p, id)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	err = h.db.Transaction(c.Request.Context(), func(ctx context.Context) error {
		if err := h.db.DeleteQRCode(ctx, code.ID); err != nil {
			return err
		}
		return appendActivity(ctx, h.db, p, cnst.ActionDelete, cnst.EntityQRCode, code.ID, &code.RestaurantID, map[string]any{
			"label": code.Label,
		})
	})
	if err != nil {
		h.logger.Error("failed to delete QR code", zap.Uint("qr_code_id", code.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to delete QR code"))
		return
	}

	i18n.Success(i18n.SuccessQRCodeDeleted).Send(c)
}

// Image renders the PNG pointing at the restaurant's public menu page.
func (h *QRCode) Image(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	code, err := h.guard.CheckQRCode(c.Request.Context(), p, id)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	rest, err := h.db.GetRestaurantByID(c.Request.Context(), code.RestaurantID)
	if err != nil {
		h.logger.Error("failed to load restaurant for QR image", zap.Uint("qr_code_id", code.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to load restaurant"))
		return
	}

	png, err := h.qr.Generate(rest.Slug)
	if err != nil {
		h.logger.Error("failed to render QR image", zap.String("slug", rest.Slug), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to render QR image"))
		return
	}

	h.metrics.QRRendered(rest.Slug)
	c.Data(http.StatusOK, "image/png", png)
}
