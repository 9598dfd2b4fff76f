package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/sofrahq/sofra/internal/apiserver/cache"
	"github.com/sofrahq/sofra/internal/apiserver/database"
	"github.com/sofrahq/sofra/internal/auth/preview"
	"github.com/sofrahq/sofra/internal/common/cnst"
	"github.com/sofrahq/sofra/internal/common/dto"
	"github.com/sofrahq/sofra/internal/i18n"
	"github.com/sofrahq/sofra/pkg/metrics"
	apptrace "github.com/sofrahq/sofra/pkg/trace"
)

// jsonContentType matches what gin's JSON render emits, so cached
// responses are indistinguishable from freshly built ones.
const jsonContentType = "application/json; charset=utf-8"

// Public serves the unauthenticated menu document. Only active
// restaurants are visible; setup and inactive ones answer 404 exactly
// like missing ones, unless the request carries a valid preview token
// for that specific restaurant.
type Public struct {
	db      database.Database
	preview *preview.Service
	cache   *cache.MenuCache
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewPublic creates a new public menu handler
func NewPublic(db database.Database, pv *preview.Service, mc *cache.MenuCache, m *metrics.Metrics, logger *zap.Logger) *Public {
	return &Public{
		db:      db,
		preview: pv,
		cache:   mc,
		metrics: m,
		logger:  logger.Named("apiserver.handler.public"),
	}
}

// MenuByID serves the menu document looked up by restaurant id.
func (h *Public) MenuByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	rest, err := h.db.GetRestaurantByID(c.Request.Context(), id)
	h.serveMenu(c, rest, err)
}

// MenuBySlug serves the menu document looked up by slug, the form QR
// codes encode.
func (h *Public) MenuBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		i18n.RespondWithError(c, i18n.ErrorMenuNotFound)
		return
	}

	rest, err := h.db.GetRestaurantBySlug(c.Request.Context(), slug)
	h.serveMenu(c, rest, err)
}

func (h *Public) serveMenu(c *gin.Context, rest *database.Restaurant, lookupErr error) {
	if lookupErr != nil {
		if errors.Is(lookupErr, database.ErrNotFound) {
			i18n.RespondWithError(c, i18n.ErrorMenuNotFound)
			return
		}
		h.logger.Error("failed to load restaurant", zap.Error(lookupErr))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to load menu"))
		return
	}

	mode := "public"
	if rest.Status != database.StatusActive {
		// a preview token bypasses the status gate and nothing else
		if !h.previewAllowed(c, rest.ID) {
			i18n.RespondWithError(c, i18n.ErrorMenuNotFound)
			return
		}
		mode = "preview"
	}

	// only the public document is cached; previews always see the
	// latest draft content
	if mode == "public" {
		if doc, ok := h.cache.Get(c.Request.Context(), rest.ID); ok {
			h.metrics.MenuView(rest.Slug, mode)
			c.Data(http.StatusOK, jsonContentType, doc)
			return
		}
	}

	// Span covers the assembly queries and the response write
	scope := apptrace.Tracer(cnst.TracePublicMenu).
		Start(c.Request.Context(), cnst.SpanMenuBuild, oteltrace.WithSpanKind(oteltrace.SpanKindInternal)).
		WithAttrs(
			attribute.Int(cnst.AttrRestaurantID, int(rest.ID)),
			attribute.String(cnst.AttrRestaurantSlug, rest.Slug),
			attribute.String(cnst.AttrMenuMode, mode),
		)
	defer scope.End()
	c.Request = c.Request.WithContext(scope.Ctx)

	menu, err := h.buildMenu(c, rest)
	if err != nil {
		h.logger.Error("failed to build menu document",
			zap.Uint("restaurant_id", rest.ID),
			zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to load menu"))
		return
	}

	h.metrics.MenuView(rest.Slug, mode)
	if mode == "public" {
		if doc, err := json.Marshal(menu); err == nil {
			h.cache.Set(c.Request.Context(), rest.ID, doc)
			c.Data(http.StatusOK, jsonContentType, doc)
			return
		}
	}
	c.JSON(http.StatusOK, menu)
}

// previewAllowed reports whether the request carries a preview token
// minted for this restaurant.
func (h *Public) previewAllowed(c *gin.Context, restaurantID uint) bool {
	token := c.Query("preview")
	if token == "" {
		return false
	}
	claims, err := h.preview.ValidateToken(token)
	if err != nil {
		h.logger.Warn("rejected preview token", zap.Error(err))
		return false
	}
	return claims.RestaurantID == restaurantID
}

// buildMenu assembles the diner-facing document: branding, categories in
// display order with their items in creation order, social links. Empty
// categories are kept so the page mirrors the admin's layout.
func (h *Public) buildMenu(c *gin.Context, rest *database.Restaurant) (*dto.PublicMenu, error) {
	ctx := c.Request.Context()

	categories, err := h.db.ListCategoriesByRestaurantID(ctx, rest.ID)
	if err != nil {
		return nil, err
	}
	items, err := h.db.ListMenuItemsByRestaurantID(ctx, rest.ID)
	if err != nil {
		return nil, err
	}
	links, err := h.db.ListSocialMediaLinksByRestaurantID(ctx, rest.ID)
	if err != nil {
		return nil, err
	}

	// partition items by category; both lists arrive already ordered
	byCategory := make(map[uint][]dto.PublicMenuItem, len(categories))
	for _, item := range items {
		byCategory[item.CategoryID] = append(byCategory[item.CategoryID], dto.PublicMenuItem{
			ID:            item.ID,
			Name:          item.Name,
			Description:   item.Description,
			Price:         item.Price,
			DiscountPrice: item.DiscountPrice,
			Image:         item.Image,
			Featured:      item.Featured,
		})
	}

	menu := &dto.PublicMenu{
		Restaurant: dto.PublicRestaurant{
			ID:             rest.ID,
			Name:           rest.Name,
			Description:    rest.Description,
			Logo:           rest.Logo,
			PrimaryColor:   rest.PrimaryColor,
			SecondaryColor: rest.SecondaryColor,
			RTL:            rest.RTL,
			Phone:          rest.Phone,
			Address:        rest.Address,
		},
		Categories:       make([]dto.PublicCategory, 0, len(categories)),
		SocialMediaLinks: make([]dto.PublicSocialLink, 0, len(links)),
	}

	for _, cat := range categories {
		catItems := byCategory[cat.ID]
		if catItems == nil {
			catItems = []dto.PublicMenuItem{}
		}
		menu.Categories = append(menu.Categories, dto.PublicCategory{
			ID:           cat.ID,
			Name:         cat.Name,
			Description:  cat.Description,
			Icon:         cat.Icon,
			DisplayOrder: cat.DisplayOrder,
			Items:        catItems,
		})
	}
	for _, link := range links {
		menu.SocialMediaLinks = append(menu.SocialMediaLinks, dto.PublicSocialLink{
			Platform: link.Platform,
			URL:      link.URL,
		})
	}

	return menu, nil
}
