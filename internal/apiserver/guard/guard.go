package guard

import (
	"context"
	"errors"

	"github.com/sofrahq/sofra/internal/apiserver/database"
	"github.com/sofrahq/sofra/internal/i18n"
	"go.uber.org/zap"
)

// Principal is the authenticated actor attached to a request.
type Principal struct {
	UserID   uint
	Username string
	Role     database.UserRole
}

// IsSuperAdmin reports whether the principal bypasses ownership checks.
func (p Principal) IsSuperAdmin() bool {
	return p.Role == database.RoleSuperAdmin
}

// Allowed applies the ownership rule. Pure decision, no I/O: super admins
// may act on any restaurant, restaurant admins only on their own.
func Allowed(p Principal, restaurant *database.Restaurant) error {
	if p.IsSuperAdmin() {
		return nil
	}
	if restaurant.AdminID == p.UserID {
		return nil
	}
	return i18n.ErrorRestaurantPermission
}

// Guard resolves restaurant-scoped resources and decides whether the
// acting principal may touch them. Lookup misses surface as NotFound
// before ownership is consulted: first the immediate entity, then its
// owning restaurant, then the ownership rule.
type Guard struct {
	db     database.Database
	logger *zap.Logger
}

func New(db database.Database, logger *zap.Logger) *Guard {
	return &Guard{
		db:     db,
		logger: logger,
	}
}

// CheckRestaurant resolves the restaurant and applies the ownership rule,
// returning the restaurant when access is allowed.
func (g *Guard) CheckRestaurant(ctx context.Context, p Principal, restaurantID uint) (*database.Restaurant, error) {
	restaurant, err := g.db.GetRestaurantByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, i18n.ErrorRestaurantNotFound
		}
		g.logger.Error("failed to load restaurant",
			zap.Uint("restaurant_id", restaurantID),
			zap.Error(err))
		return nil, i18n.ErrInternalServer.WithParam("Reason", err.Error())
	}

	if err := Allowed(p, restaurant); err != nil {
		g.logger.Warn("restaurant access denied",
			zap.Uint("user_id", p.UserID),
			zap.Uint("restaurant_id", restaurantID))
		return nil, err
	}
	return restaurant, nil
}

// CheckCategory resolves a category and checks ownership of its restaurant.
func (g *Guard) CheckCategory(ctx context.Context, p Principal, categoryID uint) (*database.Category, error) {
	category, err := g.db.GetCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, i18n.ErrorCategoryNotFound
		}
		g.logger.Error("failed to load category",
			zap.Uint("category_id", categoryID),
			zap.Error(err))
		return nil, i18n.ErrInternalServer.WithParam("Reason", err.Error())
	}

	if _, err := g.CheckRestaurant(ctx, p, category.RestaurantID); err != nil {
		return nil, err
	}
	return category, nil
}

// CheckMenuItem resolves a menu item and checks ownership of its restaurant.
func (g *Guard) CheckMenuItem(ctx context.Context, p Principal, itemID uint) (*database.MenuItem, error) {
	item, err := g.db.GetMenuItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, i18n.ErrorMenuItemNotFound
		}
		g.logger.Error("failed to load menu item",
			zap.Uint("menu_item_id", itemID),
			zap.Error(err))
		return nil, i18n.ErrInternalServer.WithParam("Reason", err.Error())
	}

	if _, err := g.CheckRestaurant(ctx, p, item.RestaurantID); err != nil {
		return nil, err
	}
	return item, nil
}

// CheckSocialMediaLink resolves a link and checks ownership of its restaurant.
func (g *Guard) CheckSocialMediaLink(ctx context.Context, p Principal, linkID uint) (*database.SocialMediaLink, error) {
	link, err := g.db.GetSocialMediaLinkByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, i18n.ErrorSocialLinkNotFound
		}
		g.logger.Error("failed to load social media link",
			zap.Uint("link_id", linkID),
			zap.Error(err))
		return nil, i18n.ErrInternalServer.WithParam("Reason", err.Error())
	}

	if _, err := g.CheckRestaurant(ctx, p, link.RestaurantID); err != nil {
		return nil, err
	}
	return link, nil
}

// CheckQRCode resolves a QR code and checks ownership of its restaurant.
func (g *Guard) CheckQRCode(ctx context.Context, p Principal, codeID uint) (*database.QRCode, error) {
	code, err := g.db.GetQRCodeByID(ctx, codeID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, i18n.ErrorQRCodeNotFound
		}
		g.logger.Error("failed to load qr code",
			zap.Uint("qr_code_id", codeID),
			zap.Error(err))
		return nil, i18n.ErrInternalServer.WithParam("Reason", err.Error())
	}

	if _, err := g.CheckRestaurant(ctx, p, code.RestaurantID); err != nil {
		return nil, err
	}
	return code, nil
}
