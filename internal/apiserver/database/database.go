package database

import (
	"context"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicated is returned when a write violates a unique constraint,
// such as a taken username or an admin already bound to a restaurant.
var ErrDuplicated = gorm.ErrDuplicatedKey

// Database defines the methods for database operations.
type Database interface {
	// Close closes the database connection.
	Close() error

	// Transaction runs fn inside a transaction. The transaction is stored
	// on the context passed to fn, so every Database call made with that
	// context joins the same transaction. If ctx already carries a
	// transaction, fn joins it instead of opening a nested one.
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error

	// User operations.
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id uint) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, id uint) error
	CountSuperAdmins(ctx context.Context) (int64, error)

	// Restaurant operations.
	CreateRestaurant(ctx context.Context, restaurant *Restaurant) error
	GetRestaurantByID(ctx context.Context, id uint) (*Restaurant, error)
	GetRestaurantBySlug(ctx context.Context, slug string) (*Restaurant, error)
	GetRestaurantByAdminID(ctx context.Context, adminID uint) (*Restaurant, error)
	ListRestaurants(ctx context.Context) ([]*Restaurant, error)
	ListRestaurantsByAdminID(ctx context.Context, adminID uint) ([]*Restaurant, error)
	UpdateRestaurant(ctx context.Context, restaurant *Restaurant) error
	// DeleteRestaurant removes the restaurant and all of its categories,
	// menu items, social media links and QR codes in one transaction.
	DeleteRestaurant(ctx context.Context, id uint) error

	// Category operations. Listing is ordered by display_order then id.
	CreateCategory(ctx context.Context, category *Category) error
	GetCategoryByID(ctx context.Context, id uint) (*Category, error)
	ListCategoriesByRestaurantID(ctx context.Context, restaurantID uint) ([]*Category, error)
	UpdateCategory(ctx context.Context, category *Category) error
	// DeleteCategory removes the category together with its menu items.
	DeleteCategory(ctx context.Context, id uint) error

	// Menu item operations. Listing is ordered by id (creation order).
	CreateMenuItem(ctx context.Context, item *MenuItem) error
	GetMenuItemByID(ctx context.Context, id uint) (*MenuItem, error)
	ListMenuItemsByRestaurantID(ctx context.Context, restaurantID uint) ([]*MenuItem, error)
	ListMenuItemsByCategoryID(ctx context.Context, categoryID uint) ([]*MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *MenuItem) error
	DeleteMenuItem(ctx context.Context, id uint) error

	// Social media link operations.
	CreateSocialMediaLink(ctx context.Context, link *SocialMediaLink) error
	GetSocialMediaLinkByID(ctx context.Context, id uint) (*SocialMediaLink, error)
	ListSocialMediaLinksByRestaurantID(ctx context.Context, restaurantID uint) ([]*SocialMediaLink, error)
	UpdateSocialMediaLink(ctx context.Context, link *SocialMediaLink) error
	DeleteSocialMediaLink(ctx context.Context, id uint) error

	// QR code operations.
	CreateQRCode(ctx context.Context, code *QRCode) error
	GetQRCodeByID(ctx context.Context, id uint) (*QRCode, error)
	ListQRCodesByRestaurantID(ctx context.Context, restaurantID uint) ([]*QRCode, error)
	DeleteQRCode(ctx context.Context, id uint) error

	// Activity log operations. The log is append-only.
	CreateActivityLog(ctx context.Context, entry *ActivityLog) error
	ListActivityLogs(ctx context.Context, limit int) ([]*ActivityLog, error)
	ListActivityLogsByRestaurantID(ctx context.Context, restaurantID uint, limit int) ([]*ActivityLog, error)
}
