package database

import "time"

// UserRole represents the role of a user
type UserRole string

const (
	RoleSuperAdmin      UserRole = "super_admin"
	RoleRestaurantAdmin UserRole = "restaurant_admin"
)

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	return r == RoleSuperAdmin || r == RoleRestaurantAdmin
}

// RestaurantStatus represents the lifecycle state of a restaurant
type RestaurantStatus string

const (
	StatusSetup    RestaurantStatus = "setup"
	StatusActive   RestaurantStatus = "active"
	StatusInactive RestaurantStatus = "inactive"
)

// Valid reports whether the status is one of the known states.
func (s RestaurantStatus) Valid() bool {
	return s == StatusSetup || s == StatusActive || s == StatusInactive
}

// User represents an admin account. Role is fixed at creation and never
// changed afterwards.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Username  string    `json:"username" gorm:"type:varchar(50);uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"` // bcrypt hash, never exposed in JSON
	Name      string    `json:"name" gorm:"type:varchar(100)"`
	Email     string    `json:"email" gorm:"type:varchar(100)"`
	Role      UserRole  `json:"role" gorm:"type:varchar(20);not null;default:'restaurant_admin'"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Restaurant is the tenant unit. AdminID carries a unique index so one
// restaurant admin can never own two restaurants.
type Restaurant struct {
	ID             uint             `json:"id" gorm:"primaryKey;autoIncrement"`
	Name           string           `json:"name" gorm:"type:varchar(100);not null"`
	Slug           string           `json:"slug" gorm:"type:varchar(120);uniqueIndex;not null"`
	Description    string           `json:"description" gorm:"type:text"`
	Logo           string           `json:"logo" gorm:"type:varchar(255)"`
	Phone          string           `json:"phone" gorm:"type:varchar(30)"`
	Email          string           `json:"email" gorm:"type:varchar(100)"`
	Address        string           `json:"address" gorm:"type:varchar(255)"`
	AdminID        uint             `json:"adminId" gorm:"uniqueIndex;not null"`
	Status         RestaurantStatus `json:"status" gorm:"type:varchar(20);not null;default:'setup'"`
	PrimaryColor   string           `json:"primaryColor" gorm:"type:varchar(20)"`
	SecondaryColor string           `json:"secondaryColor" gorm:"type:varchar(20)"`
	RTL            bool             `json:"rtl" gorm:"not null;default:true"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// Category groups menu items, ordered by DisplayOrder within a restaurant.
type Category struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"type:varchar(100);not null"`
	Description  string    `json:"description" gorm:"type:text"`
	Icon         string    `json:"icon" gorm:"type:varchar(100)"`
	DisplayOrder int       `json:"displayOrder" gorm:"not null;default:0"`
	RestaurantID uint      `json:"restaurantId" gorm:"index;not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// MenuItem is a dish. Price is stored in the minor currency unit.
// CategoryID must belong to the same restaurant as RestaurantID.
type MenuItem struct {
	ID            uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string    `json:"name" gorm:"type:varchar(100);not null"`
	Description   string    `json:"description" gorm:"type:text"`
	Price         int64     `json:"price" gorm:"not null"`
	DiscountPrice *int64    `json:"discountPrice,omitempty"`
	Image         string    `json:"image" gorm:"type:varchar(255)"`
	Featured      bool      `json:"featured" gorm:"not null;default:false"`
	CategoryID    uint      `json:"categoryId" gorm:"index;not null"`
	RestaurantID  uint      `json:"restaurantId" gorm:"index;not null"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SocialMediaLink is a branded outbound link shown on the public menu.
type SocialMediaLink struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Platform     string    `json:"platform" gorm:"type:varchar(50);not null"`
	URL          string    `json:"url" gorm:"type:varchar(255);not null"`
	RestaurantID uint      `json:"restaurantId" gorm:"index;not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// QRCode holds label metadata only; the scannable payload is derived at
// render time from the restaurant's public menu URL.
type QRCode struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Label        string    `json:"label" gorm:"type:varchar(100);not null"`
	RestaurantID uint      `json:"restaurantId" gorm:"index;not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ActivityLog is append-only; rows are never updated or deleted.
type ActivityLog struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       *uint     `json:"userId,omitempty" gorm:"index"`
	Action       string    `json:"action" gorm:"type:varchar(20);not null"`
	EntityType   string    `json:"entityType" gorm:"type:varchar(30);not null"`
	EntityID     uint      `json:"entityId" gorm:"not null"`
	RestaurantID *uint     `json:"restaurantId,omitempty" gorm:"index"`
	Details      string    `json:"details" gorm:"type:text"` // free-form JSON
	CreatedAt    time.Time `json:"createdAt"`
}
