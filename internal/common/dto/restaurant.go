package dto

import "time"

// NewAdminSpec carries credentials for the restaurant admin account
// created alongside a restaurant.
type NewAdminSpec struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// CreateRestaurantRequest represents a request to create a restaurant.
// Super admins provision with either an embedded new admin or an existing
// adminId; other callers always become the admin themselves and both
// fields are ignored.
type CreateRestaurantRequest struct {
	Name           string        `json:"name" binding:"required,max=100"`
	Description    string        `json:"description"`
	Logo           string        `json:"logo"`
	Phone          string        `json:"phone"`
	Email          string        `json:"email" binding:"omitempty,email"`
	Address        string        `json:"address"`
	Status         string        `json:"status" binding:"omitempty,oneof=setup active inactive"`
	PrimaryColor   string        `json:"primaryColor"`
	SecondaryColor string        `json:"secondaryColor"`
	RTL            *bool         `json:"rtl"`
	AdminID        uint          `json:"adminId"`
	Admin          *NewAdminSpec `json:"admin"`
}

// UpdateRestaurantRequest represents a partial restaurant update. Only
// non-nil fields are applied. AdminID is honored for super admins only.
type UpdateRestaurantRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=100"`
	Description    *string `json:"description"`
	Logo           *string `json:"logo"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Address        *string `json:"address"`
	Status         *string `json:"status" binding:"omitempty,oneof=setup active inactive"`
	PrimaryColor   *string `json:"primaryColor"`
	SecondaryColor *string `json:"secondaryColor"`
	RTL            *bool   `json:"rtl"`
	AdminID        *uint   `json:"adminId"`
}

// PreviewTokenResponse represents a freshly minted menu preview token
type PreviewTokenResponse struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}
