package dto

// CreateCategoryRequest represents a request to create a menu category
type CreateCategoryRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Description  string `json:"description"`
	Icon         string `json:"icon"`
	DisplayOrder int    `json:"displayOrder" binding:"omitempty,min=0"`
}

// UpdateCategoryRequest represents a partial category update
type UpdateCategoryRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=100"`
	Description  *string `json:"description"`
	Icon         *string `json:"icon"`
	DisplayOrder *int    `json:"displayOrder" binding:"omitempty,min=0"`
}

// CreateMenuItemRequest represents a request to create a menu item.
// Price is in the minor currency unit; a pointer so an explicit zero
// still counts as present.
type CreateMenuItemRequest struct {
	Name          string `json:"name" binding:"required,max=100"`
	Description   string `json:"description"`
	Price         *int64 `json:"price" binding:"required,min=0"`
	DiscountPrice *int64 `json:"discountPrice" binding:"omitempty,min=0"`
	Image         string `json:"image"`
	Featured      bool   `json:"featured"`
	CategoryID    uint   `json:"categoryId" binding:"required"`
}

// UpdateMenuItemRequest represents a partial menu item update. Moving an
// item to another category stays within the same restaurant; the owning
// restaurant itself is never updatable.
type UpdateMenuItemRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=100"`
	Description   *string `json:"description"`
	Price         *int64  `json:"price" binding:"omitempty,min=0"`
	DiscountPrice *int64  `json:"discountPrice" binding:"omitempty,min=0"`
	Image         *string `json:"image"`
	Featured      *bool   `json:"featured"`
	CategoryID    *uint   `json:"categoryId"`
}

// CreateSocialMediaLinkRequest represents a request to add a social link
type CreateSocialMediaLinkRequest struct {
	Platform string `json:"platform" binding:"required,max=50"`
	URL      string `json:"url" binding:"required,url"`
}

// UpdateSocialMediaLinkRequest represents a partial social link update
type UpdateSocialMediaLinkRequest struct {
	Platform *string `json:"platform" binding:"omitempty,max=50"`
	URL      *string `json:"url" binding:"omitempty,url"`
}

// CreateQRCodeRequest represents a request to register a QR code label
type CreateQRCodeRequest struct {
	Label string `json:"label" binding:"required,max=100"`
}
