package dto

// PublicMenu is the unauthenticated, read-only document describing one
// restaurant's menu. It carries no admin identifiers, contact emails or
// foreign keys beyond what a diner needs to render the page.
type PublicMenu struct {
	Restaurant       PublicRestaurant   `json:"restaurant"`
	Categories       []PublicCategory   `json:"categories"`
	SocialMediaLinks []PublicSocialLink `json:"socialMediaLinks"`
}

// PublicRestaurant is the branding subset of a restaurant
type PublicRestaurant struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Logo           string `json:"logo"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	RTL            bool   `json:"rtl"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
}

// PublicCategory is a category with its own items attached, in display order
type PublicCategory struct {
	ID           uint             `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Icon         string           `json:"icon"`
	DisplayOrder int              `json:"displayOrder"`
	Items        []PublicMenuItem `json:"items"`
}

// PublicMenuItem is the diner-facing view of a menu item
type PublicMenuItem struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         int64  `json:"price"`
	DiscountPrice *int64 `json:"discountPrice,omitempty"`
	Image         string `json:"image"`
	Featured      bool   `json:"featured"`
}

// PublicSocialLink is a platform/url pair shown on the public menu
type PublicSocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}
