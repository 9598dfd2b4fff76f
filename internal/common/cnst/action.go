package cnst

// ActionType classifies an activity log entry.
type ActionType string

const (
	ActionCreate ActionType = "create"
	ActionUpdate ActionType = "update"
	ActionDelete ActionType = "delete"
	ActionLogin  ActionType = "login"
)

func (a ActionType) String() string {
	return string(a)
}

// EntityType names the kind of record an activity entry refers to.
type EntityType string

const (
	EntityUser       EntityType = "user"
	EntityRestaurant EntityType = "restaurant"
	EntityCategory   EntityType = "category"
	EntityMenuItem   EntityType = "menu_item"
	EntitySocialLink EntityType = "social_media_link"
	EntityQRCode     EntityType = "qr_code"
)

func (e EntityType) String() string {
	return string(e)
}
