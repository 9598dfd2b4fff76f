package cnst

// Tracer names used across the services
const (
	// TracePublicMenu is the tracer name for the diner-facing menu endpoints
	TracePublicMenu = "sofra/publicmenu"
)

// Common span names
const (
	// SpanMenuBuild represents assembling and serving a menu document
	SpanMenuBuild = "menu.build"
)

// Common attribute keys
const (
	AttrRestaurantID   = "restaurant.id"
	AttrRestaurantSlug = "restaurant.slug"
	AttrMenuMode       = "menu.mode"
)
