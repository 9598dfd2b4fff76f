package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The public menu document is consumed by an untrusted frontend, so its
// key names are a contract. This pins the shape down.
func TestPublicMenu_WireShape(t *testing.T) {
	discount := int64(1800)
	doc := PublicMenu{
		Restaurant: PublicRestaurant{
			ID:             5,
			Name:           "Falafel House",
			PrimaryColor:   "#7a3b2e",
			SecondaryColor: "#f2e8dc",
			RTL:            true,
		},
		Categories: []PublicCategory{
			{
				ID:           1,
				Name:         "Mains",
				DisplayOrder: 1,
				Items: []PublicMenuItem{
					{ID: 10, Name: "Falafel Plate", Price: 2500, DiscountPrice: &discount},
					{ID: 11, Name: "Shawarma", Price: 3200},
				},
			},
			{ID: 2, Name: "Drinks", DisplayOrder: 2, Items: []PublicMenuItem{}},
		},
		SocialMediaLinks: []PublicSocialLink{
			{Platform: "instagram", URL: "https://instagram.com/falafel"},
		},
	}

	raw, err := json.Marshal(doc)
	assert.NoError(t, err)

	var m map[string]any
	assert.NoError(t, json.Unmarshal(raw, &m))

	rest := m["restaurant"].(map[string]any)
	assert.Equal(t, "Falafel House", rest["name"])
	assert.Equal(t, true, rest["rtl"])
	assert.Equal(t, "#7a3b2e", rest["primaryColor"])
	assert.NotContains(t, rest, "adminId")
	assert.NotContains(t, rest, "email")
	assert.NotContains(t, rest, "slug")
	assert.NotContains(t, rest, "status")

	cats := m["categories"].([]any)
	assert.Len(t, cats, 2)
	first := cats[0].(map[string]any)
	assert.Equal(t, "Mains", first["name"])

	items := first["items"].([]any)
	assert.Len(t, items, 2)
	plate := items[0].(map[string]any)
	assert.Equal(t, float64(2500), plate["price"])
	assert.Equal(t, float64(1800), plate["discountPrice"])
	assert.NotContains(t, plate, "categoryId")
	assert.NotContains(t, plate, "restaurantId")

	shawarma := items[1].(map[string]any)
	assert.NotContains(t, shawarma, "discountPrice")

	// empty categories still appear, with an empty item list
	second := cats[1].(map[string]any)
	assert.Len(t, second["items"].([]any), 0)

	links := m["socialMediaLinks"].([]any)
	assert.Len(t, links, 1)
	link := links[0].(map[string]any)
	assert.Equal(t, "instagram", link["platform"])
	assert.NotContains(t, link, "id")
}
