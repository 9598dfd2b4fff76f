package dto

import "time"

// ActivityEntry represents one audit log row as served by the API, with
// a human-readable summary derived from the stored details JSON.
type ActivityEntry struct {
	ID           uint      `json:"id"`
	UserID       *uint     `json:"userId,omitempty"`
	Action       string    `json:"action"`
	EntityType   string    `json:"entityType"`
	EntityID     uint      `json:"entityId"`
	RestaurantID *uint     `json:"restaurantId,omitempty"`
	Details      string    `json:"details"`
	Summary      string    `json:"summary"`
	CreatedAt    time.Time `json:"createdAt"`
}
