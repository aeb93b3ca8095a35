package model

import "time"

// Photo belongs to exactly one item. SortOrder controls display order;
// reordering reassigns sequential values.
type Photo struct {
	ID         int64     `json:"id"`
	ItemID     int64     `json:"itemId"`
	Type       string    `json:"type"`
	URL        string    `json:"url"`
	StorageKey string    `json:"storageKey,omitempty"`
	SortOrder  int       `json:"sortOrder"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Photo types.
const (
	PhotoTypeIntake  = "intake"
	PhotoTypeListing = "listing"
)
