package model

import "time"

// Item represents a single lost/found listing.
type Item struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Status       string    `json:"status"`
	Location     string    `json:"location"`
	Description  string    `json:"description,omitempty"`
	ContactName  string    `json:"contact_name,omitempty"`
	ContactEmail string    `json:"contact_email"`
	ImageURL     string    `json:"image_url,omitempty"`
	OwnerID      *string   `json:"owner_id,omitempty"`
	OwnerEmail   string    `json:"owner_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Item statuses.
const (
	ItemStatusLost     = "lost"
	ItemStatusFound    = "found"
	ItemStatusResolved = "resolved"
)

// ValidItemStatus reports whether status is one of the known item statuses.
func ValidItemStatus(status string) bool {
	switch status {
	case ItemStatusLost, ItemStatusFound, ItemStatusResolved:
		return true
	}
	return false
}

// OwnedBy reports whether the item belongs to the given user. Anonymous
// items (no owner) belong to nobody.
func (i *Item) OwnedBy(userID string) bool {
	return i.OwnerID != nil && *i.OwnerID == userID
}
