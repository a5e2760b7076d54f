package domain

import (
	"slices"
	"time"
)

// User is the slice of an account the listing core cares about.
// Credentials live with the identity provider; only the opaque ID reaches us.
type User struct {
	CreatedAt   time.Time `json:"created_at"`
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name,omitempty"`
	Favorites   []string  `json:"favorites"` // Item IDs, no duplicates
}

// HasFavorite reports whether itemID is in the user's favorites set.
func (u *User) HasFavorite(itemID string) bool {
	return slices.Contains(u.Favorites, itemID)
}
