package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_HasFavorite(t *testing.T) {
	tests := []struct {
		name      string
		favorites []string
		itemID    string
		expected  bool
	}{
		{"present", []string{"item-a", "item-b"}, "item-b", true},
		{"absent", []string{"item-a"}, "item-c", false},
		{"empty set", nil, "item-a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &User{Favorites: tt.favorites}
			assert.Equal(t, tt.expected, user.HasFavorite(tt.itemID))
		})
	}
}
