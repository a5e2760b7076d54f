package domain

import "time"

// Rating bounds for a review.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a rating plus text attached to an item by a user.
// Reviews reference their item by ID and are created once, never edited.
type Review struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	AuthorID  string    `json:"author_id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
}

// ValidRating reports whether r is within the accepted rating range.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
