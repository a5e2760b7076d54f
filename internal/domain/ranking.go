package domain

// TagCount is a facet: a tag value with the number of items carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// RankedItem is a query-only projection of an item with a computed rank.
// Search fills Score; the top-rated view fills AverageRating and Reviews.
type RankedItem struct {
	Item
	Score         float64 `json:"score"`
	AverageRating float64 `json:"average_rating,omitempty"`
}
