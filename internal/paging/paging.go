// Package paging computes offset/limit windows for page-numbered listings
// and detects requests that fall past the last page.
package paging

import (
	"fmt"
	"math"
)

// DefaultPageSize is the listing page size when none is configured.
const DefaultPageSize = 20

// Window is the slice of a listing a page number maps to.
type Window struct {
	Page  int // 1-based
	Size  int
	Skip  int
	Limit int
}

// NewWindow builds the window for a 1-based page number.
// Non-positive pages are treated as page 1; non-positive sizes use DefaultPageSize.
func NewWindow(page, size int) Window {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	// Offsets past math.MaxInt saturate instead of wrapping.
	skip := math.MaxInt / size * size
	if page-1 <= math.MaxInt/size {
		skip = (page - 1) * size
	}
	return Window{
		Page:  page,
		Size:  size,
		Skip:  skip,
		Limit: size,
	}
}

// TotalPages returns ceil(count/size).
func TotalPages(count, size int) int {
	if count <= 0 || size <= 0 {
		return 0
	}
	return (count + size - 1) / size
}

// Page is one resolved page of a listing.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	TotalCount int `json:"total_count"`
}

// OutOfRangeError signals that a page past the end was requested.
// It is a control-flow signal, not a failure: callers redirect to TotalPages.
type OutOfRangeError struct {
	Requested  int
	TotalPages int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("page %d does not exist, last page is %d", e.Requested, e.TotalPages)
}

// Resolve combines a fetched window and the total count into a Page.
// An empty window past the first page yields *OutOfRangeError; an empty first
// page is a valid empty listing.
func Resolve[T any](w Window, items []T, count int) (*Page[T], error) {
	pages := TotalPages(count, w.Size)
	if len(items) == 0 && w.Skip > 0 {
		return nil, &OutOfRangeError{Requested: w.Page, TotalPages: pages}
	}
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:      items,
		Page:       w.Page,
		PageSize:   w.Size,
		TotalPages: pages,
		TotalCount: count,
	}, nil
}
