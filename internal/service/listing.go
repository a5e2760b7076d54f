package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/curatorapp/curator-server/internal/domain"
	"github.com/curatorapp/curator-server/internal/metrics"
	"github.com/curatorapp/curator-server/internal/paging"
	"github.com/curatorapp/curator-server/internal/store"
)

// ListingService serves paginated listings and tag facets.
type ListingService struct {
	store    store.Store
	pageSize int
	logger   *slog.Logger
}

// NewListingService creates a listing service. A non-positive pageSize
// falls back to paging.DefaultPageSize.
func NewListingService(store store.Store, pageSize int, logger *slog.Logger) *ListingService {
	if pageSize <= 0 {
		pageSize = paging.DefaultPageSize
	}
	return &ListingService{
		store:    store,
		pageSize: pageSize,
		logger:   logger,
	}
}

// PageSize returns the configured page size.
func (s *ListingService) PageSize() int {
	return s.pageSize
}

// ListPage returns one page of a kind, newest first. The window and the
// total count are fetched concurrently. A page past the end returns
// *paging.OutOfRangeError carrying the last valid page.
func (s *ListingService) ListPage(ctx context.Context, kind domain.Kind, page int) (_ *paging.Page[*domain.Item], err error) {
	defer metrics.ObserveOperation("list_page", string(kind), time.Now(), &err)

	if err := checkKind(kind); err != nil {
		return nil, err
	}

	w := paging.NewWindow(page, s.pageSize)

	var (
		items []*domain.Item
		count int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.store.ListItems(gctx, kind, w)
		return err
	})
	g.Go(func() error {
		var err error
		count, err = s.store.CountItems(gctx, kind)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result, err := paging.Resolve(w, items, count)
	var oor *paging.OutOfRangeError
	if errors.As(err, &oor) {
		metrics.PageOutOfRange.Inc()
		s.logger.Debug("page out of range", "kind", kind, "requested", oor.Requested, "total_pages", oor.TotalPages)
	}
	return result, err
}

// ListTags returns every tag of a kind with its item count, most used first.
func (s *ListingService) ListTags(ctx context.Context, kind domain.Kind) (_ []domain.TagCount, err error) {
	defer metrics.ObserveOperation("list_tags", string(kind), time.Now(), &err)

	if err := checkKind(kind); err != nil {
		return nil, err
	}
	return s.store.ListTagCounts(ctx, kind)
}

// TagBrowse is the tag facet list together with the items for one tag.
type TagBrowse struct {
	Tag   string            `json:"tag,omitempty"`
	Tags  []domain.TagCount `json:"tags"`
	Items []*domain.Item    `json:"items"`
}

// BrowseTag fetches the facet list and the items carrying tag concurrently.
// An empty tag lists every item that has any tag.
func (s *ListingService) BrowseTag(ctx context.Context, kind domain.Kind, tag string) (_ *TagBrowse, err error) {
	defer metrics.ObserveOperation("browse_tag", string(kind), time.Now(), &err)

	if err := checkKind(kind); err != nil {
		return nil, err
	}

	out := &TagBrowse{Tag: strings.TrimSpace(tag)}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.Tags, err = s.store.ListTagCounts(gctx, kind)
		return err
	})
	g.Go(func() error {
		var err error
		out.Items, err = s.store.ListItemsByTag(gctx, kind, out.Tag)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
