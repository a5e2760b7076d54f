package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/curatorapp/curator-server/internal/domain"
	"github.com/curatorapp/curator-server/internal/metrics"
	"github.com/curatorapp/curator-server/internal/search"
	"github.com/curatorapp/curator-server/internal/store"
)

// SearchService bridges the bleve index and the store: it keeps the index in
// sync with item writes and hydrates ranked hits into items.
type SearchService struct {
	index  *search.Index
	store  store.Store
	logger *slog.Logger
}

var _ store.SearchIndexer = (*SearchService)(nil)

// NewSearchService creates a new search service.
func NewSearchService(index *search.Index, store store.Store, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		store:  store,
		logger: logger,
	}
}

// IndexItem indexes or replaces a single item.
func (s *SearchService) IndexItem(_ context.Context, item *domain.Item) error {
	if err := s.index.Put(search.NewItemDocument(item)); err != nil {
		return fmt.Errorf("index item: %w", err)
	}
	s.logger.Debug("indexed item", "id", item.ID, "name", item.Name)
	return nil
}

// SearchItems returns the items of kind matching query, best match first,
// each carrying its relevance score. The whole result set is returned.
func (s *SearchService) SearchItems(ctx context.Context, kind domain.Kind, query string) (_ []domain.RankedItem, err error) {
	defer metrics.ObserveOperation("search_items", string(kind), time.Now(), &err)

	if err := checkKind(kind); err != nil {
		return nil, err
	}

	hits, err := s.index.Search(ctx, string(kind), query)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
	}
	items, err := s.store.GetItemsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	ranked := make([]domain.RankedItem, 0, len(hits))
	for _, h := range hits {
		it, ok := byID[h.ID]
		if !ok {
			// Indexed but gone from the store.
			continue
		}
		ranked = append(ranked, domain.RankedItem{Item: *it, Score: h.Score})
	}

	metrics.SearchResults.Observe(float64(len(ranked)))
	return ranked, nil
}

// DocumentCount returns the number of indexed items.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// Reindex drops the index and rebuilds it from every stored item.
func (s *SearchService) Reindex(ctx context.Context) error {
	start := time.Now()

	if err := s.index.Reset(); err != nil {
		return err
	}
	items, err := s.store.AllItems(ctx)
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}

	docs := make([]*search.ItemDocument, len(items))
	for i, it := range items {
		docs[i] = search.NewItemDocument(it)
	}
	if err := s.index.PutAll(docs); err != nil {
		return err
	}

	metrics.SearchIndexDocuments.Set(float64(len(docs)))
	s.logger.Info("search index rebuilt", "documents", len(docs), "took", time.Since(start))
	return nil
}

// EnsureIndexed rebuilds the index when its document count differs from the
// number of stored items. That covers a lost index directory, a mapping
// change, and item writes whose indexing failed after commit.
func (s *SearchService) EnsureIndexed(ctx context.Context) error {
	count, err := s.index.DocumentCount()
	if err != nil {
		return err
	}

	var stored int
	for _, kind := range domain.Kinds {
		n, err := s.store.CountItems(ctx, kind)
		if err != nil {
			return fmt.Errorf("count %s items: %w", kind, err)
		}
		stored += n
	}

	if count == uint64(stored) {
		metrics.SearchIndexDocuments.Set(float64(count))
		return nil
	}

	s.logger.Info("search index out of sync, rebuilding", "documents", count, "items", stored)
	return s.Reindex(ctx)
}
