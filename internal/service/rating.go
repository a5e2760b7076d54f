package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/curatorapp/curator-server/internal/domain"
	"github.com/curatorapp/curator-server/internal/metrics"
	"github.com/curatorapp/curator-server/internal/store"
)

// RatingService answers the top-rated view.
type RatingService struct {
	store  store.Store
	logger *slog.Logger
}

// NewRatingService creates a new rating service.
func NewRatingService(store store.Store, logger *slog.Logger) *RatingService {
	return &RatingService{
		store:  store,
		logger: logger,
	}
}

// TopRated returns the items of kind that have more than one review,
// highest average first. Ties go to the newer item.
func (s *RatingService) TopRated(ctx context.Context, kind domain.Kind) (_ []domain.RankedItem, err error) {
	defer metrics.ObserveOperation("top_rated", string(kind), time.Now(), &err)

	if err := checkKind(kind); err != nil {
		return nil, err
	}
	ranked, err := s.store.TopRated(ctx, kind)
	if err != nil {
		return nil, err
	}
	if ranked == nil {
		ranked = []domain.RankedItem{}
	}
	return ranked, nil
}
