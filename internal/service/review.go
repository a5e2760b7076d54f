package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/curatorapp/curator-server/internal/domain"
	"github.com/curatorapp/curator-server/internal/id"
	"github.com/curatorapp/curator-server/internal/metrics"
	"github.com/curatorapp/curator-server/internal/sanitize"
	"github.com/curatorapp/curator-server/internal/store"
	"github.com/curatorapp/curator-server/internal/validation"
)

// ReviewInput is the content of a new review.
type ReviewInput struct {
	Rating int    `json:"rating" validate:"rating"`
	Text   string `json:"text" validate:"required,max=2000"`
}

// ReviewService adds and lists reviews.
type ReviewService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewReviewService creates a new review service.
func NewReviewService(store store.Store, validator *validation.Validator, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		store:     store,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

// Add attaches a review by actorID to itemID. Review text is stored as plain text.
func (s *ReviewService) Add(ctx context.Context, actorID, itemID string, in ReviewInput) (_ *domain.Review, err error) {
	defer metrics.ObserveOperation("add_review", "", time.Now(), &err)

	if err := requireActor(actorID); err != nil {
		return nil, err
	}

	in.Text = sanitize.PlainText(strings.TrimSpace(in.Text))
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	reviewID, err := id.Generate(id.PrefixReview)
	if err != nil {
		return nil, err
	}
	review := &domain.Review{
		ID:        reviewID,
		ItemID:    itemID,
		AuthorID:  actorID,
		Rating:    in.Rating,
		Text:      in.Text,
		CreatedAt: s.now(),
	}

	if err := s.store.EnsureUser(ctx, actorID, ""); err != nil {
		return nil, err
	}
	if err := s.store.CreateReview(ctx, review); err != nil {
		return nil, translateStoreErr(err, "item not found")
	}

	s.logger.Info("review added", "review_id", review.ID, "item_id", itemID, "rating", review.Rating)
	return review, nil
}

// ListForItem returns an item's reviews, oldest first.
func (s *ReviewService) ListForItem(ctx context.Context, itemID string) ([]*domain.Review, error) {
	if _, err := s.store.GetItem(ctx, itemID); err != nil {
		return nil, translateStoreErr(err, "item not found")
	}
	reviews, err := s.store.ListReviews(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []*domain.Review{}
	}
	return reviews, nil
}
