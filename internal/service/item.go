package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/curatorapp/curator-server/internal/domain"
	domainerrors "github.com/curatorapp/curator-server/internal/errors"
	"github.com/curatorapp/curator-server/internal/id"
	"github.com/curatorapp/curator-server/internal/metrics"
	"github.com/curatorapp/curator-server/internal/sanitize"
	"github.com/curatorapp/curator-server/internal/slug"
	"github.com/curatorapp/curator-server/internal/store"
	"github.com/curatorapp/curator-server/internal/validation"
)

// maxSlugAttempts bounds how often a write re-derives its slug after losing
// a uniqueness race.
const maxSlugAttempts = 3

// ItemInput is the writable content of an item.
type ItemInput struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=10000"`
	Tags        []string `json:"tags" validate:"max=50,dive,tag,max=64"`
	Photo       string   `json:"photo" validate:"max=255"`
}

// ItemPatch carries the fields an update changes. Nil fields are kept.
type ItemPatch struct {
	Name        *string
	Description *string
	Tags        *[]string
	Photo       *string
}

// ItemService runs the item write pipeline (normalize, validate, derive
// slug, persist) and the single-item reads.
type ItemService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewItemService creates a new item service.
func NewItemService(store store.Store, validator *validation.Validator, logger *slog.Logger) *ItemService {
	return &ItemService{
		store:     store,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

// normalize trims text fields, converts HTML descriptions to Markdown, and
// collapses tags to a set.
func (in ItemInput) normalize() ItemInput {
	return ItemInput{
		Name:        strings.TrimSpace(in.Name),
		Description: sanitize.Description(in.Description),
		Tags:        domain.NormalizeTags(in.Tags),
		Photo:       strings.TrimSpace(in.Photo),
	}
}

// GenerateSlug derives the slug a new item of kind named name would get.
func (s *ItemService) GenerateSlug(ctx context.Context, kind domain.Kind, name string) (_ string, err error) {
	defer metrics.ObserveOperation("generate_slug", string(kind), time.Now(), &err)

	if err := checkKind(kind); err != nil {
		return "", err
	}
	return s.resolveSlug(ctx, kind, name, "", 0)
}

// resolveSlug counts the existing family of name's base slug and picks the
// next one. attempt shifts the suffix past slugs claimed since the count.
func (s *ItemService) resolveSlug(ctx context.Context, kind domain.Kind, name, excludeID string, attempt int) (string, error) {
	base := slug.Make(name)
	if base == "" {
		return "", domainerrors.ValidationWithDetails("validation failed",
			map[string]string{"name": "must contain at least one letter or digit"})
	}

	n, err := s.store.CountSlugFamily(ctx, kind, base, excludeID)
	if err != nil {
		return "", fmt.Errorf("count slug family: %w", err)
	}
	return slug.Next(base, n+attempt), nil
}

// Create stores a new item authored by actorID.
func (s *ItemService) Create(ctx context.Context, actorID string, kind domain.Kind, in ItemInput) (_ *domain.Item, err error) {
	defer metrics.ObserveOperation("create_item", string(kind), time.Now(), &err)

	if err := requireActor(actorID); err != nil {
		return nil, err
	}
	if err := checkKind(kind); err != nil {
		return nil, err
	}

	in = in.normalize()
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	itemID, err := id.Generate(id.PrefixItem)
	if err != nil {
		return nil, err
	}
	now := s.now()
	item := &domain.Item{
		ID:          itemID,
		Kind:        kind,
		Name:        in.Name,
		Description: in.Description,
		Tags:        in.Tags,
		Photo:       in.Photo,
		AuthorID:    actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.EnsureUser(ctx, actorID, ""); err != nil {
		return nil, err
	}

	err = s.persistWithSlug(ctx, item, "", func() error {
		return s.store.CreateItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("item created",
		"item_id", item.ID,
		"kind", item.Kind,
		"slug", item.Slug,
		"author_id", actorID,
	)
	return item, nil
}

// Update applies patch to the item. Only the author may edit; the slug is
// re-derived only when the name's base slug changes.
func (s *ItemService) Update(ctx context.Context, actorID, itemID string, patch ItemPatch) (_ *domain.Item, err error) {
	defer metrics.ObserveOperation("update_item", "", time.Now(), &err)

	if err := requireActor(actorID); err != nil {
		return nil, err
	}

	current, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, translateStoreErr(err, "item not found")
	}
	if !current.IsOwnedBy(actorID) {
		s.logger.Warn("rejected edit by non-author", "item_id", itemID, "actor_id", actorID)
		return nil, domainerrors.Forbidden("you must own an item to edit it")
	}

	in := ItemInput{
		Name:        current.Name,
		Description: current.Description,
		Tags:        current.Tags,
		Photo:       current.Photo,
	}
	if patch.Name != nil {
		in.Name = *patch.Name
	}
	if patch.Description != nil {
		in.Description = *patch.Description
	}
	if patch.Tags != nil {
		in.Tags = *patch.Tags
	}
	if patch.Photo != nil {
		in.Photo = *patch.Photo
	}

	in = in.normalize()
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	updated := *current
	updated.Name = in.Name
	updated.Description = in.Description
	updated.Tags = in.Tags
	updated.Photo = in.Photo
	updated.UpdatedAt = s.now()

	write := func() error { return s.store.UpdateItem(ctx, &updated) }
	if slug.Make(updated.Name) == slug.Make(current.Name) {
		if err := write(); err != nil {
			return nil, translateStoreErr(err, "item not found")
		}
	} else if err := s.persistWithSlug(ctx, &updated, current.ID, write); err != nil {
		return nil, err
	}

	s.logger.Info("item updated", "item_id", updated.ID, "slug", updated.Slug, "actor_id", actorID)
	return &updated, nil
}

// persistWithSlug assigns a slug to item and runs write, re-deriving the
// slug when a concurrent writer took it first.
func (s *ItemService) persistWithSlug(ctx context.Context, item *domain.Item, excludeID string, write func() error) error {
	for attempt := range maxSlugAttempts {
		derived, err := s.resolveSlug(ctx, item.Kind, item.Name, excludeID, attempt)
		if err != nil {
			return err
		}
		item.Slug = derived

		err = write()
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrAlreadyExists) {
			return translateStoreErr(err, "item not found")
		}

		metrics.SlugConflictRetries.Inc()
		s.logger.Debug("slug taken, retrying", "slug", derived, "attempt", attempt+1)
	}
	return domainerrors.Conflictf("could not allocate a unique slug for %q", item.Name)
}

// Get returns an item by ID, with its reviews when withReviews is set.
func (s *ItemService) Get(ctx context.Context, itemID string, withReviews bool) (*domain.Item, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, translateStoreErr(err, "item not found")
	}
	return s.attachReviews(ctx, item, withReviews)
}

// GetBySlug returns an item by kind and slug, with its reviews when
// withReviews is set.
func (s *ItemService) GetBySlug(ctx context.Context, kind domain.Kind, itemSlug string, withReviews bool) (*domain.Item, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	item, err := s.store.GetItemBySlug(ctx, kind, itemSlug)
	if err != nil {
		return nil, translateStoreErr(err, "item not found")
	}
	return s.attachReviews(ctx, item, withReviews)
}

func (s *ItemService) attachReviews(ctx context.Context, item *domain.Item, withReviews bool) (*domain.Item, error) {
	if !withReviews {
		return item, nil
	}
	reviews, err := s.store.ListReviews(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	item.Reviews = reviews
	return item, nil
}
