package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/reeldesk/internal/client/client"
	"github.com/dmitrijs2005/reeldesk/internal/client/models"
	"github.com/dmitrijs2005/reeldesk/internal/logging"
	"golang.org/x/sync/errgroup"
)

// CategoryCapacity reports how full a showcase category is.
type CategoryCapacity struct {
	Category models.VideoCategory
	Current  int
	CanAdd   bool
}

func (c CategoryCapacity) String() string {
	return fmt.Sprintf("%s: %d/%d", c.Category.Label, c.Current, c.Category.Limit)
}

// ContentService reads dashboard listings.
type ContentService struct {
	api     client.ContentAPI
	log     logging.Logger
	timeout time.Duration
}

func NewContentService(api client.ContentAPI, log logging.Logger, timeout time.Duration) *ContentService {
	if log == nil {
		log = logging.Discard()
	}
	return &ContentService{api: api, log: log, timeout: timeout}
}

func (s *ContentService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *ContentService) ReviewsWithVideo(ctx context.Context) ([]models.Review, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.api.ListReviewsWithVideo(ctx)
}

func (s *ContentService) ReviewsWithoutVideo(ctx context.Context) ([]models.Review, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.api.ListReviewsWithoutVideo(ctx)
}

func (s *ContentService) FAQs(ctx context.Context) ([]models.FAQ, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.api.ListFAQs(ctx)
}

// VideoReels lists the reels of a known category.
func (s *ContentService) VideoReels(ctx context.Context, category string) ([]models.VideoReel, error) {
	if _, ok := models.LookupCategory(category); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.api.ListVideoReels(ctx, category)
}

// Capacity counts the reels filed under category against its limit.
func (s *ContentService) Capacity(ctx context.Context, category string) (CategoryCapacity, error) {
	cat, ok := models.LookupCategory(category)
	if !ok {
		return CategoryCapacity{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	reels, err := s.VideoReels(ctx, category)
	if err != nil {
		return CategoryCapacity{}, err
	}
	n := 0
	for _, r := range reels {
		if r.Category == cat.Value {
			n++
		}
	}
	return CategoryCapacity{Category: cat, Current: n, CanAdd: n < cat.Limit}, nil
}

// CapacityOverview fetches every category concurrently, in display order.
func (s *ContentService) CapacityOverview(ctx context.Context) ([]CategoryCapacity, error) {
	out := make([]CategoryCapacity, len(models.VideoCategories))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(3)
	for i, cat := range models.VideoCategories {
		g.Go(func() error {
			c, err := s.Capacity(gctx, cat.Value)
			if err != nil {
				return fmt.Errorf("category %s: %w", cat.Value, err)
			}
			out[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
