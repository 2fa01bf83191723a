package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/reeldesk/internal/client/models"
)

func (c *HTTPClient) listReviews(ctx context.Context, endpoint string) ([]models.Review, error) {
	var e envelope
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &e); err != nil {
		return nil, err
	}
	var d struct {
		Reviews []models.Review `json:"reviews"`
	}
	if err := decodeData(endpoint, e.Data, &d); err != nil {
		return nil, err
	}
	return d.Reviews, nil
}

func (c *HTTPClient) ListReviewsWithVideo(ctx context.Context) ([]models.Review, error) {
	return c.listReviews(ctx, "/api/reviews-with-video")
}

func (c *HTTPClient) ListReviewsWithoutVideo(ctx context.Context) ([]models.Review, error) {
	return c.listReviews(ctx, "/api/reviews-without-video")
}

func (c *HTTPClient) ListFAQs(ctx context.Context) ([]models.FAQ, error) {
	const endpoint = "/api/faqs"
	var e envelope
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &e); err != nil {
		return nil, err
	}
	var d struct {
		FAQs []models.FAQ `json:"faqs"`
	}
	if err := decodeData(endpoint, e.Data, &d); err != nil {
		return nil, err
	}
	return d.FAQs, nil
}

func (c *HTTPClient) ListVideoReels(ctx context.Context, category string) ([]models.VideoReel, error) {
	endpoint := "/api/video-reels/category/" + url.PathEscape(category)
	var e envelope
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &e); err != nil {
		return nil, err
	}
	var d struct {
		VideoReels []models.VideoReel `json:"videoReels"`
		Videos     []models.VideoReel `json:"videos"`
	}
	if err := decodeData(endpoint, e.Data, &d); err != nil {
		return nil, err
	}
	if d.VideoReels != nil {
		return d.VideoReels, nil
	}
	return d.Videos, nil
}
