package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListVideoReels(t *testing.T) {
	srv, rec := newStub(t, http.StatusOK,
		`{"status":"success","data":{"videoReels":[{"_id":"v1","title":"Promo","videoUrl":"https://youtu.be/x","category":"ads-vsl"}]}}`)

	reels, err := NewHTTPClient(srv.URL, nil, nil, nil).ListVideoReels(context.Background(), "ads-vsl")
	require.NoError(t, err)
	require.Len(t, reels, 1)
	assert.Equal(t, "Promo", reels[0].Title)
	assert.Equal(t, "/api/video-reels/category/ads-vsl", rec.path)
}

func TestListVideoReels_LegacyKey(t *testing.T) {
	srv, _ := newStub(t, http.StatusOK, `{"status":"success","data":{"videos":[{"title":"A"},{"title":"B"}]}}`)

	reels, err := NewHTTPClient(srv.URL, nil, nil, nil).ListVideoReels(context.Background(), "shorts")
	require.NoError(t, err)
	assert.Len(t, reels, 2)
}

func TestListReviewsAndFAQs(t *testing.T) {
	srv, rec := newStub(t, http.StatusOK, `{"status":"success","data":{"reviews":[{"name":"Ann","quote":"Great"}]}}`)
	c := NewHTTPClient(srv.URL, nil, nil, nil)

	reviews, err := c.ListReviewsWithoutVideo(context.Background())
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Ann", reviews[0].Name)
	assert.Equal(t, "/api/reviews-without-video", rec.path)

	_, err = c.ListReviewsWithVideo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/reviews-with-video", rec.path)

	srv, _ = newStub(t, http.StatusOK, `{"status":"success","data":{"faqs":[{"question":"Q","answer":"A"}]}}`)
	faqs, err := NewHTTPClient(srv.URL, nil, nil, nil).ListFAQs(context.Background())
	require.NoError(t, err)
	require.Len(t, faqs, 1)
	assert.Equal(t, "A", faqs[0].Answer)
}
