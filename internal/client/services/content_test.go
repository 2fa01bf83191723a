package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/reeldesk/internal/client/client"
	"github.com/dmitrijs2005/reeldesk/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reels(category string, n int) []models.VideoReel {
	out := make([]models.VideoReel, n)
	for i := range out {
		out[i] = models.VideoReel{Title: "r", Category: category}
	}
	return out
}

func TestCapacity(t *testing.T) {
	fc := &fakeClient{Reels: map[string][]models.VideoReel{
		"shorts":       reels("shorts", 3),
		"introduction": append(reels("introduction", 0), models.VideoReel{Category: "youtube"}),
	}}
	svc := NewContentService(fc, nil, 0)

	c, err := svc.Capacity(context.Background(), "shorts")
	require.NoError(t, err)
	assert.Equal(t, 3, c.Current)
	assert.False(t, c.CanAdd)
	assert.Equal(t, "Shorts: 3/3", c.String())

	// Reels filed under another category do not count.
	c, err = svc.Capacity(context.Background(), "introduction")
	require.NoError(t, err)
	assert.Equal(t, 0, c.Current)
	assert.True(t, c.CanAdd)
}

func TestCapacity_UnknownCategory(t *testing.T) {
	svc := NewContentService(&fakeClient{}, nil, 0)
	_, err := svc.Capacity(context.Background(), "podcasts")
	assert.ErrorIs(t, err, ErrUnknownCategory)
	_, err = svc.VideoReels(context.Background(), "podcasts")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestCapacityOverview(t *testing.T) {
	fc := &fakeClient{Reels: map[string][]models.VideoReel{
		"youtube": reels("youtube", 2),
		"saas":    reels("saas", 4),
	}}
	svc := NewContentService(fc, nil, 0)

	got, err := svc.CapacityOverview(context.Background())
	require.NoError(t, err)
	require.Len(t, got, len(models.VideoCategories))

	counts := map[string]int{}
	for i, c := range got {
		assert.Equal(t, models.VideoCategories[i].Value, c.Category.Value)
		counts[c.Category.Value] = c.Current
	}
	want := map[string]int{"youtube": 2, "shorts": 0, "saas": 4, "ads-vsl": 0, "introduction": 0, "case-study": 0}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("capacity mismatch (-want +got):\n%s", diff)
	}
}

func TestCapacityOverview_PropagatesErrors(t *testing.T) {
	svc := NewContentService(&fakeClient{ReelsErr: client.ErrUnavailable}, nil, 0)
	_, err := svc.CapacityOverview(context.Background())
	assert.ErrorIs(t, err, client.ErrUnavailable)
}

func TestListings(t *testing.T) {
	fc := &fakeClient{
		Reviews: []models.Review{{Name: "Ann"}},
		FAQs:    []models.FAQ{{Question: "Q", Answer: "A"}},
	}
	svc := NewContentService(fc, nil, 0)

	r, err := svc.ReviewsWithVideo(context.Background())
	require.NoError(t, err)
	assert.Len(t, r, 1)
	r, err = svc.ReviewsWithoutVideo(context.Background())
	require.NoError(t, err)
	assert.Len(t, r, 1)
	f, err := svc.FAQs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A", f[0].Answer)
}
